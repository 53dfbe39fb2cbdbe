package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/response"
	"github.com/fernwehlab/tour-booking-backend/internal/review"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
)

type Handler struct {
	service review.Service
}

func NewHandler(service review.Service) *Handler {
	return &Handler{service: service}
}

// Create reviews a completed booking.
func (h *Handler) Create(c *gin.Context) {
	var body CreateReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rv, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		BookingID: body.BookingID,
		UserID:    auth.GetUserID(c),
		Rating:    body.Rating,
		Comment:   body.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(rv))
}

// ListByTour returns a tour's reviews, newest first.
func (h *Handler) ListByTour(c *gin.Context) {
	tourID := c.Param("id")
	if _, err := uuid.Parse(tourID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	req.Normalize()

	reviews, total, err := h.service.List(c.Request.Context(), review.Filter{
		TourID:   tourID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		items[i] = NewReviewResponse(rv)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Summary returns a tour's review count and average rating.
func (h *Handler) Summary(c *gin.Context) {
	tourID := c.Param("id")
	if _, err := uuid.Parse(tourID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.Summarize(c.Request.Context(), tourID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		TourID:        s.TourID,
		ReviewCount:   s.ReviewCount,
		AverageRating: s.AverageRating,
	})
}

// CanReview reports whether the caller may review the booking.
func (h *Handler) CanReview(c *gin.Context) {
	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	ok, err := h.service.CanReview(c.Request.Context(), bookingID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CanReviewResponse{CanReview: ok})
}

// Delete removes a review. Author or admin only.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	isAdmin := auth.GetUserRole(c) == string(user.RoleAdmin)
	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c), isAdmin); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
