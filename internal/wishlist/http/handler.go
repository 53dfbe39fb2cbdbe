package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/response"
	"github.com/fernwehlab/tour-booking-backend/internal/wishlist"
)

type Handler struct {
	service wishlist.Service
}

func NewHandler(service wishlist.Service) *Handler {
	return &Handler{service: service}
}

// List serves the caller's wishlist view.
func (h *Handler) List(c *gin.Context) {
	var req ListWishlistRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	page, err := h.service.List(c.Request.Context(), auth.GetUserID(c), wishlist.ListQuery{
		Keyword:   req.Keyword,
		Category:  req.Category,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWishlistPageResponse(page))
}

// Add saves a tour to the caller's wishlist.
func (h *Handler) Add(c *gin.Context) {
	var body AddWishlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.Add(c.Request.Context(), auth.GetUserID(c), body.TourID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewWishlistItemResponse(it))
}

// Remove deletes one saved tour.
func (h *Handler) Remove(c *gin.Context) {
	tourID := c.Param("tourID")
	if _, err := uuid.Parse(tourID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), auth.GetUserID(c), tourID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RemoveMany deletes a batch of saved tours in one call.
func (h *Handler) RemoveMany(c *gin.Context) {
	var body RemoveManyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	removed, err := h.service.RemoveMany(c.Request.Context(), auth.GetUserID(c), body.TourIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, RemovedResponse{Removed: removed})
}
