package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/booking"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/response"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) booking.Actor {
	return booking.Actor{
		UserID:  auth.GetUserID(c),
		IsAdmin: auth.GetUserRole(c) == string(user.RoleAdmin),
	}
}

// List returns bookings scoped by role: tourists see their own, guides see
// their tours' bookings, admins see everything (optionally filtered by user).
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := booking.Filter{
		TourID:    req.TourID,
		Status:    req.Status,
		Page:      req.Page,
		PageSize:  req.PageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}

	if req.DateFrom != "" {
		if t, err := time.Parse(dateLayout, req.DateFrom); err == nil {
			filter.DateFrom = &t
		}
	}
	if req.DateTo != "" {
		if t, err := time.Parse(dateLayout, req.DateTo); err == nil {
			filter.DateTo = &t
		}
	}

	actor := actorFrom(c)
	switch auth.GetUserRole(c) {
	case string(user.RoleAdmin):
		filter.UserID = req.UserID // empty shows all
	case string(user.RoleGuide):
		filter.GuideID = actor.UserID
	default:
		filter.UserID = actor.UserID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Create books a tour slot for the authenticated tourist.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	startMinute, err := booking.ParseClock(body.StartTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := booking.CreateRequest{
		UserID:      auth.GetUserID(c),
		TourID:      body.TourID,
		Date:        date,
		StartMinute: startMinute,
		PartySize:   body.PartySize,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Get returns one booking, visible to its tourist, the tour's guide or admins.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// UpdateStatus applies a lifecycle action (confirm, complete, cancel).
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.ApplyAction(c.Request.Context(), id, booking.Action(body.Action), actorFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Availability returns the slot grid for a tour and date.
func (h *Handler) Availability(c *gin.Context) {
	tourID := c.Param("id")
	if _, err := uuid.Parse(tourID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), tourID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	if slots == nil {
		slots = make([]booking.SlotAvailability, 0)
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		TourID: tourID,
		Date:   req.Date,
		Slots:  slots,
	})
}
