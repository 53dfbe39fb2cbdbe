package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
	"github.com/fernwehlab/tour-booking-backend/internal/booking"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/response"
	"github.com/fernwehlab/tour-booking-backend/internal/tour"
	"github.com/fernwehlab/tour-booking-backend/internal/user"
)

type Handler struct {
	service tour.Service
}

func NewHandler(service tour.Service) *Handler {
	return &Handler{service: service}
}

// parseClockField converts an optional "HH:MM" field to minutes.
// Empty means "not provided".
func parseClockField(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	m, err := booking.ParseClock(v)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List serves the public tour catalog with keyword/category/city filters.
func (h *Handler) List(c *gin.Context) {
	var req ListToursRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := tour.Filter{
		Keyword:    req.Keyword,
		Category:   req.Category,
		City:       req.City,
		GuideID:    req.GuideID,
		OnlyActive: true,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	// A guide browsing their own listings sees inactive ones too.
	if req.GuideID != "" && req.GuideID == auth.GetUserID(c) {
		filter.OnlyActive = false
	}

	tours, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TourResponse, len(tours))
	for i, t := range tours {
		items[i] = NewTourResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns one tour by id.
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTourResponse(t))
}

// Create lists a new tour. Guide only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateTourRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	openMinute, err := parseClockField(body.OpenTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	closeMinute, err := parseClockField(body.CloseTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := tour.CreateRequest{
		GuideID:                auth.GetUserID(c),
		Title:                  body.Title,
		Summary:                body.Summary,
		Description:            body.Description,
		Category:               body.Category,
		City:                   body.City,
		Country:                body.Country,
		PriceCents:             body.PriceCents,
		DurationMinutes:        body.DurationMinutes,
		MaxGroupSize:           body.MaxGroupSize,
		OpenMinute:             openMinute,
		CloseMinute:            closeMinute,
		SlotGranularityMinutes: body.SlotGranularityMinutes,
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTourResponse(t))
}

// Update edits a tour listing. Owning guide or admin only.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateTourRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := tour.UpdateRequest{
		Title:                  body.Title,
		Summary:                body.Summary,
		Description:            body.Description,
		Category:               body.Category,
		City:                   body.City,
		Country:                body.Country,
		PriceCents:             body.PriceCents,
		DurationMinutes:        body.DurationMinutes,
		MaxGroupSize:           body.MaxGroupSize,
		SlotGranularityMinutes: body.SlotGranularityMinutes,
		IsActive:               body.IsActive,
		PhotoIDs:               body.PhotoIDs,
	}

	if body.OpenTime != nil {
		m, err := parseClockField(*body.OpenTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.OpenMinute = m
	}
	if body.CloseTime != nil {
		m, err := parseClockField(*body.CloseTime)
		if err != nil {
			response.Error(c, err)
			return
		}
		req.CloseMinute = m
	}

	t, err := h.service.Update(c.Request.Context(), id, req, auth.GetUserID(c), isAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTourResponse(t))
}

// Delete removes a tour listing. Owning guide or admin only.
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c), isAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func isAdmin(c *gin.Context) bool {
	return auth.GetUserRole(c) == string(user.RoleAdmin)
}
