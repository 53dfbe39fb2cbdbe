package http

import (
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/booking"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/request"
	"github.com/fernwehlab/tour-booking-backend/internal/tour"
)

// CreateTourRequest defines the payload for listing a new tour.
// Open and close times are 24-hour "HH:MM" strings.
type CreateTourRequest struct {
	Title                  string `json:"title" binding:"required"`
	Summary                string `json:"summary"`
	Description            string `json:"description"`
	Category               string `json:"category" binding:"required"`
	City                   string `json:"city" binding:"required"`
	Country                string `json:"country" binding:"required"`
	PriceCents             int    `json:"price_cents" binding:"min=0"`
	DurationMinutes        int    `json:"duration_minutes" binding:"required,min=1"`
	MaxGroupSize           int    `json:"max_group_size" binding:"required,min=1"`
	OpenTime               string `json:"open_time"`
	CloseTime              string `json:"close_time"`
	SlotGranularityMinutes *int   `json:"slot_granularity_minutes" binding:"omitempty,min=5"`
}

// UpdateTourRequest defines partial updates to a tour listing.
type UpdateTourRequest struct {
	Title                  *string  `json:"title"`
	Summary                *string  `json:"summary"`
	Description            *string  `json:"description"`
	Category               *string  `json:"category"`
	City                   *string  `json:"city"`
	Country                *string  `json:"country"`
	PriceCents             *int     `json:"price_cents" binding:"omitempty,min=0"`
	DurationMinutes        *int     `json:"duration_minutes" binding:"omitempty,min=1"`
	MaxGroupSize           *int     `json:"max_group_size" binding:"omitempty,min=1"`
	OpenTime               *string  `json:"open_time"`
	CloseTime              *string  `json:"close_time"`
	SlotGranularityMinutes *int     `json:"slot_granularity_minutes" binding:"omitempty,min=5"`
	IsActive               *bool    `json:"is_active"`
	PhotoIDs               []string `json:"photo_ids"`
}

// ListToursRequest defines query parameters for the public tour list.
type ListToursRequest struct {
	request.ListParams
	Keyword  string `form:"keyword"`
	Category string `form:"category"`
	City     string `form:"city"`
	GuideID  string `form:"guide_id" binding:"omitempty,uuid"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_cents duration_minutes created_at title"`
}

// TourResponse is the API shape of a tour listing.
type TourResponse struct {
	ID                     string    `json:"id"`
	GuideID                string    `json:"guide_id"`
	GuideName              string    `json:"guide_name"`
	Title                  string    `json:"title"`
	Summary                string    `json:"summary"`
	Description            string    `json:"description"`
	Category               string    `json:"category"`
	City                   string    `json:"city"`
	Country                string    `json:"country"`
	PriceCents             int       `json:"price_cents"`
	DurationMinutes        int       `json:"duration_minutes"`
	MaxGroupSize           int       `json:"max_group_size"`
	OpenMinute             int       `json:"open_minute"`
	OpenLabel              string    `json:"open_label"`
	CloseMinute            int       `json:"close_minute"`
	CloseLabel             string    `json:"close_label"`
	SlotGranularityMinutes int       `json:"slot_granularity_minutes"`
	PhotoIDs               []string  `json:"photo_ids"`
	IsActive               bool      `json:"is_active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NewTourResponse converts a domain tour to its API representation.
func NewTourResponse(t *tour.Tour) TourResponse {
	photos := t.PhotoIDs
	if photos == nil {
		photos = make([]string, 0)
	}

	return TourResponse{
		ID:                     t.ID,
		GuideID:                t.GuideID,
		GuideName:              t.GuideName,
		Title:                  t.Title,
		Summary:                t.Summary,
		Description:            t.Description,
		Category:               t.Category,
		City:                   t.City,
		Country:                t.Country,
		PriceCents:             t.PriceCents,
		DurationMinutes:        t.DurationMinutes,
		MaxGroupSize:           t.MaxGroupSize,
		OpenMinute:             t.OpenMinute,
		OpenLabel:              booking.MinuteLabel(t.OpenMinute),
		CloseMinute:            t.CloseMinute,
		CloseLabel:             booking.MinuteLabel(t.CloseMinute),
		SlotGranularityMinutes: t.SlotGranularityMinutes,
		PhotoIDs:               photos,
		IsActive:               t.IsActive,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}
