package http

import (
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/booking"
	"github.com/fernwehlab/tour-booking-backend/internal/pkg/request"
)

const dateLayout = "2006-01-02"

// CreateBookingBody defines the payload for booking a tour slot.
// The start time is a 24-hour "HH:MM" string matching a slot from the
// availability endpoint.
type CreateBookingBody struct {
	TourID    string `json:"tour_id" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	PartySize int    `json:"party_size" binding:"required,min=1"`
}

// UpdateStatusBody carries a lifecycle action for a booking.
type UpdateStatusBody struct {
	Action string `json:"action" binding:"required,oneof=confirm complete cancel"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	TourID   string `form:"tour_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=date start_minute created_at status"`
}

// AvailabilityRequest defines query parameters for the availability grid.
type AvailabilityRequest struct {
	Date string `form:"date" binding:"required"`
}

// BookingResponse is the API shape of a booking.
type BookingResponse struct {
	ID          string    `json:"id"`
	TourID      string    `json:"tour_id"`
	TourTitle   string    `json:"tour_title"`
	GuideID     string    `json:"guide_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	Date        string    `json:"date"`
	StartMinute int       `json:"start_minute"`
	StartLabel  string    `json:"start_label"`
	EndMinute   int       `json:"end_minute"`
	EndLabel    string    `json:"end_label"`
	PartySize   int       `json:"party_size"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBookingResponse converts a domain booking to its API representation.
func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		TourID:      b.TourID,
		TourTitle:   b.TourTitle,
		GuideID:     b.GuideID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		Date:        b.Date.Format(dateLayout),
		StartMinute: b.StartMinute,
		StartLabel:  booking.MinuteLabel(b.StartMinute),
		EndMinute:   b.EndMinute,
		EndLabel:    booking.MinuteLabel(b.EndMinute),
		PartySize:   b.PartySize,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// AvailabilityResponse wraps the slot grid for one tour and date.
type AvailabilityResponse struct {
	TourID string                     `json:"tour_id"`
	Date   string                     `json:"date"`
	Slots  []booking.SlotAvailability `json:"slots"`
}
