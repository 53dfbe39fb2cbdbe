package booking

import (
	"net/http"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrTourNotFound      = apperror.New(http.StatusNotFound, "tour not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeFormat = apperror.New(http.StatusBadRequest, "invalid time, expected HH:MM")
	ErrInvalidStartTime  = apperror.New(http.StatusBadRequest, "start time is not an offered slot")
	ErrPartySizeInvalid  = apperror.New(http.StatusBadRequest, "party size is out of range for this tour")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrIllegalTransition = apperror.New(http.StatusConflict, "booking status change not allowed")
	ErrDateInPast        = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrTourInactive      = apperror.New(http.StatusBadRequest, "tour is not open for booking")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Blocks reports whether a booking in this status occupies its time window.
// Pending and confirmed bookings block; completed and cancelled ones do not.
func (s Status) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further status change is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking is a reserved [StartMinute, EndMinute) window on a tour for one date.
// Date is tour-local and timezone-naive: only year, month and day are meaningful.
type Booking struct {
	ID          string
	TourID      string
	TourTitle   string
	GuideID     string
	UserID      string
	UserName    string
	Date        time.Time
	StartMinute int
	EndMinute   int
	PartySize   int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID    string
	TourID    string
	GuideID   string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// SameDay reports whether two booking dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
