package review

import (
	"net/http"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "review not found")
	ErrBookingNotFound  = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotCompleted     = apperror.New(http.StatusBadRequest, "only completed bookings can be reviewed")
	ErrNotYourBooking   = apperror.New(http.StatusForbidden, "booking belongs to another user")
	ErrAlreadyReviewed  = apperror.New(http.StatusConflict, "booking already reviewed")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Review is a tourist's rating of a completed tour booking.
// One review per booking.
type Review struct {
	ID        string
	BookingID string
	TourID    string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing reviews.
type Filter struct {
	TourID   string
	UserID   string
	Page     int
	PageSize int
}

// Summary aggregates a tour's reviews.
type Summary struct {
	TourID        string
	ReviewCount   int
	AverageRating float64
}
