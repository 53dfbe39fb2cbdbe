package wishlist

import (
	"net/http"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "tour not in wishlist")
	ErrAlreadySaved = apperror.New(http.StatusConflict, "tour already in wishlist")
)

// Item is a saved tour on a user's wishlist, carrying a snapshot of the
// tour fields the list view filters and sorts on.
type Item struct {
	ID           string
	UserID       string
	TourID       string
	TourTitle    string
	TourCity     string
	TourCountry  string
	TourCategory string
	PriceCents   int
	TourIsActive bool
	SavedAt      time.Time
}
