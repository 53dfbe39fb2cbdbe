package tour

import (
	"net/http"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "tour not found")
	ErrTitleRequired    = apperror.New(http.StatusBadRequest, "title is required")
	ErrInvalidCategory  = apperror.New(http.StatusBadRequest, "invalid category")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be positive")
	ErrInvalidGroupSize = apperror.New(http.StatusBadRequest, "max group size must be positive")
	ErrInvalidHours     = apperror.New(http.StatusBadRequest, "open time must be before close time")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Scheduling defaults applied when a guide leaves them unset.
const (
	DefaultOpenMinute      = 8 * 60  // 08:00
	DefaultCloseMinute     = 20 * 60 // 20:00
	DefaultSlotGranularity = 30
)

// ValidCategories lists the categories a tour may be listed under.
var ValidCategories = []string{
	"hiking",
	"culture",
	"food",
	"water",
	"wildlife",
	"city",
}

// Tour represents a bookable guided tour listing.
type Tour struct {
	ID                     string
	GuideID                string
	GuideName              string
	Title                  string
	Summary                string
	Description            string
	Category               string
	City                   string
	Country                string
	PriceCents             int
	DurationMinutes        int
	MaxGroupSize           int
	OpenMinute             int
	CloseMinute            int
	SlotGranularityMinutes int
	PhotoIDs               []string
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Filter defines parameters for listing tours.
type Filter struct {
	Keyword    string
	Category   string
	City       string
	GuideID    string
	OnlyActive bool
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}

// IsValidCategory reports whether c is an accepted tour category.
func IsValidCategory(c string) bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}
