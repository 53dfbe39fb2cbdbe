package http

import (
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/request"
	"github.com/fernwehlab/tour-booking-backend/internal/review"
)

// CreateReviewBody defines the payload for reviewing a completed booking.
type CreateReviewBody struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// ListReviewsRequest defines query parameters for listing a tour's reviews.
type ListReviewsRequest struct {
	request.ListParams
}

// ReviewResponse is the API shape of a review.
type ReviewResponse struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	TourID    string    `json:"tour_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReviewResponse converts a domain review to its API representation.
func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		BookingID: rv.BookingID,
		TourID:    rv.TourID,
		UserID:    rv.UserID,
		UserName:  rv.UserName,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

// SummaryResponse aggregates a tour's reviews.
type SummaryResponse struct {
	TourID        string  `json:"tour_id"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// CanReviewResponse reports whether the caller may review a booking.
type CanReviewResponse struct {
	CanReview bool `json:"can_review"`
}
