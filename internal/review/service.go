package review

import (
	"context"
	"errors"
	"strings"

	"github.com/fernwehlab/tour-booking-backend/internal/booking"
)

// CreateRequest carries a tourist's review of a completed booking.
type CreateRequest struct {
	BookingID string
	UserID    string
	Rating    int
	Comment   string
}

type Service interface {
	// Create stores a review, gated on the booking being completed and
	// belonging to the reviewer. A booking is reviewed at most once.
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Summarize(ctx context.Context, tourID string) (*Summary, error)

	// CanReview reports whether the user could currently review the
	// booking: completed, theirs, and not yet reviewed.
	CanReview(ctx context.Context, bookingID, userID string) (bool, error)
	Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error
}

type service struct {
	repo           Repository
	bookingService booking.Service
}

func NewService(repo Repository, bookingService booking.Service) Service {
	return &service{
		repo:           repo,
		bookingService: bookingService,
	}
}

// reviewableBooking fetches the booking and applies the review gate.
func (s *service) reviewableBooking(ctx context.Context, bookingID, userID string) (*booking.Booking, error) {
	b, err := s.bookingService.GetByID(ctx, bookingID, booking.Actor{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			return nil, ErrBookingNotFound
		case errors.Is(err, booking.ErrPermissionDenied):
			return nil, ErrNotYourBooking
		default:
			return nil, err
		}
	}

	if b.UserID != userID {
		return nil, ErrNotYourBooking
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrNotCompleted
	}
	return b, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.reviewableBooking(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, err
	}

	rv := &Review{
		BookingID: req.BookingID,
		TourID:    b.TourID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Summarize(ctx context.Context, tourID string) (*Summary, error) {
	return s.repo.Summarize(ctx, tourID)
}

func (s *service) CanReview(ctx context.Context, bookingID, userID string) (bool, error) {
	if _, err := s.reviewableBooking(ctx, bookingID, userID); err != nil {
		if errors.Is(err, ErrNotCompleted) || errors.Is(err, ErrNotYourBooking) || errors.Is(err, ErrBookingNotFound) {
			return false, nil
		}
		return false, err
	}

	_, err := s.repo.GetByBookingID(ctx, bookingID)
	if err == nil {
		return false, nil // already reviewed
	}
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	return false, err
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && rv.UserID != deleterID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
