package booking

import (
	"context"
	"errors"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/tour"
)

// SlotAvailability is one grid slot with its current bookability.
type SlotAvailability struct {
	TimeSlot
	EndMinute int  `json:"end_minute"`
	Available bool `json:"available"`
}

// Actor identifies who is acting on a booking, for permission checks.
type Actor struct {
	UserID  string
	IsAdmin bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string, actor Actor) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Availability returns the tour's slot grid for one date, with each
	// slot marked available unless its window overlaps a pending or
	// confirmed booking.
	Availability(ctx context.Context, tourID string, date time.Time) ([]SlotAvailability, error)

	// ApplyAction runs the booking through the status state machine.
	// Confirm and complete are guide/admin actions; cancel is allowed to
	// the booking's tourist as well.
	ApplyAction(ctx context.Context, id string, action Action, actor Actor) (*Booking, error)
}

type service struct {
	repo        Repository
	tourService tour.Service
}

func NewService(repo Repository, tourService tour.Service) Service {
	return &service{
		repo:        repo,
		tourService: tourService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	t, err := s.tourService.GetByID(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, tour.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	if !t.IsActive {
		return nil, ErrTourInactive
	}

	// The date is tour-local and naive; compare calendar days only.
	today := time.Now().UTC()
	if req.Date.Year() < today.Year() ||
		(req.Date.Year() == today.Year() && req.Date.YearDay() < today.YearDay()) {
		return nil, ErrDateInPast
	}

	// Validate against a snapshot of the tour's bookings for that date.
	// Repository.Create re-checks under the per-(tour, date) lock, so a
	// concurrent request that slips between snapshot and insert still
	// cannot double-book.
	existing, err := s.repo.ListForDate(ctx, req.TourID, req.Date)
	if err != nil {
		return nil, err
	}

	b, err := ValidateRequest(t, req, existing)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, actor Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Visible to the booking's tourist, the tour's guide, and admins.
	if !actor.IsAdmin && actor.UserID != b.UserID && actor.UserID != b.GuideID {
		return nil, ErrPermissionDenied
	}

	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Availability(ctx context.Context, tourID string, date time.Time) ([]SlotAvailability, error) {
	t, err := s.tourService.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, tour.ErrNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	existing, err := s.repo.ListForDate(ctx, tourID, date)
	if err != nil {
		return nil, err
	}

	slots := GenerateSlots(t)
	out := make([]SlotAvailability, len(slots))
	for i, slot := range slots {
		w := Window{StartMinute: slot.Minute, EndMinute: slot.Minute + t.DurationMinutes}

		available := true
		for _, b := range existing {
			if !b.Status.Blocks() {
				continue
			}
			if w.Overlaps(Window{StartMinute: b.StartMinute, EndMinute: b.EndMinute}) {
				available = false
				break
			}
		}

		out[i] = SlotAvailability{
			TimeSlot:  slot,
			EndMinute: w.EndMinute,
			Available: available,
		}
	}

	return out, nil
}

func (s *service) ApplyAction(ctx context.Context, id string, action Action, actor Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.actionAllowed(b, action, actor) {
		return nil, ErrPermissionDenied
	}

	next, err := Transition(b, action)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, next.ID, next.Status); err != nil {
		return nil, err
	}

	return next, nil
}

func (s *service) actionAllowed(b *Booking, action Action, actor Actor) bool {
	if actor.IsAdmin {
		return true
	}

	switch action {
	case ActionConfirm, ActionComplete:
		return actor.UserID == b.GuideID
	case ActionCancel:
		return actor.UserID == b.UserID || actor.UserID == b.GuideID
	}
	return false
}
