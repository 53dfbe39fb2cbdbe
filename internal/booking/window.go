package booking

import (
	"fmt"
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/tour"
)

// Window is a concrete [StartMinute, EndMinute) reservation span.
type Window struct {
	StartMinute int
	EndMinute   int
}

// Overlaps reports whether two half-open windows intersect.
func (w Window) Overlaps(other Window) bool {
	return w.StartMinute < other.EndMinute && other.StartMinute < w.EndMinute
}

// ComputeWindow derives the booking window for a start time on the tour's
// grid. The end is purely start + duration and is intentionally not clipped
// to the tour's closing time: a slot late in the day stays bookable for the
// tour's full duration.
func ComputeWindow(t *tour.Tour, startMinute int) (Window, error) {
	if !IsSlotStart(t, startMinute) {
		return Window{}, ErrInvalidStartTime
	}
	return Window{
		StartMinute: startMinute,
		EndMinute:   startMinute + t.DurationMinutes,
	}, nil
}

// OverlapError reports a conflict with an existing blocking booking.
// It unwraps to ErrTimeConflict so callers mapping sentinel errors to
// HTTP status codes keep working.
type OverlapError struct {
	ConflictingID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("time slot already booked (conflicts with booking %s)", e.ConflictingID)
}

func (e *OverlapError) Unwrap() error {
	return ErrTimeConflict
}

// CreateRequest carries a tourist's booking request.
type CreateRequest struct {
	UserID      string
	TourID      string
	Date        time.Time
	StartMinute int
	PartySize   int
}

// ValidateRequest checks a booking request against the tour's schedule and
// the given snapshot of existing bookings. Checks run in a fixed order and
// the first failure wins:
//
//  1. party size within [1, MaxGroupSize]
//  2. start time is an offered slot
//  3. window derivation
//  4. no overlap with a pending or confirmed booking on the same tour and date
//
// On success it returns a new pending Booking. The function is pure: the
// caller owns persistence and must make sure the snapshot is re-read under
// the same lock that serializes the eventual write (see Repository.Create).
func ValidateRequest(t *tour.Tour, req CreateRequest, existing []*Booking) (*Booking, error) {
	if req.PartySize < 1 || req.PartySize > t.MaxGroupSize {
		return nil, ErrPartySizeInvalid
	}

	w, err := ComputeWindow(t, req.StartMinute)
	if err != nil {
		return nil, err
	}

	for _, b := range existing {
		if b.TourID != "" && b.TourID != req.TourID {
			continue
		}
		if !SameDay(b.Date, req.Date) {
			continue
		}
		if !b.Status.Blocks() {
			continue
		}
		if w.Overlaps(Window{StartMinute: b.StartMinute, EndMinute: b.EndMinute}) {
			return nil, &OverlapError{ConflictingID: b.ID}
		}
	}

	return &Booking{
		TourID:      req.TourID,
		GuideID:     t.GuideID,
		UserID:      req.UserID,
		Date:        req.Date,
		StartMinute: w.StartMinute,
		EndMinute:   w.EndMinute,
		PartySize:   req.PartySize,
		Status:      StatusPending,
	}, nil
}
