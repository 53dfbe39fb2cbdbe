package booking

// Action is a requested booking status change.
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// ValidAction reports whether a is a known lifecycle action.
func ValidAction(a Action) bool {
	switch a {
	case ActionConfirm, ActionComplete, ActionCancel:
		return true
	}
	return false
}

// nextStatus encodes the booking lifecycle:
//
//	pending   -> confirmed (confirm) | cancelled (cancel)
//	confirmed -> completed (complete) | cancelled (cancel)
//	completed, cancelled: terminal
//
// A booking never returns to pending.
func nextStatus(s Status, a Action) (Status, bool) {
	switch s {
	case StatusPending:
		switch a {
		case ActionConfirm:
			return StatusConfirmed, true
		case ActionCancel:
			return StatusCancelled, true
		}
	case StatusConfirmed:
		switch a {
		case ActionComplete:
			return StatusCompleted, true
		case ActionCancel:
			return StatusCancelled, true
		}
	}
	return s, false
}

// Transition applies a lifecycle action and returns the resulting booking.
// The input is never mutated; the caller owns persistence of the result.
// Returns ErrIllegalTransition for any edge the lifecycle does not permit,
// including every action on a terminal booking.
func Transition(b *Booking, a Action) (*Booking, error) {
	next, ok := nextStatus(b.Status, a)
	if !ok {
		return nil, ErrIllegalTransition
	}

	nb := *b
	nb.Status = next
	return &nb, nil
}
