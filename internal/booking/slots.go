package booking

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fernwehlab/tour-booking-backend/internal/tour"
)

// TimeSlot is a candidate start time on a tour's schedule grid.
// Minute is minutes since midnight; Label is the 12-hour display form
// and is always derivable from Minute.
type TimeSlot struct {
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

// GenerateSlots returns every candidate start time for the tour, from
// OpenMinute (inclusive) to CloseMinute (exclusive), stepping by the
// slot granularity. The result is a pure function of the tour's schedule
// fields: calling it twice yields identical slices.
func GenerateSlots(t *tour.Tour) []TimeSlot {
	open, close, step := scheduleOf(t)
	if open >= close {
		return nil
	}

	var slots []TimeSlot
	for m := open; m < close; m += step {
		slots = append(slots, TimeSlot{Minute: m, Label: MinuteLabel(m)})
	}
	return slots
}

// IsSlotStart reports whether minute is one of the start times
// GenerateSlots would produce for the tour.
func IsSlotStart(t *tour.Tour, minute int) bool {
	open, close, step := scheduleOf(t)
	if minute < open || minute >= close {
		return false
	}
	return (minute-open)%step == 0
}

// ParseClock parses a 24-hour "HH:MM" string into minutes since midnight.
// Returns ErrInvalidTimeFormat unless hours are in [0,23] and minutes in [0,59].
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidTimeFormat
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ErrInvalidTimeFormat
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidTimeFormat
	}

	return h*60 + m, nil
}

// MinuteLabel renders minutes since midnight as "H:MM AM/PM".
// The minute value is normalized into a single day, so labels for
// windows that run past midnight stay well formed.
func MinuteLabel(minute int) string {
	minute %= 24 * 60
	if minute < 0 {
		minute += 24 * 60
	}

	h := minute / 60
	m := minute % 60

	period := "AM"
	if h >= 12 {
		period = "PM"
	}

	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}

	return fmt.Sprintf("%d:%02d %s", h12, m, period)
}

// FormatLabel converts a 24-hour "HH:MM" string to its 12-hour display form.
// Unlike ad hoc string slicing, malformed input is an error the caller must
// handle, never a placeholder label.
func FormatLabel(s string) (string, error) {
	minute, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return MinuteLabel(minute), nil
}

// scheduleOf returns the tour's schedule grid, applying defaults for
// unset fields so tours created before the scheduling columns existed
// still generate a grid.
func scheduleOf(t *tour.Tour) (open, close, step int) {
	open = t.OpenMinute
	close = t.CloseMinute
	step = t.SlotGranularityMinutes

	if open == 0 && close == 0 {
		open = tour.DefaultOpenMinute
		close = tour.DefaultCloseMinute
	}
	if step <= 0 {
		step = tour.DefaultSlotGranularity
	}
	return open, close, step
}
