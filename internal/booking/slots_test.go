package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwehlab/tour-booking-backend/internal/tour"
)

func gridTour(open, close, step int) *tour.Tour {
	return &tour.Tour{
		ID:                     "tour-1",
		OpenMinute:             open,
		CloseMinute:            close,
		SlotGranularityMinutes: step,
		DurationMinutes:        120,
		MaxGroupSize:           8,
	}
}

func TestGenerateSlots(t *testing.T) {
	tr := gridTour(9*60, 17*60, 30)

	slots := GenerateSlots(tr)
	require.NotEmpty(t, slots)

	assert.Equal(t, 9*60, slots[0].Minute)
	assert.Equal(t, "9:00 AM", slots[0].Label)

	// CloseMinute is exclusive: the last slot starts before 17:00.
	last := slots[len(slots)-1]
	assert.Equal(t, 16*60+30, last.Minute)
	assert.Equal(t, "4:30 PM", last.Label)

	// 9:00 through 16:30 stepping 30 minutes.
	assert.Len(t, slots, 16)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30, slots[i].Minute-slots[i-1].Minute)
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	tr := gridTour(8*60, 20*60, 45)
	assert.Equal(t, GenerateSlots(tr), GenerateSlots(tr))
}

func TestGenerateSlotsDefaultsApplied(t *testing.T) {
	// Unset schedule falls back to the 08:00-20:00 / 30 min grid.
	tr := gridTour(0, 0, 0)

	slots := GenerateSlots(tr)
	require.NotEmpty(t, slots)
	assert.Equal(t, tour.DefaultOpenMinute, slots[0].Minute)
	assert.Equal(t, tour.DefaultCloseMinute-tour.DefaultSlotGranularity, slots[len(slots)-1].Minute)
}

func TestGenerateSlotsEmptyWhenClosed(t *testing.T) {
	assert.Nil(t, GenerateSlots(gridTour(10*60, 10*60, 30)))
	assert.Nil(t, GenerateSlots(gridTour(12*60, 9*60, 30)))
}

func TestIsSlotStart(t *testing.T) {
	tr := gridTour(9*60, 17*60, 30)

	assert.True(t, IsSlotStart(tr, 9*60))
	assert.True(t, IsSlotStart(tr, 14*60+30))
	assert.False(t, IsSlotStart(tr, 9*60+15), "off the grid")
	assert.False(t, IsSlotStart(tr, 8*60), "before open")
	assert.False(t, IsSlotStart(tr, 17*60), "close is exclusive")
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"9:05", 545},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseClockRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "12", "25:00", "12:61", "-1:30", "12:-5", "12:3x"} {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, in)
	}
}

func TestMinuteLabel(t *testing.T) {
	cases := []struct {
		minute int
		want   string
	}{
		{0, "12:00 AM"},
		{540, "9:00 AM"},
		{720, "12:00 PM"},
		{765, "12:45 PM"},
		{1260, "9:00 PM"},
		{1439, "11:59 PM"},
		// A window running past midnight wraps into the next day.
		{1500, "1:00 AM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, MinuteLabel(tc.minute))
	}
}

func TestFormatLabel(t *testing.T) {
	got, err := FormatLabel("09:00")
	require.NoError(t, err)
	assert.Equal(t, "9:00 AM", got)

	got, err = FormatLabel("21:00")
	require.NoError(t, err)
	assert.Equal(t, "9:00 PM", got)

	_, err = FormatLabel("25:61")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
