package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from   Status
		action Action
		want   Status
		ok     bool
	}{
		{StatusPending, ActionConfirm, StatusConfirmed, true},
		{StatusPending, ActionCancel, StatusCancelled, true},
		{StatusPending, ActionComplete, "", false},
		{StatusConfirmed, ActionComplete, StatusCompleted, true},
		{StatusConfirmed, ActionCancel, StatusCancelled, true},
		{StatusConfirmed, ActionConfirm, "", false},
		{StatusCompleted, ActionConfirm, "", false},
		{StatusCompleted, ActionCancel, "", false},
		{StatusCompleted, ActionComplete, "", false},
		{StatusCancelled, ActionConfirm, "", false},
		{StatusCancelled, ActionCancel, "", false},
		{StatusCancelled, ActionComplete, "", false},
	}

	for _, tc := range cases {
		b := &Booking{ID: "b-1", Status: tc.from}
		next, err := Transition(b, tc.action)

		if !tc.ok {
			assert.ErrorIs(t, err, ErrIllegalTransition, "%s + %s", tc.from, tc.action)
			continue
		}
		require.NoError(t, err, "%s + %s", tc.from, tc.action)
		assert.Equal(t, tc.want, next.Status)
		assert.Equal(t, tc.from, b.Status, "input must not be mutated")
	}
}

func TestValidAction(t *testing.T) {
	assert.True(t, ValidAction(ActionConfirm))
	assert.True(t, ValidAction(ActionComplete))
	assert.True(t, ValidAction(ActionCancel))
	assert.False(t, ValidAction("reopen"))
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusPending.Blocks())
	assert.True(t, StatusConfirmed.Blocks())
	assert.False(t, StatusCompleted.Blocks())
	assert.False(t, StatusCancelled.Blocks())

	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())

	assert.True(t, StatusPending.Valid())
	assert.False(t, Status("archived").Valid())
}
