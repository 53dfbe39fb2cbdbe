package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwehlab/tour-booking-backend/internal/booking"
)

type fakeBookingService struct {
	bookings map[string]*booking.Booking
}

func (f *fakeBookingService) GetByID(ctx context.Context, id string, actor booking.Actor) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	if !actor.IsAdmin && actor.UserID != b.UserID && actor.UserID != b.GuideID {
		return nil, booking.ErrPermissionDenied
	}
	return b, nil
}

func (f *fakeBookingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	panic("not used")
}

func (f *fakeBookingService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	panic("not used")
}

func (f *fakeBookingService) Availability(ctx context.Context, tourID string, date time.Time) ([]booking.SlotAvailability, error) {
	panic("not used")
}

func (f *fakeBookingService) ApplyAction(ctx context.Context, id string, action booking.Action, actor booking.Actor) (*booking.Booking, error) {
	panic("not used")
}

type fakeRepo struct {
	reviews map[string]*Review
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: make(map[string]*Review), nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, rv *Review) error {
	for _, existing := range r.reviews {
		if existing.BookingID == rv.BookingID {
			return ErrAlreadyReviewed
		}
	}
	rv.ID = fmt.Sprintf("r-%d", r.nextID)
	r.nextID++
	r.reviews[rv.ID] = rv
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rv, nil
}

func (r *fakeRepo) GetByBookingID(ctx context.Context, bookingID string) (*Review, error) {
	for _, rv := range r.reviews {
		if rv.BookingID == bookingID {
			return rv, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	var out []*Review
	for _, rv := range r.reviews {
		if filter.TourID != "" && rv.TourID != filter.TourID {
			continue
		}
		out = append(out, rv)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Summarize(ctx context.Context, tourID string) (*Summary, error) {
	s := &Summary{TourID: tourID}
	total := 0
	for _, rv := range r.reviews {
		if rv.TourID == tourID {
			s.ReviewCount++
			total += rv.Rating
		}
	}
	if s.ReviewCount > 0 {
		s.AverageRating = float64(total) / float64(s.ReviewCount)
	}
	return s, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.reviews[id]; !ok {
		return ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

func testService() (Service, *fakeRepo, *fakeBookingService) {
	repo := newFakeRepo()
	bookings := &fakeBookingService{bookings: map[string]*booking.Booking{
		"done": {
			ID: "done", TourID: "tour-1", GuideID: "guide-1", UserID: "user-1",
			Status: booking.StatusCompleted,
		},
		"upcoming": {
			ID: "upcoming", TourID: "tour-1", GuideID: "guide-1", UserID: "user-1",
			Status: booking.StatusConfirmed,
		},
	}}
	return NewService(repo, bookings), repo, bookings
}

func TestCreateReview(t *testing.T) {
	svc, _, _ := testService()

	rv, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "user-1", Rating: 5, Comment: "  great day out  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "tour-1", rv.TourID)
	assert.Equal(t, 5, rv.Rating)
	assert.Equal(t, "great day out", rv.Comment)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	svc, _, _ := testService()

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.Create(context.Background(), CreateRequest{
			BookingID: "done", UserID: "user-1", Rating: rating,
		})
		assert.ErrorIs(t, err, ErrInvalidRating, rating)
	}
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	svc, _, _ := testService()

	_, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "upcoming", UserID: "user-1", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestCreateReviewRequiresOwnBooking(t *testing.T) {
	svc, _, _ := testService()

	_, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "someone-else", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrNotYourBooking)
}

func TestCreateReviewGuideCannotReviewOwnTour(t *testing.T) {
	// The guide can see the booking but is not the tourist on it.
	svc, _, _ := testService()

	_, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "guide-1", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrNotYourBooking)
}

func TestCreateReviewOncePerBooking(t *testing.T) {
	svc, _, _ := testService()

	_, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "user-1", Rating: 4,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "user-1", Rating: 2,
	})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewUnknownBooking(t *testing.T) {
	svc, _, _ := testService()

	_, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "missing", UserID: "user-1", Rating: 4,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCanReview(t *testing.T) {
	svc, _, _ := testService()

	ok, err := svc.CanReview(context.Background(), "done", "user-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CanReview(context.Background(), "upcoming", "user-1")
	require.NoError(t, err)
	assert.False(t, ok, "not completed yet")

	ok, err = svc.CanReview(context.Background(), "done", "someone-else")
	require.NoError(t, err)
	assert.False(t, ok, "not their booking")

	_, err = svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "user-1", Rating: 4,
	})
	require.NoError(t, err)

	ok, err = svc.CanReview(context.Background(), "done", "user-1")
	require.NoError(t, err)
	assert.False(t, ok, "already reviewed")
}

func TestSummarize(t *testing.T) {
	svc, repo, _ := testService()
	repo.reviews["r-a"] = &Review{ID: "r-a", BookingID: "x", TourID: "tour-1", Rating: 5}
	repo.reviews["r-b"] = &Review{ID: "r-b", BookingID: "y", TourID: "tour-1", Rating: 2}

	s, err := svc.Summarize(context.Background(), "tour-1")
	require.NoError(t, err)
	assert.Equal(t, 2, s.ReviewCount)
	assert.InDelta(t, 3.5, s.AverageRating, 0.001)
}

func TestDeleteReviewPermissions(t *testing.T) {
	svc, _, _ := testService()

	rv, err := svc.Create(context.Background(), CreateRequest{
		BookingID: "done", UserID: "user-1", Rating: 4,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), rv.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Delete(context.Background(), rv.ID, "someone-else", true)
	assert.NoError(t, err, "admins may delete any review")
}
