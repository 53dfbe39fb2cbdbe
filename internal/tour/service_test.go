package tour

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tours  map[string]*Tour
	photos map[string][]string
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tours:  make(map[string]*Tour),
		photos: make(map[string][]string),
		nextID: 1,
	}
}

func (r *fakeRepo) Create(ctx context.Context, t *Tour) error {
	t.ID = fmt.Sprintf("t-%d", r.nextID)
	r.nextID++
	r.tours[t.ID] = t
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Tour, error) {
	t, ok := r.tours[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Tour, int, error) {
	var out []*Tour
	for _, t := range r.tours {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, t *Tour) error {
	if _, ok := r.tours[t.ID]; !ok {
		return ErrNotFound
	}
	r.tours[t.ID] = t
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.tours[id]; !ok {
		return ErrNotFound
	}
	delete(r.tours, id)
	return nil
}

func (r *fakeRepo) SetPhotos(ctx context.Context, tourID string, fileIDs []string) error {
	r.photos[tourID] = fileIDs
	return nil
}

func validCreate() CreateRequest {
	return CreateRequest{
		GuideID:         "guide-1",
		Title:           "Sunrise Coastal Hike",
		Category:        "hiking",
		City:            "Lisbon",
		Country:         "Portugal",
		PriceCents:      4500,
		DurationMinutes: 180,
		MaxGroupSize:    8,
	}
}

func TestCreateAppliesScheduleDefaults(t *testing.T) {
	svc := NewService(newFakeRepo())

	tr, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	assert.Equal(t, DefaultOpenMinute, tr.OpenMinute)
	assert.Equal(t, DefaultCloseMinute, tr.CloseMinute)
	assert.Equal(t, DefaultSlotGranularity, tr.SlotGranularityMinutes)
	assert.True(t, tr.IsActive)
}

func TestCreateCustomSchedule(t *testing.T) {
	svc := NewService(newFakeRepo())

	open, close, step := 6*60, 14*60, 60
	req := validCreate()
	req.OpenMinute = &open
	req.CloseMinute = &close
	req.SlotGranularityMinutes = &step

	tr, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6*60, tr.OpenMinute)
	assert.Equal(t, 60, tr.SlotGranularityMinutes)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	req := validCreate()
	req.Title = "   "
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrTitleRequired)

	req = validCreate()
	req.Category = "spelunking"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidCategory)

	req = validCreate()
	req.DurationMinutes = 0
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	req = validCreate()
	req.MaxGroupSize = -1
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidGroupSize)

	req = validCreate()
	open, close := 15*60, 10*60
	req.OpenMinute = &open
	req.CloseMinute = &close
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestUpdateOwnership(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tr, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	title := "New Title"
	_, err = svc.Update(ctx, tr.ID, UpdateRequest{Title: &title}, "other-guide", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := svc.Update(ctx, tr.ID, UpdateRequest{Title: &title}, "guide-1", false)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)

	inactive := false
	got, err = svc.Update(ctx, tr.ID, UpdateRequest{IsActive: &inactive}, "admin", true)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestUpdateRejectsInvertedHours(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tr, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	open := 21 * 60
	_, err = svc.Update(ctx, tr.ID, UpdateRequest{OpenMinute: &open}, "guide-1", false)
	assert.ErrorIs(t, err, ErrInvalidHours)
}

func TestUpdateSetsPhotos(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	tr, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	_, err = svc.Update(ctx, tr.ID, UpdateRequest{PhotoIDs: []string{"p1", "p2"}}, "guide-1", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, repo.photos[tr.ID])
}

func TestDeleteOwnership(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	tr, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, tr.ID, "other-guide", false), ErrPermissionDenied)
	assert.NoError(t, svc.Delete(ctx, tr.ID, "guide-1", false))
	assert.ErrorIs(t, svc.Delete(ctx, tr.ID, "guide-1", false), ErrNotFound)
}
