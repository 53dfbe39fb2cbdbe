package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernwehlab/tour-booking-backend/internal/auth"
)

type fakeRepo struct {
	byID    map[string]*User
	byEmail map[string]*User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
		nextID:  1,
	}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	r.nextID++
	u.CreatedAt = time.Now()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func testService() (Service, *fakeRepo) {
	repo := newFakeRepo()
	// Minimum bcrypt cost keeps the suite fast.
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	svc, _ := testService()

	u, err := svc.Register(context.Background(), "  Alex@Example.COM ", "correct-horse", "Alex", RoleTourist)
	require.NoError(t, err)

	assert.Equal(t, "alex@example.com", u.Email, "email is normalized")
	assert.NotEqual(t, "correct-horse", u.PasswordHash)
	assert.True(t, u.IsActive)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Alex", *u.DisplayName)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "correct-horse", "", RoleTourist)
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "a@example.com", "short", "", RoleTourist)
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(ctx, "a@example.com", "correct-horse", "", RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidRole, "admin is not self-assignable")

	_, err = svc.Register(ctx, "a@example.com", "correct-horse", "", RoleGuide)
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "correct-horse", "", RoleTourist)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@example.com", "correct-horse", "", RoleTourist)
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLogin(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "correct-horse", "", RoleTourist)
	require.NoError(t, err)

	u, err := svc.Login(ctx, "a@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotNil(t, u.LastLoginAt)

	_, err = svc.Login(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email looks identical to a bad password")
}

func TestLoginInactiveUser(t *testing.T) {
	svc, repo := testService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "correct-horse", "", RoleTourist)
	require.NoError(t, err)

	repo.byID[u.ID].IsActive = false

	_, err = svc.Login(ctx, "a@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "correct-horse", "Alex", RoleGuide)
	require.NoError(t, err)

	bio := "  Ten years guiding coastal hikes.  "
	got, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "Ten years guiding coastal hikes.", *got.Bio)
	require.NotNil(t, got.DisplayName, "unset fields are untouched")

	empty := ""
	got, err = svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{DisplayName: &empty})
	require.NoError(t, err)
	assert.Nil(t, got.DisplayName, "blank clears the field")
}

func TestAdminUpdate(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "correct-horse", "", RoleTourist)
	require.NoError(t, err)

	role := "guide"
	got, err := svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, RoleGuide, got.Role)

	bad := "superuser"
	_, err = svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{Role: &bad})
	assert.ErrorIs(t, err, ErrInvalidRole)

	inactive := false
	got, err = svc.AdminUpdate(ctx, u.ID, AdminUpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestDelete(t *testing.T) {
	svc, _ := testService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "correct-horse", "", RoleTourist)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrNotFound)
}
