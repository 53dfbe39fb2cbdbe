package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrInvalidRole      = errors.New("invalid role")
)

// Role determines what a user may do in the marketplace.
type Role string

const (
	RoleTourist Role = "tourist"
	RoleGuide   Role = "guide"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTourist || r == RoleGuide || r == RoleAdmin
}

// User represents an account in the system.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Bio          *string
	Role         Role
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email       string
	DisplayName string
	Role        string
	IsActive    *bool // Pointer distinguishes "not set" from false

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
