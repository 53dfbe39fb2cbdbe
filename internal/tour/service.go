package tour

import (
	"context"
	"strings"
)

// CreateRequest carries the fields for listing a new tour.
type CreateRequest struct {
	GuideID                string
	Title                  string
	Summary                string
	Description            string
	Category               string
	City                   string
	Country                string
	PriceCents             int
	DurationMinutes        int
	MaxGroupSize           int
	OpenMinute             *int
	CloseMinute            *int
	SlotGranularityMinutes *int
}

// UpdateRequest carries partial updates to a tour listing.
type UpdateRequest struct {
	Title                  *string
	Summary                *string
	Description            *string
	Category               *string
	City                   *string
	Country                *string
	PriceCents             *int
	DurationMinutes        *int
	MaxGroupSize           *int
	OpenMinute             *int
	CloseMinute            *int
	SlotGranularityMinutes *int
	IsActive               *bool
	PhotoIDs               []string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tour, error)
	GetByID(ctx context.Context, id string) (*Tour, error)
	List(ctx context.Context, filter Filter) ([]*Tour, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isAdmin bool) (*Tour, error)
	Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Tour, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !IsValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.MaxGroupSize <= 0 {
		return nil, ErrInvalidGroupSize
	}

	t := &Tour{
		GuideID:                req.GuideID,
		Title:                  req.Title,
		Summary:                req.Summary,
		Description:            req.Description,
		Category:               req.Category,
		City:                   req.City,
		Country:                req.Country,
		PriceCents:             req.PriceCents,
		DurationMinutes:        req.DurationMinutes,
		MaxGroupSize:           req.MaxGroupSize,
		OpenMinute:             DefaultOpenMinute,
		CloseMinute:            DefaultCloseMinute,
		SlotGranularityMinutes: DefaultSlotGranularity,
		IsActive:               true,
	}

	if req.OpenMinute != nil {
		t.OpenMinute = *req.OpenMinute
	}
	if req.CloseMinute != nil {
		t.CloseMinute = *req.CloseMinute
	}
	if req.SlotGranularityMinutes != nil && *req.SlotGranularityMinutes > 0 {
		t.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}

	if t.OpenMinute >= t.CloseMinute {
		return nil, ErrInvalidHours
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Tour, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Tour, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterID string, isAdmin bool) (*Tour, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Only the owning guide or an admin may edit a listing.
	if !isAdmin && t.GuideID != updaterID {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		t.Title = *req.Title
	}
	if req.Summary != nil {
		t.Summary = *req.Summary
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		if !IsValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		t.Category = *req.Category
	}
	if req.City != nil {
		t.City = *req.City
	}
	if req.Country != nil {
		t.Country = *req.Country
	}
	if req.PriceCents != nil {
		t.PriceCents = *req.PriceCents
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		t.DurationMinutes = *req.DurationMinutes
	}
	if req.MaxGroupSize != nil {
		if *req.MaxGroupSize <= 0 {
			return nil, ErrInvalidGroupSize
		}
		t.MaxGroupSize = *req.MaxGroupSize
	}
	if req.OpenMinute != nil {
		t.OpenMinute = *req.OpenMinute
	}
	if req.CloseMinute != nil {
		t.CloseMinute = *req.CloseMinute
	}
	if req.SlotGranularityMinutes != nil && *req.SlotGranularityMinutes > 0 {
		t.SlotGranularityMinutes = *req.SlotGranularityMinutes
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if t.OpenMinute >= t.CloseMinute {
		return nil, ErrInvalidHours
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if req.PhotoIDs != nil {
		if err := s.repo.SetPhotos(ctx, t.ID, req.PhotoIDs); err != nil {
			return nil, err
		}
		t.PhotoIDs = req.PhotoIDs
	}

	return t, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterID string, isAdmin bool) error {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && t.GuideID != deleterID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}
