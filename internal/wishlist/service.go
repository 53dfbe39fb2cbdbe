package wishlist

import (
	"context"
	"strings"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/listview"
	"github.com/fernwehlab/tour-booking-backend/internal/tour"
)

// ListQuery shapes the view over a user's saved tours. Filtering, sorting
// and pagination happen in memory: wishlists are small per user, and the
// projection keeps the page consistent with selection semantics.
type ListQuery struct {
	Keyword   string
	Category  string
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

type Service interface {
	// Add saves a tour to the user's wishlist. Saving the same tour
	// twice is a conflict.
	Add(ctx context.Context, userID, tourID string) (*Item, error)
	Remove(ctx context.Context, userID, tourID string) error
	RemoveMany(ctx context.Context, userID string, tourIDs []string) (int, error)
	List(ctx context.Context, userID string, q ListQuery) (listview.Page[*Item], error)
}

type service struct {
	repo        Repository
	tourService tour.Service
}

func NewService(repo Repository, tourService tour.Service) Service {
	return &service{
		repo:        repo,
		tourService: tourService,
	}
}

func (s *service) Add(ctx context.Context, userID, tourID string) (*Item, error) {
	if _, err := s.tourService.GetByID(ctx, tourID); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, userID, tourID)
}

func (s *service) Remove(ctx context.Context, userID, tourID string) error {
	return s.repo.Remove(ctx, userID, tourID)
}

func (s *service) RemoveMany(ctx context.Context, userID string, tourIDs []string) (int, error) {
	return s.repo.RemoveMany(ctx, userID, tourIDs)
}

func (s *service) List(ctx context.Context, userID string, q ListQuery) (listview.Page[*Item], error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return listview.Page[*Item]{}, err
	}

	view := listview.New[*Item, string](func(it *Item) string { return it.TourID }, q.PageSize)
	view.SetSource(items)
	view.SetFilter(matcher(q))
	view.SetSort(comparator(q))
	view.SetPage(q.Page)
	return view.VisiblePage(), nil
}

func matcher(q ListQuery) func(*Item) bool {
	keyword := strings.ToLower(strings.TrimSpace(q.Keyword))
	if keyword == "" && q.Category == "" {
		return nil
	}
	return func(it *Item) bool {
		if q.Category != "" && it.TourCategory != q.Category {
			return false
		}
		if keyword == "" {
			return true
		}
		return strings.Contains(strings.ToLower(it.TourTitle), keyword) ||
			strings.Contains(strings.ToLower(it.TourCity), keyword) ||
			strings.Contains(strings.ToLower(it.TourCountry), keyword)
	}
}

// comparator maps sort parameters to an ordering. The repository already
// returns newest first, so "saved_at desc" keeps source order via nil.
func comparator(q ListQuery) func(a, b *Item) bool {
	desc := q.SortOrder == "desc"

	var less func(a, b *Item) bool
	switch q.SortBy {
	case "price":
		less = func(a, b *Item) bool { return a.PriceCents < b.PriceCents }
	case "title":
		less = func(a, b *Item) bool { return a.TourTitle < b.TourTitle }
	case "saved_at":
		less = func(a, b *Item) bool { return a.SavedAt.Before(b.SavedAt) }
	default:
		return nil
	}

	if desc {
		inner := less
		return func(a, b *Item) bool { return inner(b, a) }
	}
	return less
}
