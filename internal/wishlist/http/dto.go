package http

import (
	"time"

	"github.com/fernwehlab/tour-booking-backend/internal/pkg/listview"
	"github.com/fernwehlab/tour-booking-backend/internal/wishlist"
)

// AddWishlistBody defines the payload for saving a tour.
type AddWishlistBody struct {
	TourID string `json:"tour_id" binding:"required,uuid"`
}

// RemoveManyBody defines the payload for removing several saved tours at once.
type RemoveManyBody struct {
	TourIDs []string `json:"tour_ids" binding:"required,min=1,dive,uuid"`
}

// ListWishlistRequest defines query parameters for the wishlist view.
type ListWishlistRequest struct {
	Keyword   string `form:"keyword"`
	Category  string `form:"category"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=saved_at price title"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
}

// WishlistItemResponse is the API shape of a saved tour.
type WishlistItemResponse struct {
	TourID     string    `json:"tour_id"`
	Title      string    `json:"title"`
	City       string    `json:"city"`
	Country    string    `json:"country"`
	Category   string    `json:"category"`
	PriceCents int       `json:"price_cents"`
	IsActive   bool      `json:"is_active"`
	SavedAt    time.Time `json:"saved_at"`
}

// NewWishlistItemResponse converts a saved tour to its API representation.
func NewWishlistItemResponse(it *wishlist.Item) WishlistItemResponse {
	return WishlistItemResponse{
		TourID:     it.TourID,
		Title:      it.TourTitle,
		City:       it.TourCity,
		Country:    it.TourCountry,
		Category:   it.TourCategory,
		PriceCents: it.PriceCents,
		IsActive:   it.TourIsActive,
		SavedAt:    it.SavedAt,
	}
}

// WishlistPageResponse is the derived page of the wishlist view.
type WishlistPageResponse struct {
	Items         []WishlistItemResponse `json:"items"`
	TotalFiltered int                    `json:"total_filtered"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"total_pages"`
}

// NewWishlistPageResponse converts a projected page to its API representation.
func NewWishlistPageResponse(page listview.Page[*wishlist.Item]) WishlistPageResponse {
	items := make([]WishlistItemResponse, len(page.Items))
	for i, it := range page.Items {
		items[i] = NewWishlistItemResponse(it)
	}
	return WishlistPageResponse{
		Items:         items,
		TotalFiltered: page.TotalFiltered,
		Page:          page.PageIndex,
		TotalPages:    page.TotalPages,
	}
}

// RemovedResponse reports how many saved tours a bulk removal deleted.
type RemovedResponse struct {
	Removed int `json:"removed"`
}
