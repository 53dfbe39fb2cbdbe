package wishlist

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Add(ctx context.Context, userID, tourID string) (*Item, error)
	Remove(ctx context.Context, userID, tourID string) error
	RemoveMany(ctx context.Context, userID string, tourIDs []string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]*Item, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const itemColumns = `
	w.id, w.user_id, w.tour_id, w.created_at,
	t.title, t.city, t.country, t.category, t.price_cents, t.is_active
`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.UserID, &it.TourID, &it.SavedAt,
		&it.TourTitle, &it.TourCity, &it.TourCountry, &it.TourCategory,
		&it.PriceCents, &it.TourIsActive,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) Add(ctx context.Context, userID, tourID string) (*Item, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO wishlist_items (user_id, tour_id)
		VALUES ($1, $2)
		RETURNING id
	`, userID, tourID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrAlreadySaved
		}
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM wishlist_items w
		JOIN tours t ON t.id = w.tour_id
		WHERE w.id = $1
	`, id)
	return scanItem(row)
}

func (r *pgxRepository) Remove(ctx context.Context, userID, tourID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND tour_id = $2
	`, userID, tourID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) RemoveMany(ctx context.Context, userID string, tourIDs []string) (int, error) {
	if len(tourIDs) == 0 {
		return 0, nil
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND tour_id = ANY($2)
	`, userID, tourIDs)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM wishlist_items w
		JOIN tours t ON t.id = w.tour_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
