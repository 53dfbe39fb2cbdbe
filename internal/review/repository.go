package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rv *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	GetByBookingID(ctx context.Context, bookingID string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Summarize(ctx context.Context, tourID string) (*Summary, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const reviewColumns = `
	r.id, r.booking_id, r.tour_id, r.user_id, u.display_name,
	r.rating, r.comment, r.created_at, r.updated_at
`

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	var userName *string
	err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.TourID, &rv.UserID, &userName,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan review failed: %w", err)
	}
	if userName != nil {
		rv.UserName = *userName
	}
	return &rv, nil
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	const query = `
		INSERT INTO public.reviews (booking_id, tour_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		rv.BookingID, rv.TourID, rv.UserID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyReviewed
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reviewColumns).
		From("public.reviews r").
		Join("public.users u ON r.user_id = u.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}
	return scanReview(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reviewColumns).
		From("public.reviews r").
		Join("public.users u ON r.user_id = u.id").
		Where(squirrel.Eq{"r.booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review by booking query failed: %w", err)
	}
	return scanReview(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(reviewColumns + ", count(*) OVER() AS total_count").
		From("public.reviews r").
		Join("public.users u ON r.user_id = u.id")

	if filter.TourID != "" {
		query = query.Where(squirrel.Eq{"r.tour_id": filter.TourID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}

	query = query.OrderBy("r.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var total int

	for rows.Next() {
		var rv Review
		var userName *string
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.TourID, &rv.UserID, &userName,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		if userName != nil {
			rv.UserName = *userName
		}
		reviews = append(reviews, &rv)
	}

	return reviews, total, nil
}

func (r *pgxRepository) Summarize(ctx context.Context, tourID string) (*Summary, error) {
	const query = `
		SELECT count(*), COALESCE(avg(rating), 0)
		FROM public.reviews
		WHERE tour_id = $1
	`

	s := &Summary{TourID: tourID}
	if err := r.pool.QueryRow(ctx, query, tourID).Scan(&s.ReviewCount, &s.AverageRating); err != nil {
		return nil, fmt.Errorf("summarize reviews failed: %w", err)
	}
	return s, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.reviews WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
