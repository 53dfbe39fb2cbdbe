package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create persists a new booking. The insert runs in a transaction that
	// holds a per-(tour, date) advisory lock and re-checks for overlap
	// against committed rows, so two concurrent requests validated against
	// the same snapshot cannot both land. Returns ErrTimeConflict when the
	// re-check finds a blocking overlap.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ListForDate returns every booking for the tour on the given calendar
	// date, regardless of status. Used as the validation snapshot and for
	// availability computation.
	ListForDate(ctx context.Context, tourID string, date time.Time) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `
	b.id, b.tour_id, t.title, t.guide_id, b.user_id, u.display_name,
	b.date, b.start_minute, b.end_minute, b.party_size, b.status,
	b.created_at, b.updated_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var userName *string
	err := row.Scan(
		&b.ID, &b.TourID, &b.TourTitle, &b.GuideID, &b.UserID, &userName,
		&b.Date, &b.StartMinute, &b.EndMinute, &b.PartySize, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	if userName != nil {
		b.UserName = *userName
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize all writers for this tour/date. The lock is released at
	// commit or rollback.
	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1 || ':' || $2::text, 0))`,
		b.TourID, b.Date.Format("2006-01-02"),
	); err != nil {
		return fmt.Errorf("acquire booking lock failed: %w", err)
	}

	// Re-check against committed rows while holding the lock. The caller
	// already validated against a snapshot; this closes the race.
	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE tour_id = $1
			  AND date = $2
			  AND status IN ('pending', 'confirmed')
			  AND start_minute < $3
			  AND end_minute > $4
		)
	`, b.TourID, b.Date, b.EndMinute, b.StartMinute).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrTimeConflict
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO public.bookings (tour_id, user_id, date, start_minute, end_minute, party_size, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, b.TourID, b.UserID, b.Date, b.StartMinute, b.EndMinute, b.PartySize, b.Status).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.tours t ON b.tour_id = t.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	return scanBooking(r.pool.QueryRow(ctx, query, args...))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns + ", count(*) OVER() AS total_count").
		From("public.bookings b").
		Join("public.tours t ON b.tour_id = t.id").
		Join("public.users u ON b.user_id = u.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.TourID != "" {
		query = query.Where(squirrel.Eq{"b.tour_id": filter.TourID})
	}
	if filter.GuideID != "" {
		query = query.Where(squirrel.Eq{"t.guide_id": filter.GuideID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.date": filter.DateTo})
	}

	// Sorting
	orderBy := "b.date"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy+" "+orderDir, "b.start_minute ASC")

	// Pagination
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		var userName *string
		if err := rows.Scan(
			&b.ID, &b.TourID, &b.TourTitle, &b.GuideID, &b.UserID, &userName,
			&b.Date, &b.StartMinute, &b.EndMinute, &b.PartySize, &b.Status,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		if userName != nil {
			b.UserName = *userName
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListForDate(ctx context.Context, tourID string, date time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.tours t ON b.tour_id = t.id").
		Join("public.users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.tour_id": tourID}).
		Where(squirrel.Eq{"b.date": date}).
		OrderBy("b.start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list for date query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings for date failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		var userName *string
		if err := rows.Scan(
			&b.ID, &b.TourID, &b.TourTitle, &b.GuideID, &b.UserID, &userName,
			&b.Date, &b.StartMinute, &b.EndMinute, &b.PartySize, &b.Status,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		if userName != nil {
			b.UserName = *userName
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
