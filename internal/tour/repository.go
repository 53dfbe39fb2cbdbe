package tour

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Tour) error
	GetByID(ctx context.Context, id string) (*Tour, error)
	List(ctx context.Context, filter Filter) ([]*Tour, int, error)
	Update(ctx context.Context, t *Tour) error
	Delete(ctx context.Context, id string) error
	SetPhotos(ctx context.Context, tourID string, fileIDs []string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// photosSubquery aggregates a tour's photo file ids as a JSON array, in
// display order.
const photosSubquery = `
	COALESCE(
		(
			SELECT json_agg(tp.file_id ORDER BY tp.position)
			FROM public.tour_photos tp
			WHERE tp.tour_id = t.id
		),
		'[]'::json
	)
`

func (r *pgxRepository) Create(ctx context.Context, t *Tour) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.tours").
		Columns(
			"guide_id", "title", "summary", "description", "category",
			"city", "country", "price_cents", "duration_minutes", "max_group_size",
			"open_minute", "close_minute", "slot_granularity_minutes", "is_active",
		).
		Values(
			t.GuideID, t.Title, t.Summary, t.Description, t.Category,
			t.City, t.Country, t.PriceCents, t.DurationMinutes, t.MaxGroupSize,
			t.OpenMinute, t.CloseMinute, t.SlotGranularityMinutes, t.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create tour query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Tour, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"t.id", "t.guide_id", "u.display_name",
		"t.title", "t.summary", "t.description", "t.category",
		"t.city", "t.country", "t.price_cents", "t.duration_minutes", "t.max_group_size",
		"t.open_minute", "t.close_minute", "t.slot_granularity_minutes",
		photosSubquery+" AS photos",
		"t.is_active", "t.created_at", "t.updated_at",
	).
		From("public.tours t").
		Join("public.users u ON t.guide_id = u.id").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get tour query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var t Tour
	var guideName *string
	if err := row.Scan(
		&t.ID, &t.GuideID, &guideName,
		&t.Title, &t.Summary, &t.Description, &t.Category,
		&t.City, &t.Country, &t.PriceCents, &t.DurationMinutes, &t.MaxGroupSize,
		&t.OpenMinute, &t.CloseMinute, &t.SlotGranularityMinutes,
		&t.PhotoIDs,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get tour failed: %w", err)
	}
	if guideName != nil {
		t.GuideName = *guideName
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Tour, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"t.id", "t.guide_id", "u.display_name",
		"t.title", "t.summary", "t.description", "t.category",
		"t.city", "t.country", "t.price_cents", "t.duration_minutes", "t.max_group_size",
		"t.open_minute", "t.close_minute", "t.slot_granularity_minutes",
		photosSubquery+" AS photos",
		"t.is_active", "t.created_at", "t.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.tours t").
		Join("public.users u ON t.guide_id = u.id")

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"t.title": pattern},
			squirrel.ILike{"t.summary": pattern},
			squirrel.ILike{"t.city": pattern},
		})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"t.category": filter.Category})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"t.city": "%" + filter.City + "%"})
	}
	if filter.GuideID != "" {
		query = query.Where(squirrel.Eq{"t.guide_id": filter.GuideID})
	}
	if filter.OnlyActive {
		query = query.Where(squirrel.Eq{"t.is_active": true})
	}

	// Sorting
	orderBy := "t.created_at"
	if filter.SortBy != "" {
		orderBy = "t." + filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy + " " + orderDir)

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
		return nil, 0, fmt.Errorf("build list tours query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tours failed: %w", err)
	}
	defer rows.Close()

	var tours []*Tour
	var total int

	for rows.Next() {
		var t Tour
		var guideName *string
		if err := rows.Scan(
			&t.ID, &t.GuideID, &guideName,
			&t.Title, &t.Summary, &t.Description, &t.Category,
			&t.City, &t.Country, &t.PriceCents, &t.DurationMinutes, &t.MaxGroupSize,
			&t.OpenMinute, &t.CloseMinute, &t.SlotGranularityMinutes,
			&t.PhotoIDs,
			&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan tour failed: %w", err)
		}
		if guideName != nil {
			t.GuideName = *guideName
		}
		tours = append(tours, &t)
	}

	return tours, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Tour) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.tours").
		Set("title", t.Title).
		Set("summary", t.Summary).
		Set("description", t.Description).
		Set("category", t.Category).
		Set("city", t.City).
		Set("country", t.Country).
		Set("price_cents", t.PriceCents).
		Set("duration_minutes", t.DurationMinutes).
		Set("max_group_size", t.MaxGroupSize).
		Set("open_minute", t.OpenMinute).
		Set("close_minute", t.CloseMinute).
		Set("slot_granularity_minutes", t.SlotGranularityMinutes).
		Set("is_active", t.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update tour query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tour failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.tours").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete tour query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete tour failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPhotos replaces the tour's photo list in one transaction, keeping
// the given display order.
func (r *pgxRepository) SetPhotos(ctx context.Context, tourID string, fileIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set photos failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM public.tour_photos WHERE tour_id = $1`, tourID); err != nil {
		return fmt.Errorf("clear tour photos failed: %w", err)
	}

	for i, fileID := range fileIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO public.tour_photos (tour_id, file_id, position) VALUES ($1, $2, $3)`,
			tourID, fileID, i,
		); err != nil {
			return fmt.Errorf("insert tour photo failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}
