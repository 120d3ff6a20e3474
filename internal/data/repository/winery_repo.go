package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WineryRepository interface {
	Create(ctx context.Context, winery *entity.Winery) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Winery, error)
	FindApproved(ctx context.Context, search string, limit, offset int) ([]*entity.Winery, error)
	CountApproved(ctx context.Context, search string) (int64, error)
	FindPending(ctx context.Context) ([]*entity.Winery, error)
	FindNear(ctx context.Context, lat, lng, radiusKm float64) ([]*entity.Winery, error)
	Update(ctx context.Context, winery *entity.Winery) error
	Approve(ctx context.Context, id uuid.UUID, since time.Time) error
}

type wineryRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWineryRepository(db database.PgxIface, log *zap.Logger) WineryRepository {
	return &wineryRepository{
		db:  db,
		log: log.With(zap.String("repository", "winery")),
	}
}

const wineryColumns = `id, name, description, website, latitude, longitude, available_since, created_at, updated_at`

func (r *wineryRepository) Create(ctx context.Context, winery *entity.Winery) error {
	query := `
		INSERT INTO wineries (id, name, description, website, latitude, longitude, available_since, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		winery.ID,
		winery.Name,
		winery.Description,
		winery.Website,
		winery.Latitude,
		winery.Longitude,
		winery.AvailableSince,
		winery.CreatedAt,
		winery.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create winery",
			zap.Error(err),
			zap.String("name", winery.Name),
		)
		return fmt.Errorf("create winery %s: %w", winery.Name, err)
	}

	return nil
}

func (r *wineryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Winery, error) {
	query := `SELECT ` + wineryColumns + ` FROM wineries WHERE id = $1`

	var winery entity.Winery
	err := r.db.QueryRow(ctx, query, id).Scan(
		&winery.ID,
		&winery.Name,
		&winery.Description,
		&winery.Website,
		&winery.Latitude,
		&winery.Longitude,
		&winery.AvailableSince,
		&winery.CreatedAt,
		&winery.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find winery by ID",
			zap.Error(err),
			zap.String("winery_id", id.String()),
		)
		return nil, fmt.Errorf("find winery by ID %s: %w", id.String(), err)
	}

	return &winery, nil
}

func (r *wineryRepository) FindApproved(ctx context.Context, search string, limit, offset int) ([]*entity.Winery, error) {
	query := `
		SELECT ` + wineryColumns + `
		FROM wineries
		WHERE available_since IS NOT NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, search, limit, offset)
	if err != nil {
		r.log.Error("Failed to find approved wineries", zap.Error(err))
		return nil, fmt.Errorf("find approved wineries: %w", err)
	}
	defer rows.Close()

	return r.scanWineries(rows)
}

func (r *wineryRepository) CountApproved(ctx context.Context, search string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM wineries
		WHERE available_since IS NOT NULL
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, search).Scan(&count); err != nil {
		r.log.Error("Failed to count approved wineries", zap.Error(err))
		return 0, fmt.Errorf("count approved wineries: %w", err)
	}

	return count, nil
}

func (r *wineryRepository) FindPending(ctx context.Context) ([]*entity.Winery, error) {
	query := `
		SELECT ` + wineryColumns + `
		FROM wineries
		WHERE available_since IS NULL
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find pending wineries", zap.Error(err))
		return nil, fmt.Errorf("find pending wineries: %w", err)
	}
	defer rows.Close()

	return r.scanWineries(rows)
}

// FindNear returns approved wineries within radiusKm of the given point,
// closest first, using the haversine formula over stored coordinates.
func (r *wineryRepository) FindNear(ctx context.Context, lat, lng, radiusKm float64) ([]*entity.Winery, error) {
	query := `
		SELECT ` + wineryColumns + `
		FROM (
			SELECT *,
				6371 * 2 * ASIN(SQRT(
					POWER(SIN(RADIANS($1 - latitude) / 2), 2) +
					COS(RADIANS(latitude)) * COS(RADIANS($1)) *
					POWER(SIN(RADIANS($2 - longitude) / 2), 2)
				)) AS distance_km
			FROM wineries
			WHERE available_since IS NOT NULL
		) nearby
		WHERE distance_km <= $3
		ORDER BY distance_km
	`

	rows, err := r.db.Query(ctx, query, lat, lng, radiusKm)
	if err != nil {
		r.log.Error("Failed to find nearby wineries",
			zap.Error(err),
			zap.Float64("lat", lat),
			zap.Float64("lng", lng),
			zap.Float64("radius_km", radiusKm),
		)
		return nil, fmt.Errorf("find nearby wineries: %w", err)
	}
	defer rows.Close()

	return r.scanWineries(rows)
}

func (r *wineryRepository) Update(ctx context.Context, winery *entity.Winery) error {
	query := `
		UPDATE wineries
		SET name = $2, description = $3, website = $4, latitude = $5, longitude = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		winery.ID,
		winery.Name,
		winery.Description,
		winery.Website,
		winery.Latitude,
		winery.Longitude,
		winery.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update winery",
			zap.Error(err),
			zap.String("winery_id", winery.ID.String()),
		)
		return fmt.Errorf("update winery %s: %w", winery.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("winery %s: %w", winery.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *wineryRepository) Approve(ctx context.Context, id uuid.UUID, since time.Time) error {
	query := `
		UPDATE wineries
		SET available_since = $2, updated_at = $2
		WHERE id = $1 AND available_since IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, since)
	if err != nil {
		r.log.Error("Failed to approve winery",
			zap.Error(err),
			zap.String("winery_id", id.String()),
		)
		return fmt.Errorf("approve winery %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("pending winery %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Winery approved", zap.String("winery_id", id.String()))
	return nil
}

func (r *wineryRepository) scanWineries(rows pgx.Rows) ([]*entity.Winery, error) {
	var wineries []*entity.Winery
	for rows.Next() {
		var winery entity.Winery
		err := rows.Scan(
			&winery.ID,
			&winery.Name,
			&winery.Description,
			&winery.Website,
			&winery.Latitude,
			&winery.Longitude,
			&winery.AvailableSince,
			&winery.CreatedAt,
			&winery.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan winery row", zap.Error(err))
			return nil, fmt.Errorf("scan winery row: %w", err)
		}
		wineries = append(wineries, &winery)
	}

	return wineries, nil
}
