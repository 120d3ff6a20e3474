package repository

import (
	"context"
	"fmt"

	"github.com/eliasjuanpablo/wineapi/internal/data/entity"
	"github.com/eliasjuanpablo/wineapi/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type WineLineRepository interface {
	Create(ctx context.Context, line *entity.WineLine) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.WineLine, error)
	FindByWinery(ctx context.Context, wineryID uuid.UUID) ([]*entity.WineLine, error)
	Update(ctx context.Context, line *entity.WineLine) error
}

type wineLineRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWineLineRepository(db database.PgxIface, log *zap.Logger) WineLineRepository {
	return &wineLineRepository{
		db:  db,
		log: log.With(zap.String("repository", "wine_line")),
	}
}

func (r *wineLineRepository) Create(ctx context.Context, line *entity.WineLine) error {
	query := `
		INSERT INTO wine_lines (id, winery_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		line.ID,
		line.WineryID,
		line.Name,
		line.Description,
		line.CreatedAt,
		line.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create wine line",
			zap.Error(err),
			zap.String("winery_id", line.WineryID.String()),
			zap.String("name", line.Name),
		)
		return fmt.Errorf("create wine line %s: %w", line.Name, err)
	}

	return nil
}

func (r *wineLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WineLine, error) {
	query := `
		SELECT id, winery_id, name, description, created_at, updated_at
		FROM wine_lines
		WHERE id = $1
	`

	var line entity.WineLine
	err := r.db.QueryRow(ctx, query, id).Scan(
		&line.ID,
		&line.WineryID,
		&line.Name,
		&line.Description,
		&line.CreatedAt,
		&line.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wine line by ID",
			zap.Error(err),
			zap.String("wine_line_id", id.String()),
		)
		return nil, fmt.Errorf("find wine line by ID %s: %w", id.String(), err)
	}

	return &line, nil
}

func (r *wineLineRepository) FindByWinery(ctx context.Context, wineryID uuid.UUID) ([]*entity.WineLine, error) {
	query := `
		SELECT id, winery_id, name, description, created_at, updated_at
		FROM wine_lines
		WHERE winery_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, wineryID)
	if err != nil {
		r.log.Error("Failed to find wine lines by winery",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("find wine lines of winery %s: %w", wineryID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.WineLine
	for rows.Next() {
		var line entity.WineLine
		err := rows.Scan(
			&line.ID,
			&line.WineryID,
			&line.Name,
			&line.Description,
			&line.CreatedAt,
			&line.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wine line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, nil
}

func (r *wineLineRepository) Update(ctx context.Context, line *entity.WineLine) error {
	query := `
		UPDATE wine_lines
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, line.ID, line.Name, line.Description, line.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update wine line",
			zap.Error(err),
			zap.String("wine_line_id", line.ID.String()),
		)
		return fmt.Errorf("update wine line %s: %w", line.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wine line %s: %w", line.ID.String(), ErrNotFound)
	}

	return nil
}

type WineRepository interface {
	Create(ctx context.Context, wine *entity.Wine) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Wine, error)
	FindByWineLine(ctx context.Context, wineLineID uuid.UUID) ([]*entity.Wine, error)
	Update(ctx context.Context, wine *entity.Wine) error
}

type wineRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWineRepository(db database.PgxIface, log *zap.Logger) WineRepository {
	return &wineRepository{
		db:  db,
		log: log.With(zap.String("repository", "wine")),
	}
}

func (r *wineRepository) Create(ctx context.Context, wine *entity.Wine) error {
	query := `
		INSERT INTO wines (id, wine_line_id, varietal_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		wine.ID,
		wine.WineLineID,
		wine.VarietalID,
		wine.Name,
		wine.Description,
		wine.CreatedAt,
		wine.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create wine",
			zap.Error(err),
			zap.String("wine_line_id", wine.WineLineID.String()),
			zap.String("name", wine.Name),
		)
		return fmt.Errorf("create wine %s: %w", wine.Name, err)
	}

	return nil
}

func (r *wineRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Wine, error) {
	query := `
		SELECT id, wine_line_id, varietal_id, name, description, created_at, updated_at
		FROM wines
		WHERE id = $1
	`

	var wine entity.Wine
	err := r.db.QueryRow(ctx, query, id).Scan(
		&wine.ID,
		&wine.WineLineID,
		&wine.VarietalID,
		&wine.Name,
		&wine.Description,
		&wine.CreatedAt,
		&wine.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find wine by ID",
			zap.Error(err),
			zap.String("wine_id", id.String()),
		)
		return nil, fmt.Errorf("find wine by ID %s: %w", id.String(), err)
	}

	return &wine, nil
}

func (r *wineRepository) FindByWineLine(ctx context.Context, wineLineID uuid.UUID) ([]*entity.Wine, error) {
	query := `
		SELECT id, wine_line_id, varietal_id, name, description, created_at, updated_at
		FROM wines
		WHERE wine_line_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, wineLineID)
	if err != nil {
		r.log.Error("Failed to find wines by wine line",
			zap.Error(err),
			zap.String("wine_line_id", wineLineID.String()),
		)
		return nil, fmt.Errorf("find wines of wine line %s: %w", wineLineID.String(), err)
	}
	defer rows.Close()

	var wines []*entity.Wine
	for rows.Next() {
		var wine entity.Wine
		err := rows.Scan(
			&wine.ID,
			&wine.WineLineID,
			&wine.VarietalID,
			&wine.Name,
			&wine.Description,
			&wine.CreatedAt,
			&wine.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan wine row: %w", err)
		}
		wines = append(wines, &wine)
	}

	return wines, nil
}

func (r *wineRepository) Update(ctx context.Context, wine *entity.Wine) error {
	query := `
		UPDATE wines
		SET varietal_id = $2, name = $3, description = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		wine.ID, wine.VarietalID, wine.Name, wine.Description, wine.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update wine",
			zap.Error(err),
			zap.String("wine_id", wine.ID.String()),
		)
		return fmt.Errorf("update wine %s: %w", wine.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("wine %s: %w", wine.ID.String(), ErrNotFound)
	}

	return nil
}
