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

type RateRepository interface {
	Create(ctx context.Context, rate *entity.Rate) error
	FindByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*entity.Rate, error)
	CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error)
	AverageByEvent(ctx context.Context, eventID uuid.UUID) (float64, error)
}

type rateRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRateRepository(db database.PgxIface, log *zap.Logger) RateRepository {
	return &rateRepository{
		db:  db,
		log: log.With(zap.String("repository", "rate")),
	}
}

func (r *rateRepository) Create(ctx context.Context, rate *entity.Rate) error {
	query := `
		INSERT INTO rates (id, user_id, event_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		rate.ID,
		rate.UserID,
		rate.EventID,
		rate.Rating,
		rate.Comment,
		rate.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create rate",
			zap.Error(err),
			zap.String("event_id", rate.EventID.String()),
			zap.String("user_id", rate.UserID.String()),
		)
		return fmt.Errorf("create rate for event %s: %w", rate.EventID.String(), err)
	}

	r.log.Info("Rate created",
		zap.String("event_id", rate.EventID.String()),
		zap.Int("rating", rate.Rating),
	)
	return nil
}

func (r *rateRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*entity.Rate, error) {
	query := `
		SELECT id, user_id, event_id, rating, comment, created_at
		FROM rates
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, eventID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find rates by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find rates of event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var rates []*entity.Rate
	for rows.Next() {
		var rate entity.Rate
		err := rows.Scan(
			&rate.ID,
			&rate.UserID,
			&rate.EventID,
			&rate.Rating,
			&rate.Comment,
			&rate.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan rate row", zap.Error(err))
			return nil, fmt.Errorf("scan rate row: %w", err)
		}
		rates = append(rates, &rate)
	}

	return rates, nil
}

func (r *rateRepository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM rates WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count rates of event %s: %w", eventID.String(), err)
	}
	return count, nil
}

// AverageByEvent returns 0 for events nobody has rated yet.
func (r *rateRepository) AverageByEvent(ctx context.Context, eventID uuid.UUID) (float64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx,
		`SELECT AVG(rating) FROM rates WHERE event_id = $1`, eventID).Scan(&avg)

	if err != nil && err != pgx.ErrNoRows {
		return 0, fmt.Errorf("average rating of event %s: %w", eventID.String(), err)
	}
	if avg == nil {
		return 0, nil
	}

	return *avg, nil
}
