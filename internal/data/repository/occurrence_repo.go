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

type OccurrenceRepository interface {
	Create(ctx context.Context, occurrence *entity.EventOccurrence) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.EventOccurrence, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID, includeCancelled bool) ([]*entity.EventOccurrence, error)
	FindUpcomingByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.EventOccurrence, error)
	Update(ctx context.Context, occurrence *entity.EventOccurrence) error
	Cancel(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

type occurrenceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOccurrenceRepository(db database.PgxIface, log *zap.Logger) OccurrenceRepository {
	return &occurrenceRepository{
		db:  db,
		log: log.With(zap.String("repository", "occurrence")),
	}
}

const occurrenceColumns = `id, event_id, start_at, end_at, vacancies, cancelled, cancellation_reason, created_at, updated_at`

// insertOccurrenceTx is shared with the event repository, which creates the
// initial occurrence set inside the event creation transaction.
func insertOccurrenceTx(ctx context.Context, tx pgx.Tx, occ *entity.EventOccurrence) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO event_occurrences (id, event_id, start_at, end_at, vacancies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		occ.ID,
		occ.EventID,
		occ.Start,
		occ.End,
		occ.Vacancies,
		occ.CreatedAt,
		occ.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create occurrence for event %s: %w", occ.EventID.String(), err)
	}
	return nil
}

func (r *occurrenceRepository) Create(ctx context.Context, occurrence *entity.EventOccurrence) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create occurrence tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertOccurrenceTx(ctx, tx, occurrence); err != nil {
		r.log.Error("Failed to create occurrence",
			zap.Error(err),
			zap.String("event_id", occurrence.EventID.String()),
		)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create occurrence tx: %w", err)
	}

	return nil
}

func (r *occurrenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EventOccurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM event_occurrences WHERE id = $1`

	var occ entity.EventOccurrence
	err := r.db.QueryRow(ctx, query, id).Scan(
		&occ.ID,
		&occ.EventID,
		&occ.Start,
		&occ.End,
		&occ.Vacancies,
		&occ.Cancelled,
		&occ.CancellationReason,
		&occ.CreatedAt,
		&occ.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find occurrence by ID",
			zap.Error(err),
			zap.String("occurrence_id", id.String()),
		)
		return nil, fmt.Errorf("find occurrence by ID %s: %w", id.String(), err)
	}

	return &occ, nil
}

// FindByEvent returns every occurrence of an event ordered by start time.
// Cancelled occurrences are included only for the owning winery's views.
func (r *occurrenceRepository) FindByEvent(ctx context.Context, eventID uuid.UUID, includeCancelled bool) ([]*entity.EventOccurrence, error) {
	query := `SELECT ` + occurrenceColumns + ` FROM event_occurrences WHERE event_id = $1`
	if !includeCancelled {
		query += ` AND cancelled IS NULL`
	}
	query += ` ORDER BY start_at`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find occurrences by event",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find occurrences of event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	return r.scanOccurrences(rows)
}

func (r *occurrenceRepository) FindUpcomingByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.EventOccurrence, error) {
	query := `
		SELECT ` + occurrenceColumns + `
		FROM event_occurrences
		WHERE event_id = $1 AND start_at > NOW() AND cancelled IS NULL
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find upcoming occurrences",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find upcoming occurrences of event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	return r.scanOccurrences(rows)
}

func (r *occurrenceRepository) Update(ctx context.Context, occurrence *entity.EventOccurrence) error {
	query := `
		UPDATE event_occurrences
		SET start_at = $2, end_at = $3, vacancies = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		occurrence.ID,
		occurrence.Start,
		occurrence.End,
		occurrence.Vacancies,
		occurrence.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update occurrence",
			zap.Error(err),
			zap.String("occurrence_id", occurrence.ID.String()),
		)
		return fmt.Errorf("update occurrence %s: %w", occurrence.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("occurrence %s: %w", occurrence.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *occurrenceRepository) Cancel(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	query := `
		UPDATE event_occurrences
		SET cancelled = $2, cancellation_reason = $3, updated_at = $2
		WHERE id = $1 AND cancelled IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, at, reason)
	if err != nil {
		r.log.Error("Failed to cancel occurrence",
			zap.Error(err),
			zap.String("occurrence_id", id.String()),
		)
		return fmt.Errorf("cancel occurrence %s: %w", id.String(), err)
	}

	r.log.Info("Occurrence cancelled",
		zap.String("occurrence_id", id.String()),
		zap.String("reason", reason),
	)
	return nil
}

func (r *occurrenceRepository) scanOccurrences(rows pgx.Rows) ([]*entity.EventOccurrence, error) {
	var occurrences []*entity.EventOccurrence
	for rows.Next() {
		var occ entity.EventOccurrence
		err := rows.Scan(
			&occ.ID,
			&occ.EventID,
			&occ.Start,
			&occ.End,
			&occ.Vacancies,
			&occ.Cancelled,
			&occ.CancellationReason,
			&occ.CreatedAt,
			&occ.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan occurrence row", zap.Error(err))
			return nil, fmt.Errorf("scan occurrence row: %w", err)
		}
		occurrences = append(occurrences, &occ)
	}

	return occurrences, nil
}
