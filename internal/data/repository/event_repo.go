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

// EventFilter narrows public event listings. Restaurants are events carrying
// a category whose name contains "restaurant"; they are kept out of the
// generic listing and served by their own endpoints.
type EventFilter struct {
	Search      string
	Categories  []string
	Tags        []string
	Restaurants bool
}

type EventRepository interface {
	CreateWithOccurrences(ctx context.Context, event *entity.Event, occurrences []*entity.EventOccurrence, categoryIDs, tagIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindPublic(ctx context.Context, filter EventFilter, limit, offset int) ([]*entity.Event, error)
	FindByWinery(ctx context.Context, wineryID uuid.UUID, restaurants bool) ([]*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	Cancel(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
	FindCategories(ctx context.Context, eventID uuid.UUID) ([]*entity.EventCategory, error)
	FindTags(ctx context.Context, eventID uuid.UUID) ([]*entity.Tag, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, winery_id, name, description, price, cancelled, cancellation_reason, created_at, updated_at`

// CreateWithOccurrences persists an event together with its generated
// occurrences and taxonomy links in a single transaction, so a failing
// schedule never leaves a half-created event behind.
func (r *eventRepository) CreateWithOccurrences(ctx context.Context, event *entity.Event, occurrences []*entity.EventOccurrence, categoryIDs, tagIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create event tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO events (id, winery_id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		event.ID,
		event.WineryID,
		event.Name,
		event.Description,
		event.Price,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
			zap.String("winery_id", event.WineryID.String()),
		)
		return fmt.Errorf("create event %s: %w", event.Name, err)
	}

	for _, occ := range occurrences {
		if err := insertOccurrenceTx(ctx, tx, occ); err != nil {
			r.log.Error("Failed to create occurrence",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
			)
			return err
		}
	}

	for _, categoryID := range categoryIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO event_categories (event_id, category_id) VALUES ($1, $2)`,
			event.ID, categoryID,
		)
		if err != nil {
			return fmt.Errorf("link event %s to category %s: %w", event.ID.String(), categoryID.String(), err)
		}
	}

	for _, tagID := range tagIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2)`,
			event.ID, tagID,
		)
		if err != nil {
			return fmt.Errorf("link event %s to tag %s: %w", event.ID.String(), tagID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create event tx: %w", err)
	}

	r.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("winery_id", event.WineryID.String()),
		zap.Int("occurrences", len(occurrences)),
	)
	return nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	var event entity.Event
	err := r.db.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.WineryID,
		&event.Name,
		&event.Description,
		&event.Price,
		&event.Cancelled,
		&event.CancellationReason,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return &event, nil
}

// FindPublic lists bookable events: not cancelled, owned by an approved
// winery and having at least one future non-cancelled occurrence.
func (r *eventRepository) FindPublic(ctx context.Context, filter EventFilter, limit, offset int) ([]*entity.Event, error) {
	restaurantCond := `NOT EXISTS`
	if filter.Restaurants {
		restaurantCond = `EXISTS`
	}

	query := `
		SELECT e.id, e.winery_id, e.name, e.description, e.price,
		       e.cancelled, e.cancellation_reason, e.created_at, e.updated_at
		FROM events e
		JOIN wineries w ON w.id = e.winery_id AND w.available_since IS NOT NULL
		WHERE e.cancelled IS NULL
		  AND EXISTS (
			SELECT 1 FROM event_occurrences o
			WHERE o.event_id = e.id AND o.start_at > NOW() AND o.cancelled IS NULL
		  )
		  AND ` + restaurantCond + ` (
			SELECT 1 FROM event_categories ec
			JOIN categories c ON c.id = ec.category_id
			WHERE ec.event_id = e.id AND c.name ILIKE '%restaurant%'
		  )
		  AND ($1 = '' OR e.name ILIKE '%' || $1 || '%' OR e.description ILIKE '%' || $1 || '%')
		  AND ($2::text[] IS NULL OR EXISTS (
			SELECT 1 FROM event_categories ec
			JOIN categories c ON c.id = ec.category_id
			WHERE ec.event_id = e.id AND c.name = ANY($2)
		  ))
		  AND ($3::text[] IS NULL OR EXISTS (
			SELECT 1 FROM event_tags et
			JOIN tags t ON t.id = et.tag_id
			WHERE et.event_id = e.id AND t.name = ANY($3)
		  ))
		ORDER BY e.name, e.id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query,
		filter.Search, nilIfEmpty(filter.Categories), nilIfEmpty(filter.Tags), limit, offset)
	if err != nil {
		r.log.Error("Failed to find public events", zap.Error(err))
		return nil, fmt.Errorf("find public events: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// FindByWinery lists a winery's own events, cancelled ones included.
func (r *eventRepository) FindByWinery(ctx context.Context, wineryID uuid.UUID, restaurants bool) ([]*entity.Event, error) {
	restaurantCond := `NOT EXISTS`
	if restaurants {
		restaurantCond = `EXISTS`
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.winery_id = $1
		  AND ` + restaurantCond + ` (
			SELECT 1 FROM event_categories ec
			JOIN categories c ON c.id = ec.category_id
			WHERE ec.event_id = e.id AND c.name ILIKE '%restaurant%'
		  )
		ORDER BY e.name, e.id
	`

	rows, err := r.db.Query(ctx, query, wineryID)
	if err != nil {
		r.log.Error("Failed to find winery events",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("find events of winery %s: %w", wineryID.String(), err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, description = $3, price = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.Name,
		event.Description,
		event.Price,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", event.ID.String()),
		)
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", event.ID.String(), ErrNotFound)
	}

	return nil
}

// Cancel is a no-op for an already-cancelled event; the cancel action is
// idempotent at the service level.
func (r *eventRepository) Cancel(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	query := `
		UPDATE events
		SET cancelled = $2, cancellation_reason = $3, updated_at = $2
		WHERE id = $1 AND cancelled IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, at, reason)
	if err != nil {
		r.log.Error("Failed to cancel event",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return fmt.Errorf("cancel event %s: %w", id.String(), err)
	}

	r.log.Info("Event cancelled",
		zap.String("event_id", id.String()),
		zap.String("reason", reason),
	)
	return nil
}

func (r *eventRepository) FindCategories(ctx context.Context, eventID uuid.UUID) ([]*entity.EventCategory, error) {
	query := `
		SELECT c.id, c.name
		FROM categories c
		JOIN event_categories ec ON ec.category_id = c.id
		WHERE ec.event_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("find categories of event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var categories []*entity.EventCategory
	for rows.Next() {
		var category entity.EventCategory
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, &category)
	}

	return categories, nil
}

func (r *eventRepository) FindTags(ctx context.Context, eventID uuid.UUID) ([]*entity.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = $1
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("find tags of event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var tags []*entity.Tag
	for rows.Next() {
		var tag entity.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag row: %w", err)
		}
		tags = append(tags, &tag)
	}

	return tags, nil
}

func (r *eventRepository) scanEvents(rows pgx.Rows) ([]*entity.Event, error) {
	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.WineryID,
			&event.Name,
			&event.Description,
			&event.Price,
			&event.Cancelled,
			&event.CancellationReason,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

func nilIfEmpty(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}
