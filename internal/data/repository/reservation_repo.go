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

// ReservationDetail joins a reservation with the occurrence and event it
// was made for, as shown in tourist and winery reservation listings.
type ReservationDetail struct {
	Reservation entity.Reservation
	EventID     uuid.UUID
	EventName   string
	Start       time.Time
	End         *time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation, allowOversell bool) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ReservationDetail, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	FindByOccurrence(ctx context.Context, occurrenceID uuid.UUID) ([]*ReservationDetail, error)
	FindByWinery(ctx context.Context, wineryID uuid.UUID, limit, offset int) ([]*ReservationDetail, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string, at time.Time) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

// Create books seats on an occurrence. The occurrence row is locked for the
// duration of the transaction so concurrent requests cannot both take the
// last seats. With allowOversell the vacancy check is skipped and the
// counter may go negative.
func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation, allowOversell bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var vacancies int
	var cancelled *time.Time
	err = tx.QueryRow(ctx, `
		SELECT vacancies, cancelled
		FROM event_occurrences
		WHERE id = $1
		FOR UPDATE
	`, reservation.OccurrenceID).Scan(&vacancies, &cancelled)

	if err == pgx.ErrNoRows {
		return fmt.Errorf("occurrence %s: %w", reservation.OccurrenceID.String(), ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock occurrence",
			zap.Error(err),
			zap.String("occurrence_id", reservation.OccurrenceID.String()),
		)
		return fmt.Errorf("lock occurrence %s: %w", reservation.OccurrenceID.String(), err)
	}

	if cancelled != nil {
		return fmt.Errorf("occurrence %s: %w", reservation.OccurrenceID.String(), ErrCancelled)
	}
	if !allowOversell && vacancies < reservation.AttendeeNumber {
		return fmt.Errorf("occurrence %s has %d vacancies, requested %d: %w",
			reservation.OccurrenceID.String(), vacancies, reservation.AttendeeNumber, ErrNoVacancy)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reservations (id, user_id, occurrence_id, attendee_number, paid_amount, observations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		reservation.ID,
		reservation.UserID,
		reservation.OccurrenceID,
		reservation.AttendeeNumber,
		reservation.PaidAmount,
		reservation.Observations,
		reservation.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("occurrence_id", reservation.OccurrenceID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE event_occurrences
		SET vacancies = vacancies - $2, updated_at = NOW()
		WHERE id = $1
	`, reservation.OccurrenceID, reservation.AttendeeNumber)
	if err != nil {
		return fmt.Errorf("decrement vacancies of occurrence %s: %w", reservation.OccurrenceID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve tx: %w", err)
	}

	r.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("occurrence_id", reservation.OccurrenceID.String()),
		zap.Int("attendees", reservation.AttendeeNumber),
	)
	return nil
}

const reservationColumns = `id, user_id, occurrence_id, attendee_number, paid_amount, observations, cancelled, cancellation_reason, created_at`

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	var res entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.UserID,
		&res.OccurrenceID,
		&res.AttendeeNumber,
		&res.PaidAmount,
		&res.Observations,
		&res.Cancelled,
		&res.CancellationReason,
		&res.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &res, nil
}

const reservationDetailQuery = `
	SELECT r.id, r.user_id, r.occurrence_id, r.attendee_number, r.paid_amount,
	       r.observations, r.cancelled, r.cancellation_reason, r.created_at,
	       e.id, e.name, o.start_at, o.end_at
	FROM reservations r
	JOIN event_occurrences o ON o.id = r.occurrence_id
	JOIN events e ON e.id = o.event_id
`

func (r *reservationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ReservationDetail, error) {
	query := reservationDetailQuery + `
		WHERE r.user_id = $1
		ORDER BY o.start_at DESC, r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reservations of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

func (r *reservationRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reservations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count reservations of user %s: %w", userID.String(), err)
	}
	return count, nil
}

func (r *reservationRepository) FindByOccurrence(ctx context.Context, occurrenceID uuid.UUID) ([]*ReservationDetail, error) {
	query := reservationDetailQuery + `
		WHERE r.occurrence_id = $1
		ORDER BY r.created_at
	`

	rows, err := r.db.Query(ctx, query, occurrenceID)
	if err != nil {
		r.log.Error("Failed to find reservations by occurrence",
			zap.Error(err),
			zap.String("occurrence_id", occurrenceID.String()),
		)
		return nil, fmt.Errorf("find reservations of occurrence %s: %w", occurrenceID.String(), err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

func (r *reservationRepository) FindByWinery(ctx context.Context, wineryID uuid.UUID, limit, offset int) ([]*ReservationDetail, error) {
	query := reservationDetailQuery + `
		WHERE e.winery_id = $1
		ORDER BY o.start_at DESC, r.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, wineryID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by winery",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("find reservations of winery %s: %w", wineryID.String(), err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

// Cancel does not restore vacancies, the seats stay released by the winery
// explicitly if needed.
func (r *reservationRepository) Cancel(ctx context.Context, id uuid.UUID, reason string, at time.Time) error {
	query := `
		UPDATE reservations
		SET cancelled = $2, cancellation_reason = $3
		WHERE id = $1 AND cancelled IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, at, reason)
	if err != nil {
		r.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("cancel reservation %s: %w", id.String(), err)
	}

	r.log.Info("Reservation cancelled",
		zap.String("reservation_id", id.String()),
		zap.String("reason", reason),
	)
	return nil
}

func (r *reservationRepository) scanDetails(rows pgx.Rows) ([]*ReservationDetail, error) {
	var details []*ReservationDetail
	for rows.Next() {
		var d ReservationDetail
		err := rows.Scan(
			&d.Reservation.ID,
			&d.Reservation.UserID,
			&d.Reservation.OccurrenceID,
			&d.Reservation.AttendeeNumber,
			&d.Reservation.PaidAmount,
			&d.Reservation.Observations,
			&d.Reservation.Cancelled,
			&d.Reservation.CancellationReason,
			&d.Reservation.CreatedAt,
			&d.EventID,
			&d.EventName,
			&d.Start,
			&d.End,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		details = append(details, &d)
	}

	return details, nil
}
