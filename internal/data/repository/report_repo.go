package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eliasjuanpablo/wineapi/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportWindow bounds a report to occurrences running inside [From, To].
// Nil bounds are open. Ratings are bounded by their creation time instead.
type ReportWindow struct {
	From *time.Time
	To   *time.Time
}

type NameCount struct {
	Name  string
	Count int
}

type MonthCount struct {
	Month int
	Count int
}

type NameAvg struct {
	Name    string
	Average float64
}

type NameSum struct {
	Name  string
	Total float64
}

// ReportRepository backs the winery dashboard aggregates. Every method is
// scoped to one winery and honors the optional reservation window.
type ReportRepository interface {
	ReservationsByEvent(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error)
	ReservationsByMonth(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]MonthCount, error)
	AttendeeLanguages(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error)
	AttendeeCountries(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error)
	AttendeeBirthDates(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]time.Time, error)
	EventsByRating(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameAvg, error)
	EarningsByEvent(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameSum, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

// windowClause filters on the occurrence aliased as o. The casts keep pgx
// from sending untyped NULLs.
const windowClause = `
	AND ($2::timestamptz IS NULL OR o.start_at >= $2)
	AND ($3::timestamptz IS NULL OR o.end_at <= $3)
`

// ReservationsByEvent lists the ten least reserved events, fewest first.
func (r *reportRepository) ReservationsByEvent(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error) {
	query := `
		SELECT e.name, COUNT(r.id)
		FROM reservations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		WHERE e.winery_id = $1` + windowClause + `
		GROUP BY e.id, e.name
		ORDER BY COUNT(r.id), e.name
		LIMIT 10
	`

	return r.queryNameCounts(ctx, "reservations by event", query, wineryID, window)
}

// ReservationsByMonth counts reservations per calendar month of the
// occurrence start. Months with no reservations are absent here; the
// service zero-fills them.
func (r *reportRepository) ReservationsByMonth(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]MonthCount, error) {
	query := `
		SELECT EXTRACT(MONTH FROM o.start_at)::int, COUNT(r.id)
		FROM reservations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		WHERE e.winery_id = $1` + windowClause + `
		GROUP BY EXTRACT(MONTH FROM o.start_at)
		ORDER BY EXTRACT(MONTH FROM o.start_at)
	`

	rows, err := r.db.Query(ctx, query, wineryID, window.From, window.To)
	if err != nil {
		r.log.Error("Failed to query reservations by month",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("reservations by month: %w", err)
	}
	defer rows.Close()

	var counts []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan month count row: %w", err)
		}
		counts = append(counts, mc)
	}

	return counts, nil
}

func (r *reportRepository) AttendeeLanguages(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error) {
	query := `
		SELECT l.name, COUNT(r.id)
		FROM reservations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		JOIN users u ON u.id = r.user_id
		JOIN languages l ON l.id = u.language_id
		WHERE e.winery_id = $1` + windowClause + `
		GROUP BY l.id, l.name
		ORDER BY COUNT(r.id) DESC, l.name
	`

	return r.queryNameCounts(ctx, "attendee languages", query, wineryID, window)
}

func (r *reportRepository) AttendeeCountries(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error) {
	query := `
		SELECT c.name, COUNT(r.id)
		FROM reservations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		JOIN users u ON u.id = r.user_id
		JOIN countries c ON c.id = u.country_id
		WHERE e.winery_id = $1` + windowClause + `
		GROUP BY c.id, c.name
		ORDER BY COUNT(r.id) DESC, c.name
	`

	return r.queryNameCounts(ctx, "attendee countries", query, wineryID, window)
}

// AttendeeBirthDates returns one birth date per reservation whose user has
// one set. Age group bucketing happens in the service.
func (r *reportRepository) AttendeeBirthDates(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]time.Time, error) {
	query := `
		SELECT u.birth_date
		FROM reservations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		JOIN users u ON u.id = r.user_id
		WHERE e.winery_id = $1 AND u.birth_date IS NOT NULL` + windowClause + `
	`

	rows, err := r.db.Query(ctx, query, wineryID, window.From, window.To)
	if err != nil {
		r.log.Error("Failed to query attendee birth dates",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("attendee birth dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan birth date row: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, nil
}

// EventsByRating lists the ten best rated events, highest average first.
// Events with no ratings inside the window average to zero. The window
// applies to rating creation time, not occurrence dates.
func (r *reportRepository) EventsByRating(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameAvg, error) {
	query := `
		SELECT e.name, COALESCE(AVG(rt.rating), 0)::float8
		FROM events e
		LEFT JOIN rates rt ON rt.event_id = e.id
			AND ($2::timestamptz IS NULL OR rt.created_at >= $2)
			AND ($3::timestamptz IS NULL OR rt.created_at <= $3)
		WHERE e.winery_id = $1
		GROUP BY e.id, e.name
		ORDER BY COALESCE(AVG(rt.rating), 0) DESC, e.name
		LIMIT 10
	`

	rows, err := r.db.Query(ctx, query, wineryID, window.From, window.To)
	if err != nil {
		r.log.Error("Failed to query events by rating",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("events by rating: %w", err)
	}
	defer rows.Close()

	var averages []NameAvg
	for rows.Next() {
		var na NameAvg
		if err := rows.Scan(&na.Name, &na.Average); err != nil {
			return nil, fmt.Errorf("scan rating average row: %w", err)
		}
		averages = append(averages, na)
	}

	return averages, nil
}

// EarningsByEvent lists the ten highest earning events by paid amount.
func (r *reportRepository) EarningsByEvent(ctx context.Context, wineryID uuid.UUID, window ReportWindow) ([]NameSum, error) {
	query := `
		SELECT e.name, COALESCE(SUM(r.paid_amount), 0)::float8
		FROM reservations r
		JOIN event_occurrences o ON o.id = r.occurrence_id
		JOIN events e ON e.id = o.event_id
		WHERE e.winery_id = $1` + windowClause + `
		GROUP BY e.id, e.name
		ORDER BY SUM(r.paid_amount) DESC, e.name
		LIMIT 10
	`

	rows, err := r.db.Query(ctx, query, wineryID, window.From, window.To)
	if err != nil {
		r.log.Error("Failed to query earnings by event",
			zap.Error(err),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("earnings by event: %w", err)
	}
	defer rows.Close()

	var sums []NameSum
	for rows.Next() {
		var ns NameSum
		if err := rows.Scan(&ns.Name, &ns.Total); err != nil {
			return nil, fmt.Errorf("scan earnings row: %w", err)
		}
		sums = append(sums, ns)
	}

	return sums, nil
}

func (r *reportRepository) queryNameCounts(ctx context.Context, what, query string, wineryID uuid.UUID, window ReportWindow) ([]NameCount, error) {
	rows, err := r.db.Query(ctx, query, wineryID, window.From, window.To)
	if err != nil {
		r.log.Error("Failed to query report aggregate",
			zap.Error(err),
			zap.String("aggregate", what),
			zap.String("winery_id", wineryID.String()),
		)
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var counts []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", what, err)
		}
		counts = append(counts, nc)
	}

	return counts, nil
}
