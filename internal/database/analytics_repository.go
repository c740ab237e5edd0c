package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

// AnalyticsRepository reads the raw aggregates the analytics builder
// assembles into an AnalyticsSnapshot. All queries are read-only and
// scoped to a single event.
type AnalyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new PostgreSQL analytics repository.
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// EventHeader returns the identity fields of an event, or sql.ErrNoRows
// wrapped if the event does not exist.
func (r *AnalyticsRepository) EventHeader(ctx context.Context, eventID string) (models.Event, error) {
	const query = `
		SELECT id, club_id, name, date, start_time, end_time, status, is_featured
		FROM events
		WHERE id = $1
	`

	var event models.Event
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&event.ID,
		&event.ClubID,
		&event.Name,
		&event.Date,
		&event.StartTime,
		&event.EndTime,
		&event.Status,
		&event.IsFeatured,
	)
	if err != nil {
		return models.Event{}, fmt.Errorf("failed to load event %s: %w", eventID, err)
	}

	return event, nil
}

// SalesTotals holds the order-level aggregates for one event.
type SalesTotals struct {
	TotalOrders int
	PaidOrders  int
	TicketsSold int
	Revenue     float64
}

// SalesTotalsForEvent aggregates order counts, paid ticket volume and
// paid revenue (quantity * ticket price) for an event.
func (r *AnalyticsRepository) SalesTotalsForEvent(ctx context.Context, eventID string) (SalesTotals, error) {
	const query = `
		SELECT COUNT(o.id),
		       COUNT(o.id) FILTER (WHERE o.is_paid),
		       COALESCE(SUM(o.quantity) FILTER (WHERE o.is_paid), 0),
		       COALESCE(SUM(o.quantity * t.price) FILTER (WHERE o.is_paid), 0)
		FROM orders o
		JOIN tickets t ON t.id = o.ticket_id
		WHERE o.event_id = $1
	`

	var totals SalesTotals
	err := r.db.QueryRowContext(ctx, query, eventID).Scan(
		&totals.TotalOrders,
		&totals.PaidOrders,
		&totals.TicketsSold,
		&totals.Revenue,
	)
	if err != nil {
		return SalesTotals{}, fmt.Errorf("failed to aggregate sales for event %s: %w", eventID, err)
	}

	return totals, nil
}

// TicketTypeStatsForEvent returns the per-ticket-type sales breakdown.
// Ticket types with no paid orders appear with zero quantity and revenue.
func (r *AnalyticsRepository) TicketTypeStatsForEvent(ctx context.Context, eventID string) ([]models.TicketTypeStats, error) {
	const query = `
		SELECT t.name, t.price,
		       COALESCE(SUM(o.quantity) FILTER (WHERE o.is_paid), 0),
		       COALESCE(SUM(o.quantity * t.price) FILTER (WHERE o.is_paid), 0)
		FROM tickets t
		LEFT JOIN orders o ON o.ticket_id = t.id
		WHERE t.event_id = $1
		GROUP BY t.id, t.name, t.price
		ORDER BY t.name
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket stats for event %s: %w", eventID, err)
	}
	defer rows.Close()

	var stats []models.TicketTypeStats
	for rows.Next() {
		var s models.TicketTypeStats
		if err := rows.Scan(&s.Name, &s.Price, &s.QuantitySold, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan ticket stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ticket stats: %w", err)
	}

	return stats, nil
}

// DailyRevenueForEvent returns paid revenue keyed by order day
// (YYYY-MM-DD), the raw form of the sales progression series.
func (r *AnalyticsRepository) DailyRevenueForEvent(ctx context.Context, eventID string) (map[string]float64, error) {
	const query = `
		SELECT TO_CHAR(o.created_at, 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(o.quantity * t.price), 0)
		FROM orders o
		JOIN tickets t ON t.id = o.ticket_id
		WHERE o.event_id = $1 AND o.is_paid = TRUE
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily revenue for event %s: %w", eventID, err)
	}
	defer rows.Close()

	progression := make(map[string]float64)
	for rows.Next() {
		var day string
		var revenue float64
		if err := rows.Scan(&day, &revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue: %w", err)
		}
		progression[day] = revenue
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily revenue: %w", err)
	}

	return progression, nil
}

// DemographicCounts returns attendee counts bucketed by age group and
// gender, plus the total attendee count, for one event.
func (r *AnalyticsRepository) DemographicCounts(ctx context.Context, eventID string) (map[string]int, map[string]int, int, error) {
	ageGroups, err := r.bucketCounts(ctx, eventID, "age_group")
	if err != nil {
		return nil, nil, 0, err
	}

	gender, err := r.bucketCounts(ctx, eventID, "gender")
	if err != nil {
		return nil, nil, 0, err
	}

	total := 0
	for _, count := range ageGroups {
		total += count
	}

	return ageGroups, gender, total, nil
}

func (r *AnalyticsRepository) bucketCounts(ctx context.Context, eventID, column string) (map[string]int, error) {
	// column comes from a fixed internal call site, never user input.
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM attendees
		WHERE event_id = $1
		GROUP BY %s
	`, column, column)

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s demographics for event %s: %w", column, eventID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var bucket string
		var count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan %s demographics: %w", column, err)
		}
		counts[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s demographics: %w", column, err)
	}

	return counts, nil
}
