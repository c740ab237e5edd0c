package database

import (
	"context"
	"database/sql"
	"fmt"
)

// OrderRepository exposes the paid-order aggregates the ranking engine
// scores events with. No writes.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new PostgreSQL order repository.
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CountPaidByEvent returns the number of paid orders for an event.
func (r *OrderRepository) CountPaidByEvent(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE event_id = $1 AND is_paid = TRUE`

	var count int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count paid orders for event %s: %w", eventID, err)
	}

	return count, nil
}

// SumPaidQuantityByEvent returns the total tickets sold across paid
// orders for an event. Events with no paid orders sum to 0.
func (r *OrderRepository) SumPaidQuantityByEvent(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0) FROM orders WHERE event_id = $1 AND is_paid = TRUE`

	var total int
	if err := r.db.QueryRowContext(ctx, query, eventID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum paid ticket quantity for event %s: %w", eventID, err)
	}

	return total, nil
}
