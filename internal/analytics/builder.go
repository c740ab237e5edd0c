// Package analytics assembles the per-event performance snapshot the
// recommendation engine consumes.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/iamnithishraja/cavens-sub001/internal/database"
	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

// Store provides the raw aggregates a snapshot is built from.
type Store interface {
	EventHeader(ctx context.Context, eventID string) (models.Event, error)
	SalesTotalsForEvent(ctx context.Context, eventID string) (database.SalesTotals, error)
	TicketTypeStatsForEvent(ctx context.Context, eventID string) ([]models.TicketTypeStats, error)
	DailyRevenueForEvent(ctx context.Context, eventID string) (map[string]float64, error)
	DemographicCounts(ctx context.Context, eventID string) (ageGroups, gender map[string]int, total int, err error)
}

// Builder turns repository aggregates into an AnalyticsSnapshot.
type Builder struct {
	store  Store
	logger *slog.Logger
}

// NewBuilder creates a snapshot builder.
func NewBuilder(store Store, logger *slog.Logger) *Builder {
	return &Builder{store: store, logger: logger}
}

// Snapshot assembles the full analytics view for one event. Any query
// failure is a hard error; a snapshot with made-up holes would produce
// misleading recommendations.
func (b *Builder) Snapshot(ctx context.Context, eventID string) (models.AnalyticsSnapshot, error) {
	event, err := b.store.EventHeader(ctx, eventID)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("failed to build snapshot: %w", err)
	}

	totals, err := b.store.SalesTotalsForEvent(ctx, eventID)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("failed to build snapshot: %w", err)
	}

	ticketTypes, err := b.store.TicketTypeStatsForEvent(ctx, eventID)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("failed to build snapshot: %w", err)
	}

	progression, err := b.store.DailyRevenueForEvent(ctx, eventID)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("failed to build snapshot: %w", err)
	}

	ageGroups, gender, totalUsers, err := b.store.DemographicCounts(ctx, eventID)
	if err != nil {
		return models.AnalyticsSnapshot{}, fmt.Errorf("failed to build snapshot: %w", err)
	}

	snapshot := models.AnalyticsSnapshot{
		Event: models.EventSummary{
			ID:   event.ID,
			Name: event.Name,
			Date: event.Date.Format("2006-01-02"),
			Time: event.StartTime,
		},
		Sales:            buildSalesMetrics(totals),
		TicketTypes:      ticketTypes,
		SalesProgression: progression,
		Demographics: models.Demographics{
			AgeGroups:  buildBreakdown(ageGroups, totalUsers),
			Gender:     buildBreakdown(gender, totalUsers),
			TotalUsers: totalUsers,
		},
	}

	b.logger.Debug("analytics snapshot assembled",
		"event_id", eventID,
		"orders", totals.TotalOrders,
		"revenue", totals.Revenue,
		"attendees", totalUsers,
	)

	return snapshot, nil
}

func buildSalesMetrics(totals database.SalesTotals) models.SalesMetrics {
	metrics := models.SalesMetrics{
		TotalRevenue:     totals.Revenue,
		TotalTicketsSold: totals.TicketsSold,
		TotalOrders:      totals.TotalOrders,
		PaidOrders:       totals.PaidOrders,
	}

	if totals.PaidOrders > 0 {
		metrics.AverageSpentPerCustomer = round2(totals.Revenue / float64(totals.PaidOrders))
		metrics.AverageTicketsPerOrder = round2(float64(totals.TicketsSold) / float64(totals.PaidOrders))
	}
	if totals.TotalOrders > 0 {
		metrics.ConversionRate = round2(float64(totals.PaidOrders) / float64(totals.TotalOrders) * 100)
	}

	return metrics
}

func buildBreakdown(counts map[string]int, total int) models.DemographicBreakdown {
	breakdown := models.DemographicBreakdown{
		Data:        counts,
		Percentages: make(map[string]float64, len(counts)),
	}
	if breakdown.Data == nil {
		breakdown.Data = map[string]int{}
	}

	for bucket, count := range counts {
		if total > 0 {
			breakdown.Percentages[bucket] = round2(float64(count) / float64(total) * 100)
		}
	}

	return breakdown
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
