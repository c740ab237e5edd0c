// Package ranking computes the most popular active event per city from
// live booking aggregates.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/iamnithishraja/cavens-sub001/internal/metrics"
	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

// ErrNoTrendingEvent is returned when a city has no rankable event:
// no approved venues, no active events, or a best score of zero.
var ErrNoTrendingEvent = errors.New("no trending event for city")

// defaultMaxConcurrentScores bounds the candidate-scoring fan-out so a
// city with many events does not open unbounded database work at once.
const defaultMaxConcurrentScores = 8

// ClubStore provides the venue/event view the ranking reads. Only
// approved clubs in the city are returned, each populated with its
// active events and their tickets.
type ClubStore interface {
	ApprovedWithActiveEvents(ctx context.Context, city string) ([]models.Club, error)
}

// OrderStore provides the paid-order aggregates used for scoring.
type OrderStore interface {
	CountPaidByEvent(ctx context.Context, eventID string) (int, error)
	SumPaidQuantityByEvent(ctx context.Context, eventID string) (int, error)
}

// Engine ranks a city's active events by booking popularity.
type Engine struct {
	clubs     ClubStore
	orders    OrderStore
	logger    *slog.Logger
	collector *metrics.EngineCollector
	maxScores int64
}

// NewEngine creates a ranking engine. The collector may be nil.
func NewEngine(clubs ClubStore, orders OrderStore, logger *slog.Logger, collector *metrics.EngineCollector) *Engine {
	return &Engine{
		clubs:     clubs,
		orders:    orders,
		logger:    logger,
		collector: collector,
		maxScores: defaultMaxConcurrentScores,
	}
}

type candidate struct {
	event models.Event
	club  models.Club
}

// TopEventForCity returns the highest-scoring active event in the
// given city. City matching is trimmed and case-insensitive. It
// returns ErrNoTrendingEvent when nothing rankable exists and a hard
// error only when the venue fetch itself fails.
func (e *Engine) TopEventForCity(ctx context.Context, city string) (models.TopEvent, error) {
	normalized := strings.ToLower(strings.TrimSpace(city))

	e.logger.Info("ranking city events", "city", normalized)

	clubs, err := e.clubs.ApprovedWithActiveEvents(ctx, normalized)
	if err != nil {
		return models.TopEvent{}, fmt.Errorf("failed to load clubs for city %q: %w", normalized, err)
	}

	var candidates []candidate
	for _, club := range clubs {
		for _, event := range club.Events {
			candidates = append(candidates, candidate{event: event, club: club})
		}
	}

	if len(candidates) == 0 {
		e.logger.Info("no active events in city", "city", normalized)
		return models.TopEvent{}, ErrNoTrendingEvent
	}

	scores, err := e.scoreAll(ctx, candidates)
	if err != nil {
		return models.TopEvent{}, err
	}

	winner := scores[0]
	for _, s := range scores[1:] {
		if beats(s, winner) {
			winner = s
		}
	}

	if winner.Score <= 0 {
		e.logger.Info("no popular events in city", "city", normalized, "candidates", len(candidates))
		return models.TopEvent{}, ErrNoTrendingEvent
	}

	e.logger.Info("top event selected",
		"city", normalized,
		"event", winner.Event.Name,
		"club", winner.Club.Name,
		"score", winner.Score,
	)

	return winner, nil
}

// scoreAll fans out one scoring goroutine per candidate, bounded by a
// weighted semaphore, and waits for every result. A candidate whose
// queries fail keeps its slot with a zero score.
func (e *Engine) scoreAll(ctx context.Context, candidates []candidate) ([]models.TopEvent, error) {
	scores := make([]models.TopEvent, len(candidates))

	sem := semaphore.NewWeighted(e.maxScores)
	var wg sync.WaitGroup

	for i, c := range candidates {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, fmt.Errorf("ranking cancelled: %w", err)
		}

		wg.Add(1)
		go func(idx int, c candidate) {
			defer wg.Done()
			defer sem.Release(1)

			scores[idx] = e.scoreCandidate(ctx, c)
		}(i, c)
	}

	wg.Wait()
	return scores, nil
}

func (e *Engine) scoreCandidate(ctx context.Context, c candidate) models.TopEvent {
	bookings, err := e.orders.CountPaidByEvent(ctx, c.event.ID)
	if err != nil {
		return e.degrade(c, err)
	}

	ticketsSold, err := e.orders.SumPaidQuantityByEvent(ctx, c.event.ID)
	if err != nil {
		return e.degrade(c, err)
	}

	e.collector.CandidateScored()

	score := models.ComputePopularityScore(bookings, ticketsSold, c.event.IsFeatured)
	e.logger.Debug("candidate scored",
		"event", c.event.Name,
		"bookings", bookings,
		"tickets_sold", ticketsSold,
		"score", score.Score,
	)

	return models.TopEvent{Event: c.event, Club: c.club, PopularityScore: score}
}

// degrade zeroes a candidate after a query failure so the rest of the
// city's ranking can proceed.
func (e *Engine) degrade(c candidate, err error) models.TopEvent {
	e.collector.CandidateDegraded()
	e.logger.Warn("failed to score candidate, assigning zero score",
		"event_id", c.event.ID,
		"event", c.event.Name,
		"error", err,
	)

	return models.TopEvent{Event: c.event, Club: c.club}
}

// beats reports whether a should replace b as the current winner:
// higher score first, then earlier event date, then smaller event ID.
func beats(a, b models.TopEvent) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Event.Date.Equal(b.Event.Date) {
		return a.Event.Date.Before(b.Event.Date)
	}
	return a.Event.ID < b.Event.ID
}
