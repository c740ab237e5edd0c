package ranking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

type fakeClubStore struct {
	queriedCity string
	clubs       []models.Club
	err         error
}

func (f *fakeClubStore) ApprovedWithActiveEvents(_ context.Context, city string) ([]models.Club, error) {
	f.queriedCity = city
	return f.clubs, f.err
}

type fakeOrderStore struct {
	bookings map[string]int
	tickets  map[string]int
	failing  map[string]bool
}

func (f *fakeOrderStore) CountPaidByEvent(_ context.Context, eventID string) (int, error) {
	if f.failing[eventID] {
		return 0, errors.New("aggregate timed out")
	}
	return f.bookings[eventID], nil
}

func (f *fakeOrderStore) SumPaidQuantityByEvent(_ context.Context, eventID string) (int, error) {
	if f.failing[eventID] {
		return 0, errors.New("aggregate timed out")
	}
	return f.tickets[eventID], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clubWithEvents(id, name, city string, events ...models.Event) models.Club {
	return models.Club{ID: id, Name: name, City: city, IsApproved: true, Events: events}
}

func activeEvent(id, clubID, name string, date time.Time, featured bool) models.Event {
	return models.Event{
		ID:         id,
		ClubID:     clubID,
		Name:       name,
		Date:       date,
		Status:     models.EventStatusActive,
		IsFeatured: featured,
	}
}

func TestTopEventForCityNormalizesCity(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	clubs := &fakeClubStore{clubs: []models.Club{
		clubWithEvents("club-1", "Sky Lounge", "Dubai", activeEvent("ev-1", "club-1", "Neon Night", date, false)),
	}}
	orders := &fakeOrderStore{bookings: map[string]int{"ev-1": 5}, tickets: map[string]int{"ev-1": 8}}
	engine := NewEngine(clubs, orders, testLogger(), nil)

	for _, raw := range []string{"  Dubai ", "dubai", "DUBAI"} {
		top, err := engine.TopEventForCity(context.Background(), raw)
		if err != nil {
			t.Fatalf("TopEventForCity(%q) returned error: %v", raw, err)
		}
		if clubs.queriedCity != "dubai" {
			t.Fatalf("expected store queried with %q, got %q", "dubai", clubs.queriedCity)
		}
		if top.Event.ID != "ev-1" {
			t.Fatalf("expected ev-1 to win, got %s", top.Event.ID)
		}
	}
}

func TestTopEventForCityPicksHighestScore(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	clubs := &fakeClubStore{clubs: []models.Club{
		clubWithEvents("club-1", "Sky Lounge", "dubai",
			activeEvent("ev-a", "club-1", "Rooftop Sessions", date, false),
		),
		clubWithEvents("club-2", "Basement", "dubai",
			activeEvent("ev-b", "club-2", "Deep House Night", date, true),
		),
	}}
	orders := &fakeOrderStore{
		bookings: map[string]int{"ev-a": 10, "ev-b": 1},
		tickets:  map[string]int{"ev-a": 5, "ev-b": 1},
	}
	engine := NewEngine(clubs, orders, testLogger(), nil)

	top, err := engine.TopEventForCity(context.Background(), "dubai")
	if err != nil {
		t.Fatalf("TopEventForCity returned error: %v", err)
	}

	// ev-a: 10*0.4 + 5*0.4 = 6.0; ev-b: 1*0.4 + 1*0.4 + 10*0.2 = 2.8
	if top.Event.ID != "ev-a" {
		t.Fatalf("expected ev-a to win, got %s", top.Event.ID)
	}
	if top.Score != 6.0 {
		t.Fatalf("expected score 6.0, got %v", top.Score)
	}
	if top.TotalBookings != 10 || top.TotalTicketsSold != 5 {
		t.Fatalf("unexpected aggregates: %d bookings, %d tickets", top.TotalBookings, top.TotalTicketsSold)
	}
}

func TestTopEventForCityZeroScoreIsNotFound(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	clubs := &fakeClubStore{clubs: []models.Club{
		clubWithEvents("club-1", "Sky Lounge", "dubai",
			activeEvent("ev-1", "club-1", "Quiet Tuesday", date, false),
		),
	}}
	orders := &fakeOrderStore{}
	engine := NewEngine(clubs, orders, testLogger(), nil)

	_, err := engine.TopEventForCity(context.Background(), "dubai")
	if !errors.Is(err, ErrNoTrendingEvent) {
		t.Fatalf("expected ErrNoTrendingEvent for all-zero scores, got %v", err)
	}
}

func TestTopEventForCityNoCandidatesIsNotFound(t *testing.T) {
	engine := NewEngine(&fakeClubStore{}, &fakeOrderStore{}, testLogger(), nil)

	_, err := engine.TopEventForCity(context.Background(), "nowhere")
	if !errors.Is(err, ErrNoTrendingEvent) {
		t.Fatalf("expected ErrNoTrendingEvent for empty city, got %v", err)
	}
}

func TestTopEventForCityStoreFailureIsHardError(t *testing.T) {
	clubs := &fakeClubStore{err: errors.New("connection refused")}
	engine := NewEngine(clubs, &fakeOrderStore{}, testLogger(), nil)

	_, err := engine.TopEventForCity(context.Background(), "dubai")
	if err == nil || errors.Is(err, ErrNoTrendingEvent) {
		t.Fatalf("expected hard error from club store, got %v", err)
	}
}

func TestTopEventForCityIsolatesCandidateFailures(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	clubs := &fakeClubStore{clubs: []models.Club{
		clubWithEvents("club-1", "Sky Lounge", "dubai",
			activeEvent("ev-bad", "club-1", "Broken Aggregates", date, true),
			activeEvent("ev-good", "club-1", "Steady Seller", date, false),
		),
	}}
	orders := &fakeOrderStore{
		bookings: map[string]int{"ev-good": 3},
		tickets:  map[string]int{"ev-good": 4},
		failing:  map[string]bool{"ev-bad": true},
	}
	engine := NewEngine(clubs, orders, testLogger(), nil)

	top, err := engine.TopEventForCity(context.Background(), "dubai")
	if err != nil {
		t.Fatalf("expected degraded candidate to be absorbed, got error: %v", err)
	}
	if top.Event.ID != "ev-good" {
		t.Fatalf("expected ev-good to win over degraded candidate, got %s", top.Event.ID)
	}
}

func TestTopEventForCityTieBreaks(t *testing.T) {
	earlier := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		events []models.Event
		winner string
	}{
		{
			name: "earlier date wins on equal score",
			events: []models.Event{
				activeEvent("ev-late", "club-1", "Later Night", later, false),
				activeEvent("ev-early", "club-1", "Earlier Night", earlier, false),
			},
			winner: "ev-early",
		},
		{
			name: "smaller id wins on equal score and date",
			events: []models.Event{
				activeEvent("ev-b", "club-1", "Second", earlier, false),
				activeEvent("ev-a", "club-1", "First", earlier, false),
			},
			winner: "ev-a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clubs := &fakeClubStore{clubs: []models.Club{
				clubWithEvents("club-1", "Sky Lounge", "dubai", tt.events...),
			}}
			bookings := make(map[string]int)
			tickets := make(map[string]int)
			for _, ev := range tt.events {
				bookings[ev.ID] = 2
				tickets[ev.ID] = 2
			}
			orders := &fakeOrderStore{bookings: bookings, tickets: tickets}
			engine := NewEngine(clubs, orders, testLogger(), nil)

			top, err := engine.TopEventForCity(context.Background(), "dubai")
			if err != nil {
				t.Fatalf("TopEventForCity returned error: %v", err)
			}
			if top.Event.ID != tt.winner {
				t.Fatalf("expected %s to win, got %s", tt.winner, top.Event.ID)
			}
		})
	}
}

func TestTopEventForCityCancelledContext(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	clubs := &fakeClubStore{clubs: []models.Club{
		clubWithEvents("club-1", "Sky Lounge", "dubai",
			activeEvent("ev-1", "club-1", "Neon Night", date, false),
		),
	}}
	engine := NewEngine(clubs, &fakeOrderStore{}, testLogger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.TopEventForCity(ctx, "dubai"); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
