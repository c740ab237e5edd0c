package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
	"github.com/lib/pq"
)

// ClubRepository reads clubs and their events from PostgreSQL.
type ClubRepository struct {
	db *sql.DB
}

// NewClubRepository creates a new PostgreSQL club repository.
func NewClubRepository(db *sql.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

// ApprovedWithActiveEvents returns every approved club in the given city
// that hosts at least one event, with its active events (including their
// tickets) populated. City matching is exact on the lower-cased, trimmed
// value; callers are expected to pass an already-normalized city.
// A club whose events are all inactive is still returned, with an empty
// Events slice.
func (r *ClubRepository) ApprovedWithActiveEvents(ctx context.Context, city string) ([]models.Club, error) {
	const clubQuery = `
		SELECT id, name, email, city, address, type_of_venue, club_images,
		       is_approved, created_at, updated_at
		FROM clubs c
		WHERE c.is_approved = TRUE
		  AND LOWER(TRIM(c.city)) = LOWER(TRIM($1))
		  AND EXISTS (SELECT 1 FROM events e WHERE e.club_id = c.id)
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, clubQuery, city)
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs for city %q: %w", city, err)
	}
	defer rows.Close()

	var clubs []models.Club
	byID := make(map[string]int)

	for rows.Next() {
		var club models.Club
		var images pq.StringArray

		if err := rows.Scan(
			&club.ID,
			&club.Name,
			&club.Email,
			&club.City,
			&club.Address,
			&club.TypeOfVenue,
			&images,
			&club.IsApproved,
			&club.CreatedAt,
			&club.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}

		club.ClubImages = images
		byID[club.ID] = len(clubs)
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clubs: %w", err)
	}

	if len(clubs) == 0 {
		return clubs, nil
	}

	ids := make([]string, 0, len(clubs))
	for _, club := range clubs {
		ids = append(ids, club.ID)
	}

	events, err := r.activeEventsForClubs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if i, ok := byID[event.ClubID]; ok {
			clubs[i].Events = append(clubs[i].Events, event)
		}
	}

	return clubs, nil
}

// activeEventsForClubs fetches active events for the given clubs, with
// their tickets populated, ordered by date then ID.
func (r *ClubRepository) activeEventsForClubs(ctx context.Context, clubIDs []string) ([]models.Event, error) {
	const eventQuery = `
		SELECT id, club_id, name, description, COALESCE(cover_image, ''),
		       date, start_time, end_time, status, is_featured, created_at, updated_at
		FROM events
		WHERE club_id = ANY($1) AND status = $2
		ORDER BY date, id
	`

	rows, err := r.db.QueryContext(ctx, eventQuery, pq.Array(clubIDs), models.EventStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query active events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	byID := make(map[string]int)

	for rows.Next() {
		var event models.Event

		if err := rows.Scan(
			&event.ID,
			&event.ClubID,
			&event.Name,
			&event.Description,
			&event.CoverImage,
			&event.Date,
			&event.StartTime,
			&event.EndTime,
			&event.Status,
			&event.IsFeatured,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		byID[event.ID] = len(events)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	if len(events) == 0 {
		return events, nil
	}

	eventIDs := make([]string, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	const ticketQuery = `
		SELECT id, event_id, name, price, quantity
		FROM tickets
		WHERE event_id = ANY($1)
		ORDER BY id
	`

	ticketRows, err := r.db.QueryContext(ctx, ticketQuery, pq.Array(eventIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer ticketRows.Close()

	for ticketRows.Next() {
		var ticket models.Ticket

		if err := ticketRows.Scan(&ticket.ID, &ticket.EventID, &ticket.Name, &ticket.Price, &ticket.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}

		if i, ok := byID[ticket.EventID]; ok {
			events[i].Tickets = append(events[i].Tickets, ticket)
		}
	}
	if err := ticketRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tickets: %w", err)
	}

	return events, nil
}
