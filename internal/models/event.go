package models

import "time"

// Event represents a scheduled occurrence hosted by a club. Only events
// with status "active" are eligible for city ranking.
type Event struct {
	ID          string      `json:"id"`
	ClubID      string      `json:"club_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CoverImage  string      `json:"cover_image,omitempty"`
	Date        time.Time   `json:"date"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	Status      EventStatus `json:"status"`
	IsFeatured  bool        `json:"is_featured"`
	Tickets     []Ticket    `json:"tickets,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// EventStatus represents the lifecycle state of an event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"     // Created but not yet published
	EventStatusActive    EventStatus = "active"    // Bookable and rankable
	EventStatusCompleted EventStatus = "completed" // Took place, kept for analytics
	EventStatusCancelled EventStatus = "cancelled" // Never rankable, even with historical orders
)

// Ticket represents a purchasable ticket type for an event.
type Ticket struct {
	ID       string  `json:"id"`
	EventID  string  `json:"event_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"` // total available
}
