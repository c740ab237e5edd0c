package models

import "time"

// Order represents a ticket purchase for an event. An order counts
// toward popularity only once payment is confirmed (IsPaid).
type Order struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	ClubID        string    `json:"club_id"`
	TicketID      string    `json:"ticket_id"`
	Quantity      int       `json:"quantity"`
	IsPaid        bool      `json:"is_paid"`
	Status        string    `json:"status"` // "paid" or "scanned"
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
