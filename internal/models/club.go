package models

import "time"

// Club represents a nightlife venue that hosts events. A club must be
// approved by an admin before any of its events become visible to users
// or eligible for ranking.
type Club struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	TypeOfVenue string    `json:"type_of_venue"`
	ClubImages  []string  `json:"club_images"`
	IsApproved  bool      `json:"is_approved"`
	Events      []Event   `json:"events,omitempty"` // populated by the store, active events only
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
