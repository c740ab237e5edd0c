package models

// Popularity score weights: paid bookings and tickets sold carry 40%
// each, the featured flag the remaining 20% of a fixed 10-point bonus.
const (
	bookingWeight  = 0.4
	ticketWeight   = 0.4
	featuredWeight = 0.2
	featuredBonus  = 10.0
)

// PopularityScore is the derived ranking metric for one event. It is
// computed per ranking call and never persisted.
type PopularityScore struct {
	TotalBookings    int     `json:"total_bookings"`
	TotalTicketsSold int     `json:"total_tickets_sold"`
	Score            float64 `json:"score"`
}

// ComputePopularityScore derives the weighted score from live order
// aggregates. A never-booked, non-featured event scores exactly 0.
func ComputePopularityScore(bookings, ticketsSold int, featured bool) PopularityScore {
	bonus := 0.0
	if featured {
		bonus = featuredBonus
	}

	return PopularityScore{
		TotalBookings:    bookings,
		TotalTicketsSold: ticketsSold,
		Score:            float64(bookings)*bookingWeight + float64(ticketsSold)*ticketWeight + bonus*featuredWeight,
	}
}

// TopEvent bundles the winning event of a city ranking with its club
// and the metrics that produced the ranking.
type TopEvent struct {
	Event Event `json:"event"`
	Club  Club  `json:"club"`
	PopularityScore
}
