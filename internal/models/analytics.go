package models

// AnalyticsSnapshot is the pre-aggregated input bundle describing one
// event's performance, consumed by the recommendation engine. It is
// immutable for the duration of one recommendation call.
type AnalyticsSnapshot struct {
	Event            EventSummary       `json:"event"`
	Sales            SalesMetrics       `json:"sales"`
	TicketTypes      []TicketTypeStats  `json:"ticket_types"`
	SalesProgression map[string]float64 `json:"sales_progression"` // day (YYYY-MM-DD) -> revenue
	Demographics     Demographics       `json:"demographics"`
}

// EventSummary identifies the event a snapshot describes.
type EventSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// SalesMetrics holds aggregate sales figures for one event.
type SalesMetrics struct {
	TotalRevenue            float64 `json:"total_revenue"`
	TotalTicketsSold        int     `json:"total_tickets_sold"`
	TotalOrders             int     `json:"total_orders"`
	PaidOrders              int     `json:"paid_orders"`
	AverageSpentPerCustomer float64 `json:"average_spent_per_customer"`
	AverageTicketsPerOrder  float64 `json:"average_tickets_per_order"`
	ConversionRate          float64 `json:"conversion_rate"` // paid / total orders, in percent
}

// TicketTypeStats is the per-ticket-type sales breakdown.
type TicketTypeStats struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// Demographics describes the attendee distribution for one event.
type Demographics struct {
	AgeGroups  DemographicBreakdown `json:"age_groups"`
	Gender     DemographicBreakdown `json:"gender"`
	TotalUsers int                  `json:"total_users"`
}

// DemographicBreakdown holds raw bucket counts alongside pre-computed
// percentages keyed by the same bucket labels.
type DemographicBreakdown struct {
	Data        map[string]int     `json:"data"`
	Percentages map[string]float64 `json:"percentages"`
}
