package models

// NotificationTypeCityEvent tags payloads produced by the city ranking.
const NotificationTypeCityEvent = "city_event_recommendation"

// DeepLinkScheme is the app scheme used in notification deep links.
const DeepLinkScheme = "cavens"

// NotificationPayload is the push-ready rendering of a top event. The
// notification sender consumes it as-is; this package never delivers it.
type NotificationPayload struct {
	Title    string           `json:"title"`
	Body     string           `json:"body"`
	ImageURL string           `json:"imageUrl,omitempty"`
	Data     NotificationData `json:"data"`
}

// NotificationData carries the structured part of a push payload.
type NotificationData struct {
	Type          string `json:"type"`
	EventID       string `json:"eventId"`
	EventName     string `json:"eventName"`
	ClubName      string `json:"clubName"`
	ClubID        string `json:"clubId"`
	City          string `json:"city"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	TotalBookings int    `json:"totalBookings"`
	DeepLink      string `json:"deepLink"`
	Timestamp     string `json:"timestamp"`
}
