package ranking

import (
	"fmt"
	"time"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

// FormatForNotification renders a top event as a push-ready payload.
// Pure function: the caller supplies the timestamp and handles
// delivery. An event without a cover image simply omits the image URL.
func FormatForNotification(top models.TopEvent, now time.Time) models.NotificationPayload {
	return models.NotificationPayload{
		Title:    fmt.Sprintf("Trending Event in %s!", top.Club.City),
		Body:     fmt.Sprintf("🔥 Event %q at %s  • Don't miss out - reserve your spot now!", top.Event.Name, top.Club.Name),
		ImageURL: top.Event.CoverImage,
		Data: models.NotificationData{
			Type:          models.NotificationTypeCityEvent,
			EventID:       top.Event.ID,
			EventName:     top.Event.Name,
			ClubName:      top.Club.Name,
			ClubID:        top.Club.ID,
			City:          top.Club.City,
			Date:          top.Event.Date.Format("2006-01-02"),
			Time:          top.Event.StartTime,
			TotalBookings: top.TotalBookings,
			DeepLink:      fmt.Sprintf("%s://event/%s", models.DeepLinkScheme, top.Event.ID),
			Timestamp:     now.UTC().Format(time.RFC3339),
		},
	}
}
