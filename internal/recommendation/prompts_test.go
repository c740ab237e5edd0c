package recommendation

import (
	"strings"
	"testing"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

func promptSnapshot() models.AnalyticsSnapshot {
	return models.AnalyticsSnapshot{
		Event: models.EventSummary{ID: "ev-9", Name: "Neon Night", Date: "2026-09-12", Time: "22:00"},
		Sales: models.SalesMetrics{
			TotalRevenue:            4200,
			TotalTicketsSold:        84,
			TotalOrders:             60,
			PaidOrders:              51,
			AverageSpentPerCustomer: 82.35,
			AverageTicketsPerOrder:  1.65,
			ConversionRate:          85,
		},
		TicketTypes: []models.TicketTypeStats{
			{Name: "General", Price: 40, QuantitySold: 70, Revenue: 2800},
			{Name: "VIP", Price: 140, QuantitySold: 10, Revenue: 1400},
		},
		SalesProgression: map[string]float64{
			"2026-09-05": 300,
			"2026-09-06": 450,
			"2026-09-07": 600,
			"2026-09-08": 800,
			"2026-09-09": 950,
			"2026-09-10": 1100,
		},
		Demographics: models.Demographics{
			AgeGroups: models.DemographicBreakdown{
				Percentages: map[string]float64{"18-24": 30, "25-34": 70, "35-44": 0},
			},
			Gender: models.DemographicBreakdown{
				Percentages: map[string]float64{"female": 55, "male": 45},
			},
			TotalUsers: 84,
		},
	}
}

func TestBuildRecommendationPromptEmbedsMetrics(t *testing.T) {
	prompt := BuildRecommendationPrompt(promptSnapshot())

	for _, want := range []string{
		`"Neon Night"`,
		"Event ID: ev-9",
		"Total Revenue: AED 4200",
		"Total Tickets Sold: 84",
		"Conversion Rate: 85%",
		"Average Spent per Customer: AED 82.35",
		`"VIP": 10 tickets sold, AED 140 each, Total Revenue: AED 1400`,
		"Audience Demographics (84 total attendees)",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildRecommendationPromptFiltersZeroBuckets(t *testing.T) {
	prompt := BuildRecommendationPrompt(promptSnapshot())

	if strings.Contains(prompt, "35-44") {
		t.Fatal("zero-percent bucket should be filtered from the prompt")
	}
	if !strings.Contains(prompt, "18-24: 30%") || !strings.Contains(prompt, "25-34: 70%") {
		t.Fatal("non-zero buckets must appear with their percentages")
	}
}

func TestBuildRecommendationPromptTruncatesProgression(t *testing.T) {
	prompt := BuildRecommendationPrompt(promptSnapshot())

	if strings.Contains(prompt, "2026-09-05") {
		t.Fatal("progression should be truncated to the most recent 5 days")
	}
	for _, day := range []string{"2026-09-06", "2026-09-07", "2026-09-08", "2026-09-09", "2026-09-10"} {
		if !strings.Contains(prompt, day) {
			t.Fatalf("prompt missing progression day %s", day)
		}
	}
}

func TestBuildRecommendationPromptEmptyProgression(t *testing.T) {
	snapshot := promptSnapshot()
	snapshot.SalesProgression = nil

	prompt := BuildRecommendationPrompt(snapshot)
	if !strings.Contains(prompt, "No sales progression data available") {
		t.Fatal("empty progression should use the placeholder text")
	}
}

func TestBuildRecommendationPromptIsDeterministic(t *testing.T) {
	first := BuildRecommendationPrompt(promptSnapshot())
	for i := 0; i < 5; i++ {
		if BuildRecommendationPrompt(promptSnapshot()) != first {
			t.Fatal("prompt varied between identical snapshots")
		}
	}
}
