package recommendation

import (
	"strings"
	"testing"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

func snapshotWithSales(sales models.SalesMetrics) models.AnalyticsSnapshot {
	return models.AnalyticsSnapshot{
		Event: models.EventSummary{ID: "ev-1", Name: "Neon Night", Date: "2026-09-12"},
		Sales: sales,
	}
}

func TestFallbackShouldCreateEvent(t *testing.T) {
	tests := []struct {
		name  string
		sales models.SalesMetrics
		want  bool
	}{
		{"all three conditions met", models.SalesMetrics{ConversionRate: 75, TotalRevenue: 2000, TotalTicketsSold: 15}, true},
		{"conversion too low", models.SalesMetrics{ConversionRate: 70, TotalRevenue: 2000, TotalTicketsSold: 15}, false},
		{"revenue too low", models.SalesMetrics{ConversionRate: 75, TotalRevenue: 1000, TotalTicketsSold: 15}, false},
		{"tickets too low", models.SalesMetrics{ConversionRate: 75, TotalRevenue: 2000, TotalTicketsSold: 10}, false},
		{"everything low", models.SalesMetrics{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Fallback(snapshotWithSales(tt.sales))
			if rec.ShouldCreateEvent != tt.want {
				t.Fatalf("ShouldCreateEvent = %v, want %v", rec.ShouldCreateEvent, tt.want)
			}
		})
	}
}

func TestFallbackConfidence(t *testing.T) {
	tests := []struct {
		name  string
		sales models.SalesMetrics
		want  int
	}{
		{"clamped to floor", models.SalesMetrics{ConversionRate: 10}, 40},
		{"passes through midrange", models.SalesMetrics{ConversionRate: 60}, 60},
		{"revenue bonus applied", models.SalesMetrics{ConversionRate: 75, TotalRevenue: 6000}, 95},
		{"clamped to ceiling", models.SalesMetrics{ConversionRate: 90, TotalRevenue: 6000}, 95},
		{"bonus threshold is exclusive", models.SalesMetrics{ConversionRate: 60, TotalRevenue: 5000}, 60},
		{"rounded to nearest integer", models.SalesMetrics{ConversionRate: 62.6}, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Fallback(snapshotWithSales(tt.sales))
			if rec.Confidence != tt.want {
				t.Fatalf("Confidence = %d, want %d", rec.Confidence, tt.want)
			}
		})
	}
}

func TestFallbackRecommendationRules(t *testing.T) {
	t.Run("low conversion flags completion", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{ConversionRate: 30, AverageSpentPerCustomer: 150, TotalTicketsSold: 50}))
		if len(rec.Recommendations) != 1 || !strings.Contains(rec.Recommendations[0], "conversion rate is low") {
			t.Fatalf("unexpected recommendations: %v", rec.Recommendations)
		}
	})

	t.Run("high conversion suggests premium pricing", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{ConversionRate: 85, AverageSpentPerCustomer: 150, TotalTicketsSold: 50}))
		if len(rec.Recommendations) != 1 || !strings.Contains(rec.Recommendations[0], "Excellent conversion rate") {
			t.Fatalf("unexpected recommendations: %v", rec.Recommendations)
		}
	})

	t.Run("normal band produces no conversion text", func(t *testing.T) {
		for _, rate := range []float64{50, 65, 80} {
			rec := Fallback(snapshotWithSales(models.SalesMetrics{ConversionRate: rate, AverageSpentPerCustomer: 150, TotalTicketsSold: 50}))
			for _, r := range rec.Recommendations {
				if strings.Contains(r, "conversion") {
					t.Fatalf("conversion rule fired at rate %v: %q", rate, r)
				}
			}
		}
	})

	t.Run("all rules can fire together", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{ConversionRate: 30, AverageSpentPerCustomer: 50, TotalTicketsSold: 5}))
		if len(rec.Recommendations) != 3 {
			t.Fatalf("expected 3 recommendations, got %d: %v", len(rec.Recommendations), rec.Recommendations)
		}
	})

	t.Run("quiet metrics substitute generic list", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{ConversionRate: 60, AverageSpentPerCustomer: 150, TotalTicketsSold: 50}))
		if len(rec.Recommendations) != 3 || rec.Recommendations[0] != "Focus on improving conversion rate through better marketing" {
			t.Fatalf("expected generic recommendations, got %v", rec.Recommendations)
		}
	})
}

func TestFallbackInsights(t *testing.T) {
	t.Run("top buckets produce one insight each", func(t *testing.T) {
		snapshot := snapshotWithSales(models.SalesMetrics{ConversionRate: 60, AverageSpentPerCustomer: 150, TotalTicketsSold: 50})
		snapshot.Demographics = models.Demographics{
			AgeGroups: models.DemographicBreakdown{
				Percentages: map[string]float64{"18-24": 20, "25-34": 55, "35-44": 25},
			},
			Gender: models.DemographicBreakdown{
				Percentages: map[string]float64{"female": 62, "male": 38},
			},
			TotalUsers: 100,
		}

		rec := Fallback(snapshot)
		if len(rec.Insights) != 2 {
			t.Fatalf("expected 2 insights, got %v", rec.Insights)
		}
		if !strings.Contains(rec.Insights[0], "25-34") || !strings.Contains(rec.Insights[0], "55%") {
			t.Fatalf("unexpected age insight: %q", rec.Insights[0])
		}
		if !strings.Contains(rec.Insights[1], "female") || !strings.Contains(rec.Insights[1], "62%") {
			t.Fatalf("unexpected gender insight: %q", rec.Insights[1])
		}
	})

	t.Run("tied buckets break to smaller label", func(t *testing.T) {
		snapshot := snapshotWithSales(models.SalesMetrics{})
		snapshot.Demographics.AgeGroups.Percentages = map[string]float64{"25-34": 50, "18-24": 50}

		rec := Fallback(snapshot)
		if len(rec.Insights) == 0 || !strings.Contains(rec.Insights[0], "18-24") {
			t.Fatalf("expected 18-24 to win the tie, got %v", rec.Insights)
		}
	})

	t.Run("empty demographics substitute generic list", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{}))
		if len(rec.Insights) != 2 || rec.Insights[0] != "Your event shows potential for growth" {
			t.Fatalf("expected generic insights, got %v", rec.Insights)
		}
	})
}

func TestFallbackNextSteps(t *testing.T) {
	t.Run("high revenue suggests follow-up event", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{TotalRevenue: 6000}))
		if len(rec.NextSteps) != 3 || !strings.Contains(rec.NextSteps[0], "follow-up event") {
			t.Fatalf("unexpected next steps: %v", rec.NextSteps)
		}
	})

	t.Run("low revenue suggests surveys", func(t *testing.T) {
		rec := Fallback(snapshotWithSales(models.SalesMetrics{TotalRevenue: 500}))
		if len(rec.NextSteps) != 3 || !strings.Contains(rec.NextSteps[0], "customer surveys") {
			t.Fatalf("unexpected next steps: %v", rec.NextSteps)
		}
	})
}

func TestFallbackIsDeterministic(t *testing.T) {
	snapshot := snapshotWithSales(models.SalesMetrics{ConversionRate: 45, TotalRevenue: 3000, TotalTicketsSold: 30, AverageSpentPerCustomer: 120})
	snapshot.Demographics.AgeGroups.Percentages = map[string]float64{"18-24": 40, "25-34": 35, "35-44": 25}
	snapshot.Demographics.Gender.Percentages = map[string]float64{"male": 50, "female": 50}

	first := Fallback(snapshot)
	for i := 0; i < 10; i++ {
		next := Fallback(snapshot)
		if next.Confidence != first.Confidence || len(next.Insights) != len(first.Insights) {
			t.Fatal("fallback result varied between identical calls")
		}
		for j := range first.Insights {
			if next.Insights[j] != first.Insights[j] {
				t.Fatalf("insight order varied: %v vs %v", first.Insights, next.Insights)
			}
		}
	}
}
