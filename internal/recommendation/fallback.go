package recommendation

import (
	"fmt"
	"math"
	"sort"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

// Generic lists substituted wholesale when no threshold rule fires in
// a category. Substitution is all-or-nothing per category.
var (
	genericRecommendations = []string{
		"Focus on improving conversion rate through better marketing",
		"Consider offering early bird discounts",
		"Analyze competitor pricing strategies",
	}
	genericInsights = []string{
		"Your event shows potential for growth",
		"Consider targeting your most engaged demographic",
	}
	genericNextSteps = []string{
		"Gather customer feedback",
		"Plan marketing strategy for next event",
		"Review pricing structure",
	}
)

// Fallback derives a recommendation from the snapshot's metrics alone.
// Pure and deterministic: no I/O, same snapshot always yields the same
// result. It backs Recommend whenever the AI path fails.
func Fallback(snapshot models.AnalyticsSnapshot) models.Recommendation {
	sales := snapshot.Sales

	shouldCreateEvent := sales.ConversionRate > 70 && sales.TotalRevenue > 1000 && sales.TotalTicketsSold > 10

	confidence := sales.ConversionRate
	if sales.TotalRevenue > 5000 {
		confidence += 20
	}
	confidence = math.Min(95, math.Max(40, confidence))

	var recommendations []string
	if sales.ConversionRate < 50 {
		recommendations = append(recommendations, "Your conversion rate is low - focus on improving payment completion and reducing cart abandonment")
	} else if sales.ConversionRate > 80 {
		recommendations = append(recommendations, "Excellent conversion rate! Consider increasing ticket prices or adding premium options")
	}

	if sales.AverageSpentPerCustomer < 100 {
		recommendations = append(recommendations, "Average spending per customer is low - consider upselling strategies or premium ticket tiers")
	} else if sales.AverageSpentPerCustomer > 300 {
		recommendations = append(recommendations, "High customer spending indicates strong demand - consider expanding capacity or adding more events")
	}

	if sales.TotalTicketsSold < 20 {
		recommendations = append(recommendations, "Low ticket sales suggest marketing improvements needed - focus on social media and influencer partnerships")
	} else if sales.TotalTicketsSold > 100 {
		recommendations = append(recommendations, "Strong ticket sales performance - consider scaling up with larger venues or multiple events")
	}

	var insights []string
	if bucket, pct := topBucket(snapshot.Demographics.AgeGroups.Percentages); pct > 0 {
		insights = append(insights, fmt.Sprintf("Your primary audience is %s age group (%s%%) - tailor marketing to this demographic", bucket, formatAmount(pct)))
	}
	if bucket, pct := topBucket(snapshot.Demographics.Gender.Percentages); pct > 0 {
		insights = append(insights, fmt.Sprintf("Gender distribution shows %s dominance (%s%%) - consider gender-specific marketing strategies", bucket, formatAmount(pct)))
	}

	var nextSteps []string
	if sales.TotalRevenue > 5000 {
		nextSteps = append(nextSteps, "Plan a follow-up event within 2-3 months to capitalize on success")
	} else {
		nextSteps = append(nextSteps, "Conduct customer surveys to understand barriers to attendance")
	}
	nextSteps = append(nextSteps,
		"Analyze peak sales periods to optimize future event timing",
		"Review ticket pricing strategy based on conversion rates",
	)

	if len(recommendations) == 0 {
		recommendations = genericRecommendations
	}
	if len(insights) == 0 {
		insights = genericInsights
	}
	if len(nextSteps) == 0 {
		nextSteps = genericNextSteps
	}

	return models.Recommendation{
		ShouldCreateEvent: shouldCreateEvent,
		Confidence:        int(math.Round(confidence)),
		Recommendations:   recommendations,
		Insights:          insights,
		NextSteps:         nextSteps,
	}
}

// topBucket returns the bucket with the highest percentage. Ties go to
// the lexicographically smaller label so the result is deterministic.
func topBucket(percentages map[string]float64) (string, float64) {
	labels := make([]string, 0, len(percentages))
	for label := range percentages {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	best := ""
	bestPct := 0.0
	for _, label := range labels {
		if percentages[label] > bestPct {
			best = label
			bestPct = percentages[label]
		}
	}

	return best, bestPct
}
