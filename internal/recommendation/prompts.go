package recommendation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

// systemPrompt pins the consultant persona and the JSON-only contract.
const systemPrompt = "You are an expert event management consultant specializing in nightclub and entertainment venue analytics. You provide highly personalized, data-driven recommendations that are unique to each specific event's performance. Never give generic advice - every recommendation must be based on the specific data provided. Always respond in valid JSON format."

// progressionTailLen bounds how many trailing days of the revenue
// series go into the prompt.
const progressionTailLen = 5

// BuildRecommendationPrompt renders an analytics snapshot as the user
// prompt for the chat completion. Map-backed sections are emitted in
// sorted key order so the same snapshot always yields the same prompt.
func BuildRecommendationPrompt(snapshot models.AnalyticsSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert event management consultant analyzing a specific event's performance data. This is a unique analysis for %q (Event ID: %s) that took place on %s. Provide highly personalized and specific recommendations based on this event's actual performance.

CRITICAL: Base your analysis ONLY on the specific data provided below. Each recommendation must be tailored to this event's unique performance patterns. This analysis is unique to this specific event and should not contain generic advice.

Event Performance Analysis:
- Event Name: %q
- Event Date: %s
- Total Revenue: AED %s
- Total Tickets Sold: %d
- Total Orders: %d
- Paid Orders: %d
- Conversion Rate: %s%%
- Average Spent per Customer: AED %s
- Average Tickets per Order: %s
`,
		snapshot.Event.Name, snapshot.Event.ID, snapshot.Event.Date,
		snapshot.Event.Name, snapshot.Event.Date,
		formatAmount(snapshot.Sales.TotalRevenue),
		snapshot.Sales.TotalTicketsSold,
		snapshot.Sales.TotalOrders,
		snapshot.Sales.PaidOrders,
		formatAmount(snapshot.Sales.ConversionRate),
		formatAmount(snapshot.Sales.AverageSpentPerCustomer),
		formatAmount(snapshot.Sales.AverageTicketsPerOrder),
	)

	b.WriteString("\nDetailed Ticket Performance:\n")
	for _, ticket := range snapshot.TicketTypes {
		fmt.Fprintf(&b, "- %q: %d tickets sold, AED %s each, Total Revenue: AED %s\n",
			ticket.Name, ticket.QuantitySold, formatAmount(ticket.Price), formatAmount(ticket.Revenue))
	}

	fmt.Fprintf(&b, "\nAudience Demographics (%d total attendees):\n", snapshot.Demographics.TotalUsers)
	fmt.Fprintf(&b, "- Age Distribution: %s\n", formatDistribution(snapshot.Demographics.AgeGroups.Percentages))
	fmt.Fprintf(&b, "- Gender Distribution: %s\n", formatDistribution(snapshot.Demographics.Gender.Percentages))

	b.WriteString("\nSales Progression Pattern:\n")
	b.WriteString(formatProgression(snapshot.SalesProgression))

	b.WriteString(`

ANALYSIS REQUIREMENTS:
1. Analyze the specific performance metrics above
2. Consider the unique ticket pricing strategy and sales patterns
3. Evaluate the audience demographics and their spending behavior
4. Assess the conversion rate and payment completion
5. Look at the sales progression timeline

Provide personalized recommendations that address:
- Specific weaknesses in this event's performance
- Opportunities based on the actual audience demographics
- Pricing strategy adjustments based on ticket performance
- Marketing insights based on conversion rates
- Timing and scheduling recommendations

Respond in JSON format:
{
  "shouldCreateEvent": boolean,
  "confidence": number,
  "recommendations": ["specific recommendation based on this event's data", "another specific recommendation", ...],
  "insights": ["insight about this specific audience", "insight about this event's performance", ...],
  "nextSteps": ["specific action for this club", "another specific action", ...]
}
`)

	return b.String()
}

// formatDistribution renders non-zero percentage buckets as
// "bucket: pct%, ..." in sorted bucket order. Zero-percent buckets are
// dropped entirely.
func formatDistribution(percentages map[string]float64) string {
	buckets := make([]string, 0, len(percentages))
	for bucket, pct := range percentages {
		if pct > 0 {
			buckets = append(buckets, bucket)
		}
	}
	sort.Strings(buckets)

	parts := make([]string, 0, len(buckets))
	for _, bucket := range buckets {
		parts = append(parts, fmt.Sprintf("%s: %s%%", bucket, formatAmount(percentages[bucket])))
	}

	return strings.Join(parts, ", ")
}

// formatProgression renders the most recent entries of the date-keyed
// revenue series, one line per day.
func formatProgression(progression map[string]float64) string {
	if len(progression) == 0 {
		return "No sales progression data available"
	}

	days := make([]string, 0, len(progression))
	for day := range progression {
		days = append(days, day)
	}
	sort.Strings(days)

	if len(days) > progressionTailLen {
		days = days[len(days)-progressionTailLen:]
	}

	lines := make([]string, 0, len(days))
	for _, day := range days {
		lines = append(lines, fmt.Sprintf("- %s: AED %s", day, formatAmount(progression[day])))
	}

	return strings.Join(lines, "\n")
}

// formatAmount prints a float without trailing zeros (80 not 80.000000).
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
