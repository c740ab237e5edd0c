package recommendation

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/iamnithishraja/cavens-sub001/internal/models"
)

const defaultConfidence = 50

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*({.+})\\s*```")
	bareJSONPattern   = regexp.MustCompile("(?s)^\\s*({.+})\\s*$")
)

// parseResponse strictly parses the model's reply as a recommendation.
// Markdown code fences around the JSON are tolerated. Absent optional
// fields default to false/50/empty; malformed JSON is an error so the
// caller can run the fallback instead (no partial merging).
func parseResponse(raw string) (models.Recommendation, error) {
	jsonStr := raw

	if matches := fencedJSONPattern.FindStringSubmatch(raw); len(matches) > 1 {
		jsonStr = matches[1]
	} else if matches := bareJSONPattern.FindStringSubmatch(raw); len(matches) > 1 {
		jsonStr = matches[1]
	}

	// Pointer fields distinguish "absent" from zero values.
	var rawData struct {
		ShouldCreateEvent *bool    `json:"shouldCreateEvent"`
		Confidence        *float64 `json:"confidence"`
		Recommendations   []string `json:"recommendations"`
		Insights          []string `json:"insights"`
		NextSteps         []string `json:"nextSteps"`
	}

	if !strings.HasPrefix(strings.TrimSpace(jsonStr), "{") {
		return models.Recommendation{}, fmt.Errorf("model response is not a JSON object: %.200q", raw)
	}

	if err := json.Unmarshal([]byte(jsonStr), &rawData); err != nil {
		return models.Recommendation{}, fmt.Errorf("failed to parse model response as JSON: %w", err)
	}

	rec := models.Recommendation{
		Confidence:      defaultConfidence,
		Recommendations: []string{},
		Insights:        []string{},
		NextSteps:       []string{},
	}

	if rawData.ShouldCreateEvent != nil {
		rec.ShouldCreateEvent = *rawData.ShouldCreateEvent
	}
	if rawData.Confidence != nil {
		rec.Confidence = clampConfidence(int(math.Round(*rawData.Confidence)))
	}
	if rawData.Recommendations != nil {
		rec.Recommendations = rawData.Recommendations
	}
	if rawData.Insights != nil {
		rec.Insights = rawData.Insights
	}
	if rawData.NextSteps != nil {
		rec.NextSteps = rawData.NextSteps
	}

	return rec, nil
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
