package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineCollector counts engine-level outcomes: how many ranking
// candidates were scored or degraded to zero, and which path produced
// each recommendation. All methods are nil-safe so the engines can run
// without metrics in tests.
type EngineCollector struct {
	candidatesScored   prometheus.Counter
	candidatesDegraded prometheus.Counter
	recommendations    *prometheus.CounterVec
}

// NewEngineCollector registers the engine counters on the given registry.
func NewEngineCollector(registry *prometheus.Registry) (*EngineCollector, error) {
	candidatesScored := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cavens",
		Subsystem: "ranking",
		Name:      "candidates_scored_total",
		Help:      "Total event candidates scored during city rankings.",
	})

	candidatesDegraded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cavens",
		Subsystem: "ranking",
		Name:      "candidates_degraded_total",
		Help:      "Candidates whose score queries failed and were zeroed.",
	})

	recommendations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cavens",
		Subsystem: "recommendation",
		Name:      "results_total",
		Help:      "Recommendations produced, labelled by generating path.",
	}, []string{"path"})

	for _, c := range []prometheus.Collector{candidatesScored, candidatesDegraded, recommendations} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &EngineCollector{
		candidatesScored:   candidatesScored,
		candidatesDegraded: candidatesDegraded,
		recommendations:    recommendations,
	}, nil
}

// CandidateScored records one successfully scored ranking candidate.
func (c *EngineCollector) CandidateScored() {
	if c == nil {
		return
	}
	c.candidatesScored.Inc()
}

// CandidateDegraded records one candidate zeroed after a query failure.
func (c *EngineCollector) CandidateDegraded() {
	if c == nil {
		return
	}
	c.candidatesDegraded.Inc()
}

// RecommendationPath records which path ("ai" or "fallback") produced
// a recommendation.
func (c *EngineCollector) RecommendationPath(path string) {
	if c == nil {
		return
	}
	c.recommendations.WithLabelValues(path).Inc()
}
