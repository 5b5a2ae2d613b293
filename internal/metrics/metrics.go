// Package metrics holds the Prometheus collectors shared by the pipeline,
// the model gateway and the HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gapfill_llm_requests_total",
			Help: "Total number of model requests, partitioned by provider, purpose and status.",
		},
		[]string{"provider", "purpose", "status"},
	)
	llmDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gapfill_llm_request_duration_seconds",
			Help:    "Duration of model requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 0.25s .. ~128s
		},
		[]string{"provider", "purpose"},
	)
	llmTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gapfill_llm_tokens_total",
			Help: "Tokens consumed by model requests, partitioned by direction (input/output).",
		},
		[]string{"provider", "direction"},
	)
	generations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gapfill_generations_total",
			Help: "Total number of exercise generations, partitioned by status.",
		},
		[]string{"status"},
	)
	degradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gapfill_degradations_total",
			Help: "Parse degradations, partitioned by pipeline stage.",
		},
		[]string{"stage"},
	)
	misalignedTiers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gapfill_misaligned_tiers_total",
			Help: "Tiers whose blank and answer counts differ.",
		},
		[]string{"tier"},
	)
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gapfill_analysis_cache_lookups_total",
			Help: "Analysis cache lookups, partitioned by result (hit/miss/error).",
		},
		[]string{"result"},
	)
	artifactsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gapfill_artifacts_written_total",
			Help: "Total number of HTML artifacts written.",
		},
	)
)

// ObserveLLMRequest records one model call.
func ObserveLLMRequest(provider, purpose string, success bool, seconds float64) {
	status := "success"
	if !success {
		status = "error"
	}
	llmRequests.WithLabelValues(provider, purpose, status).Inc()
	llmDuration.WithLabelValues(provider, purpose).Observe(seconds)
}

// AddLLMTokens adds token usage for a provider.
func AddLLMTokens(provider string, input, output int) {
	if input > 0 {
		llmTokens.WithLabelValues(provider, "input").Add(float64(input))
	}
	if output > 0 {
		llmTokens.WithLabelValues(provider, "output").Add(float64(output))
	}
}

// IncGeneration counts a finished generation ("success" or "error").
func IncGeneration(status string) {
	generations.WithLabelValues(status).Inc()
}

// IncDegradation counts a stage that fell back to a lower-fidelity result.
func IncDegradation(stage string) {
	degradations.WithLabelValues(stage).Inc()
}

// IncMisalignedTier counts a tier whose blanks and answers differ in length.
func IncMisalignedTier(tier string) {
	misalignedTiers.WithLabelValues(tier).Inc()
}

// IncCacheLookup counts an analysis cache lookup.
func IncCacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}

// IncArtifactWritten counts a saved HTML artifact.
func IncArtifactWritten() {
	artifactsWritten.Inc()
}
