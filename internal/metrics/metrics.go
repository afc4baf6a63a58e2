// Package metrics exposes Prometheus collectors for the archiver.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcome labels for ObserveFetch.
const (
	FetchOK          = "ok"
	FetchNotFound    = "not_found"
	FetchRateLimited = "rate_limited"
	FetchError       = "error"
)

var (
	archiverFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archiver_fetches_total",
			Help: "Total number of API page fetches, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	archiverPostsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archiver_posts_saved_total",
			Help: "Total number of posts persisted, labeled by blog.",
		},
		[]string{"blog"},
	)

	archiverPlaceholderBlogsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archiver_placeholder_blogs_total",
			Help: "Total number of placeholder blog records written for inaccessible blogs.",
		},
	)

	archiverRateLimitWaitSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archiver_rate_limit_wait_seconds",
			Help:    "Histogram of rate limit backoff wait durations.",
			Buckets: []float64{20, 40, 80, 160, 320, 640, 1280},
		},
	)
)

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetch increments the fetch counter for the given outcome.
func ObserveFetch(outcome string) {
	archiverFetchesTotal.WithLabelValues(outcome).Inc()
}

// IncPostsSaved increments the saved-post counter for a blog.
func IncPostsSaved(blog string) {
	archiverPostsSavedTotal.WithLabelValues(blog).Inc()
}

// IncPlaceholderBlogs increments the placeholder blog counter.
func IncPlaceholderBlogs() {
	archiverPlaceholderBlogsTotal.Inc()
}

// ObserveRateLimitWait records the duration of a rate limit backoff wait.
func ObserveRateLimitWait(d time.Duration) {
	archiverRateLimitWaitSeconds.Observe(d.Seconds())
}
