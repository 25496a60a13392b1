// Package metrics exposes Prometheus instrumentation for catalog, location
// and pipeline activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	lookupRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfinder_lookup_requests_total",
			Help: "Total number of external lookups by service and outcome.",
		},
		[]string{"service", "outcome"},
	)

	lookupDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starfinder_lookup_duration_seconds",
			Help:    "External lookup duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	catalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfinder_catalog_cache_total",
			Help: "Catalog cache lookups by result.",
		},
		[]string{"result"},
	)

	sweepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfinder_sweeps_total",
			Help: "Completed radius sweeps by outcome.",
		},
		[]string{"outcome"},
	)

	sightingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starfinder_sightings_total",
			Help: "Sightings processed end to end, by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(lookupRequestsTotal)
	prometheus.MustRegister(lookupDurationSeconds)
	prometheus.MustRegister(catalogCacheTotal)
	prometheus.MustRegister(sweepsTotal)
	prometheus.MustRegister(sightingsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveLookup records one external lookup that started at start.
func ObserveLookup(service, outcome string, start time.Time) {
	lookupRequestsTotal.WithLabelValues(service, outcome).Inc()
	lookupDurationSeconds.WithLabelValues(service).Observe(time.Since(start).Seconds())
}

// CacheHit records a catalog cache hit.
func CacheHit() {
	catalogCacheTotal.WithLabelValues("hit").Inc()
}

// CacheMiss records a catalog cache miss.
func CacheMiss() {
	catalogCacheTotal.WithLabelValues("miss").Inc()
}

// SweepDone records the end of a radius sweep.
func SweepDone(err error) {
	sweepsTotal.WithLabelValues(outcomeOf(err)).Inc()
}

// SightingDone records the end of a full sighting pipeline run.
func SightingDone(err error) {
	sightingsTotal.WithLabelValues(outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
