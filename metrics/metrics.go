package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "osb_upstream_requests_total",
		Help: "Total OS API requests by endpoint",
	}, []string{"endpoint"})
	UpstreamFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "osb_upstream_fail_total",
		Help: "Total OS API request failures by endpoint",
	}, []string{"endpoint"})
	UpstreamDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "osb_upstream_duration_ms",
		Help:    "OS API call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"endpoint"})
	StashHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osb_stash_hits_total",
		Help: "Total artifact stash hits",
	})
	StashMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osb_stash_misses_total",
		Help: "Total artifact stash misses",
	})
	StashStoreFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osb_stash_store_fail_total",
		Help: "Total background artifact writes that failed",
	})
	BuildingsFetchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osb_buildings_fetched_total",
		Help: "Building records fetched from the Places API, duplicates included",
	})
	BuildingsKeptTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osb_buildings_kept_total",
		Help: "Building records kept after deduplication",
	})
	HeightlessBuildingsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "osb_heightless_buildings_total",
		Help: "Buildings skipped for lacking a relative height",
	})
	GenerationDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "osb_generation_duration_ms",
		Help:    "Live scene generation duration in milliseconds",
		Buckets: []float64{100, 500, 1000, 5000, 10000, 30000, 60000},
	})
)

func init() {
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamFailTotal)
	prometheus.MustRegister(UpstreamDurationMs)
	prometheus.MustRegister(StashHitsTotal)
	prometheus.MustRegister(StashMissesTotal)
	prometheus.MustRegister(StashStoreFailTotal)
	prometheus.MustRegister(BuildingsFetchedTotal)
	prometheus.MustRegister(BuildingsKeptTotal)
	prometheus.MustRegister(HeightlessBuildingsTotal)
	prometheus.MustRegister(GenerationDurationMs)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
