package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolveRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "province_resolve_requests_total",
		Help: "Total number of province resolutions",
	})
	ResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "province_resolve_duration_ms",
		Help:    "Province resolution duration in milliseconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	})
	ResolveSourceTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "province_resolve_source_total",
		Help: "Resolutions by path (fast_path, nearest, default, cache)",
	}, []string{"source"})
	TableFallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "province_table_fallback_total",
		Help: "Times a table provider fell back to the static table",
	}, []string{"provider"})
	ListingRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "province_listing_requests_total",
		Help: "Total listing endpoint requests",
	})
	ListingFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "province_listing_fail_total",
		Help: "Total listing endpoint failures",
	})
	ListingDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "province_listing_duration_ms",
		Help:    "Listing endpoint call duration in milliseconds",
		Buckets: []float64{5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	LocateAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "province_locate_attempts_total",
		Help: "Location acquisition attempts by accuracy and outcome",
	}, []string{"accuracy", "outcome"})
	RedisHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "province_redis_hits_total",
		Help: "Total redis cache hits",
	})
	RedisMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "province_redis_misses_total",
		Help: "Total redis cache misses",
	})
)

func init() {
	prometheus.MustRegister(
		ResolveRequestsTotal,
		ResolveDurationMs,
		ResolveSourceTotal,
		TableFallbackTotal,
		ListingRequestsTotal,
		ListingFailTotal,
		ListingDurationMs,
		LocateAttemptsTotal,
		RedisHitsTotal,
		RedisMissesTotal,
	)
}

// Handler：Prometheus 抓取端点
func Handler() http.Handler { return promhttp.Handler() }
