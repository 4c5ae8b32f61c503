package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StorageOperationLatency records storage latency by operation and collection.
	StorageOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "saathi_storage_operation_latency_seconds",
		Help:    "Storage operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection"})

	// StorageErrors counts failed storage operations.
	StorageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saathi_storage_errors_total",
		Help: "Total number of storage errors by operation and collection",
	}, []string{"operation", "collection"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saathi_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheLookups counts cache hits and misses by key family.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "saathi_cache_lookups_total",
		Help: "Cache lookups by key family and result",
	}, []string{"family", "result"})
)

// TrackStorage returns a function that records storage latency when called (e.g. defer).
func TrackStorage(operation, collection string) func() {
	start := time.Now()
	return func() {
		StorageOperationLatency.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
	}
}
