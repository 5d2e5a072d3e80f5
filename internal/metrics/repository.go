package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var repositoryBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

var (
	clickhouseRepositoryRequestsTotal   = repositoryCounter("clickhouse_repository")
	clickhouseRepositoryRequestDuration = repositoryHistogram("clickhouse_repository")
	duckdbRepositoryRequestsTotal       = repositoryCounter("duckdb_repository")
	duckdbRepositoryRequestDuration     = repositoryHistogram("duckdb_repository")
)

func repositoryCounter(subsystem string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "coin", "network", "status"})
}

func repositoryHistogram(subsystem string) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   repositoryBuckets,
	}, []string{"operation", "coin", "network", "status"})
}

// Repository tracks metrics for chain store operations of one backend.
type Repository struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClickhouseRepository creates a Repository collector for the ClickHouse store.
func NewClickhouseRepository() *Repository {
	return &Repository{total: clickhouseRepositoryRequestsTotal, duration: clickhouseRepositoryRequestDuration}
}

// NewDuckDBRepository creates a Repository collector for the DuckDB store.
func NewDuckDBRepository() *Repository {
	return &Repository{total: duckdbRepositoryRequestsTotal, duration: duckdbRepositoryRequestDuration}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	labels := []string{operation, labelOrUnknown(string(coin)), labelOrUnknown(string(network)), status(err)}
	m.total.WithLabelValues(labels...).Inc()
	m.duration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
