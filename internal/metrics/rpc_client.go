package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "coin", "network", "status"})
	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
	loaderBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_loader",
		Name:      "blocks_total",
		Help:      "Count of blocks loaded from the node into a chain store.",
	}, []string{"coin", "network", "status"})
	loaderBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_loader",
		Name:      "block_duration_seconds",
		Help:      "Duration of fetching, converting and appending one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
	loaderLastHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_loader",
		Name:      "last_height",
		Help:      "Height of the last block appended by the loader.",
	}, []string{"coin", "network"})
)

// RPCClient tracks metrics for RPC calls to blockchain nodes.
type RPCClient struct {
	coin    string
	network string
}

// NewRPCClient constructs a metrics collector for RPC calls.
func NewRPCClient(coin model.Coin, network model.Network) *RPCClient {
	return &RPCClient{coin: labelOrUnknown(string(coin)), network: labelOrUnknown(string(network))}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	rpcRequestsTotal.WithLabelValues(operation, m.coin, m.network, status(err)).Inc()
	rpcRequestDuration.WithLabelValues(operation, m.coin, m.network, status(err)).Observe(time.Since(started).Seconds())
}

// Loader tracks blocks loaded from a node into a chain store.
type Loader struct {
	coin    string
	network string
}

func NewLoader(coin model.Coin, network model.Network) *Loader {
	return &Loader{coin: labelOrUnknown(string(coin)), network: labelOrUnknown(string(network))}
}

// ObserveBlock records the outcome of loading the block at height.
func (m Loader) ObserveBlock(err error, height uint64, started time.Time) {
	loaderBlocksTotal.WithLabelValues(m.coin, m.network, status(err)).Inc()
	loaderBlockDuration.WithLabelValues(m.coin, m.network, status(err)).Observe(time.Since(started).Seconds())
	if err == nil {
		loaderLastHeight.WithLabelValues(m.coin, m.network).Set(float64(height))
	}
}
