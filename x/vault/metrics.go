package vault

import (
	"math/big"
	"strconv"
	"time"

	"github.com/iov-one/delayvault/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// operationsTotal counts engine operations by result.
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "delayvault",
		Name:      "operations_total",
		Help:      "Total vault operations by operation and result code",
	}, []string{"operation", "result"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "delayvault",
		Name:      "operation_duration_seconds",
		Help:      "Vault operation duration",
		Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
	}, []string{"operation"})

	// buyBackRemaining is the amount left in the last bought back vault
	// of an asset.
	buyBackRemaining = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "delayvault",
		Name:      "buyback_remaining",
		Help:      "Amount remaining in a vault after the last buy-back",
	}, []string{"asset"})
)

func observe(op string, started time.Time, err error) {
	operationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	result := "ok"
	if err != nil {
		result = strconv.FormatUint(uint64(errors.Code(err)), 10)
	}
	operationsTotal.WithLabelValues(op, result).Inc()
}

func toFloat(a *big.Int) float64 {
	f, _ := new(big.Float).SetInt(a).Float64()
	return f
}
