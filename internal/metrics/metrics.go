// Package metrics содержит счётчики обращений к хранилищу.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// StoreOperations считает обращения к хранилищу по операции, коллекции и результату.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_store_operations_total",
		Help: "Total number of document store operations",
	}, []string{"operation", "collection", "result"})

	// StoreLatency время выполнения обращения к хранилищу.
	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_store_operation_seconds",
		Help:    "Document store operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection"})
)

// ObserveStore начинает замер операции. Возвращённую функцию нужно вызвать
// с итоговой ошибкой операции (nil при успехе).
func ObserveStore(operation, collection string) func(error) {
	start := time.Now()
	return func(err error) {
		StoreLatency.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
		result := ResultOK
		if err != nil {
			result = ResultError
		}
		StoreOperations.WithLabelValues(operation, collection, result).Inc()
	}
}
