// Package metrics records operational counters and gauges in an
// embedded time-series store under the application workdir.
package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/nakabonne/tstorage"
)

const (
	MetricHTTPRequests    = "storefront_http_requests"
	MetricOrdersSubmitted = "storefront_orders_submitted"
	MetricOrdersFailed    = "storefront_orders_failed"
	MetricSessionCarts    = "storefront_session_carts"
	MetricSystemCPUUse    = "system_cpu_use"
	MetricSystemMemUse    = "system_mem_use"
)

var (
	mu      sync.RWMutex
	storage tstorage.Storage
)

// InitMetrics opens the metrics store under workdir. Calling the write
// helpers before init is a no-op, so components never need to care
// whether metrics are enabled.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(30*24*time.Hour),
	)
	if err != nil {
		return err
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}

// Incr records a counter increment as a value-1 data point.
func Incr(metric string) {
	Gauge(metric, 1)
}

// Gauge records one data point for a metric at the current time.
func Gauge(metric string, value float64) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric:    metric,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
}

// Summary aggregates the data points of a metric over [start, end].
type Summary struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	P95    float64 `json:"p95"`
}

// Summarize computes count, sum, mean and p95 for a metric over the
// given range. Missing data yields a zero summary, not an error.
func Summarize(metric string, start, end time.Time) (Summary, error) {
	mu.RLock()
	defer mu.RUnlock()
	out := Summary{Metric: metric}
	if storage == nil {
		return out, nil
	}
	points, err := storage.Select(metric, nil, start.Unix(), end.Unix())
	if err != nil {
		if err == tstorage.ErrNoDataPoints {
			return out, nil
		}
		return out, err
	}
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, p.Value)
		out.Sum += p.Value
	}
	out.Count = len(values)
	if out.Count > 0 {
		out.Mean, _ = stats.Mean(values)
		out.P95, _ = stats.Percentile(values, 95)
	}
	return out, nil
}
