package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warehouse-system/internal/services/inventory"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)
	stockAdjustmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_adjustments_total",
			Help: "Committed stock adjustments by declared type and reason.",
		},
		[]string{"type", "reason"},
	)
	stockEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_events_total",
			Help: "Stock events emitted after adjustments.",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(stockAdjustmentsTotal)
	prometheus.MustRegister(stockEventsTotal)
}

// RecordRequest records one served HTTP request. endpoint should be the route
// template, not the raw path.
func RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

func classifyStatus(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500 && statusCode < 600:
		return "5xx"
	}
	return "unknown"
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// StockEventCounter is an inventory.EventPublisher that only counts.
type StockEventCounter struct{}

func (StockEventCounter) Publish(ctx context.Context, event inventory.StockEvent) error {
	stockEventsTotal.WithLabelValues(string(event.Type)).Inc()
	if event.Type == inventory.EventStockAdjusted {
		stockAdjustmentsTotal.WithLabelValues(string(event.Adjustment.AdjustmentType), string(event.Adjustment.Reason)).Inc()
	}
	return nil
}
