package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	scanDuration    prometheus.Histogram
	scannedEvents   prometheus.Gauge
	notifications   *prometheus.CounterVec
	writeFailures   *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	scanDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "notification_scan_duration_seconds",
		Help:    "Duration of notification scheduler scans",
		Buckets: prometheus.DefBuckets,
	})

	scannedEvents := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "notification_scanned_events",
		Help: "Events inspected by the most recent scheduler scan",
	})

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_fired_total",
		Help: "Alerts raised by the scheduler, by kind",
	}, []string{"kind"})

	writeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_write_failures_total",
		Help: "Failed persistence writes, by collection key",
	}, []string{"key"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, scanDuration, scannedEvents, notifications, writeFailures, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		scanDuration:    scanDuration,
		scannedEvents:   scannedEvents,
		notifications:   notifications,
		writeFailures:   writeFailures,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveScan records one scheduler scan.
func (m *MetricsService) ObserveScan(duration time.Duration, eventCount int) {
	if m == nil {
		return
	}
	m.scanDuration.Observe(duration.Seconds())
	m.scannedEvents.Set(float64(eventCount))
}

// RecordStoreWriteFailure counts a persistence write that could not reach
// the backing key-value store.
func (m *MetricsService) RecordStoreWriteFailure(key string) {
	if m == nil {
		return
	}
	m.writeFailures.WithLabelValues(key).Inc()
}

// RecordNotification counts a raised alert by kind (today, advance, now).
func (m *MetricsService) RecordNotification(kind string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind).Inc()
}
