package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway:
// inbound HTTP traffic, upstream call latency and course-cache hit rates.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// NewMetricsService registers the gateway's Prometheus collectors.
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

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of catalog upstream calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_errors_total",
		Help: "Total failed catalog upstream calls",
	}, []string{"operation"})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "course_cache_hits_total",
		Help: "Total course cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "course_cache_misses_total",
		Help: "Total course cache misses",
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamErrors, cacheHits, cacheMisses)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamErrors:   upstreamErrors,
		cacheHits:        cacheHits,
		cacheMisses:      cacheMisses,
	}
}

// Handler exposes the scrape endpoint for this service's registry.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one inbound request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, fmt.Sprintf("%d", status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveUpstream records one catalog upstream call. Implements
// upstream.Observer.
func (s *MetricsService) ObserveUpstream(operation string, duration time.Duration, err error) {
	s.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		s.upstreamErrors.WithLabelValues(operation).Inc()
	}
}

// CacheHit counts a course-cache hit.
func (s *MetricsService) CacheHit() {
	s.cacheHits.Inc()
}

// CacheMiss counts a course-cache miss.
func (s *MetricsService) CacheMiss() {
	s.cacheMisses.Inc()
}
