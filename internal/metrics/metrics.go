// Package metrics: Prometheus-метрики сервиса в отдельном реестре.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "styleinspo"

// Registry: реестр всех метрик сервиса
var Registry = prometheus.NewRegistry()

var (
	PageViews = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_views_total",
		Help:      "Page views accepted for recording.",
	})

	AffiliateClicks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "affiliate_clicks_total",
		Help:      "Affiliate clicks accepted for recording.",
	})

	AnalyticsWriteFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_write_failures_total",
		Help:      "Analytics events that failed to persist.",
	}, []string{"kind"})

	SEOGenerations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seo_generations_total",
		Help:      "SEO bundle generations by outcome.",
	}, []string{"outcome"})

	VisionRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vision_requests_total",
		Help:      "Vision provider calls by provider and outcome.",
	}, []string{"provider", "outcome"})

	MediaDeletions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_deletions_total",
		Help:      "Object store deletions by outcome.",
	}, []string{"outcome"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		PageViews,
		AffiliateClicks,
		AnalyticsWriteFailures,
		SEOGenerations,
		VisionRequests,
		MediaDeletions,
		HTTPDuration,
	)
}

// Handler отдаёт метрики реестра
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Middleware измеряет длительность запросов; метка route: шаблон маршрута chi
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		HTTPDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
