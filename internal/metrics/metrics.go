// Package metrics описывает метрики Prometheus сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик обращений к внешнему API и смен статуса страницы.
type Metrics struct {
	UpstreamRequests  *prometheus.CounterVec
	UpstreamDuration  *prometheus.HistogramVec
	StatusTransitions *prometheus.CounterVec
	StaleResponses    prometheus.Counter
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "holiday_board",
			Name:      "upstream_requests_total",
			Help:      "Requests to the holidays API by endpoint and result.",
		}, []string{"endpoint", "result"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "holiday_board",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of requests to the holidays API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "holiday_board",
			Name:      "status_transitions_total",
			Help:      "UI status transitions by target status.",
		}, []string{"status"}),
		StaleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holiday_board",
			Name:      "stale_responses_total",
			Help:      "Holiday responses discarded because a newer selection was made.",
		}),
	}
	reg.MustRegister(m.UpstreamRequests, m.UpstreamDuration, m.StatusTransitions, m.StaleResponses)
	return m
}

// ObserveUpstream фиксирует результат запроса к внешнему API.
func (m *Metrics) ObserveUpstream(endpoint, result string, started time.Time) {
	if m == nil {
		return
	}
	m.UpstreamRequests.WithLabelValues(endpoint, result).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
}

// ObserveStatus фиксирует переход статуса страницы.
func (m *Metrics) ObserveStatus(status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
}

// ObserveStale фиксирует отброшенный устаревший ответ.
func (m *Metrics) ObserveStale() {
	if m == nil {
		return
	}
	m.StaleResponses.Inc()
}
