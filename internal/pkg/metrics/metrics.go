package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллекторы Prometheus, общие для сервиса. Методы безопасны для nil.
type Metrics struct {
	Updates         *prometheus.CounterVec
	Draws           *prometheus.CounterVec
	AdvisorRequests *prometheus.CounterVec
	AdvisorLatency  *prometheus.HistogramVec
	Broadcast       *prometheus.CounterVec
	Errors          *prometheus.CounterVec
}

// New создаёт и регистрирует коллекторы в переданном реестре
func New(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "telegram_updates_total",
			Help:      "Incoming Telegram updates by kind.",
		}, []string{"type"}),
		Draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_draws_total",
			Help:      "Daily cards drawn by orientation and tier.",
		}, []string{"orientation", "tier"}),
		AdvisorRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisor_requests_total",
			Help:      "AI advisor requests by outcome.",
		}, []string{"status"}),
		AdvisorLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "advisor_request_duration_seconds",
			Help:      "Latency distribution for AI advisor calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		Broadcast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "daily_push_messages_total",
			Help:      "Scheduled daily card deliveries by outcome.",
		}, []string{"status"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total errors grouped by component.",
		}, []string{"component"}),
	}

	reg.MustRegister(
		m.Updates,
		m.Draws,
		m.AdvisorRequests,
		m.AdvisorLatency,
		m.Broadcast,
		m.Errors,
	)
	return m
}

func (m *Metrics) IncUpdate(kind string) {
	if m == nil {
		return
	}
	m.Updates.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncDraw(orientation string, premium bool) {
	if m == nil {
		return
	}
	tier := "free"
	if premium {
		tier = "premium"
	}
	m.Draws.WithLabelValues(orientation, tier).Inc()
}

func (m *Metrics) ObserveAdvisor(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.AdvisorRequests.WithLabelValues(status).Inc()
	m.AdvisorLatency.WithLabelValues(status).Observe(elapsed.Seconds())
}

func (m *Metrics) IncBroadcast(status string) {
	if m == nil {
		return
	}
	m.Broadcast.WithLabelValues(status).Inc()
}

func (m *Metrics) IncError(component string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(component).Inc()
}
