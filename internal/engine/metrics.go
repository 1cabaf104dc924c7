package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "toggle_sync"

// Metrics are the prometheus collectors of one engine.
type Metrics struct {
	toggles     *prometheus.CounterVec
	submissions *prometheus.CounterVec
	retries     prometheus.Counter
	rollbacks   prometheus.Counter
	pushes      *prometheus.CounterVec
	inFlight    prometheus.Gauge
}

// NewMetrics creates the engine collectors and registers them with reg. A nil
// reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		toggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "toggles_total",
			Help:      "Toggle requests by result.",
		}, []string{"result"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "submissions_total",
			Help:      "Server submissions by outcome.",
		}, []string{"outcome"}),
		retries: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "retries_total",
			Help:      "Retries scheduled after retryable submission failures.",
		}),
		rollbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rollbacks_total",
			Help:      "Optimistic updates rolled back after terminal failures.",
		}),
		pushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "push_updates_total",
			Help:      "Push updates by decision.",
		}, []string{"decision"}),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "unsettled_toggles",
			Help:      "Toggles waiting for their final server result.",
		}),
	}
}

func (m *Metrics) toggle(result string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(result).Inc()
}

func (m *Metrics) submission(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) retry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

func (m *Metrics) rollback() {
	if m == nil {
		return
	}
	m.rollbacks.Inc()
}

func (m *Metrics) push(accepted bool) {
	if m == nil {
		return
	}
	if accepted {
		m.pushes.WithLabelValues("accepted").Inc()
		return
	}
	m.pushes.WithLabelValues("rejected").Inc()
}

func (m *Metrics) settling(delta float64) {
	if m == nil {
		return
	}
	m.inFlight.Add(delta)
}
