// Package metrics exposes Prometheus counters for bracket activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abrezinsky/derbybracket/internal/bracket"
)

const namespace = "derbybracket"

// Metrics holds the collectors on a private registry. It also implements
// bracket.Observer so committed engine notifications can be counted.
type Metrics struct {
	registry *prometheus.Registry

	scoreUpdates    prometheus.Counter
	roundsCompleted prometheus.Counter
	roundsGenerated prometheus.Counter
	operations      *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	tournaments     prometheus.Gauge
	wsClients       prometheus.Gauge
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scoreUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_updates_total",
			Help:      "Scores recorded.",
		}),
		roundsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_completed_total",
			Help:      "Rounds that became complete or were advanced.",
		}),
		roundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_generated_total",
			Help:      "Rounds generated from the winners of the previous round.",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Tournament operations by name and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Tournament operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		tournaments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tournaments",
			Help:      "Stored tournaments.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected WebSocket clients.",
		}),
	}
	m.registry.MustRegister(
		m.scoreUpdates,
		m.roundsCompleted,
		m.roundsGenerated,
		m.operations,
		m.duration,
		m.tournaments,
		m.wsClients,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnScoreUpdate(round, game, team int, score float64) {
	m.scoreUpdates.Inc()
}

func (m *Metrics) OnRoundComplete(round int) {
	m.roundsCompleted.Inc()
}

func (m *Metrics) OnRoundGenerated(round int, data bracket.Round) {
	m.roundsGenerated.Inc()
}

// ObserveOperation records one service operation.
func (m *Metrics) ObserveOperation(op string, started time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// SetTournaments records the number of stored tournaments.
func (m *Metrics) SetTournaments(n int) {
	m.tournaments.Set(float64(n))
}

// SetWebSocketClients records the number of connected clients.
func (m *Metrics) SetWebSocketClients(n int) {
	m.wsClients.Set(float64(n))
}

var _ bracket.Observer = (*Metrics)(nil)
