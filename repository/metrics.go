package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus metrics for repositories. A nil *Metrics records nothing.
type Metrics struct {
	queriesTotal    *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	triplesReceived *prometheus.CounterVec
	entitiesTotal   *prometheus.CounterVec
}

// NewMetrics creates repository metrics and registers them. A nil registerer
// returns nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	m := &Metrics{
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semskos_repository_queries_total",
				Help: "Total number of graph store calls made by repositories",
			},
			[]string{"operation", "status"},
		),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "semskos_repository_query_duration_seconds",
				Help:    "Duration of repository operations including rehydration",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"operation"},
		),
		triplesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semskos_repository_triples_received_total",
				Help: "Total number of triples received from the graph store",
			},
			[]string{"operation"},
		),
		entitiesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "semskos_repository_entities_total",
				Help: "Total number of entities rehydrated",
			},
			[]string{"operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.queriesTotal, m.queryDuration, m.triplesReceived, m.entitiesTotal} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordQuery(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.queriesTotal.WithLabelValues(operation, status).Inc()
	m.queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) recordResult(operation string, triples, entities int) {
	if m == nil {
		return
	}
	m.triplesReceived.WithLabelValues(operation).Add(float64(triples))
	m.entitiesTotal.WithLabelValues(operation).Add(float64(entities))
}
