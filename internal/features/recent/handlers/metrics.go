package handlers

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts panel loads and deletes
type Metrics struct {
	loads        *prometheus.CounterVec
	deletes      *prometheus.CounterVec
	loadDuration prometheus.Histogram
	total        prometheus.Gauge
}

// NewMetrics creates the panel collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqstudio",
			Subsystem: "recent",
			Name:      "loads_total",
			Help:      "Panel loads by outcome.",
		}, []string{"outcome"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faqstudio",
			Subsystem: "recent",
			Name:      "deletes_total",
			Help:      "Row deletes by outcome.",
		}, []string{"outcome"}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "faqstudio",
			Subsystem: "recent",
			Name:      "load_duration_seconds",
			Help:      "Time spent loading the panel from the backend.",
			Buckets:   prometheus.DefBuckets,
		}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "faqstudio",
			Subsystem: "recent",
			Name:      "backend_total",
			Help:      "Last total question count reported by the backend.",
		}),
	}

	reg.MustRegister(m.loads, m.deletes, m.loadDuration, m.total)
	return m
}

func (m *Metrics) observeLoad(seconds float64, outcome string, total *int64) {
	m.loads.WithLabelValues(outcome).Inc()
	m.loadDuration.Observe(seconds)
	if total != nil {
		m.total.Set(float64(*total))
	}
}

func (m *Metrics) observeDelete(outcome string) {
	m.deletes.WithLabelValues(outcome).Inc()
}
