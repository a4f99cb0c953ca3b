package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestionMetrics acompanha as execuções do scrape de anúncios
type IngestionMetrics struct {
	runs     *prometheus.CounterVec
	inserted *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewIngestionMetrics registra as métricas no registerer informado; com nil os métodos viram no-op
func NewIngestionMetrics(reg prometheus.Registerer) *IngestionMetrics {
	if reg == nil {
		return &IngestionMetrics{}
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ads_scrape_runs_total",
		Help: "Scrape executions by outcome.",
	}, []string{"outcome"})
	inserted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ads_inserted_total",
		Help: "Ad rows inserted by source.",
	}, []string{"source"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ads_scrape_duration_seconds",
		Help:    "Duration of scrape executions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	reg.MustRegister(runs, inserted, duration)

	return &IngestionMetrics{
		runs:     runs,
		inserted: inserted,
		duration: duration,
	}
}

func (m *IngestionMetrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	outcome = normalizeLabel(outcome)
	m.runs.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (m *IngestionMetrics) AddInserted(source string, count int) {
	if m == nil || m.inserted == nil || count <= 0 {
		return
	}
	m.inserted.WithLabelValues(normalizeLabel(source)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
