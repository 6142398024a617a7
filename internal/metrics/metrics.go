// metrics — prometheus-коллекторы загрузки источников и курирования.
// Все методы безопасны на nil-получателе: без метрик сервис работает так же.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "curator"

// Metrics — набор коллекторов сервиса.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	articles      *prometheus.GaugeVec
	curated       prometheus.Histogram
	available     *prometheus.GaugeVec
}

// New создаёт коллекторы и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetch_total",
			Help:      "Source fetch attempts by result.",
		}, []string{"source", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Source fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		articles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_articles",
			Help:      "Articles returned by the last successful fetch.",
		}, []string{"source"}),
		curated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "curated_articles",
			Help:      "Size of curated result sets.",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}),
		available: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_available",
			Help:      "1 if the last availability probe succeeded.",
		}, []string{"source"}),
	}

	reg.MustRegister(m.fetchTotal, m.fetchDuration, m.articles, m.curated, m.available)

	return m
}

// ObserveFetch фиксирует итог загрузки источника.
func (m *Metrics) ObserveFetch(sourceID string, took time.Duration, articles int, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.fetchTotal.WithLabelValues(sourceID, result).Inc()
	m.fetchDuration.WithLabelValues(sourceID).Observe(took.Seconds())
	if err == nil {
		m.articles.WithLabelValues(sourceID).Set(float64(articles))
	}
}

// ObserveCurated фиксирует размер выдачи.
func (m *Metrics) ObserveCurated(n int) {
	if m == nil {
		return
	}

	m.curated.Observe(float64(n))
}

// SetAvailability фиксирует результат пробы доступности.
func (m *Metrics) SetAvailability(sourceID string, ok bool) {
	if m == nil {
		return
	}

	v := 0.0
	if ok {
		v = 1
	}
	m.available.WithLabelValues(sourceID).Set(v)
}
