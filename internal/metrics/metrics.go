package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dangerzones_reports_total",
		Help: "Submitted reports by outcome (pending, confirmed, rate_limited, error)",
	}, []string{"outcome"})
	IncidentsConfirmedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dangerzones_incidents_confirmed_total",
		Help: "Incidents confirmed by corroboration",
	})
	IncidentsAddedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dangerzones_incidents_added_total",
		Help: "Incidents added administratively",
	})
	EventPublishFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dangerzones_event_publish_failures_total",
		Help: "Zone events that failed to publish to at least one sink",
	})
	PersistFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dangerzones_persist_failures_total",
		Help: "Zone counter writes that failed",
	})
	SubmitDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dangerzones_submit_duration_ms",
		Help:    "Report submission duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 20, 50, 100, 200, 500},
	})
	Zones = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dangerzones_zones",
		Help: "Zones in the registry",
	})
)

func init() {
	prometheus.MustRegister(ReportsTotal)
	prometheus.MustRegister(IncidentsConfirmedTotal)
	prometheus.MustRegister(IncidentsAddedTotal)
	prometheus.MustRegister(EventPublishFailuresTotal)
	prometheus.MustRegister(PersistFailuresTotal)
	prometheus.MustRegister(SubmitDurationMs)
	prometheus.MustRegister(Zones)
}

// Handler отдает зарегистрированные метрики для Prometheus
func Handler() http.Handler { return promhttp.Handler() }
