package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/awaygame-sync/internal/usecase"
)

const metricsNamespace = "awaygame_sync"

// SyncMetrics exports run, league, entity and geocoding counters on a
// private registry.
type SyncMetrics struct {
	registry *prometheus.Registry

	runsTotal      *prometheus.CounterVec
	runDuration    prometheus.Histogram
	lastRunSuccess prometheus.Gauge
	leaguesTotal   *prometheus.CounterVec
	leagueDuration *prometheus.HistogramVec
	entitiesTotal  *prometheus.CounterVec
	geocodeLookups *prometheus.CounterVec
}

func NewSyncMetrics() *SyncMetrics {
	m := &SyncMetrics{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "runs_total",
			Help:      "Sync runs by outcome.",
		}, []string{"outcome"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full sync run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 2400},
		}),
		lastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_success_timestamp_seconds",
			Help:      "Unix time of the last run without a fatal failure.",
		}),
		leaguesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "leagues_total",
			Help:      "League syncs by league and outcome.",
		}, []string{"league_code", "outcome"}),
		leagueDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "league_duration_seconds",
			Help:      "Wall time of one league sync.",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"league_code"}),
		entitiesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "entities_total",
			Help:      "Reconciled teams, venues and games by action.",
		}, []string{"league_code", "entity", "action"}),
		geocodeLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "geocode_lookups_total",
			Help:      "Venue geocoding lookups by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.runsTotal,
		m.runDuration,
		m.lastRunSuccess,
		m.leaguesTotal,
		m.leagueDuration,
		m.entitiesTotal,
		m.geocodeLookups,
	)
	return m
}

func (m *SyncMetrics) ObserveRun(outcome string, duration time.Duration) {
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(duration.Seconds())
	if outcome == usecase.OutcomeSuccess {
		m.lastRunSuccess.SetToCurrentTime()
	}
}

func (m *SyncMetrics) ObserveLeague(leagueCode, outcome string, duration time.Duration) {
	m.leaguesTotal.WithLabelValues(leagueCode, outcome).Inc()
	m.leagueDuration.WithLabelValues(leagueCode).Observe(duration.Seconds())
}

func (m *SyncMetrics) AddEntities(leagueCode, entity, action string, count int) {
	if count <= 0 {
		return
	}
	m.entitiesTotal.WithLabelValues(leagueCode, entity, action).Add(float64(count))
}

func (m *SyncMetrics) ObserveGeocode(outcome string) {
	m.geocodeLookups.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *SyncMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
