package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sleepwell"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	sessionsLogged  prom.Counter
	sessionsDeleted prom.Counter
	sessionCount    prom.Gauge
	routineActions  *prom.CounterVec
	storeFallbacks  *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		sessionsLogged: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_logged_total",
			Help:      "Sleep sessions logged",
		}),
		sessionsDeleted: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_deleted_total",
			Help:      "Sleep sessions deleted",
		}),
		sessionCount: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Sleep sessions currently stored",
		}),
		routineActions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "routine_actions_total",
			Help:      "Routine checklist mutations by action",
		}, []string{"action"}),
		storeFallbacks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "store_fallbacks_total",
			Help:      "Records replaced by seed data on load",
		}, []string{"record", "reason"}),
	}
	reg.MustRegister(pr.sessionsLogged, pr.sessionsDeleted, pr.sessionCount, pr.routineActions, pr.storeFallbacks)
	return pr
}

func (p *PrometheusRecorder) IncSessionLogged() {
	if p == nil {
		return
	}
	p.sessionsLogged.Inc()
}

func (p *PrometheusRecorder) IncSessionDeleted() {
	if p == nil {
		return
	}
	p.sessionsDeleted.Inc()
}

func (p *PrometheusRecorder) SetSessionCount(n int) {
	if p == nil {
		return
	}
	p.sessionCount.Set(float64(n))
}

func (p *PrometheusRecorder) IncRoutineAction(action string) {
	if p == nil {
		return
	}
	p.routineActions.WithLabelValues(action).Inc()
}

func (p *PrometheusRecorder) IncStoreFallback(record, reason string) {
	if p == nil {
		return
	}
	p.storeFallbacks.WithLabelValues(record, reason).Inc()
}

// HTTPHandler serves the metrics registered on reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
