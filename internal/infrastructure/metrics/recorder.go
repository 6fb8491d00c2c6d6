// Package metrics contadores Prometheus de negocio y HTTP.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/pastro-api/internal/application/ports"
)

const namespace = "pastro"

var _ ports.Recorder = (*Recorder)(nil)

// Recorder implementa ports.Recorder con un registro propio (tests en paralelo sin colisiones).
type Recorder struct {
	registry      *prometheus.Registry
	onboarding    *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewRecorder registra los colectores y los del runtime de Go.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		onboarding: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "onboarding", Name: "total",
			Help: "Registros de empresa por resultado",
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "moderation", Name: "transitions_total",
			Help: "Cambios de estado de empresas",
		}, []string{"from", "to"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notifications", Name: "total",
			Help: "Correos salientes por resultado",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "Peticiones HTTP",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(
		r.onboarding, r.transitions, r.notifications, r.requests, r.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Onboarding(result string) { r.onboarding.WithLabelValues(result).Inc() }

func (r *Recorder) StatusTransition(from, to string) { r.transitions.WithLabelValues(from, to).Inc() }

func (r *Recorder) Notification(result string) { r.notifications.WithLabelValues(result).Inc() }

// HTTPRequest una petición servida. route es el patrón (/api/admin/companies/:id/status), no la ruta real.
func (r *Recorder) HTTPRequest(method, route string, status int, seconds float64) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, route).Observe(seconds)
}

// Registry para tests.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler exposición /metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
