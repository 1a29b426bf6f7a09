// Package metric provides Prometheus metrics for authgate.
package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Validation result labels.
const (
	ResultValid   = "valid"
	ResultRenewed = "renewed"
	ResultExpired = "expired"
	ResultInvalid = "invalid"
	ResultMissing = "missing"
)

// Login result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Options configures the metrics registry.
type Options struct {
	// ActiveTokens reports the current number of live token records.
	// Optional; when nil the gauge is not registered.
	ActiveTokens func() float64
}

// Registry holds all application metrics.
// A nil *Registry is valid and drops all observations, so components can
// take metrics as an optional dependency.
type Registry struct {
	registry *prometheus.Registry

	logins          *prometheus.CounterVec
	validations     *prometheus.CounterVec
	renewals        prometheus.Counter
	swept           prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// New creates a metrics registry with all collectors registered.
func New(opts Options) *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "token_validations_total",
			Help:      "Token validations by result.",
		}, []string{"result"}),
		renewals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "token_renewals_total",
			Help:      "Tokens renewed within the grace window.",
		}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "authgate",
			Name:      "tokens_swept_total",
			Help:      "Stale token records removed by the background sweeper.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "authgate",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by endpoint, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint", "method", "status"}),
	}

	reg.MustRegister(r.logins, r.validations, r.renewals, r.swept, r.requestDuration)
	reg.MustRegister(collectors.NewGoCollector())

	if opts.ActiveTokens != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "authgate",
			Name:      "tokens_active",
			Help:      "Token records currently held in the store.",
		}, opts.ActiveTokens))
	}

	return r
}

// ObserveLogin records a login attempt.
func (r *Registry) ObserveLogin(success bool) {
	if r == nil {
		return
	}
	result := ResultFailure
	if success {
		result = ResultSuccess
	}
	r.logins.WithLabelValues(result).Inc()
}

// ObserveValidation records a token validation outcome.
func (r *Registry) ObserveValidation(result string) {
	if r == nil {
		return
	}
	r.validations.WithLabelValues(result).Inc()
	if result == ResultRenewed {
		r.renewals.Inc()
	}
}

// ObserveSweep records token records removed by a sweep pass.
func (r *Registry) ObserveSweep(removed int) {
	if r == nil || removed <= 0 {
		return
	}
	r.swept.Add(float64(removed))
}

// ObserveRequest records the latency of a completed HTTP request.
func (r *Registry) ObserveRequest(endpoint, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requestDuration.WithLabelValues(endpoint, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying prometheus registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
