// Package httpserver provides the HTTP server for authgate.
package httpserver

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/authgate-io/authgate/internal/core/service"
	"github.com/authgate-io/authgate/internal/server/httpserver/handler"
	"github.com/authgate-io/authgate/internal/telemetry/logger"
	"github.com/authgate-io/authgate/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// AuthService handles credential verification and token validation.
	AuthService *service.AuthService

	// Logger for request logging.
	Logger logger.Logger

	// Metrics for request instrumentation. Optional.
	Metrics *metric.Registry

	// MaxBodyBytes caps the size of accepted request bodies.
	MaxBodyBytes int64

	// RateLimitEnabled turns on per-client-IP request throttling.
	RateLimitEnabled bool

	// RateLimitRate is the sustained per-IP request rate.
	RateLimitRate rate.Limit

	// RateLimitBurst is the per-IP request burst.
	RateLimitBurst int

	// EnableAudit enables audit logging for all API requests.
	EnableAudit bool
}

// NewRouter creates and configures the HTTP router with all routes
// and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(cfg.AuthService, log, cfg.MaxBodyBytes)

	// Middleware order: Recover -> RequestID -> RateLimit -> Audit ->
	// Metrics -> Handler.
	var api http.Handler = h
	if cfg.Metrics != nil {
		api = Metrics(cfg.Metrics)(api)
	}
	if cfg.EnableAudit {
		api = Audit(log)(api)
	}
	if cfg.RateLimitEnabled {
		api = RateLimit(cfg.RateLimitRate, cfg.RateLimitBurst)(api)
	}
	api = RequestID()(api)
	api = Recover(log)(api)

	mux := http.NewServeMux()

	// Probes bypass throttling and auditing.
	mux.Handle("GET /health", Chain(http.HandlerFunc(h.Health), RequestID(), Recover(log)))
	mux.Handle("GET /ready", Chain(http.HandlerFunc(h.Ready), RequestID(), Recover(log)))

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(), RequestID(), Recover(log)))
	}

	// Everything else is the endpoint-dispatched API.
	mux.Handle("/", api)

	return mux
}
