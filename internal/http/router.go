package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"waitlist/internal/platform/metrics"
	"waitlist/internal/platform/middleware"
	"waitlist/pkg/platform/httputil"
	"waitlist/pkg/platform/middleware/metadata"
	"waitlist/pkg/platform/middleware/requesttime"
	"waitlist/pkg/requestcontext"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Checker reports whether a backing dependency is reachable.
type Checker func(ctx context.Context) error

// Config carries what the router needs beyond the module handlers.
type Config struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	RequestTimeout time.Duration
	// ReadinessChecks are keyed by dependency name.
	ReadinessChecks map[string]Checker
}

// NewRouter wires the shared middleware chain, operational endpoints and
// every module's routes.
func NewRouter(cfg Config, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger, "internal_error", "Internal server error"))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", handleHealth)
	r.Get("/ready", readinessHandler(cfg.Logger, cfg.ReadinessChecks))
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	for _, m := range modules {
		m.Register(r)
	}
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readinessHandler(logger *slog.Logger, checks map[string]Checker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "readiness check failed",
					"request_id", requestcontext.RequestID(ctx),
					"dependency", name,
					"error", err,
				)
				results[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		body := map[string]any{"status": "ok", "checks": results}
		if status != http.StatusOK {
			body["status"] = "unavailable"
		}
		httputil.WriteJSON(w, status, body)
	}
}
