package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waitlist/internal/platform/metrics"
	"waitlist/pkg/requestcontext"
	"waitlist/pkg/testutil"
)

type echoModule struct{}

func (echoModule) Register(r chi.Router) {
	r.Get("/echo", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, requestcontext.ClientIP(r.Context()))
	})
}

func newRouter(checks map[string]Checker) (http.Handler, *metrics.Metrics) {
	m := metrics.New()
	return NewRouter(Config{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:         m,
		ReadinessChecks: checks,
	}, echoModule{}), m
}

func TestHealth(t *testing.T) {
	router, _ := newRouter(nil)
	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/health", ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestReady(t *testing.T) {
	t.Run("all dependencies reachable", func(t *testing.T) {
		router, _ := newRouter(map[string]Checker{
			"postgres": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/ready", ""))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"postgres":"ok"}}`, rr.Body.String())
	})

	t.Run("failing dependency is unavailable", func(t *testing.T) {
		router, _ := newRouter(map[string]Checker{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/ready", ""))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"unavailable","checks":{"postgres":"ok","redis":"unavailable"}}`, rr.Body.String())
	})
}

func TestModulesSeeClientMetadata(t *testing.T) {
	router, _ := newRouter(nil)
	req := testutil.NewRequestWithBody(t, http.MethodGet, "/echo", "")
	req.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.1")

	rr := testutil.DoRequest(router, req)

	assert.Equal(t, "203.0.113.50", rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newRouter(nil)
	testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/health", ""))

	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodGet, "/metrics", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "waitlist_http_request_duration_seconds"))
}
