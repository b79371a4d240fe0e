package landing

import (
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"waitlist/internal/platform/logger"
	"waitlist/pkg/testutil"
)

func TestLandingPage(t *testing.T) {
	r := chi.NewRouter()
	New(logger.Discard()).Register(r)

	req := testutil.NewRequestWithBody(t, http.MethodGet, "/?utm_source=newsletter", "")
	req = testutil.WithTime(req, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	rr := testutil.DoRequest(r, req)

	testutil.Given(t, "a landing page request with utm attribution", func(t *testing.T) {
		testutil.Then(t, "the page renders as html", func(t *testing.T) {
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
		})

		body := rr.Body.String()
		testutil.Then(t, "the variant A hero is shown", func(t *testing.T) {
			assert.Contains(t, body, `data-variant="A"`)
			assert.Contains(t, body, "Never Lose a Medical Record Again")
		})
		testutil.And(t, "both signup forms are present", func(t *testing.T) {
			assert.Contains(t, body, `data-subscription-type="notification"`)
			assert.Contains(t, body, `data-subscription-type="research"`)
		})
		testutil.Then(t, "forms post to the intake endpoint with the query string", func(t *testing.T) {
			assert.Contains(t, body, `"/api/subscribe" + window.location.search`)
		})
		testutil.And(t, "the footer uses the request year", func(t *testing.T) {
			assert.Contains(t, body, "© 2025 LAKNOR")
		})
	})
}

func TestLandingPageOnlyServesGet(t *testing.T) {
	r := chi.NewRouter()
	New(logger.Discard()).Register(r)

	testutil.When(t, "the page is posted to", func(t *testing.T) {
		rr := testutil.DoRequest(r, testutil.NewRequestWithBody(t, http.MethodPost, "/", ""))

		testutil.Then(t, "the method is not allowed", func(t *testing.T) {
			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		})
	})
}
