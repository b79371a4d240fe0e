package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"waitlist/pkg/platform/httputil"
	"waitlist/pkg/requestcontext"
)

// TokenHeader carries the operator token for admin routes.
const TokenHeader = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not match
// expectedToken with 403.
func RequireAdminToken(expectedToken string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			// Use constant-time comparison to prevent timing attacks
			if expectedToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, http.StatusForbidden, "forbidden", "admin token required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
