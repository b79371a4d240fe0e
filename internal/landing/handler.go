// Package landing serves the server-rendered waitlist page.
package landing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"waitlist/internal/landing/components"
	"waitlist/pkg/requestcontext"
)

type Handler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Register registers the landing page with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.handlePage)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := components.Layout(
		components.PageConfig{},
		components.Hero(),
		components.Features(),
		components.ResearchForm(),
		components.PageFooter(requestcontext.Now(ctx)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w); err != nil {
		h.logger.WarnContext(ctx, "failed to render landing page",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}
