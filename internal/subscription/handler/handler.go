package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"waitlist/internal/geo"
	"waitlist/internal/platform/middleware"
	"waitlist/internal/subscription/models"
	"waitlist/pkg/platform/httputil"
	"waitlist/pkg/platform/middleware/admin"
	"waitlist/pkg/requestcontext"
)

const maxBodyBytes = 1 << 20

// Service defines the interface for subscription intake.
type Service interface {
	Submit(ctx context.Context, req models.SubmitRequest) models.Result
	CheckStore(ctx context.Context) models.StoreCheckResponse
}

// Handler serves the intake endpoint and the operator store probe.
type Handler struct {
	logger     *slog.Logger
	service    Service
	adminToken string
}

// New creates a subscription Handler. An empty adminToken leaves the store
// probe unregistered.
func New(service Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		logger:     logger,
		service:    service,
		adminToken: adminToken,
	}
}

// Register registers the subscription routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/subscribe", func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger, models.CodeSubscriptionFailed, models.MessageInternal))
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			httputil.MethodNotAllowed(w, http.MethodPost)
		})
		r.Post("/", h.handleSubscribe)
	})

	if h.adminToken == "" {
		return
	}
	r.Route("/api/admin/store-check", func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminToken, h.logger))
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			httputil.MethodNotAllowed(w, http.MethodGet)
		})
		r.Get("/", h.handleStoreCheck)
	})
}

// handleSubscribe accepts one signup and maps its outcome onto the response.
func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	body, err := decodeSubscribe(w, r)
	if err != nil {
		// A body that cannot be read leaves email missing, which is reported
		// the same way as an invalid address.
		h.logger.WarnContext(ctx, "invalid subscribe request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, http.StatusBadRequest, models.CodeInvalidEmail, models.MessageInvalidEmail)
		return
	}

	query := r.URL.Query()
	result := h.service.Submit(ctx, models.SubmitRequest{
		Email:            body.Email,
		Consent:          body.MarketingConsent,
		SubscriptionType: models.ParseSubscriptionType(body.SubscriptionType),
		CallerAddr:       requestcontext.ClientIP(ctx),
		UserAgent:        requestcontext.UserAgent(ctx),
		Attribution: models.Attribution{
			Source:   query.Get("utm_source"),
			Medium:   query.Get("utm_medium"),
			Campaign: query.Get("utm_campaign"),
		},
		CountryHeaders: geo.HeadersFromRequest(r.Header),
	})

	switch result.Outcome {
	case models.OutcomeAccepted:
		httputil.WriteJSON(w, http.StatusOK, models.SubscribeResponse{
			Message:          models.MessageSubscribed,
			Success:          true,
			SubscriptionType: echoType(body.SubscriptionType),
			ID:               result.ID.String(),
		})
	case models.OutcomeInvalid:
		httputil.WriteError(w, http.StatusBadRequest, models.CodeInvalidEmail, models.MessageInvalidEmail)
	case models.OutcomeDuplicate:
		httputil.WriteError(w, http.StatusConflict, models.CodeEmailAlreadyExists, models.MessageAlreadySubscribe)
	default:
		h.logger.ErrorContext(ctx, "subscription failed",
			"request_id", requestID,
			"subscription_type", string(result.SubscriptionType),
			"error", result.Err,
		)
		httputil.WriteError(w, http.StatusInternalServerError, models.CodeSubscriptionFailed, models.MessageInternal)
	}
}

func (h *Handler) handleStoreCheck(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.CheckStore(r.Context()))
}

// echoType returns the type as the caller sent it, defaulting to notification.
// Routing uses the parsed value; the response does not.
func echoType(raw string) models.SubscriptionType {
	if raw == "" {
		return models.SubscriptionTypeNotification
	}
	return models.SubscriptionType(raw)
}

// decodeSubscribe reads the JSON body. A field of the wrong JSON type is left
// at its zero value rather than failing the whole body.
func decodeSubscribe(w http.ResponseWriter, r *http.Request) (models.SubscribeRequest, error) {
	var req models.SubscribeRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	var typeErr *json.UnmarshalTypeError
	if err != nil && !errors.As(err, &typeErr) {
		return models.SubscribeRequest{}, err
	}
	return req, nil
}
