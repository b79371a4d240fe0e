package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"waitlist/internal/subscription/metrics"
	"waitlist/internal/subscription/models"
	"waitlist/pkg/platform/sentinel"
	"waitlist/pkg/requestcontext"
)

// Store persists records into one of the two record sets.
type Store interface {
	Insert(ctx context.Context, target models.Target, record *models.Record) (*models.Record, error)
	Probe(ctx context.Context, target models.Target) error
}

// CountryResolver derives a best-effort country. It never fails; an empty
// string means unknown.
type CountryResolver interface {
	Resolve(ctx context.Context, headers map[string]string, ip string) string
}

// Service turns one submission into at most one stored record.
type Service struct {
	store    Store
	resolver CountryResolver
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCountryResolver enables country enrichment. Without it country is
// always stored as unknown.
func WithCountryResolver(r CountryResolver) Option {
	return func(s *Service) {
		s.resolver = r
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("waitlist/subscription"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates, enriches, routes and stores one submission. It performs
// at most one insert and reports the terminal outcome as a tagged Result
// rather than an error.
func (s *Service) Submit(ctx context.Context, req models.SubmitRequest) models.Result {
	start := time.Now()
	defer s.metrics.ObserveSubmit(start)

	ctx, span := s.tracer.Start(ctx, "subscription.Submit")
	defer span.End()

	result := s.submit(ctx, req)

	span.SetAttributes(
		attribute.String("subscription.outcome", string(result.Outcome)),
		attribute.String("subscription.type", string(result.SubscriptionType)),
	)
	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, "store write failed")
	}
	s.metrics.IncrementOutcome(string(result.Outcome), string(result.SubscriptionType))
	return result
}

func (s *Service) submit(ctx context.Context, req models.SubmitRequest) models.Result {
	if !models.ValidEmail(req.Email) {
		return models.Invalid()
	}

	subType := req.SubscriptionType
	if subType != models.SubscriptionTypeResearch {
		subType = models.SubscriptionTypeNotification
	}
	target, source := subType.Route()

	record := &models.Record{
		Email:       req.Email,
		Consent:     req.Consent,
		Source:      source,
		CallerAddr:  models.OptionalString(req.CallerAddr),
		UserAgent:   models.OptionalString(req.UserAgent),
		Country:     models.OptionalString(s.resolveCountry(ctx, req)),
		UTMSource:   models.OptionalString(req.Attribution.Source),
		UTMMedium:   models.OptionalString(req.Attribution.Medium),
		UTMCampaign: models.OptionalString(req.Attribution.Campaign),
	}

	stored, err := s.store.Insert(ctx, target, record)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return models.Duplicate(subType)
		}
		s.logger.ErrorContext(ctx, "failed to store subscription",
			"request_id", requestcontext.RequestID(ctx),
			"target", string(target),
			"error", err,
		)
		return models.StoreError(subType, err)
	}

	s.logger.InfoContext(ctx, "subscription stored",
		"request_id", requestcontext.RequestID(ctx),
		"subscription_type", string(subType),
		"id", stored.ID.String(),
	)
	return models.Accepted(subType, stored.ID)
}

func (s *Service) resolveCountry(ctx context.Context, req models.SubmitRequest) string {
	if s.resolver == nil {
		return ""
	}
	return s.resolver.Resolve(ctx, req.CountryHeaders, req.CallerAddr)
}

// CheckStore probes both record sets without writing. Failures are reported
// per record set in the response body, never as an error.
func (s *Service) CheckStore(ctx context.Context) models.StoreCheckResponse {
	return models.StoreCheckResponse{
		Connection:         "success",
		EmailSubscriptions: s.probe(ctx, models.TargetNotification),
		MarketResearch:     s.probe(ctx, models.TargetResearch),
		Timestamp:          requestcontext.Now(ctx).UTC().Format(time.RFC3339),
	}
}

func (s *Service) probe(ctx context.Context, target models.Target) models.TableStatus {
	if err := s.store.Probe(ctx, target); err != nil {
		s.logger.WarnContext(ctx, "store probe failed",
			"request_id", requestcontext.RequestID(ctx),
			"target", string(target),
			"error", err,
		)
		return models.TableStatus{Error: err.Error()}
	}
	return models.TableStatus{Status: "accessible"}
}
