package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"waitlist/internal/platform/logger"
	"waitlist/internal/subscription/metrics"
	"waitlist/internal/subscription/models"
	"waitlist/internal/subscription/store"
	"waitlist/pkg/requestcontext"
)

// =============================================================================
// Subscription Service Test Suite
// =============================================================================
// Justification for unit tests: outcome mapping, routing and fail-open
// enrichment are easiest to pin down against the in-memory store and a stub
// resolver, without HTTP in the way.

type stubResolver struct {
	country string
	gotIP   string
	gotHdrs map[string]string
}

func (r *stubResolver) Resolve(_ context.Context, headers map[string]string, ip string) string {
	r.gotIP = ip
	r.gotHdrs = headers
	return r.country
}

type failingStore struct {
	insertErr error
	probeErr  map[models.Target]error
	inserts   int
}

func (f *failingStore) Insert(context.Context, models.Target, *models.Record) (*models.Record, error) {
	f.inserts++
	return nil, f.insertErr
}

func (f *failingStore) Probe(_ context.Context, target models.Target) error {
	return f.probeErr[target]
}

type SubscriptionServiceSuite struct {
	suite.Suite
	store    *store.InMemory
	resolver *stubResolver
	metrics  *metrics.Metrics
	service  *Service
}

func TestSubscriptionServiceSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.resolver = &stubResolver{}
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store,
		WithCountryResolver(s.resolver),
		WithMetrics(s.metrics),
		WithLogger(logger.Discard()),
	)
}

func (s *SubscriptionServiceSuite) outcomes(outcome models.Outcome, t models.SubscriptionType) float64 {
	return testutil.ToFloat64(s.metrics.Outcomes.WithLabelValues(string(outcome), string(t)))
}

// =============================================================================
// Submit Tests
// =============================================================================

func (s *SubscriptionServiceSuite) TestSubmitAcceptsNotification() {
	ctx := context.Background()
	s.resolver.country = "US"

	result := s.service.Submit(ctx, models.SubmitRequest{
		Email:       "a@b.com",
		Consent:     true,
		CallerAddr:  "203.0.113.9",
		UserAgent:   "Mozilla/5.0",
		Attribution: models.Attribution{Source: "newsletter", Campaign: "launch"},
	})

	s.Equal(models.OutcomeAccepted, result.Outcome)
	s.Equal(models.SubscriptionTypeNotification, result.SubscriptionType)
	s.NotEqual(uuid.Nil, result.ID)
	s.NoError(result.Err)

	record, err := s.store.FindByEmail(ctx, models.TargetNotification, "a@b.com")
	s.Require().NoError(err)
	s.Equal(result.ID, record.ID)
	s.True(record.Consent)
	s.Equal(models.SourceLandingPage, record.Source)
	s.Equal("203.0.113.9", *record.CallerAddr)
	s.Equal("Mozilla/5.0", *record.UserAgent)
	s.Equal("US", *record.Country)
	s.Equal("newsletter", *record.UTMSource)
	s.Nil(record.UTMMedium)
	s.Equal("launch", *record.UTMCampaign)
	s.Nil(record.Notes)
	s.Equal(1.0, s.outcomes(models.OutcomeAccepted, models.SubscriptionTypeNotification))
}

func (s *SubscriptionServiceSuite) TestSubmitRoutesResearch() {
	ctx := context.Background()

	result := s.service.Submit(ctx, models.SubmitRequest{
		Email:            "r@x.io",
		SubscriptionType: models.SubscriptionTypeResearch,
	})

	s.Equal(models.OutcomeAccepted, result.Outcome)
	s.Equal(models.SubscriptionTypeResearch, result.SubscriptionType)
	s.Equal(1, s.store.Count(models.TargetResearch))
	s.Equal(0, s.store.Count(models.TargetNotification))

	record, err := s.store.FindByEmail(ctx, models.TargetResearch, "r@x.io")
	s.Require().NoError(err)
	s.Equal(models.SourceEmailModal, record.Source)
	s.False(record.Consent)
}

func (s *SubscriptionServiceSuite) TestSubmitUnknownTypeFallsBackToNotification() {
	result := s.service.Submit(context.Background(), models.SubmitRequest{
		Email:            "a@b.com",
		SubscriptionType: models.SubscriptionType("vip"),
	})

	s.Equal(models.OutcomeAccepted, result.Outcome)
	s.Equal(models.SubscriptionTypeNotification, result.SubscriptionType)
	s.Equal(1, s.store.Count(models.TargetNotification))
}

func (s *SubscriptionServiceSuite) TestSubmitDuplicate() {
	ctx := context.Background()
	req := models.SubmitRequest{Email: "a@b.com"}

	first := s.service.Submit(ctx, req)
	second := s.service.Submit(ctx, req)

	s.Equal(models.OutcomeAccepted, first.Outcome)
	s.Equal(models.OutcomeDuplicate, second.Outcome)
	s.Equal(models.SubscriptionTypeNotification, second.SubscriptionType)
	s.Equal(1, s.store.Count(models.TargetNotification))
	s.Equal(1.0, s.outcomes(models.OutcomeDuplicate, models.SubscriptionTypeNotification))
}

func (s *SubscriptionServiceSuite) TestSubmitSameEmailInBothSets() {
	ctx := context.Background()

	notify := s.service.Submit(ctx, models.SubmitRequest{Email: "a@b.com"})
	research := s.service.Submit(ctx, models.SubmitRequest{Email: "a@b.com", SubscriptionType: models.SubscriptionTypeResearch})

	s.Equal(models.OutcomeAccepted, notify.Outcome)
	s.Equal(models.OutcomeAccepted, research.Outcome)
}

func (s *SubscriptionServiceSuite) TestSubmitInvalidEmailWritesNothing() {
	for _, email := range []string{"", "not-an-email", "a@b", "a b@c.com", "@b.com"} {
		s.Run(fmt.Sprintf("email %q", email), func() {
			result := s.service.Submit(context.Background(), models.SubmitRequest{Email: email})
			s.Equal(models.OutcomeInvalid, result.Outcome)
		})
	}
	s.Equal(0, s.store.Count(models.TargetNotification))
	s.Empty(s.resolver.gotIP, "enrichment must not run for rejected submissions")
}

func (s *SubscriptionServiceSuite) TestSubmitEmailIsStoredVerbatim() {
	ctx := context.Background()

	first := s.service.Submit(ctx, models.SubmitRequest{Email: "Foo@Example.com"})
	second := s.service.Submit(ctx, models.SubmitRequest{Email: "foo@example.com"})

	s.Equal(models.OutcomeAccepted, first.Outcome)
	s.Equal(models.OutcomeAccepted, second.Outcome)
	_, err := s.store.FindByEmail(ctx, models.TargetNotification, "Foo@Example.com")
	s.NoError(err)
}

func (s *SubscriptionServiceSuite) TestSubmitUnknownCountryStoredAsNull() {
	ctx := context.Background()
	s.resolver.country = ""

	result := s.service.Submit(ctx, models.SubmitRequest{Email: "a@b.com", CallerAddr: "8.8.8.8"})

	s.Equal(models.OutcomeAccepted, result.Outcome)
	record, err := s.store.FindByEmail(ctx, models.TargetNotification, "a@b.com")
	s.Require().NoError(err)
	s.Nil(record.Country)
	s.Equal("8.8.8.8", s.resolver.gotIP)
}

func (s *SubscriptionServiceSuite) TestSubmitPassesCountryHeaders() {
	headers := map[string]string{"Cf-Ipcountry": "DE"}
	s.service.Submit(context.Background(), models.SubmitRequest{Email: "a@b.com", CountryHeaders: headers})
	s.Equal(headers, s.resolver.gotHdrs)
}

func (s *SubscriptionServiceSuite) TestSubmitMissingMetadataStoredAsNull() {
	ctx := context.Background()

	s.service.Submit(ctx, models.SubmitRequest{Email: "a@b.com"})

	record, err := s.store.FindByEmail(ctx, models.TargetNotification, "a@b.com")
	s.Require().NoError(err)
	s.Nil(record.CallerAddr)
	s.Nil(record.UserAgent)
	s.Nil(record.UTMSource)
	s.Nil(record.UTMMedium)
	s.Nil(record.UTMCampaign)
}

func (s *SubscriptionServiceSuite) TestSubmitStoreError() {
	failing := &failingStore{insertErr: errors.New("connection refused")}
	svc := New(failing, WithMetrics(s.metrics), WithLogger(logger.Discard()))

	result := svc.Submit(context.Background(), models.SubmitRequest{Email: "a@b.com", SubscriptionType: models.SubscriptionTypeResearch})

	s.Equal(models.OutcomeStoreError, result.Outcome)
	s.Equal(models.SubscriptionTypeResearch, result.SubscriptionType)
	s.ErrorContains(result.Err, "connection refused")
	s.Equal(1, failing.inserts)
	s.Equal(1.0, s.outcomes(models.OutcomeStoreError, models.SubscriptionTypeResearch))
}

func (s *SubscriptionServiceSuite) TestSubmitWithoutResolver() {
	svc := New(s.store)
	result := svc.Submit(context.Background(), models.SubmitRequest{Email: "a@b.com"})
	s.Equal(models.OutcomeAccepted, result.Outcome)
}

func (s *SubscriptionServiceSuite) TestConcurrentSubmitsSameEmail() {
	const goroutines = 25
	results := make([]models.Result, goroutines)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.service.Submit(context.Background(), models.SubmitRequest{Email: "race@b.com"})
		}(i)
	}
	wg.Wait()

	counts := map[models.Outcome]int{}
	for _, r := range results {
		counts[r.Outcome]++
	}
	s.Equal(1, counts[models.OutcomeAccepted])
	s.Equal(goroutines-1, counts[models.OutcomeDuplicate])
}

// =============================================================================
// CheckStore Tests
// =============================================================================

func (s *SubscriptionServiceSuite) TestCheckStore() {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	s.Run("both record sets accessible", func() {
		resp := s.service.CheckStore(ctx)
		s.Equal("success", resp.Connection)
		s.Equal(models.TableStatus{Status: "accessible"}, resp.EmailSubscriptions)
		s.Equal(models.TableStatus{Status: "accessible"}, resp.MarketResearch)
		s.Equal("2025-03-01T12:00:00Z", resp.Timestamp)
	})

	s.Run("probe failure reported per record set", func() {
		failing := &failingStore{probeErr: map[models.Target]error{
			models.TargetResearch: errors.New(`relation "market_research_participants" does not exist`),
		}}
		svc := New(failing, WithLogger(logger.Discard()))

		resp := svc.CheckStore(ctx)
		s.Equal("success", resp.Connection)
		s.Equal("accessible", resp.EmailSubscriptions.Status)
		s.Empty(resp.MarketResearch.Status)
		s.Contains(resp.MarketResearch.Error, "does not exist")
		s.Zero(failing.inserts, "probe must not write")
	})
}
