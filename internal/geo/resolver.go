// Package geo derives a best-effort country for a subscription from proxy
// headers or, failing that, an IP geolocation lookup. Every failure degrades
// to "unknown" so the subscription itself is never blocked.
package geo

import (
	"context"
	"log/slog"
	"net/netip"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"waitlist/pkg/platform/circuit"
	"waitlist/pkg/requestcontext"
)

// Resolver resolves a country for a request.
type Resolver struct {
	lookup   Lookuper
	cache    Cache
	cacheTTL time.Duration
	timeout  time.Duration
	breaker  *circuit.Breaker
	group    singleflight.Group
	metrics  *Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup enables the IP lookup fallback.
func WithLookup(l Lookuper) Option {
	return func(r *Resolver) {
		r.lookup = l
	}
}

// WithCache shares resolved countries for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(r *Resolver) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// WithTimeout bounds the cache read and the upstream lookup, each separately.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithBreaker replaces the default lookup circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(r *Resolver) {
		r.breaker = b
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver builds a Resolver. Without WithLookup only headers are used.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		timeout: 3 * time.Second,
		breaker: circuit.New("geo"),
		logger:  slog.Default(),
		tracer:  otel.Tracer("waitlist/geo"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a country for the caller, or "" when unknown. A proxy
// header wins over the lookup; the lookup is skipped for addresses that
// cannot be geolocated.
func (r *Resolver) Resolve(ctx context.Context, headers map[string]string, ip string) string {
	if country := CountryFromHeaders(headers); country != "" {
		r.metrics.inc(resultHeader)
		return country
	}
	if r.lookup == nil || !routable(ip) {
		r.metrics.inc(resultSkipped)
		return ""
	}

	ctx, span := r.tracer.Start(ctx, "geo.Resolve")
	defer span.End()

	if country, ok := r.fromCache(ctx, ip); ok {
		span.SetAttributes(attribute.Bool("geo.cache_hit", true))
		r.metrics.inc(resultCacheHit)
		return country
	}

	if !r.breaker.Allow() {
		r.metrics.inc(resultBreakerOpen)
		return ""
	}

	// Concurrent submissions from one address share a single upstream call.
	// The shared call is detached from any one caller so a disconnect does
	// not fail the others.
	ch := r.group.DoChan(ip, func() (any, error) {
		return r.lookupOnce(context.WithoutCancel(ctx), ip)
	})

	select {
	case <-ctx.Done():
		r.metrics.inc(resultFailure)
		return ""
	case res := <-ch:
		if res.Err != nil {
			span.RecordError(res.Err)
			r.metrics.inc(resultFailure)
			return ""
		}
		r.metrics.inc(resultSuccess)
		country, _ := res.Val.(string)
		return country
	}
}

// lookupOnce performs one bounded upstream call and records its outcome on
// the breaker and cache.
func (r *Resolver) lookupOnce(ctx context.Context, ip string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	country, err := r.lookup.Lookup(ctx, ip)
	if err != nil {
		r.recordFailure(ctx, ip, err)
		return "", err
	}
	r.breaker.RecordSuccess()
	r.toCache(ctx, ip, country)
	return country, nil
}

func (r *Resolver) recordFailure(ctx context.Context, ip string, err error) {
	if opened, change := r.breaker.RecordFailure(); opened && change.Opened {
		r.logger.WarnContext(ctx, "geo lookup circuit opened",
			"request_id", requestcontext.RequestID(ctx),
			"breaker", r.breaker.Name(),
		)
	}
	r.logger.WarnContext(ctx, "geo lookup failed",
		"request_id", requestcontext.RequestID(ctx),
		"ip_prefix", anonymizeIP(ip),
		"error", err,
	)
}

func (r *Resolver) fromCache(ctx context.Context, ip string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	country, ok, err := r.cache.Get(ctx, ip)
	if err != nil {
		r.logger.DebugContext(ctx, "geo cache read failed", "error", err)
		return "", false
	}
	return country, ok
}

func (r *Resolver) toCache(ctx context.Context, ip, country string) {
	if r.cache == nil || country == "" {
		return
	}
	if err := r.cache.Set(ctx, ip, country, r.cacheTTL); err != nil {
		r.logger.DebugContext(ctx, "geo cache write failed", "error", err)
	}
}

// anonymizeIP masks an address to its /24 (IPv4) or /48 (IPv6) network.
func anonymizeIP(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ""
	}
	addr = addr.Unmap()
	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return ""
	}
	return prefix.String()
}

// routable reports whether ip is a public address worth looking up.
func routable(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return !addr.IsLoopback() &&
		!addr.IsPrivate() &&
		!addr.IsUnspecified() &&
		!addr.IsLinkLocalUnicast() &&
		!addr.IsMulticast()
}
