package geocoding

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/platform/cache"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/riskibarqy/awaygame-sync/internal/platform/resilience"
)

const (
	OutcomeFound    = "found"
	OutcomeFallback = "fallback"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeMemo     = "memo"
)

// Provider performs one free-text lookup. No match is (zero, false, nil).
type Provider interface {
	Search(ctx context.Context, query string) (venue.Coordinates, bool, error)
}

// LookupRecorder receives one outcome per Resolve call.
type LookupRecorder interface {
	ObserveGeocode(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveGeocode(string) {}

type ResolverConfig struct {
	Provider Provider
	// Throttle spaces provider requests; nil uses the default interval.
	Throttle *resilience.Throttle
	Logger   *logging.Logger
	Metrics  LookupRecorder
	Clock    clockwork.Clock
}

type lookupResult struct {
	coords  venue.Coordinates
	found   bool
	outcome string
}

// Resolver geocodes venues through a throttled provider with a fallback
// "city, region" query. Definitive answers are memoized until Reset.
type Resolver struct {
	provider Provider
	throttle *resilience.Throttle
	logger   *logging.Logger
	metrics  LookupRecorder
	memo     *cache.Store[lookupResult]
}

var _ venue.Geocoder = (*Resolver)(nil)

func NewResolver(cfg ResolverConfig) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	throttle := cfg.Throttle
	if throttle == nil {
		throttle = resilience.NewThrottle(DefaultInterval, clock)
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = nopRecorder{}
	}

	return &Resolver{
		provider: cfg.Provider,
		throttle: throttle,
		logger:   logger.Named("geocoding"),
		metrics:  metrics,
		memo:     cache.NewStore[lookupResult](0, clock),
	}
}

// Reset drops memoized lookups. Called at the start of every run.
func (r *Resolver) Reset() {
	r.memo.Clear()
}

func (r *Resolver) Resolve(ctx context.Context, query venue.Query) (venue.Coordinates, bool) {
	if r.provider == nil {
		return venue.Coordinates{}, false
	}
	full := joinQuery(query.Name, query.City, query.Region)
	if full == "" {
		return venue.Coordinates{}, false
	}

	key := query.Key()
	if cached, ok := r.memo.Get(ctx, key); ok {
		r.metrics.ObserveGeocode(OutcomeMemo)
		return cached.coords, cached.found
	}

	result, err := r.memo.GetOrLoad(ctx, key, func(ctx context.Context) (lookupResult, error) {
		return r.lookup(ctx, full, joinQuery(query.City, query.Region))
	})
	if err != nil {
		r.metrics.ObserveGeocode(OutcomeError)
		r.logger.WarnContext(ctx, "geocoding failed", "query", full, "error", err)
		return venue.Coordinates{}, false
	}

	r.metrics.ObserveGeocode(result.outcome)
	if !result.found {
		r.logger.WarnContext(ctx, "geocoding returned no results", "query", full)
	}
	return result.coords, result.found
}

func (r *Resolver) lookup(ctx context.Context, full, fallback string) (lookupResult, error) {
	coords, ok, err := r.search(ctx, full)
	if err != nil {
		return lookupResult{}, err
	}
	if ok {
		return lookupResult{coords: coords, found: true, outcome: OutcomeFound}, nil
	}

	if fallback == "" || fallback == full {
		return lookupResult{outcome: OutcomeNotFound}, nil
	}
	coords, ok, err = r.search(ctx, fallback)
	if err != nil {
		return lookupResult{}, err
	}
	if ok {
		r.logger.DebugContext(ctx, "geocoding matched fallback query", "query", full, "fallback", fallback)
		return lookupResult{coords: coords, found: true, outcome: OutcomeFallback}, nil
	}
	return lookupResult{outcome: OutcomeNotFound}, nil
}

func (r *Resolver) search(ctx context.Context, query string) (venue.Coordinates, bool, error) {
	if err := r.throttle.Wait(ctx); err != nil {
		return venue.Coordinates{}, false, err
	}
	return r.provider.Search(ctx, query)
}

func joinQuery(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}
