package geocoding

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	geocodingmock "github.com/riskibarqy/awaygame-sync/internal/mocks/geocoding"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/riskibarqy/awaygame-sync/internal/platform/resilience"
	"github.com/stretchr/testify/mock"
)

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) ObserveGeocode(outcome string) {
	r.mu.Lock()
	r.outcomes = append(r.outcomes, outcome)
	r.mu.Unlock()
}

func (r *outcomeRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.outcomes...)
}

var metlife = venue.Query{Name: "MetLife Stadium", City: "East Rutherford", Region: "NJ"}

func newTestResolver(provider Provider, throttle *resilience.Throttle, recorder LookupRecorder) *Resolver {
	if throttle == nil {
		throttle = resilience.NewThrottle(time.Millisecond, nil)
	}
	return NewResolver(ResolverConfig{
		Provider: provider,
		Throttle: throttle,
		Logger:   logging.New(logging.Options{Level: logging.LevelError, Output: io.Discard}),
		Metrics:  recorder,
	})
}

func TestResolver_FullQueryMatch(t *testing.T) {
	t.Parallel()

	provider := geocodingmock.NewProvider(t)
	provider.
		On("Search", mock.Anything, "MetLife Stadium, East Rutherford, NJ").
		Return(venue.Coordinates{Latitude: 40.8135, Longitude: -74.0745}, true, nil).
		Once()

	recorder := &outcomeRecorder{}
	resolver := newTestResolver(provider, nil, recorder)

	coords, ok := resolver.Resolve(context.Background(), metlife)
	if !ok {
		t.Fatalf("expected coordinates")
	}
	if coords.Latitude != 40.8135 || coords.Longitude != -74.0745 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}

	// second lookup of the same venue is served from the memo
	if _, ok := resolver.Resolve(context.Background(), venue.Query{Name: " metlife stadium ", City: "EAST RUTHERFORD", Region: "nj"}); !ok {
		t.Fatalf("expected memoized coordinates")
	}
	got := recorder.snapshot()
	if len(got) != 2 || got[0] != OutcomeFound || got[1] != OutcomeMemo {
		t.Fatalf("unexpected outcomes: %v", got)
	}
}

func TestResolver_FallbackQueryIsThrottled(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	throttle := resilience.NewThrottle(DefaultInterval, clock)

	provider := geocodingmock.NewProvider(t)
	provider.
		On("Search", mock.Anything, "MetLife Stadium, East Rutherford, NJ").
		Return(venue.Coordinates{}, false, nil).
		Once()
	provider.
		On("Search", mock.Anything, "East Rutherford, NJ").
		Return(venue.Coordinates{Latitude: 40.83, Longitude: -74.09}, true, nil).
		Once()

	recorder := &outcomeRecorder{}
	resolver := NewResolver(ResolverConfig{
		Provider: provider,
		Throttle: throttle,
		Logger:   logging.New(logging.Options{Level: logging.LevelError, Output: io.Discard}),
		Metrics:  recorder,
		Clock:    clock,
	})

	type result struct {
		coords venue.Coordinates
		ok     bool
	}
	done := make(chan result, 1)
	go func() {
		coords, ok := resolver.Resolve(context.Background(), metlife)
		done <- result{coords: coords, ok: ok}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := clock.BlockUntilContext(ctx, 1); err != nil {
		t.Fatalf("fallback lookup never waited on the throttle: %v", err)
	}
	select {
	case <-done:
		t.Fatalf("fallback lookup must wait for the throttle interval")
	default:
	}

	clock.Advance(DefaultInterval)

	select {
	case got := <-done:
		if !got.ok || got.coords.Latitude != 40.83 {
			t.Fatalf("unexpected fallback result: %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("resolve did not finish after advancing the clock")
	}
	if outcomes := recorder.snapshot(); len(outcomes) != 1 || outcomes[0] != OutcomeFallback {
		t.Fatalf("unexpected outcomes: %v", outcomes)
	}
}

func TestResolver_NoMatchIsMemoized(t *testing.T) {
	t.Parallel()

	provider := geocodingmock.NewProvider(t)
	provider.On("Search", mock.Anything, "Nowhere Field, Smallville, KS").Return(venue.Coordinates{}, false, nil).Once()
	provider.On("Search", mock.Anything, "Smallville, KS").Return(venue.Coordinates{}, false, nil).Once()

	resolver := newTestResolver(provider, nil, nil)
	query := venue.Query{Name: "Nowhere Field", City: "Smallville", Region: "KS"}

	for i := 0; i < 2; i++ {
		if _, ok := resolver.Resolve(context.Background(), query); ok {
			t.Fatalf("expected no match on attempt %d", i+1)
		}
	}
}

func TestResolver_ProviderErrorIsNotMemoized(t *testing.T) {
	t.Parallel()

	provider := geocodingmock.NewProvider(t)
	provider.
		On("Search", mock.Anything, "MetLife Stadium, East Rutherford, NJ").
		Return(venue.Coordinates{}, false, errors.New("connection reset")).
		Once()
	provider.
		On("Search", mock.Anything, "MetLife Stadium, East Rutherford, NJ").
		Return(venue.Coordinates{Latitude: 40.8135, Longitude: -74.0745}, true, nil).
		Once()

	recorder := &outcomeRecorder{}
	resolver := newTestResolver(provider, nil, recorder)

	if _, ok := resolver.Resolve(context.Background(), metlife); ok {
		t.Fatalf("expected failure to surface as not found")
	}
	if _, ok := resolver.Resolve(context.Background(), metlife); !ok {
		t.Fatalf("expected second attempt to reach the provider")
	}
	got := recorder.snapshot()
	if len(got) != 2 || got[0] != OutcomeError || got[1] != OutcomeFound {
		t.Fatalf("unexpected outcomes: %v", got)
	}
}

func TestResolver_SkipsFallbackEqualToFullQuery(t *testing.T) {
	t.Parallel()

	provider := geocodingmock.NewProvider(t)
	provider.On("Search", mock.Anything, "Green Bay, WI").Return(venue.Coordinates{}, false, nil).Once()

	resolver := newTestResolver(provider, nil, nil)
	if _, ok := resolver.Resolve(context.Background(), venue.Query{City: "Green Bay", Region: "WI"}); ok {
		t.Fatalf("expected no match")
	}
}

func TestResolver_EmptyQuerySkipsProvider(t *testing.T) {
	t.Parallel()

	provider := geocodingmock.NewProvider(t)
	resolver := newTestResolver(provider, nil, nil)

	if _, ok := resolver.Resolve(context.Background(), venue.Query{Name: "  "}); ok {
		t.Fatalf("expected no match for empty query")
	}
	provider.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestResolver_ResetClearsMemo(t *testing.T) {
	t.Parallel()

	provider := geocodingmock.NewProvider(t)
	provider.
		On("Search", mock.Anything, "MetLife Stadium, East Rutherford, NJ").
		Return(venue.Coordinates{Latitude: 40.8135, Longitude: -74.0745}, true, nil).
		Twice()

	resolver := newTestResolver(provider, nil, nil)
	resolver.Resolve(context.Background(), metlife)
	resolver.Reset()
	resolver.Resolve(context.Background(), metlife)
}

func TestResolver_CanceledContext(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	throttle := resilience.NewThrottle(DefaultInterval, clock)

	provider := geocodingmock.NewProvider(t)
	provider.
		On("Search", mock.Anything, "MetLife Stadium, East Rutherford, NJ").
		Return(venue.Coordinates{}, false, nil).
		Once()

	resolver := newTestResolver(provider, throttle, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		_, ok := resolver.Resolve(ctx, metlife)
		done <- ok
	}()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	if err := clock.BlockUntilContext(waitCtx, 1); err != nil {
		t.Fatalf("fallback lookup never waited on the throttle: %v", err)
	}
	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected canceled lookup to report not found")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("resolve ignored context cancellation")
	}
}
