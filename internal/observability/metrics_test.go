package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/riskibarqy/awaygame-sync/internal/geocoding"
	"github.com/riskibarqy/awaygame-sync/internal/usecase"
)

var (
	_ usecase.SyncRecorder     = (*SyncMetrics)(nil)
	_ geocoding.LookupRecorder = (*SyncMetrics)(nil)
)

func TestSyncMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := NewSyncMetrics()
	m.ObserveRun(usecase.OutcomeSuccess, 3*time.Second)
	m.ObserveLeague("NFL", usecase.OutcomeFailed, time.Second)
	m.AddEntities("NFL", usecase.EntityGame, usecase.ActionCreated, 12)
	m.AddEntities("NFL", usecase.EntityGame, usecase.ActionUpdated, 0)
	m.ObserveGeocode(geocoding.OutcomeFound)
	m.ObserveGeocode(geocoding.OutcomeFound)

	if got := testutil.ToFloat64(m.runsTotal.WithLabelValues(usecase.OutcomeSuccess)); got != 1 {
		t.Fatalf("unexpected run count: %v", got)
	}
	if got := testutil.ToFloat64(m.leaguesTotal.WithLabelValues("NFL", usecase.OutcomeFailed)); got != 1 {
		t.Fatalf("unexpected league count: %v", got)
	}
	if got := testutil.ToFloat64(m.entitiesTotal.WithLabelValues("NFL", usecase.EntityGame, usecase.ActionCreated)); got != 12 {
		t.Fatalf("unexpected entity count: %v", got)
	}
	if got := testutil.ToFloat64(m.geocodeLookups.WithLabelValues(geocoding.OutcomeFound)); got != 2 {
		t.Fatalf("unexpected geocode count: %v", got)
	}
	if got := testutil.ToFloat64(m.lastRunSuccess); got <= 0 {
		t.Fatalf("expected last success timestamp, got %v", got)
	}
}

func TestSyncMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := NewSyncMetrics()
	m.ObserveLeague("NBA", usecase.OutcomeSuccess, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `awaygame_sync_leagues_total{league_code="NBA",outcome="success"} 1`) {
		t.Fatalf("expected league counter in exposition, got:\n%s", rec.Body.String())
	}
}
