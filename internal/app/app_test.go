package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/awaygame-sync/internal/config"
	"github.com/riskibarqy/awaygame-sync/internal/domain/league"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

func TestSyncJob_RunWithMemoryStore(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/teams") {
			_, _ = io.WriteString(w, `{"sports":[]}`)
			return
		}
		_, _ = io.WriteString(w, `{"events":[]}`)
	}))
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: logging.LevelInfo, Output: &buf})

	job, err := NewSyncJob(config.Config{
		StoreDriver:    config.StoreDriverMemory,
		ESPNBaseURL:    server.URL,
		ESPNTimeout:    2 * time.Second,
		SyncRunTimeout: 10 * time.Second,
		Leagues: []league.League{
			{Code: "NFL", SportTag: "football", LeagueTag: "nfl", Name: "National Football League", Active: true},
		},
	}, nil, logger)
	if err != nil {
		t.Fatalf("new sync job: %v", err)
	}
	t.Cleanup(func() { _ = job.Close() })

	report, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Leagues) != 1 || len(report.Failed()) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	out := buf.String()
	if !strings.Contains(out, `"logger":"espn"`) {
		t.Fatalf("expected espn client logs, got %s", out)
	}
	if strings.Contains(out, "espn.espn") {
		t.Fatalf("logger name repeated: %s", out)
	}
}
