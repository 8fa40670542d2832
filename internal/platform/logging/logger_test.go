package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Service: "awaygame-sync"}).Named("espn")

	logger.With("league_code", "NFL").Warn("fetch failed", "status", 503, "error", errors.New("boom"))
	logger.Debug("hidden")

	out := buf.String()
	for _, want := range []string{
		`"level":"WARN"`,
		`"logger":"espn"`,
		`"service":"awaygame-sync"`,
		`"league_code":"NFL"`,
		`"status":503`,
		`"error":"boom"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
}

func TestLogger_OddArgsAndNilReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})
	logger.Info("odd", "dangling")
	if !strings.Contains(buf.String(), `"dangling":null`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	var nilLogger *Logger
	nilLogger.Info("no panic")
	if nilLogger.Enabled(LevelError) {
		t.Fatalf("nil logger should report disabled")
	}
}
