package nominatim

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		HTTPClient: server.Client(),
		BaseURL:    server.URL,
		Logger:     logging.New(logging.Options{Level: logging.LevelError, Output: io.Discard}),
	})
}

func TestClientSearch(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotFormat, gotLimit, gotAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotLimit = r.URL.Query().Get("limit")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `[{"lat":"40.8135","lon":"-74.0745","display_name":"MetLife Stadium"}]`)
	})

	coords, ok, err := client.Search(context.Background(), "MetLife Stadium, East Rutherford, NJ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
	if coords.Latitude != 40.8135 || coords.Longitude != -74.0745 {
		t.Fatalf("unexpected coordinates: %+v", coords)
	}
	if gotPath != "/search" || gotQuery != "MetLife Stadium, East Rutherford, NJ" {
		t.Fatalf("unexpected request: path=%s q=%s", gotPath, gotQuery)
	}
	if gotFormat != "jsonv2" || gotLimit != "1" {
		t.Fatalf("unexpected params: format=%s limit=%s", gotFormat, gotLimit)
	}
	if gotAgent != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %s", gotAgent)
	}
}

func TestClientSearch_NoMatch(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	_, ok, err := client.Search(context.Background(), "Nowhere Field")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no match")
	}
}

func TestClientSearch_StatusError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, ok, err := client.Search(context.Background(), "Lambeau Field")
	if !crerr.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	if ok {
		t.Fatalf("expected no match on error")
	}
}

func TestClientSearch_EmptyQuerySkipsRequest(t *testing.T) {
	t.Parallel()

	called := false
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		_, _ = io.WriteString(w, `[]`)
	})

	_, ok, err := client.Search(context.Background(), "   ")
	if err != nil || ok {
		t.Fatalf("expected empty result, got ok=%v err=%v", ok, err)
	}
	if called {
		t.Fatalf("empty query must not reach the provider")
	}
}

func TestParseSearchResponse_Invalid(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":      `<html>`,
		"bad latitude":  `[{"lat":"north","lon":"1"}]`,
		"out of range":  `[{"lat":"95.0","lon":"1"}]`,
		"bad longitude": `[{"lat":"1","lon":""}]`,
	}
	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := parseSearchResponse([]byte(raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
