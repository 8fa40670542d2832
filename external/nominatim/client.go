package nominatim

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/awaygame-sync/internal/domain/venue"
	"github.com/riskibarqy/awaygame-sync/internal/platform/httpx"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "away-game-scraper"
	defaultTimeout   = 10 * time.Second
	maxResponseSize  = 1 << 20
)

// ErrStatus is returned for a non-2xx search response.
var ErrStatus = crerr.New("nominatim unexpected status")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client is a free-text search client for the OpenStreetMap Nominatim API.
// It does not throttle; callers own the fair-use interval.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *logging.Logger
}

type searchHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewTracedClient("nominatim", timeout)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger.Named("nominatim"),
	}
}

// Search returns the best match for query. A successful call with no match
// returns false and a nil error.
func (c *Client) Search(ctx context.Context, query string) (venue.Coordinates, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return venue.Coordinates{}, false, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return venue.Coordinates{}, false, crerr.Wrap(err, "build nominatim request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("user-agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return venue.Coordinates{}, false, crerr.Wrapf(err, "nominatim search %q", query)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return venue.Coordinates{}, false, crerr.Wrapf(err, "read nominatim response %q", query)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return venue.Coordinates{}, false, crerr.Wrapf(ErrStatus, "nominatim search %q: status=%d", query, resp.StatusCode)
	}

	coords, ok, err := parseSearchResponse(raw)
	if err != nil {
		return venue.Coordinates{}, false, crerr.Wrapf(err, "nominatim search %q", query)
	}
	c.logger.DebugContext(ctx, "nominatim search", "query", query, "found", ok)
	return coords, ok, nil
}

func parseSearchResponse(raw []byte) (venue.Coordinates, bool, error) {
	var hits []searchHit
	if err := sonic.Unmarshal(raw, &hits); err != nil {
		return venue.Coordinates{}, false, crerr.Wrap(err, "decode nominatim response")
	}
	if len(hits) == 0 {
		return venue.Coordinates{}, false, nil
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(hits[0].Lat), 64)
	if err != nil {
		return venue.Coordinates{}, false, fmt.Errorf("parse latitude %q: %w", hits[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(hits[0].Lon), 64)
	if err != nil {
		return venue.Coordinates{}, false, fmt.Errorf("parse longitude %q: %w", hits[0].Lon, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return venue.Coordinates{}, false, fmt.Errorf("coordinates out of range: %f,%f", lat, lon)
	}

	return venue.Coordinates{Latitude: lat, Longitude: lon}, true, nil
}
