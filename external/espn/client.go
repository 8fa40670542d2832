package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/awaygame-sync/internal/domain/feed"
	"github.com/riskibarqy/awaygame-sync/internal/platform/httpx"
	"github.com/riskibarqy/awaygame-sync/internal/platform/logging"
	"github.com/riskibarqy/awaygame-sync/internal/platform/resilience"
)

const (
	DefaultBaseURL  = "https://site.api.espn.com/apis/site/v2/sports"
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 16 << 20
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	// MaxRetries is the number of extra attempts for timeouts, 429 and 5xx.
	// Zero sends each request once.
	MaxRetries     int
	RetryBackoff   time.Duration
	ScheduleLimit  int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
}

// Client reads teams, team detail and scoreboards from the public ESPN site API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	retryBackoff   time.Duration
	scheduleLimit  int
	logger         *logging.Logger
	clock          clockwork.Clock
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

var _ feed.Provider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewTracedClient("espn", timeout)
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = timeout
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = time.Second
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		retryBackoff:   backoff,
		scheduleLimit:  max(cfg.ScheduleLimit, 0),
		logger:         logger.Named("espn"),
		clock:          clock,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker, clock),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (c *Client) FetchTeams(ctx context.Context, sportTag, leagueTag string) ([]feed.Team, error) {
	path, err := leaguePath(sportTag, leagueTag, "teams")
	if err != nil {
		return nil, err
	}

	raw, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch teams %s/%s: %w", sportTag, leagueTag, err)
	}
	teams, err := ParseTeamsPayload(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch teams %s/%s: %w", sportTag, leagueTag, err)
	}

	c.logger.InfoContext(ctx, "espn teams fetched", "sport", sportTag, "league", leagueTag, "teams", len(teams))
	return teams, nil
}

func (c *Client) FetchTeamDetail(ctx context.Context, sportTag, leagueTag string, externalTeamID int64) (feed.TeamDetail, error) {
	if externalTeamID <= 0 {
		return feed.TeamDetail{}, fmt.Errorf("external team id must be greater than zero")
	}
	path, err := leaguePath(sportTag, leagueTag, "teams", strconv.FormatInt(externalTeamID, 10))
	if err != nil {
		return feed.TeamDetail{}, err
	}

	raw, err := c.get(ctx, path, nil)
	if err != nil {
		return feed.TeamDetail{}, fmt.Errorf("fetch team detail %s/%s id=%d: %w", sportTag, leagueTag, externalTeamID, err)
	}
	detail, err := ParseTeamDetailPayload(raw)
	if err != nil {
		return feed.TeamDetail{}, fmt.Errorf("fetch team detail %s/%s id=%d: %w", sportTag, leagueTag, externalTeamID, err)
	}

	c.logger.DebugContext(ctx, "espn team detail fetched",
		"sport", sportTag,
		"league", leagueTag,
		"external_team_id", externalTeamID,
		"has_venue", detail.HomeVenue != nil,
	)
	return detail, nil
}

func (c *Client) FetchSchedule(ctx context.Context, sportTag, leagueTag string, window feed.DateRange) ([]feed.Game, error) {
	path, err := leaguePath(sportTag, leagueTag, "scoreboard")
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("dates", window.String())
	if c.scheduleLimit > 0 {
		query.Set("limit", strconv.Itoa(c.scheduleLimit))
	}

	raw, err := c.get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %s/%s dates=%s: %w", sportTag, leagueTag, window, err)
	}
	games, err := ParseSchedulePayload(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule %s/%s dates=%s: %w", sportTag, leagueTag, window, err)
	}

	c.logger.InfoContext(ctx, "espn schedule fetched", "sport", sportTag, "league", leagueTag, "dates", window.String(), "events", len(games))
	return games, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return nil, crerr.Wrapf(err, "espn %s", path)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, path, fullURL)
	if c.circuitEnabled {
		c.breaker.Record(err, isRetryable)
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, path, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		started := c.clock.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && !crerr.Is(ctxErr, context.DeadlineExceeded) {
				return nil, ctxErr
			}
			if isTimeout(err) {
				lastErr = crerr.Wrapf(ErrTimeout, "GET %s after %s", path, c.httpClient.Timeout)
			} else {
				lastErr = crerr.Wrapf(errTransient, "GET %s: %v", path, err)
			}
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			c.logger.DebugContext(ctx, "espn response",
				"path", path,
				"status", resp.StatusCode,
				"bytes", len(raw),
				"duration", c.clock.Since(started),
				"attempt", attempt+1,
			)
			switch {
			case readErr != nil && isTimeout(readErr):
				lastErr = crerr.Wrapf(ErrTimeout, "read %s", path)
			case readErr != nil:
				lastErr = crerr.Wrapf(errTransient, "read %s: %v", path, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			default:
				lastErr = &APIError{Path: path, Status: resp.StatusCode, Body: abbreviateBody(raw)}
			}
		}

		if !isRetryable(lastErr) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * c.retryBackoff
		c.logger.WarnContext(ctx, "espn request failed, retrying", "path", path, "attempt", attempt+1, "backoff", backoff, "error", lastErr)
		timer := c.clock.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.Chan():
		}
	}

	if lastErr == nil {
		lastErr = crerr.Newf("espn request %s failed", path)
	}
	return nil, lastErr
}

func leaguePath(sportTag, leagueTag string, segments ...string) (string, error) {
	sportTag = strings.TrimSpace(sportTag)
	leagueTag = strings.TrimSpace(leagueTag)
	if sportTag == "" || leagueTag == "" {
		return "", fmt.Errorf("sport and league tags are required")
	}

	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, url.PathEscape(sportTag), url.PathEscape(leagueTag))
	for _, segment := range segments {
		parts = append(parts, url.PathEscape(segment))
	}
	return "/" + strings.Join(parts, "/"), nil
}
