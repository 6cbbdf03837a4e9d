package firedb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/rsl-league/tournament-api/internal/platform/logging"
	"github.com/rsl-league/tournament-api/internal/platform/resilience"
)

var errTransient = crerr.New("firedb transient failure")

// ClientConfig configures the Firebase Realtime Database REST client used as
// the award vote tally backend.
type ClientConfig struct {
	BaseURL        string
	AuthToken      string
	Timeout        time.Duration
	MaxRetries     int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the votes tree of a Firebase Realtime Database over REST.
// Votes live at votes/{award}/{deviceID} = {"playerId": N}, so a device's
// later vote replaces its earlier one.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	authToken      string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

type voteRecord struct {
	PlayerID int `json:"playerId"`
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		authToken:      strings.TrimSpace(cfg.AuthToken),
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// CastVote writes one device's vote for an award. Writing again from the
// same device replaces the previous vote.
func (c *Client) CastVote(ctx context.Context, award, deviceID string, playerID int) error {
	if err := c.allow(ctx); err != nil {
		return err
	}

	voteURL, err := c.voteURL(award, deviceID)
	if err != nil {
		return err
	}
	if playerID <= 0 {
		return crerr.Newf("player id must be > 0, got %d", playerID)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	payload, err := sonic.Marshal(voteRecord{PlayerID: playerID})
	if err != nil {
		return crerr.Wrap(err, "marshal vote payload")
	}
	_, _ = buf.Write(payload)

	err = c.execute(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPut, voteURL, strings.NewReader(buf.String()))
		if reqErr != nil {
			return crerr.Wrap(reqErr, "create vote request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return fmt.Errorf("%w: put vote: %v", errTransient, doErr)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode/100 != 2 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			if isRetryableStatus(resp.StatusCode) {
				return fmt.Errorf("%w: put vote status=%d body=%s", errTransient, resp.StatusCode, strings.TrimSpace(string(raw)))
			}
			return crerr.Newf("put vote status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "vote recorded", "award", award, "player_id", playerID)
	return nil
}

// FetchCounts reads the full vote tree for an award and tallies votes per
// player id. The second return is the total number of votes.
func (c *Client) FetchCounts(ctx context.Context, award string) (map[int]int, int, error) {
	if err := c.allow(ctx); err != nil {
		return nil, 0, err
	}

	treeURL, err := c.treeURL(award)
	if err != nil {
		return nil, 0, err
	}

	out, err, _ := c.flight.Do("counts:"+award, func() (any, error) {
		var raw []byte
		execErr := c.execute(ctx, func(ctx context.Context) error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, treeURL, nil)
			if reqErr != nil {
				return crerr.Wrap(reqErr, "create counts request")
			}
			req.Header.Set("Accept", "application/json")

			resp, doErr := c.httpClient.Do(req)
			if doErr != nil {
				return fmt.Errorf("%w: get counts: %v", errTransient, doErr)
			}
			defer func() {
				_ = resp.Body.Close()
			}()

			body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			if readErr != nil {
				return fmt.Errorf("%w: read counts body: %v", errTransient, readErr)
			}
			if resp.StatusCode/100 != 2 {
				if isRetryableStatus(resp.StatusCode) {
					return fmt.Errorf("%w: get counts status=%d", errTransient, resp.StatusCode)
				}
				return crerr.Newf("get counts status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
			}
			raw = body
			return nil
		})
		if execErr != nil {
			return nil, execErr
		}
		return raw, nil
	})
	if err != nil {
		return nil, 0, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, 0, crerr.Newf("unexpected counts payload type %T", out)
	}

	// An award with no votes yet comes back as JSON null.
	votes := map[string]voteRecord{}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && trimmed != "null" {
		if err := sonic.Unmarshal(raw, &votes); err != nil {
			return nil, 0, crerr.Wrap(err, "decode votes tree")
		}
	}

	counts := make(map[int]int, len(votes))
	total := 0
	for _, record := range votes {
		if record.PlayerID <= 0 {
			continue
		}
		counts[record.PlayerID]++
		total++
	}

	return counts, total, nil
}

func (c *Client) allow(ctx context.Context) error {
	if !c.circuitEnabled {
		return nil
	}
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "firedb circuit breaker rejected request", "state", c.breaker.State())
		return fmt.Errorf("vote tally backend is temporarily unavailable: %w", err)
	}
	return nil
}

// execute runs fn with retries on transient failures and records the outcome
// on the circuit breaker.
func (c *Client) execute(ctx context.Context, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			c.recordCircuitResult(nil)
			return nil
		}
		if !crerr.Is(lastErr, errTransient) {
			c.recordCircuitResult(lastErr)
			return lastErr
		}
		if attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 500 * time.Millisecond
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			c.recordCircuitResult(ctx.Err())
			return ctx.Err()
		case <-timer.C:
		}
	}

	c.recordCircuitResult(lastErr)
	return lastErr
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err != nil && crerr.Is(err, errTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func (c *Client) voteURL(award, deviceID string) (string, error) {
	base, err := c.validateBase()
	if err != nil {
		return "", err
	}
	if err := validateKey("award", award); err != nil {
		return "", err
	}
	if err := validateKey("device id", deviceID); err != nil {
		return "", err
	}
	return base + "/votes/" + award + "/" + deviceID + ".json" + c.authQuery(), nil
}

func (c *Client) treeURL(award string) (string, error) {
	base, err := c.validateBase()
	if err != nil {
		return "", err
	}
	if err := validateKey("award", award); err != nil {
		return "", err
	}
	return base + "/votes/" + award + ".json" + c.authQuery(), nil
}

func (c *Client) authQuery() string {
	if c.authToken == "" {
		return ""
	}
	return "?auth=" + url.QueryEscape(c.authToken)
}

func (c *Client) validateBase() (string, error) {
	if c.baseURL == "" {
		return "", crerr.New("firedb base url is required")
	}
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return "", crerr.Wrapf(err, "parse base url %q", c.baseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("base url %q uses unsupported scheme %q", c.baseURL, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("base url %q has empty host", c.baseURL)
	}
	return c.baseURL, nil
}

// validateKey keeps award and device keys Firebase-path safe: no dots,
// brackets, slashes or whitespace.
func validateKey(label, v string) error {
	if strings.TrimSpace(v) == "" {
		return crerr.Newf("%s is required", label)
	}
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return crerr.Newf("%s %q contains invalid character %q", label, v, r)
		}
	}
	return nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
