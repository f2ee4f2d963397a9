// Package reddit searches subreddits over the public JSON endpoints and turns
// matching posts and comments into entries
package reddit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/platform/logger"
)

const (
	baseURLDefault   = "https://www.reddit.com"
	defaultTimeout   = 15 * time.Second
	defaultUA        = "artisantrend-fetch/1.0"
	defaultMaxRetry  = 4
	defaultRetryBase = time.Second
	maxBackoff       = 60 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryBase  time.Duration
}

// Client is a small reddit JSON client with retry on rate limits and server errors
type Client struct {
	http  *http.Client
	opts  Options
	log   *logger.Logger
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewClient fills defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   logger.Named("reddit"),
		now:   time.Now,
		sleep: sleepCtx,
	}
}

// getJSON issues a GET and decodes the body into v, retrying 429 and 5xx
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, v any) error {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "reddit new request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt >= c.opts.MaxRetries {
				return perr.Wrapf(err, perr.ErrorCodeUnavailable, "reddit get %s", path)
			}
			if err := c.wait(ctx, c.backoff(attempt), attempt, "transport error"); err != nil {
				return err
			}
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempt).
			Dur("latency", c.now().Sub(start)).
			Msg("reddit http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(v)
			_ = resp.Body.Close()
			if err != nil {
				return perr.Wrapf(err, perr.ErrorCodeJSON, "reddit decode %s", path)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header)
			drainAndClose(resp.Body)
			if attempt >= c.opts.MaxRetries {
				return perr.Newf(perr.ErrorCodeTooManyRequests, "reddit rate limited on %s", path)
			}
			if wait <= 0 {
				wait = c.backoff(attempt)
			}
			if err := c.wait(ctx, wait, attempt, "rate limited"); err != nil {
				return err
			}

		case resp.StatusCode >= 500:
			drainAndClose(resp.Body)
			if attempt >= c.opts.MaxRetries {
				return perr.Newf(perr.ErrorCodeUnavailable, "reddit status %d on %s", resp.StatusCode, path)
			}
			if err := c.wait(ctx, c.backoff(attempt), attempt, "server error"); err != nil {
				return err
			}

		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return perr.Newf(perr.ErrorCodeUpstream, "reddit status %d on %s: %s", resp.StatusCode, path, body)
		}
	}
}

func (c *Client) wait(ctx context.Context, d time.Duration, attempt int, why string) error {
	c.log.Warn().Dur("retry_in", d).Int("attempt", attempt).Msg("reddit " + why + " retrying")
	return c.sleep(ctx, d)
}

// backoff doubles from RetryBase and caps at a minute
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase << uint(attempt)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

// retryAfter reads Retry-After as seconds or an HTTP date
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if s, err := strconv.Atoi(v); err == nil && s > 0 {
		return time.Duration(s) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	_ = rc.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
