// Package http provides an OpenDART implementation of dartdoc.ReportFetcher.
package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/dartdoc"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the OpenDART API host.
const DefaultBaseURL = "https://opendart.fss.or.kr"

// DefaultTimeout is the default timeout for a single request.
const DefaultTimeout = 30 * time.Second

// DefaultRequestsPerSecond keeps well below the OpenDART daily quota.
const DefaultRequestsPerSecond = 2.0

// MaxResponseSize bounds the size of a downloaded archive.
const MaxResponseSize = 256 << 20

var zipMagic = []byte("PK\x03\x04")

// DefaultRetryDelays returns the backoff delays for request retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LogFunc is the signature for a retry logging function.
type LogFunc func(format string, args ...any)

// Ensure Client implements dartdoc.ReportFetcher at compile time.
var _ dartdoc.ReportFetcher = (*Client)(nil)

// Client downloads filing archives from the OpenDART document API.
// Requests share one rate limiter; unavailable responses and transport
// failures are retried with backoff.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	delays  []time.Duration
	logf    LogFunc
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client. Its timeout takes
// precedence over WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout sets the timeout for a single request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit sets the number of requests per second. Zero or less
// disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithRetryDelays sets the delays between attempts. An empty slice
// disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(c *Client) {
		c.delays = delays
	}
}

// WithRetryLogger sets a function called before every retry.
func WithRetryLogger(fn LogFunc) Option {
	return func(c *Client) {
		c.logf = fn
	}
}

// NewClient creates a Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		delays:  DefaultRetryDelays(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// FetchReport downloads the document archive of receiptNo.
func (c *Client) FetchReport(ctx context.Context, receiptNo string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, dartdoc.Errorf(dartdoc.EUNAUTHORIZED, "OpenDART API key required")
	}
	if !dartdoc.ValidReceiptNo(receiptNo) {
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "invalid receipt number %q", receiptNo)
	}

	maxAttempts := len(c.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		data, err := c.fetch(ctx, receiptNo)
		if err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if c.logf != nil {
			c.logf("  retry %s (attempt %d): %v", receiptNo, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.delays[attempt]):
		}
	}
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, receiptNo string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("crtfc_key", c.apiKey)
	q.Set("rcept_no", receiptNo)
	u := c.baseURL + "/api/document.xml?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", receiptNo, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code := dartdoc.EINTERNAL
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			code = dartdoc.EUNAVAILABLE
		}
		return nil, dartdoc.Errorf(code, "OpenDART returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", receiptNo, err)
	}

	if bytes.HasPrefix(body, zipMagic) {
		return body, nil
	}
	return nil, statusError(body)
}

// statusError converts an OpenDART XML status envelope into an error.
func statusError(body []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return dartdoc.Errorf(dartdoc.EINTERNAL, "unexpected OpenDART response")
	}
	root := doc.SelectElement("result")
	if root == nil {
		return dartdoc.Errorf(dartdoc.EINTERNAL, "unexpected OpenDART response")
	}

	var status, message string
	if el := root.SelectElement("status"); el != nil {
		status = strings.TrimSpace(el.Text())
	}
	if el := root.SelectElement("message"); el != nil {
		message = strings.TrimSpace(el.Text())
	}
	if status == "000" {
		return dartdoc.Errorf(dartdoc.EINTERNAL, "OpenDART returned no archive")
	}
	return dartdoc.Errorf(StatusCode(status), "OpenDART status %s: %s", status, message)
}

// StatusCode maps an OpenDART status to an application error code.
func StatusCode(status string) string {
	switch status {
	case "000":
		return ""
	case "010", "011", "012", "901":
		return dartdoc.EUNAUTHORIZED
	case "013", "014":
		return dartdoc.ENOTFOUND
	case "100", "101":
		return dartdoc.EINVALID
	case "020", "021", "800":
		return dartdoc.EUNAVAILABLE
	}
	return dartdoc.EINTERNAL
}

// retryable reports whether err may succeed on another attempt: the API
// was unavailable or the request never got a response.
func retryable(err error) bool {
	var e *dartdoc.Error
	if errors.As(err, &e) {
		return e.Code == dartdoc.EUNAVAILABLE
	}
	return true
}

// redact removes the API key from transport errors, which quote the URL.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
