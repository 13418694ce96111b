// Package http provides the rate-limited HTTP client the scraping, chat-replay
// and caption collaborators share. API requests do not go through here; the
// Data API client owns its own transport and credential rotation.
package http

import (
	"context"
	"io"
	"net"
	nethttp "net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// defaultUserAgent mimics a standard browser; several endpoints answer
// consent pages or empty bodies to unknown agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Config holds client configuration.
type Config struct {
	// Timeout for individual requests.
	Timeout time.Duration

	// UserAgent sent when the caller does not set one.
	UserAgent string

	// RequestsPerSecond bounds the request rate. Zero disables limiting.
	RequestsPerSecond float64

	// DisableIPv6 forces IPv4 dialing.
	DisableIPv6 bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		UserAgent:         defaultUserAgent,
		RequestsPerSecond: 2.5,
	}
}

// Client wraps an HTTP client with token-bucket rate limiting.
type Client struct {
	base    *nethttp.Client
	config  *Config
	limiter *rate.Limiter
}

// New creates a client from the given configuration; nil means defaults.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	transport := &nethttp.Transport{
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	if cfg.DisableIPv6 {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, "tcp4", addr)
		}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		base:    &nethttp.Client{Timeout: cfg.Timeout, Transport: transport},
		config:  cfg,
		limiter: limiter,
	}
}

// Response is an HTTP response with its body fully read.
type Response struct {
	StatusCode int
	Header     nethttp.Header
	Body       []byte
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, nethttp.MethodGet, url, nil, nil)
}

// Do performs a request, waiting on the rate limiter first. Non-2xx responses
// are returned to the caller unchanged; classification is the caller's
// business.
func (c *Client) Do(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "http request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.base.CloseIdleConnections()
	return nil
}
