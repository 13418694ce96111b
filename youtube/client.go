package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// baseURL is the Data API v3 root all resource paths are resolved against.
	baseURL = "https://youtube.googleapis.com/youtube/v3/"

	// maxResults is the largest page size the Data API accepts. It is fixed
	// at construction and shared by every call a client instance issues.
	maxResults = 50

	defaultTimeout = 30 * time.Second
)

// APIError is the platform's error envelope for a single request. Rotation
// consumes client-class errors; anything else propagates as-is.
type APIError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtube: api error %d: %s", e.Code, e.Message)
}

// clientError reports whether the error consumes a credential: the platform
// rejected the request with a client-class code (bad key, quota exceeded,
// access forbidden).
func (e *APIError) clientError() bool {
	return e.Code >= 400 && e.Code < 500
}

// Reason returns the first machine-readable reason in the error detail list,
// e.g. "commentsDisabled" or "quotaExceeded".
func (e *APIError) Reason() string {
	var details []struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(e.Errors, &details); err == nil && len(details) > 0 {
		return details[0].Reason
	}
	return ""
}

// ExhaustedKeysError is fatal: every provided credential was rejected with a
// client-class error. It carries the platform-reported detail of the last
// rejection and is never retried further up the stack.
type ExhaustedKeysError struct {
	Last *APIError
}

func (e *ExhaustedKeysError) Error() string {
	return fmt.Sprintf("youtube: too many 4xx errors, tried all keys (%s)", strings.TrimSpace(string(e.Last.Errors)))
}

func (e *ExhaustedKeysError) Unwrap() error { return e.Last }

// envelope is the paged response shape shared by all list endpoints.
type envelope struct {
	Error         *APIError         `json:"error"`
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
}

// Options configures client construction.
type Options struct {
	// DisableIPv6 forces IPv4 dialing for this client's transport, which
	// avoids connectivity failures in some constrained networks.
	DisableIPv6 bool

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
}

// Client is a thin Data API v3 client with API-key failover. It holds the
// remaining credential queue and the active key as instance state; a
// client-class error discards the active key and retries the same request
// with the next one.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	spareKeys  []string
}

// NewClient builds a client from an ordered credential list, consuming from
// the front.
func NewClient(apiKeys []string, opts *Options) (*Client, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("youtube: at least one API key is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		transport := &http.Transport{
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
		if opts.DisableIPv6 {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.DialContext(ctx, "tcp4", addr)
			}
		}
		httpClient = &http.Client{Timeout: defaultTimeout, Transport: transport}
	}

	base := opts.BaseURL
	if base == "" {
		base = baseURL
	}

	keys := append([]string(nil), apiKeys...)
	return &Client{
		httpClient: httpClient,
		baseURL:    base,
		key:        keys[0],
		spareKeys:  keys[1:],
	}, nil
}

// request performs one GET against a resource path, rotating credentials while
// the platform answers with a client-class error. Network failures, non-JSON
// bodies and server-class errors propagate unmodified.
func (c *Client) request(path string, params url.Values) (*envelope, error) {
	for {
		env, err := c.do(path, params)
		if err != nil {
			return nil, err
		}
		if env.Error == nil {
			return env, nil
		}
		if !env.Error.clientError() {
			return nil, env.Error
		}
		if len(c.spareKeys) == 0 {
			return nil, &ExhaustedKeysError{Last: env.Error}
		}
		log.WithFields(log.Fields{
			"code":   env.Error.Code,
			"reason": env.Error.Reason(),
		}).Warn("api key rejected, rotating to next key")
		c.key = c.spareKeys[0]
		c.spareKeys = c.spareKeys[1:]
	}
}

func (c *Client) do(path string, params url.Values) (*envelope, error) {
	final := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			final.Add(k, v)
		}
	}
	final.Set("key", c.key)
	if final.Get("maxResults") == "" {
		final.Set("maxResults", fmt.Sprintf("%d", maxResults))
	}

	resp, err := c.httpClient.Get(c.baseURL + path + "?" + final.Encode())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrapf(err, "decode %s response", path)
	}
	return &env, nil
}
