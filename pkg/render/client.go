package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/suechart/pkg/buildinfo"
	"github.com/matzehuels/suechart/pkg/cache"
	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/errors"
	"github.com/matzehuels/suechart/pkg/observability"
)

// DefaultTimeout bounds a single render request when no HTTP client is given.
const DefaultTimeout = 30 * time.Second

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 32 << 20

// cacheKeyType labels render entries in cache hooks.
const cacheKeyType = "render"

// Client fetches rendered charts from the render service.
// A Client is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (and with it the timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = NewHTTPClient(d)
		}
	}
}

// WithCache stores successful responses in store for ttl.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if store != nil {
			c.cache = store
			c.ttl = ttl
		}
	}
}

// WithKeyer overrides how cache keys are derived.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) {
		if k != nil {
			c.keyer = k
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient returns an HTTP client with the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewClient returns a client for the service at baseURL
// (e.g. "https://sue.st.nzz.ch").
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	c := &Client{
		http:    NewHTTPClient(DefaultTimeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// requestBody is the wire form of a render request. It is built field by
// field from the config so nothing else about the caller's state is sent.
type requestBody struct {
	Data           [][]string     `json:"data"`
	SignalSettings map[string]any `json:"signalSettings"`
	Width          float64        `json:"width"`
	Height         float64        `json:"height"`
}

// responseBody is the wire form of a render response.
type responseBody struct {
	SVG   *string         `json:"svg"`
	Error json.RawMessage `json:"error"`
}

// Endpoint returns the URL a config is posted to.
func (c *Client) Endpoint(cfg chart.Config) string {
	return c.baseURL + "/chart/" + url.PathEscape(cfg.Style) + "/" + url.PathEscape(string(cfg.ChartType))
}

// FetchChart renders cfg and returns the SVG markup.
func (c *Client) FetchChart(ctx context.Context, cfg chart.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(requestBody{
		Data:           cfg.Data,
		SignalSettings: cfg.SignalSettings,
		Width:          cfg.Width,
		Height:         cfg.Height,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode render request")
	}

	key := c.keyer.RenderKey(cache.RenderKeyOpts{
		Style:     cfg.Style,
		ChartType: string(cfg.ChartType),
		Body:      body,
	})
	if data, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("render cache read failed", "err", err)
	} else if ok {
		observability.Cache().OnCacheHit(ctx, cacheKeyType)
		c.logger.Debug("render cache hit", "type", cfg.ChartType)
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, cacheKeyType)

	svg, err := c.post(ctx, c.Endpoint(cfg), body)
	if err != nil {
		return "", err
	}

	if err := c.cache.Set(ctx, key, []byte(svg), c.ttl); err != nil {
		c.logger.Warn("render cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(svg))
	}
	return svg, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "build render request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	c.logger.Debug("posting render request", "url", endpoint, "bytes", len(body))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return "", errors.Wrap(errors.ErrCodeCancelled, err, "Request cancelled.")
		}
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "%s", transportMessage(err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	status := statusText(resp)
	if resp.StatusCode != http.StatusOK {
		return "", errors.New(errors.ErrCodeNetwork, "%s", status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "%s", transportMessage(err))
	}
	return decodeResponse(data, status)
}

// decodeResponse interprets a 200 response. An error field wins over an svg
// field; a body with neither is a protocol violation.
func decodeResponse(data []byte, status string) (string, error) {
	var rb responseBody
	if err := json.Unmarshal(data, &rb); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "Invalid response from render service (%s).", status)
	}

	if len(rb.Error) > 0 && string(rb.Error) != "null" {
		var msg string
		if err := json.Unmarshal(rb.Error, &msg); err != nil {
			msg = string(rb.Error)
		}
		return "", errors.New(errors.ErrCodeRender, "%s", msg)
	}
	if rb.SVG == nil {
		return "", errors.New(errors.ErrCodeRender, "Invalid response from render service (%s).", status)
	}
	return *rb.SVG, nil
}

// statusText returns the reason phrase of resp ("Bad Gateway").
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// transportMessage strips the method and URL that net/http prepends to
// transport errors.
func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}
