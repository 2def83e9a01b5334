package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/circuitbreaker"
	"github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/metrics"
)

type ctxKey int

const bearerTokenKey ctxKey = iota

// WithToken attaches the operator's remote access token to the context.
// Every request issued under that context carries it as a bearer header.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}

// UnauthorizedHook runs once per 401 response, before the error reaches the
// caller. The auth layer uses it to purge the session so expiry is handled
// in one place.
type UnauthorizedHook func(ctx context.Context)

// Client executes requests against the remote booking API: bearer token
// injection, JSON bodies, per-request timeout, and centralized 401 handling.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	logger         zerolog.Logger
	metrics        *metrics.Metrics
	cb             *circuitbreaker.CircuitBreaker
	cache          *cache.Cache
	onUnauthorized UnauthorizedHook
}

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

func NewClient(cfg Config, logger zerolog.Logger, m *metrics.Metrics) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		metrics:    m,
		cb: circuitbreaker.New(circuitbreaker.Settings{
			Name:         "booking-api",
			FailureLimit: 5,
			Window:       time.Minute,
			Cooldown:     30 * time.Second,
		}),
		cache: cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
	}
}

// OnUnauthorized registers the session-purge hook. Set once during wiring.
func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.onUnauthorized = hook
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do executes one JSON request. op names the logical operation for logs and
// metrics. out may be nil for calls whose body is irrelevant.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path, query), reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.execute(ctx, op, req, out)
}

// doMultipart executes one multipart/form-data request (client registration
// with optional profile photo).
func (c *Client) doMultipart(ctx context.Context, op, path string, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("%w: failed to write form field: %v", ErrInternal, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: failed to finalize form: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.execute(ctx, op, req, out)
}

func (c *Client) execute(ctx context.Context, op string, req *http.Request, out interface{}) error {
	if token := tokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	var resp *http.Response
	err := c.cb.Execute(func() error {
		var doErr error
		resp, doErr = c.httpClient.Do(req)
		return doErr
	})
	if c.metrics != nil {
		c.metrics.RemoteLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countTransportError(op)
		c.logger.Error().Err(err).Str("operation", op).Str("url", req.URL.String()).Msg("booking API request failed")
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	c.countCall(op, resp.StatusCode)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Warn().Str("operation", op).Msg("booking API rejected token, purging session")
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	default:
		return c.remoteError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope struct {
		Message string `json:"message"`
	}
	message := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	}

	return &RemoteError{StatusCode: resp.StatusCode, Message: message}
}

func (c *Client) countCall(op string, code int) {
	if c.metrics == nil {
		return
	}
	c.metrics.RemoteCalls.WithLabelValues(op, strconv.Itoa(code)).Inc()
	if code >= http.StatusBadRequest {
		c.metrics.RemoteErrors.WithLabelValues(op).Inc()
	}
}

func (c *Client) countTransportError(op string) {
	if c.metrics == nil {
		return
	}
	c.metrics.RemoteCalls.WithLabelValues(op, "transport_error").Inc()
	c.metrics.RemoteErrors.WithLabelValues(op).Inc()
}

// cached runs fetch unless a previous result for key is still fresh. Catalog
// lookups (categories, sedes, professionals) change rarely and back every
// wizard mount, so they are the only calls routed through here.
func (c *Client) cached(key string, fetch func() (interface{}, error)) (interface{}, error) {
	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}
	v, err := fetch()
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, v)
	return v, nil
}

// InvalidateCache drops all cached catalog lookups.
func (c *Client) InvalidateCache() {
	c.cache.Flush()
}
