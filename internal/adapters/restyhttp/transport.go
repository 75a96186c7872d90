// Package restyhttp is the full transport, backed by go-resty.
package restyhttp

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"courier/internal/domain"
	"courier/internal/errors"
	"courier/internal/utils"
)

const (
	// DefaultTimeout applies when the base configuration sets none.
	DefaultTimeout = 30 * time.Second

	// DefaultResponseType applies when the base configuration sets none.
	DefaultResponseType = domain.ResponseTypeJSON
)

// Transport implements domain.Handler on top of a single resty client.
// The base configuration and hooks are fixed at construction and shared by all calls.
type Transport struct {
	client  *resty.Client
	limiter *rate.Limiter
	base    domain.BaseConfig
	hooks   domain.Hooks
	legacy  bool
	logger  *slog.Logger

	mu      sync.Mutex
	seq     uint64
	pending context.CancelFunc
}

var (
	_ domain.Handler  = (*Transport)(nil)
	_ domain.Canceler = (*Transport)(nil)
)

// New creates a transport from base merged with the package defaults.
func New(base domain.BaseConfig, hooks domain.Hooks, logger *slog.Logger) *Transport {
	base = withDefaults(base)

	client := resty.New().
		SetTimeout(base.Timeout).
		SetRetryCount(base.Retry.Count).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: base.InsecureSkipVerify, //nolint:gosec // User-configurable for self-signed certificates
		})
	if base.Retry.Wait > 0 {
		client.SetRetryWaitTime(base.Retry.Wait)
	}
	if base.Retry.MaxWait > 0 {
		client.SetRetryMaxWaitTime(base.Retry.MaxWait)
	}
	if base.BaseURL != "" {
		client.SetBaseURL(base.BaseURL)
	}
	if len(base.Headers) > 0 {
		client.SetHeaders(base.Headers)
	}

	t := &Transport{
		client: client,
		base:   base,
		hooks:  hooks,
		legacy: utils.IsIE9(base.Navigator),
		logger: logger,
	}

	if base.RateLimit.RequestsPerSecond > 0 {
		burst := base.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(base.RateLimit.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return t.limiter.Wait(req.Context())
		})
	}

	if t.legacy {
		client.OnBeforeRequest(legacyRequestBody)
	}

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return t
}

func withDefaults(base domain.BaseConfig) domain.BaseConfig {
	if base.ResponseType == "" {
		base.ResponseType = DefaultResponseType
	}
	if base.Timeout <= 0 {
		base.Timeout = DefaultTimeout
	}
	return base
}

// Base returns the merged base configuration.
func (t *Transport) Base() domain.BaseConfig {
	return t.base
}

// Get performs a GET request with data as query parameters.
func (t *Transport) Get(ctx context.Context, url string, data any, callType domain.CallType) (any, error) {
	cfg, err := NewRequestConfig(url, domain.MethodGet, domain.ContentTypeForm, data)
	if err != nil {
		return nil, err
	}
	return t.Invoke(ctx, cfg, callType)
}

// Post performs a form encoded POST request.
func (t *Transport) Post(ctx context.Context, url string, data any, callType domain.CallType) (any, error) {
	cfg, err := NewRequestConfig(url, domain.MethodPost, domain.ContentTypeForm, data)
	if err != nil {
		return nil, err
	}
	return t.Invoke(ctx, cfg, callType)
}

// PostJSON performs a JSON POST request.
func (t *Transport) PostJSON(ctx context.Context, url string, data any, callType domain.CallType) (any, error) {
	cfg, err := NewRequestConfig(url, domain.MethodPost, domain.ContentTypeJSON, data)
	if err != nil {
		return nil, err
	}
	return t.Invoke(ctx, cfg, callType)
}

// Invoke runs the hooks around a single network call.
//
// Order: loading shown, request hook, token hook, network call, loading hidden,
// then the response hook. The loading indicator is hidden exactly once on every path.
func (t *Transport) Invoke(ctx context.Context, cfg *domain.RequestConfig, callType domain.CallType) (any, error) {
	if cfg == nil {
		cfg = &domain.RequestConfig{}
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string)
	}
	if cfg.Method == "" {
		cfg.Method = domain.MethodGet
	}

	ctx, release := t.track(ctx)
	defer release()

	hide := t.showLoading(callType)
	defer hide()

	if t.hooks.Request != nil {
		if err := t.hooks.Request.HandleRequest(ctx, cfg); err != nil {
			t.logger.DebugContext(ctx, "Request hook failed", "url", cfg.URL, "error", err)
			return nil, err
		}
	}

	if t.hooks.Token != nil && callType.NeedsToken() {
		if err := t.hooks.Token.GetToken(ctx, cfg); err != nil {
			t.logger.DebugContext(ctx, "Token hook failed", "url", cfg.URL, "error", err)
			return nil, err
		}
	}

	resp, err := t.send(ctx, cfg)
	hide()
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		httpErr := errors.NewHTTPError(resp.StatusCode(), string(cfg.Method), resp.Request.URL, resp.Body())
		t.logger.DebugContext(ctx, "Rejected response", "detail", httpErr.Detail())
		return nil, httpErr
	}

	responseType := t.responseType(cfg)

	// File downloads skip all post-processing.
	if responseType == domain.ResponseTypeBlob {
		return resp.Body(), nil
	}

	result, err := t.decode(resp.Body(), responseType)
	if err != nil {
		return nil, err
	}

	if t.hooks.Response == nil {
		return result, nil
	}

	var clearToken func()
	if t.hooks.Token != nil {
		clearToken = t.hooks.Token.ClearToken
	}
	return t.hooks.Response.HandleResponse(ctx, result, clearToken)
}

// CancelPending cancels the most recently started call that has not settled.
// Only one call is tracked: starting a new call replaces the previous handle.
func (t *Transport) CancelPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending == nil {
		return false
	}
	t.pending()
	t.pending = nil
	return true
}

// track derives the call's own context and records its cancel func as the pending one.
func (t *Transport) track(ctx context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.seq++
	id := t.seq
	t.pending = cancel
	t.mu.Unlock()

	return ctx, func() {
		t.mu.Lock()
		if t.seq == id {
			t.pending = nil
		}
		t.mu.Unlock()
		cancel()
	}
}

// showLoading shows the indicator when callType asks for it and returns the
// matching hide func. The returned func is safe to call more than once.
func (t *Transport) showLoading(callType domain.CallType) func() {
	if t.hooks.Loading == nil || !callType.NeedsLoading() {
		return func() {}
	}

	loading := t.hooks.Loading
	loading.ShowLoading()

	var once sync.Once
	return func() {
		once.Do(loading.HideLoading)
	}
}

func (t *Transport) send(ctx context.Context, cfg *domain.RequestConfig) (*resty.Response, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	req := t.client.R().SetContext(ctx)
	if len(cfg.Headers) > 0 {
		req.SetHeaders(cfg.Headers)
	}

	if !utils.IsUndefinedOrNull(cfg.Params) {
		values, err := utils.ToValues(cfg.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare query parameters: %w", err)
		}
		req.SetQueryParamsFromValues(values)
	}

	if !utils.IsUndefinedOrNull(cfg.Data) {
		req.SetBody(cfg.Data)
	}

	resp, err := req.Execute(string(cfg.Method), cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrNetwork, err)
	}
	return resp, nil
}

func (t *Transport) responseType(cfg *domain.RequestConfig) domain.ResponseType {
	if cfg.ResponseType != "" {
		return cfg.ResponseType
	}
	return t.base.ResponseType
}

func (t *Transport) decode(body []byte, responseType domain.ResponseType) (any, error) {
	if responseType != domain.ResponseTypeJSON {
		return string(body), nil
	}
	if len(body) == 0 {
		return nil, nil
	}
	if t.legacy {
		return legacyResponseBody(body)
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		// Not JSON after all; hand back the text.
		return string(body), nil
	}
	return result, nil
}
