// Package nativehttp is a placeholder transport intended for a net/http backend.
// It satisfies domain.Handler but never touches the network.
package nativehttp

import (
	"context"
	"log/slog"

	"courier/internal/domain"
)

// Transport answers every call with an empty object.
type Transport struct {
	logger *slog.Logger
}

var _ domain.Handler = (*Transport)(nil)

// New creates a placeholder transport. base and hooks are accepted for parity
// with the full transport and only logged.
func New(base domain.BaseConfig, hooks domain.Hooks, logger *slog.Logger) *Transport {
	logger.Debug("Created placeholder transport",
		"base_url", base.BaseURL,
		"request_hook", hooks.Request != nil,
		"response_hook", hooks.Response != nil,
		"token_hook", hooks.Token != nil,
		"loading_hook", hooks.Loading != nil,
	)
	return &Transport{logger: logger}
}

// Invoke returns an empty object.
func (t *Transport) Invoke(ctx context.Context, cfg *domain.RequestConfig, callType domain.CallType) (any, error) {
	var url string
	var method domain.Method
	if cfg != nil {
		url, method = cfg.URL, cfg.Method
	}
	return t.empty(ctx, "invoke", url, string(method), callType)
}

// Get returns an empty object.
func (t *Transport) Get(ctx context.Context, url string, _ any, callType domain.CallType) (any, error) {
	return t.empty(ctx, "get", url, string(domain.MethodGet), callType)
}

// Post returns an empty object.
func (t *Transport) Post(ctx context.Context, url string, _ any, callType domain.CallType) (any, error) {
	return t.empty(ctx, "post", url, string(domain.MethodPost), callType)
}

// PostJSON returns an empty object.
func (t *Transport) PostJSON(ctx context.Context, url string, _ any, callType domain.CallType) (any, error) {
	return t.empty(ctx, "postJson", url, string(domain.MethodPost), callType)
}

func (t *Transport) empty(ctx context.Context, op, url, method string, callType domain.CallType) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.logger.DebugContext(ctx, "Placeholder transport call",
		"operation", op,
		"method", method,
		"url", url,
		"call_type", callType.String(),
	)
	return map[string]any{}, nil
}
