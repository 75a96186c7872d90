package domain

import "context"

// RequestHook mutates the outgoing configuration before the network call.
type RequestHook interface {
	HandleRequest(ctx context.Context, cfg *RequestConfig) error
}

// RequestHookFunc adapts a function to RequestHook.
type RequestHookFunc func(ctx context.Context, cfg *RequestConfig) error

// HandleRequest calls f(ctx, cfg).
func (f RequestHookFunc) HandleRequest(ctx context.Context, cfg *RequestConfig) error {
	return f(ctx, cfg)
}

// ResponseHook shapes the final result of a successful call.
// clearToken is nil when no token hook is installed.
type ResponseHook interface {
	HandleResponse(ctx context.Context, result any, clearToken func()) (any, error)
}

// ResponseHookFunc adapts a function to ResponseHook.
type ResponseHookFunc func(ctx context.Context, result any, clearToken func()) (any, error)

// HandleResponse calls f(ctx, result, clearToken).
func (f ResponseHookFunc) HandleResponse(ctx context.Context, result any, clearToken func()) (any, error) {
	return f(ctx, result, clearToken)
}

// TokenHook attaches credentials to calls that ask for them.
type TokenHook interface {
	// GetToken mutates cfg, typically by adding an Authorization header.
	GetToken(ctx context.Context, cfg *RequestConfig) error

	// ClearToken forgets the current credentials.
	ClearToken()
}

// LoadingHook toggles a loading indicator around calls that ask for it.
type LoadingHook interface {
	ShowLoading()
	HideLoading()
}

// Hooks is the optional hook set held by a transport for its lifetime.
type Hooks struct {
	Request  RequestHook
	Response ResponseHook
	Token    TokenHook
	Loading  LoadingHook
}
