package hooks

import (
	"context"
	"log/slog"

	"courier/internal/domain"
)

// TokenSource is the credential store behind TokenHook.
type TokenSource interface {
	Token() string
	Clear(ctx context.Context) error
}

// TokenHook adds a bearer token from a TokenSource.
type TokenHook struct {
	source TokenSource
	logger *slog.Logger
}

var _ domain.TokenHook = (*TokenHook)(nil)

// NewTokenHook creates a token hook backed by source.
func NewTokenHook(source TokenSource, logger *slog.Logger) *TokenHook {
	return &TokenHook{source: source, logger: logger}
}

// GetToken sets the Authorization header when a token is stored and the call has none.
func (h *TokenHook) GetToken(ctx context.Context, cfg *domain.RequestConfig) error {
	if cfg.Header("Authorization") != "" {
		return nil
	}
	token := h.source.Token()
	if token == "" {
		h.logger.DebugContext(ctx, "No stored token, sending call without credentials", "url", cfg.URL)
		return nil
	}
	cfg.SetHeader("Authorization", "Bearer "+token)
	return nil
}

// ClearToken removes the stored token. Failures are logged.
func (h *TokenHook) ClearToken() {
	if err := h.source.Clear(context.Background()); err != nil {
		h.logger.Warn("Failed to clear stored token", "error", err)
		return
	}
	h.logger.Info("Stored token cleared")
}
