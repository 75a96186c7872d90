package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"courier/internal/domain"
	"courier/internal/errors"
)

// EnvelopeConfig names the fields and codes of a {code, message, data} envelope.
type EnvelopeConfig struct {
	CodeField         string
	MessageField      string
	DataField         string
	SuccessCode       int
	UnauthorizedCodes []int
}

// DefaultEnvelopeConfig returns the common {code: 0, message, data} layout.
func DefaultEnvelopeConfig() EnvelopeConfig {
	return EnvelopeConfig{
		CodeField:         "code",
		MessageField:      "message",
		DataField:         "data",
		SuccessCode:       0,
		UnauthorizedCodes: []int{401, 403},
	}
}

// EnvelopeHook unwraps enveloped payloads. Anything without a numeric code passes through.
type EnvelopeHook struct {
	cfg    EnvelopeConfig
	logger *slog.Logger
}

var _ domain.ResponseHook = (*EnvelopeHook)(nil)

// NewEnvelopeHook creates an envelope hook. Empty field names take the defaults.
func NewEnvelopeHook(cfg EnvelopeConfig, logger *slog.Logger) *EnvelopeHook {
	defaults := DefaultEnvelopeConfig()
	if cfg.CodeField == "" {
		cfg.CodeField = defaults.CodeField
	}
	if cfg.MessageField == "" {
		cfg.MessageField = defaults.MessageField
	}
	if cfg.DataField == "" {
		cfg.DataField = defaults.DataField
	}
	return &EnvelopeHook{cfg: cfg, logger: logger}
}

// HandleResponse implements domain.ResponseHook.
func (h *EnvelopeHook) HandleResponse(ctx context.Context, result any, clearToken func()) (any, error) {
	envelope, ok := result.(map[string]any)
	if !ok {
		return result, nil
	}
	code, ok := numericCode(envelope[h.cfg.CodeField])
	if !ok {
		return result, nil
	}

	if code == h.cfg.SuccessCode {
		return envelope[h.cfg.DataField], nil
	}

	message, _ := envelope[h.cfg.MessageField].(string)
	if slices.Contains(h.cfg.UnauthorizedCodes, code) {
		h.logger.InfoContext(ctx, "Server rejected credentials", "code", code, "message", message)
		if clearToken != nil {
			clearToken()
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrUnauthorized, message)
	}

	h.logger.DebugContext(ctx, "Envelope reported failure", "code", code, "message", message)
	return nil, errors.NewAPIError(code, message)
}

func numericCode(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
