// Package hooks provides the concrete hooks the courier CLI installs on its transports.
package hooks

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"courier/internal/domain"
)

// RequestIDHeader carries a per-call identifier.
const RequestIDHeader = "X-Request-ID"

// HeaderHook adds static headers and a request ID to every call.
// Headers already present on the call are left alone.
type HeaderHook struct {
	headers map[string]string
	newID   func() string
}

var _ domain.RequestHook = (*HeaderHook)(nil)

// NewHeaderHook creates a hook that adds headers to each call.
func NewHeaderHook(headers map[string]string) *HeaderHook {
	return &HeaderHook{
		headers: maps.Clone(headers),
		newID:   uuid.NewString,
	}
}

// HandleRequest implements domain.RequestHook.
func (h *HeaderHook) HandleRequest(_ context.Context, cfg *domain.RequestConfig) error {
	for key, value := range h.headers {
		if cfg.Header(key) == "" {
			cfg.SetHeader(key, value)
		}
	}
	if cfg.Header(RequestIDHeader) == "" {
		cfg.SetHeader(RequestIDHeader, h.newID())
	}
	return nil
}
