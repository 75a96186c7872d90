// Package factory builds transports by instance type.
package factory

import (
	"fmt"
	"log/slog"

	"courier/internal/adapters/nativehttp"
	"courier/internal/adapters/restyhttp"
	"courier/internal/domain"
	"courier/internal/errors"
)

// Factory builds transports that share one base configuration and hook set.
type Factory struct {
	base   domain.BaseConfig
	hooks  domain.Hooks
	logger *slog.Logger
}

// Option installs an optional hook on a Factory.
type Option func(*domain.Hooks)

// WithRequestHook installs the request mutation hook.
func WithRequestHook(h domain.RequestHook) Option {
	return func(hooks *domain.Hooks) { hooks.Request = h }
}

// WithResponseHook installs the response transformation hook.
func WithResponseHook(h domain.ResponseHook) Option {
	return func(hooks *domain.Hooks) { hooks.Response = h }
}

// WithTokenHook installs the token hook.
func WithTokenHook(h domain.TokenHook) Option {
	return func(hooks *domain.Hooks) { hooks.Token = h }
}

// WithLoadingHook installs the loading indicator hook.
func WithLoadingHook(h domain.LoadingHook) Option {
	return func(hooks *domain.Hooks) { hooks.Loading = h }
}

// New captures base and the hooks from opts for every transport it builds.
func New(base domain.BaseConfig, logger *slog.Logger, opts ...Option) *Factory {
	var hooks domain.Hooks
	for _, opt := range opts {
		if opt != nil {
			opt(&hooks)
		}
	}
	return &Factory{
		base:   base,
		hooks:  hooks,
		logger: logger,
	}
}

// GetInstance builds a new transport of the requested kind.
func (f *Factory) GetInstance(instanceType domain.InstanceType) (domain.Handler, error) {
	logger := f.logger.With("instance", instanceType.String())

	switch instanceType {
	case domain.InstanceResty:
		return restyhttp.New(f.base, f.hooks, logger), nil
	case domain.InstanceNative:
		return nativehttp.New(f.base, f.hooks, logger), nil
	case domain.InstanceBare:
		// The bare variant never sees the installed hooks.
		return restyhttp.New(f.base, domain.Hooks{}, logger), nil
	default:
		return nil, errors.NewConfigurationError(
			"instance",
			instanceType.String(),
			"unsupported instance type",
			fmt.Errorf("no transport registered for %s", instanceType),
		)
	}
}
