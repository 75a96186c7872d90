package app

import (
	"context"
	"fmt"

	"courier/internal/adapters/filesystem"
	"courier/internal/adapters/terminal"
	"courier/internal/config"
	"courier/internal/credentials"
	"courier/internal/factory"
	"courier/internal/hooks"
	"courier/internal/logging"
)

// NewAppWithOptions creates a new App with the given options, wiring all dependencies.
func NewAppWithOptions(ctx context.Context, o *Options) (*App, error) {
	// Load configuration.
	cfg, err := config.Load(o.Viper, config.Options{
		ConfigFile: o.ConfigFile,
		ConfigDir:  o.ConfigDir,
		EnvFile:    o.EnvFile,
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Create logger.
	level := logging.ParseLevel(cfg.LogLevel)
	if o.logLevelSet {
		level = o.LogLevel
	}
	logger := logging.New(o.Stderr, level, logging.FormatText)

	// Create credential store.
	fs := filesystem.New()
	credentialsPath := o.CredentialsPath
	if credentialsPath == "" {
		if credentialsPath, err = credentials.DefaultPath(fs); err != nil {
			return nil, err
		}
	}
	store, err := credentials.NewStore(fs, credentialsPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open credentials: %w", err)
	}

	// Create hooks.
	staticHeaders := map[string]string{}
	if o.UserAgent != "" {
		staticHeaders["User-Agent"] = o.UserAgent
	}
	spinner := hooks.NewSpinner(o.Stderr, "Loading...")

	factoryOpts := []factory.Option{
		factory.WithRequestHook(hooks.NewHeaderHook(staticHeaders)),
		factory.WithTokenHook(hooks.NewTokenHook(store, logger)),
		factory.WithLoadingHook(spinner),
	}
	if cfg.Envelope.Enabled {
		factoryOpts = append(factoryOpts, factory.WithResponseHook(hooks.NewEnvelopeHook(hooks.EnvelopeConfig{
			CodeField:         cfg.Envelope.CodeField,
			MessageField:      cfg.Envelope.MessageField,
			DataField:         cfg.Envelope.DataField,
			SuccessCode:       cfg.Envelope.SuccessCode,
			UnauthorizedCodes: cfg.Envelope.UnauthorizedCodes,
		}, logger)))
	}

	handlerFactory := factory.New(cfg.ToBaseConfig(), logger, factoryOpts...)

	// Log configuration details.
	logger.DebugContext(ctx, "Initializing courier with configuration",
		"logLevel", level.String(),
		"verbose", o.Verbose,
		"instance", cfg.Instance,
		"baseURL", cfg.BaseURL,
		"envelope", cfg.Envelope.Enabled,
		"credentialsPath", credentialsPath)

	return &App{
		Config:       cfg,
		Credentials:  store,
		SecretReader: terminal.NewAdapter(o.Stdin, o.Stderr),
		Factory:      handlerFactory,
		Spinner:      spinner,
		Logger:       logger,
		Options:      o,
	}, nil
}
