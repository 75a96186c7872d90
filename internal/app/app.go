// Package app wires configuration, credentials, hooks and the transport factory together.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"courier/internal/config"
	"courier/internal/domain"
	"courier/internal/factory"
	"courier/internal/hooks"
)

// App contains all application dependencies.
type App struct {
	// Loaded and validated configuration
	Config *config.Config

	// Credential persistence and interactive input
	Credentials  domain.CredentialStore
	SecretReader domain.SecretReader

	// Transport construction
	Factory *factory.Factory
	Spinner *hooks.Spinner

	// Logging
	Logger *slog.Logger

	// Options the app was built with
	Options *Options
}

// Options holds application construction settings.
type Options struct {
	LogLevel    slog.Level
	logLevelSet bool
	Verbose     bool

	ConfigFile      string
	ConfigDir       string
	EnvFile         string
	CredentialsPath string
	UserAgent       string

	// Viper carries flag bindings into config loading. Nil uses a fresh instance.
	Viper *viper.Viper

	Stdin  io.Reader
	Stderr io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Options)

// WithLogLevel sets the logging level, overriding log_level from the config.
func WithLogLevel(level slog.Level) Option {
	return func(o *Options) {
		o.LogLevel = level
		o.logLevelSet = true
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(o *Options) {
		o.Verbose = verbose
		if verbose {
			o.LogLevel = slog.LevelDebug
			o.logLevelSet = true
		}
	}
}

// WithConfigFile reads configuration from an explicit file.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithConfigDir searches dir for config.yaml instead of ~/.config/courier.
func WithConfigDir(dir string) Option {
	return func(o *Options) { o.ConfigDir = dir }
}

// WithEnvFile loads an explicit .env file before reading the environment.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithCredentialsPath overrides the credential file location.
func WithCredentialsPath(path string) Option {
	return func(o *Options) { o.CredentialsPath = path }
}

// WithUserAgent sets the User-Agent added to every call.
func WithUserAgent(ua string) Option {
	return func(o *Options) { o.UserAgent = ua }
}

// WithViper loads configuration through v, keeping its flag bindings.
func WithViper(v *viper.Viper) Option {
	return func(o *Options) { o.Viper = v }
}

// WithIO replaces stdin and stderr.
func WithIO(stdin io.Reader, stderr io.Writer) Option {
	return func(o *Options) {
		o.Stdin = stdin
		o.Stderr = stderr
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	o := &Options{
		LogLevel: slog.LevelInfo,
		Stdin:    os.Stdin,
		Stderr:   os.Stderr,
	}

	// Apply options.
	for _, opt := range opts {
		opt(o)
	}

	return NewAppWithOptions(ctx, o)
}

// Handler builds the transport selected by the configuration.
func (a *App) Handler() (domain.Handler, error) {
	return a.Factory.GetInstance(a.Config.InstanceType())
}
