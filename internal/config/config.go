// Package config loads courier settings from a YAML file, a .env file and COURIER_ environment variables.
package config

import (
	stderrors "errors"
	"fmt"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"courier/internal/domain"
	"courier/internal/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "COURIER"

// DefaultEnvFile is read when present and no other env file is named.
const DefaultEnvFile = ".env"

// Config is the complete courier configuration.
type Config struct {
	Instance           string            `mapstructure:"instance"`
	BaseURL            string            `mapstructure:"base_url"`
	Timeout            time.Duration     `mapstructure:"timeout"`
	ResponseType       string            `mapstructure:"response_type"`
	Headers            map[string]string `mapstructure:"headers"`
	Retry              RetrySettings     `mapstructure:"retry"`
	RateLimit          RateLimitSettings `mapstructure:"rate_limit"`
	InsecureSkipVerify bool              `mapstructure:"insecure_skip_verify"`
	Legacy             LegacySettings    `mapstructure:"legacy"`
	Envelope           EnvelopeSettings  `mapstructure:"envelope"`
	LogLevel           string            `mapstructure:"log_level"`
}

// RetrySettings configures the transport retry policy.
type RetrySettings struct {
	Count   int           `mapstructure:"count"`
	Wait    time.Duration `mapstructure:"wait"`
	MaxWait time.Duration `mapstructure:"max_wait"`
}

// RateLimitSettings caps outgoing requests.
type RateLimitSettings struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LegacySettings emulates a browser runtime for the legacy compatibility path.
type LegacySettings struct {
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
}

// EnvelopeSettings configures the {code, message, data} response unwrapping.
type EnvelopeSettings struct {
	Enabled           bool   `mapstructure:"enabled"`
	CodeField         string `mapstructure:"code_field"`
	MessageField      string `mapstructure:"message_field"`
	DataField         string `mapstructure:"data_field"`
	SuccessCode       int    `mapstructure:"success_code"`
	UnauthorizedCodes []int  `mapstructure:"unauthorized_codes"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file. It must exist when set.
	ConfigFile string

	// ConfigDir is searched for config.yaml when ConfigFile is empty.
	ConfigDir string

	// EnvFile is an explicit .env file. It must exist when set.
	EnvFile string
}

// DefaultConfigDir returns ~/.config/courier.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "courier"), nil
}

// SetDefaults registers every key so environment variables can override all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("instance", "resty")
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("response_type", string(domain.ResponseTypeJSON))
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("retry.count", 0)
	v.SetDefault("retry.wait", 100*time.Millisecond)
	v.SetDefault("retry.max_wait", 2*time.Second)
	v.SetDefault("rate_limit.requests_per_second", 0.0)
	v.SetDefault("rate_limit.burst", 1)
	v.SetDefault("insecure_skip_verify", false)
	v.SetDefault("legacy.app_name", "")
	v.SetDefault("legacy.app_version", "")
	v.SetDefault("envelope.enabled", false)
	v.SetDefault("envelope.code_field", "code")
	v.SetDefault("envelope.message_field", "message")
	v.SetDefault("envelope.data_field", "data")
	v.SetDefault("envelope.success_code", 0)
	v.SetDefault("envelope.unauthorized_codes", []int{401, 403})
	v.SetDefault("log_level", "info")
}

// Load reads the env file, then the config file, then the environment into v.
// Command line flags bound to v before the call take precedence over all of them.
// A nil v gets a fresh instance.
func Load(v *viper.Viper, opts Options) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, opts); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigurationError("config_format", v.ConfigFileUsed(), "failed to unmarshal config", err)
	}
	if cfg.Headers == nil {
		cfg.Headers = map[string]string{}
	}

	return &cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return errors.NewConfigurationError("env_file", path, "failed to load env file", err)
	}
	return nil
}

func readConfigFile(v *viper.Viper, opts Options) error {
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.NewConfigurationError("config_path", opts.ConfigFile, "failed to read config file", err)
		}
		return nil
	}

	dir := opts.ConfigDir
	if dir == "" {
		var err error
		if dir, err = DefaultConfigDir(); err != nil {
			return errors.NewConfigurationError("config_path", "", "failed to locate config directory", err)
		}
	}

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigurationError("config_path", dir, "failed to read config file", err)
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := domain.ParseInstanceType(c.Instance); err != nil {
		return errors.NewConfigurationError("instance", c.Instance, "unsupported instance type", err)
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.NewValidationError("base_url", c.BaseURL, "absolute_http_url",
				"base_url must be an absolute http or https URL")
		}
	}

	if !domain.ResponseType(c.ResponseType).IsValid() {
		return errors.NewValidationError("response_type", c.ResponseType, "supported_values",
			fmt.Sprintf("response_type must be one of: %s", domain.SupportedResponseTypes()))
	}

	if c.Timeout < 0 {
		return errors.NewValidationError("timeout", c.Timeout.String(), "non_negative", "timeout must not be negative")
	}

	if c.Retry.Count < 0 {
		return errors.NewValidationError("retry.count", fmt.Sprint(c.Retry.Count), "non_negative",
			"retry count must not be negative")
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.NewValidationError("rate_limit",
			fmt.Sprintf("%g/%d", c.RateLimit.RequestsPerSecond, c.RateLimit.Burst), "non_negative",
			"rate limit values must not be negative")
	}

	return nil
}

// InstanceType returns the configured transport. Call Validate first.
func (c *Config) InstanceType() domain.InstanceType {
	t, _ := domain.ParseInstanceType(c.Instance)
	return t
}

// ToBaseConfig maps the settings onto the transport base configuration.
func (c *Config) ToBaseConfig() domain.BaseConfig {
	return domain.BaseConfig{
		BaseURL:      c.BaseURL,
		Headers:      maps.Clone(c.Headers),
		ResponseType: domain.ResponseType(c.ResponseType),
		Timeout:      c.Timeout,
		Retry: domain.RetryConfig{
			Count:   c.Retry.Count,
			Wait:    c.Retry.Wait,
			MaxWait: c.Retry.MaxWait,
		},
		RateLimit: domain.RateLimitConfig{
			RequestsPerSecond: c.RateLimit.RequestsPerSecond,
			Burst:             c.RateLimit.Burst,
		},
		InsecureSkipVerify: c.InsecureSkipVerify,
		Navigator: domain.Navigator{
			AppName:    c.Legacy.AppName,
			AppVersion: c.Legacy.AppVersion,
		},
	}
}
