package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"courier/internal/app"
	"courier/internal/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile string
	envFile string
	verbose bool

	instance    string
	withToken   bool
	withLoading bool
	rawOutput   bool
	callTimeout time.Duration

	application *app.App
	appErr      error
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance or the error that prevented it.
func GetApp() (*app.App, error) {
	if appErr != nil {
		return nil, appErr
	}
	if application == nil {
		return nil, stderrors.New("application not initialized")
	}
	return application, nil
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "courier",
	Short: "A CLI tool for sending HTTP calls through pluggable transports",
	Long: `Courier sends GET, form POST and JSON POST calls through a configurable
transport, attaching stored bearer tokens and showing a loading indicator on request.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		stop()
		os.Exit(1)
	}
}

// describeError appends the response detail to the generic rejection message.
func describeError(err error) string {
	var httpErr *errors.HTTPError
	if stderrors.As(err, &httpErr) {
		return fmt.Sprintf("%v (%s)", err, httpErr.Detail())
	}
	return err.Error()
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/courier/config.yaml)")
	flags.StringVar(&envFile, "env-file", "", "env file to load (default is ./.env when present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&instance, "instance", "", "transport to use: resty, native or bare")
	flags.BoolVar(&withToken, "token", false, "Attach the stored bearer token")
	flags.BoolVar(&withLoading, "loading", false, "Show a loading indicator while the call runs")
	flags.BoolVar(&rawOutput, "raw", false, "Write the response body as raw bytes")
	flags.DurationVar(&callTimeout, "timeout", 0, "Per-call timeout (overrides the configured timeout)")
}

func initConfig() {
	application, appErr = nil, nil

	v := viper.New()
	if err := v.BindPFlag("instance", rootCmd.PersistentFlags().Lookup("instance")); err != nil {
		appErr = err
		return
	}

	opts := []app.Option{
		app.WithViper(v),
		app.WithConfigFile(cfgFile),
		app.WithEnvFile(envFile),
		app.WithUserAgent("courier/" + versionInfo.Version),
	}
	if verbose {
		opts = append(opts, app.WithVerbose(true))
	}

	// Initialize the application with dependency injection
	application, appErr = app.NewApp(context.Background(), opts...)
}
