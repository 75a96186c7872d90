package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"courier/internal/commands"
	"courier/internal/domain"
	"courier/internal/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern for flag variables
var (
	dataFields   []string
	jsonBody     string
	responseType string
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var getCmd = &cobra.Command{
	Use:   "get URL",
	Short: "Send a GET request",
	Long:  `Send a GET request. Data given with -d key=value becomes the query string.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRequest(commands.KindGet),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var postCmd = &cobra.Command{
	Use:   "post URL",
	Short: "Send a form encoded POST request",
	Long:  `Send a POST request. Data given with -d key=value is sent as a URL-encoded form.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRequest(commands.KindPost),
}

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var postJSONCmd = &cobra.Command{
	Use:   "post-json URL",
	Short: "Send a JSON POST request",
	Long:  `Send a POST request with the JSON document given by --json as the body.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRequest(commands.KindPostJSON),
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	for _, c := range []*cobra.Command{getCmd, postCmd} {
		c.Flags().StringArrayVarP(&dataFields, "data", "d", nil, "key=value pair, repeatable")
	}
	postJSONCmd.Flags().StringVar(&jsonBody, "json", "", "JSON document to send")

	for _, c := range []*cobra.Command{getCmd, postCmd, postJSONCmd} {
		c.Flags().StringVar(&responseType, "response-type", "",
			"override the configured response type ("+domain.SupportedResponseTypes()+")")
		rootCmd.AddCommand(c)
	}
}

func runRequest(kind string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := GetApp()
		if err != nil {
			return err
		}

		handler, err := a.Handler()
		if err != nil {
			return err
		}

		var data any
		if kind == commands.KindPostJSON {
			data, err = commands.ParseJSON(jsonBody)
		} else {
			data, err = commands.ParseFields(dataFields)
		}
		if err != nil {
			return err
		}

		rt, err := selectedResponseType()
		if err != nil {
			return err
		}

		// Interrupts cancel the call through its context; the transport also drops its pending handle.
		if canceler, ok := handler.(domain.Canceler); ok {
			stop := context.AfterFunc(cmd.Context(), func() {
				if canceler.CancelPending() {
					a.Logger.Info("Cancelled pending call", "url", args[0])
				}
			})
			defer stop()
		}

		requestCommand := commands.NewRequestCommand(handler, a.Logger)
		result, err := requestCommand.Execute(cmd.Context(), commands.RequestRequest{
			Kind:         kind,
			URL:          args[0],
			Data:         data,
			CallType:     domain.CallTypeOf(withToken, withLoading),
			ResponseType: rt,
			Timeout:      callTimeout,
		})
		if err != nil {
			return fmt.Errorf("%s %s: %w", kind, args[0], err)
		}

		return commands.WriteResult(cmd.OutOrStdout(), result.Value)
	}
}

func selectedResponseType() (domain.ResponseType, error) {
	if rawOutput {
		return domain.ResponseTypeBlob, nil
	}
	if responseType == "" {
		return "", nil
	}
	rt := domain.ResponseType(responseType)
	if !rt.IsValid() {
		return "", errors.NewValidationError("response-type", responseType, "supported_values",
			"response type must be one of: "+domain.SupportedResponseTypes())
	}
	return rt, nil
}
