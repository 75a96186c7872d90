// Package commands implements the operations behind the courier CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"courier/internal/adapters/restyhttp"
	"courier/internal/domain"
	"courier/internal/errors"
)

// Request kinds accepted by RequestCommand.
const (
	KindGet      = "get"
	KindPost     = "post"
	KindPostJSON = "post-json"
)

// RequestCommand sends one call through a transport.
type RequestCommand struct {
	handler domain.Handler
	logger  *slog.Logger
}

// NewRequestCommand creates a new request command.
func NewRequestCommand(handler domain.Handler, logger *slog.Logger) *RequestCommand {
	return &RequestCommand{
		handler: handler,
		logger:  logger,
	}
}

// RequestRequest contains the parameters for one call.
type RequestRequest struct {
	Kind     string
	URL      string
	Data     any
	CallType domain.CallType

	// Optional per-call overrides. Setting either routes the call through Invoke.
	ResponseType domain.ResponseType
	Timeout      time.Duration
}

// RequestResult contains the outcome of one call.
type RequestResult struct {
	Value   any
	Elapsed time.Duration
}

// Execute runs the request command.
func (c *RequestCommand) Execute(ctx context.Context, req RequestRequest) (*RequestResult, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, errors.NewValidationError("url", req.URL, "required", "URL is required")
	}

	started := time.Now()
	c.logger.DebugContext(ctx, "Sending request",
		"kind", req.Kind,
		"url", req.URL,
		"callType", req.CallType.String())

	value, err := c.dispatch(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &RequestResult{Value: value, Elapsed: time.Since(started)}
	c.logger.DebugContext(ctx, "Request completed", "url", req.URL, "elapsed", result.Elapsed)
	return result, nil
}

func (c *RequestCommand) dispatch(ctx context.Context, req RequestRequest) (any, error) {
	if req.ResponseType == "" && req.Timeout == 0 {
		switch req.Kind {
		case KindGet:
			return c.handler.Get(ctx, req.URL, req.Data, req.CallType)
		case KindPost:
			return c.handler.Post(ctx, req.URL, req.Data, req.CallType)
		case KindPostJSON:
			return c.handler.PostJSON(ctx, req.URL, req.Data, req.CallType)
		}
		return nil, unknownKind(req.Kind)
	}

	var (
		method      domain.Method
		contentType domain.ContentType
	)
	switch req.Kind {
	case KindGet:
		method, contentType = domain.MethodGet, domain.ContentTypeForm
	case KindPost:
		method, contentType = domain.MethodPost, domain.ContentTypeForm
	case KindPostJSON:
		method, contentType = domain.MethodPost, domain.ContentTypeJSON
	default:
		return nil, unknownKind(req.Kind)
	}

	cfg, err := restyhttp.NewRequestConfig(req.URL, method, contentType, req.Data)
	if err != nil {
		return nil, err
	}
	cfg.ResponseType = req.ResponseType
	cfg.Timeout = req.Timeout
	return c.handler.Invoke(ctx, cfg, req.CallType)
}

func unknownKind(kind string) error {
	return errors.NewValidationError("kind", kind, "supported_values",
		fmt.Sprintf("request kind must be one of: %s, %s, %s", KindGet, KindPost, KindPostJSON))
}

// ParseFields turns key=value pairs into a payload. Repeated keys collect into a list.
func ParseFields(fields []string) (map[string]any, error) {
	if len(fields) == 0 {
		return nil, nil
	}

	payload := make(map[string]any, len(fields))
	for _, field := range fields {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return nil, errors.NewValidationError("data", field, "key_value", "data must be in key=value form")
		}

		switch existing := payload[key].(type) {
		case nil:
			payload[key] = value
		case string:
			payload[key] = []string{existing, value}
		case []string:
			payload[key] = append(existing, value)
		}
	}
	return payload, nil
}

// ParseJSON decodes a JSON payload given on the command line.
func ParseJSON(raw string) (any, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, errors.NewValidationError("json", raw, "valid_json", fmt.Sprintf("invalid JSON payload: %v", err))
	}
	return payload, nil
}

// WriteResult prints a call result: raw bytes and strings as is, everything else as indented JSON.
func WriteResult(w io.Writer, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		_, err := w.Write(v)
		return err
	case string:
		_, err := fmt.Fprintln(w, v)
		return err
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
