package domain

import (
	"context"
	"time"
)

// RequestConfig is the outgoing configuration of a single call.
// Request and token hooks receive it by pointer and may mutate it in place.
type RequestConfig struct {
	URL     string
	Method  Method
	Headers map[string]string

	// Params becomes the query string. Used for GET.
	Params any

	// Data is the request body, already encoded for form posts.
	Data any

	// ResponseType overrides the transport default for this call.
	ResponseType ResponseType

	// Timeout overrides the transport default for this call when non-zero.
	Timeout time.Duration
}

// SetHeader sets a header, allocating the map when needed.
func (rc *RequestConfig) SetHeader(key, value string) {
	if rc.Headers == nil {
		rc.Headers = make(map[string]string)
	}
	rc.Headers[key] = value
}

// Header returns a header value, or "" when unset.
func (rc *RequestConfig) Header(key string) string {
	if rc.Headers == nil {
		return ""
	}
	return rc.Headers[key]
}

// RetryConfig controls the underlying client's retry policy.
type RetryConfig struct {
	Count   int
	Wait    time.Duration
	MaxWait time.Duration
}

// RateLimitConfig caps outgoing requests. Zero RequestsPerSecond disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Navigator describes the runtime a transport believes it runs in.
// Only used for the legacy browser compatibility path.
type Navigator struct {
	AppName    string
	AppVersion string
}

// BaseConfig is the configuration shared by every call made through a transport.
// It is fixed at construction.
type BaseConfig struct {
	BaseURL            string
	Headers            map[string]string
	ResponseType       ResponseType
	Timeout            time.Duration
	Retry              RetryConfig
	RateLimit          RateLimitConfig
	InsecureSkipVerify bool
	Navigator          Navigator
}

// Handler is the uniform calling interface every transport satisfies.
type Handler interface {
	// Invoke sends a fully built request.
	Invoke(ctx context.Context, cfg *RequestConfig, callType CallType) (any, error)

	// Get sends data as query parameters.
	Get(ctx context.Context, url string, data any, callType CallType) (any, error)

	// Post sends data as a URL-encoded form.
	Post(ctx context.Context, url string, data any, callType CallType) (any, error)

	// PostJSON sends data as a JSON body.
	PostJSON(ctx context.Context, url string, data any, callType CallType) (any, error)
}

// Canceler is implemented by transports that can abort their most recent call.
type Canceler interface {
	CancelPending() bool
}
