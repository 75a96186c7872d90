package domain

import (
	"fmt"
	"strings"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodHead    Method = "HEAD"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// ContentType is the request body encoding advertised in Content-Type.
type ContentType string

const (
	ContentTypeForm     ContentType = "application/x-www-form-urlencoded; charset=UTF-8"
	ContentTypeJSON     ContentType = "application/json; charset=UTF-8"
	ContentTypeFormData ContentType = "multipart/form-data"
)

// ResponseType tells a transport how to shape the response payload.
type ResponseType string

const (
	ResponseTypeXML    ResponseType = "xml"
	ResponseTypeHTML   ResponseType = "html"
	ResponseTypeText   ResponseType = "text"
	ResponseTypeScript ResponseType = "script"
	ResponseTypeJSON   ResponseType = "json"
	ResponseTypeJSONP  ResponseType = "jsonp"

	// ResponseTypeBlob returns the raw body and skips the response hook.
	ResponseTypeBlob ResponseType = "blob"
)

//nolint:gochecknoglobals // Package-level lookup for response type validation
var responseTypes = []ResponseType{
	ResponseTypeXML,
	ResponseTypeHTML,
	ResponseTypeText,
	ResponseTypeScript,
	ResponseTypeJSON,
	ResponseTypeJSONP,
	ResponseTypeBlob,
}

// IsValid reports whether rt is a known response type.
func (rt ResponseType) IsValid() bool {
	for _, known := range responseTypes {
		if rt == known {
			return true
		}
	}
	return false
}

// SupportedResponseTypes returns a comma separated list of response types.
func SupportedResponseTypes() string {
	names := make([]string, 0, len(responseTypes))
	for _, rt := range responseTypes {
		names = append(names, string(rt))
	}
	return strings.Join(names, ", ")
}

// CallType selects which optional hooks fire for a single call.
type CallType int

const (
	CallTypeDefault      CallType = 0
	CallTypeToken        CallType = 1
	CallTypeLoading      CallType = 2
	CallTypeTokenLoading CallType = 3
)

// NeedsToken reports whether the token hook should run.
func (c CallType) NeedsToken() bool {
	return c == CallTypeToken || c == CallTypeTokenLoading
}

// NeedsLoading reports whether the loading hook should run.
func (c CallType) NeedsLoading() bool {
	return c == CallTypeLoading || c == CallTypeTokenLoading
}

// CallTypeOf builds a call type from its two flags.
func CallTypeOf(token, loading bool) CallType {
	var c CallType
	if token {
		c |= CallTypeToken
	}
	if loading {
		c |= CallTypeLoading
	}
	return c
}

func (c CallType) String() string {
	switch c {
	case CallTypeDefault:
		return "default"
	case CallTypeToken:
		return "token"
	case CallTypeLoading:
		return "loading"
	case CallTypeTokenLoading:
		return "token+loading"
	default:
		return fmt.Sprintf("CallType(%d)", int(c))
	}
}

// InstanceType selects the concrete transport a factory builds.
type InstanceType int

const (
	// InstanceResty is the full resty-backed transport.
	InstanceResty InstanceType = 0
	// InstanceNative is the placeholder for a net/http-backed transport.
	InstanceNative InstanceType = 1
	// InstanceBare is the resty transport without any hooks.
	InstanceBare InstanceType = 2
)

func (t InstanceType) String() string {
	switch t {
	case InstanceResty:
		return "resty"
	case InstanceNative:
		return "native"
	case InstanceBare:
		return "bare"
	default:
		return fmt.Sprintf("InstanceType(%d)", int(t))
	}
}

// ParseInstanceType maps a configuration value to an InstanceType.
func ParseInstanceType(s string) (InstanceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "resty":
		return InstanceResty, nil
	case "native":
		return InstanceNative, nil
	case "bare":
		return InstanceBare, nil
	default:
		return 0, fmt.Errorf("unknown instance type %q (want resty, native or bare)", s)
	}
}
