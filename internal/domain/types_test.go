package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallType_Flags(t *testing.T) {
	tests := []struct {
		callType     CallType
		needsToken   bool
		needsLoading bool
	}{
		{CallTypeDefault, false, false},
		{CallTypeToken, true, false},
		{CallTypeLoading, false, true},
		{CallTypeTokenLoading, true, true},
		{CallType(7), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.callType.String(), func(t *testing.T) {
			assert.Equal(t, tt.needsToken, tt.callType.NeedsToken())
			assert.Equal(t, tt.needsLoading, tt.callType.NeedsLoading())
		})
	}
}

func TestCallTypeOf(t *testing.T) {
	assert.Equal(t, CallTypeDefault, CallTypeOf(false, false))
	assert.Equal(t, CallTypeToken, CallTypeOf(true, false))
	assert.Equal(t, CallTypeLoading, CallTypeOf(false, true))
	assert.Equal(t, CallTypeTokenLoading, CallTypeOf(true, true))
}

func TestParseInstanceType(t *testing.T) {
	tests := []struct {
		input    string
		expected InstanceType
	}{
		{"", InstanceResty},
		{"resty", InstanceResty},
		{" Native ", InstanceNative},
		{"BARE", InstanceBare},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInstanceType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseInstanceType("axios")
	assert.Error(t, err)
}

func TestInstanceType_String(t *testing.T) {
	assert.Equal(t, "resty", InstanceResty.String())
	assert.Equal(t, "native", InstanceNative.String())
	assert.Equal(t, "bare", InstanceBare.String())
	assert.Equal(t, "InstanceType(9)", InstanceType(9).String())
}

func TestResponseType_IsValid(t *testing.T) {
	for _, rt := range []ResponseType{
		ResponseTypeXML, ResponseTypeHTML, ResponseTypeText, ResponseTypeScript,
		ResponseTypeJSON, ResponseTypeJSONP, ResponseTypeBlob,
	} {
		assert.True(t, rt.IsValid(), rt)
	}
	assert.False(t, ResponseType("yaml").IsValid())
	assert.False(t, ResponseType("").IsValid())
	assert.Contains(t, SupportedResponseTypes(), "blob")
}

func TestRequestConfig_Headers(t *testing.T) {
	var cfg RequestConfig
	assert.Equal(t, "", cfg.Header("X-Missing"))

	cfg.SetHeader("X-Test", "1")
	assert.Equal(t, "1", cfg.Header("X-Test"))
}
