package testutil

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger := Logger()
	require.NotNil(t, logger)
}

func TestJSONServer(t *testing.T) {
	srv := JSONServer(t, http.StatusTeapot, `{"ok":true}`)

	resp, err := http.Get(srv.URL) //nolint:noctx // test helper check
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"ok":true}`, string(body))
}
