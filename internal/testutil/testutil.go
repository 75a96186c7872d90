// Package testutil provides test utilities shared across courier packages.
package testutil

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"courier/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// JSONServer starts a server that answers every request with status and body
// as application/json. The server is closed on test cleanup.
func JSONServer(t testing.TB, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// Server starts a server with a custom handler, closed on test cleanup.
func Server(t testing.TB, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}
