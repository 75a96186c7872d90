package restyhttp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"courier/internal/domain"
	"courier/internal/errors"
	"courier/internal/mocks"
	"courier/internal/testutil"
)

// Test helper to create a Transport pointed at a test server.
func newTestTransport(baseURL string, hooks domain.Hooks) *Transport {
	return New(domain.BaseConfig{BaseURL: baseURL}, hooks, testutil.Logger())
}

// recorder implements every hook and records the order they fire in.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) ShowLoading() { r.add("show") }
func (r *recorder) HideLoading() { r.add("hide") }
func (r *recorder) ClearToken()  { r.add("clear") }

func (r *recorder) HandleRequest(_ context.Context, _ *domain.RequestConfig) error {
	r.add("request")
	return nil
}

func (r *recorder) GetToken(_ context.Context, cfg *domain.RequestConfig) error {
	r.add("token")
	cfg.SetHeader("Authorization", "Bearer secret")
	return nil
}

func (r *recorder) HandleResponse(_ context.Context, result any, _ func()) (any, error) {
	r.add("response")
	return result, nil
}

func (r *recorder) hooks() domain.Hooks {
	return domain.Hooks{Request: r, Response: r, Token: r, Loading: r}
}

func TestNew_Defaults(t *testing.T) {
	tr := New(domain.BaseConfig{}, domain.Hooks{}, testutil.Logger())

	assert.Equal(t, DefaultTimeout, tr.Base().Timeout)
	assert.Equal(t, domain.ResponseTypeJSON, tr.Base().ResponseType)
	assert.False(t, tr.legacy)
	assert.Nil(t, tr.limiter)
}

func TestNew_KeepsExplicitBase(t *testing.T) {
	tr := New(domain.BaseConfig{
		Timeout:      5 * time.Second,
		ResponseType: domain.ResponseTypeText,
		RateLimit:    domain.RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
	}, domain.Hooks{}, testutil.Logger())

	assert.Equal(t, 5*time.Second, tr.Base().Timeout)
	assert.Equal(t, domain.ResponseTypeText, tr.Base().ResponseType)
	require.NotNil(t, tr.limiter)
	assert.Equal(t, 20, tr.limiter.Burst())
}

func TestTransport_Get_QueryParams(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": []}`))
	})

	tr := newTestTransport(srv.URL, domain.Hooks{})
	result, err := tr.Get(context.Background(), "/api/items", map[string]any{"page": 1}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"items": []any{}}, result)
}

func TestTransport_Post_FormEncoded(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "name=a", string(body))
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded"))

		_, _ = w.Write([]byte(`{"created": true}`))
	})

	requestHook := mocks.NewMockRequestHook(t)
	requestHook.On("HandleRequest", mock.Anything, mock.MatchedBy(func(cfg *domain.RequestConfig) bool {
		return cfg.Data == "name=a" && cfg.Method == domain.MethodPost
	})).Return(nil).Once()

	tr := newTestTransport(srv.URL, domain.Hooks{Request: requestHook})
	result, err := tr.Post(context.Background(), "/api/items", map[string]any{"name": "a"}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"created": true}, result)
}

func TestTransport_PostJSON_Body(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))

		var payload map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]any{"name": "a"}, payload)

		_, _ = w.Write([]byte(`{"id": 1}`))
	})

	tr := newTestTransport(srv.URL, domain.Hooks{})
	result, err := tr.PostJSON(context.Background(), "/api/items", map[string]any{"name": "a"}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1)}, result)
}

func TestTransport_PostJSON_ResponseHookMerges(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{"id": 1}`)

	merge := domain.ResponseHookFunc(func(_ context.Context, result any, _ func()) (any, error) {
		merged := map[string]any{"ok": true}
		for k, v := range result.(map[string]any) {
			merged[k] = v
		}
		return merged, nil
	})

	tr := newTestTransport(srv.URL, domain.Hooks{Response: merge})
	result, err := tr.PostJSON(context.Background(), "/api/items", map[string]any{"name": "a"}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": float64(1), "ok": true}, result)
}

func TestTransport_NoResponseHook_ReturnsRawPayload(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{"nested": {"a": [1, 2]}, "s": "x"}`)

	tr := newTestTransport(srv.URL, domain.Hooks{})
	result, err := tr.Invoke(context.Background(), &domain.RequestConfig{URL: "/"}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"nested": map[string]any{"a": []any{float64(1), float64(2)}},
		"s":      "x",
	}, result)
}

func TestTransport_Non200Rejects(t *testing.T) {
	statuses := []int{
		http.StatusCreated,
		http.StatusAccepted,
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusNotFound,
		http.StatusInternalServerError,
	}

	for _, status := range statuses {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := testutil.JSONServer(t, status, `{"items": [1, 2, 3]}`)

			// No expectations: the response hook must not run.
			responseHook := mocks.NewMockResponseHook(t)

			tr := newTestTransport(srv.URL, domain.Hooks{Response: responseHook})
			result, err := tr.Get(context.Background(), "/api/items", nil, domain.CallTypeDefault)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, "Exceptional data", err.Error())
			assert.True(t, errors.IsExceptionalData(err))
			assert.True(t, errors.IsHTTPStatus(err, status))
		})
	}
}

func TestTransport_BlobBypassesResponseHook(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0x00, 0x01, 0xfe})
	})

	responseHook := mocks.NewMockResponseHook(t)

	tr := newTestTransport(srv.URL, domain.Hooks{Response: responseHook})
	result, err := tr.Invoke(context.Background(), &domain.RequestConfig{
		URL:          "/download",
		ResponseType: domain.ResponseTypeBlob,
	}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0xfe}, result)
}

func TestTransport_TextResponseType(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{"a":1}`)

	tr := newTestTransport(srv.URL, domain.Hooks{})
	result, err := tr.Invoke(context.Background(), &domain.RequestConfig{
		URL:          "/",
		ResponseType: domain.ResponseTypeText,
	}, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, result)
}

func TestTransport_NonJSONBodyFallsBackToText(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain words"))
	})

	tr := newTestTransport(srv.URL, domain.Hooks{})
	result, err := tr.Get(context.Background(), "/", nil, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, "plain words", result)
}

func TestTransport_LoadingHook(t *testing.T) {
	tests := []struct {
		name        string
		callType    domain.CallType
		wantLoading bool
	}{
		{"default", domain.CallTypeDefault, false},
		{"token", domain.CallTypeToken, false},
		{"loading", domain.CallTypeLoading, true},
		{"token and loading", domain.CallTypeTokenLoading, true},
	}

	outcomes := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"success", http.StatusOK, false},
		{"failure", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		for _, outcome := range outcomes {
			t.Run(tt.name+"/"+outcome.name, func(t *testing.T) {
				srv := testutil.JSONServer(t, outcome.status, `{}`)

				loading := mocks.NewMockLoadingHook(t)
				if tt.wantLoading {
					loading.On("ShowLoading").Return().Once()
					loading.On("HideLoading").Return().Once()
				}

				tr := newTestTransport(srv.URL, domain.Hooks{Loading: loading})
				_, err := tr.Get(context.Background(), "/", nil, tt.callType)

				if outcome.wantErr {
					require.Error(t, err)
				} else {
					require.NoError(t, err)
				}
			})
		}
	}
}

func TestTransport_LoadingHook_NetworkFailure(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{}`)
	srv.Close()

	loading := mocks.NewMockLoadingHook(t)
	loading.On("ShowLoading").Return().Once()
	loading.On("HideLoading").Return().Once()

	tr := newTestTransport(srv.URL, domain.Hooks{Loading: loading})
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeLoading)

	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.False(t, errors.IsExceptionalData(err))
}

func TestTransport_HookOrder(t *testing.T) {
	rec := &recorder{}
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		rec.add("network")
		_, _ = w.Write([]byte(`{}`))
	})

	tr := newTestTransport(srv.URL, rec.hooks())
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeTokenLoading)

	require.NoError(t, err)
	assert.Equal(t, []string{"show", "request", "token", "network", "hide", "response"}, rec.Events())
}

func TestTransport_DefaultCallTypeSkipsTokenAndLoading(t *testing.T) {
	rec := &recorder{}
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	})

	tr := newTestTransport(srv.URL, rec.hooks())
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, []string{"request", "response"}, rec.Events())
}

func TestTransport_ResponseHookReceivesClearToken(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{"code": 401}`)

	token := mocks.NewMockTokenHook(t)
	token.On("ClearToken").Return().Once()

	onAuthFailure := domain.ResponseHookFunc(func(_ context.Context, result any, clearToken func()) (any, error) {
		require.NotNil(t, clearToken)
		clearToken()
		return nil, errors.ErrUnauthorized
	})

	tr := newTestTransport(srv.URL, domain.Hooks{Response: onAuthFailure, Token: token})
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeDefault)

	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestTransport_ResponseHookWithoutTokenHook(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{}`)

	responseHook := mocks.NewMockResponseHook(t)
	responseHook.On("HandleResponse", mock.Anything, map[string]any{}, mock.MatchedBy(func(clear func()) bool {
		return clear == nil
	})).Return("shaped", nil).Once()

	tr := newTestTransport(srv.URL, domain.Hooks{Response: responseHook})
	result, err := tr.Get(context.Background(), "/", nil, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.Equal(t, "shaped", result)
}

func TestTransport_RequestHookFailure(t *testing.T) {
	hit := false
	srv := testutil.Server(t, func(w http.ResponseWriter, _ *http.Request) {
		hit = true
		w.WriteHeader(http.StatusOK)
	})

	hookErr := stderrors.New("signing failed")
	requestHook := mocks.NewMockRequestHook(t)
	requestHook.On("HandleRequest", mock.Anything, mock.Anything).Return(hookErr).Once()

	loading := mocks.NewMockLoadingHook(t)
	loading.On("ShowLoading").Return().Once()
	loading.On("HideLoading").Return().Once()

	tr := newTestTransport(srv.URL, domain.Hooks{Request: requestHook, Loading: loading})
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeLoading)

	require.ErrorIs(t, err, hookErr)
	assert.Equal(t, hookErr, err)
	assert.False(t, hit)
}

func TestTransport_TokenHookFailure(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{}`)

	tokenErr := stderrors.New("no token")
	token := mocks.NewMockTokenHook(t)
	token.On("GetToken", mock.Anything, mock.Anything).Return(tokenErr).Once()

	tr := newTestTransport(srv.URL, domain.Hooks{Token: token})
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeToken)

	assert.Equal(t, tokenErr, err)
}

func TestTransport_BaseHeaders(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "courier", r.Header.Get("X-Client"))
		assert.Equal(t, "override", r.Header.Get("X-Mode"))
		_, _ = w.Write([]byte(`{}`))
	})

	tr := New(domain.BaseConfig{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Client": "courier", "X-Mode": "base"},
	}, domain.Hooks{}, testutil.Logger())

	_, err := tr.Invoke(context.Background(), &domain.RequestConfig{
		URL:     "/",
		Headers: map[string]string{"X-Mode": "override"},
	}, domain.CallTypeDefault)

	require.NoError(t, err)
}

func TestTransport_PerCallTimeout(t *testing.T) {
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})

	tr := newTestTransport(srv.URL, domain.Hooks{})
	_, err := tr.Invoke(context.Background(), &domain.RequestConfig{
		URL:     "/slow",
		Timeout: 50 * time.Millisecond,
	}, domain.CallTypeDefault)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransport_CancelPending(t *testing.T) {
	received := make(chan struct{})
	srv := testutil.Server(t, func(w http.ResponseWriter, r *http.Request) {
		close(received)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})

	tr := newTestTransport(srv.URL, domain.Hooks{})
	assert.False(t, tr.CancelPending())

	errCh := make(chan error, 1)
	go func() {
		_, err := tr.Get(context.Background(), "/wait", nil, domain.CallTypeDefault)
		errCh <- err
	}()

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the request")
	}

	assert.True(t, tr.CancelPending())

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("call was not cancelled")
	}

	assert.False(t, tr.CancelPending())
}

func TestTransport_SettledCallClearsPending(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{}`)

	tr := newTestTransport(srv.URL, domain.Hooks{})
	_, err := tr.Get(context.Background(), "/", nil, domain.CallTypeDefault)

	require.NoError(t, err)
	assert.False(t, tr.CancelPending())
}

func TestTransport_ContextAlreadyCancelled(t *testing.T) {
	srv := testutil.JSONServer(t, http.StatusOK, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := newTestTransport(srv.URL, domain.Hooks{})
	_, err := tr.Get(ctx, "/", nil, domain.CallTypeDefault)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
