package nativehttp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/domain"
	"courier/internal/mocks"
	"courier/internal/testutil"
)

func TestTransport_ReturnsEmptyObject(t *testing.T) {
	// Hooks without expectations: none of them may fire.
	hooks := domain.Hooks{
		Request:  mocks.NewMockRequestHook(t),
		Response: mocks.NewMockResponseHook(t),
		Token:    mocks.NewMockTokenHook(t),
		Loading:  mocks.NewMockLoadingHook(t),
	}
	tr := New(domain.BaseConfig{BaseURL: "http://unreachable.invalid"}, hooks, testutil.Logger())
	ctx := context.Background()

	calls := map[string]func() (any, error){
		"get": func() (any, error) {
			return tr.Get(ctx, "/api/items", map[string]any{"page": 1}, domain.CallTypeTokenLoading)
		},
		"post": func() (any, error) {
			return tr.Post(ctx, "/api/items", map[string]any{"name": "a"}, domain.CallTypeDefault)
		},
		"postJson": func() (any, error) {
			return tr.PostJSON(ctx, "/api/items", []int{1}, domain.CallTypeLoading)
		},
		"invoke": func() (any, error) {
			return tr.Invoke(ctx, &domain.RequestConfig{URL: "/x", Method: domain.MethodDelete}, domain.CallTypeToken)
		},
		"invoke nil config": func() (any, error) {
			return tr.Invoke(ctx, nil, domain.CallTypeDefault)
		},
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			result, err := call()
			require.NoError(t, err)
			assert.Equal(t, map[string]any{}, result)
		})
	}
}

func TestTransport_CancelledContext(t *testing.T) {
	tr := New(domain.BaseConfig{}, domain.Hooks{}, testutil.Logger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Get(ctx, "/", nil, domain.CallTypeDefault)
	assert.ErrorIs(t, err, context.Canceled)
}
