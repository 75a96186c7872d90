// Package mocks holds testify mocks for the hook interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"courier/internal/domain"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockRequestHook is a mock type for the RequestHook type.
type MockRequestHook struct {
	mock.Mock
}

// NewMockRequestHook creates a new MockRequestHook and asserts its expectations on cleanup.
func NewMockRequestHook(t testingT) *MockRequestHook {
	m := &MockRequestHook{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// HandleRequest provides a mock function.
func (m *MockRequestHook) HandleRequest(ctx context.Context, cfg *domain.RequestConfig) error {
	ret := m.Called(ctx, cfg)
	return ret.Error(0)
}

// MockResponseHook is a mock type for the ResponseHook type.
type MockResponseHook struct {
	mock.Mock
}

// NewMockResponseHook creates a new MockResponseHook and asserts its expectations on cleanup.
func NewMockResponseHook(t testingT) *MockResponseHook {
	m := &MockResponseHook{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// HandleResponse provides a mock function.
func (m *MockResponseHook) HandleResponse(ctx context.Context, result any, clearToken func()) (any, error) {
	ret := m.Called(ctx, result, clearToken)
	return ret.Get(0), ret.Error(1)
}

// MockTokenHook is a mock type for the TokenHook type.
type MockTokenHook struct {
	mock.Mock
}

// NewMockTokenHook creates a new MockTokenHook and asserts its expectations on cleanup.
func NewMockTokenHook(t testingT) *MockTokenHook {
	m := &MockTokenHook{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetToken provides a mock function.
func (m *MockTokenHook) GetToken(ctx context.Context, cfg *domain.RequestConfig) error {
	ret := m.Called(ctx, cfg)
	return ret.Error(0)
}

// ClearToken provides a mock function.
func (m *MockTokenHook) ClearToken() {
	m.Called()
}

// MockLoadingHook is a mock type for the LoadingHook type.
type MockLoadingHook struct {
	mock.Mock
}

// NewMockLoadingHook creates a new MockLoadingHook and asserts its expectations on cleanup.
func NewMockLoadingHook(t testingT) *MockLoadingHook {
	m := &MockLoadingHook{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ShowLoading provides a mock function.
func (m *MockLoadingHook) ShowLoading() {
	m.Called()
}

// HideLoading provides a mock function.
func (m *MockLoadingHook) HideLoading() {
	m.Called()
}
