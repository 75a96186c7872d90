package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"courier/internal/domain"
)

// MockHandler is a mock type for the Handler type.
type MockHandler struct {
	mock.Mock
}

// NewMockHandler creates a new MockHandler and asserts its expectations on cleanup.
func NewMockHandler(t testingT) *MockHandler {
	m := &MockHandler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Invoke provides a mock function.
func (m *MockHandler) Invoke(ctx context.Context, cfg *domain.RequestConfig, callType domain.CallType) (any, error) {
	ret := m.Called(ctx, cfg, callType)
	return ret.Get(0), ret.Error(1)
}

// Get provides a mock function.
func (m *MockHandler) Get(ctx context.Context, url string, data any, callType domain.CallType) (any, error) {
	ret := m.Called(ctx, url, data, callType)
	return ret.Get(0), ret.Error(1)
}

// Post provides a mock function.
func (m *MockHandler) Post(ctx context.Context, url string, data any, callType domain.CallType) (any, error) {
	ret := m.Called(ctx, url, data, callType)
	return ret.Get(0), ret.Error(1)
}

// PostJSON provides a mock function.
func (m *MockHandler) PostJSON(ctx context.Context, url string, data any, callType domain.CallType) (any, error) {
	ret := m.Called(ctx, url, data, callType)
	return ret.Get(0), ret.Error(1)
}

// MockCredentialStore is a mock type for the CredentialStore type.
type MockCredentialStore struct {
	mock.Mock
}

// NewMockCredentialStore creates a new MockCredentialStore and asserts its expectations on cleanup.
func NewMockCredentialStore(t testingT) *MockCredentialStore {
	m := &MockCredentialStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Token provides a mock function.
func (m *MockCredentialStore) Token() string {
	return m.Called().String(0)
}

// UpdatedAt provides a mock function.
func (m *MockCredentialStore) UpdatedAt() time.Time {
	ret := m.Called()
	updated, _ := ret.Get(0).(time.Time)
	return updated
}

// Path provides a mock function.
func (m *MockCredentialStore) Path() string {
	return m.Called().String(0)
}

// SetToken provides a mock function.
func (m *MockCredentialStore) SetToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// Clear provides a mock function.
func (m *MockCredentialStore) Clear(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockSecretReader is a mock type for the SecretReader type.
type MockSecretReader struct {
	mock.Mock
}

// NewMockSecretReader creates a new MockSecretReader and asserts its expectations on cleanup.
func NewMockSecretReader(t testingT) *MockSecretReader {
	m := &MockSecretReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ReadSecret provides a mock function.
func (m *MockSecretReader) ReadSecret(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

// IsInteractive provides a mock function.
func (m *MockSecretReader) IsInteractive() bool {
	return m.Called().Bool(0)
}
