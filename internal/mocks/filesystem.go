package mocks

import (
	"os"

	"github.com/stretchr/testify/mock"
)

// MockFileSystem is a mock type for the FileSystem type.
type MockFileSystem struct {
	mock.Mock
}

// NewMockFileSystem creates a new MockFileSystem and asserts its expectations on cleanup.
func NewMockFileSystem(t testingT) *MockFileSystem {
	m := &MockFileSystem{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// ReadFile provides a mock function.
func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	ret := m.Called(path)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Error(1)
}

// WriteFile provides a mock function.
func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	ret := m.Called(path, data, perm)
	return ret.Error(0)
}

// MkdirAll provides a mock function.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	ret := m.Called(path, perm)
	return ret.Error(0)
}

// Remove provides a mock function.
func (m *MockFileSystem) Remove(path string) error {
	ret := m.Called(path)
	return ret.Error(0)
}

// UserHomeDir provides a mock function.
func (m *MockFileSystem) UserHomeDir() (string, error) {
	ret := m.Called()
	return ret.String(0), ret.Error(1)
}
