// Package credentials persists the bearer token used by token calls.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"courier/internal/domain"
)

const (
	dirPermissions  = 0o700 // Owner-only access for security
	filePermissions = 0o600 // Read/write owner only
	fileVersion     = "1"
)

// File is the on-disk layout of the credential file.
type File struct {
	Version   string    `yaml:"version"`
	Token     string    `yaml:"token,omitempty"`
	UpdatedAt time.Time `yaml:"updatedAt,omitempty"`
}

var _ domain.CredentialStore = (*Store)(nil)

// Store keeps the current token in memory and mirrors every change to disk.
type Store struct {
	fs     domain.FileSystem
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	file File
}

// DefaultPath returns ~/.config/courier/credentials.yaml.
func DefaultPath(fs domain.FileSystem) (string, error) {
	homeDir, err := fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "courier", "credentials.yaml"), nil
}

// NewStore creates the credential directory if needed and loads any existing file.
// A missing file yields an empty store.
func NewStore(fs domain.FileSystem, path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		fs:     fs,
		path:   path,
		logger: logger,
		file:   File{Version: fileVersion},
	}

	if err := fs.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	if err := s.Load(context.Background()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory state with the file contents.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.DebugContext(ctx, "Credentials file does not exist", "path", s.path)
			return os.ErrNotExist
		}
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	if file.Version == "" {
		file.Version = fileVersion
	}

	s.mu.Lock()
	s.file = file
	s.mu.Unlock()

	s.logger.DebugContext(ctx, "Credentials loaded", "path", s.path, "hasToken", file.Token != "")
	return nil
}

// Token returns the stored token, or "" when none is set.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file.Token
}

// UpdatedAt returns when the token last changed.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file.UpdatedAt
}

// SetToken stores token and saves the file. The in-memory state is rolled back on failure.
func (s *Store) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token must not be empty")
	}
	return s.update(ctx, File{Version: fileVersion, Token: token, UpdatedAt: time.Now().UTC()})
}

// Clear forgets the token and saves the file.
func (s *Store) Clear(ctx context.Context) error {
	return s.update(ctx, File{Version: fileVersion})
}

func (s *Store) update(ctx context.Context, next File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.file
	s.file = next

	if err := s.save(ctx); err != nil {
		s.file = previous // Rollback
		return err
	}
	return nil
}

// save writes the current state. Callers hold s.mu.
func (s *Store) save(ctx context.Context) error {
	data, err := yaml.Marshal(s.file)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := s.fs.WriteFile(s.path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	s.logger.DebugContext(ctx, "Credentials saved", "path", s.path)
	return nil
}
