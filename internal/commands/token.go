package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"courier/internal/domain"
	"courier/internal/errors"
)

// TokenCommand manages the stored bearer token.
type TokenCommand struct {
	store  domain.CredentialStore
	reader domain.SecretReader
	logger *slog.Logger
}

// NewTokenCommand creates a new token command.
func NewTokenCommand(store domain.CredentialStore, reader domain.SecretReader, logger *slog.Logger) *TokenCommand {
	return &TokenCommand{
		store:  store,
		reader: reader,
		logger: logger,
	}
}

// TokenStatus describes the stored token without revealing it.
type TokenStatus struct {
	Present   bool
	Masked    string
	UpdatedAt time.Time
	Path      string
}

// Set stores token. An empty token is read from the secret reader.
func (c *TokenCommand) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		read, err := c.reader.ReadSecret(ctx, "Token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = read
	}
	if token == "" {
		return errors.NewValidationError("token", "", "required", "token must not be empty")
	}

	if err := c.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	c.logger.InfoContext(ctx, "Token stored", "path", c.store.Path())
	return nil
}

// Clear removes the stored token.
func (c *TokenCommand) Clear(ctx context.Context) error {
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	c.logger.InfoContext(ctx, "Token cleared", "path", c.store.Path())
	return nil
}

// Show reports whether a token is stored.
func (c *TokenCommand) Show(_ context.Context) TokenStatus {
	token := c.store.Token()
	status := TokenStatus{Path: c.store.Path()}
	if token == "" {
		return status
	}
	status.Present = true
	status.Masked = MaskToken(token)
	status.UpdatedAt = c.store.UpdatedAt()
	return status
}

// MaskToken keeps the first four characters of long tokens and hides the rest.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}
