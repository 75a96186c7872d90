package domain

import (
	"context"
	"time"
)

// CredentialStore persists the bearer token used by token calls.
type CredentialStore interface {
	Token() string
	UpdatedAt() time.Time
	Path() string
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SecretReader reads a secret from the user without echoing it.
type SecretReader interface {
	ReadSecret(ctx context.Context, prompt string) (string, error)
	IsInteractive() bool
}
