// Package terminal reads secrets from the controlling terminal.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"courier/internal/domain"
)

// TokenEnvVar supplies the token without a prompt (useful for CI/CD).
const TokenEnvVar = "COURIER_TOKEN"

// Adapter handles secret input from the terminal or a pipe.
type Adapter struct {
	stdin  io.Reader
	stderr io.Writer
}

var _ domain.SecretReader = (*Adapter)(nil)

// NewAdapter creates a new terminal adapter.
func NewAdapter(stdin io.Reader, stderr io.Writer) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stderr: stderr,
	}
}

// ReadSecret returns the token from COURIER_TOKEN, an echo-free terminal prompt,
// or the first line of piped input, in that order.
func (a *Adapter) ReadSecret(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if env := os.Getenv(TokenEnvVar); env != "" {
		return env, nil
	}

	if file, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(a.stderr, prompt)
		secret, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(a.stderr) // Newline after hidden input
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no secret provided on stdin")
	}
	return line, nil
}

// IsInteractive returns true if stdin is a terminal.
func (a *Adapter) IsInteractive() bool {
	if file, ok := a.stdin.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
