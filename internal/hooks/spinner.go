package hooks

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"courier/internal/domain"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

const spinnerInterval = 100 * time.Millisecond

// Spinner is a terminal loading indicator.
// Overlapping calls share one spinner; it stops when the last call hides it.
type Spinner struct {
	w       io.Writer
	label   string
	enabled bool

	mu   sync.Mutex
	refs int
	stop chan struct{}
	done chan struct{}
}

var _ domain.LoadingHook = (*Spinner)(nil)

// NewSpinner creates a spinner on w. It only draws when w is a terminal.
func NewSpinner(w io.Writer, label string) *Spinner {
	return newSpinner(w, label, IsTerminal(w))
}

func newSpinner(w io.Writer, label string, enabled bool) *Spinner {
	return &Spinner{w: w, label: label, enabled: enabled}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// Active reports whether any call is currently showing the spinner.
func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs > 0
}

// ShowLoading implements domain.LoadingHook.
func (s *Spinner) ShowLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs++
	if s.refs > 1 || !s.enabled {
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(s.stop, s.done)
}

// HideLoading implements domain.LoadingHook. Extra calls are ignored.
func (s *Spinner) HideLoading() {
	s.mu.Lock()
	if s.refs == 0 {
		s.mu.Unlock()
		return
	}
	s.refs--
	if s.refs > 0 || s.stop == nil {
		s.mu.Unlock()
		return
	}
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	close(stop)
	<-done
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.label)
		select {
		case <-stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}
