package hooks

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_DrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "loading", true)

	s.ShowLoading()
	assert.True(t, s.Active())
	s.HideLoading()

	assert.False(t, s.Active())
	assert.Contains(t, buf.String(), "loading")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\r\033[K")))
}

func TestSpinner_ReferenceCounted(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(&buf, "loading", true)

	s.ShowLoading()
	s.ShowLoading()
	s.HideLoading()
	assert.True(t, s.Active())

	s.HideLoading()
	assert.False(t, s.Active())
}

func TestSpinner_ExtraHideIgnored(t *testing.T) {
	s := newSpinner(&bytes.Buffer{}, "loading", true)

	s.HideLoading()
	s.ShowLoading()
	s.HideLoading()
	s.HideLoading()

	assert.False(t, s.Active())
}

func TestSpinner_DisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "loading")

	s.ShowLoading()
	assert.True(t, s.Active())
	s.HideLoading()

	assert.Empty(t, buf.String())
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
