package highlight_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vsl/internal/cli/highlight"
)

func TestSource_ContainsOriginalText(t *testing.T) {
	src := `system.config = { services = [{name='sshd'}] }`

	out, err := highlight.Source(src, "")
	require.NoError(t, err)
	assert.Contains(t, out, "system")
	assert.Contains(t, out, "sshd")
}

func TestSource_EmitsANSIEscapes(t *testing.T) {
	src := `gh-r 'sapein' 'void-packages'`

	out, err := highlight.Source(src, highlight.DefaultStyle)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "\x1b["), "expected ANSI escape codes in highlighted output")
}

func TestSource_UnknownStyleFallsBack(t *testing.T) {
	out, err := highlight.Source("true", "not-a-real-style")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestLine_TrimsTrailingNewline(t *testing.T) {
	out := highlight.Line("a.b", "")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestLine_FallsBackToPlainTextOnError(t *testing.T) {
	// Line never errors for ordinary input; this just pins the contract
	// that failure degrades to the original text rather than panicking.
	out := highlight.Line("", "")
	assert.Equal(t, "", out)
}
