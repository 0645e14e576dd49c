package main

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// styles provides semantic color functions for vsl's terminal output, the
// lipgloss-backed counterpart to the teacher's render.Colorizer. Where the
// teacher hand-writes 256-color ANSI escapes, here lipgloss renders the
// styles and reports the terminal's color profile; --no-color and NO_COLOR
// are handled by shouldColorize below.
type styles struct {
	enabled bool

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
	bold    lipgloss.Style
}

// Muted professional palette, matching the hues of the teacher's
// render.DefaultScheme (colorMutedGreen/Gold/Red/Blue/Gray/Purple) but
// expressed as fixed 256-color lipgloss colors.
var (
	colorSuccess = lipgloss.Color("71")  // muted green
	colorWarning = lipgloss.Color("179") // muted gold
	colorFailure = lipgloss.Color("167") // muted red
	colorInfo    = lipgloss.Color("110") // muted blue
	colorDim     = lipgloss.Color("245") // muted gray
	colorAccent  = lipgloss.Color("104") // muted purple
)

// newStyles builds a styles set. When enabled is false every method
// returns its input unchanged, mirroring NoColorScheme.
func newStyles(enabled bool) *styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return &styles{
			enabled: false,
			success: plain, warning: plain, failure: plain,
			info: plain, dim: plain, accent: plain, bold: plain,
		}
	}
	return &styles{
		enabled: true,
		success: lipgloss.NewStyle().Foreground(colorSuccess),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
		failure: lipgloss.NewStyle().Foreground(colorFailure),
		info:    lipgloss.NewStyle().Foreground(colorInfo),
		dim:     lipgloss.NewStyle().Foreground(colorDim),
		accent:  lipgloss.NewStyle().Foreground(colorAccent),
		bold:    lipgloss.NewStyle().Bold(true),
	}
}

func (s *styles) Success(text string) string { return s.success.Render(text) }
func (s *styles) Warning(text string) string { return s.warning.Render(text) }
func (s *styles) Failure(text string) string { return s.failure.Render(text) }
func (s *styles) Info(text string) string    { return s.info.Render(text) }
func (s *styles) Dim(text string) string     { return s.dim.Render(text) }
func (s *styles) Accent(text string) string  { return s.accent.Render(text) }
func (s *styles) Bold(text string) string    { return s.bold.Render(text) }

// shouldColorize determines whether vsl should emit color, following the
// teacher's shouldColorize precedence: --no-color flag, then NO_COLOR env,
// then the explicit --color value, defaulting to lipgloss's own terminal
// detection for "auto".
func shouldColorize(noColor bool, color string) bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	switch color {
	case "always":
		return true
	case "never":
		return false
	default: // "auto" or unset
		return termIsColorCapable()
	}
}

// termIsColorCapable reports whether stdout looks like a color-capable
// terminal, using lipgloss's renderer (backed by charmbracelet/colorprofile)
// rather than golang.org/x/term so detection stays on the same dependency
// the rest of this package uses.
func termIsColorCapable() bool {
	return lipgloss.NewRenderer(os.Stdout).ColorProfile() != colorprofile.NoTTY
}
