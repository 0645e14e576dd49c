package main

import (
	"fmt"
	"strings"

	"github.com/yaklabco/vsl/internal/cli/highlight"
	"github.com/yaklabco/vsl/internal/token"
)

// renderDiagnostic formats a pipeline error the way SPEC_FULL.md's external
// interfaces section requires: the message, plus source coordinates when
// the token stream carried them, plus the offending line with a caret
// underline beneath the span, colorized and syntax-highlighted the way the
// teacher's renderer.DiagnosticRenderer prefixes issues with a status
// symbol.
func renderDiagnostic(source string, err error, st *styles, colorize bool) string {
	var b strings.Builder

	symbol := "[ERROR]"
	if colorize {
		symbol = st.Failure("✗")
	}
	fmt.Fprintf(&b, "%s %s\n", symbol, err.Error())

	span, ok := spanOf(err)
	if !ok {
		return b.String()
	}

	lines := strings.Split(source, "\n")
	if span.Row < 1 || span.Row > len(lines) {
		return b.String()
	}
	line := lines[span.Row-1]

	rendered := line
	if colorize {
		rendered = highlight.Line(line, "")
	}
	fmt.Fprintf(&b, "  %d | %s\n", span.Row, rendered)
	fmt.Fprintf(&b, "  %s | %s\n", strings.Repeat(" ", digits(span.Row)), underline(line, span))

	return b.String()
}

// underline draws a caret line beneath the ColStart..ColEnd range of span,
// padding with spaces up to ColStart and carets across the span width (at
// least one caret, so a zero-width span is still visible).
func underline(line string, span token.Span) string {
	width := span.ColEnd - span.ColStart
	if width < 1 {
		width = 1
	}
	pad := span.ColStart - 1
	if pad < 0 {
		pad = 0
	}
	if pad > len(line) {
		pad = len(line)
	}
	return strings.Repeat(" ", pad) + strings.Repeat("^", width)
}

func digits(n int) int {
	if n < 10 {
		return 1
	}
	count := 0
	for n > 0 {
		count++
		n /= 10
	}
	return count
}
