package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when the caller doesn't request
// one, matching the style the teacher's selector.highlightContent hardcodes.
const DefaultStyle = "monokai"

// Source renders VSL source with ANSI 256-color syntax highlighting.
func Source(source, styleName string) (string, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := VSLLexer.Tokenise(nil, source)
	if err != nil {
		return source, err
	}

	var buf strings.Builder
	if err := formatters.TTY256.Format(&buf, style, iterator); err != nil {
		return source, err
	}
	return buf.String(), nil
}

// Line highlights a single line of VSL source, trimming the trailing
// newline the formatter always appends — used when quoting the offending
// line of a diagnostic underneath its span underline.
func Line(line, styleName string) string {
	out, err := Source(line, styleName)
	if err != nil {
		return line
	}
	return strings.TrimSuffix(out, "\n")
}
