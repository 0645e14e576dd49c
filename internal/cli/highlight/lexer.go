package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// VSLLexer tokenizes VSL source for syntax highlighting. It mirrors the
// real lexer's grammar (internal/lexer) loosely enough for display purposes:
// it does not need to reject malformed input, only classify well-formed
// tokens the same way the real lexer would.
var VSLLexer = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "VSL",
		Aliases:   []string{"vsl"},
		Filenames: []string{"*.vsl"},
		MimeTypes: []string{"text/x-vsl"},
	},
	chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Whitespace},
			{Pattern: `#[^\n]*`, Type: chroma.CommentSingle},
			{Pattern: `"[^"]*"`, Type: chroma.LiteralString},
			{Pattern: `'[^']*'`, Type: chroma.LiteralString},
			{Pattern: `\b(?:true|false)\b`, Type: chroma.KeywordConstant},
			{Pattern: `\d+(?:\.\d+)?`, Type: chroma.LiteralNumber},
			{Pattern: `[{}\[\]()]`, Type: chroma.Punctuation},
			{Pattern: `[=,;./]`, Type: chroma.Operator},
			{Pattern: `[A-Za-z_][A-Za-z0-9_-]*`, Type: chroma.NameVariable},
			{Pattern: `.`, Type: chroma.Error},
		},
	},
))
