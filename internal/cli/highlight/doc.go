// Package highlight provides terminal syntax highlighting for VSL source,
// the way the teacher's internal/cli/adopt.selector highlights file
// previews with chroma/v2/quick — except VSL is not a lexer chroma ships,
// so this package registers a small custom chroma.Lexer for it and drives
// the tokenizer/formatter pair directly instead of going through quick.Highlight.
//
// It is used by cmd/vsl's diagnostic renderer, for every subcommand, to
// render the offending source line of a pipeline error in color.
package highlight
