// Package parser implements VSL's hand-written, keyword-free,
// recursive-descent parser: token stream in, an ordered []langvalue.Expr
// of top-level expressions out.
package parser

import (
	"strings"

	"github.com/yaklabco/vsl/internal/langerr"
	"github.com/yaklabco/vsl/internal/langvalue"
	"github.com/yaklabco/vsl/internal/token"
)

// delimiter kinds that end a function-call argument list or a bracketed
// group: a comma, semicolon, end of input, or any closing bracket.
func isDelimiter(k token.Kind) bool {
	switch k {
	case token.Comma, token.Semicolon, token.EOF,
		token.CloseParen, token.CloseBrace, token.CloseBracket:
		return true
	default:
		return false
	}
}

// Parser parses a token stream produced with whitespace retained
// (lexer.Options{DiscardEOF: false} is fine either way) so that adjacency
// — "was there whitespace directly between this symbol and the next
// token" — can be read straight off the array rather than recomputed from
// spans. Comments (token.Discard) must never appear; the lexer's contract
// guarantees that.
type Parser struct {
	tokens []token.Token
	pos    int

	// parsingMap suppresses the '=' assignment suffix while parsing the
	// value half of a map entry, so that '=' is only ever the map
	// key/value separator in that position, never a binding (§4.2).
	parsingMap bool
}

// New creates a Parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a full token stream into the ordered top-level expressions.
func Parse(tokens []token.Token) ([]langvalue.Expr, error) {
	p := New(tokens)
	return p.ParseProgram()
}

// ParseProgram parses `expr*` until EOF.
func (p *Parser) ParseProgram() ([]langvalue.Expr, error) {
	var out []langvalue.Expr
	for {
		p.skipWS()
		if p.cur().Kind == token.EOF {
			return out, nil
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) skipWS() {
	for p.cur().Kind == token.Whitespace {
		p.pos++
	}
}

func parseErr(msg string, sp token.Span) error {
	return langerr.ParseError{Message: msg, Span: sp}
}

func ref(e langvalue.Expr) *langvalue.Expr { return &e }

// parseExpr parses one expr per the grammar sketch in §4.2.
func (p *Parser) parseExpr() (langvalue.Expr, error) {
	p.skipWS()
	tok := p.cur()

	switch tok.Kind {
	case token.String:
		p.pos++
		return langvalue.Expr{Kind: langvalue.KString, Str: stripQuotes(tok.Text), Span: tok.Span}, nil
	case token.Number:
		p.pos++
		return langvalue.Expr{Kind: langvalue.KNumber, Num: tok.Num, Span: tok.Span}, nil
	case token.Boolean:
		p.pos++
		return langvalue.Expr{Kind: langvalue.KBoolean, Num: tok.Num, Span: tok.Span}, nil
	case token.Equal:
		// A bare '=' reached where an expression was expected becomes the
		// symbol "=" (§4.2).
		p.pos++
		return langvalue.Sym("="), nil
	case token.Slash:
		return p.parsePath()
	case token.Dot:
		if p.peekKind(1) == token.Slash {
			return p.parsePath()
		}
		return langvalue.Expr{}, parseErr("unexpected token '.'", tok.Span)
	case token.OpenBracket:
		return p.parseList()
	case token.OpenBrace:
		return p.parseMap()
	case token.OpenParen:
		return p.parseParens()
	case token.Symbol:
		return p.parseSymbolExpr()
	case token.Discard:
		return langvalue.Expr{}, parseErr("internal error: discard token reached parser", tok.Span)
	default:
		return langvalue.Expr{}, parseErr("unexpected token "+tok.Kind.String(), tok.Span)
	}
}

func (p *Parser) peekKind(offset int) token.Kind {
	if p.pos+offset >= len(p.tokens) {
		return token.EOF
	}
	return p.tokens[p.pos+offset].Kind
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

// parsePath reassembles a path from consecutive Slash/Dot/Symbol/String
// tokens, stopping at the first token of any other kind (including
// whitespace). String segments have their delimiters stripped.
func (p *Parser) parsePath() (langvalue.Expr, error) {
	start := p.cur().Span
	var b strings.Builder
loop:
	for {
		switch p.cur().Kind {
		case token.Slash:
			b.WriteByte('/')
			p.pos++
		case token.Dot:
			b.WriteByte('.')
			p.pos++
		case token.Symbol:
			b.WriteString(p.cur().Text)
			p.pos++
		case token.String:
			b.WriteString(stripQuotes(p.cur().Text))
			p.pos++
		default:
			break loop
		}
	}
	return langvalue.Expr{Kind: langvalue.KPath, Str: b.String(), Span: start}, nil
}

// parseList parses '[' (expr (',' expr)* ','?)? ']'.
func (p *Parser) parseList() (langvalue.Expr, error) {
	start := p.cur().Span
	p.pos++ // '['
	p.skipWS()
	var items []langvalue.Expr
	for p.cur().Kind != token.CloseBracket {
		if p.cur().Kind == token.EOF {
			return langvalue.Expr{}, parseErr("unterminated list", start)
		}
		e, err := p.parseExpr()
		if err != nil {
			return langvalue.Expr{}, err
		}
		items = append(items, e)
		p.skipWS()
		if p.cur().Kind == token.Comma {
			p.pos++
			p.skipWS()
			continue
		}
		break
	}
	if p.cur().Kind != token.CloseBracket {
		return langvalue.Expr{}, parseErr("expected ']'", p.cur().Span)
	}
	p.pos++
	return langvalue.Expr{Kind: langvalue.KList, Items: items, Span: start}, nil
}

// parseMap parses '{' ( SYMBOL '=' expr ';' )* '}' with optional trailing
// ';' and tolerated stray ','. Duplicate keys are a fatal parse error.
func (p *Parser) parseMap() (langvalue.Expr, error) {
	start := p.cur().Span
	p.pos++ // '{'
	prevParsingMap := p.parsingMap
	p.parsingMap = true
	defer func() { p.parsingMap = prevParsingMap }()

	out := langvalue.NewMap()
	out.Span = start

	p.skipWS()
	for p.cur().Kind != token.CloseBrace {
		if p.cur().Kind == token.Comma {
			p.pos++
			p.skipWS()
			continue
		}
		if p.cur().Kind == token.EOF {
			return langvalue.Expr{}, parseErr("unterminated map", start)
		}
		if p.cur().Kind != token.Symbol {
			return langvalue.Expr{}, parseErr("expected map key", p.cur().Span)
		}
		keyTok := p.cur()
		p.pos++
		keyExpr := langvalue.Expr{Kind: langvalue.KSymbol, Str: keyTok.Text, Span: keyTok.Span}

		if out.MapHasKey(keyExpr) {
			return langvalue.Expr{}, parseErr("duplicate map key \""+keyTok.Text+"\"", keyTok.Span)
		}

		p.skipWS()
		if p.cur().Kind != token.Equal {
			return langvalue.Expr{}, parseErr("expected '=' after map key \""+keyTok.Text+"\"", p.cur().Span)
		}
		p.pos++
		p.skipWS()

		val, err := p.parseExpr()
		if err != nil {
			return langvalue.Expr{}, err
		}
		out = out.MapSet(keyExpr, val)

		p.skipWS()
		for p.cur().Kind == token.Comma {
			p.pos++
			p.skipWS()
		}
		if p.cur().Kind == token.Semicolon {
			p.pos++
		}
		p.skipWS()
	}
	p.pos++ // '}'
	return out, nil
}

// parseParens parses '(' expr* ')'. The historical behavior of returning
// the second parsed expression is an open question in §9; this
// implementation resolves it by returning the LAST parsed expression (see
// SPEC_FULL.md), so a "(1 2 3)" group evaluates to 3. The expressions
// inside are not separated by ';' (a ';' inside parens is a parse error).
// Empty parens are a parse error.
func (p *Parser) parseParens() (langvalue.Expr, error) {
	start := p.cur().Span
	p.pos++ // '('
	p.skipWS()
	var exprs []langvalue.Expr
	for p.cur().Kind != token.CloseParen {
		if p.cur().Kind == token.EOF {
			return langvalue.Expr{}, parseErr("unterminated parenthesized group", start)
		}
		e, err := p.parseExpr()
		if err != nil {
			return langvalue.Expr{}, err
		}
		exprs = append(exprs, e)
		p.skipWS()
	}
	p.pos++ // ')'
	if len(exprs) == 0 {
		return langvalue.Expr{}, parseErr("empty parenthesized group", start)
	}
	return exprs[len(exprs)-1], nil
}

// parseSymbolExpr implements symbol_expr := SYMBOL suffix?, including the
// MapRef/ListRef chaining, '='-binding, and function-call-by-juxtaposition
// suffixes.
func (p *Parser) parseSymbolExpr() (langvalue.Expr, error) {
	tok := p.cur()
	p.pos++
	target := langvalue.Expr{Kind: langvalue.KSymbol, Str: tok.Text, Span: tok.Span}

	for {
		switch p.cur().Kind {
		case token.Dot:
			// Immediately adjacent only: a SYMBOL '.' SLASH sequence is
			// not a map reference (it is the start of a path argument to
			// a function call), so back out without consuming the dot.
			if p.peekKind(1) == token.Slash {
				goto suffixDone
			}
			dotTok := p.cur()
			p.pos++
			switch p.cur().Kind {
			case token.Symbol:
				keyTok := p.cur()
				p.pos++
				target = langvalue.Expr{
					Kind:      langvalue.KMapRef,
					Container: ref(target),
					Index:     ref(langvalue.Sym(keyTok.Text)),
					Span:      dotTok.Span,
				}
			case token.Number:
				return langvalue.Expr{}, parseErr("cannot index a map by a number", p.cur().Span)
			default:
				return langvalue.Expr{}, parseErr("expected a symbol after '.'", p.cur().Span)
			}
		case token.OpenBracket:
			brTok := p.cur()
			p.pos++
			p.skipWS()
			if p.cur().Kind != token.Number {
				return langvalue.Expr{}, parseErr("cannot index a list by a non-integer number", p.cur().Span)
			}
			n := p.cur()
			p.pos++
			if n.Num != float64(int64(n.Num)) {
				return langvalue.Expr{}, parseErr("cannot index a list by a non-integer number", n.Span)
			}
			p.skipWS()
			if p.cur().Kind == token.Comma {
				return langvalue.Expr{}, parseErr("malformed list or listref", p.cur().Span)
			}
			if p.cur().Kind != token.CloseBracket {
				return langvalue.Expr{}, parseErr("expected ']'", p.cur().Span)
			}
			p.pos++
			target = langvalue.Expr{
				Kind:      langvalue.KListRef,
				Container: ref(target),
				Index:     ref(langvalue.Num(n.Num)),
				Span:      brTok.Span,
			}
		default:
			goto suffixDone
		}
		// '[' only attaches to a symbol/ref when there is no whitespace
		// immediately before it; a non-adjacent '[' is a new list literal
		// and must fall through to function-call argument parsing, not be
		// consumed here. We detect that by never reaching this loop for a
		// non-adjacent '[' in the first place: the case above only fires
		// when OpenBracket is the literal next token in the stream, which
		// is exactly the adjacency condition (whitespace would be its own
		// token in between).
	}
suffixDone:

	p.skipWS()
	if p.cur().Kind == token.Equal && !p.parsingMap {
		p.pos++
		p.skipWS()
		val, err := p.parseExpr()
		if err != nil {
			return langvalue.Expr{}, err
		}
		if target.Kind == langvalue.KListRef {
			// §3 invariant: a VarDecl target is a Symbol or MapRef only.
			return langvalue.Expr{}, parseErr("cannot assign to a list reference", target.Span)
		}
		if target.Kind != langvalue.KSymbol && target.Kind != langvalue.KMapRef {
			return langvalue.Expr{}, parseErr("invalid assignment target", target.Span)
		}
		return langvalue.Expr{
			Kind:   langvalue.KVarDecl,
			Target: ref(target),
			Value:  ref(val),
			Span:   target.Span,
		}, nil
	}

	if target.Kind != langvalue.KSymbol {
		// A MapRef/ListRef with no trailing '=' is just a reference value.
		return target, nil
	}

	// No suffix matched at all: either a bare symbol reference or the head
	// of a function call, distinguished by whether another expression
	// follows immediately (juxtaposition).
	if isDelimiter(p.cur().Kind) {
		return target, nil
	}

	var args []langvalue.Expr
	for !isDelimiter(p.cur().Kind) {
		a, err := p.parseExpr()
		if err != nil {
			return langvalue.Expr{}, err
		}
		args = append(args, a)
		p.skipWS()
	}
	return langvalue.Expr{Kind: langvalue.KFnCall, Name: tok.Text, Args: args, Span: tok.Span}, nil
}
