// Package lexer implements Miful's greedy, grapheme-level tokenizer
// (spec.md 4.1). Grounded on btouchard-gmx's internal/compiler/lexer.Lexer
// (New/readChar/peekChar/NextToken), generalized from gmx's fixed rune
// switch to a grapheme-cluster window with explicit greedy-extend-then-
// retract classification, since none of gmx's literal shapes are ambiguous
// prefixes of one another the way "{" / "{?" or "2" / "2.5" are here.
package lexer

import (
	"strconv"

	"github.com/btouchard/miful/internal/compiler/errors"
	"github.com/btouchard/miful/internal/compiler/segment"
	"github.com/btouchard/miful/internal/compiler/token"
)

// DefaultSymbolChars is the symbol-character set named in spec.md 6.
var DefaultSymbolChars = map[string]bool{
	":": true, "@": true, "&": true, "|": true, "#": true, "~": true, "?": true, "`": true,
}

const backtick = "`"

// Lexer tokenizes a grapheme vector, greedily, one token at a time. Two
// modes share all logic (spec.md 4.1): Default skips whitespace between
// tokens; WhitespacePreserving (used for interactive line input, see the
// `input` built-in) treats space/tab/newline/carriage-return as symbol
// characters instead of separators.
type Lexer struct {
	graphemes  []string
	symbolSet  map[string]bool
	preserveWS bool

	index  int // current offset in graphemes
	line   int
	column int
}

// New constructs a Lexer over source in default (whitespace-skipping) mode
// with the given symbol-character set.
func New(source string, symbolChars map[string]bool) *Lexer {
	return &Lexer{
		graphemes: segment.Clusters(source),
		symbolSet: symbolChars,
		line:      1,
		column:    1,
	}
}

// NewWhitespacePreserving constructs a Lexer in whitespace-preserving mode,
// used for re-lexing a single line of interactive input (spec.md 4.3.2's
// `input` built-in).
func NewWhitespacePreserving(source string, symbolChars map[string]bool) *Lexer {
	l := New(source, symbolChars)
	l.preserveWS = true
	return l
}

// Graphemes returns the full grapheme vector, for error rendering.
func (l *Lexer) Graphemes() []string {
	return l.graphemes
}

func (l *Lexer) atEnd() bool {
	return l.index >= len(l.graphemes)
}

func (l *Lexer) peek(offset int) string {
	i := l.index + offset
	if i < 0 || i >= len(l.graphemes) {
		return ""
	}
	return l.graphemes[i]
}

func (l *Lexer) current() string {
	return l.peek(0)
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.column}
}

// advance consumes n graphemes starting at the current index, updating line
// and column as it goes.
func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		g := l.current()
		if g == "" {
			return
		}
		if g == "\n" {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.index++
	}
}

func (l *Lexer) isWhitespace(g string) bool {
	if l.preserveWS {
		return false
	}
	switch g {
	case " ", "\t", "\n", "\r":
		return true
	default:
		return false
	}
}

func (l *Lexer) isBracket(g string) bool {
	switch g {
	case token.LBracket, token.RBracket, token.LBrace, token.RBrace, token.LParen, token.RParen:
		return true
	default:
		return false
	}
}

func (l *Lexer) isSymbolChar(g string) bool {
	if l.preserveWS {
		switch g {
		case " ", "\t", "\n", "\r":
			return true
		}
	}
	return l.symbolSet[g]
}

func (l *Lexer) isDigit(g string) bool {
	return len(g) == 1 && g[0] >= '0' && g[0] <= '9'
}

// Next produces the next token, or an error carrying the current position
// (spec.md 4.1's *parse error: invalid literal*). EOF is signalled by a nil
// token and nil error.
func (l *Lexer) Next() (*token.Token, *errors.MifulError) {
	if !l.preserveWS {
		l.skipWhitespace()
	}
	if l.atEnd() {
		return nil, nil
	}

	startIndex := l.index
	startPos := l.pos()
	g := l.current()

	// Two-grapheme controls take precedence over "{" / "}".
	if g == token.LBrace && l.peek(1) == "?" {
		l.advance(2)
		tok := token.NewControl(token.LHook, startIndex, startPos, 2)
		return &tok, nil
	}
	if g == "?" && l.peek(1) == token.RBrace {
		l.advance(2)
		tok := token.NewControl(token.RHook, startIndex, startPos, 2)
		return &tok, nil
	}

	if l.isBracket(g) {
		l.advance(1)
		tok := token.NewControl(g, startIndex, startPos, 1)
		return &tok, nil
	}

	if g == backtick {
		return l.lexEscapedSymbol(startIndex, startPos)
	}

	if l.isDigit(g) {
		return l.lexNumber(startIndex, startPos)
	}

	if l.isSymbolChar(g) {
		l.advance(1)
		tok := token.NewSymbol(g, startIndex, startPos, 1)
		return &tok, nil
	}

	if l.isWordStart(g) {
		return l.lexWord(startIndex, startPos)
	}

	return nil, errors.New(errors.KindParse, startIndex, startPos, "invalid literal")
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && l.isWhitespace(l.current()) {
		l.advance(1)
	}
}

// isWordStart reports whether g can begin a Word: anything that is not a
// bracket, whitespace, symbol character, or backtick.
func (l *Lexer) isWordStart(g string) bool {
	if g == "" || l.isBracket(g) || l.isWhitespace(g) || l.isSymbolChar(g) || g == backtick {
		return false
	}
	return true
}

// lexWord greedily extends over graphemes that are none of: brackets,
// whitespace, symbol characters (spec.md 4.1's Word shape).
func (l *Lexer) lexWord(startIndex int, startPos token.Position) (*token.Token, *errors.MifulError) {
	var text string
	for !l.atEnd() {
		g := l.current()
		if l.isBracket(g) || l.isWhitespace(g) || l.isSymbolChar(g) || g == backtick {
			break
		}
		text += g
		l.advance(1)
	}
	tok := token.NewWord(text, startIndex, startPos, l.index-startIndex)
	return &tok, nil
}

// lexEscapedSymbol lexes a backtick-delimited symbol: `content` becomes a
// Symbol token whose payload is content (spec.md 4.1, 6).
func (l *Lexer) lexEscapedSymbol(startIndex int, startPos token.Position) (*token.Token, *errors.MifulError) {
	l.advance(1) // opening backtick
	var text string
	for {
		if l.atEnd() {
			return nil, errors.New(errors.KindParse, startIndex, startPos, "invalid literal")
		}
		g := l.current()
		if g == backtick {
			l.advance(1)
			break
		}
		text += g
		l.advance(1)
	}
	tok := token.NewSymbol(text, startIndex, startPos, l.index-startIndex)
	return &tok, nil
}

// lexNumber greedily extends over digits, then an optional ". digits" tail
// that promotes the literal from Int to Float (spec.md 4.1's greedy-extend-
// then-retract rule: a trailing "." with no following digit is NOT
// consumed, since that would make the window no longer a valid literal
// prefix).
func (l *Lexer) lexNumber(startIndex int, startPos token.Position) (*token.Token, *errors.MifulError) {
	var intPart, fracPart string

	for !l.atEnd() && l.isDigit(l.current()) {
		intPart += l.current()
		l.advance(1)
	}

	if !l.atEnd() && l.current() == "." && l.isDigit(l.peek(1)) {
		l.advance(1) // consume '.'
		for !l.atEnd() && l.isDigit(l.current()) {
			fracPart += l.current()
			l.advance(1)
		}
		f, err := strconv.ParseFloat(intPart+"."+fracPart, 64)
		if err != nil {
			return nil, errors.New(errors.KindParse, startIndex, startPos, "invalid literal")
		}
		tok := token.NewFloat(f, startIndex, startPos, l.index-startIndex)
		return &tok, nil
	}

	i, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return nil, errors.New(errors.KindParse, startIndex, startPos, "invalid literal")
	}
	tok := token.NewInt(i, startIndex, startPos, l.index-startIndex)
	return &tok, nil
}
