// Package errors implements Miful's layered diagnostic model: every failure
// raised by the lexer, parser, or evaluator carries a source position and an
// ordered stack of human-readable context layers, and can render a
// fixed-width window of the offending source around that position.
package errors

import (
	"fmt"
	"strings"

	"github.com/btouchard/miful/internal/compiler/token"
)

// Kind identifies which of the three phases raised the error.
type Kind int

const (
	KindParse Kind = iota
	KindSemantic
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse error"
	case KindSemantic:
		return "semantic error"
	case KindRuntime:
		return "runtime"
	default:
		return "error"
	}
}

// Position is the same 1-based line/column pair token.Token and
// ast.NodeWrapper carry, aliased here so every call site that threads a
// position through to an error can pass it without conversion.
type Position = token.Position

// MifulError is the one error type shared by all three phases. Layers are
// stored outermost-first: Layers[0] is the most recently added (outermost)
// context, added by Wrap.
type MifulError struct {
	Kind   Kind
	Index  int // grapheme offset into Source
	Pos    Position
	Layers []string

	// Source is the grapheme vector the error occurred in. It is nil until
	// the top-level driver enriches the error for display (parser errors in
	// particular are raised before the driver has attached the vector).
	Source []string
}

// New creates a fresh error with a single base message layer.
func New(kind Kind, index int, pos Position, message string) *MifulError {
	return &MifulError{
		Kind:   kind,
		Index:  index,
		Pos:    pos,
		Layers: []string{message},
	}
}

// Error satisfies the error interface with the innermost message, so
// %v/%s formatting and code that only cares about the root cause still
// gets something sensible.
func (e *MifulError) Error() string {
	if len(e.Layers) == 0 {
		return e.Kind.String()
	}
	return e.Layers[len(e.Layers)-1]
}

// Wrap prepends a context layer ("while evaluating invoke parameters", "while
// calling function f", ...) and returns the same error so call sites can
// write `return nil, err.Wrap("while parsing list")`.
func (e *MifulError) Wrap(layer string) *MifulError {
	e.Layers = append([]string{layer}, e.Layers...)
	return e
}

// WithSource attaches the source grapheme vector so Render can draw a
// context window. No phase sets it when raising an error (the evaluator
// holds no source vector either); the top-level driver enriches errors this
// way before display.
func (e *MifulError) WithSource(source []string) *MifulError {
	e.Source = source
	return e
}

const windowRadius = 10

// Render produces the layered diagnostic text: a fixed +/-10-grapheme window
// around Index with whitespace escaped and a caret/tilde marker, followed by
// the layered message stack from outermost to innermost.
func (e *MifulError) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s at %s\n", e.Kind, e.Pos)

	if e.Source != nil {
		start := e.Index - windowRadius
		if start < 0 {
			start = 0
		}
		end := e.Index + windowRadius + 1
		if end > len(e.Source) {
			end = len(e.Source)
		}

		var window strings.Builder
		var marker strings.Builder
		for i := start; i < end; i++ {
			g := escapeGrapheme(e.Source[i])
			window.WriteString(g)
			if i == e.Index {
				marker.WriteString(strings.Repeat("^", len(g)))
			} else {
				marker.WriteString(strings.Repeat("~", len(g)))
			}
		}

		b.WriteString(window.String())
		b.WriteByte('\n')
		b.WriteString(marker.String())
		b.WriteByte('\n')
	}

	for _, layer := range e.Layers {
		b.WriteString(layer)
		b.WriteByte('\n')
	}

	return b.String()
}

func escapeGrapheme(g string) string {
	switch g {
	case "\n":
		return `\n`
	case "\t":
		return `\t`
	case "\r":
		return `\r`
	default:
		return g
	}
}
