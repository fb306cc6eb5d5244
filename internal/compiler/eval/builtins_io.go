package eval

import (
	"fmt"
	"strings"

	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
	"github.com/btouchard/miful/internal/compiler/lexer"
	"github.com/btouchard/miful/internal/compiler/token"
)

func builtinPrint(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "print", 1)
	}
	if err := printValue(e, args[0]); err != nil {
		return nil, err
	}
	return nilObject(call), nil
}

// printValue recursively prints a Word, Symbol, or a ("string" class)
// object's payload elements (spec.md 4.3.2's `print`).
func printValue(e *Evaluator, v *ast.NodeWrapper) *errors.MifulError {
	switch k := v.Kind.(type) {
	case ast.WordNode:
		fmt.Fprint(e.out, k.Value)
		return nil
	case ast.SymbolNode:
		fmt.Fprint(e.out, k.Value)
		return nil
	}

	class, payload, ok := asObject(v)
	if !ok || class != "string" {
		return typeError(v, "print")
	}
	lst := payload.Kind.(ast.ListNode)
	for _, el := range lst.Elements {
		if err := printValue(e, el); err != nil {
			return err
		}
	}
	return nil
}

// builtinInput prints v as print does, reads one line from standard input,
// and re-lexes it in whitespace-preserving mode, wrapping every resulting
// token as an atom in a ("string" class) object payload (spec.md 4.3.2's
// `input`).
func builtinInput(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "input", 1)
	}
	if err := printValue(e, args[0]); err != nil {
		return nil, err
	}

	// A missing trailing newline (EOF) still yields whatever was read; only
	// a fully empty read on error is an empty line.
	line, _ := e.in.ReadString('\n')
	line = strings.TrimRight(line, "\n\r")

	l := lexer.NewWhitespacePreserving(line, lexer.DefaultSymbolChars)
	var payload []*ast.NodeWrapper
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		payload = append(payload, tokenToAtom(tok))
	}

	return newObject("string", payload, call), nil
}

// tokenToAtom converts one re-lexed token into an atom NodeWrapper. A
// Control token (a stray bracket typed at the prompt) has no atomic
// counterpart, so it is carried through as a Symbol of its own spelling
// rather than rejected — `input` has no parser pass to raise a syntax
// error against.
func tokenToAtom(tok *token.Token) *ast.NodeWrapper {
	n := &ast.NodeWrapper{Index: tok.Index, Pos: tok.Pos}
	switch tok.Kind {
	case token.Word:
		n.Kind = ast.WordNode{Value: tok.WordValue}
	case token.Symbol:
		n.Kind = ast.SymbolNode{Value: tok.SymbolValue}
	case token.Int:
		n.Kind = ast.IntNode{Value: tok.IntValue}
	case token.Float:
		n.Kind = ast.FloatNode{Value: tok.FloatValue}
	case token.Control:
		n.Kind = ast.SymbolNode{Value: tok.ControlValue}
	}
	return n
}
