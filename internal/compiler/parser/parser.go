// Package parser builds Miful's NodeWrapper tree from a token stream
// (spec.md 4.2). Grounded on btouchard-gmx's internal/compiler/parser.Parser
// (New/nextToken/curTokenIs/expectPeek, recursive descent with explicit
// lookahead). gmx's bracket-matching grammar has no hole-substitution
// concept, so the hook-numbering counter and the in-hook nesting guard
// below are new, grounded on spec.md 4.2's own prose rather than on any
// single gmx file.
package parser

import (
	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
	"github.com/btouchard/miful/internal/compiler/lexer"
	"github.com/btouchard/miful/internal/compiler/token"
)

// Parser consumes a lexer's token stream one token of lookahead at a time
// and produces NodeWrapper trees (spec.md 4.2's "recursive descent with
// explicit state").
type Parser struct {
	lex *lexer.Lexer
	cur *token.Token

	hookCounter int
	inHook      bool
}

// New constructs a Parser and primes the first lookahead token.
func New(l *lexer.Lexer) (*Parser, *errors.MifulError) {
	p := &Parser{lex: l}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() *errors.MifulError {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// lastPos reports the position to blame for an unterminated construct: the
// current (not yet consumed) token's position, or the opening bracket's
// position once input has ended. The last consumed token is not tracked.
func (p *Parser) lastPos(fallback token.Position, fallbackIndex int) (int, token.Position) {
	if p.cur != nil {
		return p.cur.Index, p.cur.Pos
	}
	return fallbackIndex, fallback
}

func (p *Parser) semanticErr(index int, pos token.Position, msg string) *errors.MifulError {
	return errors.New(errors.KindSemantic, index, pos, msg)
}

// ParseAll consumes the entire token stream and returns every top-level
// value (spec.md 4.2's "produces a sequence of top-level NodeWrappers").
func ParseAll(l *lexer.Lexer) ([]*ast.NodeWrapper, *errors.MifulError) {
	p, err := New(l)
	if err != nil {
		return nil, err
	}

	var nodes []*ast.NodeWrapper
	for p.cur != nil {
		// Hook indices are local to the tree they number (spec.md 8's
		// invariant 2: the indices found in one parsed tree form {0...n-1}),
		// so the counter restarts at each top-level value.
		p.hookCounter = 0
		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// parseValue implements the grammar's `value` production: atom | list |
// invoke | quote | hook.
func (p *Parser) parseValue() (*ast.NodeWrapper, *errors.MifulError) {
	if p.cur == nil {
		return nil, p.semanticErr(0, token.Position{}, "unexpected end of input")
	}

	if p.cur.Kind != token.Control {
		return p.parseAtom()
	}

	switch p.cur.ControlValue {
	case token.LParen:
		return p.parseList()
	case token.LBracket:
		return p.parseInvoke()
	case token.LBrace:
		return p.parseQuote()
	case token.LHook:
		return p.parseHook()
	default:
		return nil, p.semanticErr(p.cur.Index, p.cur.Pos, "unexpected control token")
	}
}

func (p *Parser) parseAtom() (*ast.NodeWrapper, *errors.MifulError) {
	tok := p.cur
	var kind ast.NodeKind
	switch tok.Kind {
	case token.Word:
		kind = ast.WordNode{Value: tok.WordValue}
	case token.Symbol:
		kind = ast.SymbolNode{Value: tok.SymbolValue}
	case token.Int:
		kind = ast.IntNode{Value: tok.IntValue}
	case token.Float:
		kind = ast.FloatNode{Value: tok.FloatValue}
	default:
		return nil, p.semanticErr(tok.Index, tok.Pos, "unexpected control token")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.NodeWrapper{Kind: kind, Index: tok.Index, Pos: tok.Pos}, nil
}

// parseList implements `list ::= '(' value* ')'`.
func (p *Parser) parseList() (*ast.NodeWrapper, *errors.MifulError) {
	open := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	var elems []*ast.NodeWrapper
	for !p.isControl(token.RParen) {
		if p.cur == nil {
			idx, pos := p.lastPos(open.Pos, open.Index)
			return nil, p.semanticErr(idx, pos, "unterminated list")
		}
		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	if err := p.advance(); err != nil { // consume ')'
		return nil, err
	}

	return &ast.NodeWrapper{
		Kind:  ast.ListNode{Elements: elems},
		Hooks: ast.CollectHooks(elems),
		Index: open.Index,
		Pos:   open.Pos,
	}, nil
}

// parseInvoke implements `invoke ::= '[' (Word | Symbol) value* ']'`.
func (p *Parser) parseInvoke() (*ast.NodeWrapper, *errors.MifulError) {
	open := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	target, err := p.parseTarget(open)
	if err != nil {
		return nil, err
	}

	var elems []*ast.NodeWrapper
	for !p.isControl(token.RBracket) {
		if p.cur == nil {
			idx, pos := p.lastPos(open.Pos, open.Index)
			return nil, p.semanticErr(idx, pos, "unterminated invoke")
		}
		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	if err := p.advance(); err != nil { // consume ']'
		return nil, err
	}

	return &ast.NodeWrapper{
		Kind:  ast.InvokeNode{Target: target, With: elems},
		Hooks: ast.CollectHooks(elems),
		Index: open.Index,
		Pos:   open.Pos,
	}, nil
}

// parseQuote implements `quote ::= '{' (Word | Symbol) value* '}'`.
func (p *Parser) parseQuote() (*ast.NodeWrapper, *errors.MifulError) {
	open := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}

	target, err := p.parseTarget(open)
	if err != nil {
		return nil, err
	}

	var elems []*ast.NodeWrapper
	for !p.isControl(token.RBrace) {
		if p.cur == nil {
			idx, pos := p.lastPos(open.Pos, open.Index)
			return nil, p.semanticErr(idx, pos, "unterminated quote")
		}
		n, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	if err := p.advance(); err != nil { // consume '}'
		return nil, err
	}

	return &ast.NodeWrapper{
		Kind:  ast.QuoteNode{Target: target, With: elems},
		Hooks: ast.CollectHooks(elems),
		Index: open.Index,
		Pos:   open.Pos,
	}, nil
}

// parseTarget consumes the Word/Symbol target that must follow an invoke's
// or quote's opening bracket (spec.md 4.2's "incomplete invoke" and "invalid
// function name type" errors).
func (p *Parser) parseTarget(open *token.Token) (string, *errors.MifulError) {
	if p.cur == nil {
		return "", p.semanticErr(open.Index, open.Pos, "incomplete invoke")
	}
	switch p.cur.Kind {
	case token.Word:
		v := p.cur.WordValue
		if err := p.advance(); err != nil {
			return "", err
		}
		return v, nil
	case token.Symbol:
		v := p.cur.SymbolValue
		if err := p.advance(); err != nil {
			return "", err
		}
		return v, nil
	case token.Control:
		if p.cur.ControlValue == token.RBracket || p.cur.ControlValue == token.RBrace {
			return "", p.semanticErr(p.cur.Index, p.cur.Pos, "incomplete invoke")
		}
		return "", p.semanticErr(p.cur.Index, p.cur.Pos, "invalid function name type")
	default:
		return "", p.semanticErr(p.cur.Index, p.cur.Pos, "invalid function name type")
	}
}

// parseHook implements `hook ::= '{?' value '?}'`, rejecting a `{?` found
// while already parsing the inner value of an enclosing hook (spec.md 9's
// resolution of the hook-nesting open question).
func (p *Parser) parseHook() (*ast.NodeWrapper, *errors.MifulError) {
	open := p.cur
	if p.inHook {
		return nil, p.semanticErr(open.Index, open.Pos, "nested lambda hooks are not supported")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	p.inHook = true
	inner, err := p.parseValue()
	p.inHook = false
	if err != nil {
		return nil, err
	}

	if !p.isControl(token.RHook) {
		idx, pos := p.lastPos(open.Pos, open.Index)
		return nil, p.semanticErr(idx, pos, "unterminated unquote")
	}
	if err := p.advance(); err != nil { // consume '?}'
		return nil, err
	}

	index := p.hookCounter
	p.hookCounter++

	return &ast.NodeWrapper{
		Kind:  ast.LambdaHookNode{HookIndex: index},
		Hooks: []*ast.NodeWrapper{inner},
		Index: open.Index,
		Pos:   open.Pos,
	}, nil
}

func (p *Parser) isControl(value string) bool {
	return p.cur != nil && p.cur.Kind == token.Control && p.cur.ControlValue == value
}
