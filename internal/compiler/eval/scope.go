// Package eval implements Miful's tree-walking evaluator (spec.md 4.3).
// Grounded on btouchard-gmx's internal/compiler/script evaluation helpers
// for the "clone state, extend, never mutate the caller's copy" shape; the
// overload table and object model are new, grounded on spec.md 3.5/3.4
// directly since gmx has no multi-dispatch or structural-type concept.
package eval

import "github.com/btouchard/miful/internal/compiler/ast"

// Scope maps identifiers to bound values (spec.md 3.5). It is always
// extended by copy: no method here mutates a Scope another reference still
// points at.
type Scope struct {
	vars map[string]*ast.NodeWrapper
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{vars: map[string]*ast.NodeWrapper{}}
}

// NewTopLevelScope returns a scope pre-seeded with the whitespace and
// bracket symbol constants spec.md 4.3.5 requires at the top level.
func NewTopLevelScope() *Scope {
	s := NewScope()
	seed := map[string]string{
		"space":        " ",
		"tab":          "\t",
		"newline":      "\n",
		"carriage_ret": "\r",
		"l_bracket":    "[",
		"r_bracket":    "]",
		"l_brace":      "{",
		"r_brace":      "}",
		"l_paren":      "(",
		"r_paren":      ")",
	}
	for name, grapheme := range seed {
		s.vars[name] = &ast.NodeWrapper{Kind: ast.SymbolNode{Value: grapheme}}
	}
	return s
}

// Clone returns an independent copy; mutating the copy never affects s.
func (s *Scope) Clone() *Scope {
	c := NewScope()
	for k, v := range s.vars {
		c.vars[k] = v
	}
	return c
}

// Extend returns a clone of s with name bound to val.
func (s *Scope) Extend(name string, val *ast.NodeWrapper) *Scope {
	c := s.Clone()
	c.vars[name] = val
	return c
}

// Get looks up name, reporting whether it is bound.
func (s *Scope) Get(name string) (*ast.NodeWrapper, bool) {
	v, ok := s.vars[name]
	return v, ok
}
