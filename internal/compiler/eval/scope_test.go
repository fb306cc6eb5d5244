package eval

import (
	"testing"

	"github.com/btouchard/miful/internal/compiler/ast"
)

func TestScopeExtendDoesNotMutateOriginal(t *testing.T) {
	base := NewScope()
	base = base.Extend("x", &ast.NodeWrapper{Kind: ast.IntNode{Value: 1}})

	extended := base.Extend("y", &ast.NodeWrapper{Kind: ast.IntNode{Value: 2}})

	if _, ok := base.Get("y"); ok {
		t.Fatal("Extend must not mutate the original scope")
	}
	if v, ok := extended.Get("x"); !ok || v.Kind.(ast.IntNode).Value != 1 {
		t.Fatal("extended scope must still see bindings from its parent")
	}
}

func TestTopLevelScopeSeedsBracketConstants(t *testing.T) {
	s := NewTopLevelScope()
	v, ok := s.Get("l_bracket")
	if !ok {
		t.Fatal("expected l_bracket to be pre-seeded")
	}
	if sym, ok := v.Kind.(ast.SymbolNode); !ok || sym.Value != "[" {
		t.Errorf("l_bracket = %+v, want Symbol([)", v)
	}
}
