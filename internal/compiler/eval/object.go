package eval

import "github.com/btouchard/miful/internal/compiler/ast"

// asObject reports whether n matches spec.md 3.4's object pattern — a
// three-element list (Symbol("_obj") Word|Symbol(class) List(payload)) —
// returning its class tag and payload list node.
func asObject(n *ast.NodeWrapper) (class string, payload *ast.NodeWrapper, ok bool) {
	lst, isList := n.Kind.(ast.ListNode)
	if !isList || len(lst.Elements) != 3 {
		return "", nil, false
	}
	sentinel, isSym := lst.Elements[0].Kind.(ast.SymbolNode)
	if !isSym || sentinel.Value != "_obj" {
		return "", nil, false
	}
	switch tag := lst.Elements[1].Kind.(type) {
	case ast.WordNode:
		class = tag.Value
	case ast.SymbolNode:
		class = tag.Value
	default:
		return "", nil, false
	}
	if _, isList := lst.Elements[2].Kind.(ast.ListNode); !isList {
		return "", nil, false
	}
	return class, lst.Elements[2], true
}

// newObject builds a (_obj class payload) node at pos.
func newObject(class string, payload []*ast.NodeWrapper, at *ast.NodeWrapper) *ast.NodeWrapper {
	return &ast.NodeWrapper{
		Kind: ast.ListNode{Elements: []*ast.NodeWrapper{
			{Kind: ast.SymbolNode{Value: "_obj"}, Index: at.Index, Pos: at.Pos},
			{Kind: ast.WordNode{Value: class}, Index: at.Index, Pos: at.Pos},
			{Kind: ast.ListNode{Elements: payload}, Index: at.Index, Pos: at.Pos},
		}},
		Index: at.Index,
		Pos:   at.Pos,
	}
}

// nilObject is the canonical empty-payload object returned by built-ins
// that act only for effect (print, define).
func nilObject(at *ast.NodeWrapper) *ast.NodeWrapper {
	return newObject("nil", nil, at)
}
