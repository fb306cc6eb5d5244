// Package ast defines Miful's NodeWrapper tree (spec.md 3.2). Grounded on
// btouchard-gmx's internal/compiler/ast.go, which models Node/Expression/
// Statement as interfaces with a TokenLiteral marker and dispatches on them
// via type switches (see script/transpiler.go). Miful collapses that to one
// polymorphism axis, NodeKind, per spec.md 9's "prefer tagged union pattern
// matching over virtual hierarchies" note: every NodeWrapper carries the
// same envelope (hooks, source index, position) regardless of what kind of
// value it holds.
package ast

import "github.com/btouchard/miful/internal/compiler/token"

// NodeKind is the tagged union of node payloads: Word, Symbol, Int, Float,
// List, Quote, Invoke, LambdaHook. It has no methods beyond the marker —
// callers type-switch on the concrete type, exactly as gmx's transpiler
// type-switches on ast.Expression.
type NodeKind interface {
	nodeKind()
}

// NodeWrapper is spec.md 3.2's NodeWrapper: a NodeKind, its hook list (the
// concatenation of all descendants' hook lists in traversal order), the
// grapheme index it starts at, and its source position.
type NodeWrapper struct {
	Kind  NodeKind
	Hooks []*NodeWrapper
	Index int
	Pos   token.Position
}

// WordNode is an atomic Word value. Payload is always non-empty
// (spec.md 3.2's invariant).
type WordNode struct {
	Value string
}

func (WordNode) nodeKind() {}

// SymbolNode is an atomic Symbol value. Payload is always non-empty.
type SymbolNode struct {
	Value string
}

func (SymbolNode) nodeKind() {}

// IntNode is an atomic Int value.
type IntNode struct {
	Value int64
}

func (IntNode) nodeKind() {}

// FloatNode is an atomic Float value.
type FloatNode struct {
	Value float64
}

func (FloatNode) nodeKind() {}

// ListNode is an ordered tuple written with parentheses.
type ListNode struct {
	Elements []*NodeWrapper
}

func (ListNode) nodeKind() {}

// QuoteNode is a deferred invocation written with braces: its argument
// subtrees have had LambdaHook substitution applied (resolve_hooks) but are
// not executed.
type QuoteNode struct {
	Target string
	With   []*NodeWrapper
}

func (QuoteNode) nodeKind() {}

// InvokeNode is an executed invocation written with brackets.
type InvokeNode struct {
	Target string
	With   []*NodeWrapper
}

func (InvokeNode) nodeKind() {}

// LambdaHookNode is a placeholder produced by "{? ... ?}" syntax. HookIndex
// is the position into the enclosing quote's hook list this hook resolves
// to at evaluation time.
type LambdaHookNode struct {
	HookIndex int
}

func (LambdaHookNode) nodeKind() {}

// KindName returns the lowercase type-language name for a node's kind, as
// used by mtype.Simple matching ("int", "float", "word", "symbol", "list",
// "quote").
func KindName(n *NodeWrapper) string {
	switch n.Kind.(type) {
	case WordNode:
		return "word"
	case SymbolNode:
		return "symbol"
	case IntNode:
		return "int"
	case FloatNode:
		return "float"
	case ListNode:
		return "list"
	case QuoteNode, InvokeNode:
		return "quote"
	case LambdaHookNode:
		return "hook"
	default:
		return "unknown"
	}
}

// CollectHooks concatenates the hook lists of each child in left-to-right
// order, the rule every container (List/Quote/Invoke) uses to build its own
// Hooks field (spec.md 3.2: "Hooks propagate upward").
func CollectHooks(children []*NodeWrapper) []*NodeWrapper {
	var hooks []*NodeWrapper
	for _, c := range children {
		hooks = append(hooks, c.Hooks...)
	}
	return hooks
}
