package eval

import (
	"bufio"
	"io"

	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
)

// Evaluator tree-walks a parsed program, threading a scope and function
// table that it never hands back to its constructor (spec.md 4.3, 4.3.5).
type Evaluator struct {
	scope *Scope
	funcs *FuncTable
	out   io.Writer
	in    *bufio.Reader
}

// New constructs an Evaluator over the given scope, function table, and
// I/O streams used by the `print`/`input` built-ins.
func New(scope *Scope, funcs *FuncTable, out io.Writer, in *bufio.Reader) *Evaluator {
	return &Evaluator{scope: scope, funcs: funcs.Clone(), out: out, in: in}
}

// Eval evaluates a top-level sequence, returning one result per input node
// (spec.md 4.3's "Iterates a sequence of AST nodes and yields a sequence of
// result NodeWrappers, one per top-level node").
func (e *Evaluator) Eval(nodes []*ast.NodeWrapper) ([]*ast.NodeWrapper, *errors.MifulError) {
	results := make([]*ast.NodeWrapper, 0, len(nodes))
	for _, n := range nodes {
		r, err := e.evalNode(n)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (e *Evaluator) evalNode(n *ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	switch k := n.Kind.(type) {
	case ast.WordNode, ast.SymbolNode, ast.IntNode, ast.FloatNode:
		return n, nil

	case ast.ListNode:
		elems := make([]*ast.NodeWrapper, len(k.Elements))
		for i, el := range k.Elements {
			r, err := e.evalNode(el)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		return &ast.NodeWrapper{
			Kind:  ast.ListNode{Elements: elems},
			Hooks: ast.CollectHooks(elems),
			Index: n.Index,
			Pos:   n.Pos,
		}, nil

	case ast.QuoteNode:
		with := make([]*ast.NodeWrapper, len(k.With))
		for i, w := range k.With {
			with[i] = resolveHooks(w, n.Hooks)
		}
		return &ast.NodeWrapper{
			Kind:  ast.QuoteNode{Target: k.Target, With: with},
			Hooks: ast.CollectHooks(with),
			Index: n.Index,
			Pos:   n.Pos,
		}, nil

	case ast.InvokeNode:
		return e.evalInvoke(n, k)

	case ast.LambdaHookNode:
		return nil, errors.New(errors.KindRuntime, n.Index, n.Pos, "runtime: unresolved hook")

	default:
		return nil, errors.New(errors.KindRuntime, n.Index, n.Pos, "runtime: unknown node kind")
	}
}

// resolveHooks substitutes every LambdaHook(k) in n with hooks[k], the
// original unquoted subtree captured at parse time (spec.md 4.3.1's
// resolve_hooks). Atoms pass through unchanged; containers recurse.
func resolveHooks(n *ast.NodeWrapper, hooks []*ast.NodeWrapper) *ast.NodeWrapper {
	switch k := n.Kind.(type) {
	case ast.LambdaHookNode:
		if k.HookIndex >= 0 && k.HookIndex < len(hooks) {
			return hooks[k.HookIndex]
		}
		return n
	case ast.ListNode:
		elems := resolveHooksAll(k.Elements, hooks)
		return &ast.NodeWrapper{Kind: ast.ListNode{Elements: elems}, Hooks: ast.CollectHooks(elems), Index: n.Index, Pos: n.Pos}
	case ast.InvokeNode:
		with := resolveHooksAll(k.With, hooks)
		return &ast.NodeWrapper{Kind: ast.InvokeNode{Target: k.Target, With: with}, Hooks: ast.CollectHooks(with), Index: n.Index, Pos: n.Pos}
	case ast.QuoteNode:
		with := resolveHooksAll(k.With, hooks)
		return &ast.NodeWrapper{Kind: ast.QuoteNode{Target: k.Target, With: with}, Hooks: ast.CollectHooks(with), Index: n.Index, Pos: n.Pos}
	default:
		return n
	}
}

func resolveHooksAll(nodes []*ast.NodeWrapper, hooks []*ast.NodeWrapper) []*ast.NodeWrapper {
	out := make([]*ast.NodeWrapper, len(nodes))
	for i, n := range nodes {
		out[i] = resolveHooks(n, hooks)
	}
	return out
}

// evalInvoke evaluates arguments left-to-right, then dispatches by target
// name: built-ins first, the function table otherwise (spec.md 4.3.2).
func (e *Evaluator) evalInvoke(n *ast.NodeWrapper, inv ast.InvokeNode) (*ast.NodeWrapper, *errors.MifulError) {
	args := make([]*ast.NodeWrapper, len(inv.With))
	for i, w := range inv.With {
		r, err := e.evalNode(w)
		if err != nil {
			return nil, err.Wrap("while evaluating invoke parameters")
		}
		args[i] = r
	}

	if fn, ok := builtins[inv.Target]; ok {
		return fn(e, n, args)
	}
	return e.callFunction(n, inv.Target, args)
}

// callFunction dispatches to the function table (spec.md 4.3.3).
func (e *Evaluator) callFunction(n *ast.NodeWrapper, name string, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	entry, ok := e.funcs.Lookup(name, args)
	if !ok {
		msg := "runtime: function not found with desired parameter types"
		if sigs := e.funcs.Signatures(name); len(sigs) > 0 {
			msg += " (available overloads:"
			for _, s := range sigs {
				msg += " " + s
			}
			msg += ")"
		}
		return nil, errors.New(errors.KindRuntime, n.Index, n.Pos, msg)
	}

	inner := e.scope.Clone()
	for i, argName := range entry.ArgNames {
		inner = inner.Extend(argName, args[i])
	}

	innerEval := New(inner, e.funcs.Clone(), e.out, e.in)
	result, err := innerEval.evalNode(entry.Body)
	if err != nil {
		return nil, err.Wrap("while calling function " + name)
	}
	return result, nil
}
