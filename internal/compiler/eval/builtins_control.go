package eval

import (
	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
)

// builtinIf implements spec.md 4.3.2's `if (cond) (then-quote) (else-quote)`:
// exactly one branch is evaluated, by converting the already-evaluated
// Quote result into an Invoke with the same target and arguments.
func builtinIf(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 3 {
		return nil, arityError(call, "if", 3)
	}
	cond, ok := args[0].Kind.(ast.SymbolNode)
	branch := args[2]
	if ok && cond.Value == "true" {
		branch = args[1]
	}

	q, ok := branch.Kind.(ast.QuoteNode)
	if !ok {
		return nil, typeError(call, "if")
	}
	invoke := &ast.NodeWrapper{
		Kind:  ast.InvokeNode{Target: q.Target, With: q.With},
		Hooks: branch.Hooks,
		Index: branch.Index,
		Pos:   branch.Pos,
	}
	return e.evalNode(invoke)
}

// builtinReturn implements spec.md 4.3.2's `return (v)`: passes v through
// unchanged.
func builtinReturn(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "return", 1)
	}
	return args[0], nil
}
