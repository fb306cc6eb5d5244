package eval

import (
	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
	"github.com/btouchard/miful/internal/compiler/mtype"
)

// builtinColon implements spec.md 4.3.2's `: (name)` scope lookup.
func builtinColon(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, ":", 1)
	}
	name, ok := atomName(args[0])
	if !ok {
		return nil, typeError(call, ":")
	}
	v, found := e.scope.Get(name)
	if !found {
		return nil, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: undefined constant "+name)
	}
	return v, nil
}

func atomName(n *ast.NodeWrapper) (string, bool) {
	switch k := n.Kind.(type) {
	case ast.WordNode:
		return k.Value, true
	case ast.SymbolNode:
		return k.Value, true
	default:
		return "", false
	}
}

// builtinDefine implements spec.md 4.3.4: validate name/signature/body,
// parse each parameter's type-expression, and insert a new overload into
// the current evaluator's function table.
func builtinDefine(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 3 {
		return nil, arityError(call, "define", 3)
	}

	name, ok := atomName(args[0])
	if !ok {
		return nil, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: invalid define name")
	}
	if IsBuiltin(name) {
		return nil, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: cannot override built-in")
	}

	sigList, ok := args[1].Kind.(ast.ListNode)
	if !ok {
		return nil, errors.New(errors.KindRuntime, args[1].Index, args[1].Pos, "runtime: invalid parameter list")
	}

	argNames := make([]string, 0, len(sigList.Elements))
	signature := make([]mtype.MifulType, 0, len(sigList.Elements))
	for _, pairNode := range sigList.Elements {
		pair, ok := pairNode.Kind.(ast.ListNode)
		if !ok || len(pair.Elements) != 2 {
			return nil, errors.New(errors.KindRuntime, pairNode.Index, pairNode.Pos, "runtime: invalid parameter pair")
		}
		argName, ok := atomName(pair.Elements[0])
		if !ok {
			return nil, errors.New(errors.KindRuntime, pair.Elements[0].Index, pair.Elements[0].Pos, "runtime: invalid parameter name")
		}
		t, err := mtype.ParseArgType(pair.Elements[1])
		if err != nil {
			return nil, err.Wrap("while defining " + name)
		}
		argNames = append(argNames, argName)
		signature = append(signature, t)
	}

	bodyQuote, ok := args[2].Kind.(ast.QuoteNode)
	if !ok {
		return nil, errors.New(errors.KindRuntime, args[2].Index, args[2].Pos, "runtime: define body must be a quote")
	}
	body := &ast.NodeWrapper{
		Kind:  ast.InvokeNode{Target: bodyQuote.Target, With: bodyQuote.With},
		Hooks: args[2].Hooks,
		Index: args[2].Index,
		Pos:   args[2].Pos,
	}

	e.funcs.Define(name, signature, argNames, body)
	return nilObject(call), nil
}
