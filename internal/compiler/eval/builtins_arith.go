package eval

import (
	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
)

func builtinAdd(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 2 {
		return nil, arityError(call, "+", 2)
	}
	a, b := args[0], args[1]

	if ai, ok := a.Kind.(ast.IntNode); ok {
		if bi, ok := b.Kind.(ast.IntNode); ok {
			return &ast.NodeWrapper{Kind: ast.IntNode{Value: ai.Value + bi.Value}, Index: call.Index, Pos: call.Pos}, nil
		}
	}
	if af, ok := a.Kind.(ast.FloatNode); ok {
		if bf, ok := b.Kind.(ast.FloatNode); ok {
			return &ast.NodeWrapper{Kind: ast.FloatNode{Value: af.Value + bf.Value}, Index: call.Index, Pos: call.Pos}, nil
		}
	}

	if aClass, aPayload, aOk := asObject(a); aOk {
		if bClass, bPayload, bOk := asObject(b); bOk && aClass == bClass {
			aLst := aPayload.Kind.(ast.ListNode)
			bLst := bPayload.Kind.(ast.ListNode)
			merged := append(append([]*ast.NodeWrapper{}, aLst.Elements...), bLst.Elements...)
			return newObject(aClass, merged, call), nil
		}
	}

	aLst, aIsList := a.Kind.(ast.ListNode)
	bLst, bIsList := b.Kind.(ast.ListNode)
	_, _, aIsObj := asObject(a)
	_, _, bIsObj := asObject(b)
	if aIsList && bIsList && !aIsObj && !bIsObj {
		merged := append(append([]*ast.NodeWrapper{}, aLst.Elements...), bLst.Elements...)
		return &ast.NodeWrapper{Kind: ast.ListNode{Elements: merged}, Hooks: ast.CollectHooks(merged), Index: call.Index, Pos: call.Pos}, nil
	}

	return nil, typeError(call, "+")
}

func builtinSub(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	return numericBinOp(call, "-", args, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
}

func builtinMul(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	return numericBinOp(call, "*", args, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
}

func numericBinOp(call *ast.NodeWrapper, name string, args []*ast.NodeWrapper, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 2 {
		return nil, arityError(call, name, 2)
	}
	a, b := args[0], args[1]
	if ai, ok := a.Kind.(ast.IntNode); ok {
		if bi, ok := b.Kind.(ast.IntNode); ok {
			return &ast.NodeWrapper{Kind: ast.IntNode{Value: intOp(ai.Value, bi.Value)}, Index: call.Index, Pos: call.Pos}, nil
		}
	}
	if af, ok := a.Kind.(ast.FloatNode); ok {
		if bf, ok := b.Kind.(ast.FloatNode); ok {
			return &ast.NodeWrapper{Kind: ast.FloatNode{Value: floatOp(af.Value, bf.Value)}, Index: call.Index, Pos: call.Pos}, nil
		}
	}
	return nil, typeError(call, name)
}

func builtinEquals(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 2 {
		return nil, arityError(call, "=", 2)
	}

	equal, err := structurallyEqual(call, args[0], args[1])
	if err != nil {
		return nil, err
	}
	result := "false"
	if equal {
		result = "true"
	}
	return &ast.NodeWrapper{Kind: ast.SymbolNode{Value: result}, Index: call.Index, Pos: call.Pos}, nil
}

// structurallyEqual compares two values for spec.md 4.3.2's `=` built-in.
// Quotes cannot be compared at any depth, including nested inside a list
// being compared: the original's values_equal raises an error on a quote
// wherever it is encountered, not just at the top level.
func structurallyEqual(call *ast.NodeWrapper, a, b *ast.NodeWrapper) (bool, *errors.MifulError) {
	if _, ok := a.Kind.(ast.QuoteNode); ok {
		return false, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: cannot compare quotes")
	}
	if _, ok := b.Kind.(ast.QuoteNode); ok {
		return false, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: cannot compare quotes")
	}

	switch ak := a.Kind.(type) {
	case ast.WordNode:
		bk, ok := b.Kind.(ast.WordNode)
		return ok && ak.Value == bk.Value, nil
	case ast.SymbolNode:
		bk, ok := b.Kind.(ast.SymbolNode)
		return ok && ak.Value == bk.Value, nil
	case ast.IntNode:
		bk, ok := b.Kind.(ast.IntNode)
		return ok && ak.Value == bk.Value, nil
	case ast.FloatNode:
		bk, ok := b.Kind.(ast.FloatNode)
		return ok && ak.Value == bk.Value, nil
	case ast.ListNode:
		bk, ok := b.Kind.(ast.ListNode)
		if !ok || len(ak.Elements) != len(bk.Elements) {
			return false, nil
		}
		for i := range ak.Elements {
			eq, err := structurallyEqual(call, ak.Elements[i], bk.Elements[i])
			if err != nil {
				return false, err
			}
			if !eq {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, nil
	}
}
