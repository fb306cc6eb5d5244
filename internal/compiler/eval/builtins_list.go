package eval

import (
	"strconv"

	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
)

func builtinLength(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "length", 1)
	}
	lst, ok := args[0].Kind.(ast.ListNode)
	if !ok {
		return nil, typeError(call, "length")
	}
	return &ast.NodeWrapper{Kind: ast.IntNode{Value: int64(len(lst.Elements))}, Index: call.Index, Pos: call.Pos}, nil
}

func builtinHead(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "head", 1)
	}
	lst, ok := args[0].Kind.(ast.ListNode)
	if !ok {
		return nil, typeError(call, "head")
	}
	if len(lst.Elements) == 0 {
		return nil, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: head of empty list")
	}
	return lst.Elements[0], nil
}

func builtinTail(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "tail", 1)
	}
	lst, ok := args[0].Kind.(ast.ListNode)
	if !ok {
		return nil, typeError(call, "tail")
	}
	if len(lst.Elements) == 0 {
		return nil, errors.New(errors.KindRuntime, call.Index, call.Pos, "runtime: tail of empty list")
	}
	rest := lst.Elements[1:]
	return &ast.NodeWrapper{Kind: ast.ListNode{Elements: rest}, Hooks: ast.CollectHooks(rest), Index: call.Index, Pos: call.Pos}, nil
}

func builtinReverse(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "reverse", 1)
	}
	lst, ok := args[0].Kind.(ast.ListNode)
	if !ok {
		return nil, typeError(call, "reverse")
	}
	reversed := make([]*ast.NodeWrapper, len(lst.Elements))
	for i, el := range lst.Elements {
		reversed[len(lst.Elements)-1-i] = el
	}
	return &ast.NodeWrapper{Kind: ast.ListNode{Elements: reversed}, Hooks: ast.CollectHooks(reversed), Index: call.Index, Pos: call.Pos}, nil
}

func builtinObjAppend(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 2 {
		return nil, arityError(call, "obj-append", 2)
	}
	class, payload, ok := asObject(args[0])
	if !ok {
		return nil, typeError(call, "obj-append")
	}
	toAppend, ok := args[1].Kind.(ast.ListNode)
	if !ok {
		return nil, typeError(call, "obj-append")
	}
	existing := payload.Kind.(ast.ListNode)
	merged := append(append([]*ast.NodeWrapper{}, existing.Elements...), toAppend.Elements...)
	return newObject(class, merged, call), nil
}

func builtinMkSym(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError) {
	if len(args) != 1 {
		return nil, arityError(call, "mk-sym", 1)
	}
	var text string
	switch k := args[0].Kind.(type) {
	case ast.WordNode:
		text = k.Value
	case ast.IntNode:
		text = strconv.FormatInt(k.Value, 10)
	case ast.FloatNode:
		text = strconv.FormatFloat(k.Value, 'f', -1, 64)
	default:
		return nil, typeError(call, "mk-sym")
	}
	return &ast.NodeWrapper{Kind: ast.SymbolNode{Value: text}, Index: call.Index, Pos: call.Pos}, nil
}
