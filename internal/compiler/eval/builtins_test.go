package eval

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/btouchard/miful/internal/compiler/ast"
)

func newTestEvaluator(in string) (*Evaluator, *bytes.Buffer) {
	var out bytes.Buffer
	return New(NewTopLevelScope(), NewFuncTable(), &out, bufio.NewReader(strings.NewReader(in))), &out
}

func TestEqualsCannotCompareQuotes(t *testing.T) {
	e, _ := newTestEvaluator("")
	call := &ast.NodeWrapper{}
	quote := &ast.NodeWrapper{Kind: ast.QuoteNode{Target: "return", With: nil}}
	atom := &ast.NodeWrapper{Kind: ast.IntNode{Value: 1}}

	if _, err := builtinEquals(e, call, []*ast.NodeWrapper{quote, atom}); err == nil {
		t.Fatal("expected an error comparing a quote")
	}
}

func TestEqualsCannotCompareNestedQuotes(t *testing.T) {
	e, _ := newTestEvaluator("")
	call := &ast.NodeWrapper{}
	quote := &ast.NodeWrapper{Kind: ast.QuoteNode{Target: "return", With: nil}}
	a := &ast.NodeWrapper{Kind: ast.ListNode{Elements: []*ast.NodeWrapper{quote}}}
	b := &ast.NodeWrapper{Kind: ast.ListNode{Elements: []*ast.NodeWrapper{quote}}}

	if _, err := builtinEquals(e, call, []*ast.NodeWrapper{a, b}); err == nil {
		t.Fatal("expected an error comparing a quote nested inside a list")
	}
}

func TestEqualsStructuralOnLists(t *testing.T) {
	e, _ := newTestEvaluator("")
	call := &ast.NodeWrapper{}
	a := &ast.NodeWrapper{Kind: ast.ListNode{Elements: []*ast.NodeWrapper{
		{Kind: ast.IntNode{Value: 1}}, {Kind: ast.WordNode{Value: "x"}},
	}}}
	b := &ast.NodeWrapper{Kind: ast.ListNode{Elements: []*ast.NodeWrapper{
		{Kind: ast.IntNode{Value: 1}}, {Kind: ast.WordNode{Value: "x"}},
	}}}

	result, err := builtinEquals(e, call, []*ast.NodeWrapper{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Render())
	}
	if sym := result.Kind.(ast.SymbolNode); sym.Value != "true" {
		t.Errorf("got %q, want true", sym.Value)
	}
}

func TestObjAppendPreservesClass(t *testing.T) {
	e, _ := newTestEvaluator("")
	call := &ast.NodeWrapper{}
	obj := newObject("string", []*ast.NodeWrapper{{Kind: ast.WordNode{Value: "Hi"}}}, call)
	extra := &ast.NodeWrapper{Kind: ast.ListNode{Elements: []*ast.NodeWrapper{{Kind: ast.WordNode{Value: "!"}}}}}

	result, err := builtinObjAppend(e, call, []*ast.NodeWrapper{obj, extra})
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Render())
	}
	class, payload, ok := asObject(result)
	if !ok || class != "string" {
		t.Fatalf("got %+v, want a string-class object", result)
	}
	lst := payload.Kind.(ast.ListNode)
	if len(lst.Elements) != 2 {
		t.Fatalf("got %d payload elements, want 2", len(lst.Elements))
	}
}

func TestMkSymFromIntAndWord(t *testing.T) {
	e, _ := newTestEvaluator("")
	call := &ast.NodeWrapper{}

	result, err := builtinMkSym(e, call, []*ast.NodeWrapper{{Kind: ast.IntNode{Value: 42}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Render())
	}
	if sym := result.Kind.(ast.SymbolNode); sym.Value != "42" {
		t.Errorf("got %q, want 42", sym.Value)
	}

	result, err = builtinMkSym(e, call, []*ast.NodeWrapper{{Kind: ast.WordNode{Value: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Render())
	}
	if sym := result.Kind.(ast.SymbolNode); sym.Value != "hi" {
		t.Errorf("got %q, want hi", sym.Value)
	}
}

func TestDefineRejectsBuiltinOverride(t *testing.T) {
	e, _ := newTestEvaluator("")
	call := &ast.NodeWrapper{}
	name := &ast.NodeWrapper{Kind: ast.WordNode{Value: "print"}}
	sig := &ast.NodeWrapper{Kind: ast.ListNode{}}
	body := &ast.NodeWrapper{Kind: ast.QuoteNode{Target: "return", With: nil}}

	if _, err := builtinDefine(e, call, []*ast.NodeWrapper{name, sig, body}); err == nil {
		t.Fatal("expected redefining a built-in to be rejected")
	}
}

func TestInputReadsAndRelexesLine(t *testing.T) {
	e, _ := newTestEvaluator("hello 42\n")
	call := &ast.NodeWrapper{}
	prompt := &ast.NodeWrapper{Kind: ast.WordNode{Value: "?"}}

	result, err := builtinInput(e, call, []*ast.NodeWrapper{prompt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err.Render())
	}
	class, payload, ok := asObject(result)
	if !ok || class != "string" {
		t.Fatalf("got %+v, want a string-class object", result)
	}
	lst := payload.Kind.(ast.ListNode)
	if len(lst.Elements) != 3 {
		t.Fatalf("got %d tokens, want 3 (hello, space, 42): %+v", len(lst.Elements), lst.Elements)
	}
	if w, ok := lst.Elements[0].Kind.(ast.WordNode); !ok || w.Value != "hello" {
		t.Errorf("token[0] = %+v, want Word(hello)", lst.Elements[0])
	}
}
