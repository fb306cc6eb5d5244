package eval

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/lexer"
	"github.com/btouchard/miful/internal/compiler/parser"
)

// run lexes, parses, and evaluates src against a fresh top-level scope and
// function table, the pipeline spec.md 2's system overview describes.
func run(t *testing.T, src string) ([]*ast.NodeWrapper, *bytes.Buffer) {
	t.Helper()
	nodes, perr := parser.ParseAll(lexer.New(src, lexer.DefaultSymbolChars))
	if perr != nil {
		t.Fatalf("parse(%q) error: %v", src, perr.Render())
	}
	var out bytes.Buffer
	e := New(NewTopLevelScope(), NewFuncTable(), &out, bufio.NewReader(strings.NewReader("")))
	results, err := e.Eval(nodes)
	if err != nil {
		t.Fatalf("eval(%q) error: %v", src, err.Render())
	}
	return results, &out
}

func TestScenarioAddInts(t *testing.T) {
	results, _ := run(t, "[+ 2 3]")
	got := results[0].Kind.(ast.IntNode).Value
	if got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestScenarioAddFloats(t *testing.T) {
	results, _ := run(t, "[+ 1.5 2.25]")
	got := results[0].Kind.(ast.FloatNode).Value
	if got != 3.75 {
		t.Errorf("got %v, want 3.75", got)
	}
}

func TestScenarioIfReturnsThenBranch(t *testing.T) {
	results, _ := run(t, "[if [= 1 1] {return 10} {return 20}]")
	got := results[0].Kind.(ast.IntNode).Value
	if got != 10 {
		t.Errorf("got %d, want 10", got)
	}
}

func TestScenarioDefineAndCall(t *testing.T) {
	results, _ := run(t, "[define sq ((n int)) {* [:n] [:n]}] [sq 7]")
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	got := results[1].Kind.(ast.IntNode).Value
	if got != 49 {
		t.Errorf("got %d, want 49", got)
	}
}

func TestScenarioLength(t *testing.T) {
	results, _ := run(t, "[length (1 2 3 4)]")
	got := results[0].Kind.(ast.IntNode).Value
	if got != 4 {
		t.Errorf("got %d, want 4", got)
	}
}

func TestScenarioHeadOfTail(t *testing.T) {
	results, _ := run(t, "[head [tail (a b c)]]")
	got := results[0].Kind.(ast.WordNode).Value
	if got != "b" {
		t.Errorf("got %q, want b", got)
	}
}

func TestScenarioPrintObjectPayload(t *testing.T) {
	results, out := run(t, "[print (`_obj` string (Hi))]")
	if out.String() != "Hi" {
		t.Errorf("stdout = %q, want Hi", out.String())
	}
	class, _, ok := asObject(results[0])
	if !ok || class != "nil" {
		t.Errorf("result = %+v, want the nil object", results[0])
	}
}

func TestScopeImmutabilityAcrossCall(t *testing.T) {
	// spec.md 8 invariant 3: evaluating any subtree cannot change the
	// caller's scope binding for any name.
	results, _ := run(t, "[define id ((n int)) {return [:n]}] [id 9] [id 3]")
	if results[1].Kind.(ast.IntNode).Value != 9 {
		t.Errorf("first call result = %+v, want 9", results[1])
	}
	if results[2].Kind.(ast.IntNode).Value != 3 {
		t.Errorf("second call result = %+v, want 3", results[2])
	}
}

func TestOverloadByType(t *testing.T) {
	// spec.md 8 invariant 6: two entries with the same name but distinct
	// signatures coexist, and the one matching the call's arg types wins.
	results, _ := run(t, `
		[define describe ((n int)) {return [mk-sym [:n]]}]
		[define describe ((n word)) {return [:n]}]
		[describe 5]
		[describe hello]
	`)
	if got, ok := results[2].Kind.(ast.SymbolNode); !ok || got.Value != "5" {
		t.Errorf("describe(5) = %+v, want Symbol(5)", results[2])
	}
	if got, ok := results[3].Kind.(ast.WordNode); !ok || got.Value != "hello" {
		t.Errorf("describe(hello) = %+v, want Word(hello)", results[3])
	}
}

func TestUnresolvedHookIsRuntimeError(t *testing.T) {
	nodes, perr := parser.ParseAll(lexer.New("{f {? 1 ?}}", lexer.DefaultSymbolChars))
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr.Render())
	}
	// Evaluate the quote's raw hook node directly, bypassing resolve_hooks,
	// to exercise the "unresolved hook" fatal path.
	q := nodes[0].Kind.(ast.QuoteNode)
	hook := q.With[0]

	var out bytes.Buffer
	e := New(NewTopLevelScope(), NewFuncTable(), &out, bufio.NewReader(strings.NewReader("")))
	_, err := e.evalNode(hook)
	if err == nil {
		t.Fatal("expected an unresolved-hook runtime error")
	}
}
