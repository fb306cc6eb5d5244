package eval

import (
	"strconv"

	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
)

// builtinFunc is the shape every built-in target implements: given the
// invoking node (for position) and its already-evaluated arguments,
// produce a result or an error.
type builtinFunc func(e *Evaluator, call *ast.NodeWrapper, args []*ast.NodeWrapper) (*ast.NodeWrapper, *errors.MifulError)

// builtins is the literal-name dispatch table of spec.md 4.3.2. Names here
// may never be shadowed by a user define (spec.md 4.3.4's "cannot override
// built-in").
var builtins = map[string]builtinFunc{
	"print":      builtinPrint,
	"input":      builtinInput,
	"mk-sym":     builtinMkSym,
	":":          builtinColon,
	"define":     builtinDefine,
	"=":          builtinEquals,
	"+":          builtinAdd,
	"-":          builtinSub,
	"*":          builtinMul,
	"if":         builtinIf,
	"return":     builtinReturn,
	"obj-append": builtinObjAppend,
	"length":     builtinLength,
	"head":       builtinHead,
	"tail":       builtinTail,
	"reverse":    builtinReverse,
}

// IsBuiltin reports whether name names a built-in target.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func arityError(n *ast.NodeWrapper, name string, want int) *errors.MifulError {
	return errors.New(errors.KindRuntime, n.Index, n.Pos, "runtime: "+name+" expects exactly "+strconv.Itoa(want)+" argument(s)")
}

func typeError(n *ast.NodeWrapper, name string) *errors.MifulError {
	return errors.New(errors.KindRuntime, n.Index, n.Pos, "runtime: invalid parameter types for "+name)
}
