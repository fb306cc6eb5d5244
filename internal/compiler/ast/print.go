package ast

import (
	"strconv"
	"strings"

	"github.com/btouchard/miful/internal/compiler/lexer"
)

// Print renders a NodeWrapper back into Miful's surface syntax. For atoms
// this is exact token round-tripping (spec.md 8's "round-trip atoms" law);
// for containers it is a faithful, if not byte-identical, re-serialization
// — whitespace between elements is normalized to a single space.
func Print(n *NodeWrapper) string {
	if n == nil {
		return ""
	}
	switch k := n.Kind.(type) {
	case WordNode:
		return k.Value
	case SymbolNode:
		if needsBacktick(k.Value) {
			return "`" + k.Value + "`"
		}
		return k.Value
	case IntNode:
		return strconv.FormatInt(k.Value, 10)
	case FloatNode:
		s := strconv.FormatFloat(k.Value, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case ListNode:
		return "(" + printChildren(k.Elements) + ")"
	case QuoteNode:
		return "{" + printTarget(k.Target, k.With) + "}"
	case InvokeNode:
		return "[" + printTarget(k.Target, k.With) + "]"
	case LambdaHookNode:
		return "{?" + strconv.Itoa(k.HookIndex) + "?}"
	default:
		return ""
	}
}

func printTarget(target string, with []*NodeWrapper) string {
	if len(with) == 0 {
		return target
	}
	return target + " " + printChildren(with)
}

func printChildren(nodes []*NodeWrapper) string {
	parts := make([]string, len(nodes))
	for i, c := range nodes {
		parts[i] = Print(c)
	}
	return strings.Join(parts, " ")
}

// needsBacktick reports whether a symbol's payload must be rendered with
// the `escaped-word` syntax because it is not itself a single symbol
// character (spec.md 4.1's Symbol shapes).
func needsBacktick(s string) bool {
	return !lexer.DefaultSymbolChars[s]
}
