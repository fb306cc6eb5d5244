package eval

import (
	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/mtype"
)

// funcEntry is one function-table binding: a name, its overload signature,
// parameter names in declaration order, and its body re-expressed as an
// invoke (spec.md 4.3.4).
type funcEntry struct {
	Name      string
	Signature []mtype.MifulType
	ArgNames  []string
	Body      *ast.NodeWrapper
}

// FuncTable is the ordered overload table of spec.md 3.5: entries accumulate
// in insertion order, and re-defining an identical (name, signature) key
// replaces the existing entry in place rather than appending a shadow
// (spec.md 9's resolution of the overload-selection open question).
type FuncTable struct {
	entries []funcEntry
}

// NewFuncTable returns an empty function table.
func NewFuncTable() *FuncTable {
	return &FuncTable{}
}

// Clone returns an independent copy of the table.
func (t *FuncTable) Clone() *FuncTable {
	c := &FuncTable{entries: make([]funcEntry, len(t.entries))}
	copy(c.entries, t.entries)
	return c
}

// Define inserts or replaces the (name, signature) binding.
func (t *FuncTable) Define(name string, signature []mtype.MifulType, argNames []string, body *ast.NodeWrapper) {
	entry := funcEntry{Name: name, Signature: signature, ArgNames: argNames, Body: body}
	for i, e := range t.entries {
		if e.Name == name && signaturesEqual(e.Signature, signature) {
			t.entries[i] = entry
			return
		}
	}
	t.entries = append(t.entries, entry)
}

// Lookup finds the first entry named name whose signature accepts args
// (spec.md 4.3.3's args_compatible scan).
func (t *FuncTable) Lookup(name string, args []*ast.NodeWrapper) (*funcEntry, bool) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.Name != name {
			continue
		}
		if argsCompatible(e.Signature, args) {
			return e, true
		}
	}
	return nil, false
}

// Signatures returns the rendered signatures of every overload named name,
// for the "function not found with desired parameter types" diagnostic.
func (t *FuncTable) Signatures(name string) []string {
	var out []string
	for _, e := range t.entries {
		if e.Name != name {
			continue
		}
		out = append(out, mtype.String(mtype.Tuple{Elements: e.Signature}))
	}
	return out
}

func argsCompatible(signature []mtype.MifulType, args []*ast.NodeWrapper) bool {
	if len(signature) != len(args) {
		return false
	}
	for i, t := range signature {
		if !mtype.CheckType(args[i], t) {
			return false
		}
	}
	return true
}

func signaturesEqual(a, b []mtype.MifulType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if mtype.String(a[i]) != mtype.String(b[i]) {
			return false
		}
	}
	return true
}
