// Package mtype implements MifulType, the structural type language used for
// function overload matching (spec.md 3.3, 4.4). Like ast.NodeKind, it is
// one interface with a marker method and a type switch over its
// implementations, per spec.md 9's "MifulType likewise" note — the same
// shape gmx uses for its ast.Expression/ast.Statement families.
package mtype

import (
	"github.com/btouchard/miful/internal/compiler/ast"
	"github.com/btouchard/miful/internal/compiler/errors"
)

// MifulType is the tagged union: Simple, Object, Tuple, List, AnyOf.
type MifulType interface {
	mifulType()
}

// Simple matches one of the base kind names, or "any" which matches
// anything.
type Simple struct {
	Name string
}

func (Simple) mifulType() {}

// Object matches a three-element (_obj class payload) list whose class tag
// equals Class, or any class when Class == "any".
type Object struct {
	Class string
}

func (Object) mifulType() {}

// Tuple matches a list whose length and element types match exactly,
// position for position.
type Tuple struct {
	Elements []MifulType
}

func (Tuple) mifulType() {}

// List matches a list in which every element matches at least one of
// Elements; the list's length is unconstrained.
type List struct {
	Elements []MifulType
}

func (List) mifulType() {}

// AnyOf matches if any one of Alternatives matches.
type AnyOf struct {
	Alternatives []MifulType
}

func (AnyOf) mifulType() {}

// String renders a MifulType back into signature syntax, for overload
// diagnostics ("runtime: function not found with desired parameter types").
func String(t MifulType) string {
	switch v := t.(type) {
	case Simple:
		return v.Name
	case Object:
		return "(obj " + v.Class + ")"
	case Tuple:
		return "(tuple (" + joinTypes(v.Elements) + "))"
	case List:
		return "(list (" + joinTypes(v.Elements) + "))"
	case AnyOf:
		return joinAlternatives(v.Alternatives)
	default:
		return "?"
	}
}

func joinTypes(ts []MifulType) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += " "
		}
		s += String(t)
	}
	return s
}

func joinAlternatives(ts []MifulType) string {
	s := ""
	for i, t := range ts {
		if i > 0 {
			s += " | "
		}
		s += String(t)
	}
	return s
}

// CheckType implements spec.md 4.4's check_type predicate.
func CheckType(n *ast.NodeWrapper, t MifulType) bool {
	switch v := t.(type) {
	case Simple:
		if v.Name == "any" {
			return true
		}
		return ast.KindName(n) == v.Name
	case Object:
		class, payload, ok := asObject(n)
		if !ok {
			return false
		}
		if v.Class != "any" && class != v.Class {
			return false
		}
		_, isList := payload.Kind.(ast.ListNode)
		return isList
	case Tuple:
		lst, ok := n.Kind.(ast.ListNode)
		if !ok || len(lst.Elements) != len(v.Elements) {
			return false
		}
		for i, elemType := range v.Elements {
			if !CheckType(lst.Elements[i], elemType) {
				return false
			}
		}
		return true
	case List:
		lst, ok := n.Kind.(ast.ListNode)
		if !ok {
			return false
		}
		for _, el := range lst.Elements {
			if !matchesAny(el, v.Elements) {
				return false
			}
		}
		return true
	case AnyOf:
		return matchesAny(n, v.Alternatives)
	default:
		return false
	}
}

func matchesAny(n *ast.NodeWrapper, ts []MifulType) bool {
	for _, t := range ts {
		if CheckType(n, t) {
			return true
		}
	}
	return false
}

// asObject reports whether n is a three-element list matching spec.md 3.4's
// object pattern: (Symbol("_obj") Word|Symbol(class) List(payload)).
func asObject(n *ast.NodeWrapper) (class string, payload *ast.NodeWrapper, ok bool) {
	lst, isList := n.Kind.(ast.ListNode)
	if !isList || len(lst.Elements) != 3 {
		return "", nil, false
	}
	sentinel, isSym := lst.Elements[0].Kind.(ast.SymbolNode)
	if !isSym || sentinel.Value != "_obj" {
		return "", nil, false
	}
	switch tag := lst.Elements[1].Kind.(type) {
	case ast.WordNode:
		class = tag.Value
	case ast.SymbolNode:
		class = tag.Value
	default:
		return "", nil, false
	}
	if _, isList := lst.Elements[2].Kind.(ast.ListNode); !isList {
		return "", nil, false
	}
	return class, lst.Elements[2], true
}

// isPipe reports whether n is the literal "|" symbol used to fold two type
// expressions into an AnyOf (spec.md 4.4).
func isPipe(n *ast.NodeWrapper) bool {
	sym, ok := n.Kind.(ast.SymbolNode)
	return ok && sym.Value == "|"
}

// ListToTypes maps each element of a flat node sequence to a MifulType,
// folding "|" tokens between neighbors into an AnyOf — extending an
// existing AnyOf on the left if present — and rejecting a leading "|" as
// *invalid type union syntax* (spec.md 9's open question).
func ListToTypes(elements []*ast.NodeWrapper) ([]MifulType, *errors.MifulError) {
	var result []MifulType
	pendingPipe := false

	for _, el := range elements {
		if isPipe(el) {
			if len(result) == 0 {
				return nil, errors.New(errors.KindSemantic, el.Index, el.Pos, "invalid type union syntax")
			}
			pendingPipe = true
			continue
		}

		t, err := parseOneType(el)
		if err != nil {
			return nil, err
		}

		if pendingPipe {
			last := result[len(result)-1]
			if ao, ok := last.(AnyOf); ok {
				result[len(result)-1] = AnyOf{Alternatives: append(append([]MifulType{}, ao.Alternatives...), t)}
			} else {
				result[len(result)-1] = AnyOf{Alternatives: []MifulType{last, t}}
			}
			pendingPipe = false
		} else {
			result = append(result, t)
		}
	}

	if pendingPipe {
		return nil, errors.New(errors.KindSemantic, 0, errors.Position{}, "invalid type union syntax")
	}

	return result, nil
}

// ParseArgType parses a single argument's type-expression node (the second
// element of a define signature pair) into exactly one MifulType.
func ParseArgType(node *ast.NodeWrapper) (MifulType, *errors.MifulError) {
	types, err := ListToTypes([]*ast.NodeWrapper{node})
	if err != nil {
		return nil, err
	}
	if len(types) != 1 {
		return nil, errors.New(errors.KindSemantic, node.Index, node.Pos, "invalid type expression")
	}
	return types[0], nil
}

func parseOneType(node *ast.NodeWrapper) (MifulType, *errors.MifulError) {
	switch k := node.Kind.(type) {
	case ast.WordNode:
		return Simple{Name: k.Value}, nil
	case ast.SymbolNode:
		return Simple{Name: k.Value}, nil
	case ast.ListNode:
		return parseListType(node, k.Elements)
	default:
		return nil, errors.New(errors.KindSemantic, node.Index, node.Pos, "invalid type expression")
	}
}

func parseListType(node *ast.NodeWrapper, elems []*ast.NodeWrapper) (MifulType, *errors.MifulError) {
	if len(elems) == 2 {
		if head, ok := headWord(elems[0]); ok {
			switch head {
			case "tuple", "list":
				inner, isList := elems[1].Kind.(ast.ListNode)
				if !isList {
					return nil, errors.New(errors.KindSemantic, elems[1].Index, elems[1].Pos, "invalid type expression")
				}
				parts, err := ListToTypes(inner.Elements)
				if err != nil {
					return nil, err
				}
				if head == "tuple" {
					return Tuple{Elements: parts}, nil
				}
				return List{Elements: parts}, nil
			case "obj":
				class, ok := headWord(elems[1])
				if !ok {
					return nil, errors.New(errors.KindSemantic, elems[1].Index, elems[1].Pos, "invalid type expression")
				}
				return Object{Class: class}, nil
			}
		}
	}

	if len(elems) == 1 {
		return parseOneType(elems[0])
	}

	sub, err := ListToTypes(elems)
	if err != nil {
		return nil, err
	}
	if len(sub) != 1 {
		return nil, errors.New(errors.KindSemantic, node.Index, node.Pos, "invalid type expression")
	}
	return sub[0], nil
}

func headWord(n *ast.NodeWrapper) (string, bool) {
	switch k := n.Kind.(type) {
	case ast.WordNode:
		return k.Value, true
	case ast.SymbolNode:
		return k.Value, true
	default:
		return "", false
	}
}
