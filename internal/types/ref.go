// Package types models semantic type descriptors for example-file expressions
// and resolves them from annotations and declarations in the parsed file.
package types

import (
	"strings"
)

// Kind discriminates the shape of a type reference.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindPrimitive
	KindNamed
	KindArray
	KindMap
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindNamed:
		return "named"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindUnion:
		return "union"
	}
	return "unknown"
}

// Ref describes the type of a value at a use site, independent of surface
// syntax. Optional records nullability coming from a `| undefined`-like union
// member or an explicit optional marker; it is orthogonal to the base shape.
type Ref struct {
	Kind     Kind
	Name     string // primitive or declared/aliased name
	Elem     *Ref   // array element or map value
	Members  []Ref  // union members with absent members already stripped
	Optional bool
}

// Unknown is the zero descriptor for expressions without type information.
var Unknown = Ref{}

func Primitive(name string) Ref {
	return Ref{Kind: KindPrimitive, Name: name}
}

func Named(name string) Ref {
	return Ref{Kind: KindNamed, Name: name}
}

func ArrayOf(elem Ref) Ref {
	return Ref{Kind: KindArray, Elem: &elem}
}

func MapOf(value Ref) Ref {
	return Ref{Kind: KindMap, Elem: &value}
}

// Union builds a union ref from already-stripped members. Optional must be
// set by the caller when an absent member was removed.
func Union(optional bool, members ...Ref) Ref {
	if len(members) == 1 {
		m := members[0]
		m.Optional = m.Optional || optional
		return m
	}
	return Ref{Kind: KindUnion, Members: members, Optional: optional}
}

// IsUnknown reports whether no type information is available.
func (r Ref) IsUnknown() bool {
	return r.Kind == KindUnknown
}

// Simplify reduces a union to its single non-absent member when possible.
// The second result is false for unions with more than one concrete member;
// such types are unsupported and must be diagnosed, not guessed.
func (r Ref) Simplify() (Ref, bool) {
	if r.Kind != KindUnion {
		return r, true
	}
	if len(r.Members) == 1 {
		m := r.Members[0]
		m.Optional = m.Optional || r.Optional
		return m, true
	}
	return r, false
}

// String renders a debug representation, not target syntax.
func (r Ref) String() string {
	var b strings.Builder
	switch r.Kind {
	case KindPrimitive, KindNamed:
		b.WriteString(r.Name)
	case KindArray:
		b.WriteString(r.Elem.String())
		b.WriteString("[]")
	case KindMap:
		b.WriteString("map[string]")
		b.WriteString(r.Elem.String())
	case KindUnion:
		for i, m := range r.Members {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(m.String())
		}
	default:
		b.WriteString("?")
	}
	if r.Optional {
		b.WriteString("?")
	}
	return b.String()
}
