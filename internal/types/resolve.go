package types

import (
	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/syntax"
)

// ResolveAnnotation converts a type node (or a wrapping type_annotation) into
// a Ref. Unrecognized shapes resolve to Unknown rather than failing: the
// renderer decides how loudly to complain.
func (c *Checker) ResolveAnnotation(n *sitter.Node) Ref {
	if n == nil {
		return Unknown
	}
	switch n.Type() {
	case syntax.KindTypeAnnotation:
		children := syntax.NamedChildren(n)
		if len(children) == 0 {
			return Unknown
		}
		return c.ResolveAnnotation(children[0])

	case syntax.KindPredefinedType:
		return Primitive(c.text(n))

	case syntax.KindTypeIdentifier:
		return c.resolveNamed(c.text(n), nil)

	case syntax.KindUnionType:
		return c.resolveUnion(n)

	case syntax.KindArrayType:
		children := syntax.NamedChildren(n)
		if len(children) == 0 {
			return Unknown
		}
		return ArrayOf(c.ResolveAnnotation(children[0]))

	case syntax.KindGenericType:
		return c.resolveGeneric(n)

	case syntax.KindObjectType:
		return c.resolveObjectType(n)

	case syntax.KindLiteralType:
		return c.resolveLiteralType(n)

	case "parenthesized_type":
		children := syntax.NamedChildren(n)
		if len(children) == 0 {
			return Unknown
		}
		return c.ResolveAnnotation(children[0])
	}
	return Unknown
}

// resolveNamed keeps the alias name as the rendered type name; only an alias
// of a union resolves through, because union simplification and the derived
// optionality must not hide behind a name.
func (c *Checker) resolveNamed(name string, seen map[string]bool) Ref {
	if seen[name] {
		return Named(name)
	}
	aliased, ok := c.aliases[name]
	if !ok {
		return Named(name)
	}
	if aliased.Type() == syntax.KindUnionType {
		return c.resolveUnion(aliased)
	}
	if aliased.Type() == syntax.KindTypeIdentifier {
		if seen == nil {
			seen = map[string]bool{}
		}
		seen[name] = true
		if inner := c.resolveNamed(c.text(aliased), seen); inner.Kind == KindUnion || inner.Optional {
			return inner
		}
	}
	return Named(name)
}

// resolveUnion flattens nested binary unions, strips absent members
// (undefined, null) into the Optional flag, and keeps the rest.
func (c *Checker) resolveUnion(n *sitter.Node) Ref {
	var members []Ref
	optional := false

	var flatten func(t *sitter.Node)
	flatten = func(t *sitter.Node) {
		if t == nil {
			return
		}
		if t.Type() == syntax.KindUnionType {
			for _, child := range syntax.NamedChildren(t) {
				flatten(child)
			}
			return
		}
		if text := c.text(t); text == "undefined" || text == "null" {
			optional = true
			return
		}
		members = append(members, c.ResolveAnnotation(t))
	}
	flatten(n)

	if len(members) == 0 {
		return Ref{Kind: KindUnion, Optional: optional}
	}
	return Union(optional, members...)
}

func (c *Checker) resolveGeneric(n *sitter.Node) Ref {
	nameNode := syntax.Field(n, "name")
	if nameNode == nil {
		return Unknown
	}
	name := c.text(nameNode)
	args := syntax.NamedChildren(syntax.Field(n, "type_arguments"))

	switch name {
	case "Array", "ReadonlyArray":
		if len(args) == 1 {
			return ArrayOf(c.ResolveAnnotation(args[0]))
		}
	case "Record", "Map":
		// Only string keys map onto the generic string-keyed map shape.
		if len(args) == 2 && c.text(args[0]) == "string" {
			return MapOf(c.ResolveAnnotation(args[1]))
		}
	}
	// Other generics degrade to their base name, best effort.
	return c.resolveNamed(name, nil)
}

// resolveObjectType handles inline object types. A lone string index
// signature is the map shape; anything else carries no usable name.
func (c *Checker) resolveObjectType(n *sitter.Node) Ref {
	members := syntax.NamedChildren(n)
	if len(members) == 1 && members[0].Type() == syntax.KindIndexSignature {
		idx := members[0]
		if keyType := syntax.Field(idx, "index_type"); keyType == nil || c.text(keyType) == "string" {
			return MapOf(c.ResolveAnnotation(syntax.Field(idx, "type")))
		}
	}
	return Unknown
}

func (c *Checker) resolveLiteralType(n *sitter.Node) Ref {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return Unknown
	}
	switch children[0].Type() {
	case syntax.KindString:
		return Primitive("string")
	case syntax.KindNumber:
		return Primitive("number")
	case syntax.KindTrue, syntax.KindFalse:
		return Primitive("boolean")
	}
	return Unknown
}
