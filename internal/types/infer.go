package types

import (
	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/syntax"
)

// TypeOf resolves the semantic type of an expression node. The bool reports
// whether anything useful was found; callers fall back to context defaults
// otherwise.
func (c *Checker) TypeOf(n *sitter.Node) (Ref, bool) {
	if n == nil {
		return Unknown, false
	}
	switch n.Type() {
	case syntax.KindIdentifier:
		ref, ok := c.vars[c.text(n)]
		if !ok || ref.IsUnknown() {
			return Unknown, false
		}
		return ref, true

	case syntax.KindString, syntax.KindTemplateString:
		return Primitive("string"), true
	case syntax.KindNumber:
		return Primitive("number"), true
	case syntax.KindTrue, syntax.KindFalse:
		return Primitive("boolean"), true

	case syntax.KindObject:
		ref := c.contextualType(n)
		return ref, !ref.IsUnknown()

	case syntax.KindArray:
		for _, elem := range syntax.NamedChildren(n) {
			if elemRef, ok := c.TypeOf(elem); ok {
				return ArrayOf(elemRef), true
			}
		}
		return Ref{Kind: KindArray, Elem: &Ref{}}, true

	case syntax.KindNewExpression:
		ctor := syntax.Field(n, "constructor")
		if ctor == nil {
			return Unknown, false
		}
		return c.resolveNamed(c.text(ctor), nil), true

	case syntax.KindAsExpression:
		// The annotation is the last named child of `expr as T`.
		children := syntax.NamedChildren(n)
		if len(children) < 2 {
			return Unknown, false
		}
		ref := c.ResolveAnnotation(children[len(children)-1])
		return ref, !ref.IsUnknown()

	case syntax.KindParenthesizedExpression, syntax.KindNonNullExpression:
		children := syntax.NamedChildren(n)
		if len(children) == 0 {
			return Unknown, false
		}
		return c.TypeOf(children[0])

	case syntax.KindMemberExpression:
		return c.memberType(n)
	}
	return Unknown, false
}

// contextualType walks outward from an object literal looking for a type the
// surrounding code assigns to it: a declarator annotation, a known struct
// field, or a typed map entry.
func (c *Checker) contextualType(n *sitter.Node) Ref {
	parent := n.Parent()
	if parent == nil {
		return Unknown
	}
	switch parent.Type() {
	case syntax.KindVariableDeclarator:
		if ref := c.ResolveAnnotation(syntax.Field(parent, "type")); !ref.IsUnknown() {
			return ref
		}

	case syntax.KindPair:
		// Entry value inside an enclosing literal that itself has a type.
		grandparent := parent.Parent()
		if grandparent == nil || grandparent.Type() != syntax.KindObject {
			return Unknown
		}
		outer := c.contextualType(grandparent)
		outer, _ = outer.Simplify()
		switch outer.Kind {
		case KindMap:
			if outer.Elem != nil {
				return *outer.Elem
			}
		case KindNamed:
			if d, ok := c.Decl(outer.Name); ok {
				keyNode := syntax.Field(parent, "key")
				if keyNode == nil {
					return Unknown
				}
				if f, ok := d.Field(trimQuotes(c.text(keyNode))); ok {
					return f.Type
				}
			}
		}

	case syntax.KindAsExpression:
		ref, _ := c.TypeOf(parent)
		return ref

	case "return_statement":
		return Unknown
	}
	return Unknown
}

func (c *Checker) memberType(n *sitter.Node) (Ref, bool) {
	objRef, ok := c.TypeOf(syntax.Field(n, "object"))
	if !ok {
		return Unknown, false
	}
	objRef, _ = objRef.Simplify()
	if objRef.Kind != KindNamed {
		return Unknown, false
	}
	d, ok := c.Decl(objRef.Name)
	if !ok {
		return Unknown, false
	}
	prop := syntax.Field(n, "property")
	if prop == nil {
		return Unknown, false
	}
	f, ok := d.Field(c.text(prop))
	if !ok {
		return Unknown, false
	}
	return f.Type, true
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		switch s[0] {
		case '"', '\'', '`':
			if s[len(s)-1] == s[0] {
				return s[1 : len(s)-1]
			}
		}
	}
	return s
}
