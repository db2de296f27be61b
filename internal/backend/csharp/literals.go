package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/diag"
	"glot/internal/render"
	"glot/internal/syntax"
	"glot/internal/types"
)

// ruleObjectLiteral disambiguates the three literal shapes: a known struct
// type renders the object-initializer form, a known map-like type renders
// the dictionary form with key/value entries, and an untyped literal follows
// the ambient PreferStructLiteral policy.
func ruleObjectLiteral(r *render.Renderer, n *sitter.Node) *render.Node {
	entries := entryNodes(n)

	ref, _ := r.TypeOf(n)
	ref, simplified := ref.Simplify()
	if !simplified {
		r.Report(diag.RenderUnsupportedUnion, n,
			"object literal has an ambiguous union type; falling back to the default literal shape")
		ref = types.Unknown
	}

	switch {
	case ref.Kind == types.KindNamed && r.Checker().IsStruct(ref.Name):
		return structLiteral(r, ref.Name, entries)
	case ref.Kind == types.KindMap:
		return mapLiteral(r, n, ref.Elem, entries)
	case ref.Kind == types.KindNamed:
		// A named non-struct contract; best effort is the named form.
		return structLiteral(r, ref.Name, entries)
	case r.Context().PreferStructLiteral:
		return structLiteral(r, placeholder, entries)
	default:
		return mapLiteral(r, n, nil, entries)
	}
}

// structLiteral renders the named-constructor form: one assignment entry per
// property, keys forced into identifier form with member casing.
func structLiteral(r *render.Renderer, name string, entries []*sitter.Node) *render.Node {
	if len(entries) == 0 {
		return render.Text("new ", name, "()")
	}
	scoped := r.With(render.Patch{KeyValue: render.Off})
	return render.New([]string{"new ", name, " { "}, scoped.ConvertAll(entries), render.Opts{
		Separator: ", ",
		Suffix:    " }",
	})
}

// mapLiteral renders the generic string-keyed dictionary form; entries render
// in key/value context so keys stay strings.
func mapLiteral(r *render.Renderer, n *sitter.Node, elem *types.Ref, entries []*sitter.Node) *render.Node {
	valueType := universalObject
	if elem != nil && !elem.IsUnknown() {
		valueType = r.MapType(n, *elem, false)
	}
	if len(entries) == 0 {
		return render.Text("new Dictionary<string, ", valueType, ">()")
	}
	scoped := r.With(render.Patch{KeyValue: render.On})
	return render.New(
		[]string{"new Dictionary<string, ", valueType, "> { "},
		scoped.ConvertAll(entries),
		render.Opts{Separator: ", ", Suffix: " }"},
	)
}

func entryNodes(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range syntax.NamedChildren(n) {
		switch child.Type() {
		case syntax.KindPair, syntax.KindShorthandPropertyIdent:
			out = append(out, child)
		}
	}
	return out
}

// rulePair branches on the enclosing literal's shape: key/value context
// renders an indexer entry with the key in string form, struct context an
// identifier assignment with member casing.
func rulePair(r *render.Renderer, n *sitter.Node) *render.Node {
	key := syntax.Field(n, "key")
	value := syntax.Field(n, "value")

	valueCtx := r.With(render.Patch{
		KeyValue:         render.Off,
		StringAsIdent:    render.Off,
		IdentAsString:    render.Off,
		PropertyOrMethod: render.Off,
	})

	if r.Context().KeyValue {
		keyNode := r.With(render.Patch{IdentAsString: render.On, StringAsIdent: render.Off}).Convert(key)
		return render.Group(
			render.Text("["),
			keyNode,
			render.Text("] = "),
			valueCtx.Convert(value),
		)
	}

	keyNode := r.With(render.Patch{StringAsIdent: render.On, PropertyOrMethod: render.On}).Convert(key)
	return render.Group(keyNode, render.Text(" = "), valueCtx.Convert(value))
}

// ruleShorthandProperty expands `{ x }` to `{ x: x }` before the pair
// branching.
func ruleShorthandProperty(r *render.Renderer, n *sitter.Node) *render.Node {
	name := r.Text(n)
	if r.Context().KeyValue {
		return render.Text("[", quoteString(name), "] = ", name)
	}
	return render.Text(pascalCase(name), " = ", name)
}

func ruleArrayLiteral(r *render.Renderer, n *sitter.Node) *render.Node {
	elems := syntax.NamedChildren(n)
	if len(elems) == 0 {
		return render.Text("new object[] {}")
	}
	return render.New([]string{"new[] { "}, r.ConvertAll(elems), render.Opts{
		Indent:    indentWidth,
		Separator: ", ",
		Suffix:    " }",
	})
}

// ruleTemplateString reproduces literal spans verbatim (escaped for C#
// string grammar) and re-emits each interpolation's original source text in
// `{...}` slots, preserving order.
func ruleTemplateString(r *render.Renderer, n *sitter.Node) *render.Node {
	if r.Context().StringAsIdent {
		name := stringInner(r.Text(n))
		if r.Context().PropertyOrMethod {
			name = pascalCase(name)
		}
		return render.Text(name)
	}

	// Walk by byte offset so literal spans between substitutions survive
	// regardless of how the grammar tokenizes them.
	raw := r.Text(n)
	base := n.StartByte()
	cursor := 1 // past the opening backtick
	end := len(raw) - 1

	var b strings.Builder
	b.WriteString(`$"`)
	for _, sub := range syntax.NamedChildrenOfKind(n, syntax.KindTemplateSubstitution) {
		start := int(sub.StartByte() - base)
		if start > cursor {
			b.WriteString(escapeInterpolatedSpan(raw[cursor:start]))
		}
		b.WriteString("{")
		if exprs := syntax.NamedChildren(sub); len(exprs) > 0 {
			b.WriteString(r.Text(exprs[0]))
		}
		b.WriteString("}")
		cursor = int(sub.EndByte() - base)
	}
	if cursor < end {
		b.WriteString(escapeInterpolatedSpan(raw[cursor:end]))
	}
	b.WriteString(`"`)
	return render.Text(b.String())
}

// escapeInterpolatedSpan escapes a raw template span for a C# interpolated
// string: quotes and braces gain their doubled/escaped forms, existing
// backslash escapes pass through.
func escapeInterpolatedSpan(s string) string {
	s = strings.ReplaceAll(s, `{`, `{{`)
	s = strings.ReplaceAll(s, `}`, `}}`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
