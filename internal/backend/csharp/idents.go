package csharp

import (
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/render"
)

// pascalCase re-cases a source name per C# member convention. Only the first
// rune changes; example-file names are already camelCase.
func pascalCase(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// quoteString renders text as a C# string literal.
func quoteString(text string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range text {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// normalizeString converts the raw source text of a string literal into C#
// double-quoted form, preserving original escape sequences where possible.
func normalizeString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	quote := raw[0]
	inner := raw[1 : len(raw)-1]
	if quote == '\'' || quote == '`' {
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
	}
	return `"` + inner + `"`
}

// stringInner strips the quotes off a string literal's raw source text.
func stringInner(raw string) string {
	if len(raw) >= 2 {
		switch raw[0] {
		case '"', '\'', '`':
			if raw[len(raw)-1] == raw[0] {
				return raw[1 : len(raw)-1]
			}
		}
	}
	return raw
}

// ruleIdentifier renders names. Casing and form depend on context: member
// position re-cases per target convention, and the forced-form flags swap
// identifiers and strings into each other's syntax for literal keys.
func ruleIdentifier(r *render.Renderer, n *sitter.Node) *render.Node {
	name := r.Text(n)
	ctx := r.Context()
	if ctx.IdentAsString {
		return render.Text(quoteString(name))
	}
	if ctx.PropertyOrMethod {
		name = pascalCase(name)
	}
	return render.Text(name)
}

// ruleString renders a quoted literal, unless the ambient context forces
// object-literal keys through the identifier rule.
func ruleString(r *render.Renderer, n *sitter.Node) *render.Node {
	if r.Context().StringAsIdent {
		name := stringInner(r.Text(n))
		if r.Context().PropertyOrMethod {
			name = pascalCase(name)
		}
		return render.Text(name)
	}
	return render.Text(normalizeString(r.Text(n)))
}

func rulePassthrough(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.Text(r.Text(n))
}

func ruleNull(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.Text("null")
}

func ruleThis(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.Text("this")
}

func ruleSyntaxError(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.New(nil, []*render.Node{render.Text("/* ", placeholder, " */")}, render.Opts{CanBreakLine: true})
}

func ruleComment(r *render.Renderer, n *sitter.Node) *render.Node {
	// Line and block comment syntax carries over verbatim.
	return render.New(nil, []*render.Node{render.Text(r.Text(n))}, render.Opts{CanBreakLine: true})
}
