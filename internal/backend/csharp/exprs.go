package csharp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/render"
	"glot/internal/syntax"
)

// operators maps source operator spellings that differ in the target.
var operators = map[string]string{
	"===": "==",
	"!==": "!=",
}

// ruleMemberExpression omits the receiver entirely for the implicit self
// reference; otherwise the accessed name renders in member position so it
// picks up target casing.
func ruleMemberExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	object := syntax.Field(n, "object")
	property := syntax.Field(n, "property")

	member := r.With(render.Patch{PropertyOrMethod: render.On, IdentAsString: render.Off})
	if object != nil && object.Type() == syntax.KindThis {
		return member.Convert(property)
	}
	receiver := r.With(render.Patch{PropertyOrMethod: render.Off})
	return render.Group(
		receiver.Convert(object),
		render.Text("."),
		member.Convert(property),
	)
}

func ruleSubscriptExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	object := syntax.Field(n, "object")
	index := syntax.Field(n, "index")
	return render.Group(
		r.Convert(object),
		render.Text("["),
		r.Convert(index),
		render.Text("]"),
	)
}

func ruleCallExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	callee := syntax.Field(n, "function")
	args := syntax.NamedChildren(syntax.Field(n, "arguments"))

	if r.Text(callee) == "console.log" {
		return renderPrintCall(r, args)
	}

	calleeNode := r.With(render.Patch{PropertyOrMethod: render.On}).Convert(callee)
	return render.Group(
		calleeNode,
		render.New([]string{"("}, r.ConvertAll(args), render.Opts{Separator: ", ", Suffix: ")"}),
	)
}

// renderPrintCall folds the "print several values" idiom into one call: a
// single argument passes through, several become one interpolated string.
// String literals splice into the literal text; everything else keeps its
// original argument text in a {} slot.
func renderPrintCall(r *render.Renderer, args []*sitter.Node) *render.Node {
	if len(args) == 1 {
		return render.Group(
			render.Text("Console.WriteLine("),
			r.Convert(args[0]),
			render.Text(")"),
		)
	}

	parts := []string{"Console.WriteLine($\""}
	for i, arg := range args {
		if i > 0 {
			parts = append(parts, " ")
		}
		if arg.Type() == syntax.KindString {
			parts = append(parts, escapeInterpolatedSpan(stringInner(r.Text(arg))))
			continue
		}
		parts = append(parts, "{", r.Text(arg), "}")
	}
	parts = append(parts, "\")")
	return render.Text(parts...)
}

func ruleNewExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	ctor := syntax.Field(n, "constructor")
	args := syntax.NamedChildren(syntax.Field(n, "arguments"))
	return render.Group(
		render.Text("new ", r.Text(ctor)),
		render.New([]string{"("}, r.ConvertAll(args), render.Opts{Separator: ", ", Suffix: ")"}),
	)
}

func ruleBinaryExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	left := syntax.Field(n, "left")
	right := syntax.Field(n, "right")
	op := r.Text(syntax.Field(n, "operator"))
	if mapped, ok := operators[op]; ok {
		op = mapped
	}
	return render.Group(
		r.Convert(left),
		render.Text(" ", op, " "),
		r.Convert(right),
	)
}

func ruleUnaryExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	op := r.Text(syntax.Field(n, "operator"))
	return render.Group(
		render.Text(op),
		r.Convert(syntax.Field(n, "argument")),
	)
}

func ruleAssignmentExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.Group(
		r.Convert(syntax.Field(n, "left")),
		render.Text(" = "),
		r.Convert(syntax.Field(n, "right")),
	)
}

func ruleParenthesized(r *render.Renderer, n *sitter.Node) *render.Node {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return render.Text("()")
	}
	return render.Group(
		render.Text("("),
		r.Convert(children[0]),
		render.Text(")"),
	)
}

// ruleAsExpression renders an explicit cast. Casts never introduce
// optionality, so the mapper runs without the optional marker.
func ruleAsExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	children := syntax.NamedChildren(n)
	if len(children) < 2 {
		return r.Convert(children[0])
	}
	expr := children[0]
	typeNode := children[len(children)-1]

	ref := r.Checker().ResolveAnnotation(typeNode)
	ref.Optional = false
	return render.Group(
		render.Text("(", r.MapType(typeNode, ref, false), ")"),
		r.Convert(expr),
	)
}

func ruleNonNullExpression(r *render.Renderer, n *sitter.Node) *render.Node {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return render.Text("")
	}
	return r.Convert(children[0])
}
