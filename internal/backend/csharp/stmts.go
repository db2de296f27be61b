package csharp

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/diag"
	"glot/internal/render"
	"glot/internal/syntax"
)

func ruleProgram(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.New(nil, r.ConvertAll(syntax.NamedChildren(n)), render.Opts{})
}

func ruleExpressionStatement(r *render.Renderer, n *sitter.Node) *render.Node {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return render.New(nil, []*render.Node{render.Text(";")}, render.Opts{CanBreakLine: true})
	}
	return render.New(nil, []*render.Node{
		r.Convert(children[0]),
		render.Text(";"),
	}, render.Opts{CanBreakLine: true})
}

func ruleStatementBlock(r *render.Renderer, n *sitter.Node) *render.Node {
	return render.New([]string{"{"}, r.ConvertAll(syntax.NamedChildren(n)), render.Opts{
		Indent:       indentWidth,
		Suffix:       "}",
		CanBreakLine: true,
	})
}

func ruleReturnStatement(r *render.Renderer, n *sitter.Node) *render.Node {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return render.New(nil, []*render.Node{render.Text("return;")}, render.Opts{CanBreakLine: true})
	}
	return render.New(nil, []*render.Node{
		render.Text("return "),
		r.Convert(children[0]),
		render.Text(";"),
	}, render.Opts{CanBreakLine: true})
}

// ruleIfStatement keeps the else branch only when the source has one; empty
// branches are never synthesized.
func ruleIfStatement(r *render.Renderer, n *sitter.Node) *render.Node {
	cond := syntax.Field(n, "condition")
	consequence := syntax.Field(n, "consequence")
	alternative := syntax.Field(n, "alternative")

	children := []*render.Node{
		render.Text("if "),
		r.Convert(cond),
		r.Convert(consequence),
	}
	if alternative != nil {
		children = append(children, r.Convert(alternative))
	}
	return render.New(nil, children, render.Opts{CanBreakLine: true})
}

func ruleElseClause(r *render.Renderer, n *sitter.Node) *render.Node {
	children := syntax.NamedChildren(n)
	if len(children) == 0 {
		return render.New(nil, []*render.Node{render.Text("else")}, render.Opts{CanBreakLine: true})
	}
	body := children[0]
	if body.Type() == syntax.KindIfStatement {
		// `else if` chains stay on the else line.
		inner := r.Convert(body).WithOpts(render.Opts{})
		return render.New(nil, []*render.Node{render.Text("else "), inner}, render.Opts{CanBreakLine: true})
	}
	return render.New(nil, []*render.Node{render.Text("else"), r.Convert(body)}, render.Opts{CanBreakLine: true})
}

// ruleForOf rewrites the single-declared-variable for-of shape into foreach.
// Any other header shape renders a placeholder loop variable and a warning;
// this is a known, accepted limitation rather than a silent fix.
func ruleForOf(r *render.Renderer, n *sitter.Node) *render.Node {
	left := syntax.Field(n, "left")
	right := syntax.Field(n, "right")
	body := syntax.Field(n, "body")
	operator := syntax.Field(n, "operator")

	loopVar := "item"
	if left != nil && left.Type() == syntax.KindIdentifier {
		loopVar = r.Text(left)
	} else {
		r.Warn(diag.RenderLoopShape, n, fmt.Sprintf(
			"for-of header does not declare a single variable; using placeholder %q", loopVar))
	}
	if operator != nil && r.Text(operator) == "in" {
		r.Warn(diag.RenderLoopShape, n, "for-in iterates keys; translated as foreach over the collection")
	}

	return render.New(nil, []*render.Node{
		render.Text("foreach (var ", loopVar, " in "),
		r.Convert(right),
		render.Text(")"),
		r.Convert(body),
	}, render.Opts{CanBreakLine: true})
}

// ruleVariableDeclaration renders each declarator as its own statement. The
// declared type comes from the annotation, then the initializer, then the
// inference keyword; the universal object type also prefers inference.
func ruleVariableDeclaration(r *render.Renderer, n *sitter.Node) *render.Node {
	declarators := syntax.NamedChildrenOfKind(n, syntax.KindVariableDeclarator)
	out := make([]*render.Node, 0, len(declarators))
	for _, d := range declarators {
		out = append(out, renderDeclarator(r, d))
	}
	if len(out) == 1 {
		return out[0]
	}
	return render.New(nil, out, render.Opts{})
}

func renderDeclarator(r *render.Renderer, d *sitter.Node) *render.Node {
	name := syntax.Field(d, "name")
	value := syntax.Field(d, "value")

	ref := r.Checker().ResolveAnnotation(syntax.Field(d, "type"))
	if ref.IsUnknown() && value != nil {
		ref, _ = r.TypeOf(value)
	}

	typeStr := "var"
	if !ref.IsUnknown() {
		if mapped := r.MapType(d, ref, false); mapped != universalObject {
			typeStr = mapped
		}
	}

	children := []*render.Node{render.Text(typeStr, " ", r.Text(name))}
	if value != nil {
		children = append(children, render.Text(" = "), r.Convert(value))
	}
	children = append(children, render.Text(";"))
	return render.New(nil, children, render.Opts{CanBreakLine: true})
}

// ruleTypeAlias renders `type X = T` as a using alias.
func ruleTypeAlias(r *render.Renderer, n *sitter.Node) *render.Node {
	name := syntax.Field(n, "name")
	value := syntax.Field(n, "value")

	ref := r.Checker().ResolveAnnotation(value)
	return render.New(nil, []*render.Node{
		render.Text("using ", r.Text(name), " = ", r.MapType(n, ref, false), ";"),
	}, render.Opts{CanBreakLine: true})
}
