package csharp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/render"
	"glot/internal/syntax"
)

// returnType resolves a declared return annotation, defaulting to void.
func returnType(r *render.Renderer, n *sitter.Node) string {
	ann := syntax.Field(n, "return_type")
	if ann == nil {
		return "void"
	}
	ref := r.Checker().ResolveAnnotation(ann)
	if ref.IsUnknown() {
		return "void"
	}
	return r.MapType(n, ref, false)
}

func parameterList(r *render.Renderer, n *sitter.Node) *render.Node {
	params := syntax.Field(n, "parameters")
	return render.New([]string{"("}, r.ConvertAll(syntax.NamedChildren(params)), render.Opts{
		Separator: ", ",
		Suffix:    ")",
	})
}

func ruleFunctionDeclaration(r *render.Renderer, n *sitter.Node) *render.Node {
	name := syntax.Field(n, "name")
	displayName := pascalCase(r.Text(name))

	return render.New(nil, []*render.Node{
		render.Text(returnType(r, n), " ", displayName),
		parameterList(r, n),
		r.Convert(syntax.Field(n, "body")),
	}, render.Opts{CanBreakLine: true})
}

// ruleMethodDefinition renders class members. A constructor takes the
// enclosing class's name and has no return type.
func ruleMethodDefinition(r *render.Renderer, n *sitter.Node) *render.Node {
	name := syntax.Field(n, "name")
	sourceName := r.Text(name)

	var heading *render.Node
	if sourceName == "constructor" {
		heading = render.Text("public ", r.Context().ClassName)
	} else {
		heading = render.Text("public ", returnType(r, n), " ", pascalCase(sourceName))
	}

	return render.New(nil, []*render.Node{
		heading,
		parameterList(r, n),
		r.Convert(syntax.Field(n, "body")),
	}, render.Opts{CanBreakLine: true})
}

// ruleParameter renders `Type name`, synthesizing an empty default when the
// source declares optionality without one, so optional parameters round-trip
// without overload generation. An explicit default renders verbatim.
func ruleParameter(r *render.Renderer, n *sitter.Node) *render.Node {
	pattern := syntax.Field(n, "pattern")
	value := syntax.Field(n, "value")

	explicitOptional := n.Type() == syntax.KindOptionalParameter
	ref := r.Checker().ResolveAnnotation(syntax.Field(n, "type"))
	nullable := ref.Optional

	typeStr := universalObject
	if !ref.IsUnknown() {
		typeStr = r.MapType(n, ref, explicitOptional && value == nil)
	}

	children := []*render.Node{render.Text(typeStr, " ", r.Text(pattern))}
	switch {
	case value != nil:
		children = append(children, render.Text(" = "), r.Convert(value))
	case explicitOptional || nullable:
		children = append(children, render.Text(" = default"))
	}
	return render.Group(children...)
}

// heritageList flattens every heritage clause into one inherited-type list.
// Each heritage expression converts independently; the joined list renders
// after the fixed ` : ` separator.
func heritageList(r *render.Renderer, n *sitter.Node) *render.Node {
	var exprs []*sitter.Node
	for _, child := range syntax.NamedChildren(n) {
		switch child.Type() {
		case syntax.KindClassHeritage:
			for _, clause := range syntax.NamedChildren(child) {
				exprs = append(exprs, syntax.NamedChildren(clause)...)
			}
		case syntax.KindExtendsClause, syntax.KindImplementsClause:
			exprs = append(exprs, syntax.NamedChildren(child)...)
		}
	}
	if len(exprs) == 0 {
		return nil
	}
	converted := make([]*render.Node, 0, len(exprs))
	for _, e := range exprs {
		if e.Type() == syntax.KindTypeIdentifier {
			converted = append(converted, render.Text(r.Text(e)))
			continue
		}
		converted = append(converted, r.Convert(e))
	}
	return render.New([]string{" : "}, converted, render.Opts{Separator: ", "})
}

func memberBlock(r *render.Renderer, body *sitter.Node) *render.Node {
	return render.New([]string{"{"}, r.ConvertAll(syntax.NamedChildren(body)), render.Opts{
		Indent:       indentWidth,
		Suffix:       "}",
		CanBreakLine: true,
	})
}

func ruleClassDeclaration(r *render.Renderer, n *sitter.Node) *render.Node {
	name := r.Text(syntax.Field(n, "name"))
	body := syntax.Field(n, "body")

	scoped := r.With(render.Patch{ClassName: render.Name(name)})
	children := []*render.Node{render.Text("class ", name)}
	if heritage := heritageList(r, n); heritage != nil {
		children = append(children, heritage)
	}
	children = append(children, memberBlock(scoped, body))
	return render.New(nil, children, render.Opts{CanBreakLine: true})
}

// ruleInterfaceDeclaration renders a struct-like interface (data properties
// only) as a data-carrying class whose members follow struct-literal rules,
// and a behavioral interface as a contract type.
func ruleInterfaceDeclaration(r *render.Renderer, n *sitter.Node) *render.Node {
	name := r.Text(syntax.Field(n, "name"))
	body := syntax.Field(n, "body")

	decl, _ := r.Checker().Decl(name)
	structLike := decl != nil && decl.StructLike

	keyword := "interface "
	patch := render.Patch{ClassName: render.Name(name)}
	if structLike {
		keyword = "class "
		patch.InStructBody = render.On
	}

	children := []*render.Node{render.Text(keyword, name)}
	if heritage := heritageList(r, n); heritage != nil {
		children = append(children, heritage)
	}
	children = append(children, memberBlock(r.With(patch), body))
	return render.New(nil, children, render.Opts{CanBreakLine: true})
}

func rulePropertySignature(r *render.Renderer, n *sitter.Node) *render.Node {
	name := syntax.Field(n, "name")
	ref := r.Checker().ResolveAnnotation(syntax.Field(n, "type"))
	typeStr := r.MapType(n, ref, hasQuestionMark(n))
	propName := pascalCase(stringInner(r.Text(name)))

	// Struct-like bodies become classes, so members need the access
	// modifier; behavioral interface members carry none.
	prefix := ""
	if r.Context().InStructBody {
		prefix = "public "
	}
	return render.New(nil, []*render.Node{
		render.Text(prefix, typeStr, " ", propName, " { get; set; }"),
	}, render.Opts{CanBreakLine: true})
}

func ruleMethodSignature(r *render.Renderer, n *sitter.Node) *render.Node {
	name := syntax.Field(n, "name")
	return render.New(nil, []*render.Node{
		render.Text(returnType(r, n), " ", pascalCase(r.Text(name))),
		parameterList(r, n),
		render.Text(";"),
	}, render.Opts{CanBreakLine: true})
}

// rulePublicField renders class fields as auto-properties so struct-literal
// object initializers work against generated classes.
func rulePublicField(r *render.Renderer, n *sitter.Node) *render.Node {
	name := syntax.Field(n, "name")
	value := syntax.Field(n, "value")

	ref := r.Checker().ResolveAnnotation(syntax.Field(n, "type"))
	if ref.IsUnknown() && value != nil {
		ref, _ = r.TypeOf(value)
	}
	typeStr := universalObject
	if !ref.IsUnknown() {
		typeStr = r.MapType(n, ref, hasQuestionMark(n))
	}

	children := []*render.Node{
		render.Text("public ", typeStr, " ", pascalCase(r.Text(name)), " { get; set; }"),
	}
	if value != nil {
		children = append(children, render.Text(" = "), r.Convert(value), render.Text(";"))
	}
	return render.New(nil, children, render.Opts{CanBreakLine: true})
}

// hasQuestionMark detects the optional marker token on a declaration node.
func hasQuestionMark(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "?" {
			return true
		}
	}
	return false
}
