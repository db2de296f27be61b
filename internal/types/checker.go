package types

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/syntax"
)

// Field is one data member of a declared interface or class.
type Field struct {
	Name     string
	Type     Ref
	Optional bool
}

// Decl is a named type declaration collected from the file: an interface,
// a class, or the target of a type alias.
type Decl struct {
	Name       string
	Fields     []Field
	StructLike bool // all members are data properties, no behavior
	IsClass    bool
}

// Field looks up a data member by source name.
func (d *Decl) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Checker answers type queries for one parsed file. Resolution is syntactic:
// annotations, declared interfaces/classes/aliases, and literal inference.
// That is deliberately the depth documented example files need.
type Checker struct {
	content []byte
	decls   map[string]*Decl
	aliases map[string]*sitter.Node // alias name -> aliased type node
	vars    map[string]Ref          // declared or inferred variable types
}

// Collect walks the whole file once and records every type-relevant
// declaration, then resolves variable types in a second pass so forward
// references to interfaces work.
func Collect(root *sitter.Node, content []byte) *Checker {
	c := &Checker{
		content: content,
		decls:   make(map[string]*Decl),
		aliases: make(map[string]*sitter.Node),
		vars:    make(map[string]Ref),
	}
	c.collectDecls(root)
	c.collectVars(root)
	return c
}

// Decl returns the declaration for a named type, resolving alias chains.
func (c *Checker) Decl(name string) (*Decl, bool) {
	seen := map[string]bool{}
	for !seen[name] {
		seen[name] = true
		if d, ok := c.decls[name]; ok {
			return d, true
		}
		aliased, ok := c.aliases[name]
		if !ok {
			return nil, false
		}
		if aliased.Type() != syntax.KindTypeIdentifier {
			return nil, false
		}
		name = syntax.Text(aliased, c.content)
	}
	return nil, false
}

// Decls lists every collected declaration sorted by name.
func (c *Checker) Decls() []*Decl {
	names := make([]string, 0, len(c.decls))
	for name := range c.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Decl, 0, len(names))
	for _, name := range names {
		out = append(out, c.decls[name])
	}
	return out
}

// Var is a named variable with its resolved type, used for reporting.
type Var struct {
	Name string
	Type Ref
}

// Vars lists every variable with a known type, sorted by name.
func (c *Checker) Vars() []Var {
	names := make([]string, 0, len(c.vars))
	for name := range c.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Var, 0, len(names))
	for _, name := range names {
		out = append(out, Var{Name: name, Type: c.vars[name]})
	}
	return out
}

// IsStruct reports whether name resolves to a data-carrying declaration:
// a struct-like interface or a class.
func (c *Checker) IsStruct(name string) bool {
	d, ok := c.Decl(name)
	return ok && (d.StructLike || d.IsClass)
}

func (c *Checker) text(n *sitter.Node) string {
	return syntax.Text(n, c.content)
}

func (c *Checker) collectDecls(n *sitter.Node) {
	if n == nil {
		return
	}
	switch n.Type() {
	case syntax.KindInterfaceDeclaration:
		c.collectInterface(n)
	case syntax.KindClassDeclaration:
		c.collectClass(n)
	case syntax.KindTypeAliasDeclaration:
		name := syntax.Field(n, "name")
		value := syntax.Field(n, "value")
		if name != nil && value != nil {
			c.aliases[c.text(name)] = value
		}
	}
	for _, child := range syntax.NamedChildren(n) {
		c.collectDecls(child)
	}
}

func (c *Checker) collectInterface(n *sitter.Node) {
	nameNode := syntax.Field(n, "name")
	body := syntax.Field(n, "body")
	if nameNode == nil || body == nil {
		return
	}
	decl := &Decl{Name: c.text(nameNode), StructLike: true}
	for _, member := range syntax.NamedChildren(body) {
		switch member.Type() {
		case syntax.KindPropertySignature:
			fieldName := syntax.Field(member, "name")
			if fieldName == nil {
				continue
			}
			ref := c.ResolveAnnotation(syntax.Field(member, "type"))
			optional := hasOptionalMarker(member)
			decl.Fields = append(decl.Fields, Field{
				Name:     c.text(fieldName),
				Type:     ref,
				Optional: optional || ref.Optional,
			})
		case syntax.KindComment:
			// ignored
		default:
			// Method, index or call signatures make the interface behavioral.
			decl.StructLike = false
		}
	}
	c.decls[decl.Name] = decl
}

func (c *Checker) collectClass(n *sitter.Node) {
	nameNode := syntax.Field(n, "name")
	body := syntax.Field(n, "body")
	if nameNode == nil || body == nil {
		return
	}
	decl := &Decl{Name: c.text(nameNode), IsClass: true}
	for _, member := range syntax.NamedChildren(body) {
		if member.Type() != syntax.KindPublicFieldDef {
			continue
		}
		fieldName := syntax.Field(member, "name")
		if fieldName == nil {
			continue
		}
		ref := c.ResolveAnnotation(syntax.Field(member, "type"))
		if ref.IsUnknown() {
			if value := syntax.Field(member, "value"); value != nil {
				ref, _ = c.TypeOf(value)
			}
		}
		decl.Fields = append(decl.Fields, Field{
			Name:     c.text(fieldName),
			Type:     ref,
			Optional: hasOptionalMarker(member) || ref.Optional,
		})
	}
	c.decls[decl.Name] = decl
}

func (c *Checker) collectVars(n *sitter.Node) {
	if n == nil {
		return
	}
	if n.Type() == syntax.KindVariableDeclarator {
		name := syntax.Field(n, "name")
		if name != nil && name.Type() == syntax.KindIdentifier {
			ref := c.ResolveAnnotation(syntax.Field(n, "type"))
			if ref.IsUnknown() {
				if value := syntax.Field(n, "value"); value != nil {
					ref, _ = c.TypeOf(value)
				}
			}
			c.vars[c.text(name)] = ref
		}
	}
	for _, child := range syntax.NamedChildren(n) {
		c.collectVars(child)
	}
}

// hasOptionalMarker detects the `?` token on parameters, property signatures
// and field definitions. The marker is an anonymous child in the grammar.
func hasOptionalMarker(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == "?" {
			return true
		}
	}
	return false
}
