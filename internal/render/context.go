package render

// Context carries the rendering flags a rule may consult. Values are
// immutable: deriving a scoped context via Merge leaves the original intact,
// so sibling subtrees never observe each other's overrides.
type Context struct {
	// PropertyOrMethod marks name position inside a member access, call or
	// member declaration; backends re-case names here.
	PropertyOrMethod bool
	// InStructBody marks the member block of a data-carrying type.
	InStructBody bool
	// KeyValue marks entries of a map-shaped literal; property assignments
	// render as key/value pairs instead of identifier assignments.
	KeyValue bool
	// PreferStructLiteral picks the struct branch for object literals with
	// no static type. Policy knob, seeded from configuration.
	PreferStructLiteral bool
	// StringAsIdent forces a string literal through the identifier rule.
	StringAsIdent bool
	// IdentAsString forces an identifier into string form.
	IdentAsString bool
	// ClassName is the enclosing class, used for constructor naming.
	ClassName string
}

// Patch is a partial context update: nil fields keep the old value.
type Patch struct {
	PropertyOrMethod    *bool
	InStructBody        *bool
	KeyValue            *bool
	PreferStructLiteral *bool
	StringAsIdent       *bool
	IdentAsString       *bool
	ClassName           *string
}

// Merge returns a new context that agrees with c on every field absent from
// p and with p on every field present. c is never modified.
func (c Context) Merge(p Patch) Context {
	out := c
	if p.PropertyOrMethod != nil {
		out.PropertyOrMethod = *p.PropertyOrMethod
	}
	if p.InStructBody != nil {
		out.InStructBody = *p.InStructBody
	}
	if p.KeyValue != nil {
		out.KeyValue = *p.KeyValue
	}
	if p.PreferStructLiteral != nil {
		out.PreferStructLiteral = *p.PreferStructLiteral
	}
	if p.StringAsIdent != nil {
		out.StringAsIdent = *p.StringAsIdent
	}
	if p.IdentAsString != nil {
		out.IdentAsString = *p.IdentAsString
	}
	if p.ClassName != nil {
		out.ClassName = *p.ClassName
	}
	return out
}

// On and Off are shared patch values for boolean fields.
var (
	on  = true
	off = false
	On  = &on
	Off = &off
)

// Name wraps a class name for use in a Patch.
func Name(s string) *string {
	return &s
}
