package render

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/diag"
	"glot/internal/source"
	"glot/internal/syntax"
	"glot/internal/types"
)

// RuleFunc renders one syntax construct into an output node. Rules recurse
// through the renderer, deriving a scoped context first when the subtree
// needs different behavior.
type RuleFunc func(r *Renderer, n *sitter.Node) *Node

// RuleSet maps a node-kind tag to its rendering rule. A kind with no entry
// is a structural inconsistency, not user error; Convert panics on it.
type RuleSet map[string]RuleFunc

// TypeMapper translates a semantic type descriptor into target-language type
// syntax. allowOptional requests the optional marker even when the ref alone
// would not carry it (an explicit `?` parameter, say).
type TypeMapper func(r *Renderer, n *sitter.Node, ref types.Ref, allowOptional bool) string

// MissingRuleError is the fatal dispatch failure raised for a node kind
// without a rule. It aborts the whole pass via panic; the driver recovers it
// into a hard error.
type MissingRuleError struct {
	Kind string
	Span source.Span
}

func (e *MissingRuleError) Error() string {
	return fmt.Sprintf("no rendering rule for node kind %q at %s", e.Kind, e.Span)
}

// Renderer drives one conversion pass. The rule table, checker, source bytes
// and the diagnostics bag are shared across the pass; the context is an
// immutable per-frame value, so derived renderers are cheap views.
type Renderer struct {
	ctx     Context
	rules   RuleSet
	mapType TypeMapper
	checker *types.Checker
	content []byte
	fid     source.FileID
	bag     *diag.Bag
}

// NewRenderer wires a renderer for one file.
func NewRenderer(rules RuleSet, mapType TypeMapper, rootCtx Context,
	checker *types.Checker, content []byte, fid source.FileID, bag *diag.Bag) *Renderer {
	return &Renderer{
		ctx:     rootCtx,
		rules:   rules,
		mapType: mapType,
		checker: checker,
		content: content,
		fid:     fid,
		bag:     bag,
	}
}

// Context returns the current, immutable context.
func (r *Renderer) Context() Context {
	return r.ctx
}

// With returns a renderer view scoped to the merged context. The receiver is
// unaffected; diagnostics still land in the shared bag.
func (r *Renderer) With(p Patch) *Renderer {
	out := *r
	out.ctx = r.ctx.Merge(p)
	return &out
}

// Convert renders one subtree. Missing dispatch aborts the pass.
func (r *Renderer) Convert(n *sitter.Node) *Node {
	rule, ok := r.rules[n.Type()]
	if !ok {
		panic(&MissingRuleError{Kind: n.Type(), Span: r.Span(n)})
	}
	return rule(r, n)
}

// ConvertAll renders a sibling list in order.
func (r *Renderer) ConvertAll(nodes []*sitter.Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, r.Convert(n))
	}
	return out
}

// Report accumulates an error diagnostic for n without stopping traversal.
func (r *Renderer) Report(code diag.Code, n *sitter.Node, msg string) {
	r.bag.Add(diag.NewError(code, r.Span(n), msg))
}

// Warn accumulates a warning diagnostic for n.
func (r *Renderer) Warn(code diag.Code, n *sitter.Node, msg string) {
	r.bag.Add(diag.NewWarning(code, r.Span(n), msg))
}

// Text returns the exact source text of n.
func (r *Renderer) Text(n *sitter.Node) string {
	return syntax.Text(n, r.content)
}

// Span returns the source span of n.
func (r *Renderer) Span(n *sitter.Node) source.Span {
	return syntax.NodeSpan(r.fid, n)
}

// Checker exposes the type queries of the external checker collaborator.
func (r *Renderer) Checker() *types.Checker {
	return r.checker
}

// TypeOf resolves the semantic type of an expression node.
func (r *Renderer) TypeOf(n *sitter.Node) (types.Ref, bool) {
	return r.checker.TypeOf(n)
}

// MapType renders a type descriptor in target syntax via the backend mapper.
func (r *Renderer) MapType(n *sitter.Node, ref types.Ref, allowOptional bool) string {
	return r.mapType(r, n, ref, allowOptional)
}

// Recover translates a MissingRuleError panic into an error. Drivers call it
// in a deferred handler around a whole pass; other panics keep propagating.
func Recover(err *error) {
	if rec := recover(); rec != nil {
		if mre, ok := rec.(*MissingRuleError); ok {
			*err = mre
			return
		}
		panic(rec)
	}
}
