package render

// Opts is the layout metadata of an output node. Zero value means: inline,
// no separator, no suffix.
type Opts struct {
	// Indent is the extra leading whitespace, in spaces, applied to every
	// line break emitted inside this node's subtree.
	Indent int
	// Separator is inserted between consecutive children.
	Separator string
	// Suffix is a fixed trailing fragment, typically a closing delimiter.
	// When any direct child occupied its own line the suffix starts on a
	// fresh line at the parent's indentation.
	Suffix string
	// CanBreakLine marks the node as eligible to start on a fresh line when
	// it appears inside a block.
	CanBreakLine bool
}

// Node is one piece of the layout-deferred output tree: leading literal
// fragments, rendered children, and layout options. Its final text is a pure
// function of these fields; nothing is mutated after construction.
type Node struct {
	prefix   []string
	children []*Node
	opts     Opts
}

// New builds an output node from prefix fragments, children and options.
func New(prefix []string, children []*Node, opts Opts) *Node {
	return &Node{prefix: prefix, children: children, opts: opts}
}

// Text builds a leaf from literal fragments.
func Text(fragments ...string) *Node {
	return &Node{prefix: fragments}
}

// Group builds an inline sequence of children with no extra layout.
func Group(children ...*Node) *Node {
	return &Node{children: children}
}

// WithOpts returns a copy of the node with different layout options. Used by
// rules that reuse a sub-render but need, say, a line break of their own.
func (n *Node) WithOpts(opts Opts) *Node {
	return &Node{prefix: n.prefix, children: n.children, opts: opts}
}

// Breakable reports whether the node starts on a fresh line inside a block.
func (n *Node) Breakable() bool {
	return n.opts.CanBreakLine
}

// Flatten performs the second pass: depth-first concatenation with
// indentation bookkeeping. Rules never see absolute positions; all layout
// happens here.
func (n *Node) Flatten() string {
	w := newWriter()
	n.write(w)
	return w.String()
}

func (n *Node) write(w *writer) {
	for _, p := range n.prefix {
		w.WriteString(p)
	}
	w.pushIndent(n.opts.Indent)
	broke := false
	for i, child := range n.children {
		if child == nil {
			continue
		}
		if i > 0 && n.opts.Separator != "" {
			w.WriteString(n.opts.Separator)
		}
		if child.Breakable() {
			w.Newline()
			broke = true
		}
		child.write(w)
	}
	w.popIndent(n.opts.Indent)
	if n.opts.Suffix != "" {
		if broke {
			w.Newline()
		}
		w.WriteString(n.opts.Suffix)
	}
}
