// Package render is the target-agnostic rendering engine: an immutable
// traversal context, a layout-deferred output tree, and a renderer that
// dispatches syntax nodes to per-kind rules supplied by a backend.
//
// The engine is purely functional over the call stack. Context values are
// copied on derive, output nodes are built bottom-up and flattened once, and
// the only mutable state shared across a pass is the diagnostics bag.
package render
