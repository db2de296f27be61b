package csharp

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/diag"
	"glot/internal/render"
	"glot/internal/types"
)

// universalObject is the target's catch-all type; the variable-declaration
// rule prefers the inference keyword over naming it explicitly.
const universalObject = "object"

// builtinTypes translates source builtin names into C# type names.
// Unrecognized builtins fall back to the placeholder identifier.
var builtinTypes = map[string]string{
	"string":  "string",
	"number":  "double",
	"boolean": "bool",
	"any":     universalObject,
	"unknown": universalObject,
	"object":  universalObject,
	"void":    "void",
	"null":    universalObject,
	"bigint":  "long",
}

// MapType renders a type descriptor in C# syntax. Optionality is applied
// exactly once, at the end, so nested optional contexts never double the
// marker.
func MapType(r *render.Renderer, n *sitter.Node, ref types.Ref, allowOptional bool) string {
	optional := allowOptional || ref.Optional

	simplified, ok := ref.Simplify()
	if !ok {
		r.Report(diag.RenderUnsupportedUnion, n,
			fmt.Sprintf("union type %s does not reduce to a single concrete member", ref))
		return placeholder
	}
	optional = optional || simplified.Optional

	var name string
	switch simplified.Kind {
	case types.KindMap:
		name = "Dictionary<string, " + elemType(r, n, simplified.Elem) + ">"
	case types.KindArray:
		name = elemType(r, n, simplified.Elem) + "[]"
	case types.KindNamed:
		name = simplified.Name
	case types.KindPrimitive:
		translated, known := builtinTypes[simplified.Name]
		if !known {
			// Unknown builtins surface through the placeholder itself.
			translated = placeholder
		}
		name = translated
	default:
		name = placeholder
	}

	if optional && !strings.HasSuffix(name, "?") {
		name += "?"
	}
	return name
}

func elemType(r *render.Renderer, n *sitter.Node, elem *types.Ref) string {
	if elem == nil || elem.IsUnknown() {
		return universalObject
	}
	return MapType(r, n, *elem, false)
}
