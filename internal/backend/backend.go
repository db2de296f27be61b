// Package backend defines the contract a target-language instantiation of
// the rendering engine must satisfy, and a registry the CLI selects from.
package backend

import (
	"fmt"
	"sort"
	"strings"

	"glot/internal/render"
)

// Backend is one target language: a rule catalog, a type mapper, and the
// root-context defaults the rules assume.
type Backend interface {
	Name() string
	FileExtension() string
	Rules() render.RuleSet
	TypeMapper() render.TypeMapper
	// DefaultContext seeds the root context; preferStruct is the configured
	// literal-shape policy for untyped object literals.
	DefaultContext(preferStruct bool) render.Context
}

var registry = map[string]Backend{}

// Register adds a backend under its name. Duplicate registration is a
// programming error.
func Register(b Backend) {
	if _, dup := registry[b.Name()]; dup {
		panic(fmt.Sprintf("backend %q registered twice", b.Name()))
	}
	registry[b.Name()] = b
}

// Lookup resolves a backend by name.
func Lookup(name string) (Backend, bool) {
	b, ok := registry[name]
	return b, ok
}

// Names lists registered backends in stable order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ErrUnknown builds the error for an unrecognized backend name.
func ErrUnknown(name string) error {
	return fmt.Errorf("unknown target %q (known targets: %s)", name, strings.Join(Names(), ", "))
}
