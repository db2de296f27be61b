package render

import (
	"testing"
)

func TestContext_MergeOverridesOnlyPatchedFields(t *testing.T) {
	base := Context{
		PropertyOrMethod:    true,
		PreferStructLiteral: true,
		ClassName:           "Widget",
	}

	derived := base.Merge(Patch{
		PropertyOrMethod: Off,
		KeyValue:         On,
	})

	if derived.PropertyOrMethod {
		t.Error("patched PropertyOrMethod should be false")
	}
	if !derived.KeyValue {
		t.Error("patched KeyValue should be true")
	}
	if !derived.PreferStructLiteral {
		t.Error("unpatched PreferStructLiteral changed")
	}
	if derived.ClassName != "Widget" {
		t.Errorf("unpatched ClassName changed: %q", derived.ClassName)
	}
}

func TestContext_MergeDoesNotMutateReceiver(t *testing.T) {
	base := Context{ClassName: "Widget"}
	_ = base.Merge(Patch{ClassName: Name("Other"), KeyValue: On})

	if base.ClassName != "Widget" || base.KeyValue {
		t.Errorf("receiver mutated: %+v", base)
	}
}

func TestContext_MergeEmptyPatchIsIdentity(t *testing.T) {
	base := Context{
		InStructBody:  true,
		StringAsIdent: true,
		ClassName:     "Config",
	}
	if got := base.Merge(Patch{}); got != base {
		t.Errorf("Merge(empty) = %+v, want %+v", got, base)
	}
}

func TestRenderer_WithScopesContext(t *testing.T) {
	r := NewRenderer(RuleSet{}, nil, Context{PreferStructLiteral: true}, nil, nil, 0, nil)

	scoped := r.With(Patch{KeyValue: On})
	if !scoped.Context().KeyValue {
		t.Error("scoped renderer lost patch")
	}
	if !scoped.Context().PreferStructLiteral {
		t.Error("scoped renderer lost inherited flag")
	}
	if r.Context().KeyValue {
		t.Error("parent renderer observed child patch")
	}
}
