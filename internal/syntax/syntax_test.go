package syntax

import (
	"context"
	"testing"

	"glot/internal/diag"
	"glot/internal/source"
)

func TestParseAndHelpers(t *testing.T) {
	content := []byte("function add(a: number, b: number) {\n  return a + b;\n}\n")
	p := NewParser()
	tree, err := Parse(context.Background(), p, content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	if root.Type() != KindProgram {
		t.Fatalf("root kind = %q, want %q", root.Type(), KindProgram)
	}

	fn := root.NamedChild(0)
	if fn.Type() != KindFunctionDeclaration {
		t.Fatalf("first child = %q, want function declaration", fn.Type())
	}
	name := Field(fn, "name")
	if name == nil || Text(name, content) != "add" {
		t.Errorf("name field = %q, want add", Text(name, content))
	}
	params := NamedChildren(Field(fn, "parameters"))
	if len(params) != 2 {
		t.Errorf("got %d parameters, want 2", len(params))
	}

	span := NodeSpan(source.FileID(1), name)
	if got := Text(name, content); content[span.Start] != got[0] {
		t.Errorf("span start %d does not point at the name", span.Start)
	}

	bag := diag.NewBag(10)
	CollectSyntaxErrors(root, source.FileID(1), content, bag)
	if bag.Len() != 0 {
		t.Errorf("diagnostics on well-formed input: %v", bag.Items())
	}
}

func TestCollectSyntaxErrors(t *testing.T) {
	content := []byte("const a = ;\n")
	p := NewParser()
	tree, err := Parse(context.Background(), p, content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	bag := diag.NewBag(10)
	CollectSyntaxErrors(tree.RootNode(), source.FileID(1), content, bag)
	if !bag.HasErrors() {
		t.Error("malformed input produced no syntax diagnostics")
	}
	for _, d := range bag.Items() {
		if d.Code != diag.SynParseError && d.Code != diag.SynMissingNode {
			t.Errorf("unexpected code %s", d.Code)
		}
	}
}

func TestMissingNodeCarriesEnclosingNote(t *testing.T) {
	content := []byte("function f() {\n")
	p := NewParser()
	tree, err := Parse(context.Background(), p, content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	bag := diag.NewBag(10)
	CollectSyntaxErrors(tree.RootNode(), source.FileID(0), content, bag)

	found := false
	for _, d := range bag.Items() {
		if d.Code != diag.SynMissingNode {
			continue
		}
		found = true
		if len(d.Notes) == 0 {
			t.Fatalf("missing-node diagnostic has no note: %+v", d)
		}
	}
	if !found {
		t.Fatal("unclosed body produced no missing-node diagnostic")
	}
}
