package types

import (
	"context"
	"testing"

	"glot/internal/syntax"
)

func collect(t *testing.T, src string) *Checker {
	t.Helper()
	content := []byte(src)
	parser := syntax.NewParser()
	tree, err := syntax.Parse(context.Background(), parser, content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)
	return Collect(tree.RootNode(), content)
}

func varType(t *testing.T, c *Checker, name string) string {
	t.Helper()
	for _, v := range c.Vars() {
		if v.Name == name {
			return v.Type.String()
		}
	}
	t.Fatalf("variable %q not collected", name)
	return ""
}

func TestVariableTypes(t *testing.T) {
	src := `
const a = "hi";
const b = 42;
const c = true;
const d: string[] = [];
const e: Record<string, number> = {};
let f: number | undefined;
let g: string | number;
const h = [1, 2];
const i = ` + "`tmpl ${a}`" + `;
`
	checker := collect(t, src)

	cases := []struct {
		name string
		want string
	}{
		{"a", "string"},
		{"b", "number"},
		{"c", "boolean"},
		{"d", "string[]"},
		{"e", "map[string]number"},
		{"f", "number?"},
		{"g", "string | number"},
		{"h", "number[]"},
		{"i", "string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := varType(t, checker, tc.name); got != tc.want {
				t.Errorf("type of %s = %q, want %q", tc.name, got, tc.want)
			}
		})
	}
}

func TestStructLikeClassification(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
interface Logger { log(message: string): void; }
interface Mixed { name: string; run(): void; }
class Greeter { name: string; }
`
	checker := collect(t, src)

	cases := []struct {
		name       string
		wantStruct bool
	}{
		{"Point", true},
		{"Logger", false},
		{"Mixed", false},
		{"Greeter", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := checker.IsStruct(tc.name); got != tc.wantStruct {
				t.Errorf("IsStruct(%s) = %v, want %v", tc.name, got, tc.wantStruct)
			}
		})
	}

	if checker.IsStruct("Missing") {
		t.Error("IsStruct reported true for an undeclared name")
	}
}

func TestFieldOptionality(t *testing.T) {
	src := `
interface Options {
  url: string;
  retries?: number;
  tag: string | undefined;
}
`
	checker := collect(t, src)
	decl, ok := checker.Decl("Options")
	if !ok {
		t.Fatal("Options not collected")
	}

	cases := []struct {
		field        string
		wantOptional bool
	}{
		{"url", false},
		{"retries", true},
		{"tag", true},
	}
	for _, tc := range cases {
		f, ok := decl.Field(tc.field)
		if !ok {
			t.Fatalf("field %q not collected", tc.field)
		}
		if f.Optional != tc.wantOptional {
			t.Errorf("field %s optional = %v, want %v", tc.field, f.Optional, tc.wantOptional)
		}
	}
}

func TestAliasResolution(t *testing.T) {
	src := `
type UserId = string;
type MaybeName = string | undefined;
type Shape = UserId;
let id: UserId;
let name: MaybeName;
let shape: Shape;
`
	checker := collect(t, src)

	// Alias names are preserved; only a union alias resolves through so
	// simplification and optionality stay visible.
	if got := varType(t, checker, "id"); got != "UserId" {
		t.Errorf("alias of primitive = %q, want preserved name UserId", got)
	}
	if got := varType(t, checker, "name"); got != "string?" {
		t.Errorf("alias of union = %q, want string?", got)
	}
	if got := varType(t, checker, "shape"); got != "Shape" {
		t.Errorf("alias chain to primitive = %q, want preserved name Shape", got)
	}
}

func TestAliasCycleTerminates(t *testing.T) {
	src := `
type A = B;
type B = A;
let v: A;
`
	checker := collect(t, src)
	if got := varType(t, checker, "v"); got != "A" {
		t.Errorf("cyclic alias = %q, want A", got)
	}
}

func TestAliasThroughDeclLookup(t *testing.T) {
	src := `
interface Point { x: number; y: number; }
type Coord = Point;
let p: Coord;
`
	checker := collect(t, src)
	decl, ok := checker.Decl("Coord")
	if !ok {
		t.Fatal("alias did not resolve to the aliased declaration")
	}
	if decl.Name != "Point" {
		t.Errorf("Decl(Coord).Name = %q, want Point", decl.Name)
	}
	if !checker.IsStruct("Coord") {
		t.Error("IsStruct(Coord) = false, want true through the alias")
	}
}

func TestMemberAndContextualTypes(t *testing.T) {
	src := `
interface User { name: string; age: number; }
const u: User = { name: "Ada", age: 36 };
const n = u.name;
const a = u.age;
`
	checker := collect(t, src)
	if got := varType(t, checker, "u"); got != "User" {
		t.Errorf("annotated variable = %q, want User", got)
	}
	if got := varType(t, checker, "n"); got != "string" {
		t.Errorf("member access type = %q, want string", got)
	}
	if got := varType(t, checker, "a"); got != "number" {
		t.Errorf("member access type = %q, want number", got)
	}
}

func TestSimplify(t *testing.T) {
	cases := []struct {
		name   string
		in     Ref
		wantOK bool
		want   string
	}{
		{"non-union passes through", Primitive("string"), true, "string"},
		{"single member reduces", Union(false, Primitive("number")), true, "number"},
		{"optional single member keeps marker", Union(true, Primitive("number")), true, "number?"},
		{"two members stay irreducible", Union(false, Primitive("string"), Primitive("number")), false, "string | number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.in.Simplify()
			if ok != tc.wantOK {
				t.Fatalf("Simplify ok = %v, want %v", ok, tc.wantOK)
			}
			if got.String() != tc.want {
				t.Errorf("Simplify = %q, want %q", got.String(), tc.want)
			}
		})
	}
}
