package csharp

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"glot/internal/diag"
	"glot/internal/render"
	"glot/internal/source"
	"glot/internal/syntax"
	"glot/internal/types"
)

// convertSource runs the full pipeline over src with this backend and
// returns the flattened output plus the diagnostics bag.
func convertSource(t *testing.T, src string, preferStruct bool) (string, *diag.Bag) {
	t.Helper()
	content := []byte(src)
	parser := syntax.NewParser()
	tree, err := syntax.Parse(context.Background(), parser, content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	fileSet := source.NewFileSet()
	fid := fileSet.AddVirtual("test.ts", content)
	bag := diag.NewBag(100)
	syntax.CollectSyntaxErrors(tree.RootNode(), fid, content, bag)
	checker := types.Collect(tree.RootNode(), content)

	b := New()
	renderer := render.NewRenderer(
		b.Rules(), b.TypeMapper(), b.DefaultContext(preferStruct),
		checker, content, fid, bag,
	)
	return renderer.Convert(tree.RootNode()).Flatten(), bag
}

func expectClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestFunctionWithOptionalParameter(t *testing.T) {
	src := `function greet(name: string, greeting?: string) {
  if (greeting) {
    console.log(` + "`${greeting}, ${name}!`" + `);
  } else {
    console.log(` + "`Hello, ${name}!`" + `);
  }
}`
	want := `void Greet(string name, string? greeting = default)
{
    if (greeting)
    {
        Console.WriteLine($"{greeting}, {name}!");
    }
    else
    {
        Console.WriteLine($"Hello, {name}!");
    }
}`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStructInterfaceAndTypedLiteral(t *testing.T) {
	src := `interface Point { x: number; y: number; }
const p: Point = { x: 1, y: 2 };`
	want := `class Point
{
    public double X { get; set; }
    public double Y { get; set; }
}
Point p = new Point { X = 1, Y = 2 };`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestBehavioralInterface(t *testing.T) {
	src := `interface Logger {
  log(message: string): void;
}`
	want := `interface Logger
{
    void Log(string message);
}`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUntypedLiteralPolicy(t *testing.T) {
	src := `const opts = { retry: true, max: 3 };`

	t.Run("struct branch", func(t *testing.T) {
		got, bag := convertSource(t, src, true)
		expectClean(t, bag)
		want := `var opts = new Unknown { Retry = true, Max = 3 };`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("map branch", func(t *testing.T) {
		got, bag := convertSource(t, src, false)
		expectClean(t, bag)
		want := `var opts = new Dictionary<string, object> { ["retry"] = true, ["max"] = 3 };`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestTypedMapLiteral(t *testing.T) {
	src := `const scores: Record<string, number> = { alice: 10 };`
	want := `Dictionary<string, double> scores = new Dictionary<string, double> { ["alice"] = 10 };`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestForOfLoop(t *testing.T) {
	src := `const nums = [1, 2, 3];
for (const n of nums) {
  console.log(n);
}`
	want := `double[] nums = new[] { 1, 2, 3 };
foreach (var n in nums)
{
    Console.WriteLine(n);
}`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestForOfDestructuringWarns(t *testing.T) {
	src := `const pairs = [[1, 2]];
for (const [a, b] of pairs) {
  console.log(a);
}`
	got, bag := convertSource(t, src, true)
	if !bag.HasWarnings() {
		t.Fatal("expected a loop-shape warning")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.RenderLoopShape {
			found = true
		}
	}
	if !found {
		t.Errorf("no %s diagnostic in %v", diag.RenderLoopShape, bag.Items())
	}
	if !strings.Contains(got, "foreach (var item in pairs)") {
		t.Errorf("placeholder loop variable missing in:\n%s", got)
	}
}

func TestClassDeclaration(t *testing.T) {
	src := `class Greeter {
  name: string;
  constructor(name: string) {
    this.name = name;
  }
  greet(): string {
    return ` + "`Hi ${this.name}`" + `;
  }
}`
	want := `class Greeter
{
    public string Name { get; set; }
    public Greeter(string name)
    {
        Name = name;
    }
    public string Greet()
    {
        return $"Hi {this.name}";
    }
}`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTypeAlias(t *testing.T) {
	src := `type Id = string;
let id: Id = "a";`
	want := `using Id = string;
Id id = "a";`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnsupportedUnionDiagnostic(t *testing.T) {
	src := `function f(x: string | number) {
  return x;
}`
	got, bag := convertSource(t, src, true)
	if !bag.HasErrors() {
		t.Fatal("expected an unsupported-union error")
	}
	var d diag.Diagnostic
	for _, item := range bag.Items() {
		if item.Code == diag.RenderUnsupportedUnion {
			d = item
		}
	}
	if d.Code != diag.RenderUnsupportedUnion {
		t.Fatalf("no unsupported-union diagnostic in %v", bag.Items())
	}
	if !strings.Contains(got, "Unknown x") {
		t.Errorf("placeholder type missing in:\n%s", got)
	}
}

func TestMultiArgumentPrint(t *testing.T) {
	src := `const who = "Ada";
console.log("Hello", who);`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if !strings.Contains(got, `Console.WriteLine($"Hello {who}");`) {
		t.Errorf("interpolated print call missing in:\n%s", got)
	}
}

func TestMultiArgumentPrintEscapesLiteralBraces(t *testing.T) {
	src := `const n = 1;
console.log("slot {x}", n);`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if !strings.Contains(got, `Console.WriteLine($"slot {{x}} {n}");`) {
		t.Errorf("literal braces not doubled in:\n%s", got)
	}
}

func TestOperatorsAndMembers(t *testing.T) {
	src := `const a = 1;
const b = 2;
if (a === b) {
  console.log("eq");
}`
	got, bag := convertSource(t, src, true)
	expectClean(t, bag)
	if !strings.Contains(got, "if (a == b)") {
		t.Errorf("strict equality not rewritten in:\n%s", got)
	}
}

func TestSyntaxErrorRendersPlaceholder(t *testing.T) {
	src := `const a = ;
const b = 2;`
	got, bag := convertSource(t, src, true)
	if !bag.HasErrors() {
		t.Fatal("expected syntax diagnostics")
	}
	if !strings.Contains(got, "double b = 2;") {
		t.Errorf("well-formed sibling lost in:\n%s", got)
	}
}

// The renderer must consult whatever mapper it was constructed with, so a
// substitute mapper has to show up in every annotated declaration.
func TestRulesUseInjectedTypeMapper(t *testing.T) {
	src := `let x: string = "a";`
	content := []byte(src)
	parser := syntax.NewParser()
	tree, err := syntax.Parse(context.Background(), parser, content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	t.Cleanup(tree.Close)

	fileSet := source.NewFileSet()
	fid := fileSet.AddVirtual("test.ts", content)
	bag := diag.NewBag(100)
	checker := types.Collect(tree.RootNode(), content)

	b := New()
	stamped := func(*render.Renderer, *sitter.Node, types.Ref, bool) string {
		return "Stamped"
	}
	renderer := render.NewRenderer(
		b.Rules(), stamped, b.DefaultContext(false),
		checker, content, fid, bag,
	)
	got := renderer.Convert(tree.RootNode()).Flatten()
	if !strings.Contains(got, "Stamped x =") {
		t.Errorf("substitute type mapper ignored in:\n%s", got)
	}
}
