package driver

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvertSource(t *testing.T) {
	src := `function add(a: number, b: number): number {
  return a + b;
}`
	res, err := ConvertSource(context.Background(), "add.ts", []byte(src), Options{})
	if err != nil {
		t.Fatalf("ConvertSource: %v", err)
	}
	want := `double Add(double a, double b)
{
    return a + b;
}
`
	if res.Output != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", res.Output, want)
	}
	if !res.Clean() {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if res.Cached {
		t.Error("in-memory conversion reported as cached")
	}
}

func TestConvertSourceUnknownTarget(t *testing.T) {
	_, err := ConvertSource(context.Background(), "x.ts", []byte("const a = 1;"), Options{Target: "cobol"})
	if err == nil {
		t.Fatal("expected an unknown-target error")
	}
	if !strings.Contains(err.Error(), "cobol") {
		t.Errorf("error does not name the target: %v", err)
	}
}

func TestConvertSourceCollectsDiagnostics(t *testing.T) {
	src := `function f(x: string | number) { return x; }`
	res, err := ConvertSource(context.Background(), "f.ts", []byte(src), Options{})
	if err != nil {
		t.Fatalf("ConvertSource: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Error("expected an unsupported-union diagnostic")
	}
	if !strings.Contains(res.Output, "Unknown") {
		t.Errorf("placeholder missing in output:\n%s", res.Output)
	}
}

func TestConvertDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.ts":      "const b = 2;",
		"a.ts":      "const a = 1;",
		"skip.d.ts": "declare const s: number;",
		"notes.txt": "not code",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := ConvertDir(context.Background(), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("ConvertDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if filepath.Base(results[0].Path()) != "a.ts" || filepath.Base(results[1].Path()) != "b.ts" {
		t.Errorf("results not sorted by path: %s, %s", results[0].Path(), results[1].Path())
	}
	if results[0].Output != "double a = 1;\n" {
		t.Errorf("unexpected output: %q", results[0].Output)
	}
}

func TestConvertFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.ts")
	if err := os.WriteFile(input, []byte("const a = 1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: true, CacheDir: filepath.Join(dir, "cache")}

	first, err := ConvertFile(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("first conversion: %v", err)
	}
	if first.Cached {
		t.Error("first conversion reported as cached")
	}

	second, err := ConvertFile(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("second conversion: %v", err)
	}
	if !second.Cached {
		t.Error("second conversion missed the cache")
	}
	if second.Output != first.Output {
		t.Errorf("cached output %q differs from original %q", second.Output, first.Output)
	}
}

func TestDiskCacheKeying(t *testing.T) {
	cache := NewDiskCache(t.TempDir())
	hash := sha256.Sum256([]byte("content"))

	if _, hit := cache.Get(hash, "csharp"); hit {
		t.Fatal("hit on an empty cache")
	}
	cache.Put(hash, "csharp", "output-a")
	if out, hit := cache.Get(hash, "csharp"); !hit || out != "output-a" {
		t.Errorf("Get = %q, %v after Put", out, hit)
	}
	if _, hit := cache.Get(hash, "other"); hit {
		t.Error("hit for a different target")
	}
	otherHash := sha256.Sum256([]byte("changed"))
	if _, hit := cache.Get(otherHash, "csharp"); hit {
		t.Error("hit for different content")
	}
}

func TestMissingRuleAborts(t *testing.T) {
	// No rule handles labeled statements; dispatch failure must surface as
	// a hard error, not silence or partial output.
	src := `outer: for (const x of [1]) { break outer; }`
	_, err := ConvertSource(context.Background(), "l.ts", []byte(src), Options{})
	if err == nil {
		t.Fatal("expected a missing-rule error")
	}
	if !strings.Contains(err.Error(), "no rendering rule") {
		t.Errorf("unexpected error: %v", err)
	}
}
