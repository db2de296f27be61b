package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[project]
target = "csharp"

[output]
dir = "generated"
prefer_struct_literal = false

[cache]
enabled = true
`)

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
	if m.Config.Project.Target != "csharp" {
		t.Errorf("target = %q", m.Config.Project.Target)
	}
	if m.Config.Output.Dir != "generated" {
		t.Errorf("output dir = %q", m.Config.Output.Dir)
	}
	if m.Config.PreferStruct() {
		t.Error("prefer_struct_literal = false must stick")
	}
	if !m.Config.Cache.Enabled {
		t.Error("cache.enabled lost")
	}
}

func TestLoad_PartialManifestKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[output]\ndir = \"out\"\n")

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Project.Target != "csharp" {
		t.Errorf("default target = %q", m.Config.Project.Target)
	}
	if !m.Config.PreferStruct() {
		t.Error("prefer_struct_literal must default to true")
	}
}

func TestFind_WalksUpward(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\ntarget = \"csharp\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want manifest in %q", path, root)
	}
}

func TestLoadOrDefault_NoManifest(t *testing.T) {
	m, err := LoadOrDefault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if m.Path != "" {
		t.Errorf("path = %q, want empty for defaults", m.Path)
	}
	if m.Config.Project.Target != "csharp" || !m.Config.PreferStruct() {
		t.Errorf("defaults wrong: %+v", m.Config)
	}
}
