package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestFindWalksUpward(t *testing.T) {
	root := t.TempDir()
	want := writeManifest(t, root, "[format]\nindent_width = 2\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("Find = %q, %v; want %q, true", got, ok, want)
	}
}

func TestFindMissing(t *testing.T) {
	_, ok, err := Find(t.TempDir())
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty temp dir")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[format]\nuse_tabs = true\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Config.Format.UseTabs {
		t.Fatalf("use_tabs not applied")
	}
	if m.Config.Format.IndentWidth != 4 {
		t.Fatalf("indent_width default = %d, want 4", m.Config.Format.IndentWidth)
	}
	if m.Root != dir {
		t.Fatalf("Root = %q, want %q", m.Root, dir)
	}
}

func TestLoadRejectsBadIndent(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[format]\nindent_width = -1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("negative indent_width must fail")
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	m, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if m.Path != "" || m.Config.Format.IndentWidth != 4 {
		t.Fatalf("expected defaults, got %+v", m)
	}
}
