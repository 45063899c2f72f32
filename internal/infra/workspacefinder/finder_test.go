package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/polycheck/internal/domain"
)

func TestFindRoot_FindsWorkspaceFromNestedDir(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "ws")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Create polycheck.yaml at root
	if err := os.WriteFile(filepath.Join(root, ConfigFile), []byte("polycheck:\n  defaults:\n    domain: sets\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	f := NewFinder()
	got, err := f.FindRoot(nested)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestFindRoot_NotFound(t *testing.T) {
	tmp := t.TempDir()
	_ = os.MkdirAll(filepath.Join(tmp, "a", "b"), 0o755)

	f := NewFinder()
	_, err := f.FindRoot(filepath.Join(tmp, "a", "b"))
	if err == nil {
		t.Fatalf("expected error")
	}

	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
}

func TestFindRoot_FromDocumentPath(t *testing.T) {
	root := writeConfig(t, "polycheck: {}\n")
	doc := filepath.Join(root, "documents", "sample.xml")
	if err := os.MkdirAll(filepath.Dir(doc), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(doc, []byte("<algebra>1=1</algebra>"), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	got, err := NewFinder().FindRoot(doc)
	if err != nil {
		t.Fatalf("FindRoot returned error: %v", err)
	}
	if got != root {
		t.Fatalf("expected root=%s, got=%s", root, got)
	}
}

func TestResolve_FallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	ws, err := Resolve(dir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ws.Found {
		t.Fatalf("expected Found=false")
	}
	if ws.Root != dir {
		t.Fatalf("expected fallback root=%s, got=%s", dir, ws.Root)
	}
	if ws.Config.Paths.ReportsDir != "reports" {
		t.Fatalf("expected default config, got %+v", ws.Config)
	}
}

func TestResolve_LoadsConfig(t *testing.T) {
	root := writeConfig(t, "polycheck:\n  defaults:\n    domain: boolean\n")

	ws, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !ws.Found || ws.Root != root || ws.Config.Defaults.Domain != domain.Boolean {
		t.Fatalf("unexpected resolve result %+v", ws)
	}
}

func TestResolve_BrokenConfigIsError(t *testing.T) {
	root := writeConfig(t, "polycheck:\n  defaults:\n    format: html\n")

	if _, err := Resolve(root); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}
