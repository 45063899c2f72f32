package fsworkspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/infra/workspacefinder"
	"github.com/aalvaropc/polycheck/internal/infra/xmldoc"
	"github.com/aalvaropc/polycheck/internal/usecase"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "polycheck.yaml"))
	assertFileExists(t, filepath.Join(tmp, "documents", "sample.xml"))
	assertFileExists(t, filepath.Join(tmp, "reports"))
	assertFileExists(t, filepath.Join(tmp, ".polycheck", "logs"))
	assertFileExists(t, filepath.Join(tmp, ".gitignore"))
}

func TestInitializer_Init_TemplatesAreUsable(t *testing.T) {
	tmp := t.TempDir()
	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("template config does not load: %v", err)
	}
	if d, ok := cfg.Elements.Lookup("bool"); !ok || d != domain.Boolean {
		t.Fatalf("expected bool alias from template, got %v %v", d, ok)
	}

	uc := usecase.NewCheckDocument(xmldoc.NewLoader(), nil, usecase.WithElements(cfg.Elements))
	report, _, err := uc.Execute(context.Background(), filepath.Join(tmp, "documents", "sample.xml"))
	if err != nil {
		t.Fatalf("sample document does not check: %v", err)
	}
	s := report.Summary()
	if s.Valid != 3 || s.Invalid != 3 || s.Errored != 0 {
		t.Fatalf("unexpected sample summary %+v", s)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "polycheck.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing polycheck.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read polycheck.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected polycheck.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read polycheck.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "polycheck:") {
		t.Fatalf("expected polycheck.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
