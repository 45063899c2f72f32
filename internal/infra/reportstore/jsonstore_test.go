package reportstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/polycheck/internal/domain"
)

func sampleReport(start time.Time) domain.DocumentReport {
	return domain.DocumentReport{
		Path:      "documents/My Sample.xml",
		StartedAt: start,
		EndedAt:   start.Add(2 * time.Millisecond),
		Statements: []domain.StatementResult{
			{
				Raw:         "1+1=2",
				Domain:      domain.Algebra,
				Line:        3,
				Expressions: []string{"1+1", "2"},
				Values:      []domain.Value{domain.ScalarValue(2), domain.ScalarValue(2)},
				Verdict:     domain.VerdictValid,
			},
			{
				Raw:         "{1}={2}",
				Domain:      domain.Sets,
				Line:        4,
				Expressions: []string{"{1}", "{2}"},
				Values:      []domain.Value{domain.SetValue(domain.NewIntSet(1)), domain.SetValue(domain.NewIntSet(2))},
				Verdict:     domain.VerdictInvalid,
			},
		},
	}
}

func TestSaveReport_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != "20260203T101112Z_my-sample" {
		t.Fatalf("unexpected id %q", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "reports", id+".json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.DocumentReport
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Statements) != 2 {
		t.Fatalf("expected 2 statements, got=%d", len(decoded.Statements))
	}
	if !decoded.Statements[1].Values[0].Equal(domain.SetValue(domain.NewIntSet(1))) {
		t.Fatalf("expected set value to round-trip, got %v", decoded.Statements[1].Values[0])
	}
	if _, err := os.Stat(filepath.Join(tmp, "reports", indexFile)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no index without WithIndex, err=%v", err)
	}
}

func TestSaveReport_UsesUniqueFilenameOnCollision(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id1, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("SaveReport #1 error: %v", err)
	}
	id2, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("SaveReport #2 error: %v", err)
	}
	if id2 != id1+"_2" {
		t.Fatalf("expected second id %q, got %q", id1+"_2", id2)
	}
}

func TestSaveReport_ZeroStartUsesClock(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithNow(func() time.Time { return now }))

	r := sampleReport(time.Time{})
	r.Path = ""
	id, err := store.SaveReport(r)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != "20300101T000000Z_report" {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestListReports_FromIndex(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Paths.ReportsDir = "out"
	store := NewJSONStore(tmp, cfg, WithIndex(true))

	first := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	if _, err := store.SaveReport(sampleReport(first)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.SaveReport(sampleReport(first.Add(time.Hour))); err != nil {
		t.Fatalf("save: %v", err)
	}

	refs, err := store.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].ID != "20260203T110000Z_my-sample" {
		t.Fatalf("expected newest first, got %q", refs[0].ID)
	}
	if refs[0].Summary.Valid != 1 || refs[0].Summary.Invalid != 1 {
		t.Fatalf("unexpected summary %+v", refs[0].Summary)
	}
}

func TestListReports_ScansWithoutIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	id, err := store.SaveReport(sampleReport(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "reports", "junk.json"), []byte("not json"), 0o600); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	refs, err := store.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != id {
		t.Fatalf("expected only %q, got %+v", id, refs)
	}
	if refs[0].Document != "documents/My Sample.xml" {
		t.Fatalf("unexpected document %q", refs[0].Document)
	}
}

func TestListReports_MergesReportsMissingFromIndex(t *testing.T) {
	tmp := t.TempDir()
	start := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	plainID, err := NewJSONStore(tmp, domain.DefaultConfig()).SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("save without index: %v", err)
	}
	indexed := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))
	indexedID, err := indexed.SaveReport(sampleReport(start.Add(time.Minute)))
	if err != nil {
		t.Fatalf("save with index: %v", err)
	}

	refs, err := indexed.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 2 || refs[0].ID != indexedID || refs[1].ID != plainID {
		t.Fatalf("expected [%s %s], got %+v", indexedID, plainID, refs)
	}
}

func TestListReports_DropsIndexEntriesWithoutFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	start := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	gone, err := store.SaveReport(sampleReport(start))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	kept, err := store.SaveReport(sampleReport(start.Add(time.Minute)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.Remove(filepath.Join(tmp, "reports", gone+".json")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	refs, err := store.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != kept {
		t.Fatalf("expected only %q, got %+v", kept, refs)
	}
}

func TestSaveReport_IndexFailureIsLoggedAndReportStillListed(t *testing.T) {
	tmp := t.TempDir()
	// A directory where the index file should be makes every append fail.
	if err := os.MkdirAll(filepath.Join(tmp, "reports", indexFile), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var logs bytes.Buffer
	store := NewJSONStore(tmp, domain.DefaultConfig(),
		WithIndex(true),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)

	id, err := store.SaveReport(sampleReport(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("expected save to succeed despite index failure, got %v", err)
	}
	if !strings.Contains(logs.String(), `"msg":"report.index.failed"`) || !strings.Contains(logs.String(), id) {
		t.Fatalf("expected index failure to be logged, got %q", logs.String())
	}

	refs, err := store.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != id {
		t.Fatalf("expected %q from directory scan, got %+v", id, refs)
	}
	if !strings.Contains(logs.String(), "report.index.unreadable") {
		t.Errorf("expected unreadable index to be logged, got %q", logs.String())
	}
}

func TestListReports_CorruptIndexFallsBackToScan(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true))

	id, err := store.SaveReport(sampleReport(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	f, err := os.OpenFile(filepath.Join(tmp, "reports", indexFile), os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	if _, err := f.WriteString("{broken\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	refs, err := store.ListReports()
	if err != nil {
		t.Fatalf("ListReports error: %v", err)
	}
	if len(refs) != 1 || refs[0].ID != id {
		t.Fatalf("expected %q, got %+v", id, refs)
	}
}

func TestListReports_MissingDirIsEmpty(t *testing.T) {
	refs, err := NewJSONStore(t.TempDir(), domain.DefaultConfig()).ListReports()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no refs, got %+v", refs)
	}
}

func TestLoadReport(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	id, err := store.SaveReport(sampleReport(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	b, err := store.LoadReport(id)
	if err != nil {
		t.Fatalf("LoadReport error: %v", err)
	}
	if !json.Valid(b) {
		t.Fatalf("expected valid JSON")
	}

	for _, bad := range []string{"missing", "../etc/passwd", ""} {
		_, err := store.LoadReport(bad)
		if !domain.IsKind(err, domain.KindNotFound) {
			t.Fatalf("LoadReport(%q): expected KindNotFound, got %v", bad, err)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My Sample":     "my-sample",
		"  spaced  ":    "spaced",
		"a__b..c":       "a-b-c",
		"!!!":           "",
		"Algebra-Check": "algebra-check",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q)=%q want %q", in, got, want)
		}
	}
}
