package reportstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
)

const defaultReportsDir = "reports"
const indexFile = "index.jsonl"

type JSONStore struct {
	rootDir        string
	reportsDirName string
	writeIndex     bool
	now            func() time.Time
	logger         *slog.Logger
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: reports/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithLogger sets where index write failures are reported.
func WithLogger(l *slog.Logger) Option {
	return func(s *JSONStore) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	reportsDir := cfg.Paths.ReportsDir
	if strings.TrimSpace(reportsDir) == "" {
		reportsDir = defaultReportsDir
	}

	s := &JSONStore{
		rootDir:        root,
		reportsDirName: reportsDir,
		now:            time.Now,
		logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.ReportStore   = (*JSONStore)(nil)
	_ ports.ReportCatalog = (*JSONStore)(nil)
)

func (s *JSONStore) dir() string {
	if filepath.IsAbs(s.reportsDirName) {
		return s.reportsDirName
	}
	return filepath.Join(s.rootDir, s.reportsDirName)
}

func (s *JSONStore) SaveReport(report domain.DocumentReport) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.mkdir",
			Kind: domain.KindIO,
			Path: dir,
			Err:  err,
		}
	}

	ts := report.StartedAt
	if ts.IsZero() {
		ts = s.now()
		report.StartedAt = ts
	}
	ts = ts.UTC()

	slug := slugify(strings.TrimSuffix(filepath.Base(report.Path), filepath.Ext(report.Path)))
	if slug == "" {
		slug = "report"
	}

	id := uniqueID(dir, fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug))
	filename := id + ".json"
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Write to a temp file then rename so readers never see half a report.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "reportstore.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "reportstore.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		err := s.appendIndex(dir, domain.ReportRef{
			ID:        id,
			File:      filename,
			Document:  report.Path,
			StartedAt: report.StartedAt,
			Summary:   report.Summary(),
		})
		// The report itself is on disk; ListReports still finds it by scanning.
		if err != nil {
			s.logger.Warn("report.index.failed", "report_id", id, "dir", dir, "err", err)
		}
	}

	return id, nil
}

// uniqueID appends _2, _3, ... when a report with the same second and
// document slug already exists.
func uniqueID(dir, base string) string {
	id := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, id+".json")); errors.Is(err, fs.ErrNotExist) {
			return id
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

func (s *JSONStore) appendIndex(dir string, ref domain.ReportRef) error {
	line, err := json.Marshal(ref)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// ListReports returns saved reports, newest first. Index entries are
// preferred. Report files the index does not know about are decoded, and
// index entries whose file is gone are dropped. An unreadable index is
// logged and ignored.
func (s *JSONStore) ListReports() ([]domain.ReportRef, error) {
	dir := s.dir()

	scanned, err := s.scanDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, listErr(dir, err)
	}

	indexed, err := s.readIndex(dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("report.index.unreadable", "dir", dir, "err", err)
		indexed = nil
	}

	onDisk := make(map[string]bool, len(scanned))
	for _, ref := range scanned {
		onDisk[ref.ID] = true
	}

	refs := make([]domain.ReportRef, 0, len(scanned))
	seen := make(map[string]bool, len(scanned))
	for _, ref := range indexed {
		if onDisk[ref.ID] && !seen[ref.ID] {
			refs = append(refs, ref)
			seen[ref.ID] = true
		}
	}
	for _, ref := range scanned {
		if !seen[ref.ID] {
			refs = append(refs, ref)
		}
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].ID > refs[j].ID })
	return refs, nil
}

func listErr(dir string, err error) error {
	return &domain.OpError{
		Op:   "reportstore.list",
		Kind: domain.KindIO,
		Path: dir,
		Err:  err,
	}
}

func (s *JSONStore) readIndex(dir string) ([]domain.ReportRef, error) {
	b, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		return nil, err
	}

	var refs []domain.ReportRef
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var ref domain.ReportRef
		if err := json.Unmarshal(line, &ref); err != nil {
			return nil, fmt.Errorf("index line %q: %w", line, err)
		}
		refs = append(refs, ref)
	}
	return refs, sc.Err()
}

func (s *JSONStore) scanDir(dir string) ([]domain.ReportRef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var refs []domain.ReportRef
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var report domain.DocumentReport
		if err := json.Unmarshal(b, &report); err != nil {
			// Not one of ours.
			continue
		}
		refs = append(refs, domain.ReportRef{
			ID:        strings.TrimSuffix(e.Name(), ".json"),
			File:      e.Name(),
			Document:  report.Path,
			StartedAt: report.StartedAt,
			Summary:   report.Summary(),
		})
	}
	return refs, nil
}

// LoadReport returns the raw JSON of the report with the given id.
func (s *JSONStore) LoadReport(id string) ([]byte, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".json")
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, &domain.OpError{
			Op:   "reportstore.load",
			Kind: domain.KindNotFound,
			Path: id,
			Err:  domain.ErrNotFound,
		}
	}

	path := filepath.Join(s.dir(), id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.OpError{
				Op:   "reportstore.load",
				Kind: domain.KindNotFound,
				Path: path,
				Err:  domain.ErrNotFound,
			}
		}
		return nil, &domain.OpError{
			Op:   "reportstore.load",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return b, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
