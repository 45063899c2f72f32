package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
	"github.com/aalvaropc/polycheck/internal/usecase/calc"
)

type CheckDocument struct {
	docs     ports.DocumentLoader
	store    ports.ReportStore
	elements domain.ElementMap
	logger   *slog.Logger
	now      func() time.Time
}

type CheckOption func(*CheckDocument)

// WithElements replaces the element-name to domain mapping.
func WithElements(m domain.ElementMap) CheckOption {
	return func(uc *CheckDocument) {
		if len(m) > 0 {
			uc.elements = m
		}
	}
}

func WithLogger(l *slog.Logger) CheckOption {
	return func(uc *CheckDocument) {
		if l != nil {
			uc.logger = l
		}
	}
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) CheckOption {
	return func(uc *CheckDocument) { uc.now = now }
}

// NewCheckDocument builds the use case. store may be nil to skip persisting.
func NewCheckDocument(dl ports.DocumentLoader, store ports.ReportStore, opts ...CheckOption) *CheckDocument {
	uc := &CheckDocument{
		docs:     dl,
		store:    store,
		elements: domain.DefaultElements(),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute checks every statement in the document at path. A structural
// problem in the document aborts the whole check and no statement results
// are returned. The report ID is empty when no store is configured.
func (uc *CheckDocument) Execute(ctx context.Context, path string) (domain.DocumentReport, string, error) {
	report := domain.DocumentReport{Path: path, StartedAt: uc.now()}

	doc, err := uc.docs.LoadDocument(path)
	if err != nil {
		report.EndedAt = uc.now()
		return report, "", err
	}
	uc.logger.Debug("document.loaded", "path", path, "events", len(doc.Events))

	var results []domain.StatementResult
	err = Traverse(ctx, doc, uc.elements, func(ev domain.Event, d domain.Domain) error {
		for _, res := range calc.CheckText(ev.Text, d) {
			res.Line = ev.Line
			if res.Failed() {
				uc.logger.Warn("statement.failed",
					"line", ev.Line, "domain", d.String(), "raw", res.Raw, "error", res.Error.Message)
			} else {
				uc.logger.Debug("statement.checked",
					"line", ev.Line, "domain", d.String(), "raw", res.Raw, "verdict", string(res.Verdict))
			}
			results = append(results, res)
		}
		return nil
	})
	report.EndedAt = uc.now()
	if err != nil {
		uc.logger.Error("document.aborted", "path", path, "error", err.Error())
		return report, "", err
	}
	report.Statements = results

	s := report.Summary()
	uc.logger.Info("document.checked", "path", path,
		"valid", s.Valid, "invalid", s.Invalid, "errored", s.Errored, "duration", report.Duration().String())

	if uc.store == nil {
		return report, "", nil
	}
	id, err := uc.store.SaveReport(report)
	if err != nil {
		return report, "", err
	}
	uc.logger.Info("report.saved", "id", id)
	return report, id, nil
}
