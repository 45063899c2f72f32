package usecase

import (
	"github.com/aalvaropc/polycheck/internal/domain"
)

// --- fakes shared by the use case tests ---

type fakeDocLoader struct {
	doc domain.Document
}

func (f fakeDocLoader) LoadDocument(path string) (domain.Document, error) {
	doc := f.doc
	doc.Path = path
	return doc, nil
}

type errDocLoader struct{ err error }

func (e errDocLoader) LoadDocument(_ string) (domain.Document, error) {
	return domain.Document{}, e.err
}

type fakeStore struct {
	saved bool
	last  domain.DocumentReport
	err   error
}

func (s *fakeStore) SaveReport(r domain.DocumentReport) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = r
	return "report-123", nil
}

func start(name string, line int) domain.Event {
	return domain.Event{Kind: domain.EventStart, Name: name, Line: line}
}

func text(s string, line int) domain.Event {
	return domain.Event{Kind: domain.EventText, Text: s, Line: line}
}

func end(name string, line int) domain.Event {
	return domain.Event{Kind: domain.EventEnd, Name: name, Line: line}
}

// sampleDocument mirrors the nesting of the bundled sample.xml.
func sampleDocument() domain.Document {
	return domain.Document{Events: []domain.Event{
		start("strings", 1),
		text("2 * 3 + 1 = 2 + 2 + 2 + 1", 2),
		start("algebra", 3),
		text("2 * 3 + 1 = (1 + 1) * 2 + 2 + 1 = 7", 4),
		start("sets", 5),
		text("{1, 2} + ({1, 2, 3} * {2, 3}) = ({1, 2} + {1, 2, 3}) * {2, 3}", 6),
		end("sets", 7),
		text("1 + 2 * 2 + 1 = 2 + 2 + 2 * 1;", 8),
		end("algebra", 9),
		start("boolean", 10),
		text("(1 + 0) * 1 + 1 = 0 * 1 + 1", 11),
		end("boolean", 12),
		text("1 * (2 + 1) + 1 = 1 + 1 + 1", 13),
		end("strings", 14),
	}}
}
