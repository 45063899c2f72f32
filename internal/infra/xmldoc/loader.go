package xmldoc

import (
	"encoding/xml"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
)

// Loader reads XML documents into flat traversal events.
type Loader struct {
	strict bool
}

type Option func(*Loader)

// WithStrict toggles encoding/xml strict mode. Non-strict parsing accepts
// unmatched tags and unknown entities as HTML does.
func WithStrict(strict bool) Option {
	return func(l *Loader) { l.strict = strict }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{strict: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.DocumentLoader = (*Loader)(nil)

func (l *Loader) LoadDocument(path string) (domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := domain.KindIO
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.Document{}, &domain.OpError{
			Op:   "xmldoc.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	events, err := l.Parse(f)
	if err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) {
			oe.Path = path
		}
		return domain.Document{}, err
	}
	return domain.Document{Path: path, Events: events}, nil
}

// Parse decodes r into events. Text runs are trimmed; runs that are empty
// after trimming produce no event. Comments, processing instructions and
// directives are skipped.
func (l *Loader) Parse(r io.Reader) ([]domain.Event, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = l.strict

	var (
		events   []domain.Event
		text     strings.Builder
		textLine int
	)

	flush := func() {
		raw := text.String()
		text.Reset()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return
		}
		lead := raw[:strings.Index(raw, trimmed)]
		events = append(events, domain.Event{
			Kind: domain.EventText,
			Text: trimmed,
			Line: textLine + strings.Count(lead, "\n"),
		})
	}

	for {
		line, _ := dec.InputPos()
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err, line)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			flush()
			events = append(events, domain.Event{Kind: domain.EventStart, Name: t.Name.Local, Line: line})
		case xml.EndElement:
			flush()
			events = append(events, domain.Event{Kind: domain.EventEnd, Name: t.Name.Local, Line: line})
		case xml.CharData:
			if text.Len() == 0 {
				textLine = line
			}
			text.Write(t)
		}
	}
	flush()

	return events, nil
}

func parseError(err error, line int) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &domain.OpError{
			Op:   "xmldoc.parse",
			Kind: domain.KindStructural,
			Line: se.Line,
			Err:  err,
		}
	}
	return &domain.OpError{
		Op:   "xmldoc.parse",
		Kind: domain.KindIO,
		Line: line,
		Err:  err,
	}
}
