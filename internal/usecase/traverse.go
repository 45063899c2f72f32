package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/polycheck/internal/domain"
)

// TextVisitor receives a text event and the innermost open domain.
type TextVisitor func(ev domain.Event, d domain.Domain) error

// Traverse walks the events of doc, pushing a domain when an element named
// in elements opens and popping it when that element closes. Elements not
// in the map are ignored. Text outside every domain scope, a close with no
// open scope, and a scope still open at the end abort the traversal.
func Traverse(ctx context.Context, doc domain.Document, elements domain.ElementMap, visit TextVisitor) error {
	scopes := domain.NewContext()

	for _, ev := range doc.Events {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch ev.Kind {
		case domain.EventStart:
			if d, ok := elements.Lookup(ev.Name); ok {
				scopes.Push(d)
			}

		case domain.EventEnd:
			want, ok := elements.Lookup(ev.Name)
			if !ok {
				continue
			}
			got, err := scopes.Pop()
			if err != nil {
				return structuralAt(doc.Path, ev.Line, err)
			}
			if got != want {
				return structuralAt(doc.Path, ev.Line,
					fmt.Errorf("</%s> closes %s scope: %w", ev.Name, got, domain.ErrScopeMismatch))
			}

		case domain.EventText:
			d, err := scopes.Top()
			if err != nil {
				return structuralAt(doc.Path, ev.Line, fmt.Errorf("text %q: %w", ev.Text, err))
			}
			if err := visit(ev, d); err != nil {
				return err
			}
		}
	}

	if scopes.Depth() != 0 {
		return structuralAt(doc.Path, 0, fmt.Errorf("%d open: %w", scopes.Depth(), domain.ErrUnclosedScope))
	}
	return nil
}

func structuralAt(path string, line int, err error) error {
	return &domain.OpError{
		Op:   "usecase.traverse",
		Kind: domain.KindStructural,
		Path: path,
		Line: line,
		Err:  err,
	}
}
