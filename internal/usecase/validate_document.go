package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
	"github.com/aalvaropc/polycheck/internal/usecase/calc"
)

type ValidateDocument struct {
	docs     ports.DocumentLoader
	elements domain.ElementMap
}

func NewValidateDocument(dl ports.DocumentLoader, elements domain.ElementMap) *ValidateDocument {
	if len(elements) == 0 {
		elements = domain.DefaultElements()
	}
	return &ValidateDocument{docs: dl, elements: elements}
}

// Execute checks document structure and expression syntax without
// evaluating anything: scopes must nest, and every expression must
// tokenize and convert to postfix. All expression problems are returned
// joined; a scope problem stops the walk.
func (uc *ValidateDocument) Execute(ctx context.Context, path string) error {
	doc, err := uc.docs.LoadDocument(path)
	if err != nil {
		return err
	}

	var problems []error
	err = Traverse(ctx, doc, uc.elements, func(ev domain.Event, d domain.Domain) error {
		for _, stmt := range calc.SplitStatements(ev.Text) {
			for _, expr := range calc.SplitExpressions(stmt) {
				if _, cerr := calc.Compile(expr, d); cerr != nil {
					problems = append(problems, &domain.OpError{
						Op:   "usecase.validate",
						Kind: domain.KindOf(cerr),
						Path: path,
						Line: ev.Line,
						Err:  fmt.Errorf("%s %q: %w", d, expr, cerr),
					})
				}
			}
		}
		return nil
	})
	if err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}
