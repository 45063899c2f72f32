package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "xmldoc.load",
		Kind: KindIO,
		Path: "doc.xml",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindIO {
		t.Fatalf("expected kind %s", KindIO)
	}
}

func TestOpErrorMessageIncludesLine(t *testing.T) {
	err := &OpError{Op: "check", Kind: KindStructural, Path: "doc.xml", Line: 7, Err: ErrEmptyContext}
	want := "check: structural (path=doc.xml line=7): no enclosing domain scope"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestIsKindForExprError(t *testing.T) {
	err := fmt.Errorf("expr %q: %w", "(1+2", Structural(3, ErrUnclosedBracket))

	if !IsKind(err, KindStructural) {
		t.Fatalf("expected IsKind to match wrapped expression error")
	}
	if !errors.Is(err, ErrUnclosedBracket) {
		t.Fatalf("expected sentinel in chain")
	}
}

func TestKindOfPrefersOpError(t *testing.T) {
	err := &OpError{Op: "check", Kind: KindExecution, Err: Arity(0, ErrStackUnderflow)}
	if got := KindOf(err); got != KindExecution {
		t.Fatalf("expected execution, got %s", got)
	}
}

func TestKindOfJoined(t *testing.T) {
	err := errors.Join(errors.New("plain"), RangeErr(-1, ErrOverflow))
	if got := KindOf(err); got != KindRange {
		t.Fatalf("expected range, got %s", got)
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty kind, got %s", got)
	}
}

func TestExprErrorMessage(t *testing.T) {
	if got := Arity(-1, ErrEmptyExpression).Error(); got != "arity error: empty expression" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := Structural(2, ErrUnbalancedParen).Error(); got != "structural error at token 2: unbalanced parentheses" {
		t.Fatalf("unexpected message %q", got)
	}
}
