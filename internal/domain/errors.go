package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExecution     = errors.New("execution error")
	ErrEmptyContext  = errors.New("no enclosing domain scope")
	ErrUnclosedScope = errors.New("domain scope left open at end of document")
	ErrScopeMismatch = errors.New("closing element does not match innermost scope")
)

// Expression errors. Structural ones describe malformed bracket or token
// layout, arity ones an operand stack of the wrong size, range ones a
// value that cannot be represented.
var (
	ErrUnbalancedParen     = errors.New("unbalanced parentheses")
	ErrUnbalancedSetBrace  = errors.New("unbalanced set braces")
	ErrUnclosedBracket     = errors.New("unclosed bracket")
	ErrStrayNumber         = errors.New("number outside set braces")
	ErrOperandType         = errors.New("operand of wrong type for domain")
	ErrUnsupportedOperator = errors.New("operator not defined for domain")

	ErrStackUnderflow   = errors.New("operator is missing an operand")
	ErrLeftoverOperands = errors.New("expression leaves more than one value")
	ErrEmptyExpression  = errors.New("empty expression")

	ErrOverflow         = errors.New("value out of int64 range")
	ErrNegativeExponent = errors.New("negative exponent")
	ErrNegativeRepeat   = errors.New("negative repetition count")
	ErrNotInteger       = errors.New("text does not form an integer")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
	KindStructural    ErrorKind = "structural"
	KindArity         ErrorKind = "arity"
	KindRange         ErrorKind = "range"
	KindIO            ErrorKind = "io"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Line int    // Optional: line in Path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s", e.Path)
		if e.Line > 0 {
			base += fmt.Sprintf(" line=%d", e.Line)
		}
		base += ")"
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExprError reports why one expression could not be evaluated. Pos is the
// index of the offending token in the sequence being processed, or -1.
type ExprError struct {
	Kind ErrorKind
	Pos  int
	Err  error
}

func (e *ExprError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Pos >= 0 {
		return fmt.Sprintf("%s error at token %d: %v", e.Kind, e.Pos, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *ExprError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func Structural(pos int, err error) error { return &ExprError{Kind: KindStructural, Pos: pos, Err: err} }
func Arity(pos int, err error) error      { return &ExprError{Kind: KindArity, Pos: pos, Err: err} }
func RangeErr(pos int, err error) error   { return &ExprError{Kind: KindRange, Pos: pos, Err: err} }

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// KindOf returns the kind of the first classified error in err's tree,
// preferring an OpError over an ExprError, or "" if none is classified.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	var ee *ExprError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}
