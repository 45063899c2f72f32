package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
)

// scalarOp combines two integers. next is the token that follows the
// operator in the postfix sequence, or nil at the end.
type scalarOp func(left, right int64, next *domain.Token) (int64, error)

type setOp func(left, right domain.IntSet) (domain.IntSet, error)

var algebraOps = map[domain.TokenKind]scalarOp{
	domain.TokenPlus:     func(l, r int64, _ *domain.Token) (int64, error) { return addInt(l, r) },
	domain.TokenMinus:    func(l, r int64, _ *domain.Token) (int64, error) { return subInt(l, r) },
	domain.TokenMultiply: func(l, r int64, _ *domain.Token) (int64, error) { return mulInt(l, r) },
	domain.TokenPower:    func(l, r int64, _ *domain.Token) (int64, error) { return powInt(l, r) },
}

// Boolean has no meaning for - and ^; they fall back to integer arithmetic.
var booleanOps = map[domain.TokenKind]scalarOp{
	domain.TokenPlus:     func(l, r int64, _ *domain.Token) (int64, error) { return l | r, nil },
	domain.TokenMinus:    algebraOps[domain.TokenMinus],
	domain.TokenMultiply: func(l, r int64, _ *domain.Token) (int64, error) { return l & r, nil },
	domain.TokenPower:    algebraOps[domain.TokenPower],
}

var stringsOps = map[domain.TokenKind]scalarOp{
	domain.TokenPlus:     concatOrAdd,
	domain.TokenMinus:    algebraOps[domain.TokenMinus],
	domain.TokenMultiply: func(l, r int64, _ *domain.Token) (int64, error) { return repeatInt(r, l) },
	domain.TokenPower:    algebraOps[domain.TokenPower],
}

var scalarTables = map[domain.Domain]map[domain.TokenKind]scalarOp{
	domain.Algebra: algebraOps,
	domain.Boolean: booleanOps,
	domain.Strings: stringsOps,
}

var setOps = map[domain.TokenKind]setOp{
	domain.TokenPlus:     func(l, r domain.IntSet) (domain.IntSet, error) { return l.Union(r), nil },
	domain.TokenMultiply: func(l, r domain.IntSet) (domain.IntSet, error) { return l.Intersect(r), nil },
	domain.TokenMinus:    func(l, r domain.IntSet) (domain.IntSet, error) { return l.Difference(r), nil },
}

// Evaluate runs a postfix sequence on the stack machine of domain d and
// returns the single value left on the stack.
func Evaluate(postfix []domain.Token, d domain.Domain) (domain.Value, error) {
	if d == domain.Sets {
		s, err := evalSets(postfix)
		if err != nil {
			return domain.Value{}, err
		}
		return domain.SetValue(s), nil
	}

	table, ok := scalarTables[d]
	if !ok {
		return domain.Value{}, fmt.Errorf("evaluate: %s: %w", d, domain.ErrInvalidConfig)
	}
	n, err := evalScalar(postfix, table)
	if err != nil {
		return domain.Value{}, err
	}
	return domain.ScalarValue(n), nil
}

func evalScalar(postfix []domain.Token, table map[domain.TokenKind]scalarOp) (int64, error) {
	stack := make([]int64, 0, len(postfix))

	for i, tok := range postfix {
		switch {
		case tok.Kind == domain.TokenNumber:
			stack = append(stack, tok.Num)

		case tok.IsOperator():
			if len(stack) < 2 {
				return 0, domain.Arity(i, domain.ErrStackUnderflow)
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var next *domain.Token
			if i+1 < len(postfix) {
				next = &postfix[i+1]
			}
			v, err := table[tok.Kind](left, right, next)
			if err != nil {
				return 0, exprErr(i, err)
			}
			stack = append(stack, v)

		default:
			return 0, domain.Structural(i, domain.ErrOperandType)
		}
	}

	switch len(stack) {
	case 1:
		return stack[0], nil
	case 0:
		return 0, domain.Arity(-1, domain.ErrEmptyExpression)
	default:
		return 0, domain.Arity(-1, domain.ErrLeftoverOperands)
	}
}

func evalSets(postfix []domain.Token) (domain.IntSet, error) {
	stack := make([]domain.IntSet, 0, len(postfix))

	for i, tok := range postfix {
		switch {
		case tok.Kind == domain.TokenSet:
			stack = append(stack, tok.Set)

		case tok.IsOperator():
			op, ok := setOps[tok.Kind]
			if !ok {
				return nil, domain.Structural(i, fmt.Errorf("%s: %w", tok.Kind, domain.ErrUnsupportedOperator))
			}
			if len(stack) < 2 {
				return nil, domain.Arity(i, domain.ErrStackUnderflow)
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			v, err := op(left, right)
			if err != nil {
				return nil, exprErr(i, err)
			}
			stack = append(stack, v)

		default:
			return nil, domain.Structural(i, domain.ErrOperandType)
		}
	}

	switch len(stack) {
	case 1:
		return stack[0], nil
	case 0:
		return nil, domain.Arity(-1, domain.ErrEmptyExpression)
	default:
		return nil, domain.Arity(-1, domain.ErrLeftoverOperands)
	}
}

// exprErr attaches the token position to an operator failure.
func exprErr(pos int, err error) error {
	var ee *domain.ExprError
	if errors.As(err, &ee) {
		return err
	}
	return domain.RangeErr(pos, err)
}

// concatOrAdd joins the decimal text of both operands, except when the
// operator is directly followed by *, where it adds them instead.
func concatOrAdd(l, r int64, next *domain.Token) (int64, error) {
	if next != nil && next.Kind == domain.TokenMultiply {
		return addInt(l, r)
	}
	// a sign is not a digit, whichever side it lands on
	if l < 0 || r < 0 {
		return 0, fmt.Errorf("%d, %d: %w", l, r, domain.ErrNotInteger)
	}
	return parseText(strconv.FormatInt(l, 10) + strconv.FormatInt(r, 10))
}

// repeatInt writes n's decimal text count times and reads it back.
func repeatInt(n, count int64) (int64, error) {
	if count < 0 {
		return 0, domain.ErrNegativeRepeat
	}
	if n < 0 {
		return 0, fmt.Errorf("%d: %w", n, domain.ErrNotInteger)
	}
	if count == 0 || n == 0 {
		return 0, nil
	}
	text := strconv.FormatInt(n, 10)
	// no int64 has more than 20 characters of text
	if count > 20 || int64(len(text))*count > 20 {
		return 0, domain.ErrOverflow
	}
	return parseText(strings.Repeat(text, int(count)))
}

func parseText(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%q: %w", s, domain.ErrOverflow)
		}
		return 0, fmt.Errorf("%q: %w", s, domain.ErrNotInteger)
	}
	return n, nil
}

func addInt(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, domain.ErrOverflow
	}
	return a + b, nil
}

func subInt(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, domain.ErrOverflow
	}
	return a - b, nil
}

func mulInt(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, domain.ErrOverflow
	}
	return c, nil
}

func powInt(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, domain.ErrNegativeExponent
	}
	switch {
	case exp == 0:
		return 1, nil
	case base == 0 || base == 1:
		return base, nil
	case base == -1:
		if exp%2 == 0 {
			return 1, nil
		}
		return -1, nil
	}
	// |base| >= 2 overflows within 63 steps, so the loop is bounded
	result := int64(1)
	for ; exp > 0; exp-- {
		var err error
		if result, err = mulInt(result, base); err != nil {
			return 0, err
		}
	}
	return result, nil
}
