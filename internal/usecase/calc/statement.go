package calc

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
)

// EvalExpression tokenizes, reorders and evaluates one expression.
func EvalExpression(expr string, d domain.Domain) (domain.Value, error) {
	postfix, err := Compile(expr, d)
	if err != nil {
		return domain.Value{}, err
	}
	return Evaluate(postfix, d)
}

// Compile tokenizes expr and converts it to postfix without evaluating it.
func Compile(expr string, d domain.Domain) ([]domain.Token, error) {
	return ToPostfix(Tokenize(expr), d)
}

// SplitStatements splits text on ; into statements. Segments that are
// empty after trimming are dropped, so a trailing ; is harmless.
func SplitStatements(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ";") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SplitExpressions splits a statement on = into trimmed sub-expressions.
func SplitExpressions(stmt string) []string {
	parts := strings.Split(stmt, "=")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// CheckStatement evaluates every =-separated sub-expression of stmt and
// compares each value with the first. If any sub-expression fails, the
// statement gets VerdictError and no values.
func CheckStatement(stmt string, d domain.Domain) domain.StatementResult {
	res := domain.StatementResult{
		Raw:         stmt,
		Domain:      d,
		Expressions: SplitExpressions(stmt),
	}

	values := make([]domain.Value, 0, len(res.Expressions))
	for i, expr := range res.Expressions {
		v, err := EvalExpression(expr, d)
		if err != nil {
			res.Verdict = domain.VerdictError
			res.Error = domain.NewStatementError(fmt.Errorf("expression %d %q: %w", i+1, expr, err))
			return res
		}
		values = append(values, v)
	}

	res.Values = values
	res.Verdict = domain.VerdictValid
	for _, v := range values[1:] {
		if !v.Equal(values[0]) {
			res.Verdict = domain.VerdictInvalid
			break
		}
	}
	return res
}

// CheckText checks each ;-separated statement of text independently.
func CheckText(text string, d domain.Domain) []domain.StatementResult {
	stmts := SplitStatements(text)
	out := make([]domain.StatementResult, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, CheckStatement(s, d))
	}
	return out
}
