package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/polycheck/internal/domain"
)

func TestCheckStatement(t *testing.T) {
	tests := []struct {
		name    string
		stmt    string
		domain  domain.Domain
		verdict domain.Verdict
		values  []string
	}{
		{"algebra round trip", "2*3+1=2+2+2+1", domain.Algebra, domain.VerdictValid, []string{"7", "7"}},
		{"algebra power", "2^3-1=7", domain.Algebra, domain.VerdictValid, []string{"7", "7"}},
		{"algebra three way", "2 * 3 + 1 = (1 + 1) * 2 + 2 + 1 = 7", domain.Algebra, domain.VerdictValid, []string{"7", "7", "7"}},
		{"algebra precedence", "1+2*2=6", domain.Algebra, domain.VerdictInvalid, []string{"5", "6"}},
		{"boolean", "(1+0)*1+1=0*1+1", domain.Boolean, domain.VerdictValid, []string{"1", "1"}},
		{"sets equal", "{1,2}+({1,2,3}*{2,3})={1,2,3}", domain.Sets, domain.VerdictValid, []string{"{1, 2, 3}", "{1, 2, 3}"}},
		{"sets differ", "{1,2}+({1,2}*{2,3})=({1,2}+{1,2,3})*{2,3}", domain.Sets, domain.VerdictInvalid, []string{"{1, 2}", "{2, 3}"}},
		{"strings", "1+2=12", domain.Strings, domain.VerdictValid, []string{"12", "12"}},
		{"single expression", "5", domain.Algebra, domain.VerdictValid, []string{"5"}},
		{"third differs", "1=1=2", domain.Algebra, domain.VerdictInvalid, []string{"1", "1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckStatement(tt.stmt, tt.domain)
			require.Nil(t, res.Error)
			assert.Equal(t, tt.verdict, res.Verdict)
			assert.Equal(t, tt.domain, res.Domain)
			assert.Equal(t, tt.stmt, res.Raw)

			got := make([]string, len(res.Values))
			for i, v := range res.Values {
				got[i] = v.String()
			}
			assert.Equal(t, tt.values, got)
		})
	}
}

func TestCheckStatementFailureHasNoVerdict(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		kind domain.ErrorKind
	}{
		{"unbalanced", "(1+2", domain.KindStructural},
		{"unbalanced in second expression", "3=(1+2", domain.KindStructural},
		{"empty side", "1=", domain.KindArity},
		{"missing operand", "1+=1", domain.KindArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckStatement(tt.stmt, domain.Algebra)
			assert.Equal(t, domain.VerdictError, res.Verdict)
			assert.True(t, res.Failed())
			assert.False(t, res.Valid())
			assert.Empty(t, res.Values)
			require.NotNil(t, res.Error)
			assert.Equal(t, tt.kind, res.Error.Kind)
		})
	}
}

func TestCheckTextSplitsStatements(t *testing.T) {
	results := CheckText("1 + 2 * 2 + 1 = 2 + 2 + 2 * 1; 1 = 2; (1 ;", domain.Algebra)
	require.Len(t, results, 3)

	assert.Equal(t, domain.VerdictValid, results[0].Verdict)
	assert.Equal(t, domain.VerdictInvalid, results[1].Verdict)
	assert.Equal(t, domain.VerdictError, results[2].Verdict)

	assert.Equal(t, "1 = 2", results[1].Raw)
}

func TestCheckTextWithoutSemicolon(t *testing.T) {
	results := CheckText("  2*3+1 = 7  ", domain.Algebra)
	require.Len(t, results, 1)
	assert.Equal(t, "2*3+1 = 7", results[0].Raw)
	assert.True(t, results[0].Valid())
}

func TestCheckTextBlank(t *testing.T) {
	assert.Empty(t, CheckText(" ; ;\n", domain.Algebra))
}

func TestEvalExpressionDeterministic(t *testing.T) {
	for _, expr := range []string{"2*3+1", "(1+1)*2^2-1", "9-8-1"} {
		a, err := EvalExpression(expr, domain.Algebra)
		require.NoError(t, err)
		b, err := EvalExpression(expr, domain.Algebra)
		require.NoError(t, err)
		assert.True(t, a.Equal(b), expr)
	}
}

func TestSplitExpressions(t *testing.T) {
	assert.Equal(t, []string{"1 + 1", "2", ""}, SplitExpressions(" 1 + 1 = 2 = "))
}
