package style

import (
	"fmt"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
)

// RenderStatement formats one statement result as a status line plus an
// indented error or values line. The result ends with a newline.
func RenderStatement(theme Theme, st domain.StatementResult) string {
	var status string
	switch st.Verdict {
	case domain.VerdictValid:
		status = theme.Valid.Render("✓ valid  ")
	case domain.VerdictInvalid:
		status = theme.Invalid.Render("✗ invalid")
	default:
		status = theme.Failed.Render("! error  ")
	}

	where := theme.Domain.Render(st.Domain.String())
	if st.Line > 0 {
		where += theme.Subtitle.Render(fmt.Sprintf(" line %d", st.Line))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", status, where, st.Raw)

	if st.Error != nil {
		fmt.Fprintf(&b, "    error: %s (%s)\n", st.Error.Message, st.Error.Kind)
		return b.String()
	}
	if len(st.Values) > 0 {
		vals := make([]string, len(st.Values))
		for i, v := range st.Values {
			vals[i] = v.String()
		}
		fmt.Fprintf(&b, "    values: %s\n", strings.Join(vals, " | "))
	}
	return b.String()
}

// RenderSummary formats the valid/invalid/errored counts of a report.
func RenderSummary(theme Theme, s domain.Summary) string {
	return fmt.Sprintf("%s, %s, %s (%d statement(s))",
		theme.Valid.Render(fmt.Sprintf("%d valid", s.Valid)),
		theme.Invalid.Render(fmt.Sprintf("%d invalid", s.Invalid)),
		theme.Failed.Render(fmt.Sprintf("%d errored", s.Errored)),
		s.Total())
}
