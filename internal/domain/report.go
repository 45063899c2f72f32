package domain

import "time"

// Verdict is the outcome of checking one statement.
type Verdict string

const (
	VerdictValid   Verdict = "valid"
	VerdictInvalid Verdict = "invalid"
	// VerdictError marks a statement that failed to evaluate; it carries no
	// comparison result.
	VerdictError Verdict = "error"
)

// StatementError is the serializable form of an evaluation failure.
type StatementError struct {
	Kind    ErrorKind `json:"kind" yaml:"kind"`
	Message string    `json:"message" yaml:"message"`
}

// NewStatementError classifies err for reporting. Unclassified errors are
// reported as execution errors.
func NewStatementError(err error) *StatementError {
	if err == nil {
		return nil
	}
	kind := KindOf(err)
	if kind == "" {
		kind = KindExecution
	}
	return &StatementError{Kind: kind, Message: err.Error()}
}

// StatementResult is the report for one ;-delimited statement.
type StatementResult struct {
	Raw         string          `json:"raw" yaml:"raw"`
	Domain      Domain          `json:"domain" yaml:"domain"`
	Line        int             `json:"line,omitempty" yaml:"line,omitempty"`
	Expressions []string        `json:"expressions" yaml:"expressions"`
	Values      []Value         `json:"values,omitempty" yaml:"values,omitempty"`
	Verdict     Verdict         `json:"verdict" yaml:"verdict"`
	Error       *StatementError `json:"error,omitempty" yaml:"error,omitempty"`
}

// Valid reports whether every sub-expression evaluated to the same value.
func (r StatementResult) Valid() bool { return r.Verdict == VerdictValid }

// Failed reports whether the statement could not be evaluated at all.
func (r StatementResult) Failed() bool { return r.Verdict == VerdictError }

// DocumentReport aggregates the statement results of one document.
type DocumentReport struct {
	Path       string            `json:"path" yaml:"path"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	EndedAt    time.Time         `json:"ended_at" yaml:"ended_at"`
	Statements []StatementResult `json:"statements" yaml:"statements"`
}

// Summary counts statements per verdict.
type Summary struct {
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
	Errored int `json:"errored" yaml:"errored"`
}

func (s Summary) Total() int { return s.Valid + s.Invalid + s.Errored }

// OK reports whether every statement was valid.
func (s Summary) OK() bool { return s.Invalid == 0 && s.Errored == 0 }

func (r DocumentReport) Summary() Summary {
	var s Summary
	for _, st := range r.Statements {
		switch st.Verdict {
		case VerdictValid:
			s.Valid++
		case VerdictInvalid:
			s.Invalid++
		default:
			s.Errored++
		}
	}
	return s
}

func (r DocumentReport) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// ReportRef points at a persisted report.
type ReportRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Document  string    `json:"document"`
	StartedAt time.Time `json:"started_at"`
	Summary   Summary   `json:"summary"`
}
