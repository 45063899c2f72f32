package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
	"github.com/aalvaropc/polycheck/internal/ui/style"
	"github.com/aalvaropc/polycheck/internal/usecase"
)

type checkOptions struct {
	format  string
	save    bool
	lenient bool
}

func runCheck(cmd *cobra.Command, opts *rootOptions, check checkOptions, docPath string) error {
	ws, err := loadWorkspace(opts.workspace, docPath)
	if err != nil {
		return err
	}
	defer ws.startLogging(opts.debug)()

	format := resolveFormat(check.format, ws.cfg)
	if err := validateFormat(format); err != nil {
		return err
	}

	var store ports.ReportStore
	if check.save {
		store = ws.store()
	}

	uc := usecase.NewCheckDocument(newDocLoader(check.lenient), store,
		usecase.WithElements(ws.cfg.Elements),
		usecase.WithLogger(ws.logger()),
	)

	report, reportID, err := uc.Execute(cmd.Context(), docPath)
	if err != nil {
		return printPartialReport(cmd.OutOrStdout(), report, reportID, format, err)
	}

	if err := printReport(cmd.OutOrStdout(), report, reportID, format); err != nil {
		return err
	}
	return checkOutcome(report.Summary())
}

// printPartialReport prints whatever a failed run produced (a failed
// save still has results) and returns execErr joined with any print error.
func printPartialReport(w io.Writer, report domain.DocumentReport, reportID, format string, execErr error) error {
	if len(report.Statements) == 0 {
		return execErr
	}
	if err := printReport(w, report, reportID, format); err != nil {
		return errors.Join(execErr, err)
	}
	return execErr
}

// reportPayload wraps a report for machine-readable output.
type reportPayload struct {
	ReportID string                `json:"report_id,omitempty" yaml:"report_id,omitempty"`
	Summary  domain.Summary        `json:"summary" yaml:"summary"`
	Report   domain.DocumentReport `json:"report" yaml:"report"`
}

func validateFormat(format string) error {
	switch format {
	case "pretty", "json", "yaml", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|yaml)", format)
	}
}

func printReport(w io.Writer, report domain.DocumentReport, reportID string, format string) error {
	payload := reportPayload{ReportID: reportID, Summary: report.Summary(), Report: report}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return err
		}
		return enc.Close()
	case "pretty", "":
		printPrettyReport(w, style.DefaultTheme(), report, reportID)
		return nil
	default:
		return validateFormat(format)
	}
}

func printPrettyReport(w io.Writer, theme style.Theme, report domain.DocumentReport, reportID string) {
	fmt.Fprintln(w, theme.Title.Render("Document: "+report.Path))
	if !report.StartedAt.IsZero() {
		fmt.Fprintln(w, theme.Subtitle.Render("Started:  "+report.StartedAt.Format(time.RFC3339)))
	}
	if reportID != "" {
		fmt.Fprintln(w, theme.Subtitle.Render("Report:   "+reportID))
	}
	fmt.Fprintln(w)

	for _, st := range report.Statements {
		printStatement(w, theme, st)
	}

	s := report.Summary()
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.RenderSummary(theme, s))
	fmt.Fprintf(w, "Finished in %s\n", report.Duration())
}

func printStatement(w io.Writer, theme style.Theme, st domain.StatementResult) {
	fmt.Fprint(w, style.RenderStatement(theme, st))
}
