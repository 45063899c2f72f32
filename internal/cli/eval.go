package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/usecase/calc"
)

func evalCmd(opts *rootOptions) *cobra.Command {
	var domainFlag string
	var format string

	c := &cobra.Command{
		Use:   "eval <statements>",
		Short: "Check ;-separated statements given on the command line",
		Example: `  polycheck eval "2 * 3 + 1 = 7"
  polycheck eval --domain sets "{1, 2} * {2, 3} = {2}"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace, "")
			if err != nil {
				return err
			}
			defer ws.startLogging(opts.debug)()

			d, err := resolveDomain(domainFlag, ws.cfg)
			if err != nil {
				return err
			}
			format = resolveFormat(format, ws.cfg)
			if err := validateFormat(format); err != nil {
				return err
			}

			report := evalText(strings.Join(args, " "), d, time.Now)
			s := report.Summary()
			ws.logger().Info("eval.checked", "domain", d.String(),
				"valid", s.Valid, "invalid", s.Invalid, "errored", s.Errored)

			if err := printReport(cmd.OutOrStdout(), report, "", format); err != nil {
				return err
			}
			return checkOutcome(s)
		},
	}

	c.Flags().StringVarP(&domainFlag, "domain", "d", "", "Domain: strings|algebra|sets|boolean (default from polycheck.yaml)")
	c.Flags().StringVar(&format, "format", "", "Output format: pretty|json|yaml (default from polycheck.yaml)")
	return c
}

// evalText checks text in a single domain scope.
func evalText(text string, d domain.Domain, now func() time.Time) domain.DocumentReport {
	report := domain.DocumentReport{Path: "<eval>", StartedAt: now()}
	report.Statements = calc.CheckText(text, d)
	report.EndedAt = now()
	return report
}
