package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
)

func reportsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "reports",
		Short: "Inspect saved reports in a workspace",
	}

	c.AddCommand(reportsListCmd(opts), reportsShowCmd(opts))
	return c
}

func reportsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts.workspace, "")
			if err != nil {
				return err
			}
			return listReports(cmd.OutOrStdout(), ws.store())
		},
	}
}

func listReports(w io.Writer, catalog ports.ReportCatalog) error {
	refs, err := catalog.ListReports()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		fmt.Fprintln(w, "(no reports found)")
		return nil
	}

	for _, r := range refs {
		fmt.Fprintf(w, "- %s  %s  %d valid / %d invalid / %d errored  (%s)\n",
			r.ID, r.Document, r.Summary.Valid, r.Summary.Invalid, r.Summary.Errored,
			r.StartedAt.Format(time.RFC3339))
	}
	return nil
}

func reportsShowCmd(opts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved report, optionally filtered by a JSONPath query",
		Example: `  polycheck reports show 20260203T101112Z_sample
  polycheck reports show 20260203T101112Z_sample --jsonpath '$.statements[?(@.verdict=="invalid")].raw'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace, "")
			if err != nil {
				return err
			}
			return showReport(cmd.OutOrStdout(), ws.store(), args[0], query)
		},
	}

	cmd.Flags().StringVar(&query, "jsonpath", "", "JSONPath query over the report (e.g. $.statements[*].verdict)")
	return cmd
}

func showReport(w io.Writer, catalog ports.ReportCatalog, id, query string) error {
	b, err := catalog.LoadReport(id)
	if err != nil {
		return err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		_, err := w.Write(b)
		if err == nil && len(b) > 0 && b[len(b)-1] != '\n' {
			_, err = io.WriteString(w, "\n")
		}
		return err
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return &domain.OpError{Op: "reports.show", Kind: domain.KindIO, Path: id, Err: err}
	}

	val, err := jsonpath.Get(query, doc)
	if err != nil {
		return &domain.OpError{
			Op:   "reports.show",
			Kind: domain.KindInvalidConfig,
			Path: id,
			Err:  fmt.Errorf("jsonpath %q: %w", query, err),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(val)
}
