package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ui/style"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	workspace string
	debug     bool
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	check := checkOptions{}

	cmd := &cobra.Command{
		Use:           "polycheck <document>",
		Short:         "Check arithmetic statements in Strings, Algebra, Sets and Boolean domains",
		Args:          documentArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, check, args[0])
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .polycheck/logs/polycheck.log")
	cmd.Flags().StringVar(&check.format, "format", "", "Output format: pretty|json|yaml (default from polycheck.yaml)")
	cmd.Flags().BoolVar(&check.save, "save", false, "Save the report under the workspace reports directory")
	cmd.Flags().BoolVar(&check.lenient, "lenient", false, "Accept malformed XML (unmatched tags, unknown entities)")

	cmd.AddCommand(
		validateCmd(opts),
		evalCmd(opts),
		replCmd(opts),
		reportsCmd(opts),
		tuiCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// usageError marks a wrong invocation; the usage text is printed with it.
type usageError struct {
	msg   string
	usage string
}

func (e *usageError) Error() string { return e.msg }

func documentArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{
			msg:   fmt.Sprintf("expected exactly one document path, got %d argument(s)", len(args)),
			usage: cmd.UsageString(),
		}
	}
	return nil
}

func printError(w io.Writer, err error) {
	theme := style.DefaultTheme()

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(w, theme.Failed.Render("Error:"), ue.msg)
		fmt.Fprint(w, ue.usage)
		return
	}

	var fe *failedError
	if errors.As(err, &fe) {
		fmt.Fprintln(w, theme.Invalid.Render(fe.Error()))
		return
	}

	fmt.Fprintln(w, theme.Failed.Render("Error:"), style.UserMessage(err))
	fmt.Fprintln(w, theme.Subtitle.Render(err.Error()))
}

// failedError reports that checking completed but not every statement held.
type failedError struct {
	summary domain.Summary
}

func (e *failedError) Error() string {
	return fmt.Sprintf("check failed (%d invalid, %d errored statement(s))", e.summary.Invalid, e.summary.Errored)
}

// checkOutcome turns a summary into the command result.
func checkOutcome(s domain.Summary) error {
	if s.OK() {
		return nil
	}
	return &failedError{summary: s}
}
