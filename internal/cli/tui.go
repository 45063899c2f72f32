package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/polycheck/internal/infra/workspacefinder"
	"github.com/aalvaropc/polycheck/internal/ports"
	"github.com/aalvaropc/polycheck/internal/ui/tui"
)

type tuiOptions struct {
	save    bool
	lenient bool
}

func tuiCmd(opts *rootOptions) *cobra.Command {
	var topts tuiOptions

	c := &cobra.Command{
		Use:   "tui",
		Short: "Browse documents and saved reports interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			ws, err := loadWorkspace(opts.workspace, wd)
			if err != nil {
				return err
			}
			defer ws.startLogging(opts.debug)()

			return tui.Run(tuiDeps(ws, topts, wd))
		},
	}

	c.Flags().BoolVar(&topts.save, "save", false, "Save a report for every checked document")
	c.Flags().BoolVar(&topts.lenient, "lenient", false, "Accept malformed XML (unmatched tags, unknown entities)")
	return c
}

// tuiDeps wires the interactive session to the resolved workspace. The
// workspace search starts at the root when one was found, else at cwd.
func tuiDeps(ws *workspaceCtx, topts tuiOptions, cwd string) tui.Deps {
	store := ws.store()

	var saver ports.ReportStore
	if topts.save {
		saver = store
	}

	start := cwd
	if ws.found {
		start = ws.root
	}

	return tui.Deps{
		WorkspaceLocator: workspacefinder.NewFinder(),
		Documents:        newDocLoader(topts.lenient),
		Store:            saver,
		Reports:          store,
		Elements:         ws.cfg.Elements,
		Logger:           ws.logger(),
		StartDir:         start,
	}
}
