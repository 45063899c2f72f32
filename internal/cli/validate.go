package cli

import (
	"fmt"

	"github.com/aalvaropc/polycheck/internal/usecase"
	"github.com/spf13/cobra"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	var lenient bool

	c := &cobra.Command{
		Use:   "validate <document>",
		Short: "Check document structure and expression syntax (no evaluation)",
		Args:  documentArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(opts.workspace, args[0])
			if err != nil {
				return err
			}
			defer ws.startLogging(opts.debug)()

			uc := usecase.NewValidateDocument(newDocLoader(lenient), ws.cfg.Elements)
			if err := uc.Execute(cmd.Context(), args[0]); err != nil {
				ws.logger().Warn("document.invalid", "path", args[0], "error", err.Error())
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	c.Flags().BoolVar(&lenient, "lenient", false, "Accept malformed XML (unmatched tags, unknown entities)")
	return c
}
