package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ui/style"
	"github.com/aalvaropc/polycheck/internal/usecase/calc"
)

const replHelp = `Type statements to check them in the current domain, e.g. 1 + 1 = 2; 2 * 2 = 4
  :push <domain>  open a nested scope (strings|algebra|sets|boolean)
  :pop            close the innermost scope
  :domain         show the current scope
  :quit           exit`

func replCmd(opts *rootOptions) *cobra.Command {
	var domainFlag string

	c := &cobra.Command{
		Use:   "repl",
		Short: "Check statements interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts.workspace, "")
			if err != nil {
				return err
			}
			defer ws.startLogging(opts.debug)()

			d, err := resolveDomain(domainFlag, ws.cfg)
			if err != nil {
				return err
			}

			sess := newReplSession(cmd.OutOrStdout(), style.DefaultTheme(), ws.logger(), d)
			return sess.loop(replHistoryPath(ws))
		},
	}

	c.Flags().StringVarP(&domainFlag, "domain", "d", "", "Initial domain: strings|algebra|sets|boolean (default from polycheck.yaml)")
	return c
}

func replHistoryPath(ws *workspaceCtx) string {
	if ws.found {
		return filepath.Join(ws.root, ".polycheck", "repl_history")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".polycheck_history")
}

type replSession struct {
	scopes *domain.Context
	out    io.Writer
	theme  style.Theme
	log    *slog.Logger
}

func newReplSession(out io.Writer, theme style.Theme, log *slog.Logger, initial domain.Domain) *replSession {
	scopes := domain.NewContext()
	scopes.Push(initial)
	return &replSession{scopes: scopes, out: out, theme: theme, log: log}
}

func (s *replSession) prompt() string {
	d, err := s.scopes.Top()
	if err != nil {
		return "polycheck> "
	}
	return d.ElementName() + "> "
}

func (s *replSession) loop(historyPath string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
				return
			}
			if f, err := os.Create(historyPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintln(s.out, s.theme.Help.Render("polycheck repl. :help for commands, :quit to exit."))

	for {
		line, err := ln.Prompt(s.prompt())
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if s.handle(line) {
			return nil
		}
	}
}

// handle processes one input line and reports whether the session ends.
func (s *replSession) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, ":") {
		return s.command(line)
	}

	d, err := s.scopes.Top()
	if err != nil {
		fmt.Fprintln(s.out, s.theme.Failed.Render("no open scope; use :push <domain>"))
		return false
	}

	for _, res := range calc.CheckText(line, d) {
		printStatement(s.out, s.theme, res)
		s.log.Debug("repl.checked", "domain", d.String(), "raw", res.Raw, "verdict", string(res.Verdict))
	}
	return false
}

func (s *replSession) command(line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case ":quit", ":q", ":exit":
		return true

	case ":help":
		fmt.Fprintln(s.out, replHelp)

	case ":push":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: :push <domain>")
			return false
		}
		d, err := domain.ParseDomain(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, s.theme.Failed.Render(err.Error()))
			return false
		}
		s.scopes.Push(d)
		s.printScope()

	case ":pop":
		if _, err := s.scopes.Pop(); err != nil {
			fmt.Fprintln(s.out, s.theme.Failed.Render(err.Error()))
			return false
		}
		s.printScope()

	case ":domain":
		s.printScope()

	default:
		fmt.Fprintf(s.out, "unknown command %s. Type :help for commands.\n", fields[0])
	}
	return false
}

func (s *replSession) printScope() {
	d, err := s.scopes.Top()
	if err != nil {
		fmt.Fprintln(s.out, "scope: (none)")
		return
	}
	fmt.Fprintf(s.out, "scope: %s (depth %d)\n", d, s.scopes.Depth())
}
