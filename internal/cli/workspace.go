package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/infra/logger"
	"github.com/aalvaropc/polycheck/internal/infra/reportstore"
	"github.com/aalvaropc/polycheck/internal/infra/workspacefinder"
	"github.com/aalvaropc/polycheck/internal/infra/xmldoc"
)

type workspaceCtx struct {
	root  string
	cfg   domain.Config
	found bool
}

// loadWorkspace resolves the workspace from the --workspace flag, or by
// searching upward from start (a document path or directory). Without a
// workspace the defaults apply and start's directory acts as the root.
func loadWorkspace(workspaceFlag, start string) (*workspaceCtx, error) {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace path: %w", err)
		}
		cfg, err := workspacefinder.LoadConfig(abs)
		if err != nil {
			return nil, err
		}
		return &workspaceCtx{root: abs, cfg: cfg, found: true}, nil
	}

	if strings.TrimSpace(start) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}

	ws, err := workspacefinder.Resolve(start)
	if err != nil {
		return nil, err
	}
	return &workspaceCtx{root: ws.Root, cfg: ws.Config, found: ws.Found}, nil
}

// startLogging sends logs to the workspace log file. Outside a workspace
// nothing is written unless debug is set.
func (ws *workspaceCtx) startLogging(debug bool) func() {
	if !ws.found && !debug {
		return func() {}
	}
	cleanup, err := logger.Setup(logger.Config{Root: ws.root, Debug: debug})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}

func (ws *workspaceCtx) store() *reportstore.JSONStore {
	return reportstore.NewJSONStore(ws.root, ws.cfg,
		reportstore.WithIndex(true),
		reportstore.WithLogger(ws.logger()),
	)
}

func (ws *workspaceCtx) logger() *slog.Logger {
	return logger.L().With("workspace", ws.root)
}

func newDocLoader(lenient bool) *xmldoc.Loader {
	return xmldoc.NewLoader(xmldoc.WithStrict(!lenient))
}

// resolveFormat applies the configured default when the flag is empty.
func resolveFormat(flag string, cfg domain.Config) string {
	f := strings.ToLower(strings.TrimSpace(flag))
	if f == "" {
		f = cfg.Defaults.Format
	}
	return f
}

// resolveDomain applies the configured default when the flag is empty.
func resolveDomain(flag string, cfg domain.Config) (domain.Domain, error) {
	if strings.TrimSpace(flag) == "" {
		return cfg.Defaults.Domain, nil
	}
	return domain.ParseDomain(flag)
}
