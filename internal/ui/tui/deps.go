package tui

import (
	"log/slog"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
)

type Deps struct {
	WorkspaceLocator ports.WorkspaceLocator
	Documents        ports.DocumentLoader
	// Store is nil when checked documents should not be saved.
	Store    ports.ReportStore
	Reports  ports.ReportCatalog
	Elements domain.ElementMap
	Logger   *slog.Logger
	// StartDir is where the workspace search begins.
	StartDir string
}
