package tui

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ports"
	"github.com/aalvaropc/polycheck/internal/usecase"
)

const checkTimeout = 30 * time.Second

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		start := deps.StartDir
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: start, err: errors.New("WorkspaceLocator is nil")}
		}

		root, err := deps.WorkspaceLocator.FindRoot(start)
		if err != nil {
			return workspaceRefreshedMsg{cwd: start, err: err}
		}
		return workspaceRefreshedMsg{cwd: start, found: true, root: root}
	}
}

func cmdLoadDocuments(dir string) tea.Cmd {
	return func() tea.Msg {
		docs, err := findDocuments(dir)
		return documentsLoadedMsg{dir: dir, docs: docs, err: err}
	}
}

// findDocuments lists the .xml files under dir, skipping hidden directories.
func findDocuments(dir string) ([]documentRef, error) {
	var docs []documentRef
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".xml") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		docs = append(docs, documentRef{path: path, rel: filepath.ToSlash(rel), size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{Op: "tui.documents", Kind: domain.KindIO, Path: dir, Err: err}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].rel < docs[j].rel })
	return docs, nil
}

func cmdCheckDocument(deps Deps, path string) tea.Cmd {
	return func() tea.Msg {
		if deps.Documents == nil {
			return checkDoneMsg{path: path, err: errors.New("DocumentLoader is nil")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		opts := []usecase.CheckOption{usecase.WithLogger(deps.Logger)}
		if deps.Elements != nil {
			opts = append(opts, usecase.WithElements(deps.Elements))
		}
		uc := usecase.NewCheckDocument(deps.Documents, deps.Store, opts...)

		report, id, err := uc.Execute(ctx, path)
		return checkDoneMsg{path: path, report: report, id: id, err: err}
	}
}

func cmdLoadReports(catalog ports.ReportCatalog) tea.Cmd {
	return func() tea.Msg {
		if catalog == nil {
			return reportsLoadedMsg{err: errors.New("ReportCatalog is nil")}
		}
		refs, err := catalog.ListReports()
		return reportsLoadedMsg{refs: refs, err: err}
	}
}

func cmdLoadReport(catalog ports.ReportCatalog, id string) tea.Cmd {
	return func() tea.Msg {
		if catalog == nil {
			return reportLoadedMsg{id: id, err: errors.New("ReportCatalog is nil")}
		}
		b, err := catalog.LoadReport(id)
		if err != nil {
			return reportLoadedMsg{id: id, err: err}
		}

		var report domain.DocumentReport
		if err := json.Unmarshal(b, &report); err != nil {
			return reportLoadedMsg{id: id, err: &domain.OpError{
				Op:   "tui.report.decode",
				Kind: domain.KindExecution,
				Path: id,
				Err:  err,
			}}
		}
		return reportLoadedMsg{id: id, report: report}
	}
}
