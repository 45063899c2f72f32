package tui

import "github.com/aalvaropc/polycheck/internal/domain"

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

// documentRef is an XML document found under the workspace.
type documentRef struct {
	path string
	rel  string
	size int64
}

type documentsLoadedMsg struct {
	dir  string
	docs []documentRef
	err  error
}

type checkDoneMsg struct {
	path   string
	report domain.DocumentReport
	id     string
	err    error
}

type reportsLoadedMsg struct {
	refs []domain.ReportRef
	err  error
}

type reportLoadedMsg struct {
	id     string
	report domain.DocumentReport
	err    error
}
