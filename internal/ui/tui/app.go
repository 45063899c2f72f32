package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/polycheck/internal/domain"
	"github.com/aalvaropc/polycheck/internal/ui/style"
)

type screen int

const (
	screenHome screen = iota
	screenDocuments
	screenReports
	screenResult
)

type menuItem struct {
	title string
	desc  string
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type documentItem struct{ ref documentRef }

func (d documentItem) Title() string       { return d.ref.rel }
func (d documentItem) Description() string { return fmt.Sprintf("%d bytes", d.ref.size) }
func (d documentItem) FilterValue() string { return d.ref.rel }

type reportItem struct{ ref domain.ReportRef }

func (r reportItem) Title() string { return r.ref.ID }
func (r reportItem) Description() string {
	s := r.ref.Summary
	return fmt.Sprintf("%s • %d valid, %d invalid, %d errored", r.ref.Document, s.Valid, s.Invalid, s.Errored)
}
func (r reportItem) FilterValue() string { return r.ref.ID + " " + r.ref.Document }

const (
	menuCheck   = "Check a document"
	menuReports = "Saved reports"
	menuQuit    = "Quit"
)

type model struct {
	theme style.Theme
	deps  Deps

	scr     screen
	menu    list.Model
	docs    list.Model
	reports list.Model

	workspaceFound bool
	workspaceRoot  string
	baseDir        string

	running bool
	toast   string

	result     domain.DocumentReport
	resultID   string
	resultBack screen
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 76, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return l
}

func newModel(deps Deps) model {
	items := []list.Item{
		menuItem{menuCheck, "Pick an XML document and check every statement"},
		menuItem{menuReports, "Browse reports saved with --save"},
		menuItem{menuQuit, "Exit polycheck"},
	}

	return model{
		theme:   style.DefaultTheme(),
		deps:    deps,
		scr:     screenHome,
		menu:    newList("polycheck", items),
		docs:    newList("Documents", nil),
		reports: newList("Saved reports", nil),
		baseDir: deps.StartDir,
	}
}

func (m model) Init() tea.Cmd { return cmdRefreshWorkspace(m.deps) }

// activeList is the list shown on the current screen, or nil.
func (m *model) activeList() *list.Model {
	switch m.scr {
	case screenHome:
		return &m.menu
	case screenDocuments:
		return &m.docs
	case screenReports:
		return &m.reports
	default:
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w, h := msg.Width-4, msg.Height-10
		m.menu.SetSize(w, h)
		m.docs.SetSize(w, h)
		m.reports.SetSize(w, h)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		if msg.found {
			m.baseDir = msg.root
		} else if msg.cwd != "" {
			m.baseDir = msg.cwd
		}
		return m, nil

	case documentsLoadedMsg:
		if msg.err != nil {
			m.toast = style.UserMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, len(msg.docs))
		for i, d := range msg.docs {
			items[i] = documentItem{ref: d}
		}
		return m, m.docs.SetItems(items)

	case checkDoneMsg:
		m.running = false
		if msg.err != nil {
			m.toast = style.UserMessage(msg.err)
			// A failed save still has results to show.
			if len(msg.report.Statements) == 0 {
				return m, nil
			}
		}
		m.showResult(msg.report, msg.id, screenDocuments)
		return m, nil

	case reportsLoadedMsg:
		if msg.err != nil {
			m.toast = style.UserMessage(msg.err)
			return m, nil
		}
		items := make([]list.Item, len(msg.refs))
		for i, r := range msg.refs {
			items[i] = reportItem{ref: r}
		}
		return m, m.reports.SetItems(items)

	case reportLoadedMsg:
		m.running = false
		if msg.err != nil {
			m.toast = style.UserMessage(msg.err)
			return m, nil
		}
		m.showResult(msg.report, msg.id, screenReports)
		return m, nil

	case tea.KeyMsg:
		// Typing into a list filter must not trigger navigation keys.
		if l := m.activeList(); l != nil && l.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.scr == screenHome {
				return m, tea.Quit
			}
			m.scr = screenHome
			m.toast = ""
			return m, nil

		case "enter":
			return m.selectItem()

		case "esc", "b":
			switch m.scr {
			case screenDocuments, screenReports:
				m.scr = screenHome
				m.toast = ""
				return m, nil
			case screenResult:
				m.scr = m.resultBack
				return m, nil
			}
		}
	}

	if l := m.activeList(); l != nil {
		var cmd tea.Cmd
		*l, cmd = l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) selectItem() (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}

	switch m.scr {
	case screenHome:
		it, ok := m.menu.SelectedItem().(menuItem)
		if !ok {
			return m, nil
		}
		m.toast = ""
		switch it.title {
		case menuCheck:
			m.scr = screenDocuments
			return m, cmdLoadDocuments(m.baseDir)
		case menuReports:
			m.scr = screenReports
			return m, cmdLoadReports(m.deps.Reports)
		default:
			return m, tea.Quit
		}

	case screenDocuments:
		it, ok := m.docs.SelectedItem().(documentItem)
		if !ok {
			return m, nil
		}
		m.running = true
		m.toast = ""
		return m, cmdCheckDocument(m.deps, it.ref.path)

	case screenReports:
		it, ok := m.reports.SelectedItem().(reportItem)
		if !ok {
			return m, nil
		}
		m.running = true
		m.toast = ""
		return m, cmdLoadReport(m.deps.Reports, it.ref.ID)
	}
	return m, nil
}

func (m *model) showResult(report domain.DocumentReport, id string, back screen) {
	m.result = report
	m.resultID = id
	m.resultBack = back
	m.scr = screenResult
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("polycheck") + "\n" +
		m.theme.Subtitle.Render("Statement checker for Strings, Algebra, Sets and Boolean") + "\n"

	var banner string
	if m.workspaceFound {
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		banner = m.theme.Card.Render("⚠ No workspace found.\n\nRun `polycheck init` to create one.")
	}
	if m.toast != "" {
		banner += "\n" + m.theme.Failed.Render(m.toast)
	}
	if m.running {
		banner += "\n" + m.theme.Help.Render("Working...")
	}

	top := header + "\n" + banner + "\n\n"
	switch m.scr {
	case screenHome:
		help := m.theme.Help.Render("↑/↓ navigate • enter open • / search • q quit")
		return wrap.Render(top + m.theme.Card.Render(m.menu.View()) + "\n" + help)

	case screenDocuments:
		help := m.theme.Help.Render("enter check • / search • esc/b back • q home")
		return wrap.Render(top + m.theme.Card.Render(m.docs.View()) + "\n" + help)

	case screenReports:
		help := m.theme.Help.Render("enter open • / search • esc/b back • q home")
		return wrap.Render(top + m.theme.Card.Render(m.reports.View()) + "\n" + help)

	case screenResult:
		help := m.theme.Help.Render("esc/b back • q home")
		return wrap.Render(top + m.theme.Card.Render(renderReport(m.theme, m.result, m.resultID)) + "\n" + help)

	default:
		return wrap.Render(header + "\n" + "unknown state")
	}
}

func renderReport(theme style.Theme, report domain.DocumentReport, id string) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Document: "+report.Path) + "\n")
	if id != "" {
		b.WriteString(theme.Subtitle.Render("Report:   "+id) + "\n")
	}
	if !report.StartedAt.IsZero() {
		b.WriteString(theme.Subtitle.Render("Started:  "+report.StartedAt.Format(time.RFC3339)) + "\n")
	}
	b.WriteString("\n")

	if len(report.Statements) == 0 {
		b.WriteString(theme.Help.Render("No statements.") + "\n")
	}
	for _, st := range report.Statements {
		b.WriteString(style.RenderStatement(theme, st))
	}

	b.WriteString("\n" + style.RenderSummary(theme, report.Summary()))
	return b.String()
}
