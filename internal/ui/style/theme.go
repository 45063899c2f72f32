package style

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used for terminal reports.
type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Valid    lipgloss.Style
	Invalid  lipgloss.Style
	Failed   lipgloss.Style
	Domain   lipgloss.Style
	Card     lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true),
		Subtitle: lipgloss.NewStyle().Faint(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Valid:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Invalid:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Failed:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Domain:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// Plain is a theme with no styling, for non-terminal output.
func Plain() Theme {
	s := lipgloss.NewStyle()
	return Theme{Title: s, Subtitle: s, Help: s, Valid: s, Invalid: s, Failed: s, Domain: s, Card: s}
}
