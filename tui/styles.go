package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/heyandras/gridwatch/issue"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#FF79C6")
	accentColor    = lipgloss.Color("#50FA7B")
	successColor   = lipgloss.Color("#50FA7B")
	warningColor   = lipgloss.Color("#FFB86C")
	errorColor     = lipgloss.Color("#FF5555")
	infoColor      = lipgloss.Color("#8BE9FD")
	mutedColor     = lipgloss.Color("#6272A4")
	fgColor        = lipgloss.Color("#F8F8F2")
	bgDark         = lipgloss.Color("#282A36")

	// Severity colors follow the glyphs
	severityColors = map[string]lipgloss.Color{
		issue.SeverityCritical: errorColor,
		issue.SeverityHigh:     warningColor,
		issue.SeverityMedium:   lipgloss.Color("#F1FA8C"),
		issue.SeverityLow:      successColor,
	}

	// Header styles
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			PaddingLeft(2)

	// Filter bar
	filterLabelStyle = lipgloss.NewStyle().
				Foreground(secondaryColor).
				Bold(true)

	filterValueStyle = lipgloss.NewStyle().
				Foreground(fgColor).
				Background(primaryColor).
				Padding(0, 1)

	filterActiveValueStyle = lipgloss.NewStyle().
				Foreground(bgDark).
				Background(accentColor).
				Padding(0, 1).
				Bold(true)

	// Summary panel
	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 2).
			MarginRight(1).
			Align(lipgloss.Center)

	statValueStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Bold(true)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Detail styles
	detailKeyStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	actionStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(successColor).
			PaddingLeft(1)

	// Help/Status bar
	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	countStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Modal styles
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2).
			Width(70)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	selectorStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Padding(0, 1)

	selectedSelectorStyle = lipgloss.NewStyle().
				Foreground(bgDark).
				Background(accentColor).
				Padding(0, 1).
				Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(primaryColor).
			Padding(0, 2).
			MarginRight(1)

	selectedButtonStyle = lipgloss.NewStyle().
				Foreground(fgColor).
				Background(accentColor).
				Padding(0, 2).
				MarginRight(1).
				Bold(true)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(fgColor).
				Background(mutedColor).
				Padding(0, 2)

	selectedCancelButtonStyle = lipgloss.NewStyle().
					Foreground(fgColor).
					Background(errorColor).
					Padding(0, 2).
					Bold(true)

	// Notification styles
	notificationStyles = map[NotificationType]lipgloss.Style{
		NotificationInfo:    lipgloss.NewStyle().Foreground(infoColor).Bold(true),
		NotificationSuccess: lipgloss.NewStyle().Foreground(successColor).Bold(true),
		NotificationWarning: lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		NotificationError:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	}
)

// severityStyle colors a severity label
func severityStyle(severity string) lipgloss.Style {
	if c, ok := severityColors[severity]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return detailValueStyle
}

// tableStyles adapts the bubbles table defaults to the palette
func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(mutedColor).
		BorderBottom(true).
		Foreground(primaryColor).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(accentColor).
		Bold(true)
	return s
}
