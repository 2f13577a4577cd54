package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/heyandras/gridwatch/issue"
)

// Layout constants
const (
	mainChromeHeight  = 13 // header, filters, count, summary, status and help lines
	modalChromeWidth  = 10
	modalChromeHeight = 10
	solutionColumnMax = 50
	chartHeight       = 8
	chartWidth        = 48
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show modal if active
	if m.modal != noModal {
		return m.renderModal()
	}

	sections := []string{
		m.renderHeader(),
		m.renderFilterBar(),
		"",
		m.renderResults(),
		m.renderSummary(),
		m.renderHelpBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("⚡ Electrical Consumption Issues")
	subtitle := subtitleStyle.Render("Monitor and manage electrical consumption anomalies · " + m.session.Path())
	return title + "\n" + subtitle + "\n"
}

func (m Model) renderFilterBar() string {
	filter := func(label, value string) string {
		style := filterValueStyle
		if value != issue.All {
			style = filterActiveValueStyle
		}
		return filterLabelStyle.Render(label+":") + " " + style.Render(value)
	}

	return " " + strings.Join([]string{
		filter("Status", m.criteria.Status),
		filter("Severity", m.criteria.Severity),
		filter("Type", m.criteria.Type),
	}, "   ")
}

func (m Model) renderResults() string {
	count := countStyle.Render(fmt.Sprintf("Found %d issue(s)", len(m.visible)))
	if !m.criteria.IsWildcard() {
		count += helpStyle.Render(fmt.Sprintf("of %d · c to clear filters", m.summary.Total))
	}
	if len(m.visible) == 0 {
		empty := warningStyle.Render("No issues match the selected filters.")
		// Keep the summary anchored where the table would end
		pad := strings.Repeat("\n", max(0, m.table.Height()-1))
		return count + "\n" + empty + pad
	}
	return count + "\n" + m.table.View()
}

func (m Model) renderSummary() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		" ",
		statBox("Total Issues", m.summary.Total),
		statBox("Critical Issues", m.summary.Critical),
		statBox("Open Issues", m.summary.Open),
		statBox("High Consumption", m.summary.HighConsumption),
		statBox("Resolved", m.summary.Resolved),
	)
}

func statBox(label string, value int) string {
	return statBoxStyle.Render(
		statValueStyle.Render(strconv.Itoa(value)) + "\n" + statLabelStyle.Render(label),
	)
}

func (m Model) renderHelpBar() string {
	var statusLine string
	switch {
	case m.saving:
		statusLine = helpStyle.Render("Saving...")
	case m.notification != nil:
		style := notificationStyles[m.notification.Type]
		statusLine = " " + style.Render(m.notification.Message)
	case m.unsaved:
		statusLine = " " + notificationStyles[NotificationWarning].Render("Unsaved changes. Press w to retry the save.")
	}

	return statusLine + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m Model) renderModal() string {
	switch m.modal {
	case detailModal:
		return m.renderDetailModal()
	case editModal:
		return m.renderEditModal()
	}
	return ""
}

func (m Model) renderDetailModal() string {
	var b strings.Builder

	title := fmt.Sprintf("Issue #%d", m.detailID)
	if i, ok := m.session.Get(m.detailID); ok {
		title += " · " + i.Location
	}
	b.WriteString(modalTitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.detail.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ scroll • e edit • Esc close • %3.f%%", m.detail.ScrollPercent()*100)))

	style := modalStyle.Width(m.detail.Width + 4)
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		style.Render(b.String()),
	)
}

func (m Model) renderEditModal() string {
	var b strings.Builder

	b.WriteString(modalTitleStyle.Render(fmt.Sprintf("Edit Issue #%d", m.editID)))
	b.WriteString("\n\n")

	// Status selector
	b.WriteString(inputLabelStyle.Render("Status:"))
	b.WriteString("\n")
	for n, s := range issue.Statuses {
		style := selectorStyle
		if n == m.editStatus {
			style = selectedSelectorStyle
			if m.modalFocused != focusStatus {
				style = filterValueStyle
			}
		}
		b.WriteString(style.Render(s))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	// Solution input
	b.WriteString(inputLabelStyle.Render("Solution:"))
	b.WriteString("\n")
	b.WriteString(m.solution.View())
	b.WriteString("\n\n")

	// Buttons
	saveBtn := "Save"
	if m.saving {
		saveBtn = "Saving..."
	}
	if m.modalFocused == focusSave {
		b.WriteString(selectedButtonStyle.Render(saveBtn))
	} else {
		b.WriteString(buttonStyle.Render(saveBtn))
	}
	if m.modalFocused == focusCancel {
		b.WriteString(selectedCancelButtonStyle.Render("Cancel"))
	} else {
		b.WriteString(cancelButtonStyle.Render("Cancel"))
	}
	b.WriteString("\n\n")

	if m.notification != nil {
		b.WriteString(notificationStyles[m.notification.Type].Render(m.notification.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("Tab to move • ←/→ change status • Ctrl+S save • Esc cancel"))

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		modalStyle.Render(b.String()),
	)
}

// issueColumns sizes the table columns for a terminal width. The solution
// column takes whatever is left.
func issueColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Location", Width: 18},
		{Title: "Type", Width: 18},
		{Title: "Severity", Width: 12},
		{Title: "Current Usage", Width: 13},
		{Title: "Expected Usage", Width: 14},
		{Title: "Deviation", Width: 9},
		{Title: "Status", Width: 11},
		{Title: "Reported", Width: 10},
	}

	used := 0
	for _, c := range columns {
		used += c.Width + 2 // cell padding
	}
	solution := 24
	if width > 0 {
		solution = max(12, width-used-4)
	}
	return append(columns, table.Column{Title: "Solution", Width: solution})
}

func issueRows(issues []issue.Issue) []table.Row {
	rows := make([]table.Row, 0, len(issues))
	for _, i := range issues {
		rows = append(rows, table.Row{
			strconv.Itoa(i.ID),
			i.Location,
			i.Type,
			issue.SeverityLabel(i.Severity),
			issue.OrNA(i.CurrentUsage.String()),
			issue.OrNA(i.ExpectedUsage.String()),
			issue.FormatDeviation(i.Deviation),
			i.Status,
			i.ReportedDate,
			issue.Truncate(i.Solution, solutionColumnMax),
		})
	}
	return rows
}

// renderIssueDetail renders every field of an issue for the detail viewport
func renderIssueDetail(i issue.Issue, width int) string {
	var b strings.Builder

	field := func(label, value string) {
		b.WriteString(detailKeyStyle.Render(label+": ") + detailValueStyle.Render(value) + "\n")
	}
	section := func(title string) {
		b.WriteString("\n" + sectionStyle.Render(title) + "\n")
	}
	paragraph := func(title, text string) {
		section(title)
		b.WriteString(normalItemStyle.Width(max(10, width-2)).Render(issue.OrNA(text)) + "\n")
	}

	section("Basic Information")
	field("Issue ID", strconv.Itoa(i.ID))
	field("Location", issue.OrNA(i.Location))
	field("Type", issue.OrNA(i.Type))
	field("Status", i.Status)
	b.WriteString(detailKeyStyle.Render("Severity: ") +
		severityStyle(i.Severity).Render(issue.SeverityLabel(i.Severity)) + "\n")
	field("Reported Date", issue.OrNA(i.ReportedDate))

	section("Energy Metrics")
	field("Current Usage", issue.OrNA(i.CurrentUsage.String()))
	field("Expected Usage", issue.OrNA(i.ExpectedUsage.String()))
	field("Deviation", issue.FormatDeviation(i.Deviation))
	field("Estimated Cost", issue.OrNA(i.EstimatedCost.String()))

	paragraph("Description", i.Description)
	paragraph("Pattern Analysis", i.PatternAnalysis)
	paragraph("Last Maintenance", i.LastMaintenance)
	paragraph("External Factors", i.ExternalFactors)

	section("Recommended Action")
	b.WriteString(actionStyle.Width(max(10, width-2)).Render(issue.OrNA(i.RecommendedAction)) + "\n")

	paragraph("Solution", i.Solution)

	if history := renderHistory(i); history != "" {
		section("Monthly History")
		b.WriteString(history)
	}

	return b.String()
}

// renderHistory renders the monthly history table and, with at least two
// months, a usage chart
func renderHistory(i issue.Issue) string {
	months, err := i.History()
	if err != nil {
		return errorStyle.Render("  Unreadable monthly history: "+err.Error()) + "\n"
	}
	if len(months) == 0 {
		return ""
	}

	var b strings.Builder
	for _, mu := range months {
		fmt.Fprintf(&b, "  %-12s %-14s %s\n",
			mu.Month, issue.OrNA(mu.Usage.String()), issue.OrNA(mu.Status.String()))
	}

	if len(months) >= 2 {
		chart := asciigraph.Plot(issue.Usages(months),
			asciigraph.Height(chartHeight),
			asciigraph.Width(chartWidth),
			asciigraph.Caption("Energy Usage (kWh)"),
		)
		b.WriteString("\n" + chart + "\n")
	}
	return b.String()
}
