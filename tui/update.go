package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/heyandras/gridwatch/issue"
	"github.com/heyandras/gridwatch/store"
	"go.uber.org/zap"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		if m.modal == detailModal {
			m.setDetailContent()
		}
		return m, nil

	case tea.KeyMsg:
		// Notifications stay until the next key press
		m.notification = nil

		if m.modal != noModal {
			return m.handleModalInput(msg)
		}
		return m.handleMainInput(msg)

	case issueSavedMsg:
		return m.handleIssueSaved(msg)

	case issuesWrittenMsg:
		m.saving = false
		m.refresh()
		if msg.err != nil {
			m.logger.Error("Retry save failed", zap.Error(msg.err))
			m.showErrorNotification(fmt.Sprintf("Save failed: %v", msg.err))
			return m, nil
		}
		m.setUnsaved(false)
		m.showSuccessNotification("All changes saved")
		return m, nil

	case issuesExportedMsg:
		if msg.err != nil {
			m.logger.Error("Export failed", zap.Error(msg.err))
			m.showErrorNotification(fmt.Sprintf("Export failed: %v", msg.err))
			return m, nil
		}
		m.logger.Info("Exported issues", zap.String("path", msg.path))
		m.showSuccessNotification("Exported to " + msg.path)
		return m, nil
	}

	return m, nil
}

func (m Model) handleMainInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.criteria

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.StatusNext):
		c.Status = issue.Cycle(issue.StatusOptions, c.Status, 1)
		m.setCriteria(c)
		return m, nil

	case key.Matches(msg, m.keys.StatusPrev):
		c.Status = issue.Cycle(issue.StatusOptions, c.Status, -1)
		m.setCriteria(c)
		return m, nil

	case key.Matches(msg, m.keys.SeverityNext):
		c.Severity = issue.Cycle(issue.SeverityOptions, c.Severity, 1)
		m.setCriteria(c)
		return m, nil

	case key.Matches(msg, m.keys.SeverityPrev):
		c.Severity = issue.Cycle(issue.SeverityOptions, c.Severity, -1)
		m.setCriteria(c)
		return m, nil

	case key.Matches(msg, m.keys.TypeNext):
		c.Type = issue.Cycle(issue.TypeOptions, c.Type, 1)
		m.setCriteria(c)
		return m, nil

	case key.Matches(msg, m.keys.TypePrev):
		c.Type = issue.Cycle(issue.TypeOptions, c.Type, -1)
		m.setCriteria(c)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.setCriteria(issue.Criteria{Status: issue.All, Severity: issue.All, Type: issue.All})
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		if sel := m.selectedIssue(); sel != nil {
			m.openDetail(sel.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if sel := m.selectedIssue(); sel != nil {
			m.openEditor(*sel)
		}
		return m, nil

	case key.Matches(msg, m.keys.Export):
		return m, m.exportIssues

	case key.Matches(msg, m.keys.Retry):
		if m.saving {
			return m, nil
		}
		m.saving = true
		return m, m.writeIssues

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// Everything else drives the table (arrows, paging, home/end)
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleModalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case detailModal:
		return m.handleDetailModalInput(msg)
	case editModal:
		return m.handleEditModalInput(msg)
	}
	return m, nil
}

func (m Model) handleDetailModalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.modal = noModal
		return m, nil

	case "ctrl+c":
		return m, tea.Quit

	case "e":
		if i, ok := m.session.Get(m.detailID); ok {
			m.openEditor(i)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleEditModalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Input is held while a save is running
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeEditor()
		return m, nil

	case "ctrl+s":
		return m.submitEdit()

	case "tab":
		return m, m.focusEdit((m.modalFocused + 1) % focusCount)

	case "shift+tab":
		return m, m.focusEdit((m.modalFocused + focusCount - 1) % focusCount)
	}

	switch m.modalFocused {
	case focusStatus:
		switch msg.String() {
		case "left", "h":
			m.editStatus = (m.editStatus + len(issue.Statuses) - 1) % len(issue.Statuses)
		case "right", "l", " ":
			m.editStatus = (m.editStatus + 1) % len(issue.Statuses)
		case "enter", "down":
			return m, m.focusEdit(focusSolution)
		}
		return m, nil

	case focusSolution:
		var cmd tea.Cmd
		m.solution, cmd = m.solution.Update(msg)
		return m, cmd

	case focusSave:
		switch msg.String() {
		case "enter":
			return m.submitEdit()
		case "right", "l":
			return m, m.focusEdit(focusCancel)
		}

	case focusCancel:
		switch msg.String() {
		case "enter":
			m.closeEditor()
		case "left", "h":
			return m, m.focusEdit(focusSave)
		}
	}

	return m, nil
}

func (m *Model) openDetail(id int) {
	m.modal = detailModal
	m.detailID = id
	m.setDetailContent()
}

func (m *Model) setDetailContent() {
	i, ok := m.session.Get(m.detailID)
	if !ok {
		m.modal = noModal
		return
	}
	m.detail.SetContent(renderIssueDetail(i, m.detail.Width))
	m.detail.GotoTop()
}

func (m *Model) openEditor(i issue.Issue) {
	m.modal = editModal
	m.editID = i.ID
	m.editStatus = 0
	for n, s := range issue.Statuses {
		if s == i.Status {
			m.editStatus = n
			break
		}
	}
	m.solution.SetValue(i.Solution)
	m.modalFocused = focusStatus
	m.solution.Blur()
}

func (m *Model) closeEditor() {
	m.modal = noModal
	m.modalFocused = focusStatus
	m.solution.Blur()
}

func (m *Model) focusEdit(target int) tea.Cmd {
	m.modalFocused = target
	if target == focusSolution {
		return m.solution.Focus()
	}
	m.solution.Blur()
	return nil
}

func (m Model) submitEdit() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.saving = true
	status := issue.Statuses[m.editStatus]
	return m, m.saveIssue(m.editID, status, m.solution.Value())
}

func (m Model) handleIssueSaved(msg issueSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	m.refresh()

	if msg.err != nil {
		m.logger.Error("Failed to save issue", zap.Int("id", msg.id), zap.Error(msg.err))

		switch {
		case errors.Is(msg.err, store.ErrNotFound):
			m.closeEditor()
			m.showErrorNotification(fmt.Sprintf("Issue #%d no longer exists", msg.id))
		case errors.Is(msg.err, store.ErrDataPersist):
			// The edit is kept in memory and in the form
			m.setUnsaved(true)
			m.showErrorNotification(fmt.Sprintf("Save failed: %v", msg.err))
		default:
			m.showErrorNotification(msg.err.Error())
		}
		return m, nil
	}

	m.setUnsaved(false)
	m.closeEditor()
	m.showSuccessNotification(fmt.Sprintf("Issue #%d updated successfully", msg.id))
	return m, nil
}
