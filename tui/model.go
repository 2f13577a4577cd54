package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/heyandras/gridwatch/config"
	"github.com/heyandras/gridwatch/issue"
	"github.com/heyandras/gridwatch/store"
	"go.uber.org/zap"
)

type modalType int

const (
	noModal modalType = iota
	detailModal
	editModal
)

// Focus targets inside the edit modal
const (
	focusStatus = iota
	focusSolution
	focusSave
	focusCancel
	focusCount
)

// NotificationType is the severity of a status-line notification
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationWarning
	NotificationError
)

// Notification is a one-line message shown above the help bar until the next
// key press
type Notification struct {
	Message string
	Type    NotificationType
}

// Model represents the TUI state
type Model struct {
	session       *store.Session
	configManager *config.Manager // may be nil
	logger        *zap.Logger

	// Data
	criteria issue.Criteria
	visible  []issue.Issue
	summary  issue.Summary

	// Components
	table    table.Model
	detail   viewport.Model
	solution textarea.Model
	help     help.Model
	keys     keyMap

	// UI state
	width        int
	height       int
	ready        bool
	notification *Notification
	unsaved      bool // a save failed and memory is ahead of the file

	// Modal state
	modal        modalType
	modalFocused int
	detailID     int
	editID       int
	editStatus   int // index into issue.Statuses
	saving       bool
}

// NewModel creates a dashboard over an opened session. The filter selection
// is restored from configManager when one is given.
func NewModel(session *store.Session, configManager *config.Manager, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	solution := textarea.New()
	solution.Placeholder = "Describe the solution..."
	solution.ShowLineNumbers = false
	solution.CharLimit = 2000
	solution.SetWidth(60)
	solution.SetHeight(5)

	t := table.New(
		table.WithColumns(issueColumns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(tableStyles()),
	)

	m := Model{
		session:       session,
		configManager: configManager,
		logger:        logger,
		table:         t,
		detail:        viewport.New(0, 0),
		solution:      solution,
		help:          help.New(),
		keys:          defaultKeyMap(),
	}

	if configManager != nil {
		saved := configManager.GetFilters()
		m.criteria = issue.Criteria{
			Status:   issue.Normalize(issue.StatusOptions, saved.Status),
			Severity: issue.Normalize(issue.SeverityOptions, saved.Severity),
			Type:     issue.Normalize(issue.TypeOptions, saved.Type),
		}
	} else {
		m.criteria = issue.Criteria{Status: issue.All, Severity: issue.All, Type: issue.All}
	}

	m.refresh()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Messages
type (
	issueSavedMsg struct {
		id  int
		err error
	}

	issuesWrittenMsg struct {
		err error
	}

	issuesExportedMsg struct {
		path string
		err  error
	}
)

// Commands
func (m Model) saveIssue(id int, status, solution string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		err := session.Update(id, status, solution)
		return issueSavedMsg{id: id, err: err}
	}
}

func (m Model) writeIssues() tea.Msg {
	return issuesWrittenMsg{err: m.session.Save()}
}

func (m Model) exportIssues() tea.Msg {
	path, err := m.session.Export()
	return issuesExportedMsg{path: path, err: err}
}

// Helper methods

// refresh recomputes the visible rows and counters from the session
func (m *Model) refresh() {
	m.visible = m.session.Filter(m.criteria)
	m.summary = m.session.Summary()
	m.table.SetRows(issueRows(m.visible))

	n := len(m.visible)
	switch {
	case n == 0:
	case m.table.Cursor() < 0:
		m.table.SetCursor(0)
	case m.table.Cursor() >= n:
		m.table.SetCursor(n - 1)
	}
}

func (m Model) selectedIssue() *issue.Issue {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}
	return &m.visible[idx]
}

// setCriteria applies a new filter selection and remembers it
func (m *Model) setCriteria(c issue.Criteria) {
	m.criteria = c
	m.table.SetCursor(0)
	m.refresh()

	if m.configManager == nil {
		return
	}
	filters := config.Filters{Status: c.Status, Severity: c.Severity, Type: c.Type}
	if err := m.configManager.SetFilters(filters); err != nil {
		m.logger.Warn("Failed to save filter selection", zap.Error(err))
	}
}

// resize lays out the components for the current terminal size
func (m *Model) resize() {
	m.table.SetColumns(issueColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(3, m.height-mainChromeHeight))

	m.detail.Width = max(20, m.width-modalChromeWidth)
	m.detail.Height = max(5, m.height-modalChromeHeight)

	m.solution.SetWidth(min(60, max(20, m.width-modalChromeWidth)))
	m.help.Width = m.width
}

func (m *Model) showNotification(t NotificationType, msg string) {
	m.notification = &Notification{Message: msg, Type: t}
}

func (m *Model) showSuccessNotification(msg string) {
	m.showNotification(NotificationSuccess, msg)
}

func (m *Model) showErrorNotification(msg string) {
	m.showNotification(NotificationError, msg)
}

func (m *Model) setUnsaved(unsaved bool) {
	m.unsaved = unsaved
	m.keys.Retry.SetEnabled(unsaved)
}
