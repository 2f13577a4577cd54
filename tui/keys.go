package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard bindings shown in the help bar
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	StatusNext   key.Binding
	StatusPrev   key.Binding
	SeverityNext key.Binding
	SeverityPrev key.Binding
	TypeNext     key.Binding
	TypePrev     key.Binding
	Clear        key.Binding
	Detail       key.Binding
	Edit         key.Binding
	Export       key.Binding
	Retry        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		StatusNext: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", "status"),
		),
		StatusPrev: key.NewBinding(
			key.WithKeys("S"),
		),
		SeverityNext: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v/V", "severity"),
		),
		SeverityPrev: key.NewBinding(
			key.WithKeys("V"),
		),
		TypeNext: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t/T", "type"),
		),
		TypePrev: key.NewBinding(
			key.WithKeys("T"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		Retry: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "retry save"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StatusNext, k.SeverityNext, k.TypeNext, k.Detail, k.Edit, k.Retry, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail, k.Edit},
		{k.StatusNext, k.SeverityNext, k.TypeNext, k.Clear},
		{k.Export, k.Retry, k.Help, k.Quit},
	}
}
