package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Groups
	Collapse  key.Binding
	Expand    key.Binding
	ToggleAll key.Binding

	// Item actions
	Toggle       key.Binding
	Add          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	PriorityLow  key.Binding
	PriorityHigh key.Binding
	PriorityNone key.Binding

	// Filters
	HideCompleted key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		Collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse group"),
		),
		Expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand group"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "collapse/expand all"),
		),

		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle done"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "f2"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete", "backspace"),
			key.WithHelp("d", "delete"),
		),
		PriorityLow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle ! priority"),
		),
		PriorityHigh: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle !! priority"),
		),
		PriorityNone: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "clear priority"),
		),

		HideCompleted: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "hide/show done"),
		),

		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns short help bindings (for the footer)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Add, k.Edit, k.Delete, k.Collapse, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for the help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Collapse, k.Expand, k.ToggleAll},
		{k.Toggle, k.Add, k.Edit, k.Delete},
		{k.PriorityLow, k.PriorityHigh, k.PriorityNone},
		{k.HideCompleted, k.ThemeCycle, k.Help, k.Quit},
	}
}

// inputKeys is the binding set shown while the add/edit field is
// active.
type inputKeys struct {
	keys KeyMap
}

func (i inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{i.keys.Confirm, i.keys.Cancel}
}

func (i inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{i.ShortHelp()}
}
