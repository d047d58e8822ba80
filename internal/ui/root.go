package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/tandemlist/tandem/internal/app"
	"github.com/tandemlist/tandem/internal/model"
	"github.com/tandemlist/tandem/internal/session"
	"github.com/tandemlist/tandem/internal/store"
	"github.com/tandemlist/tandem/internal/ui/theme"
)

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdd
	ModeEdit
)

// RootModel is the session loop: one cooperative thread that renders,
// waits for a keypress or the poll tick, and on each wake-up performs
// at most one external-change check. Every mutation goes back through
// the store and re-derives the visible structure, so the focus is
// always reconciled against fresh entries.
type RootModel struct {
	app  *app.App
	keys KeyMap
	help help.Model

	width  int
	height int

	items []model.Item
	state session.State

	mode   Mode
	input  textinput.Model
	editID string

	helpVisible bool
	statusMsg   string
	errorMsg    string

	// fatalErr aborts the program; set on store failures, which have
	// no retry policy.
	fatalErr error
}

// NewRootModel creates the session loop model over an already-loaded
// collection.
func NewRootModel(application *app.App, items []model.Item) RootModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	st := session.NewState()
	st.HideCompleted = application.Config.HideCompleted
	st.Reconcile(items)

	return RootModel{
		app:   application,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		items: items,
		state: st,
		input: ti,
	}
}

// FatalErr returns the error that aborted the session, if any.
func (m RootModel) FatalErr() error { return m.fatalErr }

// Init starts the poll ticker.
func (m RootModel) Init() tea.Cmd {
	return m.poll()
}

func (m RootModel) poll() tea.Cmd {
	return tea.Tick(m.app.Config.Refresh, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pollMsg:
		changed, err := m.app.Store.Changed()
		if err != nil {
			return m.fatal(err)
		}
		if !changed {
			return m, m.poll()
		}
		items, err := m.app.Store.Load()
		if err != nil {
			return m.fatal(err)
		}
		m.items = items
		m.state.Reconcile(items)
		m.statusMsg = "reloaded: list changed in another session"
		notifier, count := m.app.Notifier, len(items)
		notice := func() tea.Msg {
			if err := notifier.SendExternalChange(count); err != nil {
				return ErrorMsg{Err: fmt.Errorf("notification: %w", err)}
			}
			return nil
		}
		return m, tea.Batch(m.poll(), notice)

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		if m.helpVisible {
			m.helpVisible = false
			m.help.ShowAll = false
			return m, nil
		}
		if m.mode != ModeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateNormal handles keys while navigating.
func (m RootModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.state.MoveUp(m.items)

	case key.Matches(msg, m.keys.Down):
		m.state.MoveDown(m.items)

	case key.Matches(msg, m.keys.Collapse):
		m.state.CollapseFocused(m.items)

	case key.Matches(msg, m.keys.Expand):
		m.state.ExpandFocused(m.items)

	case key.Matches(msg, m.keys.ToggleAll):
		m.state.ToggleAllGroups(m.items)

	case key.Matches(msg, m.keys.HideCompleted):
		m.state.ToggleHideCompleted(m.items)

	case key.Matches(msg, m.keys.Toggle):
		if err := m.toggleDone(); err != nil {
			return m.fatal(err)
		}

	case key.Matches(msg, m.keys.Add):
		m.mode = ModeAdd
		m.input.SetValue("")
		m.input.Placeholder = "Group: task text"
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit()

	case key.Matches(msg, m.keys.Delete):
		if err := m.deleteFocused(); err != nil {
			return m.fatal(err)
		}

	case key.Matches(msg, m.keys.PriorityLow):
		if err := m.togglePriority(model.PriorityLow); err != nil {
			return m.fatal(err)
		}

	case key.Matches(msg, m.keys.PriorityHigh):
		if err := m.togglePriority(model.PriorityHigh); err != nil {
			return m.fatal(err)
		}

	case key.Matches(msg, m.keys.PriorityNone):
		if err := m.clearPriority(); err != nil {
			return m.fatal(err)
		}

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = true
		m.help.ShowAll = true

	case key.Matches(msg, m.keys.ThemeCycle):
		m.cycleTheme()
	}
	return m, nil
}

// updateInput handles keys while the add/edit field is active.
func (m RootModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.submitInput()

	case key.Matches(msg, m.keys.Cancel):
		// Cancelling discards the local buffer; the store is never
		// touched.
		m.mode = ModeNormal
		m.editID = ""
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m RootModel) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.errorMsg = "task text cannot be empty"
		return m, nil
	}

	var err error
	if m.mode == ModeEdit {
		err = m.saveEdit(m.editID, text)
	} else {
		err = m.create(text)
	}
	if err != nil {
		return m.fatal(err)
	}

	m.mode = ModeNormal
	m.editID = ""
	m.input.SetValue("")
	m.input.Blur()
	return m, nil
}

func (m *RootModel) beginEdit() (tea.Model, tea.Cmd) {
	f := m.state.Focus
	if f.Kind != session.EntryItem || f.ID == "" {
		return *m, nil
	}
	for _, it := range m.items {
		if it.ID == f.ID {
			m.mode = ModeEdit
			m.editID = it.ID
			m.input.SetValue(it.Text)
			m.input.CursorEnd()
			m.input.Placeholder = "task text"
			m.input.Focus()
			return *m, textinput.Blink
		}
	}
	return *m, nil
}

// create adds a new item parsed from the raw input text ("!! Group:
// text" form) and saves through the merge path.
func (m *RootModel) create(text string) error {
	p, group, display := store.DecodeTask(text)
	it := model.Item{
		ID:       uuid.New().String(),
		Priority: p,
		Group:    group,
		Text:     display,
	}
	items := append(append([]model.Item{}, m.items...), it)
	if err := m.app.Store.Save(items); err != nil {
		return err
	}
	m.state.Focus = session.FocusItem(it.ID)
	return m.refresh()
}

// saveEdit replaces the item's display text, preserving its group and
// priority.
func (m *RootModel) saveEdit(id, text string) error {
	items, err := m.app.Store.Load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Text = text
			break
		}
	}
	if err := m.app.Store.Save(items); err != nil {
		return err
	}
	m.state.Focus = session.FocusItem(id)
	return m.refresh()
}

func (m *RootModel) toggleDone() error {
	f := m.state.Focus
	if f.Kind != session.EntryItem || f.ID == "" {
		return nil
	}
	items, err := m.app.Store.Load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == f.ID {
			items[i].Done = !items[i].Done
			break
		}
	}
	if err := m.app.Store.Save(items); err != nil {
		return err
	}
	return m.refresh()
}

// togglePriority sets the tier, or clears it when the item already has
// it.
func (m *RootModel) togglePriority(p model.Priority) error {
	return m.updateFocused(func(it *model.Item) {
		if it.Priority == p {
			it.Priority = model.PriorityNone
		} else {
			it.Priority = p
		}
	})
}

func (m *RootModel) clearPriority() error {
	return m.updateFocused(func(it *model.Item) {
		it.Priority = model.PriorityNone
	})
}

func (m *RootModel) updateFocused(mutate func(*model.Item)) error {
	f := m.state.Focus
	if f.Kind != session.EntryItem || f.ID == "" {
		return nil
	}
	items, err := m.app.Store.Load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == f.ID {
			mutate(&items[i])
			break
		}
	}
	if err := m.app.Store.Save(items); err != nil {
		return err
	}
	return m.refresh()
}

// deleteFocused removes the focused item through the authoritative
// delete path (no merge), so a stale session cannot resurrect it.
func (m *RootModel) deleteFocused() error {
	f := m.state.Focus
	if f.Kind != session.EntryItem || f.ID == "" {
		return nil
	}
	if err := m.app.Store.Delete(f.ID); err != nil {
		return err
	}
	return m.refresh()
}

// refresh re-reads the canonical collection and re-anchors the focus.
func (m *RootModel) refresh() error {
	items, err := m.app.Store.Load()
	if err != nil {
		return err
	}
	m.items = items
	m.state.Reconcile(items)
	return nil
}

func (m RootModel) fatal(err error) (tea.Model, tea.Cmd) {
	m.fatalErr = err
	return m, tea.Quit
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name
	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}

// Run loads the collection, starts the session loop and blocks until
// it exits. Store failures are fatal by design: a human is present to
// re-run the command.
func Run(application *app.App) error {
	items, err := application.Store.Load()
	if err != nil {
		return err
	}
	if name := application.Config.Theme; name != "" {
		if t, ok := theme.ByName(name); ok {
			theme.SetTheme(t)
		}
	}

	p := tea.NewProgram(NewRootModel(application, items), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(RootModel); ok && fm.fatalErr != nil {
		return fm.fatalErr
	}
	return nil
}
