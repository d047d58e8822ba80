package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tandemlist/tandem/internal/model"
	"github.com/tandemlist/tandem/internal/session"
	"github.com/tandemlist/tandem/internal/ui/theme"
)

const (
	boxPending = "☐"
	boxDone    = "☒"
)

// line is one rendered row plus whether the focus sits on it.
type line struct {
	text    string
	focused bool
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.helpVisible {
		return m.renderHelp()
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	footer := m.renderFooter()
	inputBar := ""
	if m.mode != ModeNormal {
		inputBar = m.renderInput()
	}

	contentHeight := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(footer)
	if inputBar != "" {
		contentHeight -= lipgloss.Height(inputBar)
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	content := m.renderList(contentHeight)
	if n := lipgloss.Height(content); n < contentHeight {
		content += strings.Repeat("\n", contentHeight-n)
	}
	sections = append(sections, content)

	if inputBar != "" {
		sections = append(sections, inputBar)
	}
	sections = append(sections, footer)

	return strings.Join(sections, "\n")
}

func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := "tandem"
	if m.state.HideCompleted {
		title += " (hiding completed)"
	}

	done, pending := 0, 0
	for _, it := range m.items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	counts := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1).
		Render(fmt.Sprintf("✔ %d  • %d", done, pending))

	left := styles.Header.Render(title) + counts
	right := lipgloss.NewStyle().Foreground(t.Subtle).Padding(0, 1).
		Render("theme: " + t.Name)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderList draws the grouped collection with the focus kept inside
// the visible window. The window is derived from the focus every
// frame, so there is no scroll offset to invalidate on resort.
func (m RootModel) renderList(height int) string {
	lines := m.buildLines()
	if len(lines) == 0 {
		return theme.Current.Styles.HelpDesc.Render("  nothing here, press a to add a task")
	}

	focused := 0
	for i, l := range lines {
		if l.focused {
			focused = i
			break
		}
	}
	offset := 0
	if focused >= height {
		offset = focused - height + 1
	}
	if offset > len(lines)-height {
		offset = len(lines) - height
	}
	if offset < 0 {
		offset = 0
	}

	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	out := make([]string, 0, end-offset)
	for _, l := range lines[offset:end] {
		out = append(out, l.text)
	}
	return strings.Join(out, "\n")
}

// buildLines renders every bucket: expanded groups get a plain header
// line (not selectable) and one row per member; collapsed groups get a
// single selectable header row; ungrouped items render flat.
func (m RootModel) buildLines() []line {
	styles := theme.Current.Styles
	trunc := lipgloss.NewStyle().MaxWidth(m.width)

	var lines []line
	for _, b := range session.Buckets(m.items, m.state.HideCompleted) {
		if b.Name != "" {
			if m.state.Collapsed[b.Name] {
				focused := m.state.Focus.Kind == session.EntryGroupHeader &&
					m.state.Focus.Group == b.Name
				text := fmt.Sprintf("%s: [%d items] ▶", b.Name, len(b.Items))
				st := styles.GroupHeader
				if focused {
					st = styles.GroupSelected
				}
				lines = append(lines, line{
					text:    trunc.Render(st.Render(" " + text + " ")),
					focused: focused,
				})
				continue
			}
			lines = append(lines, line{
				text: trunc.Render(styles.GroupHeader.Render(" " + b.Name + ":")),
			})
		}

		for i, it := range b.Items {
			box := boxPending
			if it.Done {
				box = boxDone
			}
			prefix := " "
			if b.Name != "" {
				tree := "├"
				if i == len(b.Items)-1 {
					tree = "└"
				}
				prefix = "   " + tree + " "
			}

			st := styles.ItemNormal
			switch {
			case it.Done:
				st = styles.ItemDone
			case it.Priority == model.PriorityLow:
				st = styles.ItemLow
			case it.Priority == model.PriorityHigh:
				st = styles.ItemHigh
			}

			text := prefix + box + " " + it.Priority.Marker() + it.Text
			focused := m.state.Focus.Kind == session.EntryItem &&
				m.state.Focus.ID == it.ID
			if focused {
				st = styles.ItemSelected
			}
			lines = append(lines, line{
				text:    trunc.Render(st.Render(text)),
				focused: focused,
			})
		}
	}
	return lines
}

func (m RootModel) renderInput() string {
	styles := theme.Current.Styles

	title := "New task"
	if m.mode == ModeEdit {
		title = "Edit task"
	}
	if m.errorMsg != "" {
		title += ": " + lipgloss.NewStyle().
			Foreground(theme.Current.Theme.Error).Render(m.errorMsg)
	}
	return styles.InputFocused.Width(m.width - 2).
		Render(title + "\n" + m.input.View())
}

// renderFooter renders the status line (when set) above the key hints.
// Hints come straight from the KeyMap through the help component, so
// they cannot drift from the actual bindings.
func (m RootModel) renderFooter() string {
	t := theme.Current.Theme

	var statusLine string
	if m.errorMsg != "" && m.mode == ModeNormal {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var hints string
	if m.mode != ModeNormal {
		hints = m.help.View(inputKeys{m.keys})
	} else {
		hints = m.help.View(m.keys)
	}

	if statusLine != "" {
		return statusLine + "\n" + hints
	}
	return hints
}

// renderHelp renders the full-screen help overlay: the KeyMap's full
// bindings plus the task syntax the bindings can't express.
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Secondary).MarginTop(1)
	descStyle := lipgloss.NewStyle().Foreground(t.Subtle)

	var b strings.Builder
	b.WriteString(titleStyle.Render("tandem help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Task syntax"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  Buy milk                plain task\n"))
	b.WriteString(descStyle.Render("  Group: task text        grouped task\n"))
	b.WriteString(descStyle.Render("  ! low   !! high         priority prefix\n"))

	b.WriteString("\n")
	b.WriteString(descStyle.Render("Press any key to close help"))
	return b.String()
}
