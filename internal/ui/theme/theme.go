package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Priority tiers ("!" and "!!")
	PriorityLow  lipgloss.Color
	PriorityHigh lipgloss.Color

	// Completed items
	Done lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on a theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Entry styles
	ItemNormal    lipgloss.Style
	ItemSelected  lipgloss.Style
	ItemDone      lipgloss.Style
	ItemLow       lipgloss.Style
	ItemHigh      lipgloss.Style
	GroupHeader   lipgloss.Style
	GroupSelected lipgloss.Style

	// Input bar
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		ItemNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),

		ItemSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Bold(true),

		ItemDone: lipgloss.NewStyle().
			Foreground(t.Done).
			Strikethrough(true),

		ItemLow: lipgloss.NewStyle().
			Foreground(t.PriorityLow),

		ItemHigh: lipgloss.NewStyle().
			Foreground(t.PriorityHigh),

		GroupHeader: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		GroupSelected: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Background(t.Highlight).
			Bold(true),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
