// Package ui provides the visual styling for the feel terminal wizard.
// Emotion chips take their fill from the emotion color vocabulary; the
// surrounding chrome follows a light or dark theme.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var (
	// Light Mode Colors (Default)
	LightForeground = lipgloss.Color("#1f2937") // gray-800
	LightPrimary    = lipgloss.Color("#4338ca") // indigo-700
	LightAccent     = lipgloss.Color("#0f766e") // teal-700
	LightMuted      = lipgloss.Color("#6b7280") // gray-500
	LightBorder     = lipgloss.Color("#d1d5db") // gray-300
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkForeground = lipgloss.Color("#f3f4f6") // gray-100
	DarkPrimary    = lipgloss.Color("#a5b4fc") // indigo-300
	DarkAccent     = lipgloss.Color("#5eead4") // teal-300
	DarkMuted      = lipgloss.Color("#9ca3af") // gray-400
	DarkBorder     = lipgloss.Color("#374151") // gray-700
	DarkCard       = lipgloss.Color("#111827") // gray-900

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#dc2626")
	Success     = lipgloss.Color("#16a34a")
	Warning     = lipgloss.Color("#d97706")

	// ChipText is dark in both modes; every chip fill is a pastel.
	ChipText = lipgloss.Color("#1f2937")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// hasDarkBackground asks the terminal. Replaced in tests.
var hasDarkBackground = termenv.HasDarkBackground

// DetectTheme picks a theme from WHATFEELING_DARK_MODE, falling back to
// the terminal's reported background.
func DetectTheme() Theme {
	switch strings.ToLower(os.Getenv("WHATFEELING_DARK_MODE")) {
	case "1", "true", "yes":
		return DarkTheme()
	case "0", "false", "no":
		return LightTheme()
	}
	if hasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// ThemeFor resolves a configured theme name; anything other than light or
// dark detects.
func ThemeFor(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	case "dark":
		return DarkTheme()
	default:
		return DetectTheme()
	}
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Panel   lipgloss.Style
	Modal   lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Components
	Spinner   lipgloss.Style
	Divider   lipgloss.Style
	Button    lipgloss.Style
	Disabled  lipgloss.Style
	Connector lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		// Layout styles
		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, PanelPaddingH),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(theme.Primary).
			Padding(1, 2),

		// Text styles
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		// Status styles
		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning),

		// Component styles
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Button: lipgloss.NewStyle().
			Foreground(theme.Card).
			Background(theme.Accent).
			Padding(0, 1).
			Bold(true),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Connector: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 1 {
		width = 1
	}
	return s.Divider.Render(strings.Repeat("─", width))
}

// ChipState is how a chip is drawn.
type ChipState struct {
	Selected bool
	Focused  bool
}

// Chip renders an emotion as a filled pill. hex is the fill; selected
// chips get a check mark and a border in a darker shade of the fill.
func (s Styles) Chip(name, hex string, st ChipState) string {
	label := name
	if st.Selected {
		label = "✓ " + name
	}
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(ChipText).
		Padding(0, 1)
	if st.Selected {
		style = style.Bold(true)
	}
	if st.Focused {
		style = style.Underline(true)
	}

	pill := style.Render(label)
	border := lipgloss.NewStyle().Border(lipgloss.HiddenBorder())
	if st.Selected {
		border = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Shade(hex, 0.35)))
	} else if st.Focused {
		border = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(s.Theme.Muted)
	}
	return border.Render(pill)
}

// Swatch is a small block of the given color, for legends and tables.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// Shade blends hex toward black by amount (0..1). Unparseable input is
// returned unchanged.
func Shade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}

// ThemeAccent renders text in the wizard's current theme color, the color
// of the most recently toggled emotion.
func (s Styles) ThemeAccent(hex, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(Shade(hex, 0.45))).
		Bold(true).
		Render(text)
}
