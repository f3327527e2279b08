package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the colour scheme of the chat screen
type TUITheme struct {
	Name string
	// MarkdownStyle is the glamour style that matches the palette
	MarkdownStyle string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var (
	TokyoNightTheme = TUITheme{
		Name:          "tokyonight",
		MarkdownStyle: StyleTokyoNight,

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	CatppuccinTheme = TUITheme{
		Name:          "catppuccin",
		MarkdownStyle: StyleDark,

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#a6e3a1"),
		Accent:    lipgloss.Color("#cba6f7"),
		Warning:   lipgloss.Color("#f9e2af"),
		Error:     lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	}

	NordTheme = TUITheme{
		Name:          "nord",
		MarkdownStyle: StyleDark,

		Background: lipgloss.Color("#2e3440"),
		Surface:    lipgloss.Color("#3b4252"),
		Border:     lipgloss.Color("#4c566a"),

		Primary:   lipgloss.Color("#88c0d0"),
		Secondary: lipgloss.Color("#a3be8c"),
		Accent:    lipgloss.Color("#b48ead"),
		Warning:   lipgloss.Color("#ebcb8b"),
		Error:     lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
	}

	// LightTheme is for bright terminals
	LightTheme = TUITheme{
		Name:          "light",
		MarkdownStyle: StyleLight,

		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#eeeeee"),
		Border:     lipgloss.Color("#c0c0c0"),

		Primary:   lipgloss.Color("#1a73e8"),
		Secondary: lipgloss.Color("#188038"),
		Accent:    lipgloss.Color("#9334e6"),
		Warning:   lipgloss.Color("#e37400"),
		Error:     lipgloss.Color("#d93025"),

		Text:     lipgloss.Color("#202124"),
		TextDim:  lipgloss.Color("#5f6368"),
		TextMute: lipgloss.Color("#9aa0a6"),
	}
)

// DefaultTUITheme is used when the configured name is unknown
var DefaultTUITheme = TokyoNightTheme

// TUIThemes lists the built-in themes in display order
func TUIThemes() []TUITheme {
	return []TUITheme{TokyoNightTheme, CatppuccinTheme, NordTheme, LightTheme}
}

// TUIThemeByName finds a theme, ignoring case
func TUIThemeByName(name string) (TUITheme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range TUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// TUIThemeOrDefault is TUIThemeByName with DefaultTUITheme as fallback
func TUIThemeOrDefault(name string) TUITheme {
	if t, ok := TUIThemeByName(name); ok {
		return t
	}
	return DefaultTUITheme
}

// TUIThemeNames returns the names of TUIThemes
func TUIThemeNames() []string {
	themes := TUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
