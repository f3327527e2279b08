package render

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names accepted in configuration
const (
	StyleDark       = styles.DarkStyle
	StyleLight      = styles.LightStyle
	StyleNoTTY      = styles.NoTTYStyle
	StyleTokyoNight = styles.TokyoNightStyle
)

// styleAliases maps the names used by the TUI theme setting onto glamour styles
var styleAliases = map[string]string{
	"tokyonight": styles.TokyoNightStyle,
	"catppuccin": styles.DarkStyle,
	"nord":       styles.DarkStyle,
	"plain":      styles.NoTTYStyle,
}

// ResolveStyle turns a configured style into something glamour.WithStylePath
// accepts: a standard style name or a path to a JSON style file.
func ResolveStyle(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return StyleDark
	}
	if alias, ok := styleAliases[strings.ToLower(name)]; ok {
		return alias
	}
	return name
}

// IsBuiltinStyle reports whether name resolves to a style shipped with glamour
func IsBuiltinStyle(name string) bool {
	_, ok := styles.DefaultStyles[ResolveStyle(name)]
	return ok
}

// StyleNames lists the built-in style names plus the accepted aliases
func StyleNames() []string {
	names := make([]string, 0, len(styles.DefaultStyles)+len(styleAliases))
	for name := range styles.DefaultStyles {
		names = append(names, name)
	}
	for alias := range styleAliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}
