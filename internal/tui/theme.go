package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	AddColor     string `json:"addColor"`
	DelColor     string `json:"delColor"`
	MetaColor    string `json:"metaColor"`
	DividerColor string `json:"dividerColor"`
	WarnColor    string `json:"warnColor"`
	InfoColor    string `json:"infoColor"`
}

func darkTheme() Theme {
	return Theme{
		AddColor:     "34",
		DelColor:     "196",
		MetaColor:    "63",
		DividerColor: "240",
		WarnColor:    "214",
		InfoColor:    "39",
	}
}

func lightTheme() Theme {
	return Theme{
		AddColor:     "22",
		DelColor:     "9",
		MetaColor:    "27",
		DividerColor: "244",
		WarnColor:    "130",
		InfoColor:    "25",
	}
}

// BaseTheme returns the named built-in theme, defaulting to dark.
func BaseTheme(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}

// LoadTheme merges .stagium/theme.json at repoRoot over the base theme,
// keeping defaults for empty fields.
func LoadTheme(repoRoot, base string) Theme {
	t := BaseTheme(base)
	b, err := os.ReadFile(filepath.Join(repoRoot, ".stagium", "theme.json"))
	if err != nil {
		return t
	}
	var u Theme
	if err := json.Unmarshal(b, &u); err != nil {
		return t
	}
	if u.AddColor != "" {
		t.AddColor = u.AddColor
	}
	if u.DelColor != "" {
		t.DelColor = u.DelColor
	}
	if u.MetaColor != "" {
		t.MetaColor = u.MetaColor
	}
	if u.DividerColor != "" {
		t.DividerColor = u.DividerColor
	}
	if u.WarnColor != "" {
		t.WarnColor = u.WarnColor
	}
	if u.InfoColor != "" {
		t.InfoColor = u.InfoColor
	}
	return t
}

func (t Theme) AddText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.AddColor)).Render(s)
}

func (t Theme) DelText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DelColor)).Render(s)
}

func (t Theme) MetaText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.MetaColor)).Render(s)
}

func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DividerColor)).Render(s)
}

// SeverityText styles a notification according to its severity.
func (t Theme) SeverityText(severity, s string) string {
	switch severity {
	case "error":
		return t.DelText(s)
	case "warning":
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.WarnColor)).Render(s)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.InfoColor)).Render(s)
	}
}
