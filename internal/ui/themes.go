package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name string

	// Base colors
	Subtle    lipgloss.Color
	Highlight lipgloss.Color
	Special   lipgloss.Color
	Error     lipgloss.Color
	StatusBar lipgloss.Color
	Border    lipgloss.Color

	// Lists and details
	ItemColor     lipgloss.Color
	InfotextColor lipgloss.Color
	HostColor     lipgloss.Color
	LabelColor    lipgloss.Color
	InputColor    lipgloss.Color
	BadgeColor    lipgloss.Color
}

var (
	currentThemeIndex = 0

	themes = []Theme{
		{
			Name:      "default",
			Subtle:    lipgloss.Color("#6C7086"),
			Highlight: lipgloss.Color("#7DC4E4"),
			Special:   lipgloss.Color("#FF9E64"),
			Error:     lipgloss.Color("#F38BA8"),
			StatusBar: lipgloss.Color("#E7E7E7"),
			Border:    lipgloss.Color("#33B2FF"),

			ItemColor:     lipgloss.Color("#FF3A99"),
			InfotextColor: lipgloss.Color("#FF3A99"),
			HostColor:     lipgloss.Color("#2DAFFF"),
			LabelColor:    lipgloss.Color("#A6ADC8"),
			InputColor:    lipgloss.Color("#FFFFFF"),
			BadgeColor:    lipgloss.Color("#BA55D3"),
		},
		{
			// Dracula Classic
			Name:      "dracula",
			Subtle:    lipgloss.Color("#6272A4"),
			Highlight: lipgloss.Color("#8BE9FD"),
			Special:   lipgloss.Color("#FF79C6"),
			Error:     lipgloss.Color("#FF5555"),
			StatusBar: lipgloss.Color("#44475A"),
			Border:    lipgloss.Color("#BD93F9"),

			ItemColor:     lipgloss.Color("#50FA7B"),
			InfotextColor: lipgloss.Color("#F1FA8C"),
			HostColor:     lipgloss.Color("#8BE9FD"),
			LabelColor:    lipgloss.Color("#F8F8F2"),
			InputColor:    lipgloss.Color("#F8F8F2"),
			BadgeColor:    lipgloss.Color("#FFB86C"),
		},
		{
			// Dracula with darker shades
			Name:      "dracula-night",
			Subtle:    lipgloss.Color("#44475A"),
			Highlight: lipgloss.Color("#BD93F9"),
			Special:   lipgloss.Color("#FFB86C"),
			Error:     lipgloss.Color("#FF5555"),
			StatusBar: lipgloss.Color("#282A36"),
			Border:    lipgloss.Color("#50FA7B"),

			ItemColor:     lipgloss.Color("#FF79C6"),
			InfotextColor: lipgloss.Color("#8BE9FD"),
			HostColor:     lipgloss.Color("#BD93F9"),
			LabelColor:    lipgloss.Color("#F8F8F2"),
			InputColor:    lipgloss.Color("#F8F8F2"),
			BadgeColor:    lipgloss.Color("#50FA7B"),
		},
		{
			// VS Code Dark+
			Name:      "vscode-dark",
			Subtle:    lipgloss.Color("#808080"),
			Highlight: lipgloss.Color("#569CD6"),
			Special:   lipgloss.Color("#4EC9B0"),
			Error:     lipgloss.Color("#F44747"),
			StatusBar: lipgloss.Color("#007ACC"),
			Border:    lipgloss.Color("#569CD6"),

			ItemColor:     lipgloss.Color("#CE9178"),
			InfotextColor: lipgloss.Color("#9CDCFE"),
			HostColor:     lipgloss.Color("#569CD6"),
			LabelColor:    lipgloss.Color("#D4D4D4"),
			InputColor:    lipgloss.Color("#FFFFFF"),
			BadgeColor:    lipgloss.Color("#C586C0"),
		},
		{
			Name:      "aurora",
			Subtle:    lipgloss.Color("#6272A4"),
			Highlight: lipgloss.Color("#61AFEF"),
			Special:   lipgloss.Color("#FF79C6"),
			Error:     lipgloss.Color("#FF5555"),
			StatusBar: lipgloss.Color("#282C34"),
			Border:    lipgloss.Color("#61AFEF"),

			ItemColor:     lipgloss.Color("#FF79C6"),
			InfotextColor: lipgloss.Color("#FF79C6"),
			HostColor:     lipgloss.Color("#61AFEF"),
			LabelColor:    lipgloss.Color("#FFFFFF"),
			InputColor:    lipgloss.Color("#FFFFFF"),
			BadgeColor:    lipgloss.Color("#98C379"),
		},
		{
			Name:      "cyberpunk",
			Subtle:    lipgloss.Color("#2F2B6D"),
			Highlight: lipgloss.Color("#FF00FF"),
			Special:   lipgloss.Color("#00FFFF"),
			Error:     lipgloss.Color("#FF1493"),
			StatusBar: lipgloss.Color("#3A3A5A"),
			Border:    lipgloss.Color("#FF00FF"),

			ItemColor:     lipgloss.Color("#FF00FF"),
			InfotextColor: lipgloss.Color("#FF00FF"),
			HostColor:     lipgloss.Color("#00FFFF"),
			LabelColor:    lipgloss.Color("#FFFFFF"),
			InputColor:    lipgloss.Color("#FFFFFF"),
			BadgeColor:    lipgloss.Color("#39FF14"),
		},
		{
			Name:      "electric-blue",
			Subtle:    lipgloss.Color("#C8C8C8"),
			Highlight: lipgloss.Color("#00FFFF"),
			Special:   lipgloss.Color("#1E90FF"),
			Error:     lipgloss.Color("#FF6347"),
			StatusBar: lipgloss.Color("#333333"),
			Border:    lipgloss.Color("#00FFFF"),

			ItemColor:     lipgloss.Color("#00FFFF"),
			InfotextColor: lipgloss.Color("#00FFFF"),
			HostColor:     lipgloss.Color("#1E90FF"),
			LabelColor:    lipgloss.Color("#E8E8E8"),
			InputColor:    lipgloss.Color("#FFFFFF"),
			BadgeColor:    lipgloss.Color("#FFA07A"),
		},
	}
)

func init() {
	updateStyles(themes[currentThemeIndex])
}

// ThemeNames lists the available themes in switching order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

func CurrentTheme() Theme {
	return themes[currentThemeIndex]
}

// ApplyTheme activates the theme with the given name.
func ApplyTheme(name string) error {
	for i, t := range themes {
		if t.Name == name {
			currentThemeIndex = i
			updateStyles(t)
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q", name)
}

// SwitchTheme moves to the next theme, updates every style and returns the
// new theme's name.
func SwitchTheme() string {
	currentThemeIndex = (currentThemeIndex + 1) % len(themes)
	currentTheme := themes[currentThemeIndex]
	updateStyles(currentTheme)
	return currentTheme.Name
}

func updateStyles(theme Theme) {
	Subtle = theme.Subtle
	Highlight = theme.Highlight
	Special = theme.Special
	Error = theme.Error
	StatusBar = theme.StatusBar
	Border = theme.Border

	BaseStyle = lipgloss.NewStyle().
		Foreground(Subtle).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight).
		MarginLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true)

	ItemStyle = lipgloss.NewStyle().
		Foreground(theme.ItemColor)

	DescriptionStyle = lipgloss.NewStyle().
		Foreground(Subtle).
		MarginLeft(2)

	Infotext = lipgloss.NewStyle().
		Foreground(theme.InfotextColor)

	HostStyle = lipgloss.NewStyle().
		Foreground(theme.HostColor)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(theme.BadgeColor).
		Bold(true)

	LabelStyle = lipgloss.NewStyle().
		Foreground(theme.LabelColor)

	InputStyle = lipgloss.NewStyle().
		Foreground(theme.InputColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Highlight).
		Padding(0, 1)

	ActiveInputStyle = InputStyle.
		BorderForeground(Special)

	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true).
		Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(Special).
		Bold(true)

	ButtonDisabledStyle = lipgloss.NewStyle().
		Foreground(Subtle).
		Bold(true)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Special).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	WindowStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Highlight).
		Padding(0, 1)
}
