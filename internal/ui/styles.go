// internal/ui/styles.go

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors and styles of the active theme, rebuilt by updateStyles.
var (
	Subtle    lipgloss.Color
	Highlight lipgloss.Color
	Special   lipgloss.Color
	Error     lipgloss.Color
	StatusBar lipgloss.Color
	Border    lipgloss.Color

	BaseStyle         lipgloss.Style
	TitleStyle        lipgloss.Style
	SelectedItemStyle lipgloss.Style
	ItemStyle         lipgloss.Style
	DescriptionStyle  lipgloss.Style
	Infotext          lipgloss.Style
	HostStyle         lipgloss.Style
	BadgeStyle        lipgloss.Style
	LabelStyle        lipgloss.Style

	InputStyle       lipgloss.Style
	ActiveInputStyle lipgloss.Style

	PanelTitleStyle  lipgloss.Style
	PanelStyle       lipgloss.Style
	ActivePanelStyle lipgloss.Style

	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WindowStyle  lipgloss.Style
)

// GetMaxWidth returns the widest rendered width in items.
func GetMaxWidth(items []string) int {
	maxWidth := 0
	for _, item := range items {
		if w := lipgloss.Width(item); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// Truncate shortens s to width cells, marking the cut with "...".
func Truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
