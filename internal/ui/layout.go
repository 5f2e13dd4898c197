// internal/ui/layout.go

package ui

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// BaseLayout holds the frame dimensions shared by the views.
type BaseLayout struct {
	Width         int
	Height        int
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
}

func NewBaseLayout(width, height int) BaseLayout {
	const (
		headerHeight = 3
		footerHeight = 6 // status line plus shortcut table
	)

	content := height - headerHeight - footerHeight
	if content < 5 {
		content = 5
	}
	return BaseLayout{
		Width:         width,
		Height:        height,
		HeaderHeight:  headerHeight,
		FooterHeight:  footerHeight,
		ContentHeight: content,
	}
}

// InnerWidth is the usable width inside the window frame.
func (l BaseLayout) InnerWidth() int {
	w := l.Width - 8 // double border plus padding
	if w < 40 {
		w = 40
	}
	return w
}

// SplitView returns the styles for two side by side panels.
func (l BaseLayout) SplitView() (left, right lipgloss.Style) {
	panelWidth := (l.InnerWidth() - 5) / 2 // separator and borders

	left = PanelStyle.Width(panelWidth).Height(l.ContentHeight)
	right = PanelStyle.Width(panelWidth).Height(l.ContentHeight)
	return left, right
}

// Shortcut is one entry of the command table; disabled entries are dimmed.
type Shortcut struct {
	Label    string
	Keys     string
	Disabled bool
}

// CreateShortcutTable renders shortcuts as a one row lipgloss table.
func CreateShortcutTable(shortcuts []Shortcut) string {
	headers := make([]string, len(shortcuts))
	keys := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		headers[i] = s.Label
		keys[i] = s.Keys
	}

	tableStyle := func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == -1: // headers
			return style.Foreground(Subtle).Align(lipgloss.Center)
		case shortcuts[col].Disabled:
			return style.Foreground(Subtle).Strikethrough(true)
		default:
			return style.Foreground(Special)
		}
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(StatusBar)).
		StyleFunc(tableStyle).
		Headers(headers...).
		Row(keys...).
		Render()
}
