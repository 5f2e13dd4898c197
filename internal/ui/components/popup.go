package components

import (
	"fmt"
	"strings"

	"mortarEditor/internal/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Kind int

const (
	KindMessage Kind = iota
	KindConfirm
	KindPrompt
	KindIssues
)

// Result is what a key press did to a popup.
type Result int

const (
	Pending Result = iota
	Accepted
	Dismissed
)

const maxVisibleIssues = 10

// Popup is a modal dialog drawn over the current view. Only one kind of
// content is used per popup: Body for messages, confirmations and prompts,
// Items for the validation issue list.
type Popup struct {
	Kind  Kind
	Title string
	Body  string
	Items []string

	input  textinput.Model
	offset int
}

func Message(title, body string) *Popup {
	return &Popup{Kind: KindMessage, Title: title, Body: body}
}

// Confirm asks a yes/no question.
func Confirm(title, question string) *Popup {
	return &Popup{Kind: KindConfirm, Title: title, Body: question}
}

// Prompt collects one line of text, prefilled with value.
func Prompt(title, label, value string) *Popup {
	input := textinput.New()
	input.Placeholder = "Enter value..."
	input.SetValue(value)
	input.Focus()
	return &Popup{Kind: KindPrompt, Title: title, Body: label, input: input}
}

// Issues lists validation problems, scrollable when there are many.
func Issues(title string, items []string) *Popup {
	return &Popup{Kind: KindIssues, Title: title, Items: items}
}

// Value returns the text typed into a prompt.
func (p *Popup) Value() string {
	return p.input.Value()
}

func (p *Popup) SetValue(s string) {
	p.input.SetValue(s)
}

func (p *Popup) Update(msg tea.KeyMsg) (Result, tea.Cmd) {
	k := msg.String()
	switch p.Kind {
	case KindConfirm:
		switch k {
		case "y", "Y":
			return Accepted, nil
		case "n", "N", "esc":
			return Dismissed, nil
		}
		return Pending, nil

	case KindPrompt:
		switch k {
		case "enter":
			return Accepted, nil
		case "esc":
			return Dismissed, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return Pending, cmd

	case KindIssues:
		switch k {
		case "up", "w", "k":
			if p.offset > 0 {
				p.offset--
			}
		case "down", "s", "j":
			if p.offset < len(p.Items)-maxVisibleIssues {
				p.offset++
			}
		case "enter", "esc":
			return Dismissed, nil
		}
		return Pending, nil
	}

	if k == "enter" || k == "esc" {
		return Dismissed, nil
	}
	return Pending, nil
}

func (p *Popup) width(screenWidth int) int {
	w := 60
	switch p.Kind {
	case KindConfirm:
		w = 50
	case KindIssues:
		w = 72
	}
	if screenWidth > 0 && w > screenWidth-4 {
		w = max(screenWidth-4, 20)
	}
	return w
}

func (p *Popup) keys() string {
	switch p.Kind {
	case KindConfirm:
		return "y - Yes, n - No"
	case KindPrompt:
		return "ENTER - Confirm, ESC - Cancel"
	case KindIssues:
		if len(p.Items) > maxVisibleIssues {
			return "↑↓ - Scroll, ESC/ENTER - Close"
		}
	}
	return "ESC/ENTER - Close"
}

func (p *Popup) body(width int) string {
	switch p.Kind {
	case KindPrompt:
		p.input.Width = width - 8
		return p.Body + "\n\n" + p.input.View()
	case KindIssues:
		end := min(p.offset+maxVisibleIssues, len(p.Items))
		lines := make([]string, 0, end-p.offset+1)
		for _, item := range p.Items[p.offset:end] {
			lines = append(lines, ui.ErrorStyle.Render("• ")+item)
		}
		if len(p.Items) > maxVisibleIssues {
			lines = append(lines, ui.DescriptionStyle.Render(
				fmt.Sprintf("%d-%d of %d", p.offset+1, end, len(p.Items))))
		}
		return strings.Join(lines, "\n")
	}
	return p.Body
}

// Render draws the popup centred on a screen of the given size.
func (p *Popup) Render(screenWidth, screenHeight int) string {
	width := p.width(screenWidth)
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Border).
		Padding(1, 2).
		Width(width)
	titleStyle := ui.TitleStyle.
		Align(lipgloss.Center).
		Width(width - 4)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(p.Title),
		"",
		p.body(width),
		"",
		ui.DescriptionStyle.Render(p.keys()),
	)

	return lipgloss.Place(
		screenWidth,
		screenHeight,
		lipgloss.Center,
		lipgloss.Center,
		style.Render(content),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
