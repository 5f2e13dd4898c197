package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestConfirm(t *testing.T) {
	p := Confirm("Delete Host", `Delete "A"?`)

	res, _ := p.Update(press("x"))
	assert.Equal(t, Pending, res)
	res, _ = p.Update(press("y"))
	assert.Equal(t, Accepted, res)
	res, _ = p.Update(press("esc"))
	assert.Equal(t, Dismissed, res)
	assert.Contains(t, p.Render(80, 24), "y - Yes, n - No")
}

func TestPromptCollectsInput(t *testing.T) {
	p := Prompt("Import Configuration", "Path:", "conf")

	res, _ := p.Update(press(".json"))
	assert.Equal(t, Pending, res)
	assert.Equal(t, "conf.json", p.Value())

	res, _ = p.Update(press("enter"))
	assert.Equal(t, Accepted, res)
	assert.Contains(t, p.Render(80, 24), "Path:")
}

func TestMessageCloses(t *testing.T) {
	p := Message("Validation", "No validation errors.")

	res, _ := p.Update(press("y"))
	assert.Equal(t, Pending, res)
	res, _ = p.Update(press("enter"))
	assert.Equal(t, Dismissed, res)
}

func TestIssuesScroll(t *testing.T) {
	items := make([]string, 15)
	for i := range items {
		items[i] = fmt.Sprintf("issue-%02d", i)
	}
	p := Issues("Validation errors", items)

	out := p.Render(100, 40)
	assert.Contains(t, out, "issue-00")
	assert.NotContains(t, out, "issue-10")
	assert.Contains(t, out, "1-10 of 15")

	for range 20 {
		p.Update(press("down"))
	}
	assert.Equal(t, 5, p.offset)
	out = p.Render(100, 40)
	assert.Contains(t, out, "issue-14")
	assert.NotContains(t, out, "issue-04")

	p.Update(press("up"))
	assert.Equal(t, 4, p.offset)

	res, _ := p.Update(press("esc"))
	assert.Equal(t, Dismissed, res)
}

func TestPopupFitsNarrowScreen(t *testing.T) {
	assert.Equal(t, 36, Issues("x", nil).width(40))
	assert.Equal(t, 50, Confirm("x", "y").width(120))
	assert.Equal(t, 60, Message("x", "y").width(0))
}
