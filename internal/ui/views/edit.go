// internal/ui/views/edit.go

package views

import (
	"fmt"
	"strings"

	"mortarEditor/internal/listedit"
	"mortarEditor/internal/models"
	"mortarEditor/internal/ui"
	"mortarEditor/internal/ui/messages"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldDisplayName = iota
	fieldHostType
	fieldRootURI
	fieldPassword
	fieldCount
)

// Focus positions after the text fields address the nested lists.
const (
	focusPlatforms = fieldCount + iota
	focusInclusive
	focusExclusive
	focusCount
)

type editView struct {
	model       *ui.Model
	host        int
	inputs      []textinput.Model
	focus       int
	selected    map[int]int
	itemInput   textinput.Model
	editingItem bool
	errorMsg    string
	width       int
	height      int
}

func NewEditView(model *ui.Model) *editView {
	v := &editView{
		model:    model,
		host:     model.EditedHost(),
		inputs:   make([]textinput.Model, fieldCount),
		selected: make(map[int]int),
		width:    model.GetTerminalWidth(),
		height:   model.GetTerminalHeight(),
	}

	for i := range v.inputs {
		t := textinput.New()
		t.CharLimit = 256

		switch i {
		case fieldDisplayName:
			t.Placeholder = "Display name"
			t.Focus()
		case fieldHostType:
			t.Placeholder = "Host type"
		case fieldRootURI:
			t.Placeholder = "smb://server/share"
		case fieldPassword:
			t.Placeholder = "Password"
			t.EchoMode = textinput.EchoPassword
		}
		v.inputs[i] = t
	}

	v.itemInput = textinput.New()
	v.itemInput.CharLimit = 256
	v.loadHost()
	return v
}

func (v *editView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *editView) current() (models.HostEntry, bool) {
	doc := v.model.Session().Snapshot()
	if v.host < 0 || v.host >= len(doc.Hosts) {
		return models.HostEntry{}, false
	}
	return doc.Hosts[v.host], true
}

func (v *editView) loadHost() {
	host, ok := v.current()
	if !ok {
		return
	}
	v.inputs[fieldDisplayName].SetValue(host.DisplayName)
	v.inputs[fieldHostType].SetValue(host.HostType)
	v.inputs[fieldRootURI].SetValue(host.RootURI)
	v.inputs[fieldPassword].SetValue(host.Password.Reveal())
}

// commitFields writes the text fields back as a renderer change.
func (v *editView) commitFields() {
	doc := v.model.Session().Snapshot()
	if v.host < 0 || v.host >= len(doc.Hosts) {
		return
	}
	h := &doc.Hosts[v.host]
	next := *h
	next.DisplayName = v.inputs[fieldDisplayName].Value()
	next.HostType = v.inputs[fieldHostType].Value()
	next.RootURI = v.inputs[fieldRootURI].Value()
	next.Password = models.Secret(v.inputs[fieldPassword].Value())
	if next.DisplayName == h.DisplayName && next.HostType == h.HostType &&
		next.RootURI == h.RootURI && next.Password == h.Password {
		return
	}
	*h = next
	v.model.Session().Replace(doc)
}

func (v *editView) path() listedit.Path {
	switch v.focus {
	case focusPlatforms:
		return listedit.PlatformsOf(v.host)
	case focusInclusive:
		return listedit.InclusiveFiltersOf(v.host)
	default:
		return listedit.ExclusiveFiltersOf(v.host)
	}
}

func (v *editView) inList() bool {
	return v.focus >= focusPlatforms
}

func (v *editView) setFocus(focus int) {
	v.focus = (focus + focusCount) % focusCount
	for i := range v.inputs {
		if i == v.focus {
			v.inputs[i].Focus()
		} else {
			v.inputs[i].Blur()
		}
	}
	v.clampSelection()
}

func (v *editView) clampSelection() {
	if !v.inList() {
		return
	}
	n := v.model.Session().Len(v.path())
	sel := v.selected[v.focus]
	if sel >= n {
		sel = n - 1
	}
	if sel < 0 {
		sel = 0
	}
	v.selected[v.focus] = sel
}

func (v *editView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := handleStatus(v.model, msg); ok {
		return v, cmd
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.model.UpdateWindowSize(msg.Width, msg.Height)
		return v, nil

	case messages.OperationDoneMsg:
		// A remote load may have replaced the document underneath us.
		if _, ok := v.current(); !ok {
			v.model.SetActiveView(ui.ViewMain)
			return v, nil
		}
		v.loadHost()
		v.clampSelection()
		return v, nil

	case tea.KeyMsg:
		if v.editingItem {
			return v.updateItemInput(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			v.model.SetQuitting(true)
			return v, tea.Quit
		case "esc":
			v.commitFields()
			v.model.SetActiveView(ui.ViewMain)
			return v, nil
		case "tab":
			v.commitFields()
			v.setFocus(v.focus + 1)
			return v, nil
		case "shift+tab":
			v.commitFields()
			v.setFocus(v.focus - 1)
			return v, nil
		}

		if v.inList() {
			return v.handleListKey(msg)
		}

		switch msg.String() {
		case "up":
			v.commitFields()
			v.setFocus((v.focus - 1 + fieldCount) % fieldCount)
			return v, nil
		case "down", "enter":
			v.commitFields()
			v.setFocus((v.focus + 1) % fieldCount)
			return v, nil
		}

		v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		v.commitFields()
		return v, cmd
	}

	return v, cmd
}

func (v *editView) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v.clampSelection()
	keys := v.model.Keys()
	sess := v.model.Session()
	path := v.path()
	n := sess.Len(path)
	sel := v.selected[v.focus]
	v.errorMsg = ""

	switch {
	case key.Matches(msg, keys.Up):
		if n > 0 {
			v.selected[v.focus] = (sel - 1 + n) % n
		}
	case key.Matches(msg, keys.Down):
		if n > 0 {
			v.selected[v.focus] = (sel + 1) % n
		}
	case key.Matches(msg, keys.MoveUp):
		if sess.CanMoveUp(path, sel) && sess.MoveUp(path, sel) == nil {
			v.selected[v.focus] = sel - 1
		}
	case key.Matches(msg, keys.MoveDown):
		if sess.CanMoveDown(path, sel) && sess.MoveDown(path, sel) == nil {
			v.selected[v.focus] = sel + 1
		}
	case key.Matches(msg, keys.Duplicate):
		if n > 0 && sess.Duplicate(path, sel) == nil {
			v.selected[v.focus] = sel + 1
		}
	case key.Matches(msg, keys.Delete):
		if n == 0 {
			break
		}
		if err := sess.Remove(path, sel); err != nil {
			v.model.Logger().Warn("delete item failed", "path", path.String(), "index", sel, "error", err)
			v.errorMsg = fmt.Sprintf("Failed to delete item: %v", err)
			break
		}
		v.clampSelection()
	case key.Matches(msg, keys.Add):
		if err := sess.AddDefault(path); err != nil {
			v.model.Logger().Warn("add item failed", "path", path.String(), "error", err)
			v.errorMsg = fmt.Sprintf("Failed to add item: %v", err)
			return v, nil
		}
		v.selected[v.focus] = n
		return v.beginItemEdit()
	case msg.String() == "enter" || msg.String() == "e":
		if n > 0 {
			return v.beginItemEdit()
		}
	}
	return v, nil
}

func (v *editView) itemValue(host models.HostEntry) string {
	sel := v.selected[v.focus]
	switch v.focus {
	case focusPlatforms:
		if sel < len(host.Platforms) {
			return host.Platforms[sel].LocalDirectory
		}
	case focusInclusive:
		if sel < len(host.Filters.InclusiveFilters) {
			return host.Filters.InclusiveFilters[sel]
		}
	case focusExclusive:
		if sel < len(host.Filters.ExclusiveFilters) {
			return host.Filters.ExclusiveFilters[sel]
		}
	}
	return ""
}

func (v *editView) beginItemEdit() (tea.Model, tea.Cmd) {
	host, ok := v.current()
	if !ok {
		return v, nil
	}
	v.itemInput.SetValue(v.itemValue(host))
	v.itemInput.Placeholder = "Pattern"
	if v.focus == focusPlatforms {
		v.itemInput.Placeholder = "Local directory"
	}
	v.itemInput.Focus()
	v.editingItem = true
	return v, textinput.Blink
}

func (v *editView) updateItemInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.editingItem = false
		v.itemInput.Blur()
		return v, nil
	case "enter":
		v.editingItem = false
		v.itemInput.Blur()
		v.commitItem(v.itemInput.Value())
		return v, nil
	}
	var cmd tea.Cmd
	v.itemInput, cmd = v.itemInput.Update(msg)
	return v, cmd
}

func (v *editView) commitItem(value string) {
	doc := v.model.Session().Snapshot()
	if v.host < 0 || v.host >= len(doc.Hosts) {
		return
	}
	h := &doc.Hosts[v.host]
	sel := v.selected[v.focus]
	switch v.focus {
	case focusPlatforms:
		if sel < len(h.Platforms) {
			h.Platforms[sel].LocalDirectory = value
		}
	case focusInclusive:
		if sel < len(h.Filters.InclusiveFilters) {
			h.Filters.InclusiveFilters[sel] = value
		}
	case focusExclusive:
		if sel < len(h.Filters.ExclusiveFilters) {
			h.Filters.ExclusiveFilters[sel] = value
		}
	}
	v.model.Session().Replace(doc)
}

func (v *editView) View() string {
	host, ok := v.current()
	if !ok {
		return ui.ErrorStyle.Render("Host no longer exists. Press ESC.")
	}

	layout := ui.NewBaseLayout(v.width, v.height)
	contentWidth := min(layout.InnerWidth(), 120)
	inputWidth := contentWidth - 8

	var content strings.Builder
	content.WriteString(ui.TitleStyle.Render("Edit "+host.Title(v.host)) + "\n\n")

	labels := []string{"Display Name:", "Host Type:", "Root URI:", "Password:"}
	for i, input := range v.inputs {
		style := ui.InputStyle.Width(inputWidth)
		if i == v.focus {
			style = ui.ActiveInputStyle.Width(inputWidth)
		}
		content.WriteString(ui.LabelStyle.Render(labels[i]) + "\n" + style.Render(input.View()) + "\n")
	}

	platforms := make([]string, len(host.Platforms))
	for i, p := range host.Platforms {
		platforms[i] = platformLabel(p)
	}
	content.WriteString(v.renderList(focusPlatforms, "Platforms", platforms, inputWidth))
	content.WriteString(v.renderList(focusInclusive, "Inclusive Filters", host.Filters.InclusiveFilters, inputWidth))
	content.WriteString(v.renderList(focusExclusive, "Exclusive Filters", host.Filters.ExclusiveFilters, inputWidth))

	if v.editingItem {
		content.WriteString("\n" + ui.ActiveInputStyle.Width(inputWidth).Render(v.itemInput.View()) + "\n")
	}
	if v.errorMsg != "" {
		content.WriteString("\n" + ui.ErrorStyle.Render(v.errorMsg) + "\n")
	}

	content.WriteString("\n" + renderStatusBar(v.model, v.shortcuts()))

	return lipgloss.Place(
		v.width,
		v.height,
		lipgloss.Center,
		lipgloss.Center,
		ui.WindowStyle.Width(contentWidth).Render(content.String()),
		lipgloss.WithWhitespaceChars(""),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}

func (v *editView) renderList(focus int, title string, items []string, width int) string {
	style := ui.PanelStyle.Width(width)
	if v.focus == focus {
		style = ui.ActivePanelStyle.Width(width)
	}

	var body strings.Builder
	body.WriteString(ui.PanelTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	if len(items) == 0 {
		body.WriteString("\n" + ui.DescriptionStyle.Render("empty, press 'a' to add"))
	}
	for i, item := range items {
		if item == "" {
			item = `""`
		}
		if v.focus == focus && i == v.selected[focus] {
			body.WriteString("\n" + ui.SelectedItemStyle.Render("❯ "+item))
		} else {
			body.WriteString("\n  " + ui.ItemStyle.Render(item))
		}
	}
	return style.Render(body.String()) + "\n"
}

func (v *editView) shortcuts() []ui.Shortcut {
	if !v.inList() {
		return []ui.Shortcut{
			{Label: "Next", Keys: "tab/↓"},
			{Label: "Previous", Keys: "shift+tab/↑"},
			{Label: "Back", Keys: "esc"},
		}
	}
	sess := v.model.Session()
	path := v.path()
	sel := v.selected[v.focus]
	empty := sess.Len(path) <= 0
	return []ui.Shortcut{
		{Label: "Navigate", Keys: "↑↓", Disabled: empty},
		{Label: "Move Up", Keys: "K", Disabled: !sess.CanMoveUp(path, sel)},
		{Label: "Move Down", Keys: "J", Disabled: !sess.CanMoveDown(path, sel)},
		{Label: "Edit", Keys: "enter", Disabled: empty},
		{Label: "Add", Keys: "a"},
		{Label: "Copy", Keys: "c", Disabled: empty},
		{Label: "Delete", Keys: "d", Disabled: empty},
		{Label: "Section", Keys: "tab"},
		{Label: "Back", Keys: "esc"},
	}
}
