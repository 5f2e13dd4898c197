package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mortarEditor/internal/fileio"
	"mortarEditor/internal/listedit"
	"mortarEditor/internal/models"
	"mortarEditor/internal/session"
	"mortarEditor/internal/ui"
	"mortarEditor/internal/ui/components"
	"mortarEditor/internal/ui/messages"
	"mortarEditor/internal/utils"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	toastTimeout = 5 * time.Second

	opImport = "import"
	opExport = "export"
	opLoad   = "load"
	opSave   = "save"
)

type mainView struct {
	model         *ui.Model
	selectedIndex int
	width         int
	height        int
	popup         *components.Popup
	pending       pendingAction
}

// pendingAction is what an accepted popup triggers.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingDelete
	pendingImport
)

func NewMainView(model *ui.Model) *mainView {
	v := &mainView{
		model:         model,
		selectedIndex: model.EditedHost(),
		width:         model.GetTerminalWidth(),
		height:        model.GetTerminalHeight(),
	}
	v.clampSelection()
	return v
}

// LoadRemoteCmd fetches the remote document; the program runs it at startup
// in remote mode.
func LoadRemoteCmd(model *ui.Model) tea.Cmd {
	return runOp(opLoad, func() error {
		return model.Session().LoadRemote(context.Background())
	})
}

func runOp(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return messages.OperationDoneMsg{Op: op, Err: fn()}
	}
}

func (v *mainView) Init() tea.Cmd {
	return nil
}

func (v *mainView) hosts() []models.HostEntry {
	return v.model.Session().Snapshot().Hosts
}

func (v *mainView) clampSelection() {
	n := v.model.Session().Len(listedit.Hosts)
	if v.selectedIndex >= n {
		v.selectedIndex = n - 1
	}
	if v.selectedIndex < 0 {
		v.selectedIndex = 0
	}
}

func (v *mainView) message(title, text string) {
	v.popup, v.pending = components.Message(title, text), pendingNone
}

func (v *mainView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := handleStatus(v.model, msg); ok {
		return v, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.model.UpdateWindowSize(msg.Width, msg.Height)
		return v, nil

	case messages.OperationDoneMsg:
		if msg.Err != nil {
			v.model.Logger().Debug("operation finished with error", "op", msg.Op, "error", msg.Err)
		}
		v.clampSelection()
		return v, nil

	case tea.KeyMsg:
		if v.popup != nil {
			return v.updatePopup(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

// handleStatus shows notifications as toasts in the status bar and clears
// them after toastTimeout. It reports whether msg was consumed.
func handleStatus(model *ui.Model, msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case messages.NotificationMsg:
		seq := model.SetStatus(msg.Title, msg.Description, msg.Level == session.LevelError)
		return tea.Tick(toastTimeout, func(time.Time) tea.Msg {
			return messages.AutoCloseMsg{Seq: seq}
		}), true
	case messages.AutoCloseMsg:
		model.ClearStatus(msg.Seq)
		return nil, true
	}
	return nil, false
}

func (v *mainView) updatePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	popup := v.popup
	res, cmd := popup.Update(msg)
	if res == components.Pending {
		return v, cmd
	}
	v.popup = nil
	if res == components.Dismissed {
		return v, nil
	}

	switch v.pending {
	case pendingDelete:
		if err := v.model.Session().Remove(listedit.Hosts, v.selectedIndex); err != nil {
			v.model.Logger().Warn("delete host failed", "index", v.selectedIndex, "error", err)
			v.message("Error", fmt.Sprintf("Failed to delete host: %v", err))
		}
		v.clampSelection()

	case pendingImport:
		path := utils.NormalizePath(popup.Value())
		if path == "" {
			return v, nil
		}
		sess := v.model.Session()
		return v, runOp(opImport, func() error { return sess.ImportFile(path) })
	}
	return v, nil
}

func (v *mainView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The document may have shrunk since the last key (remote load, import).
	v.clampSelection()
	keys := v.model.Keys()
	sess := v.model.Session()
	n := sess.Len(listedit.Hosts)
	remote := sess.RemoteMode()

	switch {
	case key.Matches(msg, keys.Quit):
		v.model.SetQuitting(true)
		return v, tea.Quit

	case key.Matches(msg, keys.Up):
		if n > 0 {
			v.selectedIndex--
			if v.selectedIndex < 0 {
				v.selectedIndex = n - 1
			}
		}

	case key.Matches(msg, keys.Down):
		if n > 0 {
			v.selectedIndex++
			if v.selectedIndex >= n {
				v.selectedIndex = 0
			}
		}

	case key.Matches(msg, keys.MoveUp):
		if sess.CanMoveUp(listedit.Hosts, v.selectedIndex) && sess.MoveUp(listedit.Hosts, v.selectedIndex) == nil {
			v.selectedIndex--
		}

	case key.Matches(msg, keys.MoveDown):
		if sess.CanMoveDown(listedit.Hosts, v.selectedIndex) && sess.MoveDown(listedit.Hosts, v.selectedIndex) == nil {
			v.selectedIndex++
		}

	case key.Matches(msg, keys.Duplicate):
		if n > 0 && sess.Duplicate(listedit.Hosts, v.selectedIndex) == nil {
			v.selectedIndex++
		}

	case key.Matches(msg, keys.Add):
		if err := sess.AddDefault(listedit.Hosts); err != nil {
			v.message("Error", fmt.Sprintf("Failed to add host: %v", err))
			return v, nil
		}
		v.selectedIndex = n

	case key.Matches(msg, keys.Delete):
		if hosts := v.hosts(); v.selectedIndex < len(hosts) {
			title := hosts[v.selectedIndex].Title(v.selectedIndex)
			v.popup, v.pending = components.Confirm("Delete Host", fmt.Sprintf("Delete %q?", title)), pendingDelete
		}

	case key.Matches(msg, keys.Edit):
		if n > 0 {
			v.model.EditHost(v.selectedIndex)
		}

	case key.Matches(msg, keys.Import):
		if !remote {
			v.popup = components.Prompt("Import Configuration",
				"Path to a .json configuration file:", fileio.ExportFileName)
			v.pending = pendingImport
		}

	case key.Matches(msg, keys.Export):
		if !remote {
			return v, runOp(opExport, func() error {
				_, _, err := sess.Export()
				return err
			})
		}

	case key.Matches(msg, keys.Save):
		if remote && !sess.Busy() {
			return v, runOp(opSave, func() error { return sess.SaveRemote(context.Background()) })
		}

	case key.Matches(msg, keys.Reload):
		if remote && !sess.Busy() {
			return v, LoadRemoteCmd(v.model)
		}

	case key.Matches(msg, keys.Validate):
		v.showIssues()

	case key.Matches(msg, keys.Theme):
		name := v.model.CycleTheme()
		v.model.SetStatus("Theme", name, false)
	}

	return v, nil
}

func (v *mainView) showIssues() {
	issues := v.model.Session().Validate()
	if len(issues) == 0 {
		v.message("Validation", "No validation errors.")
		return
	}
	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.String())
	}
	v.popup, v.pending = components.Issues("Validation errors", lines), pendingNone
}

func (v *mainView) View() string {
	layout := ui.NewBaseLayout(v.width, v.height)

	var content strings.Builder
	content.WriteString(ui.TitleStyle.Render("Mortar Config Editor") + "  " + v.renderMode() + "\n\n")

	leftStyle, rightStyle := layout.SplitView()
	hosts := v.hosts()
	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Left,
		leftStyle.Render(v.renderHostPanel(hosts)),
		"  +  ",
		rightStyle.Render(v.renderDetailsPanel(hosts)),
	)
	content.WriteString(mainContent + "\n\n")
	content.WriteString(renderStatusBar(v.model, v.shortcuts(len(hosts))) + "\n")

	baseView := lipgloss.Place(
		v.width,
		v.height,
		lipgloss.Left,
		lipgloss.Top,
		ui.WindowStyle.Render(content.String()),
		lipgloss.WithWhitespaceChars(""),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)

	if v.popup != nil {
		return v.popup.Render(v.width, v.height)
	}
	return baseView
}

func (v *mainView) renderMode() string {
	sess := v.model.Session()
	if !sess.RemoteMode() {
		return ui.DescriptionStyle.Render("file mode")
	}
	mode := "remote " + sess.Address()
	if sess.Busy() {
		return ui.SuccessStyle.Render(mode + " (working...)")
	}
	return ui.DescriptionStyle.Render(mode)
}

func (v *mainView) renderHostPanel(hosts []models.HostEntry) string {
	var content strings.Builder
	if len(hosts) == 0 {
		content.WriteString(ui.DescriptionStyle.Render("\nNo hosts configured\nPress 'a' to add a host"))
	}
	for i, host := range hosts {
		name := ui.HostStyle.Render(ui.Truncate(host.Title(i), 36))
		if host.HostType != "" {
			name += " " + ui.BadgeStyle.Render("["+host.HostType+"]")
		}
		if i == v.selectedIndex {
			content.WriteString("\n" + ui.SelectedItemStyle.Render(ui.SuccessStyle.Render("❯ ")+name))
		} else {
			content.WriteString("\n  " + name)
		}
	}
	return ui.PanelTitleStyle.Render("Hosts") + "\n" + content.String()
}

func (v *mainView) renderDetailsPanel(hosts []models.HostEntry) string {
	var content strings.Builder
	if v.selectedIndex < len(hosts) {
		host := hosts[v.selectedIndex]
		row := func(label, value string) {
			content.WriteString(fmt.Sprintf("\n%s %s", ui.LabelStyle.Render(label), ui.Infotext.Render(value)))
		}
		row("Display Name:", host.DisplayName)
		row("Host Type:", host.HostType)
		row("Root URI:", host.RootURI)
		row("Password:", host.Password.String())
		row("Platforms:", fmt.Sprintf("%d", len(host.Platforms)))
		for _, p := range host.Platforms {
			content.WriteString("\n  " + ui.ItemStyle.Render(platformLabel(p)))
		}
		row("Include:", strings.Join(host.Filters.InclusiveFilters, ", "))
		row("Exclude:", strings.Join(host.Filters.ExclusiveFilters, ", "))
	}
	return ui.PanelTitleStyle.Render("Host Details") + "\n" + content.String()
}

func (v *mainView) shortcuts(n int) []ui.Shortcut {
	sess := v.model.Session()
	empty := n == 0
	list := []ui.Shortcut{
		{Label: "Navigate", Keys: "↑↓/w/s", Disabled: empty},
		{Label: "Move", Keys: "K/J", Disabled: !sess.CanMoveUp(listedit.Hosts, v.selectedIndex) && !sess.CanMoveDown(listedit.Hosts, v.selectedIndex)},
		{Label: "Edit", Keys: "enter/e", Disabled: empty},
		{Label: "Add", Keys: "a", Disabled: false},
		{Label: "Copy", Keys: "c", Disabled: empty},
		{Label: "Delete", Keys: "d/f8", Disabled: empty},
	}
	if sess.RemoteMode() {
		list = append(list,
			ui.Shortcut{Label: "Save to API", Keys: "u", Disabled: sess.Busy()},
			ui.Shortcut{Label: "Reload", Keys: "r", Disabled: sess.Busy()},
		)
	} else {
		list = append(list,
			ui.Shortcut{Label: "Import", Keys: "i"},
			ui.Shortcut{Label: "Export", Keys: "x"},
		)
	}
	return append(list,
		ui.Shortcut{Label: "Validate", Keys: "v"},
		ui.Shortcut{Label: "Theme", Keys: "space"},
		ui.Shortcut{Label: "Quit", Keys: "q/^c"},
	)
}

func renderStatusBar(model *ui.Model, shortcuts []ui.Shortcut) string {
	var status string
	st := model.GetStatus()
	switch {
	case st.Title == "":
		status = ui.DescriptionStyle.Render(fmt.Sprintf("%d host(s)", model.Session().Len(listedit.Hosts)))
	case st.IsError:
		status = ui.ErrorStyle.Render(st.Title) + " " + st.Message
	default:
		status = ui.SuccessStyle.Render(st.Title) + " " + st.Message
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(lipgloss.JoinVertical(lipgloss.Left, status, ui.CreateShortcutTable(shortcuts)))
}

func platformLabel(p models.Platform) string {
	label := p.LocalDirectory
	if label == "" {
		label = "(no local directory)"
	}
	if n := len(p.Extra); n > 0 {
		label += fmt.Sprintf(" +%d field(s)", n)
	}
	return label
}
