// internal/ui/models.go

package ui

import (
	"log/slog"
	gosync "sync"

	"mortarEditor/internal/config"
	"mortarEditor/internal/session"
	"mortarEditor/internal/ui/messages"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the editor shortcuts.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Add       key.Binding
	Duplicate key.Binding
	Delete    key.Binding
	Edit      key.Binding
	Import    key.Binding
	Export    key.Binding
	Save      key.Binding
	Reload    key.Binding
	Validate  key.Binding
	Theme     key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add"),
		),
		Duplicate: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "duplicate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "f8"),
			key.WithHelp("d/f8", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e", "f4"),
			key.WithHelp("enter/e", "edit"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export"),
		),
		Save: key.NewBinding(
			key.WithKeys("u", "ctrl+s"),
			key.WithHelp("u", "save to API"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Validate: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "validate"),
		),
		Theme: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Status is the toast shown in the status bar.
type Status struct {
	Title   string
	Message string
	IsError bool
	Seq     int
}

type View int

const (
	ViewMain View = iota
	ViewEdit
)

// Model is the state shared by all views.
type Model struct {
	mu         gosync.Mutex
	keys       KeyMap
	status     Status
	activeView View
	editHost   int
	session    *session.Controller
	config     *config.Manager
	program    *tea.Program
	logger     *slog.Logger
	width      int
	height     int
	quitting   bool
}

func NewModel(sess *session.Controller, cfg *config.Manager, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		keys:       DefaultKeyMap(),
		activeView: ViewMain,
		session:    sess,
		config:     cfg,
		logger:     logger.With("component", "ui"),
		width:      100,
		height:     30,
	}
	sess.SetNotifier(m)

	if cfg != nil {
		if err := ApplyTheme(cfg.Settings().Theme); err != nil {
			m.logger.Warn("falling back to default theme", "error", err)
		}
	}
	return m
}

// Notify implements session.Notifier. Notifications raised outside the
// program loop are delivered as messages; before the program exists they
// go straight to the status bar.
func (m *Model) Notify(n session.Notification) {
	m.mu.Lock()
	p := m.program
	m.mu.Unlock()

	if p == nil {
		m.SetStatus(n.Title, n.Description, n.Level == session.LevelError)
		return
	}
	// Send blocks until the loop receives; never call it from Update.
	go p.Send(messages.NotificationMsg{Notification: n})
}

func (m *Model) SetProgram(p *tea.Program) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.program = p
}

func (m *Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) Session() *session.Controller {
	return m.session
}

func (m *Model) Logger() *slog.Logger {
	return m.logger
}

// SetStatus replaces the toast and returns its sequence number.
func (m *Model) SetStatus(title, msg string, isError bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = Status{
		Title:   title,
		Message: msg,
		IsError: isError,
		Seq:     m.status.Seq + 1,
	}
	return m.status.Seq
}

func (m *Model) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// ClearStatus clears the toast if it is still the one numbered seq.
func (m *Model) ClearStatus(seq int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.Seq == seq {
		m.status = Status{Seq: seq}
	}
}

// CycleTheme switches to the next theme and persists the choice.
func (m *Model) CycleTheme() string {
	name := SwitchTheme()
	if m.config != nil {
		m.config.SetTheme(name)
		if err := m.config.Save(); err != nil {
			m.logger.Warn("failed to persist theme", "theme", name, "error", err)
		}
	}
	return name
}

func (m *Model) SetActiveView(view View) {
	m.activeView = view
}

func (m *Model) GetActiveView() View {
	return m.activeView
}

// EditHost switches to the host editor for the host at index.
func (m *Model) EditHost(index int) {
	m.editHost = index
	m.activeView = ViewEdit
}

func (m *Model) EditedHost() int {
	return m.editHost
}

func (m *Model) SetTerminalSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) UpdateWindowSize(width, height int) {
	m.SetTerminalSize(width, height)
}

func (m *Model) GetTerminalWidth() int {
	return m.width
}

func (m *Model) GetTerminalHeight() int {
	return m.height
}

func (m *Model) SetQuitting(q bool) {
	m.quitting = q
}

func (m *Model) IsQuitting() bool {
	return m.quitting
}
