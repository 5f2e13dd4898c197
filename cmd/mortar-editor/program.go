package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	apperr "mortarEditor/internal/error"
	"mortarEditor/internal/ui"
	"mortarEditor/internal/ui/views"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type programModel struct {
	quitting    bool
	uiModel     *ui.Model
	currentView tea.Model
}

func newProgramModel(uiModel *ui.Model) *programModel {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		uiModel.SetTerminalSize(w, h)
	}
	return &programModel{
		uiModel:     uiModel,
		currentView: views.NewMainView(uiModel),
	}
}

func (m *programModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.currentView.Init()}
	if m.uiModel.Session().RemoteMode() {
		cmds = append(cmds, views.LoadRemoteCmd(m.uiModel))
	}
	return tea.Batch(cmds...)
}

func (m *programModel) updateCurrentView() tea.Cmd {
	switch m.uiModel.GetActiveView() {
	case ui.ViewEdit:
		m.currentView = views.NewEditView(m.uiModel)
	default:
		m.currentView = views.NewMainView(m.uiModel)
		m.uiModel.SetActiveView(ui.ViewMain)
	}
	return m.currentView.Init()
}

func (m *programModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.uiModel.IsQuitting() || m.quitting {
		m.quitting = true
		return m, tea.Quit
	}

	activeView := m.uiModel.GetActiveView()

	var cmd tea.Cmd
	m.currentView, cmd = m.currentView.Update(msg)

	if activeView != m.uiModel.GetActiveView() {
		return m, tea.Batch(cmd, m.updateCurrentView())
	}
	return m, cmd
}

func (m *programModel) View() string {
	if m.quitting || m.uiModel.IsQuitting() {
		return "Goodbye!\n"
	}
	return m.currentView.View()
}

// checkEditorFlags runs before settings fill in defaults, so it only sees
// what was given on the command line.
func checkEditorFlags(opts *options) error {
	if opts.api != "" && opts.file != "" {
		return apperr.New(apperr.ConfigError, "--api and --file cannot be combined: the editor works on either a remote instance or a local file", nil)
	}
	return nil
}

// preferFile keeps an explicit --file in file mode when the API address only
// came from the settings file.
func preferFile(opts *options, flagAPI string, logger *slog.Logger) {
	if opts.file == "" || flagAPI != "" || opts.api == "" {
		return
	}
	logger.Info("opening local file, ignoring API address from settings", "file", opts.file, "api", opts.api)
	opts.api = ""
}

func runEditor(ctx context.Context, opts *options) error {
	if err := checkEditorFlags(opts); err != nil {
		return err
	}
	flagAPI := opts.api

	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	preferFile(opts, flagAPI, a.logger)

	sess, err := a.newSession(opts)
	if err != nil {
		return err
	}
	if opts.file != "" {
		if err := sess.ImportFile(opts.file); err != nil {
			return err
		}
	}

	uiModel := ui.NewModel(sess, a.cfg, a.logger)
	p := tea.NewProgram(newProgramModel(uiModel), tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("mortar editor stopped")
	return nil
}
