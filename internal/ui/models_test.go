package ui

import (
	"path/filepath"
	"testing"

	"mortarEditor/internal/config"
	"mortarEditor/internal/logging"
	"mortarEditor/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemes(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme("default") })

	names := ThemeNames()
	require.NotEmpty(t, names)
	assert.Equal(t, "default", names[0])

	require.NoError(t, ApplyTheme("dracula"))
	assert.Equal(t, "dracula", CurrentTheme().Name)
	assert.Equal(t, CurrentTheme().Highlight, Highlight)

	assert.Error(t, ApplyTheme("no-such-theme"))
	assert.Equal(t, "dracula", CurrentTheme().Name)

	seen := map[string]bool{}
	for range names {
		seen[SwitchTheme()] = true
	}
	assert.Len(t, seen, len(names))
	assert.Equal(t, "dracula", CurrentTheme().Name)
}

func TestNotifyWithoutProgramSetsStatus(t *testing.T) {
	sess := session.New()
	m := NewModel(sess, nil, logging.Discard())

	_ = sess.Import([]byte("not json"))

	st := m.GetStatus()
	assert.Equal(t, "Invalid JSON file", st.Title)
	assert.True(t, st.IsError)
}

func TestStatusSequence(t *testing.T) {
	m := NewModel(session.New(), nil, logging.Discard())

	first := m.SetStatus("one", "", false)
	second := m.SetStatus("two", "", true)
	assert.Greater(t, second, first)

	m.ClearStatus(first)
	assert.Equal(t, "two", m.GetStatus().Title)

	m.ClearStatus(second)
	assert.Empty(t, m.GetStatus().Title)
}

func TestCycleThemePersists(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme("default") })

	path := filepath.Join(t.TempDir(), "settings.yaml")
	cfg := config.NewManager(path)
	require.NoError(t, cfg.Load())

	m := NewModel(session.New(), cfg, logging.Discard())
	assert.Equal(t, "default", CurrentTheme().Name)

	name := m.CycleTheme()

	reloaded := config.NewManager(path)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, name, reloaded.Settings().Theme)
}

func TestViewSwitching(t *testing.T) {
	m := NewModel(session.New(), nil, logging.Discard())
	assert.Equal(t, ViewMain, m.GetActiveView())

	m.EditHost(2)
	assert.Equal(t, ViewEdit, m.GetActiveView())
	assert.Equal(t, 2, m.EditedHost())
}
