// internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperr "mortarEditor/internal/error"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFileName = "settings.yaml"
	DefaultConfigDir      = ".config/mortar-editor"
	DefaultLogFileName    = "mortar-editor.log"
	DefaultFilePerms      = 0600
	DefaultRequestTimeout = 10 * time.Second
)

// Settings are the editor's own preferences; they are not part of the
// Mortar document.
type Settings struct {
	Theme          string        `yaml:"theme"`
	ExportDir      string        `yaml:"export_dir"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	API            string        `yaml:"api,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:          "default",
		ExportDir:      ".",
		RequestTimeout: DefaultRequestTimeout,
		LogLevel:       "info",
	}
}

type Manager struct {
	configPath string
	settings   Settings
}

// NewManager creates a settings manager for configPath, falling back to the
// default location.
func NewManager(configPath string) *Manager {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			configPath = defaultPath
		} else {
			configPath = DefaultConfigFileName
		}
	}

	return &Manager{
		configPath: configPath,
		settings:   DefaultSettings(),
	}
}

// Load reads the settings file. A missing file is created with defaults.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.settings = DefaultSettings()
			return m.Save()
		}
		return apperr.New(apperr.ConfigError, "failed to read settings file", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return apperr.New(apperr.ConfigError, "failed to parse settings file", err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	m.settings = settings
	return nil
}

// Save writes the settings file.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return apperr.New(apperr.ConfigError, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return apperr.New(apperr.ConfigError, "failed to marshal settings", err)
	}

	if err := os.WriteFile(m.configPath, data, DefaultFilePerms); err != nil {
		return apperr.New(apperr.ConfigError, "failed to write settings file", err)
	}
	return nil
}

func (m *Manager) Settings() Settings {
	return m.settings
}

func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// SetTheme records the active theme; callers Save to persist it.
func (m *Manager) SetTheme(name string) {
	m.settings.Theme = name
}

// Validate rejects settings the editor cannot run with.
func (s Settings) Validate() error {
	if s.RequestTimeout < 0 {
		return apperr.New(apperr.ConfigError, fmt.Sprintf("request_timeout must not be negative, got %s", s.RequestTimeout), nil)
	}
	switch strings.ToLower(s.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return apperr.New(apperr.ConfigError, fmt.Sprintf("unknown log_level %q", s.LogLevel), nil)
	}
	return nil
}

func GetDefaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(homeDir, DefaultConfigDir), nil
}

func GetDefaultConfigPath() (string, error) {
	dir, err := GetDefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFileName), nil
}

// GetLogPath returns the log file next to the settings file.
func (m *Manager) GetLogPath() string {
	return filepath.Join(filepath.Dir(m.configPath), DefaultLogFileName)
}
