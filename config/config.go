package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// EnvDataFile names the environment variable that points at the issue document.
const EnvDataFile = "GRIDWATCH_DATA_FILE"

// DefaultDataFile is used when nothing else names the issue document.
const DefaultDataFile = "consumption_issues.json"

// Config represents the global gridwatch configuration
type Config struct {
	DataFile     string  `json:"data_file,omitempty"`
	DebugLogging bool    `json:"debug_logging,omitempty"`
	Filters      Filters `json:"filters"`
}

// Filters is the last filter selection, restored on the next run
type Filters struct {
	Status   string `json:"status,omitempty"`
	Severity string `json:"severity,omitempty"`
	Type     string `json:"issue_type,omitempty"`
}

// Manager handles configuration loading and saving
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a configuration manager backed by
// ~/.config/gridwatch/config.json
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(home, ".config", "gridwatch", "config.json"))
}

// NewManagerAt creates a configuration manager for the file at configPath.
// A missing file yields an empty configuration; a malformed one is an error.
func NewManagerAt(configPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	m := &Manager{
		configPath: configPath,
		config:     &Config{},
	}

	if err := m.load(); err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, err
	}
	return m, nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Dir returns the directory holding the config file
func (m *Manager) Dir() string {
	return filepath.Dir(m.configPath)
}

// load reads the configuration from disk. Comments and trailing commas are
// accepted.
func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(standardized, cfg); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}
	m.config = cfg
	return nil
}

// save writes the configuration to disk
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := atomic.WriteFile(m.configPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetDataFile returns the configured issue document path
func (m *Manager) GetDataFile() string {
	return m.config.DataFile
}

// SetDataFile sets the issue document path
func (m *Manager) SetDataFile(path string) error {
	m.config.DataFile = path
	return m.save()
}

// GetDebugLoggingEnabled returns whether debug logging is enabled
func (m *Manager) GetDebugLoggingEnabled() bool {
	return m.config.DebugLogging
}

// SetDebugLoggingEnabled enables or disables debug logging
func (m *Manager) SetDebugLoggingEnabled(enabled bool) error {
	m.config.DebugLogging = enabled
	return m.save()
}

// GetFilters returns the last saved filter selection
func (m *Manager) GetFilters() Filters {
	return m.config.Filters
}

// SetFilters stores the filter selection
func (m *Manager) SetFilters(f Filters) error {
	if m.config.Filters == f {
		return nil
	}
	m.config.Filters = f
	return m.save()
}

// ResolveDataFile picks the issue document path: the flag value, then
// $GRIDWATCH_DATA_FILE, then the config file, then DefaultDataFile.
// m may be nil.
func ResolveDataFile(flagValue string, m *Manager) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvDataFile); env != "" {
		return env
	}
	if m != nil && m.GetDataFile() != "" {
		return m.GetDataFile()
	}
	return DefaultDataFile
}
