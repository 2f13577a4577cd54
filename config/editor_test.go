package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeEditorScript creates a fake editor that overwrites its argument with content
func writeEditorScript(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	body := filepath.Join(dir, "body.json")
	if err := os.WriteFile(body, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write editor body: %v", err)
	}

	script := filepath.Join(dir, "editor.sh")
	src := "#!/bin/sh\ncat '" + body + "' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(src), 0755); err != nil {
		t.Fatalf("Failed to write editor script: %v", err)
	}
	return script
}

func newTestEditor(m *Manager, command ...string) *Editor {
	return &Editor{command: command, manager: m}
}

// TestDetectEditor tests the environment lookup order
func TestDetectEditor(t *testing.T) {
	t.Run("EDITOR wins", func(t *testing.T) {
		t.Setenv("EDITOR", "nano")
		t.Setenv("VISUAL", "code -w")
		if got := DetectEditor(); got != "nano" {
			t.Errorf("DetectEditor() = %q, want %q", got, "nano")
		}
	})

	t.Run("VISUAL fallback", func(t *testing.T) {
		t.Setenv("EDITOR", "")
		t.Setenv("VISUAL", "code -w")
		if got := DetectEditor(); got != "code -w" {
			t.Errorf("DetectEditor() = %q, want %q", got, "code -w")
		}
	})
}

// TestValidate tests config validation and error locations
func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  bool
		wantLine int
		contains string
	}{
		{
			name: "valid JSONC",
			data: "{\n  // comment\n  \"data_file\": \"a.json\",\n}",
		},
		{
			name:     "wrong type",
			data:     "{\n  \"data_file\": \"a.json\",\n  \"debug_logging\": \"yes\"\n}",
			wantErr:  true,
			wantLine: 3,
			contains: "debug_logging must be a bool",
		},
		{
			name:     "broken syntax",
			data:     `{"data_file": }`,
			wantErr:  true,
			wantLine: 1,
			contains: "Invalid config syntax",
		},
		{
			name:     "broken syntax on a later line",
			data:     "{\n  // editor\n  \"data_file\": \"a.json\",,\n}",
			wantErr:  true,
			wantLine: 3,
			contains: "at line 3, column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.data))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if tt.wantLine > 0 && err.Line != tt.wantLine {
				t.Errorf("Expected error on line %d, got %d", tt.wantLine, err.Line)
			}
			if tt.wantLine > 0 && err.Column < 1 {
				t.Errorf("Expected a column, got %d", err.Column)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error to contain %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

// TestValidateKeepsInput tests that validation does not strip comments from the input
func TestValidateKeepsInput(t *testing.T) {
	data := []byte("{\n  // keep me\n  \"debug_logging\": true,\n}")
	original := string(data)

	if err := Validate(data); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if string(data) != original {
		t.Errorf("Validate() modified its input:\n%s", data)
	}
}

// TestEditorEdit tests replacing the config with the edited copy
func TestEditorEdit(t *testing.T) {
	m, _ := createTestManager(t)

	content := "{\n  // edited\n  \"data_file\": \"/srv/issues.json\",\n}"
	e := newTestEditor(m, writeEditorScript(t, content))

	if err := e.Edit(); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	if m.GetDataFile() != "/srv/issues.json" {
		t.Errorf("Expected manager to reload data file, got %q", m.GetDataFile())
	}
	data, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if string(data) != content {
		t.Errorf("Expected config file to keep the edited text, got:\n%s", data)
	}
	if e.tempPath != "" {
		t.Error("Expected temp file to be cleaned up")
	}
}

// TestEditorEditInvalidKeepsOriginal tests that an invalid edit is rejected
func TestEditorEditInvalidKeepsOriginal(t *testing.T) {
	m, _ := createTestManager(t)
	if err := m.SetDataFile("/original.json"); err != nil {
		t.Fatalf("SetDataFile() error = %v", err)
	}
	before, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	e := newTestEditor(m, writeEditorScript(t, `{"debug_logging": "yes"}`))
	err = e.Edit()

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}

	after, err := os.ReadFile(m.Path())
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if string(before) != string(after) {
		t.Error("Expected original config to be kept")
	}
	if m.GetDataFile() != "/original.json" {
		t.Errorf("Expected data file to stay /original.json, got %q", m.GetDataFile())
	}
}

// TestEditorEditFailingCommand tests that an editor failure leaves the config alone
func TestEditorEditFailingCommand(t *testing.T) {
	m, _ := createTestManager(t)

	e := newTestEditor(m, "false")
	if err := e.Edit(); err == nil {
		t.Error("Expected error from failing editor")
	}
	if _, err := os.Stat(m.Path()); !os.IsNotExist(err) {
		t.Error("Expected no config file to be written")
	}
}
