package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// ValidationError represents a config validation error with location details
type ValidationError struct {
	Message    string
	Line       int
	Column     int
	Underlying error
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d", e.Message, e.Line, e.Column)
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping
func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// Editor edits the config file in an external editor. The file is edited as
// a temporary copy and only replaces the original when it validates.
type Editor struct {
	command  []string
	manager  *Manager
	tempPath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewEditor creates an editor for m's config file using DetectEditor
func NewEditor(m *Manager) *Editor {
	return &Editor{
		command: strings.Fields(DetectEditor()),
		manager: m,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// DetectEditor finds the editor using $EDITOR, $VISUAL, then common editors
func DetectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}

	for _, editor := range []string{"vi", "vim", "nano"} {
		if _, err := exec.LookPath(editor); err == nil {
			return editor
		}
	}
	return "vi"
}

// Edit opens the config in the editor and blocks until it closes. An invalid
// result is reported as *ValidationError and the original file is kept.
func (e *Editor) Edit() error {
	if len(e.command) == 0 {
		return errors.New("no editor configured")
	}

	if err := e.createTempCopy(); err != nil {
		return err
	}
	defer e.cleanupTemp()

	args := append(slices.Clone(e.command[1:]), e.tempPath)
	cmd := exec.Command(e.command[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor command failed: %w", err)
	}

	data, err := os.ReadFile(e.tempPath)
	if err != nil {
		return fmt.Errorf("failed to read edited config: %w", err)
	}
	if verr := Validate(data); verr != nil {
		return verr
	}

	if err := atomic.WriteFile(e.manager.configPath, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return e.manager.load()
}

// createTempCopy copies the config file, or the current in-memory config when
// there is no file yet, to a private temp file
func (e *Editor) createTempCopy() error {
	data, err := os.ReadFile(e.manager.configPath)
	if os.IsNotExist(err) {
		data, err = json.MarshalIndent(e.manager.config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	f, err := os.CreateTemp("", "."+filepath.Base(e.manager.configPath)+".*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer f.Close()

	e.tempPath = f.Name()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	return nil
}

func (e *Editor) cleanupTemp() {
	if e.tempPath != "" {
		_ = os.Remove(e.tempPath)
		e.tempPath = ""
	}
}

// Validate checks that data is a well-formed config. Comments and trailing
// commas are accepted.
func Validate(data []byte) *ValidationError {
	standardized, err := hujson.Standardize(slices.Clone(data))
	if err != nil {
		return syntaxError(err)
	}

	// Standardize blanks out comments in place, so offsets still point into data
	var cfg Config
	err = json.Unmarshal(standardized, &cfg)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		line, column := lineColumn(data, syntaxErr.Offset)
		return &ValidationError{Message: "Invalid JSON syntax", Line: line, Column: column, Underlying: err}
	case errors.As(err, &typeErr):
		line, column := lineColumn(data, typeErr.Offset)
		msg := fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type)
		return &ValidationError{Message: msg, Line: line, Column: column, Underlying: err}
	}
	return &ValidationError{Message: fmt.Sprintf("JSON parse error: %v", err), Underlying: err}
}

// hujsonPosition matches the position prefix hujson puts on parse errors
var hujsonPosition = regexp.MustCompile(`^hujson: line (\d+), column (\d+): (.*)$`)

func syntaxError(err error) *ValidationError {
	m := hujsonPosition.FindStringSubmatch(err.Error())
	if m == nil {
		return &ValidationError{Message: "Invalid config syntax: " + err.Error(), Underlying: err}
	}
	line, _ := strconv.Atoi(m[1])
	column, _ := strconv.Atoi(m[2])
	return &ValidationError{Message: "Invalid config syntax: " + m[3], Line: line, Column: column, Underlying: err}
}

// lineColumn converts a byte offset to 1-based line and column numbers
func lineColumn(data []byte, offset int64) (line, column int) {
	line, column = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}
