// Package executor runs local helper programs such as the desktop URL
// opener used by login-url --open.
package executor

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/ksyq12/hostprov/internal/logger"
	"github.com/ksyq12/hostprov/internal/platform"
)

// CommandExecutor is an interface for executing system commands
type CommandExecutor interface {
	// Execute runs a command with the given name and arguments
	Execute(ctx context.Context, name string, args ...string) ([]byte, error)

	// LookPath searches for an executable in the directories named by the PATH
	LookPath(file string) (string, error)
}

// SystemExecutor implements CommandExecutor using os/exec
type SystemExecutor struct{}

// NewSystemExecutor creates a new SystemExecutor
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Execute runs a command and returns combined output
func (e *SystemExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// LookPath searches for an executable
func (e *SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// OpenURL opens target in the desktop browser of goos
func OpenURL(ctx context.Context, e CommandExecutor, goos, target string) error {
	opener, err := platform.URLOpener(goos)
	if err != nil {
		return err
	}
	if _, err := e.LookPath(opener.Command); err != nil {
		return fmt.Errorf("%s not found: %w", opener.Command, err)
	}

	args := append(append([]string{}, opener.Args...), target)
	logger.DebugFields("opening url", map[string]interface{}{"command": opener.Command})
	if out, err := e.Execute(ctx, opener.Command, args...); err != nil {
		return fmt.Errorf("failed to open browser: %w: %s", err, out)
	}
	return nil
}

// MockExecutor is a mock implementation for testing
type MockExecutor struct {
	ExecuteFunc  func(name string, args ...string) ([]byte, error)
	LookPathFunc func(file string) (string, error)
	Calls        []CommandCall
}

// CommandCall records a command execution for verification
type CommandCall struct {
	Name string
	Args []string
}

// Execute calls the mock function
func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, CommandCall{Name: name, Args: args})
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(name, args...)
	}
	return []byte(""), nil
}

// LookPath calls the mock function
func (m *MockExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	return "/usr/bin/" + file, nil
}
