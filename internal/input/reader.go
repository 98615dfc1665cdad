// Package input reads confirmations and secrets from the user.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Reader is an interface for reading user input
type Reader interface {
	ReadString(delim byte) (string, error)
}

// StdinReader wraps bufio.Reader for os.Stdin
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader
func NewStdinReader() *StdinReader {
	return &StdinReader{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadString reads until delimiter
func (r *StdinReader) ReadString(delim byte) (string, error) {
	return r.reader.ReadString(delim)
}

// StringReader is a simple reader for testing.
// Each input string should already include the delimiter that will be used
// in ReadString calls (e.g., "yes\n" for newline delimiter).
type StringReader struct {
	inputs []string
	index  int
}

// NewStringReader creates a reader from strings.
// Each input string should include the expected delimiter.
func NewStringReader(inputs ...string) *StringReader {
	return &StringReader{inputs: inputs}
}

// ReadString returns the next pre-configured string.
// Returns io.EOF when all inputs have been consumed.
// Note: The delim parameter is ignored; inputs should already include delimiters.
func (r *StringReader) ReadString(delim byte) (string, error) {
	if r.index >= len(r.inputs) {
		return "", io.EOF
	}
	result := r.inputs[r.index]
	r.index++
	return result, nil
}

// Confirm prints prompt and reports whether the answer is y or yes.
// Any read error, including EOF, counts as no.
func Confirm(r Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	answer, err := r.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// PasswordReader reads a secret without echoing it
type PasswordReader interface {
	ReadPassword(prompt string) (string, error)
}

// TerminalPasswordReader reads from the controlling terminal with echo
// disabled, or a single line when stdin is not a terminal
type TerminalPasswordReader struct {
	fallback Reader
}

// NewTerminalPasswordReader creates a TerminalPasswordReader on os.Stdin
func NewTerminalPasswordReader() *TerminalPasswordReader {
	return &TerminalPasswordReader{}
}

// ReadPassword prompts on stderr and returns the entered secret
func (r *TerminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		if r.fallback == nil {
			r.fallback = NewStdinReader()
		}
		line, err := r.fallback.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(secret), nil
}

// StaticPasswordReader returns fixed passwords in order (for testing)
type StaticPasswordReader struct {
	Passwords []string
	Prompts   []string
}

// ReadPassword returns the next configured password, or io.EOF when none
// are left
func (r *StaticPasswordReader) ReadPassword(prompt string) (string, error) {
	r.Prompts = append(r.Prompts, prompt)
	if len(r.Passwords) == 0 {
		return "", io.EOF
	}
	pw := r.Passwords[0]
	r.Passwords = r.Passwords[1:]
	return pw, nil
}
