// Package logger provides leveled logging for hostprov.
//
// Log output goes to stderr, separate from the user-facing output that goes
// to stdout, so verbose panel traces never interfere with JSON output.
// The package keeps a small printf-style API on top of logrus.
//
// # Log Levels
//
// Four log levels are supported, in order of severity:
//   - Debug: panel requests and responses
//   - Info: lifecycle progress
//   - Warn: rollback failures and recoverable problems
//   - Error: failed operations
//
// By default only Warn and Error are shown. Init(true) enables everything.
//
// # Usage
//
//	logger.Debug("POST %s", path)
//	logger.InfoFields("account created", map[string]interface{}{
//	    "provider": "whm",
//	    "username": "example",
//	})
//
// # Output Format
//
//	[LEVEL] YYYY-MM-DD HH:MM:SS message key=value
//	[DEBUG] 2026-02-03 10:30:45 whm request function=createacct
//
// # Secret Redaction
//
// RedactSecrets registers credential values that must never reach the log.
// Every occurrence in a message or a string field is replaced with "********".
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level represents a logging severity level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Mask replaces redacted secrets in log output.
const Mask = "********"

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

func fromLogrus(l logrus.Level) Level {
	switch {
	case l >= logrus.DebugLevel:
		return LevelDebug
	case l == logrus.InfoLevel:
		return LevelInfo
	case l == logrus.WarnLevel:
		return LevelWarn
	default:
		return LevelError
	}
}

// lineFormatter renders entries as "[LEVEL] timestamp message k=v".
type lineFormatter struct{}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(fromLogrus(e.Level).String())
	b.WriteString("] ")
	b.WriteString(e.Time.Format("2006-01-02 15:04:05"))
	b.WriteString(" ")
	b.WriteString(e.Message)

	// Sort field keys for consistent output
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteString("\n")
	return b.Bytes(), nil
}

// redactHook masks registered secrets before an entry is formatted.
type redactHook struct {
	mu      sync.RWMutex
	secrets []string
}

func (h *redactHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *redactHook) Fire(e *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.secrets) == 0 {
		return nil
	}
	e.Message = h.redact(e.Message)
	for k, v := range e.Data {
		switch val := v.(type) {
		case string:
			e.Data[k] = h.redact(val)
		case error:
			e.Data[k] = h.redact(val.Error())
		}
	}
	return nil
}

func (h *redactHook) redact(s string) string {
	for _, secret := range h.secrets {
		s = strings.ReplaceAll(s, secret, Mask)
	}
	return s
}

func (h *redactHook) add(values ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range values {
		if v == "" {
			continue
		}
		h.secrets = append(h.secrets, v)
	}
	// Longest first so a secret containing another is masked whole.
	sort.Slice(h.secrets, func(i, j int) bool {
		return len(h.secrets[i]) > len(h.secrets[j])
	})
}

var (
	std    = newStd()
	redact = &redactHook{}
)

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&lineFormatter{})
	l.SetLevel(logrus.WarnLevel) // Default: only warnings and errors
	return l
}

func init() {
	std.AddHook(redact)
}

// Init initializes the global logger with the specified verbosity.
// When verbose is true, Debug and Info levels are enabled.
// When verbose is false, only Warn and Error are shown.
func Init(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelWarn)
	}
}

// SetLevel sets the minimum log level for the global logger.
func SetLevel(level Level) {
	std.SetLevel(level.logrus())
}

// SetOutput sets the output destination for the global logger.
// A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	std.SetOutput(w)
}

// GetLevel returns the current log level.
func GetLevel() Level {
	return fromLogrus(std.GetLevel())
}

// RedactSecrets registers values that are masked in every subsequent log line.
// Empty values are ignored.
func RedactSecrets(values ...string) {
	redact.add(values...)
}

// ResetSecrets forgets every registered secret.
func ResetSecrets() {
	redact.mu.Lock()
	defer redact.mu.Unlock()
	redact.secrets = nil
}

// Debug logs a debug message.
// Only shown when verbose mode is enabled.
func Debug(format string, args ...interface{}) {
	std.Debugf(format, args...)
}

// Info logs an informational message.
// Only shown when verbose mode is enabled.
func Info(format string, args ...interface{}) {
	std.Infof(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	std.Warnf(format, args...)
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

// DebugFields logs a debug message with structured fields.
func DebugFields(msg string, fields map[string]interface{}) {
	std.WithFields(fields).Debug(msg)
}

// InfoFields logs an informational message with structured fields.
func InfoFields(msg string, fields map[string]interface{}) {
	std.WithFields(fields).Info(msg)
}

// WarnFields logs a warning message with structured fields.
func WarnFields(msg string, fields map[string]interface{}) {
	std.WithFields(fields).Warn(msg)
}

// ErrorFields logs an error message with structured fields.
func ErrorFields(msg string, fields map[string]interface{}) {
	std.WithFields(fields).Error(msg)
}

// LogError logs an error with additional context message.
func LogError(err error, msg string) {
	if err == nil {
		return
	}
	std.Errorf("%s: %v", msg, err)
}
