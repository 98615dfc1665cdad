package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	labelColor   = color.New(color.Bold)
)

// JSON outputs data as JSON
func JSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs data as a bordered table
func Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range rows {
		table.Append(fitRow(row, len(headers)))
	}
	table.Render()
}

// fitRow pads or truncates row to n cells
func fitRow(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

// Fields prints label/value pairs, one per line, skipping empty values
func Fields(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		if p[1] != "" && len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		_, _ = labelColor.Printf("%-*s", width+1, p[0]+":")
		fmt.Printf(" %s\n", p[1])
	}
}

// Success prints a success message
func Success(format string, args ...interface{}) {
	_, _ = successColor.Printf("✓ "+format+"\n", args...)
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	_, _ = errorColor.Printf("✗ "+format+"\n", args...)
}

// Warn prints a warning message
func Warn(format string, args ...interface{}) {
	_, _ = warnColor.Printf("! "+format+"\n", args...)
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	_, _ = infoColor.Printf("→ "+format+"\n", args...)
}

// Print prints a plain message
func Print(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
