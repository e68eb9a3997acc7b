// Package output provides terminal output formatting utilities for the pluginmeta CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

// Success prints a status line with a green checkmark.
func Success(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// Failure prints a status line with a red cross.
func Failure(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// Warning prints a status line with a yellow exclamation mark.
func Warning(out io.Writer, message string) {
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// Skipped prints a status line for something that was not done.
func Skipped(out io.Writer, message string) {
	fmt.Fprintf(out, "- %s\n", message)
}

// Path highlights a file path inside a message.
func Path(p string) string {
	return cyan(p)
}
