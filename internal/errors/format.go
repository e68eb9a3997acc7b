package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// palette styles the parts of a formatted error. color.SprintFunc drops the
// escapes by itself when color.NoColor is set (not a terminal, NO_COLOR).
type palette struct {
	label, message, category, usage, fix, bullet func(a ...interface{}) string
}

var (
	colored = palette{
		label:    color.New(color.FgRed, color.Bold).SprintFunc(),
		message:  color.New(color.FgRed).SprintFunc(),
		category: color.New(color.FgYellow).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
	}
	plain = palette{
		label: fmt.Sprint, message: fmt.Sprint, category: fmt.Sprint,
		usage: fmt.Sprint, fix: fmt.Sprint, bullet: fmt.Sprint,
	}
)

// FormatError renders err for the terminal:
//
//	Error [Configuration Error]: plugin description section not found in README.md
//
//	To fix this:
//	  • Add the start marker ...
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return colored.format(err)
}

// FormatErrorPlain is FormatError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return plain.format(err)
}

func (p palette) format(err *CLIError) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", p.usage("Usage:"), p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError writes the formatted err to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FprintAny prints err to w. CLIErrors anywhere in the chain get the
// structured layout; anything else is shown as a Runtime error.
func FprintAny(w io.Writer, err error) {
	if err == nil {
		return
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		FprintError(w, cliErr)
		return
	}
	FprintError(w, &CLIError{Category: Runtime, Message: err.Error()})
}
