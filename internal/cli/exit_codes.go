package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/poratu/pluginmeta/internal/errors"
)

// Exit codes for the pluginmeta CLI.
// Build scripts branch on these to tell bad project setup from bad flags.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure (I/O, watcher, drift detected)
	ExitFailure = 1

	// ExitConfigError indicates missing markers, a missing changelog entry or
	// an invalid configuration
	ExitConfigError = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3
)

// ExitError carries an exit code for a failure that has already been
// reported to the user.
type ExitError struct {
	Code int
}

// NewExitError returns an ExitError for code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// exitCodeFor maps err to a process exit code.
func exitCodeFor(err error) int {
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.IsConfigError(err):
		return ExitConfigError
	case errors.IsArgumentError(err):
		return ExitInvalidArguments
	default:
		return ExitFailure
	}
}

// isSilent reports whether err was already reported by the command.
func isSilent(err error) bool {
	var exitErr *ExitError
	return stderrors.As(err, &exitErr)
}

// maxArgs is cobra.MaximumNArgs reporting an Argument error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return errors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
		}
		return nil
	}
}

// noArgs is cobra.NoArgs reporting an Argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return errors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	}
	return nil
}
