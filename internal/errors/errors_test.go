package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryPredicates(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          error
		wantConfig   bool
		wantArgument bool
	}{
		"nil": {
			err: nil,
		},
		"plain error": {
			err: stderrors.New("boom"),
		},
		"config error": {
			err:        NewConfigError("bad"),
			wantConfig: true,
		},
		"wrapped config error": {
			err:        fmt.Errorf("deriving: %w", DescriptionMarkersNotFound("a", "b", "a")),
			wantConfig: true,
		},
		"argument error": {
			err:          NewArgumentError("bad flag"),
			wantArgument: true,
		},
		"wrapped argument error": {
			err:          fmt.Errorf("notes: %w", InvalidOutputFormat("--format", "rst", []string{"html"})),
			wantArgument: true,
		},
		"runtime error": {
			err: NewRuntimeError("disk full"),
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantConfig, IsConfigError(tt.err))
			assert.Equal(t, tt.wantArgument, IsArgumentError(tt.err))
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("permission denied")
	err := ReadmeNotReadable("README.md", cause)

	require.NotNil(t, err)
	assert.Equal(t, Configuration, err.Category)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "README.md")
	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
}

func TestNoChangelogEntry(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		available []string
		contains  string
	}{
		"empty store": {
			available: nil,
			contains:  "available: none",
		},
		"other versions": {
			available: []string{"1.1.0", "1.0.0"},
			contains:  "available: 1.1.0, 1.0.0",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := NoChangelogEntry("2.0.0", tt.available)
			assert.Equal(t, Configuration, err.Category)
			assert.Contains(t, err.Error(), `"2.0.0"`)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	err := NewArgumentErrorWithUsage("an output file is required", "pluginmeta watch --out <file>", "Pass --out")
	got := FormatErrorPlain(err)

	assert.Contains(t, got, "Error [Argument Error]: an output file is required")
	assert.Contains(t, got, "Usage: pluginmeta watch --out <file>")
	assert.Contains(t, got, "To fix this:")
	assert.Contains(t, got, "  • Pass --out")
	assert.Empty(t, FormatErrorPlain(nil))
}

func TestFprintAny(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      error
		contains string
	}{
		"cli error in chain": {
			err:      fmt.Errorf("outer: %w", NewConfigError("markers missing")),
			contains: "markers missing",
		},
		"plain error": {
			err:      stderrors.New("disk full"),
			contains: "disk full",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			FprintAny(&buf, tt.err)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}
}

func TestErrorCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Argument Error", Argument.String())
	assert.Equal(t, "Configuration Error", Configuration.String())
	assert.Equal(t, "Runtime Error", Runtime.String())
	assert.Equal(t, "Error", ErrorCategory(42).String())
}
