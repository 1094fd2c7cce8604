package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[ErrorCategory]string{
		Input:             "Input Error",
		Format:            "Format Error",
		IO:                "IO Error",
		Configuration:     "Configuration Error",
		Runtime:           "Runtime Error",
		ErrorCategory(99): "Error",
	}
	for category, want := range tests {
		assert.Equal(t, want, category.String())
	}
}

func TestFormatWithOptions(t *testing.T) {
	t.Parallel()

	err := &CLIError{
		Category:    Input,
		Message:     "bad flag",
		Usage:       "releasekit prepare --bump-type minor",
		Remediation: []string{"do this", "or that"},
	}

	tests := map[string]struct {
		opts FormatOptions
		want string
	}{
		"summary only": {
			opts: FormatOptions{Plain: true},
			want: "Error [Input Error]: bad flag\n",
		},
		"verbose": {
			opts: FormatOptions{Plain: true, Verbose: true},
			want: "Error [Input Error]: bad flag\n" +
				"\nUsage: releasekit prepare --bump-type minor\n" +
				"\nTo fix this:\n  • do this\n  • or that\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatWithOptions(err, tt.opts))
		})
	}

	assert.Empty(t, FormatWithOptions(nil, FormatOptions{}))
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()

	cause := &fs.PathError{Op: "open", Path: "CHANGELOG.md", Err: fs.ErrPermission}
	wrapped := FileAccessFailed("write", "changelog", "CHANGELOG.md", cause)

	assert.Equal(t, IO, wrapped.Category)
	assert.Contains(t, wrapped.Message, "failed to write changelog CHANGELOG.md")
	assert.True(t, stderrors.Is(wrapped, fs.ErrPermission))
	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
}

func TestMessages(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err      *CLIError
		category ErrorCategory
		contains string
	}{
		"bump kind":       {err: InvalidBumpKind("huge", nil), category: Input, contains: `"huge"`},
		"commit batch":    {err: MalformedCommitBatch(stderrors.New("unexpected end")), category: Input, contains: "invalid commit batch"},
		"conflict":        {err: ConflictingCommitSources(), category: Input, contains: "mutually exclusive"},
		"version":         {err: InvalidVersion("package.json", stderrors.New("x")), category: Format, contains: "package.json"},
		"manifest":        {err: ManifestInvalid("Chart.yaml", stderrors.New("x")), category: Format, contains: "Chart.yaml"},
		"config":          {err: ConfigInvalid(stderrors.New("x")), category: Configuration, contains: "invalid configuration"},
		"git":             {err: GitCollectionFailed(".", stderrors.New("x")), category: Runtime, contains: "collecting commits"},
		"missing version": {err: VersionNotInChangelog("9.9.9", "CHANGELOG.md"), category: Input, contains: "9.9.9"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Contains(t, tt.err.Message, tt.contains)
			assert.NotEmpty(t, tt.err.Remediation)
		})
	}
}
