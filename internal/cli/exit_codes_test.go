package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error":          {err: nil, want: ExitSuccess},
		"exit error":         {err: &ExitError{code: ExitFailure, err: errors.New("x")}, want: ExitFailure},
		"wrapped exit error": {err: fmt.Errorf("outer: %w", &ExitError{code: 3, err: errors.New("x")}), want: 3},
		"generic error":      {err: errors.New("generic error"), want: ExitFailure},
		"cli error":          {err: clierrors.NewConfigError("bad"), want: ExitFailure},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &ExitError{code: ExitFailure, err: cause}
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, ExitFailure, err.Code())
	assert.ErrorIs(t, err, cause)
}

func TestToCLIError_Categories(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want clierrors.ErrorCategory
	}{
		"bump kind": {
			err:  &release.InputError{Message: "invalid bump type", Err: semver.ErrInvalidBumpKind},
			want: clierrors.Input,
		},
		"commit batch": {
			err:  &release.InputError{Message: "commits must be a JSON array of strings", Err: errors.New("bad")},
			want: clierrors.Input,
		},
		"version format": {
			err:  fmt.Errorf("current version: %w", &semver.FormatError{Input: "x"}),
			want: clierrors.Format,
		},
		"manifest without version": {
			err:  &release.IOError{Op: "read", What: "manifest", Err: manifest.ErrNoVersion},
			want: clierrors.Format,
		},
		"io": {
			err:  &release.IOError{Op: "write", What: "changelog", Path: "CHANGELOG.md", Err: errors.New("denied")},
			want: clierrors.IO,
		},
		"already categorized": {
			err:  clierrors.NewConfigError("x"),
			want: clierrors.Configuration,
		},
		"anything else": {
			err:  errors.New("boom"),
			want: clierrors.Runtime,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := toCLIError(tt.err)
			assert.Equal(t, tt.want, got.Category)
		})
	}

	assert.Nil(t, toCLIError(nil))
}

func TestManifestError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err          error
		wantCategory clierrors.ErrorCategory
		wantPrefix   string
	}{
		"unparsable version": {
			err:          fmt.Errorf("current version: %w", &semver.FormatError{Input: "abc"}),
			wantCategory: clierrors.Format,
			wantPrefix:   "current version in Chart.yaml is not semantic",
		},
		"missing version field": {
			err:          &release.IOError{Op: "read", What: "manifest", Err: manifest.ErrNoVersion},
			wantCategory: clierrors.Format,
			wantPrefix:   "cannot use Chart.yaml as a version source",
		},
		"non-string version": {
			err:          manifest.ErrVersionNotString,
			wantCategory: clierrors.Format,
			wantPrefix:   "cannot use Chart.yaml as a version source",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := toCLIError(manifestError("Chart.yaml", tt.err))
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.True(t, strings.HasPrefix(got.Message, tt.wantPrefix), got.Message)
			assert.NotEmpty(t, got.Remediation)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	plain := errors.New("disk full")
	assert.Same(t, plain, manifestError("Chart.yaml", plain))
	assert.NoError(t, manifestError("Chart.yaml", nil))
}
