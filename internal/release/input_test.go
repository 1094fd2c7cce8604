package release

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/releasekit/internal/semver"
)

func TestParseBumpKind(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    semver.BumpKind
		wantErr bool
	}{
		"empty defaults to patch": {input: "", want: semver.Patch},
		"blank defaults to patch": {input: "  ", want: semver.Patch},
		"major":                   {input: "major", want: semver.Major},
		"minor":                   {input: "minor", want: semver.Minor},
		"patch":                   {input: "patch", want: semver.Patch},
		"unknown":                 {input: "huge", wantErr: true},
		"wrong case":              {input: "Major", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseBumpKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInputError(err))
				assert.ErrorIs(t, err, semver.ErrInvalidBumpKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommitBatch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		payload string
		want    []string
		wantErr bool
	}{
		"array":          {payload: `["feat: a", "fix: b"]`, want: []string{"feat: a", "fix: b"}},
		"empty array":    {payload: `[]`, want: []string{}},
		"empty payload":  {payload: "", want: nil},
		"multi-line msg": {payload: `["feat: a\n\nBREAKING CHANGE: b"]`, want: []string{"feat: a\n\nBREAKING CHANGE: b"}},
		"not json":       {payload: `feat: a`, wantErr: true},
		"object":         {payload: `{"commits": []}`, wantErr: true},
		"numbers":        {payload: `[1, 2]`, wantErr: true},
		"null payload":   {payload: `null`, wantErr: true},
		"null element":   {payload: `["feat: x", null]`, wantErr: true},
		"only null":      {payload: `[null]`, wantErr: true},
		"nested array":   {payload: `[["feat: x"]]`, wantErr: true},
		"string payload": {payload: `"feat: x"`, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCommitBatch(tt.payload)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInputError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadCommitBatch(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "commits.json")
		require.NoError(t, os.WriteFile(path, []byte(`["docs: readme"]`), 0o644))

		got, err := ReadCommitBatch(path, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"docs: readme"}, got)
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		got, err := ReadCommitBatch("-", strings.NewReader(`["fix: a"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"fix: a"}, got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCommitBatch(filepath.Join(t.TempDir(), "nope.json"), nil)
		require.Error(t, err)
		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "read", ioErr.Op)
	})
}
