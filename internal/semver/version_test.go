package semver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Version
		wantErr bool
	}{
		"plain triple":         {input: "1.2.3", want: Version{1, 2, 3}},
		"zero version":         {input: "0.0.0", want: Version{0, 0, 0}},
		"prerelease suffix":    {input: "2.0.0-rc.1", want: Version{2, 0, 0}},
		"build metadata":       {input: "3.4.5+sha.abc", want: Version{3, 4, 5}},
		"multi digit":          {input: "10.20.300", want: Version{10, 20, 300}},
		"leading v rejected":   {input: "v1.2.3", wantErr: true},
		"missing patch":        {input: "1.2", wantErr: true},
		"empty":                {input: "", wantErr: true},
		"garbage":              {input: "latest", wantErr: true},
		"component overflow":   {input: "99999999999999999999.0.0", wantErr: true},
		"leading whitespace":   {input: " 1.2.3", wantErr: true},
		"trailing text no sep": {input: "1.2.3beta", want: Version{1, 2, 3}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsFormatError(err), "expected FormatError, got %T", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0.0.1", "1.2.3", "1.0.0-alpha", "42.7.19+build.5"} {
		v, err := Parse(input)
		require.NoError(t, err)

		again, err := Parse(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, again, "round trip of %q", input)
	}

	v, err := Parse("1.2.3-rc.4")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())
}

func TestBump(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		kind BumpKind
		want string
	}{
		"patch": {kind: Patch, want: "1.2.4"},
		"minor": {kind: Minor, want: "1.3.0"},
		"major": {kind: Major, want: "2.0.0"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v := Version{Major: 1, Minor: 2, Patch: 3}
			require.NoError(t, v.Bump(tt.kind))
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestBump_UnknownKindLeavesVersion(t *testing.T) {
	t.Parallel()

	v := Version{Major: 1, Minor: 2, Patch: 3}
	err := v.Bump(BumpKind("huge"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBumpKind))
	assert.Equal(t, Version{1, 2, 3}, v)
}

func TestNext_DoesNotMutate(t *testing.T) {
	t.Parallel()

	v := Version{Major: 0, Minor: 9, Patch: 9}
	next, err := v.Next(Minor)

	require.NoError(t, err)
	assert.Equal(t, "0.10.0", next.String())
	assert.Equal(t, "0.9.9", v.String())
}

func TestParseBumpKind(t *testing.T) {
	t.Parallel()

	for _, k := range []BumpKind{Major, Minor, Patch} {
		got, err := ParseBumpKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	for _, bad := range []string{"", "Major", "build", "prerelease"} {
		_, err := ParseBumpKind(bad)
		assert.ErrorIs(t, err, ErrInvalidBumpKind, "input %q", bad)
	}
}
