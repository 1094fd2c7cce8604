package release

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

func TestFileChangelog(t *testing.T) {
	t.Parallel()

	t.Run("missing file reads as empty", func(t *testing.T) {
		t.Parallel()
		store := FileChangelog{Path: filepath.Join(t.TempDir(), "CHANGELOG.md")}
		got, err := store.Read()
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("write then read", func(t *testing.T) {
		t.Parallel()
		store := FileChangelog{Path: filepath.Join(t.TempDir(), "CHANGELOG.md")}
		require.NoError(t, store.Write("# Changelog\n"))
		got, err := store.Read()
		require.NoError(t, err)
		assert.Equal(t, "# Changelog\n", got)
	})

	t.Run("directory is an error", func(t *testing.T) {
		t.Parallel()
		store := FileChangelog{Path: t.TempDir()}
		_, err := store.Read()
		assert.Error(t, err)
	})
}

func TestFileNotes_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "RELEASE_NOTES.md")
	notes := FileNotes{Path: path}
	require.NoError(t, notes.WriteNotes("first\n"))
	require.NoError(t, notes.WriteNotes("second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestFileEnv(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		withCI     bool
		ciExisting string
		wantCI     string
	}{
		"local only": {},
		"ci file created": {
			withCI: true,
			wantCI: "NEW_VERSION=1.2.0\n",
		},
		"ci file appended": {
			withCI:     true,
			ciExisting: "OTHER=1\n",
			wantCI:     "OTHER=1\nNEW_VERSION=1.2.0\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			local := filepath.Join(dir, ".env")
			require.NoError(t, os.WriteFile(local, []byte("STALE=1\n"), 0o644))

			env := FileEnv{LocalPath: local}
			if tt.withCI {
				env.CIPath = filepath.Join(dir, "github_env")
				if tt.ciExisting != "" {
					require.NoError(t, os.WriteFile(env.CIPath, []byte(tt.ciExisting), 0o644))
				}
			}

			require.NoError(t, env.WriteEnv("NEW_VERSION", "1.2.0"))

			data, err := os.ReadFile(local)
			require.NoError(t, err)
			assert.Equal(t, "NEW_VERSION=1.2.0\n", string(data))

			if tt.withCI {
				ci, err := os.ReadFile(env.CIPath)
				require.NoError(t, err)
				assert.Equal(t, tt.wantCI, string(ci))
			}
		})
	}
}

func TestFileStores_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pkg := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(pkg, []byte("{\n  \"name\": \"demo\",\n  \"version\": \"1.0.0\"\n}\n"), 0o644))

	mf, err := manifest.Open(pkg)
	require.NoError(t, err)

	o := &Orchestrator{
		Config:    mf,
		Changelog: FileChangelog{Path: filepath.Join(dir, "CHANGELOG.md")},
		Notes:     FileNotes{Path: filepath.Join(dir, "RELEASE_NOTES.md")},
		Env:       FileEnv{LocalPath: filepath.Join(dir, ".env")},
		Clock:     fixedClock,
		Project:   "demo",
	}

	res, err := o.Run(Request{Bump: semver.Minor, Commits: []string{"feat: x"}, PRTitle: "Merged changes"})
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", res.Next.String())

	data, err := os.ReadFile(pkg)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"demo\",\n  \"version\": \"1.1.0\"\n}\n", string(data))

	cl, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Equal(t, res.Changelog, string(cl))

	env, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "NEW_VERSION=1.1.0\n", string(env))
}

func TestIOError_CarriesPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	missing := filepath.Join(dir, "nope", "package.json")
	o := &Orchestrator{
		Config:    textVersionFile{path: missing},
		Changelog: FileChangelog{Path: filepath.Join(dir, "CHANGELOG.md")},
		Notes:     FileNotes{Path: filepath.Join(dir, "RELEASE_NOTES.md")},
		Env:       FileEnv{LocalPath: filepath.Join(dir, ".env")},
	}

	_, err := o.Run(Request{Bump: semver.Patch})
	require.Error(t, err)

	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "read", ioe.Op)
	assert.Equal(t, "manifest", ioe.What)
	assert.Equal(t, missing, ioe.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// textVersionFile keeps a bare version string in a file.
type textVersionFile struct{ path string }

func (f textVersionFile) ReadVersion() (string, error) {
	data, err := os.ReadFile(f.path)
	return string(data), err
}

func (f textVersionFile) WriteVersion(v string) error {
	return os.WriteFile(f.path, []byte(v), 0o644)
}
