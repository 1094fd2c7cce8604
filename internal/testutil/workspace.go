// Package testutil provides test utilities and helpers for releasekit tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Workspace is a temporary project directory that the test has chdir'd into.
// Tests using it cannot run in parallel.
type Workspace struct {
	t   *testing.T
	Dir string
}

// NewWorkspace creates a temp dir, makes it the working directory for the
// rest of the test, and points the user config dir at an empty location.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".xdg"))
	t.Setenv("GITHUB_ENV", "")

	return &Workspace{t: t, Dir: dir}
}

// Path joins rel onto the workspace root.
func (w *Workspace) Path(rel string) string {
	return filepath.Join(w.Dir, rel)
}

// WriteFile writes content to rel, creating parent directories.
func (w *Workspace) WriteFile(rel, content string) string {
	w.t.Helper()

	path := w.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.t.Fatalf("creating directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		w.t.Fatalf("writing %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the content of rel, failing the test if it is missing.
func (w *Workspace) ReadFile(rel string) string {
	w.t.Helper()

	data, err := os.ReadFile(w.Path(rel))
	if err != nil {
		w.t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether rel exists.
func (w *Workspace) Exists(rel string) bool {
	_, err := os.Stat(w.Path(rel))
	return err == nil
}

// WritePackageJSON writes a minimal package.json holding version.
func (w *Workspace) WritePackageJSON(version string) string {
	return w.WriteFile("package.json", PackageJSON("demo", version))
}

// PackageJSON renders a package.json in the layout releasekit writes back.
func PackageJSON(name, version string) string {
	return fmt.Sprintf("{\n  \"name\": %q,\n  \"version\": %q,\n  \"private\": true\n}\n", name, version)
}
