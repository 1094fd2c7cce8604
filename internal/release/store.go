package release

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ConfigStore holds the project's current version string.
type ConfigStore interface {
	ReadVersion() (string, error)
	WriteVersion(version string) error
}

// ChangelogStore holds the full changelog document.
type ChangelogStore interface {
	Read() (string, error)
	Write(content string) error
}

// NotesWriter receives the release notes for the current release.
type NotesWriter interface {
	WriteNotes(content string) error
}

// EnvWriter publishes a KEY=value pair to downstream steps.
type EnvWriter interface {
	WriteEnv(key, value string) error
}

const fileMode = 0o644

// FileChangelog stores the changelog at Path. A missing file reads as empty.
type FileChangelog struct {
	Path string
}

func (f FileChangelog) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (f FileChangelog) Write(content string) error {
	return os.WriteFile(f.Path, []byte(content), fileMode)
}

// FileNotes overwrites the release notes file at Path on every write.
type FileNotes struct {
	Path string
}

func (f FileNotes) WriteNotes(content string) error {
	return os.WriteFile(f.Path, []byte(content), fileMode)
}

// FileEnv writes KEY=value lines. LocalPath is overwritten with the single
// line; CIPath, when set, is appended to so earlier CI steps' entries survive.
type FileEnv struct {
	LocalPath string
	CIPath    string
}

func (f FileEnv) WriteEnv(key, value string) error {
	line := FormatEnvLine(key, value)

	if f.LocalPath != "" {
		if err := os.WriteFile(f.LocalPath, []byte(line), fileMode); err != nil {
			return err
		}
	}

	if f.CIPath == "" {
		return nil
	}
	file, err := os.OpenFile(f.CIPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// FormatEnvLine returns "KEY=value\n".
func FormatEnvLine(key, value string) string {
	return fmt.Sprintf("%s=%s\n", key, value)
}
