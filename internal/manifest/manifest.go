// Package manifest reads and rewrites the "version" field of a project
// manifest (package.json, Chart.yaml, ...) without disturbing the rest of
// the document.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoVersion is returned when the manifest has no top-level version field.
	ErrNoVersion = errors.New("manifest has no top-level \"version\" field")
	// ErrVersionNotString is returned when the version field is not a string.
	ErrVersionNotString = errors.New("manifest \"version\" field is not a string")
)

// Format identifies the manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// UnsupportedFormatError is returned by Open for unknown file extensions.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported manifest format for %s (expected .json, .yml or .yaml)", e.Path)
}

// codec extracts and replaces the version in raw manifest bytes.
type codec interface {
	version(data []byte) (string, error)
	setVersion(data []byte, version string) ([]byte, error)
}

// File is a manifest on disk.
type File struct {
	Path   string
	Format Format
	codec  codec
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", &UnsupportedFormatError{Path: path}
	}
}

// Open prepares path for reading and writing. The file is not read until
// ReadVersion is called.
func Open(path string) (*File, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path, Format: format}
	switch format {
	case FormatJSON:
		f.codec = jsonCodec{}
	case FormatYAML:
		f.codec = yamlCodec{}
	}
	return f, nil
}

// ReadVersion returns the raw version string stored in the manifest.
func (f *File) ReadVersion() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Path, err)
	}

	v, err := f.codec.version(data)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	return v, nil
}

// WriteVersion replaces the version field and writes the manifest back,
// keeping the file's permissions.
func (f *File) WriteVersion(version string) error {
	info, err := os.Stat(f.Path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.Path, err)
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.Path, err)
	}

	updated, err := f.codec.setVersion(data, version)
	if err != nil {
		return fmt.Errorf("updating %s: %w", f.Path, err)
	}

	if err := os.WriteFile(f.Path, updated, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	return nil
}
