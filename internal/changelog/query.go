package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	if len(e.AvailableVersions) == 0 {
		return fmt.Sprintf("version %q not found (changelog has no releases)", e.Version)
	}
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves a specific section from the changelog.
// Accepts both "v0.6.0" and "0.6.0" formats.
func (d *Document) GetVersion(version string) (*Section, error) {
	normalized := NormalizeVersion(version)

	for i := range d.Sections {
		if NormalizeVersion(d.Sections[i].Version) == normalized {
			return &d.Sections[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: d.ListVersions(),
	}
}

// ListVersions returns the version identifiers in file order.
func (d *Document) ListVersions() []string {
	versions := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		versions[i] = s.Version
	}
	return versions
}

// GetLastN returns the first n sections (the n most recent for a changelog
// maintained newest first). All sections are returned when n exceeds the count.
func (d *Document) GetLastN(n int) []Section {
	if n <= 0 {
		return []Section{}
	}
	if len(d.Sections) <= n {
		return d.Sections
	}
	return d.Sections[:n]
}

// GetVersionCount returns the number of sections in the changelog.
func (d *Document) GetVersionCount() int {
	return len(d.Sections)
}
