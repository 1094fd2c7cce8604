// Package semver implements the small slice of semantic versioning that
// releasekit needs: reading a leading MAJOR.MINOR.PATCH triple from a
// manifest's version string, bumping it by kind, and writing it back.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// BumpKind selects which version component increments.
type BumpKind string

const (
	Major BumpKind = "major"
	Minor BumpKind = "minor"
	Patch BumpKind = "patch"
)

// ErrInvalidBumpKind is returned for any bump kind other than major, minor, or patch.
var ErrInvalidBumpKind = errors.New("invalid bump kind: must be 'major', 'minor', or 'patch'")

// ParseBumpKind validates s as a bump kind.
func ParseBumpKind(s string) (BumpKind, error) {
	switch k := BumpKind(s); k {
	case Major, Minor, Patch:
		return k, nil
	default:
		return "", fmt.Errorf("%w (got %q)", ErrInvalidBumpKind, s)
	}
}

// FormatError reports a version string that does not start with X.Y.Z.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid semver %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid semver %q", e.Input)
}

var leadingTriple = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)

// Version is a MAJOR.MINOR.PATCH triple.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse reads the leading MAJOR.MINOR.PATCH of text. Anything after the
// triple (pre-release or build suffixes) is ignored.
func Parse(text string) (Version, error) {
	m := leadingTriple.FindStringSubmatch(text)
	if m == nil {
		return Version{}, &FormatError{Input: text, Reason: "expected a leading MAJOR.MINOR.PATCH"}
	}

	var parts [3]uint64
	for i := range parts {
		n, err := strconv.ParseUint(m[i+1], 10, 64)
		if err != nil {
			return Version{}, &FormatError{Input: text, Reason: "component out of range"}
		}
		parts[i] = n
	}

	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// Bump increments v in place. Lower-order components reset to zero.
// An unknown kind leaves v untouched and returns ErrInvalidBumpKind.
func (v *Version) Bump(kind BumpKind) error {
	switch kind {
	case Major:
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case Minor:
		v.Minor++
		v.Patch = 0
	case Patch:
		v.Patch++
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidBumpKind, string(kind))
	}
	return nil
}

// Next returns a bumped copy of v.
func (v Version) Next(kind BumpKind) (Version, error) {
	next := v
	if err := next.Bump(kind); err != nil {
		return v, err
	}
	return next, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// IsFormatError reports whether err is or wraps a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}
