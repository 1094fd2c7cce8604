package changelog

import "strings"

// SectionPrefix starts every release section header line.
const SectionPrefix = "## ["

const defaultProject = "this project"

// MergeOptions controls how a fresh changelog is created.
type MergeOptions struct {
	// Project is named in the preamble. Empty means "this project".
	Project string
}

// Preamble returns the header written at the top of a new changelog.
func Preamble(project string) string {
	if strings.TrimSpace(project) == "" {
		project = defaultProject
	}
	return `# Changelog

All notable changes to ` + project + ` will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.0.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`
}

// Merge places section into existing changelog content. An empty (or
// whitespace-only) changelog becomes Preamble followed by section. Otherwise
// section is inserted right before the first release header, or appended
// when the changelog has none yet. Existing sections are never modified.
func Merge(existing, section string, opts MergeOptions) string {
	if strings.TrimSpace(existing) == "" {
		return Preamble(opts.Project) + section
	}

	lines := strings.Split(existing, "\n")
	at, found := InsertionPoint(lines)
	if !found {
		at = len(lines)
	}

	merged := make([]string, 0, len(lines)+1)
	merged = append(merged, lines[:at]...)
	merged = append(merged, section)
	merged = append(merged, lines[at:]...)

	return strings.Join(merged, "\n")
}

// InsertionPoint returns the index of the first line that starts a release
// section. found is false when there is none; index 0 is a valid result.
func InsertionPoint(lines []string) (index int, found bool) {
	for i, line := range lines {
		if strings.HasPrefix(line, SectionPrefix) {
			return i, true
		}
	}
	return 0, false
}
