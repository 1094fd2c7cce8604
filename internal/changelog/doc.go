// Package changelog builds and maintains a Keep a Changelog style CHANGELOG.md
// from classified commits.
//
// This package implements:
//   - Grouping classified commits into release categories
//   - Markdown rendering of a release section and standalone release notes
//   - Merging a new section into an existing CHANGELOG.md (newest first)
//   - Parsing an existing CHANGELOG.md back into sections for the CLI viewer
//   - Terminal formatting with category colors
package changelog
