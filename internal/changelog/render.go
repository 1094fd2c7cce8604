package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/releasekit/internal/commit"
)

// WriteSection writes the Markdown section for one release:
//
//	## [1.2.0] - 2026-01-15
//
//	### ✨ Features
//
//	- **api**: add endpoint
//
// Empty categories are omitted. Output depends only on entry.
func WriteSection(w io.Writer, entry ReleaseEntry) error {
	if _, err := io.WriteString(w, FormatVersionHeader(entry.Version, entry.Date)+"\n\n"); err != nil {
		return fmt.Errorf("writing version header: %w", err)
	}
	return WriteBody(w, entry.Changes)
}

// RenderSection is a convenience wrapper around WriteSection.
func RenderSection(entry ReleaseEntry) string {
	var b strings.Builder
	_ = WriteSection(&b, entry)
	return b.String()
}

// WriteBody writes the category sections without a version header.
func WriteBody(w io.Writer, c Changes) error {
	for _, cat := range Categories() {
		commits := c.For(cat)
		if len(commits) == 0 {
			continue
		}
		if err := writeCategory(w, cat, commits); err != nil {
			return fmt.Errorf("writing %s section: %w", cat, err)
		}
	}
	return nil
}

// RenderReleaseNotes renders the standalone release notes document: a
// release title, the merged PR line, then the section body.
func RenderReleaseNotes(entry ReleaseEntry, pr PullRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Release %s\n\n", entry.Version)
	if pr.Number != "" {
		fmt.Fprintf(&b, "**Merged PR**: %s (#%s)\n\n", pr.Title, pr.Number)
	} else {
		fmt.Fprintf(&b, "**Merged PR**: %s\n\n", pr.Title)
	}
	_ = WriteBody(&b, entry.Changes)

	return b.String()
}

// FormatVersionHeader formats the "## [version] - date" line.
func FormatVersionHeader(version, date string) string {
	if date == "" {
		return fmt.Sprintf("## [%s]", version)
	}
	return fmt.Sprintf("## [%s] - %s", version, date)
}

// FormatBullet formats one commit as a list item.
func FormatBullet(c commit.ParsedCommit) string {
	if c.HasScope() {
		return fmt.Sprintf("- **%s**: %s", c.Scope, c.Description)
	}
	return "- " + c.Description
}

func writeCategory(w io.Writer, cat Category, commits []commit.ParsedCommit) error {
	if _, err := io.WriteString(w, "### "+cat.Title()+"\n\n"); err != nil {
		return err
	}
	for _, c := range commits {
		if _, err := io.WriteString(w, FormatBullet(c)+"\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
