package changelog

import (
	"time"

	"github.com/ariel-frischer/releasekit/internal/commit"
)

// DateLayout is the calendar date format used in section headers.
const DateLayout = "2006-01-02"

// Category is a release-notes bucket.
type Category string

const (
	CategoryBreaking Category = "breaking"
	CategoryFeat     Category = "feat"
	CategoryFix      Category = "fix"
	CategoryOther    Category = "other"
)

// Categories returns all categories in rendering order.
func Categories() []Category {
	return []Category{CategoryBreaking, CategoryFeat, CategoryFix, CategoryOther}
}

// Title returns the section heading text for the category.
func (c Category) Title() string {
	switch c {
	case CategoryBreaking:
		return "⚠ BREAKING CHANGES"
	case CategoryFeat:
		return "✨ Features"
	case CategoryFix:
		return "🐛 Bug Fixes"
	default:
		return "📝 Other Changes"
	}
}

// Changes groups the commits of one release by category.
// Every commit appears in exactly one slice; order within a slice follows input order.
type Changes struct {
	Breaking []commit.ParsedCommit `yaml:"breaking,omitempty"`
	Feat     []commit.ParsedCommit `yaml:"feat,omitempty"`
	Fix      []commit.ParsedCommit `yaml:"fix,omitempty"`
	Other    []commit.ParsedCommit `yaml:"other,omitempty"`
}

// ReleaseEntry is one release's worth of changelog content.
type ReleaseEntry struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date"`
	Changes Changes `yaml:"changes"`
}

// PullRequest identifies the merged PR a release was cut from.
type PullRequest struct {
	Title  string
	Number string
}

// Group buckets commits. Breaking commits go to CategoryBreaking regardless
// of type; the rest are split into feat, fix, and everything else.
func Group(commits []commit.ParsedCommit) Changes {
	var c Changes
	for _, pc := range commits {
		switch {
		case pc.Breaking:
			c.Breaking = append(c.Breaking, pc)
		case pc.Type == "feat":
			c.Feat = append(c.Feat, pc)
		case pc.Type == "fix":
			c.Fix = append(c.Fix, pc)
		default:
			c.Other = append(c.Other, pc)
		}
	}
	return c
}

// NewReleaseEntry groups commits and stamps the UTC calendar date of at.
func NewReleaseEntry(version string, at time.Time, commits []commit.ParsedCommit) ReleaseEntry {
	return ReleaseEntry{
		Version: version,
		Date:    at.UTC().Format(DateLayout),
		Changes: Group(commits),
	}
}

// For returns the commits filed under cat.
func (c Changes) For(cat Category) []commit.ParsedCommit {
	switch cat {
	case CategoryBreaking:
		return c.Breaking
	case CategoryFeat:
		return c.Feat
	case CategoryFix:
		return c.Fix
	case CategoryOther:
		return c.Other
	default:
		return nil
	}
}

// Count returns the total number of commits across all categories.
func (c Changes) Count() int {
	return len(c.Breaking) + len(c.Feat) + len(c.Fix) + len(c.Other)
}
