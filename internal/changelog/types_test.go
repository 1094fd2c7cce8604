package changelog

import (
	"testing"
	"time"

	"github.com/ariel-frischer/releasekit/internal/commit"
	"github.com/stretchr/testify/assert"
)

func descriptions(commits []commit.ParsedCommit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Description
	}
	return out
}

func TestGroup(t *testing.T) {
	t.Parallel()

	commits := commit.ClassifyAll([]string{
		"feat: x",
		"fix: y",
		"feat!: breaking z",
		"docs: readme",
		"fix(api): second fix",
		"plain message",
		"chore: bump\n\nBREAKING CHANGE: node 20",
	})

	got := Group(commits)

	assert.Equal(t, []string{"breaking z", "bump"}, descriptions(got.Breaking))
	assert.Equal(t, []string{"x"}, descriptions(got.Feat))
	assert.Equal(t, []string{"y", "second fix"}, descriptions(got.Fix))
	assert.Equal(t, []string{"readme", "plain message"}, descriptions(got.Other))
	assert.Equal(t, len(commits), got.Count())
}

func TestGroup_Empty(t *testing.T) {
	t.Parallel()

	got := Group(nil)
	assert.Zero(t, got.Count())
	for _, cat := range Categories() {
		assert.Empty(t, got.For(cat))
	}
}

func TestNewReleaseEntry_UsesUTCDate(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+10", 10*60*60)
	at := time.Date(2026, 3, 1, 5, 0, 0, 0, loc) // still Feb 28 in UTC

	entry := NewReleaseEntry("1.0.1", at, commit.ClassifyAll([]string{"fix: a"}))

	assert.Equal(t, "1.0.1", entry.Version)
	assert.Equal(t, "2026-02-28", entry.Date)
	assert.Len(t, entry.Changes.Fix, 1)
}

func TestCategoryTitles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cat  Category
		want string
	}{
		"breaking": {cat: CategoryBreaking, want: "⚠ BREAKING CHANGES"},
		"feat":     {cat: CategoryFeat, want: "✨ Features"},
		"fix":      {cat: CategoryFix, want: "🐛 Bug Fixes"},
		"other":    {cat: CategoryOther, want: "📝 Other Changes"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cat.Title())
		})
	}
}
