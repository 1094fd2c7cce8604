package changelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSection = "## [1.1.0] - 2026-01-15\n\n### ✨ Features\n\n- x\n\n"

func TestMerge_EmptyCreatesPreamble(t *testing.T) {
	t.Parallel()

	for name, existing := range map[string]string{
		"empty":           "",
		"whitespace only": "  \n\t\n",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out := Merge(existing, sampleSection, MergeOptions{})

			assert.True(t, strings.HasPrefix(out, "# Changelog\n\n"))
			assert.Contains(t, out, "All notable changes to this project will be documented in this file.")
			assert.Contains(t, out, "[Keep a Changelog](https://keepachangelog.com/en/1.0.0/)")
			assert.True(t, strings.HasSuffix(out, "\n\n"+sampleSection))
			assert.Equal(t, Preamble("")+sampleSection, out)
		})
	}
}

func TestMerge_ProjectNameInPreamble(t *testing.T) {
	t.Parallel()

	out := Merge("", sampleSection, MergeOptions{Project: "acme-web"})
	assert.Contains(t, out, "All notable changes to acme-web will be documented")
}

func TestMerge_InsertsBeforeFirstSection(t *testing.T) {
	t.Parallel()

	existing := Preamble("") + "## [1.0.0] - 2026-01-01\n\n### 🐛 Bug Fixes\n\n- old\n"

	out := Merge(existing, sampleSection, MergeOptions{})

	newIdx := strings.Index(out, "## [1.1.0]")
	oldIdx := strings.Index(out, "## [1.0.0]")
	require.GreaterOrEqual(t, newIdx, 0)
	require.GreaterOrEqual(t, oldIdx, 0)
	assert.Less(t, newIdx, oldIdx)
	assert.True(t, strings.HasPrefix(out, "# Changelog"), "preamble must stay on top")
	assert.Contains(t, out, "- old")
}

func TestMerge_SectionOnFirstLineInsertsAtTop(t *testing.T) {
	t.Parallel()

	existing := "## [1.0.0] - 2026-01-01\n\n- old\n"

	out := Merge(existing, sampleSection, MergeOptions{})

	assert.True(t, strings.HasPrefix(out, "## [1.1.0]"), "got:\n%s", out)
	assert.Less(t, strings.Index(out, "## [1.1.0]"), strings.Index(out, "## [1.0.0]"))
}

func TestMerge_NoSectionAppends(t *testing.T) {
	t.Parallel()

	existing := "# Changelog\n\nNothing released yet."

	out := Merge(existing, sampleSection, MergeOptions{})

	assert.Equal(t, existing+"\n"+sampleSection, out)
}

func TestMerge_RepeatedMergesPrepend(t *testing.T) {
	t.Parallel()

	doc := ""
	for _, v := range []string{"1.0.0", "1.0.1", "1.1.0"} {
		section := RenderSection(entryFor(v, "2026-01-15", "fix: in "+v))
		doc = Merge(doc, section, MergeOptions{})
	}

	parsed, err := Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.0", "1.0.1", "1.0.0"}, parsed.ListVersions())
	for _, v := range []string{"1.0.0", "1.0.1", "1.1.0"} {
		assert.Contains(t, doc, "- in "+v)
	}
}

func TestInsertionPoint(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		lines     []string
		wantIndex int
		wantFound bool
	}{
		"first line":   {lines: []string{"## [1.0.0]", "x"}, wantIndex: 0, wantFound: true},
		"after header": {lines: []string{"# Changelog", "", "## [1.0.0] - d"}, wantIndex: 2, wantFound: true},
		"not found":    {lines: []string{"# Changelog", "## Notes"}, wantIndex: 0, wantFound: false},
		"empty":        {lines: nil, wantIndex: 0, wantFound: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			idx, found := InsertionPoint(tt.lines)
			assert.Equal(t, tt.wantIndex, idx)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}
