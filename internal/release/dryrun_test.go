package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/releasekit/internal/semver"
)

func TestDryRunStore_LeavesSourcesUntouched(t *testing.T) {
	t.Parallel()

	source := NewMemoryStore("0.4.2", "# Changelog\n\n## [0.4.2] - 2026-01-01\n\n- old\n")
	dry := NewDryRunStore(source, source)

	o := &Orchestrator{Config: dry, Changelog: dry, Notes: dry, Env: dry, Clock: fixedClock}
	res, err := o.Run(Request{Bump: semver.Minor, Commits: []string{"feat: preview"}})
	require.NoError(t, err)

	assert.Equal(t, "0.5.0", res.Next.String())
	assert.Empty(t, source.Writes)
	assert.Equal(t, "0.4.2", source.Version)

	assert.Equal(t, []string{"version", "changelog", "notes", "env"}, dry.Sink.Writes)
	assert.Equal(t, "0.5.0", dry.Sink.Version)
	assert.Equal(t, res.Changelog, dry.Sink.Changelog)
	assert.Contains(t, dry.Sink.Changelog, "## [0.4.2]")
}
