// Package release runs the release preparation pipeline: load the current
// version, bump it, classify commits, render the changelog and release notes,
// and persist everything through injected collaborators.
package release

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	"github.com/ariel-frischer/releasekit/internal/commit"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

// DefaultEnvVar is the variable name used when Orchestrator.EnvVar is empty.
const DefaultEnvVar = "NEW_VERSION"

// Stage identifies one step of Run.
type Stage int

const (
	StageLoad Stage = iota
	StageBump
	StageClassify
	StageRender
	StagePersist
)

// Stages returns every stage in execution order.
func Stages() []Stage {
	return []Stage{StageLoad, StageBump, StageClassify, StageRender, StagePersist}
}

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageBump:
		return "bump"
	case StageClassify:
		return "classify"
	case StageRender:
		return "render"
	case StagePersist:
		return "persist"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Description is a human-readable label for progress output.
func (s Stage) Description() string {
	switch s {
	case StageLoad:
		return "Reading current version"
	case StageBump:
		return "Bumping version"
	case StageClassify:
		return "Classifying commits"
	case StageRender:
		return "Rendering changelog and release notes"
	case StagePersist:
		return "Writing release files"
	default:
		return s.String()
	}
}

// StageTracker observes stage boundaries. End receives the stage's error, if any.
type StageTracker interface {
	Begin(stage Stage)
	End(stage Stage, err error)
}

// Request is the input of one release run.
type Request struct {
	Bump     semver.BumpKind
	Commits  []string
	PRTitle  string
	PRNumber string
}

// Result describes a completed run.
type Result struct {
	Previous  semver.Version
	Next      semver.Version
	Commits   []commit.ParsedCommit
	Entry     changelog.ReleaseEntry
	Section   string
	Changelog string
	Notes     string
}

// Orchestrator wires the pure components to the storage collaborators.
// Config, Changelog, Notes, and Env are required; the rest are optional.
type Orchestrator struct {
	Config    ConfigStore
	Changelog ChangelogStore
	Notes     NotesWriter
	Env       EnvWriter

	Clock   func() time.Time
	Logger  *zap.Logger
	Tracker StageTracker

	// Project is named in the preamble of a newly created changelog.
	Project string
	// EnvVar is the key written through Env. Defaults to DefaultEnvVar.
	EnvVar string
}

// Run executes the pipeline. The first failure aborts the run; writes done
// before it are not rolled back.
func (o *Orchestrator) Run(req Request) (*Result, error) {
	log := o.logger()
	res := &Result{}

	var existing string
	err := o.stage(StageLoad, func() error {
		raw, err := o.Config.ReadVersion()
		if err != nil {
			return readError("manifest", err)
		}
		v, err := semver.Parse(raw)
		if err != nil {
			return fmt.Errorf("current version: %w", err)
		}
		res.Previous = v

		existing, err = o.Changelog.Read()
		if err != nil {
			return readError("changelog", err)
		}
		log.Debug("loaded release state",
			zap.String("version", v.String()),
			zap.Int("changelog_bytes", len(existing)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(StageBump, func() error {
		next := res.Previous
		if err := next.Bump(req.Bump); err != nil {
			return &InputError{Message: "invalid bump type", Err: err}
		}
		res.Next = next
		log.Debug("bumped version",
			zap.String("kind", string(req.Bump)),
			zap.String("from", res.Previous.String()),
			zap.String("to", next.String()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(StageClassify, func() error {
		res.Commits = commit.ClassifyAll(req.Commits)
		res.Entry = changelog.NewReleaseEntry(res.Next.String(), o.now(), res.Commits)
		log.Debug("classified commits",
			zap.Int("total", res.Entry.Changes.Count()),
			zap.Int("breaking", len(res.Entry.Changes.Breaking)),
			zap.Int("feat", len(res.Entry.Changes.Feat)),
			zap.Int("fix", len(res.Entry.Changes.Fix)),
			zap.Int("other", len(res.Entry.Changes.Other)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(StageRender, func() error {
		res.Section = changelog.RenderSection(res.Entry)
		res.Changelog = changelog.Merge(existing, res.Section, changelog.MergeOptions{Project: o.Project})
		res.Notes = changelog.RenderReleaseNotes(res.Entry, changelog.PullRequest{
			Title:  req.PRTitle,
			Number: req.PRNumber,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(StagePersist, func() error {
		version := res.Next.String()
		if err := o.Config.WriteVersion(version); err != nil {
			return writeError("manifest", err)
		}
		if err := o.Changelog.Write(res.Changelog); err != nil {
			return writeError("changelog", err)
		}
		if err := o.Notes.WriteNotes(res.Notes); err != nil {
			return writeError("release notes", err)
		}
		if err := o.Env.WriteEnv(o.envVar(), version); err != nil {
			return writeError("env file", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("release prepared",
		zap.String("previous", res.Previous.String()),
		zap.String("next", res.Next.String()),
		zap.Int("commits", len(res.Commits)))
	return res, nil
}

func (o *Orchestrator) stage(s Stage, fn func() error) error {
	if o.Tracker != nil {
		o.Tracker.Begin(s)
	}
	err := fn()
	if o.Tracker != nil {
		o.Tracker.End(s, err)
	}
	if err != nil {
		o.logger().Debug("stage failed", zap.Stringer("stage", s), zap.Error(err))
	}
	return err
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Orchestrator) now() time.Time {
	if o.Clock == nil {
		return time.Now()
	}
	return o.Clock()
}

func (o *Orchestrator) envVar() string {
	if o.EnvVar == "" {
		return DefaultEnvVar
	}
	return o.EnvVar
}
