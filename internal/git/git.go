// Package git collects the commit messages that make up the next release.
// It uses go-git to find the highest semantic version tag and walk the
// history between that tag and HEAD.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// ErrNoCommits is returned when HEAD does not point at a commit yet.
var ErrNoCommits = errors.New("repository has no commits")

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// Tag is a release tag that parsed as a semantic version.
type Tag struct {
	Name    string
	Version *semver.Version
	Commit  plumbing.Hash
}

// Range is the set of commits reachable from HEAD but not from Since.
type Range struct {
	// Since is nil when the repository has no release tag yet.
	Since *Tag
	// Branch is empty in detached HEAD state.
	Branch string
	// Messages are full commit messages, oldest first.
	Messages []string
}

// CommitsSinceLatestTag opens the repository containing path and returns the
// commit messages added since the highest tag named prefix+SEMVER.
func CommitsSinceLatestTag(path, prefix string) (*Range, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return CollectSinceLatestTag(repo, prefix)
}

// CollectSinceLatestTag is CommitsSinceLatestTag for an already opened repository.
func CollectSinceLatestTag(repo *git.Repository, prefix string) (*Range, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	r := &Range{}
	if head.Name().IsBranch() {
		r.Branch = head.Name().Short()
	}

	tag, err := LatestTag(repo, prefix)
	if err != nil {
		return nil, err
	}
	r.Since = tag

	released := map[plumbing.Hash]bool{}
	if tag != nil {
		released, err = ancestors(repo, tag.Commit)
		if err != nil {
			return nil, err
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", head.Hash(), err)
	}
	defer iter.Close()

	var newestFirst []string
	err = iter.ForEach(func(c *object.Commit) error {
		if released[c.Hash] {
			return nil
		}
		newestFirst = append(newestFirst, strings.TrimRight(c.Message, "\n"))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	r.Messages = make([]string, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		r.Messages = append(r.Messages, newestFirst[i])
	}

	since := "<none>"
	if tag != nil {
		since = tag.Name
	}
	logDebug("[git] CollectSinceLatestTag: %d commits since %s on %q", len(r.Messages), since, r.Branch)
	return r, nil
}

// LatestTag returns the tag with the highest semantic version among tags
// named prefix+VERSION. Pre-release tags are ignored. It returns nil, nil
// when no tag qualifies.
func LatestTag(repo *git.Repository, prefix string) (*Tag, error) {
	tags, err := ReleaseTags(repo, prefix)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return &tags[len(tags)-1], nil
}

// ReleaseTags lists the tags named prefix+VERSION in ascending version order.
func ReleaseTags(repo *git.Repository, prefix string) ([]Tag, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer refs.Close()

	var tags []Tag
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		v, err := semver.NewVersion(strings.TrimPrefix(name, prefix))
		if err != nil || v.Prerelease() != "" {
			logDebug("[git] skipping tag %s", name)
			return nil
		}
		hash, err := peel(repo, ref.Hash())
		if err != nil {
			return fmt.Errorf("resolving tag %s: %w", name, err)
		}
		tags = append(tags, Tag{Name: name, Version: v, Commit: hash})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Version.LessThan(tags[j].Version)
	})
	return tags, nil
}

// peel resolves an annotated tag object to the commit it points at.
// Lightweight tags already reference the commit.
func peel(repo *git.Repository, hash plumbing.Hash) (plumbing.Hash, error) {
	tagObj, err := repo.TagObject(hash)
	switch {
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return hash, nil
	case err != nil:
		return plumbing.ZeroHash, err
	}
	c, err := tagObj.Commit()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return c.Hash, nil
}

func ancestors(repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("reading log from %s: %w", from, err)
	}
	defer iter.Close()

	seen := map[plumbing.Hash]bool{}
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	return seen, nil
}
