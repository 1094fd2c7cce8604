package errors

import "fmt"

// Common error messages for the releasekit CLI.
// These templates ensure consistent, actionable error messages.

// InvalidBumpKind creates an error for an unknown --bump-type value.
func InvalidBumpKind(provided string, cause error) *CLIError {
	return &CLIError{
		Category: Input,
		Message:  fmt.Sprintf("invalid bump type %q: must be 'major', 'minor', or 'patch'", provided),
		Usage:    "releasekit prepare --bump-type <major|minor|patch>",
		Remediation: []string{
			"Use one of: major, minor, patch (lowercase)",
			"Or set default_bump in .releasekit/config.yml",
		},
		Err: cause,
	}
}

// MalformedCommitBatch creates an error for a commit batch that is not a JSON string array.
func MalformedCommitBatch(cause error) *CLIError {
	return WrapWithMessage(cause, Input,
		"invalid commit batch",
		"Pass a JSON array of strings, e.g. --commits '[\"feat: add x\", \"fix: y\"]'",
		"Or use --from-git to collect commits since the latest release tag",
	)
}

// ConflictingCommitSources creates an error when more than one commit source is given.
func ConflictingCommitSources() *CLIError {
	return NewInputErrorWithUsage(
		"--commits, --commits-file, and --from-git are mutually exclusive",
		"releasekit prepare [--commits JSON | --commits-file PATH | --from-git]",
		"Choose exactly one way to supply commit messages",
	)
}

// InvalidVersion creates an error for a manifest version that is not MAJOR.MINOR.PATCH.
func InvalidVersion(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Format,
		fmt.Sprintf("current version in %s is not semantic", path),
		"The version field must start with MAJOR.MINOR.PATCH (e.g. \"1.4.0\")",
		fmt.Sprintf("Fix the \"version\" field in %s and rerun", path),
	)
}

// ManifestInvalid creates an error for a manifest without a usable version field.
func ManifestInvalid(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Format,
		fmt.Sprintf("cannot use %s as a version source", path),
		"Add a top-level string field: \"version\": \"0.1.0\"",
		"Or point manifest_path at another file in .releasekit/config.yml",
	)
}

// FileAccessFailed creates an error for a failed read or write of a release file.
func FileAccessFailed(op, what, path string, cause error) *CLIError {
	target := what
	if path != "" {
		target = fmt.Sprintf("%s %s", what, path)
	}
	return WrapWithMessage(cause, IO,
		fmt.Sprintf("failed to %s %s", op, target),
		"Check that the file exists and is writable",
		"Paths are configured in .releasekit/config.yml (see 'releasekit config show')",
	)
}

// ConfigInvalid creates an error for a configuration file that failed to load.
func ConfigInvalid(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration,
		"invalid configuration",
		"Check .releasekit/config.yml and ~/.config/releasekit/config.yml",
		"Run 'releasekit config show' to see the effective values",
	)
}

// GitCollectionFailed creates an error when commits cannot be read from git.
func GitCollectionFailed(repoPath string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("collecting commits from %s", repoPath),
		"Make sure --repo points inside a git repository with at least one commit",
		"Or pass commits explicitly with --commits",
	)
}

// VersionNotInChangelog creates an error when a changelog section is missing.
func VersionNotInChangelog(version, path string) *CLIError {
	return NewInputError(
		fmt.Sprintf("version %s not found in %s", version, path),
		"List available versions with: releasekit changelog --last 10",
	)
}
