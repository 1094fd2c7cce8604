package cli

import (
	"errors"
	"io"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	"github.com/ariel-frischer/releasekit/internal/config"
	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/git"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

// reportError prints err as a one-line summary, plus usage and remediation
// with --verbose.
func reportError(w io.Writer, err error) {
	clierrors.FprintError(w, toCLIError(err), clierrors.FormatOptions{
		Plain:   plain,
		Verbose: verbose,
	})
}

// toCLIError maps domain errors onto categorized CLI errors.
func toCLIError(err error) *clierrors.CLIError {
	if err == nil {
		return nil
	}

	var cliErr *clierrors.CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	var (
		ioErr  *release.IOError
		cfgErr *config.ValidationError
		clErr  *changelog.ValidationError
	)

	switch {
	case errors.Is(err, semver.ErrInvalidBumpKind):
		return clierrors.Wrap(err, clierrors.Input,
			"Use one of: major, minor, patch (lowercase)",
			"Or set default_bump in .releasekit/config.yml")
	case release.IsInputError(err):
		return clierrors.Wrap(err, clierrors.Input,
			"Pass a JSON array of strings, e.g. --commits '[\"feat: add x\"]'")
	case semver.IsFormatError(err), isManifestFormatError(err), errors.As(err, &clErr):
		return clierrors.Wrap(err, clierrors.Format)
	case errors.As(err, &ioErr):
		return clierrors.FileAccessFailed(ioErr.Op, ioErr.What, ioErr.Path, ioErr.Err)
	case errors.As(err, &cfgErr):
		return clierrors.ConfigInvalid(err)
	case errors.Is(err, git.ErrNoCommits):
		return clierrors.Wrap(err, clierrors.Runtime,
			"Make at least one commit, or pass commits with --commits")
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

// manifestError attaches the manifest path and its remediation to version
// and manifest format errors. Other errors are returned unchanged.
func manifestError(path string, err error) error {
	switch {
	case err == nil:
		return nil
	case semver.IsFormatError(err):
		return clierrors.InvalidVersion(path, err)
	case isManifestFormatError(err):
		return clierrors.ManifestInvalid(path, err)
	default:
		return err
	}
}

func isManifestFormatError(err error) bool {
	var unsupported *manifest.UnsupportedFormatError
	return errors.Is(err, manifest.ErrNoVersion) ||
		errors.Is(err, manifest.ErrVersionNotString) ||
		errors.As(err, &unsupported)
}
