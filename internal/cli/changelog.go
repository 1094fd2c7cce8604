package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
)

var changelogLastFlag int

var changelogCmd = &cobra.Command{
	Use:   "changelog [version]",
	Short: "View entries from the project changelog",
	Long: `View release sections from the project changelog (changelog_path).

By default, shows the 5 most recent sections. Use a version argument to
see a specific release, or use --last to control how many are shown.

Examples:
  releasekit changelog              # Show 5 most recent sections
  releasekit changelog v1.4.0       # Show the section for version 1.4.0
  releasekit changelog 1.4.0        # Same (v prefix optional)
  releasekit changelog --last 10    # Show 10 most recent sections
  releasekit changelog --plain      # Plain output (no colors/icons)`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogView(cmd, args)
	},
}

func init() {
	changelogCmd.GroupID = GroupInspect
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVarP(&changelogLastFlag, "last", "n", 5, "Number of sections to show")
}

func runChangelogView(cmd *cobra.Command, args []string) error {
	doc, path, err := loadProjectChangelog()
	if err != nil {
		return err
	}

	opts := changelog.FormatOptions{
		Plain: plain,
	}

	if len(args) == 1 {
		section, err := lookupSection(doc, args[0], path, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return changelog.FormatSection(section, cmd.OutOrStdout(), opts)
	}

	return showLastSections(doc, changelogLastFlag, cmd, opts)
}

// loadProjectChangelog parses the configured changelog file.
func loadProjectChangelog() (*changelog.Document, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	doc, err := changelog.Load(cfg.ChangelogPath)
	if err != nil {
		if changelog.IsValidationError(err) {
			return nil, "", clierrors.WrapWithMessage(err, clierrors.Format,
				fmt.Sprintf("parsing %s", cfg.ChangelogPath))
		}
		return nil, "", clierrors.FileAccessFailed("read", "changelog", cfg.ChangelogPath, err)
	}
	return doc, cfg.ChangelogPath, nil
}

// lookupSection finds version in doc, listing the available versions on stderr when missing.
func lookupSection(doc *changelog.Document, version, path string, errOut io.Writer) (*changelog.Section, error) {
	section, err := doc.GetVersion(version)
	if err == nil {
		return section, nil
	}

	var notFound *changelog.VersionNotFoundError
	if !errors.As(err, &notFound) {
		return nil, fmt.Errorf("getting version: %w", err)
	}

	if versions := doc.ListVersions(); len(versions) > 0 {
		fmt.Fprintf(errOut, "Available versions:\n")
		for _, v := range versions {
			fmt.Fprintf(errOut, "  %s\n", v)
		}
		fmt.Fprintln(errOut)
	}
	return nil, clierrors.VersionNotInChangelog(version, path)
}

func showLastSections(doc *changelog.Document, n int, cmd *cobra.Command, opts changelog.FormatOptions) error {
	sections := doc.GetLastN(n)
	if len(sections) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No changelog entries found.")
		return nil
	}

	if err := changelog.FormatSections(sections, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting sections: %w", err)
	}

	total := doc.GetVersionCount()
	if total > len(sections) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d sections shown. Use --last %d to see all)\n",
			len(sections), total, total)
	}

	return nil
}
