package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

var nextBumpType string

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next version without writing anything",
	Long: `Print the version the next release would get.

The current version is read from the manifest (manifest_path) and bumped by
--bump-type (default from config). Nothing is written.`,
	Example: `  releasekit next
  releasekit next --bump-type minor
  NEXT=$(releasekit next -b major)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		kind, err := resolveBumpKind(cmd, nextBumpType, cfg)
		if err != nil {
			return err
		}

		mf, err := manifest.Open(cfg.ManifestPath)
		if err != nil {
			return manifestError(cfg.ManifestPath, err)
		}
		raw, err := mf.ReadVersion()
		if err != nil {
			return manifestError(cfg.ManifestPath,
				&release.IOError{Op: "read", What: "manifest", Path: cfg.ManifestPath, Err: err})
		}
		current, err := semver.Parse(raw)
		if err != nil {
			return manifestError(cfg.ManifestPath, err)
		}
		next, err := current.Next(kind)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	nextCmd.GroupID = GroupRelease
	rootCmd.AddCommand(nextCmd)

	nextCmd.Flags().StringVarP(&nextBumpType, "bump-type", "b", "", "Version bump: major, minor, or patch (default from config)")
}
