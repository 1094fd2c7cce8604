package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var changelogExtractCmd = &cobra.Command{
	Use:   "extract <version>",
	Short: "Print one release section as Markdown",
	Long: `Print the body of one changelog section in Markdown format.

The output is suitable for GitHub release notes and is written to stdout.

Examples:
  releasekit changelog extract v1.4.0    # Extract notes for version 1.4.0
  releasekit changelog extract 1.4.0     # Same (v prefix optional)
  releasekit changelog extract unreleased`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, path, err := loadProjectChangelog()
		if err != nil {
			return err
		}
		section, err := lookupSection(doc, args[0], path, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if section.Body == "" {
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), section.Body)
		return nil
	},
}

func init() {
	changelogCmd.AddCommand(changelogExtractCmd)
}
