package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	"github.com/ariel-frischer/releasekit/internal/commit"
	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/release"
)

var (
	classifyCommits string
	classifyOutput  string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [message...]",
	Short: "Classify commit messages the way a release would",
	Long: `Parse commit messages as conventional commits and show how they would be
grouped in the changelog: breaking changes, features, bug fixes, and other.

Messages come from the arguments, or from --commits as a JSON array.`,
	Example: `  releasekit classify "feat(api): add endpoint" "fix!: drop legacy flag"
  releasekit classify --commits '["docs: readme"]' --output yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		messages := args
		if cmd.Flags().Changed("commits") {
			if len(args) > 0 {
				return clierrors.NewInputError("pass messages as arguments or with --commits, not both")
			}
			batch, err := release.ParseCommitBatch(classifyCommits)
			if err != nil {
				return clierrors.MalformedCommitBatch(err)
			}
			messages = batch
		}
		if len(messages) == 0 {
			return clierrors.NewInputErrorWithUsage("no commit messages given",
				`releasekit classify "feat: add x" ["fix: y" ...]`)
		}

		parsed := commit.ClassifyAll(messages)
		out := cmd.OutOrStdout()

		switch classifyOutput {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(parsed); err != nil {
				return fmt.Errorf("encoding commits: %w", err)
			}
			return enc.Close()
		case "text":
			return changelog.FormatChanges("", changelog.Group(parsed), out, changelog.FormatOptions{Plain: plain})
		default:
			return clierrors.NewInputError(fmt.Sprintf("unknown output format %q", classifyOutput), "Use --output text or --output yaml")
		}
	},
}

func init() {
	classifyCmd.GroupID = GroupInspect
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyCommits, "commits", "", "Commit messages as a JSON array of strings")
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "text", "Output format: text or yaml")
}
