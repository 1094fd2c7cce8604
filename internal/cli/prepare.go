package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	"github.com/ariel-frischer/releasekit/internal/config"
	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/git"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/progress"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

// prepareOptions holds the flag values of the prepare command.
type prepareOptions struct {
	bumpType    string
	commits     string
	commitsFile string
	fromGit     bool
	repo        string
	prNumber    string
	prTitle     string
	dryRun      bool
	output      string
}

var prepareOpts prepareOptions

// clock is replaced in tests.
var clock = time.Now

var prepareCmd = &cobra.Command{
	Use:     "prepare",
	Aliases: []string{"release"},
	Short:   "Bump the version and write changelog, release notes, and env file",
	Long: `Prepare a release from a batch of commit messages.

Steps:
  1. Read the current version from the manifest (manifest_path)
  2. Bump it (--bump-type, default from config: patch)
  3. Classify the commits as conventional commits
  4. Render a changelog section and release notes
  5. Write the manifest, CHANGELOG.md, RELEASE_NOTES.md, and NEW_VERSION to .env
     (and append it to the file named by $GITHUB_ENV when set)

Commits come from exactly one of --commits (JSON array), --commits-file
(file with a JSON array, "-" for stdin), or --from-git (history since the
latest release tag). With none, the release has no changelog entries.`,
	Example: `  releasekit prepare --bump-type minor --commits '["feat: add export"]'
  releasekit prepare --commits-file commits.json --pr-number 42 --pr-title "Add export"
  git log --format=%s v1.2.0..HEAD | jq -R . | jq -s . | releasekit prepare --commits-file -
  releasekit prepare --from-git --dry-run --output yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrepare(cmd, prepareOpts)
	},
}

func init() {
	prepareCmd.GroupID = GroupRelease
	rootCmd.AddCommand(prepareCmd)

	f := prepareCmd.Flags()
	f.StringVarP(&prepareOpts.bumpType, "bump-type", "b", "", "Version bump: major, minor, or patch (default from config)")
	f.StringVar(&prepareOpts.commits, "commits", "", "Commit messages as a JSON array of strings")
	f.StringVar(&prepareOpts.commitsFile, "commits-file", "", "File containing a JSON array of commit messages (- for stdin)")
	f.BoolVar(&prepareOpts.fromGit, "from-git", false, "Collect commits since the latest release tag")
	f.StringVar(&prepareOpts.repo, "repo", ".", "Repository path for --from-git")
	f.StringVar(&prepareOpts.prNumber, "pr-number", "", "Merged pull request number")
	f.StringVar(&prepareOpts.prTitle, "pr-title", "", "Merged pull request title (default from config)")
	f.BoolVar(&prepareOpts.dryRun, "dry-run", false, "Print the would-be outputs without writing files")
	f.StringVarP(&prepareOpts.output, "output", "o", "text", "Dry-run output format: text or yaml")
}

func runPrepare(cmd *cobra.Command, opts prepareOptions) error {
	if opts.output != "text" && opts.output != "yaml" {
		return clierrors.NewInputError(fmt.Sprintf("unknown output format %q", opts.output), "Use --output text or --output yaml")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kind, err := resolveBumpKind(cmd, opts.bumpType, cfg)
	if err != nil {
		return err
	}

	commits, err := collectCommits(cmd, opts, cfg)
	if err != nil {
		return err
	}

	prTitle := opts.prTitle
	if !cmd.Flags().Changed("pr-title") {
		prTitle = cfg.DefaultPRTitle
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processing %d commits for %s release...\n", len(commits), kind)

	mf, err := manifest.Open(cfg.ManifestPath)
	if err != nil {
		return manifestError(cfg.ManifestPath, err)
	}

	orch := &release.Orchestrator{
		Clock:   clock,
		Logger:  logger.Named("release"),
		Project: cfg.Project,
		EnvVar:  cfg.EnvVar,
	}
	if !opts.dryRun {
		orch.Tracker = progress.NewDisplay(out, terminalCapabilities())
	}

	var dry *release.DryRunStore
	changelogStore := release.FileChangelog{Path: cfg.ChangelogPath}
	if opts.dryRun {
		dry = release.NewDryRunStore(mf, changelogStore)
		orch.Config, orch.Changelog, orch.Notes, orch.Env = dry, dry, dry, dry
	} else {
		orch.Config = mf
		orch.Changelog = changelogStore
		orch.Notes = release.FileNotes{Path: cfg.ReleaseNotesPath}
		orch.Env = release.FileEnv{LocalPath: cfg.EnvFile, CIPath: cfg.CIEnvFile()}
	}

	res, err := orch.Run(release.Request{
		Bump:     kind,
		Commits:  commits,
		PRTitle:  prTitle,
		PRNumber: opts.prNumber,
	})
	if err != nil {
		return manifestError(cfg.ManifestPath, err)
	}

	output.PrintVersionChange(out, res.Previous.String(), res.Next.String())

	if opts.dryRun {
		return printDryRun(out, opts.output, cfg, res, dry.Sink)
	}

	fmt.Fprintln(out)
	output.PrintStageSuccess(out, fmt.Sprintf("Release %s prepared successfully!", res.Next))
	output.PrintUpdatedFiles(out, updatedFiles(cfg))
	return nil
}

// resolveBumpKind returns the bump kind from --bump-type, or the configured default.
func resolveBumpKind(cmd *cobra.Command, flagValue string, cfg *config.Configuration) (semver.BumpKind, error) {
	text := flagValue
	if !cmd.Flags().Changed("bump-type") {
		text = cfg.DefaultBump
	}
	kind, err := release.ParseBumpKind(text)
	if err != nil {
		return "", clierrors.InvalidBumpKind(text, err)
	}
	return kind, nil
}

// collectCommits reads commit messages from the one configured source.
func collectCommits(cmd *cobra.Command, opts prepareOptions, cfg *config.Configuration) ([]string, error) {
	sources := 0
	for _, set := range []bool{cmd.Flags().Changed("commits"), opts.commitsFile != "", opts.fromGit} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, clierrors.ConflictingCommitSources()
	}

	switch {
	case opts.commitsFile != "":
		commits, err := release.ReadCommitBatch(opts.commitsFile, cmd.InOrStdin())
		if release.IsInputError(err) {
			return nil, clierrors.MalformedCommitBatch(err)
		}
		return commits, err
	case opts.fromGit:
		r, err := git.CommitsSinceLatestTag(opts.repo, cfg.TagPrefix)
		if err != nil {
			return nil, clierrors.GitCollectionFailed(opts.repo, err)
		}
		since := "the first commit"
		if r.Since != nil {
			since = r.Since.Name
		}
		logger.Debug("collected commits from git",
			zap.String("repo", opts.repo),
			zap.String("since", since),
			zap.String("branch", r.Branch),
			zap.Int("count", len(r.Messages)))
		fmt.Fprintf(cmd.OutOrStdout(), "Collected %d commits since %s\n", len(r.Messages), since)
		return r.Messages, nil
	default:
		commits, err := release.ParseCommitBatch(opts.commits)
		if err != nil {
			return nil, clierrors.MalformedCommitBatch(err)
		}
		return commits, nil
	}
}

func updatedFiles(cfg *config.Configuration) []string {
	files := []string{cfg.ManifestPath, cfg.ChangelogPath, cfg.ReleaseNotesPath}
	if cfg.EnvFile != "" {
		files = append(files, cfg.EnvFile)
	}
	if ci := cfg.CIEnvFile(); ci != "" {
		files = append(files, ci)
	}
	return files
}

// dryRunReport is the --output yaml document of a dry run.
type dryRunReport struct {
	Previous     string                 `yaml:"previous"`
	Next         string                 `yaml:"next"`
	Entry        changelog.ReleaseEntry `yaml:"entry"`
	Files        []string               `yaml:"files"`
	Env          string                 `yaml:"env"`
	Section      string                 `yaml:"section"`
	ReleaseNotes string                 `yaml:"release_notes"`
}

func printDryRun(out io.Writer, format string, cfg *config.Configuration, res *release.Result, sink *release.MemoryStore) error {
	envLine := release.FormatEnvLine(cfg.EnvVar, sink.Env[cfg.EnvVar])

	if format == "yaml" {
		report := dryRunReport{
			Previous:     res.Previous.String(),
			Next:         res.Next.String(),
			Entry:        res.Entry,
			Files:        updatedFiles(cfg),
			Env:          envLine,
			Section:      res.Section,
			ReleaseNotes: sink.Notes,
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding dry-run report: %w", err)
		}
		return enc.Close()
	}

	output.PrintSeparator(out, cfg.ChangelogPath+" (new section)")
	fmt.Fprint(out, res.Section)
	output.PrintSeparator(out, cfg.ReleaseNotesPath)
	fmt.Fprint(out, sink.Notes)
	output.PrintSeparator(out, "env")
	fmt.Fprint(out, envLine)
	fmt.Fprintln(out, "\nDry run: no files were written.")
	return nil
}
