// Package cli implements the releasekit command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ariel-frischer/releasekit/internal/config"
	clierrors "github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/git"
	"github.com/ariel-frischer/releasekit/internal/progress"
)

// Command groups shown in help output.
const (
	GroupRelease       = "release"
	GroupInspect       = "inspect"
	GroupConfiguration = "configuration"
)

var (
	// Global flags
	configPath string
	debug      bool
	verbose    bool
	plain      bool

	// Logger
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "releasekit",
	Short: "Prepare releases from conventional commits",
	Long: `releasekit prepares a release from a batch of conventional commit messages.

It bumps the semantic version stored in the project manifest, prepends a
categorized section to CHANGELOG.md, writes RELEASE_NOTES.md, and records
the new version as NEW_VERSION=x.y.z in .env (and $GITHUB_ENV in CI).

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELEASEKIT_*)
  2. Project config (.releasekit/config.yml)
  3. User config (~/.config/releasekit/config.yml)
  4. Built-in defaults`,
	Example: `  # Minor release from a merged PR's commits
  releasekit prepare --bump-type minor --commits '["feat: add export", "fix: typo"]' \
    --pr-number 42 --pr-title "Add export"

  # Collect commits since the latest v* tag and preview without writing
  releasekit prepare --from-git --dry-run

  # Show what the next version would be
  releasekit next --bump-type major`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if debug {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		if debug {
			sugar := logger.Sugar()
			git.SetDebugLogger(sugar.Debugf)
		} else {
			git.SetDebugLogger(nil)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupRelease, Title: "Release Commands:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspection Commands:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration Commands:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default .releasekit/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show remediation hints with errors")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "Plain output (no colors or spinner)")
}

// Execute runs the root command and prints a formatted error on failure.
// The returned error carries the exit code (see ExitCode).
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	reportError(rootCmd.ErrOrStderr(), err)
	return &ExitError{code: ExitFailure, err: err}
}

// loadConfig loads configuration honoring --config.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     os.Stderr,
	})
	if err != nil {
		return nil, clierrors.ConfigInvalid(err)
	}
	return cfg, nil
}

// terminalCapabilities returns the detected capabilities, or none with --plain.
func terminalCapabilities() progress.TerminalCapabilities {
	if plain {
		return progress.PlainCapabilities()
	}
	return progress.DetectTerminalCapabilities()
}
