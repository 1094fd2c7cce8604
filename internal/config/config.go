// releasekit - Conventional-commit release preparation
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/releasekit

// Package config provides hierarchical configuration management for releasekit using koanf.
// Configuration is loaded with priority: environment variables > project config (.releasekit/config.yml)
// > user config (~/.config/releasekit/config.yml) > defaults. Project config may also be
// written as legacy JSON (.releasekit/config.json).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "RELEASEKIT_"

// Configuration represents the releasekit CLI tool configuration
type Configuration struct {
	// Project is named in the preamble of a newly created changelog.
	Project string `koanf:"project" yaml:"project"`

	// ManifestPath is the version-holding document (package.json, Chart.yaml, ...).
	ManifestPath string `koanf:"manifest_path" yaml:"manifest_path" validate:"required,manifest"`
	// ChangelogPath is created on the first release and prepended to afterwards.
	ChangelogPath string `koanf:"changelog_path" yaml:"changelog_path" validate:"required"`
	// ReleaseNotesPath is overwritten on every release.
	ReleaseNotesPath string `koanf:"release_notes_path" yaml:"release_notes_path" validate:"required"`

	// EnvFile receives "EnvVar=version". Empty skips the local file.
	EnvFile string `koanf:"env_file" yaml:"env_file"`
	// EnvVar is the variable name written to EnvFile and the CI env file.
	EnvVar string `koanf:"env_var" yaml:"env_var" validate:"required,envname"`
	// CIEnvFileVar names the environment variable holding the CI env file path
	// (GITHUB_ENV on GitHub Actions). Empty disables the CI write.
	CIEnvFileVar string `koanf:"ci_env_file_var" yaml:"ci_env_file_var" validate:"omitempty,envname"`

	// DefaultBump is used when --bump-type is not given.
	DefaultBump string `koanf:"default_bump" yaml:"default_bump" validate:"oneof=major minor patch"`
	// DefaultPRTitle is used when --pr-title is not given.
	DefaultPRTitle string `koanf:"default_pr_title" yaml:"default_pr_title"`
	// TagPrefix precedes the version in release tag names (v1.2.3).
	TagPrefix string `koanf:"tag_prefix" yaml:"tag_prefix"`
}

// CIEnvFile returns the CI env file path from the process environment, or "".
func (c *Configuration) CIEnvFile() string {
	if c.CIEnvFileVar == "" {
		return ""
	}
	return os.Getenv(c.CIEnvFileVar)
}

// LoadOptions configures LoadWithOptions.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .releasekit/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: see UserConfigPath)
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// Config paths:
//   - User config: ~/.config/releasekit/config.yml (XDG compliant)
//   - Project config: .releasekit/config.yml
//   - Legacy project config: .releasekit/config.json (used only when no YAML exists)
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) error {
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("setting default %s: %w", key, err)
		}
	}
	return nil
}

// loadUserConfig loads the user-level YAML config when it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	userPath := customPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// A custom path is loaded with the parser matching its extension.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("project config %s: %w", customPath, os.ErrNotExist)
		}
		if strings.EqualFold(filepath.Ext(customPath), ".json") {
			return loadJSONConfig(k, customPath, "project")
		}
		if err := loadYAMLConfig(k, customPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		return nil
	}

	projectYAMLPath := ProjectConfigPath()
	legacyProjectPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyProjectExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n\n", legacyProjectPath, projectYAMLPath)
		}
	} else if legacyProjectExists {
		if err := loadJSONConfig(k, legacyProjectPath, "project"); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		if !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using JSON config at %s\n", legacyProjectPath)
			fmt.Fprintf(warningWriter, "  Move it to %s to use the YAML format.\n\n", projectYAMLPath)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DefaultBump = strings.ToLower(strings.TrimSpace(cfg.DefaultBump))
	cfg.ManifestPath = expandHomePath(cfg.ManifestPath)
	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	cfg.ReleaseNotesPath = expandHomePath(cfg.ReleaseNotesPath)
	cfg.EnvFile = expandHomePath(cfg.EnvFile)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELEASEKIT_MANIFEST_PATH -> manifest_path
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
