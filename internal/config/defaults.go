package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# releasekit configuration
# Values here override ~/.config/releasekit/config.yml and are overridden
# by RELEASEKIT_* environment variables (e.g. RELEASEKIT_DEFAULT_BUMP=minor).

project: ""                           # Named in a new changelog's preamble (empty = "this project")

# Files
manifest_path: package.json           # Version source: .json, .yml or .yaml with a top-level "version"
changelog_path: CHANGELOG.md          # Created on first release, prepended afterwards
release_notes_path: RELEASE_NOTES.md  # Overwritten on every release

# Environment handoff
env_file: .env                        # Receives NEW_VERSION=x.y.z ("" to skip)
env_var: NEW_VERSION                  # Variable name written to env_file and the CI env file
ci_env_file_var: GITHUB_ENV           # Env var naming the CI env file to append to ("" to skip)

# Defaults for 'releasekit prepare'
default_bump: patch                   # major | minor | patch
default_pr_title: Merged changes      # Used when --pr-title is not given
tag_prefix: v                         # Release tags look like v1.2.3 (used by --from-git)
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project":            "",
		"manifest_path":      "package.json",
		"changelog_path":     "CHANGELOG.md",
		"release_notes_path": "RELEASE_NOTES.md",
		"env_file":           ".env",
		"env_var":            "NEW_VERSION",
		"ci_env_file_var":    "GITHUB_ENV",
		"default_bump":       "patch",
		"default_pr_title":   "Merged changes",
		"tag_prefix":         "v",
	}
}
