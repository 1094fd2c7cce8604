// Package commit classifies free-text commit messages as conventional commits.
//
// Only the header shape is understood: type(scope)!: description. Footers,
// multi-paragraph bodies and revert commits get no special treatment.
package commit

import (
	"regexp"
	"strings"
)

// TypeOther is assigned to messages that do not follow the conventional format.
const TypeOther = "other"

// BreakingMarker is the footer token that flags a breaking change.
const BreakingMarker = "BREAKING CHANGE"

// conventionalHeader matches type(scope)!: description on any line.
var conventionalHeader = regexp.MustCompile(`(?m)^(\w+)(\(([^)]+)\))?!?:\s*(.+)$`)

// ParsedCommit is the structured form of one commit message.
type ParsedCommit struct {
	Type        string `yaml:"type"`
	Scope       string `yaml:"scope,omitempty"`
	Description string `yaml:"description"`
	Breaking    bool   `yaml:"breaking"`
	Original    string `yaml:"original"`
}

// HasScope reports whether a scope was captured.
func (c ParsedCommit) HasScope() bool {
	return c.Scope != ""
}

// Classify parses message. It never fails: messages without a conventional
// header become TypeOther with their first line as the description.
func Classify(message string) ParsedCommit {
	m := conventionalHeader.FindStringSubmatch(message)
	if m == nil {
		return ParsedCommit{
			Type:        TypeOther,
			Description: strings.TrimSpace(firstLine(message)),
			Original:    message,
		}
	}

	return ParsedCommit{
		Type:        strings.ToLower(m[1]),
		Scope:       m[3],
		Description: strings.TrimSpace(m[4]),
		Breaking:    isBreaking(message),
		Original:    message,
	}
}

// ClassifyAll classifies messages, preserving their order.
func ClassifyAll(messages []string) []ParsedCommit {
	parsed := make([]ParsedCommit, 0, len(messages))
	for _, msg := range messages {
		parsed = append(parsed, Classify(msg))
	}
	return parsed
}

func isBreaking(message string) bool {
	return strings.Contains(message, BreakingMarker) || strings.Contains(message, "!:")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
