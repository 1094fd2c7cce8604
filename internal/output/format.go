// Package output provides terminal output formatting utilities for the releasekit CLI.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSeparator prints a dim magenta rule with label centered in it.
// Used to frame dry-run previews of file contents.
func PrintSeparator(out io.Writer, label string) {
	termWidth := GetTerminalWidth()
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label = " " + label + " "
	lineLen := (termWidth - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "\n%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// PrintStageHeader prints a colored stage header (e.g., "[Stage 1/5] Bumping version...").
// Uses cyan for the stage indicator and white for the stage name.
func PrintStageHeader(out io.Writer, stageNum, totalStages int, stageName string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan(fmt.Sprintf("[Stage %d/%d]", stageNum, totalStages)), white(stageName+"..."))
}

// PrintStageSuccess prints a colored success message.
// Uses green checkmark and cyan for the message.
func PrintStageSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintVersionChange prints the "Current version" and "New version" lines.
func PrintVersionChange(out io.Writer, previous, next string) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "Current version: %s\n", bold(previous))
	fmt.Fprintf(out, "New version: %s\n", green(next))
}

// PrintUpdatedFiles prints the list of files a release touched.
func PrintUpdatedFiles(out io.Writer, files []string) {
	fmt.Fprintln(out, "Updated files:")
	dim := color.New(color.Faint).SprintFunc()
	for _, f := range files {
		fmt.Fprintf(out, "  %s %s\n", dim("-"), f)
	}
}
