package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	CategoryBreaking: {Color: color.New(color.FgRed, color.Bold), Icon: "⚠"},
	CategoryFeat:     {Color: color.New(color.FgGreen), Icon: "✓"},
	CategoryFix:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	CategoryOther:    {Color: color.New(color.FgBlue), Icon: "~"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatSections writes parsed changelog sections with terminal styling.
func FormatSections(sections []Section, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatSection(&sections[i], w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", sections[i].Version, err)
		}
	}
	return nil
}

// FormatSection writes a single parsed section.
func FormatSection(s *Section, w io.Writer, opts FormatOptions) error {
	return formatSection(s, w, opts, resolveWidth(opts.MaxWidth))
}

func formatSection(s *Section, w io.Writer, opts FormatOptions, width int) error {
	if err := writeVersionHeader(s.Version, s.Date, w, opts); err != nil {
		return err
	}

	for _, b := range s.Blocks() {
		cat := CategoryForTitle(b.Title)
		title := b.Title
		if title == "" {
			title = cat.Title()
		}
		if err := writeCategorySection(cat, stripIcon(title), b.Items, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// FormatChanges writes grouped commits (not yet rendered to Markdown).
func FormatChanges(version string, c Changes, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if version != "" {
		if err := writeVersionHeader(version, "", w, opts); err != nil {
			return err
		}
	}

	for _, cat := range Categories() {
		commits := c.For(cat)
		if len(commits) == 0 {
			continue
		}
		items := make([]string, len(commits))
		for i, pc := range commits {
			items[i] = strings.TrimPrefix(FormatBullet(pc), "- ")
		}
		if err := writeCategorySection(cat, stripIcon(cat.Title()), items, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// CategoryForTitle maps a "### ..." heading back to a category. Headings
// from hand-written Keep a Changelog files ("Added", "Fixed", ...) are
// mapped to the closest category.
func CategoryForTitle(title string) Category {
	t := strings.ToLower(stripIcon(title))
	switch {
	case strings.Contains(t, "breaking"):
		return CategoryBreaking
	case strings.Contains(t, "feature"), t == "added":
		return CategoryFeat
	case strings.Contains(t, "fix"), t == "security":
		return CategoryFix
	default:
		return CategoryOther
	}
}

// stripIcon drops a leading emoji or symbol from a heading.
func stripIcon(title string) string {
	title = strings.TrimSpace(title)
	if i := strings.IndexByte(title, ' '); i > 0 && !isWordStart(title[0]) {
		return strings.TrimSpace(title[i+1:])
	}
	return title
}

func isWordStart(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(version, date string, w io.Writer, opts FormatOptions) error {
	var header string
	switch {
	case NormalizeVersion(version) == "unreleased":
		header = "Unreleased"
	case date != "":
		header = fmt.Sprintf("v%s (%s)", version, date)
	default:
		header = fmt.Sprintf("v%s", version)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a single category with its entries.
func writeCategorySection(cat Category, title string, items []string, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[cat]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", title); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title)); err != nil {
			return err
		}
	}

	for _, item := range items {
		if err := writeEntry(item, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeEntry writes a single changelog entry with optional wrapping.
func writeEntry(text string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
