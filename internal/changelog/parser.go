package changelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdown parses section bodies. Section boundaries are found line by line
// with SectionPrefix instead, so Parse and Merge agree on where releases start.
var markdown = goldmark.New()

var (
	sectionHeaderPattern = regexp.MustCompile(`^## \[([^\]]+)\](?:\s+-\s+(\S.*?))?\s*$`)
	linkReferencePattern = regexp.MustCompile(`^\[[^\]]+\]:\s`)
	datePattern          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Document is a parsed CHANGELOG.md.
type Document struct {
	// Preamble is everything above the first release section.
	Preamble string
	// Sections are in file order, newest first for changelogs maintained by Merge.
	Sections []Section
}

// Section is one "## [version] - date" block.
type Section struct {
	Version string
	Date    string
	Body    string
}

// Block is one "### Title" group inside a section body.
type Block struct {
	Title string
	Items []string
}

// ValidationError represents a changelog parsing or validation error with context.
type ValidationError struct {
	Field   string
	Line    int
	Message string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	default:
		return e.Message
	}
}

// Load reads and validates a CHANGELOG.md file from the given path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening changelog file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads and validates a changelog from an io.Reader.
func LoadFromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading changelog: %w", err)
	}
	return Parse(string(data))
}

// Parse splits changelog Markdown into its preamble and release sections,
// then validates the result.
func Parse(content string) (*Document, error) {
	doc := &Document{}

	var (
		preamble []string
		body     []string
		current  *Section
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		doc.Sections = append(doc.Sections, *current)
		body = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, SectionPrefix) {
			m := sectionHeaderPattern.FindStringSubmatch(line)
			if m == nil {
				return nil, &ValidationError{Line: lineNo, Message: fmt.Sprintf("malformed release header %q", line)}
			}
			flush()
			current = &Section{Version: strings.TrimSpace(m[1]), Date: m[2]}
			continue
		}

		if current == nil {
			preamble = append(preamble, line)
			continue
		}
		if linkReferencePattern.MatchString(line) {
			continue
		}
		body = append(body, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning changelog: %w", err)
	}
	flush()

	doc.Preamble = strings.TrimSpace(strings.Join(preamble, "\n"))

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks that section versions are unique, dates are well formed,
// and at most one section is unreleased.
func Validate(d *Document) error {
	seen := make(map[string]bool)
	unreleased := 0

	for i, s := range d.Sections {
		field := fmt.Sprintf("sections[%d]", i)

		if s.IsUnreleased() {
			unreleased++
		} else if s.Date != "" && !datePattern.MatchString(s.Date) {
			return &ValidationError{
				Field:   field + ".date",
				Message: fmt.Sprintf("invalid date format %q (expected: YYYY-MM-DD)", s.Date),
			}
		}

		normalized := NormalizeVersion(s.Version)
		if seen[normalized] {
			return &ValidationError{
				Field:   field + ".version",
				Message: fmt.Sprintf("duplicate version %q", s.Version),
			}
		}
		seen[normalized] = true
	}

	if unreleased > 1 {
		return &ValidationError{Field: "sections", Message: "only one 'Unreleased' section is allowed"}
	}
	return nil
}

// IsUnreleased returns true for the "## [Unreleased]" section.
func (s Section) IsUnreleased() bool {
	return NormalizeVersion(s.Version) == "unreleased"
}

// Blocks splits the section body into its "### Title" groups. Bullets that
// appear before any heading are returned under an empty title.
func (s Section) Blocks() []Block {
	src := []byte(s.Body)
	root := markdown.Parser().Parse(text.NewReader(src))

	var blocks []Block
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 3 {
				blocks = append(blocks, Block{Title: nodeText(node, src)})
			}
		case *ast.List:
			if len(blocks) == 0 {
				blocks = append(blocks, Block{})
			}
			current := &blocks[len(blocks)-1]
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				current.Items = append(current.Items, listItemText(item, src))
			}
		}
	}
	return blocks
}

// listItemText joins the text blocks of a list item into one line. Nested
// lists are skipped.
func listItemText(item ast.Node, src []byte) string {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if _, nested := c.(*ast.List); nested {
			continue
		}
		if t := nodeText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// nodeText returns the raw Markdown source of a block node, lines joined by spaces.
func nodeText(n ast.Node, src []byte) string {
	lines := n.Lines()
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if t := strings.TrimSpace(string(seg.Value(src))); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// NormalizeVersion lowercases a version and removes a "v" prefix so that
// "v1.2.0" and "1.2.0" compare equal.
func NormalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
