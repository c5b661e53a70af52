package markdown

import (
	"regexp"
	"strings"

	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser strips markdown and HTML noise from tracker and wiki content.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "markdown"
}

// Normalise returns the plain prose of raw markdown.
func (n *Normaliser) Normalise(raw string) string {
	return Normalise(raw)
}

type rule struct {
	pattern *regexp.Regexp
	repl    string
}

// rules run in order; later rules assume earlier ones have already applied.
var rules = []rule{
	// images, inline and reference style
	{regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`), ""},
	{regexp.MustCompile(`!\[[^\]]*\]\[[^\]]*\]`), ""},

	// links keep their label
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\[[^\]]*\]`), "$1"},

	// link reference definitions
	{regexp.MustCompile(`(?m)^[ \t]*\[[^\]]+\]:[ \t]*.*$`), ""},

	// headings
	{regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+?)[ \t#]*$`), "$1"},

	// code: blocks are dropped, inline spans unwrapped
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile(`(?s)~~~.*?~~~`), ""},
	{regexp.MustCompile(`(?m)^(?:    |\t).*$`), ""},
	{regexp.MustCompile("`([^`\n]+)`"), "$1"},

	// emphasis, widest marker first
	{regexp.MustCompile(`\*\*\*(.+?)\*\*\*`), "$1"},
	{regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{regexp.MustCompile(`\*([^*\n]+)\*`), "$1"},
	{regexp.MustCompile(`\b___(.+?)___\b`), "$1"},
	{regexp.MustCompile(`\b__(.+?)__\b`), "$1"},
	{regexp.MustCompile(`\b_([^_\n]+)_\b`), "$1"},

	// blockquotes, nested ones included
	{regexp.MustCompile(`(?m)^(?:[ \t]*>[ \t]?)+(.*)$`), "$1"},

	// lists
	{regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+(.+)$`), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+(.+)$`), "$1"},

	// tables
	{regexp.MustCompile(`\|`), " "},
	{regexp.MustCompile(`(?m)^[- \t:]+$`), ""},

	// horizontal rules
	{regexp.MustCompile(`(?m)^[ \t]*[-*_]{3,}[ \t]*$`), ""},

	// html comments and tags
	{regexp.MustCompile(`(?s)<!--.*?-->`), ""},
	{regexp.MustCompile(`</?[A-Za-z!][^<>]*>`), ""},

	{regexp.MustCompile(`[ \t]+`), " "},
}

var (
	blankLines   = regexp.MustCompile(`\n{3,}`)
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

// Normalise converts markdown into plain prose. Structure is flattened
// into plain lines and paragraphs are separated by one blank line.
// Safe for concurrent use.
func Normalise(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, r.repl)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLines.ReplaceAllString(text, "\n\n")
	text = controlChars.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}
