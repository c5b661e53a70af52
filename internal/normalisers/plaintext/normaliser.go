package plaintext

import (
	"regexp"
	"strings"

	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser cleans text that carries no markup, such as content extracted
// from word-processor documents. Leading indentation is preserved.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Name returns the normaliser name.
func (n *Normaliser) Name() string {
	return "plaintext"
}

var (
	innerSpaces  = regexp.MustCompile(`(\S)[ \t]{2,}`)
	blankLines   = regexp.MustCompile(`\n{3,}`)
	controlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
)

// Normalise trims trailing whitespace, collapses inner runs of spaces and
// blank lines, and drops control characters.
func (n *Normaliser) Normalise(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = controlChars.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		lines[i] = innerSpaces.ReplaceAllString(line, "$1 ")
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")

	return strings.Trim(text, "\n")
}
