package docs

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/IQ2i/thot/internal/core/domain"
)

// MinBareIDLength is the shortest string accepted as a bare identifier.
const MinBareIDLength = 40

const idChars = `[A-Za-z0-9_-]+`

// urlPatterns are tried in order; the first capture group is the identifier.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/document/d/(` + idChars + `)`),
	regexp.MustCompile(`/folders/(` + idChars + `)`),
	regexp.MustCompile(`/d/(` + idChars + `)`),
}

var bareID = regexp.MustCompile(`^` + idChars + `$`)

// ResolveID extracts the document or folder identifier from a link or a
// bare identifier. Unrecognised input wraps domain.ErrInvalidArgument.
func ResolveID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	for _, re := range urlPatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			return m[1], nil
		}
	}

	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		if id := u.Query().Get("id"); bareID.MatchString(id) {
			return id, nil
		}
	}

	if bareID.MatchString(raw) && len(raw) >= MinBareIDLength {
		return raw, nil
	}

	return "", fmt.Errorf("%w: not a Google Docs or Drive link: %q", domain.ErrInvalidArgument, raw)
}

// WebURL returns the link opening a document in the editor.
func WebURL(id string) string {
	return "https://docs.google.com/document/d/" + id
}
