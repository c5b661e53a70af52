package connectors

import (
	"fmt"
	"strings"
	"time"
)

// UnknownAuthor replaces a missing comment author.
const UnknownAuthor = "Unknown user"

// Note is one comment of an issue transcript.
type Note struct {
	Author    string
	CreatedAt time.Time
	Body      string

	// System marks notes generated by the tracker itself.
	System bool
}

// IssueContent renders an issue as an author-attributed description
// followed by its non-system comments in the given order.
func IssueContent(author, description string, notes []Note) string {
	var b strings.Builder
	if author != "" {
		fmt.Fprintf(&b, "**Author:** %s\n\n", author)
	}
	b.WriteString(description)

	for _, n := range notes {
		if n.System || strings.TrimSpace(n.Body) == "" {
			continue
		}
		name := n.Author
		if name == "" {
			name = UnknownAuthor
		}
		stamp := ""
		if !n.CreatedAt.IsZero() {
			stamp = n.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(&b, "\n\n---\n**Note from %s** (%s):\n%s", name, stamp, n.Body)
	}

	return b.String()
}
