package docs

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// bulletIndent is repeated once per nesting level before a list item.
const bulletIndent = "  "

// PlainText renders the visible text of a document body.
// Table cells are separated by tabs and rows by newlines; list items are
// indented by nesting level; objects that carry no text become bracketed
// placeholders.
func PlainText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}
	var b strings.Builder
	writeElements(&b, doc.Body.Content)
	return b.String()
}

func writeElements(b *strings.Builder, elements []*docs.StructuralElement) {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			writeParagraph(b, el.Paragraph)
		case el.Table != nil:
			writeTable(b, el.Table)
		case el.TableOfContents != nil:
			writeElements(b, el.TableOfContents.Content)
		}
	}
}

func writeParagraph(b *strings.Builder, p *docs.Paragraph) {
	if p.Bullet != nil {
		b.WriteString(strings.Repeat(bulletIndent, int(p.Bullet.NestingLevel)))
		b.WriteString("- ")
	}

	for _, el := range p.Elements {
		switch {
		case el.TextRun != nil:
			b.WriteString(el.TextRun.Content)
		case el.InlineObjectElement != nil:
			b.WriteString("[image]")
		case el.Equation != nil:
			b.WriteString("[equation]")
		case el.FootnoteReference != nil:
			b.WriteString("[footnote " + el.FootnoteReference.FootnoteNumber + "]")
		case el.Person != nil && el.Person.PersonProperties != nil:
			b.WriteString(personName(el.Person.PersonProperties))
		case el.RichLink != nil && el.RichLink.RichLinkProperties != nil:
			b.WriteString(el.RichLink.RichLinkProperties.Title)
		}
	}
}

func personName(p *docs.PersonProperties) string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

func writeTable(b *strings.Builder, t *docs.Table) {
	for _, row := range t.TableRows {
		for _, cell := range row.TableCells {
			var cb strings.Builder
			writeElements(&cb, cell.Content)
			b.WriteString(strings.TrimRight(cb.String(), "\n"))
			b.WriteString("\t")
		}
		b.WriteString("\n")
	}
}
