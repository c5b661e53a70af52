// Package normalisers selects the Normaliser that cleans the raw content
// of a document before chunking.
//
// Markdown-flavoured sources (trackers, wikis, manual documents) go through
// the markdown normaliser. Word-processor documents are already plain text
// and only get whitespace and control-character cleanup.
package normalisers
