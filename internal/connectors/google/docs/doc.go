// Package docs implements the word-processor document connector for
// Google Docs.
//
// A source points at a single document or at a Drive folder. Folders are
// walked depth first with an explicit stack and every Google Docs file found
// becomes one document. Text is extracted from the structured document body
// through the Docs API; creation and modification times come from Drive.
package docs
