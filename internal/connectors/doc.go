// Package connectors provides implementations of the Connector interface
// for each source variant, plus helpers they share.
//
// Every connector follows the same contract: the import phase creates
// documents for external items it has never seen and never touches stored
// ones; the update phase overwrites documents already on file. A failed
// listing call ends pagination, a failed single-item fetch is skipped
// during import and returned during update.
//
// Connectors are registered with the ConnectorRegistry at startup.
package connectors
