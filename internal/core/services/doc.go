// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The Synchronizer runs the import then update phases of each source through
// the connector chosen by the ConnectorRegistry. The Ingestor turns the
// documents that changed since their last indexing into chunks and hands
// them to the indexer in fixed-size batches.
package services
