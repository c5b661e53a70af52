// Package metrics holds the prometheus counters of sync and ingestion runs.
//
// The CLI is short-lived, so counters are written to a node-exporter
// textfile after each command instead of being scraped.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "thot"

var (
	DocumentsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "documents_imported_total", Help: "Documents created by the import phase."},
		[]string{"connector"},
	)
	DocumentsUpdated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "documents_updated_total", Help: "Documents overwritten by the update phase."},
		[]string{"connector"},
	)
	FetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "fetch_failures_total", Help: "Failed calls to external systems."},
		[]string{"connector", "phase"},
	)
	SourcesSynced = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "sources_synced_total", Help: "Source synchronisations by outcome."},
		[]string{"outcome"},
	)
	ChunksIndexed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "chunks_indexed_total", Help: "Chunks handed to the indexer."},
		[]string{"project"},
	)
)

// Registry holds every collector of this package.
var Registry = prometheus.NewRegistry()

func init() {
	RegisterCollectors(Registry)
}

// RegisterCollectors registers the counters on reg.
func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentsImported)
	reg.MustRegister(DocumentsUpdated)
	reg.MustRegister(FetchFailures)
	reg.MustRegister(SourcesSynced)
	reg.MustRegister(ChunksIndexed)
}

// WriteFile writes the current values in the text exposition format.
func WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
