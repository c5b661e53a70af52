package memory

import (
	"context"
	"sync"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

var _ driven.Indexer = (*Indexer)(nil)

// Indexer records every batch it receives.
type Indexer struct {
	mu      sync.Mutex
	batches [][]domain.Chunk
	cleared []string
	err     error
}

// NewIndexer creates an empty recorder.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// FailWith makes subsequent Index calls return err.
func (i *Indexer) FailWith(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.err = err
}

// Index records a copy of the batch.
func (i *Indexer) Index(_ context.Context, batch []domain.Chunk) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return i.err
	}
	i.batches = append(i.batches, append([]domain.Chunk(nil), batch...))
	return nil
}

// Clear records the cleared document ids.
func (i *Indexer) Clear(_ context.Context, documentIDs []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return i.err
	}
	i.cleared = append(i.cleared, documentIDs...)
	return nil
}

// Cleared returns the document ids passed to Clear.
func (i *Indexer) Cleared() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.cleared...)
}

// Batches returns the recorded batches in call order.
func (i *Indexer) Batches() [][]domain.Chunk {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([][]domain.Chunk(nil), i.batches...)
}

// Chunks returns every recorded chunk in call order.
func (i *Indexer) Chunks() []domain.Chunk {
	i.mu.Lock()
	defer i.mu.Unlock()
	var all []domain.Chunk
	for _, b := range i.batches {
		all = append(all, b...)
	}
	return all
}
