package connectors

import (
	"context"
	"errors"

	"github.com/IQ2i/thot/internal/logger"
	"github.com/IQ2i/thot/internal/metrics"
)

// Sync phases used as metric labels.
const (
	PhaseImport = "import"
	PhaseUpdate = "update"
)

// ListingFailed records a failed listing call, which ends pagination.
// It returns the context error when the failure came from cancellation,
// so callers stop instead of treating the listing as empty.
func ListingFailed(ctx context.Context, connector, phase, what string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	metrics.FetchFailures.WithLabelValues(connector, phase).Inc()
	logger.Warn("%s: listing %s failed, stopping pagination: %v", connector, what, err)
	return nil
}

// ItemFailed records a failed single-item fetch. During import the item is
// skipped and nil is returned; during update err is returned unchanged.
func ItemFailed(ctx context.Context, connector, phase, item string, err error) error {
	metrics.FetchFailures.WithLabelValues(connector, phase).Inc()
	if phase == PhaseUpdate || ctx.Err() != nil {
		return err
	}
	logger.Warn("%s: skipping %s: %v", connector, item, err)
	return nil
}
