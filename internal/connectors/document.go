package connectors

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
)

// NewDocument creates a document for an external item seen for the first time.
func NewDocument(sourceID, externalID string, now time.Time) *domain.Document {
	return &domain.Document{
		ID:         uuid.New().String(),
		SourceID:   sourceID,
		ExternalID: externalID,
		SyncedAt:   now,
	}
}

// Known reports whether the source already holds a document for externalID.
func Known(ctx context.Context, store driven.DocumentStore, sourceID, externalID string) (bool, error) {
	doc, err := store.FindByExternalID(ctx, sourceID, externalID)
	if err != nil {
		return false, fmt.Errorf("find document %s: %w", externalID, err)
	}
	return doc != nil, nil
}

// ParseTime parses an RFC 3339 timestamp, returning the zero time on failure.
func ParseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ParseTimePtr is ParseTime returning nil for missing values.
func ParseTimePtr(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t := ParseTime(*value)
	if t.IsZero() {
		return nil
	}
	return &t
}

// SplitProjectURL separates "https://host/group/project" into the host
// root and the project path.
func SplitProjectURL(raw string) (host, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: not a project url: %q", domain.ErrInvalidInput, raw)
	}
	return u.Scheme + "://" + u.Host, strings.Trim(u.Path, "/"), nil
}

// ResolveProject returns the host root and project path of a remote
// configuration. Project may be a full URL, in which case BaseURL is ignored.
func ResolveProject(cfg *domain.RemoteConfig) (host, project string, err error) {
	if strings.HasPrefix(cfg.Project, "http://") || strings.HasPrefix(cfg.Project, "https://") {
		return SplitProjectURL(cfg.Project)
	}
	return strings.TrimRight(cfg.BaseURL, "/"), strings.Trim(cfg.Project, "/"), nil
}
