package manual

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IQ2i/thot/internal/core/domain"
)

func TestConnector(t *testing.T) {
	c := New()
	src := &domain.Source{ID: "s", Kind: domain.SourceKindManual}

	assert.Equal(t, "manual", c.Name())
	assert.True(t, c.Supports(src))
	assert.False(t, c.Supports(nil))
	assert.False(t, c.Supports(&domain.Source{Kind: domain.SourceKindWordProcessorDoc}))
	assert.NoError(t, c.ImportNewDocuments(context.Background(), src, true))
	assert.NoError(t, c.UpdateDocuments(context.Background(), src, true))
}
