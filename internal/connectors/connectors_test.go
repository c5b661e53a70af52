package connectors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/adapters/driven/storage/memory"
	"github.com/IQ2i/thot/internal/core/domain"
)

func TestIssueContent(t *testing.T) {
	at := time.Date(2024, 2, 3, 9, 5, 0, 0, time.UTC)

	got := IssueContent("Jane", "Login fails.", []Note{
		{Author: "John", CreatedAt: at, Body: "Reproduced."},
		{Author: "Bot", Body: "changed the label", System: true},
		{Author: "Ann", Body: "   "},
		{Body: "Anonymous fix."},
	})

	assert.Equal(t,
		"**Author:** Jane\n\nLogin fails."+
			"\n\n---\n**Note from John** (2024-02-03 09:05):\nReproduced."+
			"\n\n---\n**Note from Unknown user** ():\nAnonymous fix.",
		got)
}

func TestIssueContent_NoAuthor(t *testing.T) {
	assert.Equal(t, "Only text", IssueContent("", "Only text", nil))
}

func TestKnown(t *testing.T) {
	ctx := context.Background()
	store := memory.NewDocumentStore(nil)

	known, err := Known(ctx, store, "src", "42")
	require.NoError(t, err)
	assert.False(t, known)

	require.NoError(t, store.Save(ctx, NewDocument("src", "42", time.Now())))

	known, err = Known(ctx, store, "src", "42")
	require.NoError(t, err)
	assert.True(t, known)

	known, err = Known(ctx, store, "other", "42")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestParseTime(t *testing.T) {
	assert.True(t, ParseTime("").IsZero())
	assert.True(t, ParseTime("yesterday").IsZero())
	assert.Equal(t, 2024, ParseTime("2024-01-02T03:04:05Z").Year())

	value := "2024-01-02T03:04:05.000Z"
	require.NotNil(t, ParseTimePtr(&value))
	assert.Nil(t, ParseTimePtr(nil))
}

func TestResolveProject(t *testing.T) {
	host, project, err := ResolveProject(&domain.RemoteConfig{BaseURL: "https://gitlab.example.com/", Project: "/group/app/"})
	require.NoError(t, err)
	assert.Equal(t, "https://gitlab.example.com", host)
	assert.Equal(t, "group/app", project)

	host, project, err = ResolveProject(&domain.RemoteConfig{Project: "https://redmine.example.com/projects/app"})
	require.NoError(t, err)
	assert.Equal(t, "https://redmine.example.com", host)
	assert.Equal(t, "projects/app", project)

	_, _, err = SplitProjectURL("not a url")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
