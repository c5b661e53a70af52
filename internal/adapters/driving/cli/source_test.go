package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

func TestSourceCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, 3)
	for _, cmd := range sourceCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"add", "list", "remove"}, names)
}

func TestSourceAddCmd_IssueTracker(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()

	out, err := execute(t, "",
		"source", "add", "issue-tracker",
		"--project", "app", "--name", "Issues",
		"--flavour", "gitlab", "--base-url", "https://gitlab.example.com/",
		"--repo", "group/app", "--token", "glpat-x")
	require.NoError(t, err)

	require.Len(t, f.sources.added, 1)
	added := f.sources.added[0]
	assert.Equal(t, "proj-app", added.ProjectID)
	require.NotNil(t, added.IssueTracker)
	assert.Equal(t, "https://gitlab.example.com", added.IssueTracker.BaseURL)
	assert.Equal(t, "glpat-x", added.IssueTracker.Token)
	assert.Contains(t, out, "Source added.")
	assert.Contains(t, out, "issue-tracker (gitlab group/app)")
}

func TestSourceAddCmd_PromptsForToken(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()

	out, err := execute(t, "secret-token\n",
		"source", "add", "wiki-pages",
		"--project", "app", "--name", "Wiki",
		"--flavour", "github", "--repo", "octo/app")
	require.NoError(t, err)

	assert.Contains(t, out, "Access token:")
	require.Len(t, f.sources.added, 1)
	require.NotNil(t, f.sources.added[0].Wiki)
	assert.Equal(t, "secret-token", f.sources.added[0].Wiki.Token)
}

func TestSourceAddCmd_Document(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()

	_, err := execute(t, "",
		"source", "add", "word-processor-doc",
		"--project", "app", "--name", "Specs",
		"--url", "https://drive.google.com/drive/folders/abc")
	require.NoError(t, err)

	require.Len(t, f.sources.added, 1)
	assert.Equal(t, "https://drive.google.com/drive/folders/abc", f.sources.added[0].WordProcessor.URL)
}

func TestSourceAddCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown project", []string{"manual", "--project", "nope", "--name", "x"}, domain.ErrNotFound},
		{"unknown kind", []string{"ftp", "--project", "app", "--name", "x"}, domain.ErrInvalidInput},
		{"missing url", []string{"word-processor-doc", "--project", "app", "--name", "x"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupServices()
			defer cleanup()

			_, err := execute(t, "", append([]string{"source", "add"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSourceAddCmd_RequiredFlags(t *testing.T) {
	for _, name := range []string{"project", "name"} {
		flag := sourceAddCmd.Flags().Lookup(name)
		require.NotNil(t, flag)
		assert.Contains(t, flag.Annotations, "cobra_annotation_bash_completion_one_required_flag")
	}
}

func TestSourceListCmd(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()
	updated := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	f.sources.sources = []domain.Source{
		{ID: "src-1", ProjectID: "proj-app", Name: "Notes", Kind: domain.SourceKindManual, LastUpdatedAt: &updated},
		{ID: "src-2", ProjectID: "proj-other", Name: "Other", Kind: domain.SourceKindManual},
	}

	out, err := execute(t, "", "source", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "src-1")
	assert.Contains(t, out, "src-2")
	assert.Contains(t, out, "2025-01-02 03:04")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "Total: 2 sources")

	out, err = execute(t, "", "source", "list", "--project", "app")
	require.NoError(t, err)
	assert.Contains(t, out, "src-1")
	assert.NotContains(t, out, "src-2")
}

func TestSourceListCmd_Empty(t *testing.T) {
	_, cleanup := setupServices()
	defer cleanup()

	out, err := execute(t, "", "source", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sources configured.")
}

func TestSourceRemoveCmd(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()
	f.sources.sources = []domain.Source{{ID: "src-1", Name: "Notes", Kind: domain.SourceKindManual}}

	out, err := execute(t, "", "source", "remove", "src-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Source removed: src-1")
	assert.Equal(t, []string{"src-1"}, f.sources.removed)

	_, err = execute(t, "", "source", "remove", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
