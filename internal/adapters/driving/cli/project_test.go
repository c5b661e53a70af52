package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

func TestProjectCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0, 2)
	for _, cmd := range projectCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"add", "list"}, names)
}

func TestProjectAddCmd(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()

	out, err := execute(t, "", "project", "add", "web", "Web site")
	require.NoError(t, err)

	assert.Contains(t, out, "Project created.")
	assert.Contains(t, out, "proj-web")
	assert.Contains(t, out, "Web site")
	assert.Len(t, f.projects.projects, 2)
}

func TestProjectAddCmd_Error(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()
	f.projects.addErr = fmt.Errorf("save project: %w", domain.ErrAlreadyExists)

	_, err := execute(t, "", "project", "add", "app")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestProjectAddCmd_RequiresCode(t *testing.T) {
	_, cleanup := setupServices()
	defer cleanup()

	_, err := execute(t, "", "project", "add")
	assert.Error(t, err)
}

func TestProjectListCmd(t *testing.T) {
	f, cleanup := setupServices()
	defer cleanup()

	out, err := execute(t, "", "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "app")
	assert.Contains(t, out, "App")

	f.projects.projects = nil
	out, err = execute(t, "", "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects configured.")
}
