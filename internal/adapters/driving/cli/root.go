// Package cli provides the cobra command tree of the thot binary.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/core/ports/driving"
	"github.com/IQ2i/thot/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services wired by main.
var (
	projectService   driving.ProjectService
	sourceService    driving.SourceService
	documentService  driving.DocumentService
	syncOrchestrator driving.SyncOrchestrator
	ingestService    driving.IngestService
	configStore      driven.ConfigStore

	// syncSettings supplies the include-closed default of sync.
	syncSettings = domain.DefaultSyncSettings()
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "thot",
	Short: "Collect project knowledge and index it for retrieval",
	Long: `Thot imports issues, wiki pages and documents from GitLab, Redmine,
GitHub and Google Docs, keeps them up to date, and turns them into
indexed chunks grouped by project.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Services groups the driving ports used by the commands.
type Services struct {
	Projects  driving.ProjectService
	Sources   driving.SourceService
	Documents driving.DocumentService
	Sync      driving.SyncOrchestrator
	Ingest    driving.IngestService
	Config    driven.ConfigStore
	Settings  domain.SyncSettings
}

// SetServices installs the services used by the commands.
func SetServices(s Services) {
	projectService = s.Projects
	sourceService = s.Sources
	documentService = s.Documents
	syncOrchestrator = s.Sync
	ingestService = s.Ingest
	configStore = s.Config
	syncSettings = s.Settings
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Commands observe ctx cancellation.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// resolveProject maps a project id or code to its id.
func resolveProject(cmd *cobra.Command, ref string) (*domain.Project, error) {
	if projectService == nil {
		return nil, errors.New("project service not configured")
	}
	return projectService.Resolve(cmd.Context(), ref)
}
