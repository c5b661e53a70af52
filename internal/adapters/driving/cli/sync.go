package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync [project]",
	Short: "Synchronise documents from sources",
	Long: `Imports new items and refreshes open ones from every source of a project.
Use --all to synchronise every project, or --source for a single source.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

// Flags of sync.
var (
	syncAll           bool
	syncSource        string
	syncIncludeClosed bool
)

func init() {
	syncCmd.Flags().BoolVarP(&syncAll, "all", "a", false, "Synchronise every source")
	syncCmd.Flags().StringVarP(&syncSource, "source", "s", "", "Synchronise a single source")
	syncCmd.Flags().BoolVar(&syncIncludeClosed, "include-closed", false, "Also import and refresh closed items")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	ctx := cmd.Context()
	includeClosed := syncIncludeClosed || syncSettings.IncludeClosed

	switch {
	case syncSource != "":
		cmd.Printf("Synchronising source: %s...\n", syncSource)
		if err := syncOrchestrator.Sync(ctx, syncSource, includeClosed); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		cmd.Println(success(fmt.Sprintf("Source %s synchronised successfully.", syncSource)))

	case len(args) == 1:
		project, err := resolveProject(cmd, args[0])
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}
		cmd.Printf("Synchronising project: %s...\n", project.Code)
		if err := syncOrchestrator.SyncProject(ctx, project.ID, includeClosed); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		cmd.Println(success(fmt.Sprintf("Project %s synchronised successfully.", project.Code)))

	case syncAll:
		cmd.Println("Synchronising all sources...")
		if err := syncOrchestrator.SyncAll(ctx, includeClosed); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		cmd.Println(success("All sources synchronised successfully."))

	default:
		return errors.New("specify a project, --source or --all")
	}

	return nil
}
