package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IQ2i/thot/internal/core/ports/driving"
)

var indexCmd = &cobra.Command{
	Use:   "index [project]",
	Short: "Chunk and index synchronised documents",
	Long: `Normalises and chunks the documents of a project that changed since they
were last indexed, then hands the chunks to the indexer in batches.
Use --all to index every project.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

// Flags of index.
var (
	indexAll           bool
	indexIncludeClosed bool
)

func init() {
	indexCmd.Flags().BoolVarP(&indexAll, "all", "a", false, "Index every project")
	indexCmd.Flags().BoolVar(&indexIncludeClosed, "include-closed", false, "Reindex every document, closed ones included")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("index service not configured")
	}

	ctx := cmd.Context()
	// Only the flag forces a full reindex; sync.include_closed is about importing.
	includeClosed := indexIncludeClosed

	switch {
	case len(args) == 1:
		project, err := resolveProject(cmd, args[0])
		if err != nil {
			return fmt.Errorf("failed to find project: %w", err)
		}
		cmd.Printf("Indexing project: %s...\n", project.Code)
		report, err := ingestService.IngestProject(ctx, project.ID, includeClosed)
		if err != nil {
			return fmt.Errorf("index failed: %w", err)
		}
		printReport(cmd, project.Code, report)

	case indexAll:
		cmd.Println("Indexing all projects...")
		reports, err := ingestService.IngestAll(ctx, includeClosed)
		for i := range reports {
			printReport(cmd, reports[i].ProjectID, &reports[i])
		}
		if err != nil {
			return fmt.Errorf("index failed: %w", err)
		}

	default:
		return errors.New("specify a project or --all")
	}

	return nil
}

func printReport(cmd *cobra.Command, name string, report *driving.IngestReport) {
	cmd.Println(success(fmt.Sprintf("Indexed %s:", name)))
	cmd.Printf("  %s %d\n", label("Documents:"), report.Documents)
	cmd.Printf("  %s %d\n", label("Chunks:   "), report.Chunks)
	cmd.Printf("  %s %d\n", label("Batches:  "), report.Batches)
}
