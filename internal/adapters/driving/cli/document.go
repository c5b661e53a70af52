package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage stored documents",
	Long:  `List and view synchronised documents, or write documents into manual sources.`,
}

var documentAddCmd = &cobra.Command{
	Use:   "add [source-id]",
	Short: "Add a document to a manual source",
	Long: `Adds a document to a manual source. The content is read from --file,
or from standard input when --file is "-".`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentAdd,
}

var documentListCmd = &cobra.Command{
	Use:   "list [source-id]",
	Short: "List documents for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentShow,
}

var documentEditCmd = &cobra.Command{
	Use:   "edit [doc-id]",
	Short: "Edit a document of a manual source",
	Long: `Replaces the title and/or content of a manual document and queues it
for reindexing. Omitted values are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentEdit,
}

var documentRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a document of a manual source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentRemove,
}

// Flags of document add, edit and show.
var (
	documentTitle       string
	documentFile        string
	documentShowContent bool
	editTitle           string
	editFile            string
)

func init() {
	documentAddCmd.Flags().StringVarP(&documentTitle, "title", "t", "", "Document title (required)")
	documentAddCmd.Flags().StringVarP(&documentFile, "file", "f", "-", `Content file, "-" for stdin`)
	_ = documentAddCmd.MarkFlagRequired("title")

	documentShowCmd.Flags().BoolVarP(&documentShowContent, "content", "c", false, "Print the raw content")

	documentEditCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	documentEditCmd.Flags().StringVarP(&editFile, "file", "f", "", `New content file, "-" for stdin`)

	documentCmd.AddCommand(documentAddCmd)
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentEditCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentAdd(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	content, err := readContent(cmd, documentFile)
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	doc, err := documentService.AddManual(cmd.Context(), args[0], documentTitle, content)
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}

	cmd.Println(success("Document added."))
	cmd.Printf("  %s %s\n", label("ID:   "), doc.ID)
	cmd.Printf("  %s %s\n", label("Title:"), doc.Title)
	return nil
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	sourceID := args[0]
	docs, err := documentService.ListBySource(cmd.Context(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for source: %s\n", sourceID)
		return nil
	}

	cmd.Println(heading("Documents for source " + sourceID))
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    %s %s\n", label("Title:"), docs[i].Title)
		if docs[i].WebURL != "" {
			cmd.Printf("    %s %s\n", label("URL:  "), docs[i].WebURL)
		}
		if docs[i].Closed {
			cmd.Printf("    %s\n", warning("closed"))
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	const layout = "2006-01-02 15:04:05"

	cmd.Println(heading("Document: " + doc.ID))
	cmd.Println()
	cmd.Printf("  %s %s\n", label("Title:   "), doc.Title)
	cmd.Printf("  %s %s\n", label("Source:  "), doc.SourceID)
	cmd.Printf("  %s %s\n", label("External:"), doc.ExternalID)
	if doc.WebURL != "" {
		cmd.Printf("  %s %s\n", label("URL:     "), doc.WebURL)
	}
	cmd.Printf("  %s %t\n", label("Closed:  "), doc.Closed)
	cmd.Printf("  %s %s\n", label("Created: "), doc.CreatedAt.Format(layout))
	if doc.UpdatedAt != nil {
		cmd.Printf("  %s %s\n", label("Updated: "), doc.UpdatedAt.Format(layout))
	}
	cmd.Printf("  %s %s\n", label("Synced:  "), doc.SyncedAt.Format(layout))
	if doc.IndexedAt != nil {
		cmd.Printf("  %s %s\n", label("Indexed: "), doc.IndexedAt.Format(layout))
	} else {
		cmd.Printf("  %s %s\n", label("Indexed: "), warning("pending"))
	}

	if documentShowContent {
		cmd.Println()
		cmd.Println(doc.Content)
	}
	return nil
}

func runDocumentEdit(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if editTitle == "" && editFile == "" {
		return errors.New("nothing to change: pass --title or --file")
	}

	doc, err := documentService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	title, content := doc.Title, doc.Content
	if editTitle != "" {
		title = editTitle
	}
	if editFile != "" {
		if content, err = readContent(cmd, editFile); err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
	}

	doc, err = documentService.EditManual(cmd.Context(), doc.ID, title, content)
	if err != nil {
		return fmt.Errorf("failed to edit document: %w", err)
	}

	cmd.Println(success("Document updated."))
	cmd.Printf("  %s %s\n", label("ID:   "), doc.ID)
	cmd.Printf("  %s %s\n", label("Title:"), doc.Title)
	return nil
}

func runDocumentRemove(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := documentService.RemoveManual(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	cmd.Println(success("Document removed: " + args[0]))
	return nil
}

func readContent(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
