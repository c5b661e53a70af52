package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IQ2i/thot/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage document sources",
	Long:  `Add, list, or remove the external systems a project imports from.`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [kind]",
	Short: "Add a source to a project",
	Long: `Adds a source to a project. Kinds:
  issue-tracker       GitLab, Redmine or GitHub issues (--flavour)
  wiki-pages          GitLab or GitHub wiki pages (--flavour)
  word-processor-doc  a Google Docs document or Drive folder (--url)
  manual              documents written with "thot document add"

Remote sources prompt for an access token when --token is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [source-id]",
	Short: "Remove a source and its documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

// Flags of source add and list.
var (
	sourceProject string
	sourceName    string
	sourceFlavour string
	sourceBaseURL string
	sourceRepo    string
	sourceDocURL  string
	sourceToken   string
)

func init() {
	sourceAddCmd.Flags().StringVarP(&sourceProject, "project", "p", "", "Project code or ID (required)")
	sourceAddCmd.Flags().StringVarP(&sourceName, "name", "n", "", "Display name (required)")
	sourceAddCmd.Flags().StringVar(&sourceFlavour, "flavour", "", "gitlab, redmine or github")
	sourceAddCmd.Flags().StringVar(&sourceBaseURL, "base-url", "", "Instance URL, e.g. https://gitlab.example.com")
	sourceAddCmd.Flags().StringVar(&sourceRepo, "repo", "", "Project path, identifier or owner/repo")
	sourceAddCmd.Flags().StringVar(&sourceDocURL, "url", "", "Document or folder link")
	sourceAddCmd.Flags().StringVar(&sourceToken, "token", "", "Access token")
	_ = sourceAddCmd.MarkFlagRequired("project")
	_ = sourceAddCmd.MarkFlagRequired("name")

	sourceListCmd.Flags().StringVarP(&sourceProject, "project", "p", "", "Only list sources of this project")

	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	project, err := resolveProject(cmd, sourceProject)
	if err != nil {
		return fmt.Errorf("failed to find project: %w", err)
	}

	source := domain.Source{
		ProjectID: project.ID,
		Name:      sourceName,
		Kind:      domain.SourceKind(args[0]),
	}

	switch source.Kind {
	case domain.SourceKindIssueTracker, domain.SourceKindWikiPages:
		remote := &domain.RemoteConfig{
			Flavour: domain.Flavour(sourceFlavour),
			BaseURL: strings.TrimRight(sourceBaseURL, "/"),
			Project: sourceRepo,
			Token:   sourceToken,
		}
		if remote.Token == "" {
			remote.Token, err = readSecret(cmd, "Access token: ")
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
		}
		if source.Kind == domain.SourceKindIssueTracker {
			source.IssueTracker = remote
		} else {
			source.Wiki = remote
		}
	case domain.SourceKindWordProcessorDoc:
		source.WordProcessor = &domain.DocumentConfig{URL: sourceDocURL}
	}

	created, err := sourceService.Add(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	cmd.Println(success("Source added."))
	cmd.Printf("  %s %s\n", label("ID:     "), created.ID)
	cmd.Printf("  %s %s\n", label("Kind:   "), describeKind(created))
	cmd.Printf("  %s %s\n", label("Project:"), project.Code)
	return nil
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	var (
		sources []domain.Source
		err     error
	)
	if sourceProject != "" {
		project, rerr := resolveProject(cmd, sourceProject)
		if rerr != nil {
			return fmt.Errorf("failed to find project: %w", rerr)
		}
		sources, err = sourceService.ListByProject(cmd.Context(), project.ID)
	} else {
		sources, err = sourceService.List(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}

	cmd.Println(heading("Sources"))
	for i := range sources {
		s := &sources[i]
		cmd.Printf("  %s\n", s.ID)
		cmd.Printf("    %s %s\n", label("Name:   "), s.Name)
		cmd.Printf("    %s %s\n", label("Kind:   "), describeKind(s))
		if s.LastUpdatedAt != nil {
			cmd.Printf("    %s %s\n", label("Updated:"), s.LastUpdatedAt.Format("2006-01-02 15:04"))
		} else {
			cmd.Printf("    %s %s\n", label("Updated:"), warning("never"))
		}
	}
	cmd.Printf("\nTotal: %d sources\n", len(sources))
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	if err := sourceService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}

	cmd.Println(success("Source removed: " + args[0]))
	return nil
}

func describeKind(s *domain.Source) string {
	if remote := s.Remote(); remote != nil {
		return fmt.Sprintf("%s (%s %s)", s.Kind, remote.Flavour, remote.Project)
	}
	if s.WordProcessor != nil {
		return fmt.Sprintf("%s (%s)", s.Kind, s.WordProcessor.URL)
	}
	return string(s.Kind)
}

// readSecret reads a line without echo when stdin is a terminal.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	cmd.Print(prompt)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
