package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Projects group the sources whose documents are indexed together.`,
}

var projectAddCmd = &cobra.Command{
	Use:   "add [code] [name]",
	Short: "Create a project",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

func init() {
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	name := ""
	if len(args) > 1 {
		name = args[1]
	}

	project, err := projectService.Add(cmd.Context(), args[0], name)
	if err != nil {
		return fmt.Errorf("failed to add project: %w", err)
	}

	cmd.Println(success("Project created."))
	cmd.Printf("  %s %s\n", label("ID:  "), project.ID)
	cmd.Printf("  %s %s\n", label("Code:"), project.Code)
	cmd.Printf("  %s %s\n", label("Name:"), project.Name)
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	projects, err := projectService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		cmd.Println("No projects configured.")
		return nil
	}

	cmd.Println(heading("Projects"))
	for i := range projects {
		cmd.Printf("  %-16s %s %s\n", projects[i].Code, projects[i].Name, label("("+projects[i].ID+")"))
	}
	return nil
}
