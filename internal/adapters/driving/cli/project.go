package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `Create projects and configure their room codes and colours.`,
}

var projectInitCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a project",
	Long: `Create a project. Pass --document to attach a plan sheet: an image file or
a directory of page images read in filename order.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectInit,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current project",
	RunE:  runProjectShow,
}

var projectRoomCodeCmd = &cobra.Command{
	Use:   "room-code [room-type] [code]",
	Short: "Set the label code for a room type",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRoomCode,
}

var projectRoomColorCmd = &cobra.Command{
	Use:   "room-color [room-type] [#RRGGBB]",
	Short: "Set the colour for a room type",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRoomColor,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project and its annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var (
	projectNumberFlag   string
	projectDocumentFlag string
)

func init() {
	projectInitCmd.Flags().StringVar(&projectNumberFlag, "number", "", "project number used in labels")
	projectInitCmd.Flags().StringVar(&projectDocumentFlag, "document", "", "plan image or directory of page images")

	projectCmd.AddCommand(projectInitCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectRoomCodeCmd)
	projectCmd.AddCommand(projectRoomColorCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectInit(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	document := projectDocumentFlag
	if document != "" {
		abs, err := filepath.Abs(document)
		if err != nil {
			return fmt.Errorf("resolving document path: %w", err)
		}
		document = abs
	}

	p, err := projectService.Create(commandContext(cmd), args[0], projectNumberFlag, document)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	cmd.Printf("Created project %s\n", p.Name)
	cmd.Printf("  ID: %s\n", p.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	projects, err := projectService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}
	if len(projects) == 0 {
		cmd.Println("No projects. Create one with 'plancanvas project init'.")
		return nil
	}

	cmd.Println("Projects:")
	for _, p := range projects {
		cmd.Printf("  %s  %s", p.ID, p.Name)
		if p.ProjectNumber != "" {
			cmd.Printf(" (%s)", p.ProjectNumber)
		}
		cmd.Println()
	}
	return nil
}

func runProjectShow(cmd *cobra.Command, _ []string) error {
	p, err := resolveProject(commandContext(cmd))
	if err != nil {
		return err
	}

	cmd.Printf("Project: %s\n", p.Name)
	cmd.Printf("  ID:       %s\n", p.ID)
	cmd.Printf("  Number:   %s\n", valueOr(p.ProjectNumber, "(none)"))
	cmd.Printf("  Document: %s\n", valueOr(p.DocumentPath, "(blank sheet)"))
	cmd.Printf("  Colour:   %s\n", p.FallbackColor())

	if len(p.RoomCodes) > 0 || len(p.RoomColors) > 0 {
		cmd.Println("  Room types:")
		for _, roomType := range roomTypes(p.RoomCodes, p.RoomColors) {
			cmd.Printf("    %-12s code=%s colour=%s\n", roomType,
				valueOr(p.RoomCodes[roomType], "-"), valueOr(p.RoomColors[roomType], "-"))
		}
	}
	return nil
}

func runProjectRoomCode(cmd *cobra.Command, args []string) error {
	p, err := resolveProject(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := projectService.SetRoomCode(commandContext(cmd), p.ID, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set room code: %w", err)
	}
	cmd.Printf("Room type %s uses code %s\n", args[0], args[1])
	return nil
}

func runProjectRoomColor(cmd *cobra.Command, args []string) error {
	p, err := resolveProject(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := projectService.SetRoomColor(commandContext(cmd), p.ID, args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set room colour: %w", err)
	}
	cmd.Printf("Room type %s uses colour %s\n", args[0], args[1])
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if err := projectService.Delete(commandContext(cmd), args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	cmd.Printf("Deleted project %s\n", args[0])
	return nil
}

func roomTypes(maps ...map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range maps {
		for k := range m {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
