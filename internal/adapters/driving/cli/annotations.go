package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

var annotationsCmd = &cobra.Command{
	Use:     "annotations",
	Aliases: []string{"ann"},
	Short:   "Manage annotations",
	Long:    `List, import, export and delete the annotations of a project.`,
}

var annotationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List annotations",
	Long: `List annotations, optionally narrowed by filters. Filters combine with AND.

Hidden annotations are left out unless --visibility is given.`,
	RunE: runAnnotationsList,
}

var annotationsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import annotations from a JSON file",
	Long: `Import a JSON array of annotations. Missing IDs, colours and labels are
derived; "-" reads standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotationsImport,
}

var annotationsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export annotations as JSON",
	Long:  `Write every annotation as a JSON array to file, or to standard output.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnnotationsExport,
}

var annotationsDeleteCmd = &cobra.Command{
	Use:   "delete [annotation-id]",
	Short: "Delete an annotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationsDelete,
}

var annotationsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every annotation",
	Long:  `Delete every annotation of the project after confirmation.`,
	RunE:  runAnnotationsClear,
}

var (
	listRoomFlag       string
	listTypeFlag       string
	listPageFlag       string
	listVisibilityFlag string
	listJSONFlag       bool
	clearYesFlag       bool
)

func init() {
	annotationsListCmd.Flags().StringVar(&listRoomFlag, "room", "", "only annotations in room ID")
	annotationsListCmd.Flags().StringVar(&listTypeFlag, "type", "",
		"only annotations of type ("+strings.Join(typeNames(), ", ")+")")
	annotationsListCmd.Flags().StringVar(&listPageFlag, "page", "", "only annotations on page")
	annotationsListCmd.Flags().StringVar(&listVisibilityFlag, "visibility", "", "visible or hidden")
	annotationsListCmd.Flags().BoolVar(&listJSONFlag, "json", false, "print JSON")
	annotationsClearCmd.Flags().BoolVarP(&clearYesFlag, "yes", "y", false, "skip confirmation")

	annotationsCmd.AddCommand(annotationsListCmd)
	annotationsCmd.AddCommand(annotationsImportCmd)
	annotationsCmd.AddCommand(annotationsExportCmd)
	annotationsCmd.AddCommand(annotationsDeleteCmd)
	annotationsCmd.AddCommand(annotationsClearCmd)
	rootCmd.AddCommand(annotationsCmd)
}

func runAnnotationsList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, nil, nil, func(session driving.Session) error {
		filters := []struct {
			t     domain.FilterType
			value string
		}{
			{domain.FilterByRoom, listRoomFlag},
			{domain.FilterByType, listTypeFlag},
			{domain.FilterByPage, listPageFlag},
			{domain.FilterByVisibility, listVisibilityFlag},
		}
		for _, f := range filters {
			if f.value == "" {
				continue
			}
			if !session.ApplyFilter(f.t, f.value) {
				return fmt.Errorf("%w: invalid %s filter %q", domain.ErrInvalidInput, f.t, f.value)
			}
		}

		list := session.Snapshot().Filtered
		if listJSONFlag {
			return writeJSON(cmd.OutOrStdout(), list)
		}

		if len(list) == 0 {
			cmd.Println("No annotations.")
			return nil
		}
		cmd.Printf("%d annotation(s):\n", len(list))
		for _, a := range list {
			cmd.Printf("  %s  p%d  %-11s %-16s %s\n", a.ID, a.PageNumber, a.Type, a.Text, formatRect(a.Rect()))
		}
		return nil
	})
}

func runAnnotationsImport(cmd *cobra.Command, args []string) error {
	var r io.Reader
	if args[0] == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var incoming []domain.Annotation
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return fmt.Errorf("%w: decoding annotations: %v", domain.ErrInvalidInput, err)
	}

	return withSession(cmd, nil, nil, func(session driving.Session) error {
		skipped := 0
		for _, a := range incoming {
			if a.Rect().IsEmpty() || !a.Rect().IsFinite() {
				skipped++
				continue
			}
			session.AddAnnotation(a)
		}
		cmd.Printf("Imported %d annotation(s)", len(incoming)-skipped)
		if skipped > 0 {
			cmd.Printf(", skipped %d with empty bounds", skipped)
		}
		cmd.Println()
		return nil
	})
}

func runAnnotationsExport(cmd *cobra.Command, args []string) error {
	return withSession(cmd, nil, nil, func(session driving.Session) error {
		list := session.Snapshot().Annotations
		if len(args) == 0 || args[0] == "-" {
			return writeJSON(cmd.OutOrStdout(), list)
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		if err := writeJSON(f, list); err != nil {
			return err
		}
		cmd.Printf("Exported %d annotation(s) to %s\n", len(list), args[0])
		return nil
	})
}

func runAnnotationsDelete(cmd *cobra.Command, args []string) error {
	return withSession(cmd, nil, nil, func(session driving.Session) error {
		if !session.Select(args[0]) || !session.DeleteSelected() {
			return fmt.Errorf("annotation %s: %w", args[0], domain.ErrNotFound)
		}
		cmd.Printf("Deleted annotation %s\n", args[0])
		return nil
	})
}

func runAnnotationsClear(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, nil, nil, func(session driving.Session) error {
		count := len(session.Snapshot().Annotations)
		if count == 0 {
			cmd.Println("No annotations to delete.")
			return nil
		}
		if !session.ClearAll(promptConfirmer(cmd)) {
			cmd.Println("Cancelled.")
			return nil
		}
		cmd.Printf("Deleted %d annotation(s)\n", count)
		return nil
	})
}

// promptConfirmer asks on the command's input unless --yes was given.
func promptConfirmer(cmd *cobra.Command) driven.Confirmer {
	if clearYesFlag {
		return driven.ConfirmFunc(func(string) bool { return true })
	}
	return driven.ConfirmFunc(func(message string) bool {
		cmd.Printf("%s [y/N]: ", message)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func formatRect(r domain.Rect) string {
	return fmt.Sprintf("[%.3f,%.3f %.3fx%.3f]", r.X, r.Y, r.Width, r.Height)
}

func typeNames() []string {
	types := domain.AnnotationTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
