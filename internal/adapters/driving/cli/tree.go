package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the annotation hierarchy",
	Long: `Print annotations grouped room > location > run > cabinet, or grouped by
page with --by page. Counts include every annotation beneath a node.`,
	RunE: runTree,
}

var treeByFlag string

func init() {
	treeCmd.Flags().StringVar(&treeByFlag, "by", "room", "group by room or page")
	rootCmd.AddCommand(treeCmd)
}

// treeStyles colours node labels by type.
var treeStyles = map[domain.NodeType]lipgloss.Style{
	domain.NodePage:       lipgloss.NewStyle().Bold(true),
	domain.NodeRoom:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
	domain.NodeLocation:   lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	domain.NodeCabinetRun: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	domain.NodeCabinet:    lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	domain.NodeUnassigned: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#6B7280")),
}

var treeCountStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

func runTree(cmd *cobra.Command, _ []string) error {
	var byPage bool
	switch treeByFlag {
	case "room":
	case "page":
		byPage = true
	default:
		return fmt.Errorf("%w: --by must be room or page", domain.ErrInvalidInput)
	}

	return withSession(cmd, nil, nil, func(session driving.Session) error {
		nodes := session.Tree(byPage)
		if len(nodes) == 0 {
			cmd.Println("No annotations.")
			return nil
		}
		renderTree(cmd.OutOrStdout(), nodes, isTerminal())
		return nil
	})
}

// renderTree writes nodes as an indented tree.
func renderTree(w io.Writer, nodes []domain.TreeNode, styled bool) {
	for i, n := range nodes {
		renderNode(w, n, "", i == len(nodes)-1, styled)
	}
}

func renderNode(w io.Writer, n domain.TreeNode, prefix string, last, styled bool) {
	branch, indent := "├── ", "│   "
	if last {
		branch, indent = "└── ", "    "
	}

	label := n.Name
	count := fmt.Sprintf("(%d)", n.AnnotationCount)
	if styled {
		if style, ok := treeStyles[n.Type]; ok {
			label = style.Render(label)
		}
		count = treeCountStyle.Render(count)
	}
	fmt.Fprintf(w, "%s%s%s %s\n", prefix, branch, label, count)

	for i, child := range n.Children {
		renderNode(w, child, prefix+indent, i == len(n.Children)-1, styled)
	}
}
