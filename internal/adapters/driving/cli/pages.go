package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the pages of the project document",
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, _ []string) error {
	return withSession(cmd, nil, nil, func(session driving.Session) error {
		ctx := commandContext(cmd)
		snap := session.Snapshot()
		if snap.PageCount == 0 {
			return domain.ErrNoDocument
		}
		current := snap.View.Page

		counts := make(map[int]int)
		for _, a := range snap.Annotations {
			counts[a.PageNumber]++
		}

		cmd.Printf("%d page(s):\n", snap.PageCount)
		ok, err := session.FirstPage(ctx)
		for ok && err == nil {
			page := session.Snapshot().Page
			marker := " "
			if page.Number == current {
				marker = "*"
			}
			cmd.Printf("%s %3d  %6.0f x %-6.0f %3d annotation(s)  %s\n",
				marker, page.Number, page.Width, page.Height, counts[page.Number], page.Source)
			ok, err = session.NextPage(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to read pages: %w", err)
		}

		if _, err := session.GoToPage(ctx, current); err != nil {
			return fmt.Errorf("failed to restore page: %w", err)
		}
		return nil
	})
}
