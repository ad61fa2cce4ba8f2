package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/viewport"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive canvas",
	Long: `Launch the interactive terminal canvas for the current project.

The page is drawn as a character grid. Drag with the mouse to draw with the
rectangle tool, click to select with the select tool.

Controls:
  s / b        - Select tool / rectangle tool
  tab          - Next annotation type
  + - 0        - Zoom in / out / reset
  r / R        - Rotate clockwise / counter-clockwise
  f / w        - Fit page / fit width
  n p g G :    - Next / previous / first / last / go to page
  u / ctrl+r   - Undo / redo
  d / x / h    - Delete selected / clear all / hide selected
  i / I        - Isolate selected / exit isolation
  t            - Hierarchy tree
  ?            - Toggle help
  q            - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	surface := viewport.New(0, 0, 0, 0)
	return withSession(cmd, surface, surface, func(session driving.Session) error {
		app, err := tui.NewApp(&tui.Ports{
			Session:  session,
			Canvas:   surface,
			Settings: settingsService,
		})
		if err != nil {
			return fmt.Errorf("failed to create TUI: %w", err)
		}

		if restore, err := logger.ToFile(tuiLogPath()); err == nil {
			defer restore()
		}

		ctx, cancel := context.WithCancel(commandContext(cmd))
		defer cancel()
		app.WithContext(ctx)

		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

		if configStore != nil {
			if err := configStore.Watch(ctx, func() { p.Send(messages.ConfigReloaded{}) }); err != nil {
				logger.Warn("settings will not reload: %v", err)
			}
		}

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}

// tuiLogPath places the TUI log next to the config file.
func tuiLogPath() string {
	if configStore != nil && configStore.Path() != "" {
		return filepath.Join(filepath.Dir(configStore.Path()), "plancanvas.log")
	}
	return filepath.Join(os.TempDir(), "plancanvas.log")
}
