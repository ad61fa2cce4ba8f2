// Package cli provides the cobra command tree for plancanvas.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// SessionOpener opens the editing session of a project bound to a drawing
// surface. The caller must Flush the session before exiting.
type SessionOpener func(
	ctx context.Context,
	projectID string,
	view driven.ViewportGeometry,
	cursor driven.CursorTarget,
) (driving.Session, error)

// Services holds everything the commands need.
type Services struct {
	Project     driving.ProjectService
	Settings    driving.SettingsService
	OpenSession SessionOpener

	// Config is watched by long-running commands. Optional.
	Config driven.WatchableConfigStore
}

var (
	projectService  driving.ProjectService
	settingsService driving.SettingsService
	openSession     SessionOpener
	configStore     driven.WatchableConfigStore
)

var (
	verboseFlag bool
	projectFlag string
)

var rootCmd = &cobra.Command{
	Use:   "plancanvas",
	Short: "Annotate architectural plan sheets",
	Long: `plancanvas annotates plan sheets with rooms, locations, cabinet runs
and cabinets, organised into a hierarchy that can be filtered, hidden and
isolated.

Most commands act on one project. When only one project exists it is used
automatically; otherwise pass --project.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&projectFlag, "project", "", "project ID")
}

// SetServices wires the services used by every command.
func SetServices(s Services) {
	projectService = s.Project
	settingsService = s.Settings
	openSession = s.OpenSession
	configStore = s.Config
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrAlreadyExists):
		return 2
	default:
		return 1
	}
}

// resolveProject returns the project named by --project, or the only
// project when there is exactly one.
func resolveProject(ctx context.Context) (*domain.Project, error) {
	if projectService == nil {
		return nil, errors.New("project service not configured")
	}
	if projectFlag != "" {
		p, err := projectService.Get(ctx, projectFlag)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", projectFlag, err)
		}
		return p, nil
	}

	projects, err := projectService.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	switch len(projects) {
	case 0:
		return nil, fmt.Errorf("%w: run 'plancanvas project init' first", domain.ErrNoProject)
	case 1:
		return &projects[0], nil
	default:
		return nil, fmt.Errorf("%w: %d projects exist, pass --project", domain.ErrInvalidInput, len(projects))
	}
}

// withSession opens the current project's session, runs fn and flushes
// pending saves.
func withSession(
	cmd *cobra.Command,
	view driven.ViewportGeometry,
	cursor driven.CursorTarget,
	fn func(driving.Session) error,
) error {
	if openSession == nil {
		return errors.New("session opener not configured")
	}
	ctx := commandContext(cmd)
	project, err := resolveProject(ctx)
	if err != nil {
		return err
	}
	session, err := openSession(ctx, project.ID, view, cursor)
	if err != nil {
		return fmt.Errorf("failed to open project: %w", err)
	}
	defer session.Flush()
	return fn(session)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
