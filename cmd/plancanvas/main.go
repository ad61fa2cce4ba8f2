// Command plancanvas annotates architectural plan sheets from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/config/file"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/document/raster"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/document/static"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/cli"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/core/services"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return 1
	}

	store, err := sqlite.NewStore(settings.Data.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening database: %v\n", err)
		return 1
	}
	defer store.Close()

	projectService := services.NewProjectService(store.ProjectStore(), store.HierarchyStore(), settings.Colors.Default)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Project:  projectService,
		Settings: settingsService,
		Config:   configStore,
		OpenSession: func(
			ctx context.Context,
			projectID string,
			view driven.ViewportGeometry,
			cursor driven.CursorTarget,
		) (driving.Session, error) {
			project, err := projectService.Get(ctx, projectID)
			if err != nil {
				return nil, err
			}
			hierarchy, err := projectService.Hierarchy(ctx, projectID)
			if err != nil {
				return nil, err
			}
			renderer, err := openDocument(ctx, project.DocumentPath)
			if err != nil {
				return nil, err
			}
			// Settings may have changed since startup.
			current, err := settingsService.Get()
			if err != nil {
				logger.Warn("failed to reload settings: %v", err)
				current = settings
			}
			return services.NewSession(ctx, *project, hierarchy, services.SessionOptions{
				Annotations: store.AnnotationStore(),
				Views:       store.ViewStateStore(),
				Renderer:    renderer,
				Viewport:    view,
				Cursor:      cursor,
				Settings:    *current,
			})
		},
	})

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return cli.ExitCode(err)
	}
	return 0
}

// preloadWorkers bounds concurrent page header reads.
const preloadWorkers = 4

// openDocument opens the project's plan sheet, or a single blank A3 sheet
// when the project has none.
func openDocument(ctx context.Context, path string) (driven.DocumentRenderer, error) {
	if path == "" {
		return static.Blank(1, static.SizeA3), nil
	}
	doc, err := raster.Open(path)
	if err != nil {
		return nil, fmt.Errorf("project document %s: %w", path, err)
	}
	if err := doc.Preload(ctx, preloadWorkers); err != nil {
		return nil, fmt.Errorf("project document %s: %w", path, err)
	}
	return doc, nil
}
