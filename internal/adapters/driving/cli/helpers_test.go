package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/document/static"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/core/services"
)

// testEnv is a fully wired command environment over memory stores.
type testEnv struct {
	projects    *services.ProjectService
	settings    *services.SettingsService
	annotations *memory.AnnotationStore
	project     *domain.Project
}

// setupTestServices wires services with one project and a two-page blank
// document, and restores every global and flag when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		projects:    services.NewProjectService(memory.NewProjectStore(), memory.NewHierarchyStore(), "#3B82F6"),
		settings:    services.NewSettingsService(memory.NewConfigStore()),
		annotations: memory.NewAnnotationStore(),
	}
	p, err := env.projects.Create(ctx, "Smith Kitchen", "TFW", "")
	require.NoError(t, err)
	env.project = p

	opener := func(ctx context.Context, projectID string, view driven.ViewportGeometry, cursor driven.CursorTarget) (driving.Session, error) {
		project, err := env.projects.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		hierarchy, err := env.projects.Hierarchy(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return services.NewSession(ctx, *project, hierarchy, services.SessionOptions{
			Annotations: env.annotations,
			Renderer:    static.Blank(2, static.SizeA3),
			Viewport:    view,
			Cursor:      cursor,
			Settings:    domain.DefaultSettings(),
		})
	}

	oldProject, oldSettings, oldOpen, oldConfig := projectService, settingsService, openSession, configStore
	oldTerminal := isTerminal
	SetServices(Services{Project: env.projects, Settings: env.settings, OpenSession: opener})
	isTerminal = func() bool { return false }

	t.Cleanup(func() {
		projectService, settingsService, openSession, configStore = oldProject, oldSettings, oldOpen, oldConfig
		isTerminal = oldTerminal
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	})
	return env
}

// seed stores annotations for the test project.
func (e *testEnv) seed(t *testing.T, list ...domain.Annotation) {
	t.Helper()
	require.NoError(t, e.annotations.ReplaceAll(context.Background(), e.project.ID, list))
}

func (e *testEnv) stored(t *testing.T) []domain.Annotation {
	t.Helper()
	list, err := e.annotations.List(context.Background(), e.project.ID)
	require.NoError(t, err)
	return list
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func sampleAnnotations() []domain.Annotation {
	return []domain.Annotation{
		{ID: "room-1", PageNumber: 1, Type: domain.AnnotationRoom, Text: "TFW-K01",
			X: 0.05, Y: 0.05, Width: 0.6, Height: 0.5, RoomID: domain.Ref(1)},
		{ID: "loc-10", PageNumber: 1, Type: domain.AnnotationLocation, Text: "TFW-K01-L1",
			X: 0.1, Y: 0.1, Width: 0.3, Height: 0.1,
			RoomID: domain.Ref(1), RoomLocationID: domain.Ref(10)},
		{ID: "gen-1", PageNumber: 2, Type: domain.AnnotationGeneric, Text: "Note",
			X: 0.5, Y: 0.5, Width: 0.2, Height: 0.2},
	}
}
