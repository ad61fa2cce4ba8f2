package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/adapters/driven/document/static"
	"github.com/custodia-labs/plancanvas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/services"
)

// newTestServer opens a two-page project with a kitchen on page 1 and an
// unassigned annotation on page 2.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()
	store := memory.NewAnnotationStore()
	require.NoError(t, store.ReplaceAll(ctx, "p1", []domain.Annotation{
		{ID: "room-1", PageNumber: 1, Type: domain.AnnotationRoom, Text: "Kitchen",
			X: 0.05, Y: 0.05, Width: 0.6, Height: 0.5, RoomID: domain.Ref(1)},
		{ID: "loc-10", PageNumber: 1, Type: domain.AnnotationLocation, Text: "KIT-L1",
			X: 0.1, Y: 0.1, Width: 0.3, Height: 0.1,
			RoomID: domain.Ref(1), RoomLocationID: domain.Ref(10)},
		{ID: "gen-1", PageNumber: 2, Type: domain.AnnotationGeneric,
			X: 0.5, Y: 0.5, Width: 0.2, Height: 0.2},
	}))

	hierarchy := domain.NewHierarchy([]domain.Room{{ID: 1, Name: "Kitchen"}}, nil, nil, nil)
	session, err := services.NewSession(ctx, domain.Project{ID: "p1", Name: "Smith Kitchen", ProjectNumber: "TFW"},
		hierarchy, services.SessionOptions{
			Annotations: store,
			Renderer:    static.Blank(2, static.SizeA3),
			Settings:    domain.DefaultSettings(),
		})
	require.NoError(t, err)
	t.Cleanup(session.Flush)

	server, err := NewServer(&Ports{Session: session})
	require.NoError(t, err)
	return server
}
