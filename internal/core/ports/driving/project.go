package driving

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// ProjectService manages projects and their hierarchy records.
type ProjectService interface {
	// Create creates a project with a generated ID.
	Create(ctx context.Context, name, projectNumber, documentPath string) (*domain.Project, error)

	// Get retrieves a project by ID.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// List returns all projects.
	List(ctx context.Context) ([]domain.Project, error)

	// SetRoomCode maps a room type to its label code.
	SetRoomCode(ctx context.Context, id, roomType, code string) error

	// SetRoomColor maps a room type to a #RRGGBB colour.
	SetRoomColor(ctx context.Context, id, roomType, color string) error

	// Delete removes a project.
	Delete(ctx context.Context, id string) error

	// Hierarchy loads the project's hierarchy records.
	Hierarchy(ctx context.Context, id string) (domain.Hierarchy, error)

	// AddNode records a hierarchy node under parentID (ignored for rooms).
	AddNode(ctx context.Context, projectID string, node HierarchyNode) error
}

// HierarchyNode describes a hierarchy record to add.
type HierarchyNode struct {
	Level    domain.HierarchyLevel
	ID       int64
	ParentID int64
	Name     string

	// RoomType applies to rooms only.
	RoomType string
}
