package driven

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// HierarchyStore persists the room → location → run → cabinet records
// that annotation references point at.
type HierarchyStore interface {
	// SaveRoom creates or updates a room.
	SaveRoom(ctx context.Context, room domain.Room) error

	// SaveLocation creates or updates a room location.
	SaveLocation(ctx context.Context, projectID string, location domain.RoomLocation) error

	// SaveRun creates or updates a cabinet run.
	SaveRun(ctx context.Context, projectID string, run domain.CabinetRun) error

	// SaveCabinet creates or updates a cabinet.
	SaveCabinet(ctx context.Context, projectID string, cabinet domain.Cabinet) error

	// Load returns every hierarchy record of a project.
	Load(ctx context.Context, projectID string) (domain.Hierarchy, error)
}
