package driven

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// ProjectStore persists project metadata.
type ProjectStore interface {
	// Save creates or updates a project.
	Save(ctx context.Context, project domain.Project) error

	// Get retrieves a project by ID.
	Get(ctx context.Context, id string) (*domain.Project, error)

	// List returns all projects.
	List(ctx context.Context) ([]domain.Project, error)

	// Delete removes a project and everything it owns.
	Delete(ctx context.Context, id string) error
}

// ViewStateStore remembers the last view per project.
type ViewStateStore interface {
	// SaveViewState stores the view for a project.
	SaveViewState(ctx context.Context, projectID string, view domain.ViewState) error

	// GetViewState returns the stored view, or domain.ErrNotFound.
	GetViewState(ctx context.Context, projectID string) (*domain.ViewState, error)
}
