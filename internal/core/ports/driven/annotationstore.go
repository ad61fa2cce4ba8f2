package driven

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// AnnotationStore persists annotations per project.
type AnnotationStore interface {
	// List returns all annotations for a project in stored order.
	List(ctx context.Context, projectID string) ([]domain.Annotation, error)

	// ReplaceAll overwrites the project's annotations with list.
	// This is the save callback fired after every mutating operation.
	ReplaceAll(ctx context.Context, projectID string, list []domain.Annotation) error

	// Save creates or updates a single annotation.
	Save(ctx context.Context, projectID string, annotation domain.Annotation) error

	// Delete removes an annotation by ID.
	Delete(ctx context.Context, projectID, id string) error
}
