package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of driven.AnnotationStore.
type AnnotationStore struct {
	mu       sync.RWMutex
	projects map[string][]domain.Annotation
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		projects: make(map[string][]domain.Annotation),
	}
}

// List returns a copy of the project's annotations.
func (s *AnnotationStore) List(_ context.Context, projectID string) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneAnnotations(s.projects[projectID]), nil
}

// ReplaceAll overwrites the project's annotations.
func (s *AnnotationStore) ReplaceAll(_ context.Context, projectID string, list []domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[projectID] = domain.CloneAnnotations(list)
	return nil
}

// Save creates or updates a single annotation.
func (s *AnnotationStore) Save(_ context.Context, projectID string, annotation domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.projects[projectID]
	if idx := domain.IndexOf(list, annotation.ID); idx >= 0 {
		list[idx] = annotation.Clone()
		return nil
	}
	s.projects[projectID] = append(list, annotation.Clone())
	return nil
}

// Delete removes an annotation by ID.
func (s *AnnotationStore) Delete(_ context.Context, projectID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.projects[projectID]
	idx := domain.IndexOf(list, id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.projects[projectID] = append(list[:idx:idx], list[idx+1:]...)
	return nil
}
