package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Ensure ProjectStore implements the interfaces.
var (
	_ driven.ProjectStore   = (*ProjectStore)(nil)
	_ driven.ViewStateStore = (*ProjectStore)(nil)
)

// ProjectStore is an in-memory implementation of driven.ProjectStore
// that also remembers view state.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
	views    map[string]domain.ViewState
}

// NewProjectStore creates a new in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[string]domain.Project),
		views:    make(map[string]domain.ViewState),
	}
}

// Save creates or updates a project.
func (s *ProjectStore) Save(_ context.Context, project domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = copyProject(project)
	return nil
}

// Get retrieves a project by ID.
func (s *ProjectStore) Get(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := copyProject(p)
	return &c, nil
}

// List returns all projects ordered by name.
func (s *ProjectStore) List(_ context.Context) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		result = append(result, copyProject(p))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Delete removes a project and its view state.
func (s *ProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	delete(s.views, id)
	return nil
}

// SaveViewState stores the view for a project.
func (s *ProjectStore) SaveViewState(_ context.Context, projectID string, view domain.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[projectID] = view
	return nil
}

// GetViewState returns the stored view.
func (s *ProjectStore) GetViewState(_ context.Context, projectID string) (*domain.ViewState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.views[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func copyProject(p domain.Project) domain.Project {
	p.RoomCodes = copyMap(p.RoomCodes)
	p.RoomColors = copyMap(p.RoomColors)
	return p
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
