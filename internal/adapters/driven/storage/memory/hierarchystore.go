package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Ensure HierarchyStore implements the interface.
var _ driven.HierarchyStore = (*HierarchyStore)(nil)

// HierarchyStore is an in-memory implementation of driven.HierarchyStore.
type HierarchyStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Hierarchy
}

// NewHierarchyStore creates a new in-memory hierarchy store.
func NewHierarchyStore() *HierarchyStore {
	return &HierarchyStore{
		projects: make(map[string]*domain.Hierarchy),
	}
}

func (s *HierarchyStore) project(id string) *domain.Hierarchy {
	h, ok := s.projects[id]
	if !ok {
		empty := domain.NewHierarchy(nil, nil, nil, nil)
		h = &empty
		s.projects[id] = h
	}
	return h
}

// SaveRoom creates or updates a room.
func (s *HierarchyStore) SaveRoom(_ context.Context, room domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project(room.ProjectID).Rooms[room.ID] = room
	return nil
}

// SaveLocation creates or updates a room location.
func (s *HierarchyStore) SaveLocation(_ context.Context, projectID string, location domain.RoomLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project(projectID).Locations[location.ID] = location
	return nil
}

// SaveRun creates or updates a cabinet run.
func (s *HierarchyStore) SaveRun(_ context.Context, projectID string, run domain.CabinetRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project(projectID).Runs[run.ID] = run
	return nil
}

// SaveCabinet creates or updates a cabinet.
func (s *HierarchyStore) SaveCabinet(_ context.Context, projectID string, cabinet domain.Cabinet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.project(projectID).Cabinets[cabinet.ID] = cabinet
	return nil
}

// Load returns a copy of every hierarchy record of a project.
func (s *HierarchyStore) Load(_ context.Context, projectID string) (domain.Hierarchy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.NewHierarchy(nil, nil, nil, nil)
	h, ok := s.projects[projectID]
	if !ok {
		return out, nil
	}
	for k, v := range h.Rooms {
		out.Rooms[k] = v
	}
	for k, v := range h.Locations {
		out.Locations[k] = v
	}
	for k, v := range h.Runs {
		out.Runs[k] = v
	}
	for k, v := range h.Cabinets {
		out.Cabinets[k] = v
	}
	return out, nil
}
