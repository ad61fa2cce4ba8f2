package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ensure ProjectService implements the interface.
var _ driving.ProjectService = (*ProjectService)(nil)

// ProjectService manages projects and their hierarchy records.
type ProjectService struct {
	projects     driven.ProjectStore
	hierarchy    driven.HierarchyStore
	defaultColor string
}

// NewProjectService creates a new project service. defaultColor seeds
// DefaultColor on new projects.
func NewProjectService(projects driven.ProjectStore, hierarchy driven.HierarchyStore, defaultColor string) *ProjectService {
	return &ProjectService{
		projects:     projects,
		hierarchy:    hierarchy,
		defaultColor: defaultColor,
	}
}

// Create creates a project with a generated ID.
func (s *ProjectService) Create(ctx context.Context, name, projectNumber, documentPath string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := domain.Project{
		ID:            uuid.NewString(),
		Name:          name,
		ProjectNumber: strings.TrimSpace(projectNumber),
		RoomCodes:     map[string]string{},
		RoomColors:    map[string]string{},
		DefaultColor:  s.defaultColor,
		DocumentPath:  documentPath,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.projects.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	return &p, nil
}

// Get retrieves a project by ID.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

// List returns all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// SetRoomCode maps a room type to its label code. An empty code removes it.
func (s *ProjectService) SetRoomCode(ctx context.Context, id, roomType, code string) error {
	return s.update(ctx, id, func(p *domain.Project) error {
		if roomType == "" {
			return fmt.Errorf("%w: room type is required", domain.ErrInvalidInput)
		}
		if p.RoomCodes == nil {
			p.RoomCodes = map[string]string{}
		}
		if code == "" {
			delete(p.RoomCodes, roomType)
		} else {
			p.RoomCodes[roomType] = code
		}
		return nil
	})
}

// SetRoomColor maps a room type to a #RRGGBB colour.
func (s *ProjectService) SetRoomColor(ctx context.Context, id, roomType, color string) error {
	return s.update(ctx, id, func(p *domain.Project) error {
		if roomType == "" || !IsHexColor(color) {
			return fmt.Errorf("%w: room colour %q for %q", domain.ErrInvalidInput, color, roomType)
		}
		if p.RoomColors == nil {
			p.RoomColors = map[string]string{}
		}
		p.RoomColors[roomType] = strings.ToUpper(color)
		return nil
	})
}

func (s *ProjectService) update(ctx context.Context, id string, fn func(*domain.Project) error) error {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	return s.projects.Save(ctx, *p)
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.projects.Delete(ctx, id)
}

// Hierarchy loads the project's hierarchy records.
func (s *ProjectService) Hierarchy(ctx context.Context, id string) (domain.Hierarchy, error) {
	if s.hierarchy == nil {
		return domain.NewHierarchy(nil, nil, nil, nil), nil
	}
	return s.hierarchy.Load(ctx, id)
}

// AddNode records a hierarchy node. The parent must already exist,
// except for rooms which hang off the project. IDs are unique per level.
func (s *ProjectService) AddNode(ctx context.Context, projectID string, node driving.HierarchyNode) error {
	if s.hierarchy == nil {
		return domain.ErrNotImplemented
	}
	if node.ID <= 0 {
		return fmt.Errorf("%w: node id must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return err
	}

	h, err := s.hierarchy.Load(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to load hierarchy: %w", err)
	}
	if h.Has(node.Level, node.ID) {
		return fmt.Errorf("%s %d: %w", node.Level, node.ID, domain.ErrAlreadyExists)
	}

	switch node.Level {
	case domain.LevelRoom:
		return s.hierarchy.SaveRoom(ctx, domain.Room{
			ID: node.ID, ProjectID: projectID, Name: node.Name, RoomType: node.RoomType,
		})
	case domain.LevelLocation:
		if _, ok := h.Rooms[node.ParentID]; !ok {
			return fmt.Errorf("room %d: %w", node.ParentID, domain.ErrNotFound)
		}
		return s.hierarchy.SaveLocation(ctx, projectID, domain.RoomLocation{
			ID: node.ID, RoomID: node.ParentID, Name: node.Name,
		})
	case domain.LevelCabinetRun:
		if _, ok := h.Locations[node.ParentID]; !ok {
			return fmt.Errorf("location %d: %w", node.ParentID, domain.ErrNotFound)
		}
		return s.hierarchy.SaveRun(ctx, projectID, domain.CabinetRun{
			ID: node.ID, RoomLocationID: node.ParentID, Name: node.Name,
		})
	case domain.LevelCabinet:
		if _, ok := h.Runs[node.ParentID]; !ok {
			return fmt.Errorf("cabinet run %d: %w", node.ParentID, domain.ErrNotFound)
		}
		return s.hierarchy.SaveCabinet(ctx, projectID, domain.Cabinet{
			ID: node.ID, CabinetRunID: node.ParentID, Name: node.Name,
		})
	default:
		return fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, node.Level)
	}
}
