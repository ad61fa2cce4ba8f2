package services

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ensure FilterService implements the interface.
var _ driving.FilterService = (*FilterService)(nil)

// FilterService combines filters over an annotation list.
type FilterService struct {
	hierarchy driving.HierarchyService
}

// NewFilterService creates a new filter service. The hierarchy service
// decides visibility for visibility filters.
func NewFilterService(hierarchy driving.HierarchyService) *FilterService {
	if hierarchy == nil {
		hierarchy = NewHierarchyService()
	}
	return &FilterService{hierarchy: hierarchy}
}

// ApplyFilter adds or replaces the filter of type t.
func (s *FilterService) ApplyFilter(filters []domain.Filter, t domain.FilterType, value string) []domain.Filter {
	value = strings.TrimSpace(value)
	if !validFilter(t, value) {
		return filters
	}

	out := make([]domain.Filter, 0, len(filters)+1)
	replaced := false
	for _, f := range filters {
		if f.Type == t {
			out = append(out, domain.Filter{Type: t, Value: value})
			replaced = true
			continue
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, domain.Filter{Type: t, Value: value})
	}
	return out
}

// RemoveFilter drops the filter of type t.
func (s *FilterService) RemoveFilter(filters []domain.Filter, t domain.FilterType) []domain.Filter {
	out := make([]domain.Filter, 0, len(filters))
	for _, f := range filters {
		if f.Type != t {
			out = append(out, f)
		}
	}
	return out
}

// ClearAllFilters returns an empty filter list.
func (s *FilterService) ClearAllFilters() []domain.Filter {
	return []domain.Filter{}
}

// Filter returns copies of the annotations matching every filter, in base order.
func (s *FilterService) Filter(
	base []domain.Annotation,
	filters []domain.Filter,
	visibility domain.VisibilityState,
) []domain.Annotation {
	out := make([]domain.Annotation, 0, len(base))
	for i := range base {
		if s.matches(base[i], filters, visibility) {
			out = append(out, base[i].Clone())
		}
	}
	return out
}

func (s *FilterService) matches(a domain.Annotation, filters []domain.Filter, visibility domain.VisibilityState) bool {
	for _, f := range filters {
		switch f.Type {
		case domain.FilterByRoom:
			id, err := strconv.ParseInt(f.Value, 10, 64)
			if err != nil || a.RoomID == nil || *a.RoomID != id {
				return false
			}
		case domain.FilterByType:
			if string(a.Type) != f.Value {
				return false
			}
		case domain.FilterByPage:
			page, err := strconv.Atoi(f.Value)
			if err != nil || a.PageNumber != page {
				return false
			}
		case domain.FilterByVisibility:
			visible := s.hierarchy.IsAnnotationVisible(visibility, a)
			if visible != (f.Value == domain.VisibilityVisible) {
				return false
			}
		}
	}
	return true
}

func validFilter(t domain.FilterType, value string) bool {
	if value == "" {
		return false
	}
	switch t {
	case domain.FilterByRoom:
		_, err := strconv.ParseInt(value, 10, 64)
		return err == nil
	case domain.FilterByType:
		return domain.AnnotationType(value).IsValid()
	case domain.FilterByPage:
		n, err := strconv.Atoi(value)
		return err == nil && n >= 1
	case domain.FilterByVisibility:
		return value == domain.VisibilityVisible || value == domain.VisibilityHidden
	default:
		return false
	}
}
