package driving

import "github.com/custodia-labs/plancanvas/internal/core/domain"

// FilterService combines filters over an annotation list.
type FilterService interface {
	// ApplyFilter adds or replaces the filter of type t. An invalid value
	// returns the list unchanged.
	ApplyFilter(filters []domain.Filter, t domain.FilterType, value string) []domain.Filter

	// RemoveFilter drops the filter of type t.
	RemoveFilter(filters []domain.Filter, t domain.FilterType) []domain.Filter

	// ClearAllFilters returns an empty filter list.
	ClearAllFilters() []domain.Filter

	// Filter returns the annotations matching every filter. base is never modified.
	Filter(base []domain.Annotation, filters []domain.Filter, visibility domain.VisibilityState) []domain.Annotation
}
