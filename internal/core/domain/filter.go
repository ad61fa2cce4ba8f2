package domain

// FilterType names the annotation attribute a filter tests.
type FilterType string

// Available filter types.
const (
	FilterByRoom       FilterType = "room"
	FilterByType       FilterType = "type"
	FilterByPage       FilterType = "page"
	FilterByVisibility FilterType = "visibility"
)

// Visibility filter values.
const (
	VisibilityVisible = "visible"
	VisibilityHidden  = "hidden"
)

// IsValid returns true if the filter type is recognised.
func (t FilterType) IsValid() bool {
	switch t {
	case FilterByRoom, FilterByType, FilterByPage, FilterByVisibility:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FilterType) String() string {
	return string(t)
}

// Filter is a named predicate over annotations. At most one filter of each
// type is active at a time.
type Filter struct {
	Type  FilterType `json:"type"`
	Value string     `json:"value"`
}
