package domain

// VisibilityToggle records one explicit show or hide of a node.
// Seq orders toggles so the most recent one along a path wins.
type VisibilityToggle struct {
	Hidden bool   `json:"hidden"`
	Seq    uint64 `json:"seq"`
}

// VisibilityState holds explicit visibility toggles. Visibility is never
// stored on annotations; it is computed from these toggles.
type VisibilityState struct {
	Nodes       map[NodeRef]VisibilityToggle `json:"-"`
	Annotations map[string]VisibilityToggle  `json:"annotations,omitempty"`
	Seq         uint64                       `json:"seq"`
}

// NewVisibilityState returns a state in which everything is visible.
func NewVisibilityState() VisibilityState {
	return VisibilityState{
		Nodes:       make(map[NodeRef]VisibilityToggle),
		Annotations: make(map[string]VisibilityToggle),
	}
}

// Clone returns a copy whose maps can be modified independently.
func (v VisibilityState) Clone() VisibilityState {
	c := VisibilityState{
		Nodes:       make(map[NodeRef]VisibilityToggle, len(v.Nodes)),
		Annotations: make(map[string]VisibilityToggle, len(v.Annotations)),
		Seq:         v.Seq,
	}
	for k, t := range v.Nodes {
		c.Nodes[k] = t
	}
	for k, t := range v.Annotations {
		c.Annotations[k] = t
	}
	return c
}

// HiddenNodes returns the nodes whose latest explicit toggle is a hide.
func (v VisibilityState) HiddenNodes() []NodeRef {
	var out []NodeRef
	for ref, t := range v.Nodes {
		if t.Hidden {
			out = append(out, ref)
		}
	}
	return out
}

// IsolationState describes focus on one hierarchy subtree.
type IsolationState struct {
	Active       bool           `json:"active"`
	Level        HierarchyLevel `json:"level,omitempty"`
	IsolatedID   int64          `json:"isolated_id,omitempty"`
	IsolatedName string         `json:"isolated_name,omitempty"`

	// SavedView is the view to restore when isolation ends.
	SavedView ViewState `json:"saved_view"`
}

// Includes reports whether a falls inside the isolated subtree.
// Everything is included when isolation is inactive.
func (s IsolationState) Includes(a Annotation) bool {
	if !s.Active {
		return true
	}
	id, ok := a.KeyAt(s.Level)
	return ok && id == s.IsolatedID
}
