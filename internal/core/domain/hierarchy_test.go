package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchy_Name(t *testing.T) {
	h := NewHierarchy(
		[]Room{{ID: 1, Name: "Kitchen"}},
		[]RoomLocation{{ID: 10, RoomID: 1, Name: "North wall"}},
		nil,
		nil,
	)

	assert.Equal(t, "Kitchen", h.Name(LevelRoom, 1))
	assert.Equal(t, "North wall", h.Name(LevelLocation, 10))
	assert.Equal(t, "Room 12", h.Name(LevelRoom, 12))
	assert.Equal(t, "Run 4", h.Name(LevelCabinetRun, 4))
	assert.Equal(t, "Cabinet 5", Hierarchy{}.Name(LevelCabinet, 5))
}

func TestHierarchy_Parent(t *testing.T) {
	h := NewHierarchy(nil,
		[]RoomLocation{{ID: 10, RoomID: 1}},
		[]CabinetRun{{ID: 20, RoomLocationID: 10}},
		[]Cabinet{{ID: 30, CabinetRunID: 20}},
	)

	p, ok := h.Parent(LevelCabinet, 30)
	require.True(t, ok)
	assert.Equal(t, int64(20), p)

	p, ok = h.Parent(LevelLocation, 10)
	require.True(t, ok)
	assert.Equal(t, int64(1), p)

	_, ok = h.Parent(LevelRoom, 1)
	assert.False(t, ok)
	_, ok = h.Parent(LevelCabinet, 99)
	assert.False(t, ok)
}

func TestHierarchy_Has(t *testing.T) {
	h := NewHierarchy(
		[]Room{{ID: 1}},
		[]RoomLocation{{ID: 10, RoomID: 1}},
		nil,
		[]Cabinet{{ID: 30, CabinetRunID: 20}},
	)

	assert.True(t, h.Has(LevelRoom, 1))
	assert.True(t, h.Has(LevelLocation, 10))
	assert.True(t, h.Has(LevelCabinet, 30))
	assert.False(t, h.Has(LevelCabinetRun, 20))
	assert.False(t, h.Has(LevelLocation, 1))
}

func TestHierarchyLevel_Depth(t *testing.T) {
	assert.Equal(t, 0, LevelRoom.Depth())
	assert.Equal(t, 3, LevelCabinet.Depth())
	assert.Equal(t, -1, HierarchyLevel("page").Depth())
}

func TestParseHierarchyLevel(t *testing.T) {
	l, err := ParseHierarchyLevel("cabinet_run")
	require.NoError(t, err)
	assert.Equal(t, LevelCabinetRun, l)

	_, err = ParseHierarchyLevel("floor")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseIsolationLevel(t *testing.T) {
	for _, level := range IsolationLevels() {
		got, err := ParseIsolationLevel(string(level))
		require.NoError(t, err)
		assert.True(t, got.CanIsolate())
	}

	_, err := ParseIsolationLevel("cabinet")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, LevelCabinet.CanIsolate())

	_, err = ParseIsolationLevel("floor")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTreeNode_Level(t *testing.T) {
	l, ok := TreeNode{Type: NodeLocation}.Level()
	assert.True(t, ok)
	assert.Equal(t, LevelLocation, l)

	_, ok = TreeNode{Type: NodePage}.Level()
	assert.False(t, ok)
}

func TestIsolationState_Includes(t *testing.T) {
	inRoom := Annotation{RoomID: Ref(1)}
	otherRoom := Annotation{RoomID: Ref(2)}
	noRoom := Annotation{}

	inactive := IsolationState{}
	assert.True(t, inactive.Includes(otherRoom))

	s := IsolationState{Active: true, Level: LevelRoom, IsolatedID: 1}
	assert.True(t, s.Includes(inRoom))
	assert.False(t, s.Includes(otherRoom))
	assert.False(t, s.Includes(noRoom))
}

func TestVisibilityState_Clone(t *testing.T) {
	v := NewVisibilityState()
	v.Nodes[NodeRef{Level: LevelRoom, ID: 1}] = VisibilityToggle{Hidden: true, Seq: 1}
	v.Seq = 1

	c := v.Clone()
	c.Nodes[NodeRef{Level: LevelRoom, ID: 2}] = VisibilityToggle{Hidden: true, Seq: 2}

	assert.Len(t, v.Nodes, 1)
	assert.Len(t, c.Nodes, 2)
	assert.Equal(t, []NodeRef{{Level: LevelRoom, ID: 1}}, v.HiddenNodes())
}
