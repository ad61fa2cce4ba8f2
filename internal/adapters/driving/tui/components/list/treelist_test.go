package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

func sampleTree() []domain.TreeNode {
	return []domain.TreeNode{
		{
			ID: 1, Type: domain.NodeRoom, Name: "Kitchen", AnnotationCount: 3,
			Children: []domain.TreeNode{
				{
					ID: 10, Type: domain.NodeLocation, Name: "North Wall", AnnotationCount: 2,
					Children: []domain.TreeNode{
						{ID: 100, Type: domain.NodeCabinetRun, Name: "Base Run", AnnotationCount: 1},
					},
				},
			},
		},
		{ID: 0, Type: domain.NodeUnassigned, Name: "Unassigned", AnnotationCount: 1},
	}
}

func TestNewTreeList(t *testing.T) {
	l := NewTreeList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.Init())
	assert.Contains(t, l.View(), "No annotations")
}

func TestTreeList_SetTree_Flattens(t *testing.T) {
	l := NewTreeList(nil)

	l.SetTree(sampleTree())

	require.Equal(t, 4, l.Count())
	rows := l.Rows()
	assert.Equal(t, "Kitchen", rows[0].Node.Name)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, "North Wall", rows[1].Node.Name)
	assert.Equal(t, 1, rows[1].Depth)
	assert.Equal(t, 2, rows[2].Depth)
	assert.Equal(t, "Unassigned", rows[3].Node.Name)
}

func TestTreeList_SetTree_KeepsSelectionInRange(t *testing.T) {
	l := NewTreeList(nil)
	l.SetTree(sampleTree())
	l.SetSelected(3)

	l.SetTree(sampleTree()[:1])

	assert.Equal(t, 2, l.Selected())
}

func TestRow_Ref(t *testing.T) {
	l := NewTreeList(nil)
	l.SetTree(sampleTree())

	ref, ok := l.Rows()[1].Ref()
	assert.True(t, ok)
	assert.Equal(t, domain.NodeRef{Level: domain.LevelLocation, ID: 10}, ref)

	_, ok = l.Rows()[3].Ref()
	assert.False(t, ok)
}

func TestTreeList_Navigation(t *testing.T) {
	l := NewTreeList(nil)
	l.SetTree(sampleTree())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, l.Selected())

	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	for i := 0; i < 10; i++ {
		l.MoveDown()
	}
	assert.Equal(t, 3, l.Selected())
}

func TestTreeList_SelectRef(t *testing.T) {
	l := NewTreeList(nil)
	l.SetTree(sampleTree())

	assert.True(t, l.SelectRef(domain.NodeRef{Level: domain.LevelCabinetRun, ID: 100}))
	assert.Equal(t, "Base Run", l.SelectedRow().Node.Name)
	assert.False(t, l.SelectRef(domain.NodeRef{Level: domain.LevelCabinet, ID: 5}))
}

func TestTreeList_View_MarksHidden(t *testing.T) {
	l := NewTreeList(nil)
	l.SetTree(sampleTree())
	l.SetVisibility(func(ref domain.NodeRef) bool {
		return ref.Level != domain.LevelLocation
	})

	view := l.View()

	assert.Contains(t, view, "[x] Kitchen (3)")
	assert.Contains(t, view, "[ ] North Wall (2)")
	assert.Contains(t, view, "Unassigned (1)")
}

func TestTreeList_View_Scrolls(t *testing.T) {
	l := NewTreeList(nil)
	l.SetTree(sampleTree())
	l.SetDimensions(80, 2)
	l.SetSelected(3)

	view := l.View()

	assert.NotContains(t, view, "Kitchen")
	assert.Contains(t, view, "Unassigned")
}

func TestTreeList_SelectedRow_Empty(t *testing.T) {
	l := NewTreeList(nil)

	assert.Nil(t, l.SelectedRow())
}
