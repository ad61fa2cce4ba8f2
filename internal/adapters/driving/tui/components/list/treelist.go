// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// Row is one flattened tree node.
type Row struct {
	Node  domain.TreeNode
	Depth int
}

// Ref returns the hierarchy reference of the row, if it has one.
func (r Row) Ref() (domain.NodeRef, bool) {
	level, ok := r.Node.Level()
	if !ok {
		return domain.NodeRef{}, false
	}
	return domain.NodeRef{Level: level, ID: r.Node.ID}, true
}

// VisibilityFunc reports whether a hierarchy node is shown.
type VisibilityFunc func(ref domain.NodeRef) bool

// TreeList displays a hierarchy tree as a navigable list.
type TreeList struct {
	rows     []Row
	selected int
	visible  VisibilityFunc
	styles   *styles.Styles
	width    int
	height   int
}

// NewTreeList creates a new tree list component.
func NewTreeList(s *styles.Styles) *TreeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TreeList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the tree list.
func (l *TreeList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *TreeList) Update(msg tea.Msg) (*TreeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of rows.
func (l *TreeList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("No annotations")
	}

	visibleCount := l.height
	if visibleCount < 1 {
		visibleCount = 1
	}
	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (l *TreeList) renderRow(index int) string {
	row := l.rows[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}
	marker := "   "
	shown := true
	if ref, ok := row.Ref(); ok {
		marker = "[x]"
		if l.visible != nil && !l.visible(ref) {
			marker = "[ ]"
			shown = false
		}
	}

	text := fmt.Sprintf("%s%s%s %s (%d)",
		indicator, strings.Repeat("  ", row.Depth), marker, row.Node.Name, row.Node.AnnotationCount)
	if maxLen := l.width - 2; maxLen > 10 && len(text) > maxLen {
		text = text[:maxLen-3] + "..."
	}

	switch {
	case index == l.selected:
		return l.styles.Selected.Render(text)
	case !shown:
		return l.styles.Masked.Render(text)
	default:
		return l.styles.Normal.Render(text)
	}
}

// SetTree flattens nodes depth first. The selection is kept when possible.
func (l *TreeList) SetTree(nodes []domain.TreeNode) {
	l.rows = l.rows[:0]
	var walk func(nodes []domain.TreeNode, depth int)
	walk = func(nodes []domain.TreeNode, depth int) {
		for _, n := range nodes {
			l.rows = append(l.rows, Row{Node: n, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)

	if l.selected >= len(l.rows) {
		l.selected = len(l.rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// SetVisibility sets the function used to mark hidden nodes.
func (l *TreeList) SetVisibility(fn VisibilityFunc) {
	l.visible = fn
}

// Rows returns the flattened rows.
func (l *TreeList) Rows() []Row {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *TreeList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *TreeList) SetSelected(index int) {
	if index >= 0 && index < len(l.rows) {
		l.selected = index
	}
}

// SelectRef moves the selection to the row for ref. It reports whether
// the row exists.
func (l *TreeList) SelectRef(ref domain.NodeRef) bool {
	for i, row := range l.rows {
		if r, ok := row.Ref(); ok && r == ref {
			l.selected = i
			return true
		}
	}
	return false
}

// SelectedRow returns the currently selected row, or nil if none.
func (l *TreeList) SelectedRow() *Row {
	if len(l.rows) == 0 || l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.rows[l.selected]
}

// MoveUp moves selection up.
func (l *TreeList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *TreeList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *TreeList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *TreeList) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether the list is empty.
func (l *TreeList) IsEmpty() bool {
	return len(l.rows) == 0
}
