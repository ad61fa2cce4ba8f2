// Package tree provides the hierarchy tree view: rooms, locations, cabinet
// runs and cabinets with their visibility toggles.
package tree

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// View is the hierarchy tree view.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.Session
	list    *list.TreeList
	byPage  bool
	width   int
	height  int
}

// NewView creates a tree view over session.
func NewView(s *styles.Styles, session driving.Session) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		session: session,
		list:    list.NewTreeList(s),
		width:   80,
		height:  23,
	}
	v.list.SetVisibility(v.nodeShown)
	return v
}

// Init rebuilds the tree from the session.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh rebuilds the rows from the current annotations.
func (v *View) Refresh() {
	v.list.SetTree(v.session.Tree(v.byPage))
}

// nodeShown reports the node's own toggle. Ancestors are not consulted so a
// child can be shown under a hidden parent.
func (v *View) nodeShown(ref domain.NodeRef) bool {
	toggle, ok := v.session.Snapshot().Visibility.Nodes[ref]
	return !ok || !toggle.Hidden
}

// Update handles messages for the tree view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.IsolationChanged:
		v.Refresh()
		if expanded := v.session.Snapshot().Expanded; len(expanded) > 0 {
			v.list.SelectRef(expanded[len(expanded)-1])
		}
		return v, nil

	case tea.KeyMsg:
		k := msg.String()
		switch {
		case keymap.Matches(k, v.keymap.Toggle):
			if row := v.list.SelectedRow(); row != nil {
				if ref, ok := row.Ref(); ok {
					v.session.ToggleVisibility(ref)
				}
			}
			return v, nil

		case keymap.Matches(k, v.keymap.Select):
			return v, v.isolate()

		case keymap.Matches(k, v.keymap.NextType):
			v.byPage = !v.byPage
			v.list.SetSelected(0)
			v.Refresh()
			return v, nil

		case keymap.Matches(k, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewCanvas}
			}
		}
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

// isolate asks the canvas to isolate the selected node through any
// annotation inside it.
func (v *View) isolate() tea.Cmd {
	row := v.list.SelectedRow()
	if row == nil {
		return nil
	}
	ref, ok := row.Ref()
	if !ok {
		return nil
	}
	// A cabinet is isolated through its run.
	level := ref.Level
	if !level.CanIsolate() {
		level = domain.LevelCabinetRun
	}
	for _, a := range v.session.Snapshot().Annotations {
		if id, ok := a.KeyAt(ref.Level); !ok || id != ref.ID {
			continue
		}
		if _, ok := a.KeyAt(level); ok {
			req := messages.IsolateRequested{AnnotationID: a.ID, Level: level}
			return func() tea.Msg { return req }
		}
	}
	return func() tea.Msg {
		return messages.Status{Text: "No annotations under " + row.Node.Name}
	}
}

// View renders the tree.
func (v *View) View() string {
	var b strings.Builder
	title := "Rooms"
	if v.byPage {
		title = "Pages"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString(v.styles.Muted.Render("  [tab] rooms/pages  [space] show/hide  [enter] isolate"))
	b.WriteString("\n")
	b.WriteString(v.list.View())
	return b.String()
}

// ByPage reports whether the tree is grouped by page.
func (v *View) ByPage() bool {
	return v.byPage
}

// List returns the underlying tree list.
func (v *View) List() *list.TreeList {
	return v.list
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-1)
}
