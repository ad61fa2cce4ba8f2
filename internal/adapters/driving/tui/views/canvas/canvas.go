// Package canvas provides the page canvas view: the current page drawn as
// a character grid with its annotations, driven by mouse gestures and keys.
package canvas

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Terminal cells are mapped to pixels at this size.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Surface is the drawing surface the session measures gestures against.
type Surface interface {
	driven.ViewportGeometry
	Resize(width, height float64)
	Move(left, top float64)
}

// View is the canvas view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	session   driving.Session
	surface   Surface
	pageInput *input.PageInput
	ctx       context.Context

	// margin is subtracted from the container before fitting the page.
	margin float64

	// scale is pixels per intrinsic page unit at zoom 1.
	scale float64

	width  int
	height int
	ready  bool
}

// NewView creates a canvas view over session, measuring gestures against surface.
func NewView(s *styles.Styles, session driving.Session, surface Surface) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:    s,
		keymap:    keymap.DefaultKeyMap(),
		session:   session,
		surface:   surface,
		pageInput: input.NewPageInput(s),
		ctx:       context.Background(),
		scale:     1,
		width:     80,
		height:    23,
	}
}

// WithContext sets the context used for page loads.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the canvas.
func (v *View) Init() tea.Cmd {
	v.layout()
	return nil
}

// Update handles messages for the canvas.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.MouseMsg:
		cmd = v.handleMouse(msg)
	case tea.KeyMsg:
		if v.pageInput.Focused() {
			cmd = v.handlePageInput(msg)
		} else {
			cmd = v.handleKey(msg)
		}
	}
	v.layout()
	return v, cmd
}

func (v *View) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return nil
	}
	ev := domain.PointerEvent{
		ClientX: (float64(msg.X) + 0.5) * CellWidth,
		ClientY: (float64(msg.Y) + 0.5) * CellHeight,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if v.session.PointerDown(ev) {
			return nil
		}
		if v.session.Snapshot().Tool == domain.ToolSelect {
			v.session.SelectAt(ev)
		}
	case tea.MouseActionRelease:
		if !v.session.Snapshot().Drawing {
			return nil
		}
		if a := v.session.PointerUp(ev); a != nil {
			created := *a
			return func() tea.Msg { return messages.AnnotationCreated{Annotation: created} }
		}
		return notify("Too small to annotate")
	case tea.MouseActionMotion:
	}
	return nil
}

//nolint:gocyclo // one case per binding
func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	km := v.keymap
	switch {
	case keymap.Matches(k, km.SelectTool):
		v.session.SetTool(domain.ToolSelect)
	case keymap.Matches(k, km.DrawTool):
		v.session.SetTool(domain.ToolRectangle)
	case keymap.Matches(k, km.NextType):
		v.cycleType()
	case keymap.Matches(k, km.ZoomIn):
		v.session.ZoomIn()
	case keymap.Matches(k, km.ZoomOut):
		v.session.ZoomOut()
	case keymap.Matches(k, km.ResetZoom):
		v.session.ResetZoom()
	case keymap.Matches(k, km.RotateCW):
		v.session.RotateClockwise()
	case keymap.Matches(k, km.RotateCCW):
		v.session.RotateCounterClockwise()
	case keymap.Matches(k, km.FitPage):
		v.session.FitToPage(v.Container())
	case keymap.Matches(k, km.FitWidth):
		v.session.FitToWidth(v.Container())
	case keymap.Matches(k, km.NextPage):
		return v.navigate(v.session.NextPage)
	case keymap.Matches(k, km.PrevPage):
		return v.navigate(v.session.PreviousPage)
	case keymap.Matches(k, km.FirstPage):
		return v.navigate(v.session.FirstPage)
	case keymap.Matches(k, km.LastPage):
		return v.navigate(v.session.LastPage)
	case keymap.Matches(k, km.GoToPage):
		return v.pageInput.Open(v.session.Snapshot().PageCount)
	case keymap.Matches(k, km.Undo):
		if !v.session.Undo() {
			return notify("Nothing to undo")
		}
	case keymap.Matches(k, km.Redo):
		if !v.session.Redo() {
			return notify("Nothing to redo")
		}
	case keymap.Matches(k, km.Delete):
		if !v.session.DeleteSelected() {
			return notify("Nothing selected")
		}
	case keymap.Matches(k, km.ClearAll):
		return v.confirmClear()
	case keymap.Matches(k, km.Hide):
		if id := v.session.Snapshot().SelectedID; id != "" {
			v.session.ToggleAnnotationVisibility(id)
		}
	case keymap.Matches(k, km.Isolate):
		return v.isolateSelected()
	case keymap.Matches(k, km.ExitIsolate):
		return v.ExitIsolation()
	case keymap.Matches(k, km.Back):
		v.session.CancelDrawing()
		v.session.Deselect()
	}
	return nil
}

func (v *View) handlePageInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		v.pageInput.Close()
		return nil
	case tea.KeyEnter:
		raw := strings.TrimSpace(v.pageInput.Value())
		v.pageInput.Close()
		return v.navigate(func(ctx context.Context) (bool, error) {
			return v.session.GoToPageInput(ctx, raw)
		})
	default:
		var cmd tea.Cmd
		v.pageInput, cmd = v.pageInput.Update(msg)
		return cmd
	}
}

// navigate runs a page move off the update loop.
func (v *View) navigate(move func(ctx context.Context) (bool, error)) tea.Cmd {
	ctx := v.ctx
	session := v.session
	return func() tea.Msg {
		moved, err := move(ctx)
		page := session.Snapshot().View.Page
		if err == nil && !moved {
			return messages.Status{Text: "No such page"}
		}
		return messages.PageChanged{Page: page, Err: err}
	}
}

func (v *View) cycleType() {
	snap := v.session.Snapshot()
	types := domain.AnnotationTypes()
	next := types[0]
	for i, t := range types {
		if t == snap.Template.Type {
			next = types[(i+1)%len(types)]
			break
		}
	}
	tmpl := snap.Template
	tmpl.Type = next
	v.session.SetTemplate(tmpl)
}

func (v *View) confirmClear() tea.Cmd {
	count := len(v.session.Snapshot().Annotations)
	if count == 0 {
		return notify("No annotations to clear")
	}
	session := v.session
	return func() tea.Msg {
		return messages.ConfirmRequested{
			Prompt: fmt.Sprintf("Clear all %d annotations?", count),
			OnConfirm: func() tea.Msg {
				session.ClearAll(driven.ConfirmFunc(func(string) bool { return true }))
				return messages.Status{Text: fmt.Sprintf("Cleared %d annotations", count)}
			},
		}
	}
}

func (v *View) isolateSelected() tea.Cmd {
	snap := v.session.Snapshot()
	idx := domain.IndexOf(snap.Annotations, snap.SelectedID)
	if idx < 0 {
		return notify("Select an annotation to isolate")
	}
	level, ok := DeepestLevel(snap.Annotations[idx])
	if !ok {
		return notify("Annotation has no room")
	}
	return v.Isolate(snap.SelectedID, level)
}

// Isolate focuses the view on the subtree containing annotationID at level.
func (v *View) Isolate(annotationID string, level domain.HierarchyLevel) tea.Cmd {
	ctx := v.ctx
	session := v.session
	container := v.Container()
	return func() tea.Msg {
		ok, err := session.Isolate(ctx, annotationID, level, container)
		if err == nil && !ok {
			return messages.Status{Text: "Nothing to isolate"}
		}
		iso := session.Snapshot().Isolation
		return messages.IsolationChanged{Active: iso.Active, Name: iso.IsolatedName, Err: err}
	}
}

// ExitIsolation restores the view saved when isolation began.
func (v *View) ExitIsolation() tea.Cmd {
	if !v.session.Snapshot().Isolation.Active {
		return nil
	}
	ctx := v.ctx
	session := v.session
	return func() tea.Msg {
		err := session.ExitIsolation(ctx)
		return messages.IsolationChanged{Active: false, Err: err}
	}
}

// DeepestLevel returns the most specific level a can be isolated at.
func DeepestLevel(a domain.Annotation) (domain.HierarchyLevel, bool) {
	levels := domain.IsolationLevels()
	for i := len(levels) - 1; i >= 0; i-- {
		if _, ok := a.KeyAt(levels[i]); ok {
			return levels[i], true
		}
	}
	return "", false
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return messages.Status{Text: text} }
}

// Container returns the canvas area in intrinsic page units, the space the
// session fits zoom against.
func (v *View) Container() domain.Size {
	w, h := v.containerPixels()
	return domain.Size{Width: w / v.scale, Height: h / v.scale}
}

func (v *View) containerPixels() (float64, float64) {
	w := float64(v.width)*CellWidth - v.margin
	h := float64(v.gridRows())*CellHeight - v.margin
	return math.Max(w, CellWidth), math.Max(h, CellHeight)
}

func (v *View) gridRows() int {
	if v.height < 2 {
		return 1
	}
	return v.height - 1
}

// layout fits the page to the canvas at zoom 1 and sizes the surface to the
// page as displayed.
func (v *View) layout() {
	snap := v.session.Snapshot()
	if snap.Page == nil {
		return
	}
	rotation := domain.NormalizeRotation(snap.View.Rotation + snap.Page.Rotation)
	page := snap.Page.Size().Rotated(rotation)
	if !page.IsValid() {
		return
	}
	cw, ch := v.containerPixels()
	v.scale = math.Min(cw/page.Width, ch/page.Height)

	top := 1
	if v.pageInput.Focused() {
		top++
	}
	v.surface.Move(0, float64(top)*CellHeight)
	v.surface.Resize(page.Width*v.scale*snap.View.Zoom, page.Height*v.scale*snap.View.Zoom)
}

// View renders the canvas.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	snap := v.session.Snapshot()

	var b strings.Builder
	b.WriteString(v.header(snap))
	b.WriteString("\n")
	if v.pageInput.Focused() {
		b.WriteString(v.pageInput.View())
		b.WriteString("\n")
	}
	if snap.Page == nil {
		b.WriteString(v.styles.Muted.Render("No document loaded"))
		return b.String()
	}
	b.WriteString(v.renderGrid(snap))
	return b.String()
}

func (v *View) header(snap driving.Snapshot) string {
	title := v.styles.Title.Render(snap.Project.Name)
	if snap.Project.ProjectNumber != "" {
		title += v.styles.Muted.Render(" #" + snap.Project.ProjectNumber)
	}
	if snap.Isolation.Active {
		title += " " + v.styles.Isolated.Render(snap.Isolation.IsolatedName)
	}
	return title
}

// cell is one character of the grid with the index of its style.
type cell struct {
	ch    rune
	style int
}

func (v *View) renderGrid(snap driving.Snapshot) string {
	bounds := v.surface.Bounds()
	cols := int(math.Ceil(bounds.Width / CellWidth))
	rows := int(math.Ceil(bounds.Height / CellHeight))
	maxRows := v.gridRows()
	if v.pageInput.Focused() {
		maxRows--
	}
	visCols, visRows := min(cols, v.width), min(rows, maxRows)
	if visCols <= 0 || visRows <= 0 {
		return ""
	}

	palette := []lipgloss.Style{v.styles.Page}
	grid := make([][]cell, visRows)
	for y := range grid {
		grid[y] = make([]cell, visCols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: '·'}
		}
	}

	rotation := domain.NormalizeRotation(snap.View.Rotation + snap.Page.Rotation)
	for _, a := range snap.Filtered {
		if a.PageNumber != snap.View.Page {
			continue
		}
		var style lipgloss.Style
		switch {
		case a.ID == snap.SelectedID:
			style = v.styles.Annotation(a.Color, true)
		case v.session.IsMasked(a):
			style = v.styles.Masked
		default:
			style = v.styles.Annotation(a.Color, false)
		}
		palette = append(palette, style)
		r := domain.RotateRect(a.Rect(), rotation)
		drawBox(grid, len(palette)-1, r, cols, rows, a.Text)
	}

	lines := make([]string, visRows)
	for y, row := range grid {
		var line strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x == len(row) || row[x].style != row[start].style {
				run := make([]rune, 0, x-start)
				for _, c := range row[start:x] {
					run = append(run, c.ch)
				}
				line.WriteString(palette[row[start].style].Render(string(run)))
				start = x
			}
		}
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// drawBox outlines a normalised display rect on a cols x rows page grid,
// writing label along the top edge. Cells outside grid are clipped.
func drawBox(grid [][]cell, style int, r domain.Rect, cols, rows int, label string) {
	x0 := int(math.Floor(r.X * float64(cols)))
	y0 := int(math.Floor(r.Y * float64(rows)))
	x1 := max(int(math.Ceil(r.Right()*float64(cols)))-1, x0)
	y1 := max(int(math.Ceil(r.Bottom()*float64(rows)))-1, y0)

	set := func(x, y int, ch rune) {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			grid[y][x] = cell{ch: ch, style: style}
		}
	}
	for x := x0; x <= x1; x++ {
		set(x, y0, '─')
		set(x, y1, '─')
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, '│')
		set(x1, y, '│')
	}
	set(x0, y0, '┌')
	set(x1, y0, '┐')
	set(x0, y1, '└')
	set(x1, y1, '┘')
	if x1 == x0 && y1 == y0 {
		set(x0, y0, '□')
	}

	for i, ch := range []rune(label) {
		x := x0 + 1 + i
		if x >= x1 {
			break
		}
		set(x, y0, ch)
	}
}

// Summary returns the status bar summary of the canvas.
func (v *View) Summary() status.Canvas {
	snap := v.session.Snapshot()
	c := status.Canvas{
		Page:      snap.View.Page,
		PageCount: snap.PageCount,
		Zoom:      snap.View.Zoom,
		Rotation:  snap.View.Rotation,
		Tool:      string(snap.Tool),
		Type:      string(snap.Template.Type),
	}
	for _, a := range snap.Annotations {
		if a.PageNumber == snap.View.Page {
			c.Total++
		}
	}
	for _, a := range snap.Filtered {
		if a.PageNumber == snap.View.Page {
			c.Visible++
		}
	}
	return c
}

// InputActive reports whether the go-to-page prompt has focus.
func (v *View) InputActive() bool {
	return v.pageInput.Focused()
}

// SetMargin sets the margin kept around the page when fitting.
func (v *View) SetMargin(margin float64) {
	if margin >= 0 {
		v.margin = margin
	}
	v.layout()
}

// SetDimensions sets the view dimensions in cells.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.layout()
}
