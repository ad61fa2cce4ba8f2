package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.Session = (*Session)(nil)

// Canvas constants used by the session.
const (
	// IsolationPadding is the screen margin around an isolated subtree.
	IsolationPadding = 24

	// SelectTolerancePixels widens hit-testing around each annotation.
	SelectTolerancePixels = 4
)

// SessionOptions wires a session to its collaborators. Services left nil
// get their default implementation.
type SessionOptions struct {
	// Annotations is required; ReplaceAll is the save callback.
	Annotations driven.AnnotationStore

	// Views remembers zoom, rotation and page. Optional.
	Views driven.ViewStateStore

	// Renderer is the open document. Nil means no document is loaded.
	Renderer driven.DocumentRenderer

	Viewport driven.ViewportGeometry
	Cursor   driven.CursorTarget
	Settings domain.Settings

	View      driving.ViewService
	Draw      driving.DrawService
	Edit      driving.EditService
	Hierarchy driving.HierarchyService
	Navigator driving.PageNavigator
	Filter    driving.FilterService
}

// Session owns the state of one open project. Every method runs to
// completion under a single lock; mutations replace state and then fire
// the save callback in the background without waiting for it.
type Session struct {
	mu sync.Mutex

	project     domain.Project
	hierarchy   domain.Hierarchy
	annotations []domain.Annotation
	history     domain.HistoryState
	view        domain.ViewState
	page        *domain.Page
	pageCount   int
	tool        domain.Tool
	template    domain.AnnotationTemplate
	draw        *domain.DrawState
	selectedID  string
	visibility  domain.VisibilityState
	isolation   domain.IsolationState
	expanded    []domain.NodeRef
	filters     []domain.Filter

	store    driven.AnnotationStore
	views    driven.ViewStateStore
	renderer driven.DocumentRenderer
	viewport driven.ViewportGeometry
	cursor   driven.CursorTarget
	settings domain.Settings

	viewSvc   driving.ViewService
	drawSvc   driving.DrawService
	editSvc   driving.EditService
	hierSvc   driving.HierarchyService
	navSvc    driving.PageNavigator
	filterSvc driving.FilterService

	saves     sync.WaitGroup
	saveMu    sync.Mutex
	saveSeq   uint64
	savedSeq  uint64
	viewLimit *rate.Limiter
	viewDirty bool
	viewMu    sync.Mutex
	viewSeq   uint64
	viewSaved uint64
}

// NewSession opens a project: it loads annotations and the last view and
// resolves the current page.
func NewSession(ctx context.Context, project domain.Project, hierarchy domain.Hierarchy, opts SessionOptions) (*Session, error) {
	if opts.Annotations == nil {
		return nil, errors.New("annotation store is required")
	}
	settings := opts.Settings
	if err := settings.Validate(); err != nil {
		settings = domain.DefaultSettings()
	}

	s := &Session{
		project:    project,
		hierarchy:  hierarchy,
		view:       domain.DefaultViewState(),
		tool:       domain.ToolSelect,
		template:   domain.DefaultAnnotationTemplate(),
		visibility: domain.NewVisibilityState(),
		filters:    []domain.Filter{},
		store:      opts.Annotations,
		views:      opts.Views,
		renderer:   opts.Renderer,
		viewport:   opts.Viewport,
		cursor:     opts.Cursor,
		settings:   settings,
		viewSvc:    opts.View,
		drawSvc:    opts.Draw,
		editSvc:    opts.Edit,
		hierSvc:    opts.Hierarchy,
		navSvc:     opts.Navigator,
		filterSvc:  opts.Filter,
		viewLimit:  rate.NewLimiter(rate.Limit(settings.View.AutosavePerSecond), 1),
	}
	s.applyDefaults()

	list, err := s.store.List(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load annotations: %w", err)
	}
	s.annotations = list

	if s.views != nil {
		if v, err := s.views.GetViewState(ctx, project.ID); err == nil {
			s.view = s.viewSvc.SaveView(v.Zoom, v.Rotation, v.Page)
		} else if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("failed to load view state for %s: %v", project.ID, err)
		}
	}

	if s.renderer != nil {
		count, err := s.renderer.PageCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count pages: %w", err)
		}
		s.pageCount = count
		if count > 0 {
			target := s.navSvc.SanitizePageInput(s.view.Page, count)
			res, err := s.navSvc.GoToPage(ctx, s.renderer, target, count)
			if err != nil {
				return nil, err
			}
			if res != nil {
				s.page = &res.Page
				s.view.Page = res.PageNumber
			}
		}
	}

	s.drawSvc.SetCursor(s.cursor, s.tool)
	logger.Debug("session: opened %s with %d annotation(s), %d page(s)", project.ID, len(list), s.pageCount)
	return s, nil
}

func (s *Session) applyDefaults() {
	if s.viewSvc == nil {
		s.viewSvc = NewViewService()
	}
	if s.drawSvc == nil {
		s.drawSvc = NewDrawService()
	}
	if s.editSvc == nil {
		s.editSvc = NewEditService()
	}
	if s.hierSvc == nil {
		s.hierSvc = NewHierarchyService()
	}
	if s.navSvc == nil {
		s.navSvc = NewPageNavigator()
	}
	if s.filterSvc == nil {
		s.filterSvc = NewFilterService(s.hierSvc)
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() driving.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := driving.Snapshot{
		Project:     s.project,
		Annotations: domain.CloneAnnotations(s.annotations),
		Filtered:    s.filteredLocked(),
		View:        s.view,
		PageCount:   s.pageCount,
		Tool:        s.tool,
		Template:    s.template,
		SelectedID:  s.selectedID,
		Drawing:     s.draw != nil,
		Isolation:   s.isolation,
		Expanded:    append([]domain.NodeRef(nil), s.expanded...),
		Filters:     append([]domain.Filter{}, s.filters...),
		Visibility:  s.visibility.Clone(),
		CanUndo:     s.history.CanUndo(),
		CanRedo:     s.history.CanRedo(),
	}
	if s.page != nil {
		p := *s.page
		snap.Page = &p
	}
	return snap
}

// filteredLocked applies filters and, unless a visibility filter is
// active, drops hidden annotations.
func (s *Session) filteredLocked() []domain.Annotation {
	out := s.filterSvc.Filter(s.annotations, s.filters, s.visibility)
	for _, f := range s.filters {
		if f.Type == domain.FilterByVisibility {
			return out
		}
	}
	visible := out[:0]
	for _, a := range out {
		if s.hierSvc.IsAnnotationVisible(s.visibility, a) {
			visible = append(visible, a)
		}
	}
	return visible
}

// SetTool switches tools, abandoning any gesture in progress.
func (s *Session) SetTool(tool domain.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool = tool
	s.draw = nil
	s.drawSvc.SetCursor(s.cursor, tool)
}

// SetTemplate sets what the next drawn annotation is tagged with.
func (s *Session) SetTemplate(template domain.AnnotationTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !template.Type.IsValid() {
		template.Type = domain.AnnotationGeneric
	}
	s.template = template
}

// PointerDown starts a gesture if the rectangle tool is active.
func (s *Session) PointerDown(ev domain.PointerEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draw = s.drawSvc.StartDrawing(ev, s.viewport, s.tool)
	return s.draw != nil
}

// PointerUp completes a gesture. Returns the new annotation, or nil if
// the gesture was rejected.
func (s *Session) PointerUp(ev domain.PointerEvent) *domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draw == nil {
		return nil
	}
	state := *s.draw
	s.draw = nil

	opts := domain.OptionsForProject(s.project, s.template.Type, s.template.RoomType, s.view.Page)
	opts.Rotation = s.displayRotationLocked()
	opts.MinDragPixels = s.settings.Canvas.MinDragPixels
	opts.RoomID = s.template.RoomID
	opts.RoomLocationID = s.template.RoomLocationID
	opts.CabinetRunID = s.template.CabinetRunID
	opts.CabinetID = s.template.CabinetID

	a := s.drawSvc.StopDrawing(ev, s.viewport, state, opts, s.annotations)
	if a == nil {
		return nil
	}
	a.ID = uuid.NewString()
	s.commitLocked(appendAnnotation(s.annotations, *a))
	s.selectedID = a.ID
	out := a.Clone()
	return &out
}

// CancelDrawing abandons the gesture in progress.
func (s *Session) CancelDrawing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draw = nil
}

// AddAnnotation adds an annotation created outside a gesture, such as an
// import. A missing ID, colour or label is derived; bounds are clamped.
func (s *Session) AddAnnotation(a domain.Annotation) domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()

	a = a.Clone()
	if a.ID == "" || domain.IndexOf(s.annotations, a.ID) >= 0 {
		a.ID = uuid.NewString()
	}
	if !a.Type.IsValid() {
		a.Type = domain.AnnotationGeneric
	}
	if a.PageNumber < 1 {
		a.PageNumber = s.view.Page
	}
	r := a.Rect().ClampUnit()
	a.X, a.Y, a.Width, a.Height = r.X, r.Y, r.Width, r.Height
	if a.Color == "" {
		a.Color = s.drawSvc.AnnotationColor(a.Type, a.RoomType, s.project.RoomColors, s.project.FallbackColor())
	}
	if a.Text == "" {
		a.Text = s.drawSvc.GenerateLabel(a.Type, a.RoomType, s.project.ProjectNumber, s.project.RoomCodes,
			len(s.annotations))
	}

	s.commitLocked(appendAnnotation(s.annotations, a))
	return a.Clone()
}

// SelectAt hit-tests a screen position against visible annotations on the
// current page.
func (s *Session) SelectAt(ev domain.PointerEvent) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewport == nil {
		return ""
	}
	b := s.viewport.Bounds()
	if b.Width <= 0 || b.Height <= 0 {
		return ""
	}
	rotation := s.displayRotationLocked()
	display := domain.Rect{X: (ev.ClientX - b.Left) / b.Width, Y: (ev.ClientY - b.Top) / b.Height}
	p := domain.UnrotateRect(display, rotation)
	// The pixel tolerance is normalised on screen, then turned with the page.
	tol := domain.UnrotateRect(domain.Rect{
		Width:  SelectTolerancePixels / b.Width,
		Height: SelectTolerancePixels / b.Height,
	}, rotation)

	var candidates []domain.Annotation
	for _, a := range s.filteredLocked() {
		if a.PageNumber == s.view.Page {
			candidates = append(candidates, a)
		}
	}
	s.selectedID = s.editSvc.SelectAnnotation(candidates, p.X, p.Y, domain.Size{Width: tol.Width, Height: tol.Height})
	return s.selectedID
}

// Select selects an annotation by ID.
func (s *Session) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain.IndexOf(s.annotations, id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = s.editSvc.DeselectAnnotation()
}

// DeleteSelected removes the selected annotation.
func (s *Session) DeleteSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.editSvc.DeleteSelected(s.annotations, s.selectedID)
	if res == nil {
		return false
	}
	s.commitLocked(res.Annotations)
	s.selectedID = res.SelectedID
	return true
}

// RemoveAt removes the annotation at index.
func (s *Session) RemoveAt(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.editSvc.RemoveAnnotation(s.annotations, index)
	if len(next) == len(s.annotations) {
		return false
	}
	s.commitLocked(next)
	s.dropStaleSelectionLocked()
	return true
}

// ClearLast removes the most recently added annotation.
func (s *Session) ClearLast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.annotations) == 0 {
		return false
	}
	s.commitLocked(s.editSvc.ClearLastAnnotation(s.annotations))
	s.dropStaleSelectionLocked()
	return true
}

// ClearAll removes every annotation if confirm approves. A declined
// confirmation is a no-op.
func (s *Session) ClearAll(confirm driven.Confirmer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.annotations) == 0 {
		return false
	}
	next := s.editSvc.ClearAllAnnotations(s.annotations, confirm)
	if len(next) != 0 {
		return false
	}
	s.commitLocked(next)
	s.selectedID = ""
	return true
}

// Update moves or resizes an annotation.
func (s *Session) Update(id string, bounds domain.Rect) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.editSvc.UpdateAnnotation(s.annotations, id, bounds)
	if next == nil {
		return false
	}
	s.commitLocked(next)
	return true
}

// Undo restores the previous annotation list.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.editSvc.Undo(s.annotations, s.history)
	if res == nil {
		return false
	}
	s.annotations, s.history = res.Annotations, res.History
	s.persistLocked()
	s.dropStaleSelectionLocked()
	return true
}

// Redo reapplies the last undone change.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.editSvc.Redo(s.annotations, s.history)
	if res == nil {
		return false
	}
	s.annotations, s.history = res.Annotations, res.History
	s.persistLocked()
	s.dropStaleSelectionLocked()
	return true
}

// ZoomIn steps zoom up.
func (s *Session) ZoomIn() {
	s.setView(func(v *domain.ViewState) { v.Zoom = s.viewSvc.ZoomIn(v.Zoom) })
}

// ZoomOut steps zoom down.
func (s *Session) ZoomOut() {
	s.setView(func(v *domain.ViewState) { v.Zoom = s.viewSvc.ZoomOut(v.Zoom) })
}

// ResetZoom returns to the default zoom.
func (s *Session) ResetZoom() {
	s.setView(func(v *domain.ViewState) { v.Zoom = s.viewSvc.ResetZoom() })
}

// RotateClockwise turns the page 90 degrees clockwise.
func (s *Session) RotateClockwise() {
	s.setView(func(v *domain.ViewState) { v.Rotation = s.viewSvc.RotateClockwise(v.Rotation) })
}

// RotateCounterClockwise turns the page 90 degrees counter-clockwise.
func (s *Session) RotateCounterClockwise() {
	s.setView(func(v *domain.ViewState) { v.Rotation = s.viewSvc.RotateCounterClockwise(v.Rotation) })
}

// FitToPage zooms so the whole page fits container.
func (s *Session) FitToPage(container domain.Size) {
	s.fit(container, s.viewSvc.CalculateFitToPage)
}

// FitToWidth zooms so the page width fills container.
func (s *Session) FitToWidth(container domain.Size) {
	s.fit(container, s.viewSvc.CalculateFitToWidth)
}

// FitToHeight zooms so the page height fills container.
func (s *Session) FitToHeight(container domain.Size) {
	s.fit(container, s.viewSvc.CalculateFitToHeight)
}

func (s *Session) fit(container domain.Size, calc func(domain.Size, domain.Size, float64, int) float64) {
	s.setView(func(v *domain.ViewState) {
		if s.page == nil {
			return
		}
		viewport := domain.Size{Width: s.page.Width * v.Zoom, Height: s.page.Height * v.Zoom}
		v.Zoom = calc(viewport, container, v.Zoom, s.displayRotationLocked())
	})
}

func (s *Session) setView(fn func(*domain.ViewState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.view
	fn(&s.view)
	if s.view != before {
		s.persistViewLocked()
	}
}

// GoToPage shows page n. Returns false when n is out of range.
func (s *Session) GoToPage(ctx context.Context, n int) (bool, error) {
	return s.navigate(ctx, func() (*driving.PageResult, error) {
		return s.navSvc.GoToPage(ctx, s.renderer, n, s.pageCount)
	})
}

// GoToPageInput shows the page raw names after sanitising it against the
// page count, so it never fails on out-of-range input.
func (s *Session) GoToPageInput(ctx context.Context, raw any) (bool, error) {
	return s.navigate(ctx, func() (*driving.PageResult, error) {
		n := s.navSvc.SanitizePageInput(raw, s.pageCount)
		return s.navSvc.GoToPage(ctx, s.renderer, n, s.pageCount)
	})
}

// NextPage shows the next page. Returns false on the last page.
func (s *Session) NextPage(ctx context.Context) (bool, error) {
	return s.navigate(ctx, func() (*driving.PageResult, error) {
		return s.navSvc.GoToNextPage(ctx, s.renderer, s.view.Page, s.pageCount)
	})
}

// PreviousPage shows the previous page. Returns false on the first page.
func (s *Session) PreviousPage(ctx context.Context) (bool, error) {
	return s.navigate(ctx, func() (*driving.PageResult, error) {
		return s.navSvc.GoToPreviousPage(ctx, s.renderer, s.view.Page, s.pageCount)
	})
}

// FirstPage shows page 1.
func (s *Session) FirstPage(ctx context.Context) (bool, error) {
	return s.navigate(ctx, func() (*driving.PageResult, error) {
		return s.navSvc.GoToFirstPage(ctx, s.renderer, s.pageCount)
	})
}

// LastPage shows the last page.
func (s *Session) LastPage(ctx context.Context) (bool, error) {
	return s.navigate(ctx, func() (*driving.PageResult, error) {
		return s.navSvc.GoToLastPage(ctx, s.renderer, s.pageCount)
	})
}

func (s *Session) navigate(_ context.Context, fn func() (*driving.PageResult, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.renderer == nil {
		return false, domain.ErrNoDocument
	}
	res, err := fn()
	if err != nil || res == nil {
		return false, err
	}
	s.applyPageLocked(res)
	return true, nil
}

func (s *Session) applyPageLocked(res *driving.PageResult) {
	s.page = &res.Page
	s.draw = nil
	if s.view.Page != res.PageNumber {
		s.view.Page = res.PageNumber
		s.persistViewLocked()
	}
}

// Tree builds the room tree, or the page tree when byPage is set.
func (s *Session) Tree(byPage bool) []domain.TreeNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byPage {
		return s.hierSvc.BuildPageTree(s.annotations, s.hierarchy)
	}
	return s.hierSvc.BuildRoomTree(s.annotations, s.hierarchy)
}

// Hierarchy returns the project's hierarchy records.
func (s *Session) Hierarchy() domain.Hierarchy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hierarchy
}

// ToggleVisibility flips a tree node's visibility.
func (s *Session) ToggleVisibility(ref domain.NodeRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visibility = s.hierSvc.ToggleVisibility(s.visibility, ref, s.annotations, s.hierarchy)
	s.dropHiddenSelectionLocked()
}

// ToggleAnnotationVisibility flips one annotation's visibility.
func (s *Session) ToggleAnnotationVisibility(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.IndexOf(s.annotations, id)
	if idx < 0 {
		return false
	}
	s.visibility = s.hierSvc.ToggleAnnotationVisibility(s.visibility, s.annotations[idx])
	s.dropHiddenSelectionLocked()
	return true
}

// IsVisible reports whether an annotation is currently visible.
func (s *Session) IsVisible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := domain.IndexOf(s.annotations, id)
	return idx >= 0 && s.hierSvc.IsAnnotationVisible(s.visibility, s.annotations[idx])
}

// Isolate focuses the subtree containing the annotation at level, moving
// to its page and zooming to frame it inside container.
func (s *Session) Isolate(ctx context.Context, annotationID string, level domain.HierarchyLevel, container domain.Size) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.annotations, annotationID)
	if idx < 0 {
		return false, nil
	}
	current := s.view
	if s.isolation.Active {
		current = s.isolation.SavedView
	}
	res := s.hierSvc.EnterIsolationMode(s.annotations[idx], level, current, s.annotations, s.hierarchy)
	if res == nil {
		return false, nil
	}

	if res.FocusPage != s.view.Page {
		page, err := s.navSvc.GoToPage(ctx, s.renderer, res.FocusPage, s.pageCount)
		if err != nil {
			return false, err
		}
		if page != nil {
			s.applyPageLocked(page)
		}
	}

	s.isolation = res.State
	s.expanded = res.ExpandedNodes
	if s.page != nil {
		s.view.Zoom = s.viewSvc.FitToRegion(
			res.FocusRegion, s.page.Size(), container, s.displayRotationLocked(), IsolationPadding)
	}
	s.persistViewLocked()
	logger.Debug("session: isolated %s %d (%s)", level, res.State.IsolatedID, res.State.IsolatedName)
	return true, nil
}

// ExitIsolation restores the view saved when isolation began.
func (s *Session) ExitIsolation(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isolation.Active {
		return nil
	}
	saved, cleared := s.hierSvc.ExitIsolationMode(s.isolation)
	s.isolation = cleared
	s.expanded = nil

	if saved.Page != s.view.Page {
		res, err := s.navSvc.GoToPage(ctx, s.renderer, saved.Page, s.pageCount)
		if err != nil {
			return err
		}
		if res != nil {
			s.applyPageLocked(res)
		}
	}
	s.view.Zoom = saved.Zoom
	s.view.Rotation = saved.Rotation
	s.persistViewLocked()
	return nil
}

// IsMasked reports whether a is dimmed by isolation.
func (s *Session) IsMasked(a domain.Annotation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hierSvc.IsMasked(a, s.isolation)
}

// ApplyFilter adds or replaces a filter. Returns false for an invalid value.
func (s *Session) ApplyFilter(t domain.FilterType, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.filterSvc.ApplyFilter(s.filters, t, value)
	want := domain.Filter{Type: t, Value: strings.TrimSpace(value)}
	for _, f := range next {
		if f == want {
			s.filters = next
			return true
		}
	}
	return false
}

// RemoveFilter drops the filter of type t.
func (s *Session) RemoveFilter(t domain.FilterType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filterSvc.RemoveFilter(s.filters, t)
}

// ClearFilters drops every filter.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filterSvc.ClearAllFilters()
}

// Flush waits for in-flight saves and persists the latest view.
func (s *Session) Flush() {
	s.saves.Wait()

	s.mu.Lock()
	dirty, view := s.viewDirty, s.view
	s.viewDirty = false
	s.viewSeq++
	seq := s.viewSeq
	s.mu.Unlock()

	if dirty && s.views != nil {
		s.saveView(seq, s.project.ID, view)
	}
}

// commitLocked records history and replaces the annotation list.
func (s *Session) commitLocked(next []domain.Annotation) {
	s.history = s.editSvc.SaveState(s.annotations, s.history, s.settings.History.MaxSize)
	s.annotations = next
	s.persistLocked()
}

// persistLocked fires the save callback with a snapshot of the list.
// Saves never block the caller; a save older than one already written is
// skipped so a slow write cannot roll back a newer one.
func (s *Session) persistLocked() {
	s.saveSeq++
	seq := s.saveSeq
	snapshot := domain.CloneAnnotations(s.annotations)
	projectID := s.project.ID

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()
		if seq <= s.savedSeq {
			return
		}
		s.savedSeq = seq
		if err := s.store.ReplaceAll(context.Background(), projectID, snapshot); err != nil {
			logger.Warn("failed to save annotations for %s: %v", projectID, err)
		}
	}()
}

// persistViewLocked saves the view if the autosave limiter allows,
// otherwise marks it for the next Flush.
func (s *Session) persistViewLocked() {
	if s.views == nil {
		return
	}
	if !s.viewLimit.Allow() {
		s.viewDirty = true
		return
	}
	s.viewDirty = false
	s.viewSeq++
	seq := s.viewSeq
	view := s.view
	projectID := s.project.ID

	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		s.saveView(seq, projectID, view)
	}()
}

// saveView writes view unless a newer one has already been written.
func (s *Session) saveView(seq uint64, projectID string, view domain.ViewState) {
	s.viewMu.Lock()
	defer s.viewMu.Unlock()
	if seq <= s.viewSaved {
		return
	}
	s.viewSaved = seq
	if err := s.views.SaveViewState(context.Background(), projectID, view); err != nil {
		logger.Warn("failed to save view state for %s: %v", projectID, err)
	}
}

// displayRotationLocked is the view rotation plus the page's own rotation.
func (s *Session) displayRotationLocked() int {
	if s.page == nil {
		return s.view.Rotation
	}
	return domain.NormalizeRotation(s.view.Rotation + s.page.Rotation)
}

func (s *Session) dropStaleSelectionLocked() {
	if s.selectedID != "" && domain.IndexOf(s.annotations, s.selectedID) < 0 {
		s.selectedID = ""
	}
}

func (s *Session) dropHiddenSelectionLocked() {
	idx := domain.IndexOf(s.annotations, s.selectedID)
	if idx >= 0 && !s.hierSvc.IsAnnotationVisible(s.visibility, s.annotations[idx]) {
		s.selectedID = ""
	}
}

func appendAnnotation(list []domain.Annotation, a domain.Annotation) []domain.Annotation {
	out := make([]domain.Annotation, 0, len(list)+1)
	out = append(out, list...)
	return append(out, a)
}
