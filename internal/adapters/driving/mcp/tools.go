package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// ListAnnotationsInput is the input schema for the list_annotations tool.
type ListAnnotationsInput struct {
	Page          int    `json:"page,omitempty" jsonschema:"only annotations on this page"`
	Type          string `json:"type,omitempty" jsonschema:"only this annotation type: room, location, cabinet_run, cabinet, dimension or generic"`
	RoomID        int64  `json:"room_id,omitempty" jsonschema:"only annotations in this room"`
	IncludeHidden bool   `json:"include_hidden,omitempty" jsonschema:"also list hidden annotations"`
}

// ListAnnotationsOutput is the output schema for the list_annotations tool.
type ListAnnotationsOutput struct {
	Annotations []AnnotationOutput `json:"annotations"`
	Count       int                `json:"count"`
}

// AnnotationOutput is one annotation with its computed visibility.
type AnnotationOutput struct {
	domain.Annotation
	Visible bool `json:"visible"`
}

// HierarchyTreeInput is the input schema for the hierarchy_tree tool.
type HierarchyTreeInput struct {
	ByPage bool `json:"by_page,omitempty" jsonschema:"group by page instead of by room"`
}

// HierarchyTreeOutput is the output schema for the hierarchy_tree tool.
type HierarchyTreeOutput struct {
	Nodes []domain.TreeNode `json:"nodes"`
}

// DocumentPagesInput is the input schema for the document_pages tool.
type DocumentPagesInput struct{}

// DocumentPagesOutput describes the document and the current view.
type DocumentPagesOutput struct {
	PageCount int     `json:"page_count"`
	Page      int     `json:"page"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Zoom      float64 `json:"zoom"`
	Rotation  int     `json:"rotation"`
}

// GoToPageInput is the input schema for the go_to_page tool.
type GoToPageInput struct {
	Page int `json:"page" jsonschema:"1-based page number"`
}

// ToggleVisibilityInput is the input schema for the toggle_visibility tool.
// Either AnnotationID or Level and ID must be set.
type ToggleVisibilityInput struct {
	AnnotationID string `json:"annotation_id,omitempty" jsonschema:"annotation to show or hide"`
	Level        string `json:"level,omitempty" jsonschema:"hierarchy level: room, location, cabinet_run or cabinet"`
	ID           int64  `json:"id,omitempty" jsonschema:"hierarchy node ID at level"`
}

// ToggleVisibilityOutput reports how many annotations are visible afterwards.
type ToggleVisibilityOutput struct {
	Visible int `json:"visible"`
	Total   int `json:"total"`
}

// IsolateInput is the input schema for the isolate tool.
type IsolateInput struct {
	AnnotationID string `json:"annotation_id,omitempty" jsonschema:"annotation whose subtree to isolate; empty exits isolation"`
	Level        string `json:"level,omitempty" jsonschema:"hierarchy level to isolate at (default room)"`
}

// IsolateOutput is the isolation state after the call.
type IsolateOutput struct {
	Active bool   `json:"active"`
	Level  string `json:"level,omitempty"`
	Name   string `json:"name,omitempty"`
	Page   int    `json:"page"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_annotations",
		Description: "List annotations of the open project, optionally filtered by page, type or room",
	}, s.handleListAnnotations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "hierarchy_tree",
		Description: "Room > location > cabinet run > cabinet tree with annotation counts",
	}, s.handleHierarchyTree)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_pages",
		Description: "Page count, current page and view of the plan document",
	}, s.handleDocumentPages)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "go_to_page",
		Description: "Show a page of the plan document",
	}, s.handleGoToPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "toggle_visibility",
		Description: "Show or hide an annotation or a whole hierarchy node",
	}, s.handleToggleVisibility)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "isolate",
		Description: "Focus the view on one hierarchy subtree, or exit isolation",
	}, s.handleIsolate)
}

func (s *Server) handleListAnnotations(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListAnnotationsInput,
) (*mcp.CallToolResult, ListAnnotationsOutput, error) {
	var want domain.AnnotationType
	if input.Type != "" {
		t, err := domain.ParseAnnotationType(input.Type)
		if err != nil {
			return nil, ListAnnotationsOutput{}, err
		}
		want = t
	}

	snap := s.ports.Session.Snapshot()
	source := snap.Filtered
	if input.IncludeHidden {
		source = snap.Annotations
	}

	output := ListAnnotationsOutput{Annotations: []AnnotationOutput{}}
	for _, a := range source {
		if input.Page > 0 && a.PageNumber != input.Page {
			continue
		}
		if want != "" && a.Type != want {
			continue
		}
		if input.RoomID != 0 && (a.RoomID == nil || *a.RoomID != input.RoomID) {
			continue
		}
		output.Annotations = append(output.Annotations, AnnotationOutput{
			Annotation: a,
			Visible:    s.ports.Session.IsVisible(a.ID),
		})
	}
	output.Count = len(output.Annotations)
	return nil, output, nil
}

func (s *Server) handleHierarchyTree(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HierarchyTreeInput,
) (*mcp.CallToolResult, HierarchyTreeOutput, error) {
	nodes := s.ports.Session.Tree(input.ByPage)
	if nodes == nil {
		nodes = []domain.TreeNode{}
	}
	return nil, HierarchyTreeOutput{Nodes: nodes}, nil
}

func (s *Server) handleDocumentPages(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ DocumentPagesInput,
) (*mcp.CallToolResult, DocumentPagesOutput, error) {
	return nil, s.pagesOutput(), nil
}

func (s *Server) pagesOutput() DocumentPagesOutput {
	snap := s.ports.Session.Snapshot()
	out := DocumentPagesOutput{
		PageCount: snap.PageCount,
		Page:      snap.View.Page,
		Zoom:      snap.View.Zoom,
		Rotation:  snap.View.Rotation,
	}
	if snap.Page != nil {
		out.Width = snap.Page.Width
		out.Height = snap.Page.Height
	}
	return out
}

func (s *Server) handleGoToPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GoToPageInput,
) (*mcp.CallToolResult, DocumentPagesOutput, error) {
	ok, err := s.ports.Session.GoToPage(ctx, input.Page)
	if err != nil {
		return nil, DocumentPagesOutput{}, err
	}
	if !ok {
		total := s.ports.Session.Snapshot().PageCount
		return nil, DocumentPagesOutput{}, fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, input.Page, total)
	}
	return nil, s.pagesOutput(), nil
}

func (s *Server) handleToggleVisibility(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ToggleVisibilityInput,
) (*mcp.CallToolResult, ToggleVisibilityOutput, error) {
	switch {
	case input.AnnotationID != "":
		if !s.ports.Session.ToggleAnnotationVisibility(input.AnnotationID) {
			return nil, ToggleVisibilityOutput{}, fmt.Errorf("annotation %s: %w", input.AnnotationID, domain.ErrNotFound)
		}
	case input.Level != "":
		level, err := domain.ParseHierarchyLevel(input.Level)
		if err != nil {
			return nil, ToggleVisibilityOutput{}, err
		}
		s.ports.Session.ToggleVisibility(domain.NodeRef{Level: level, ID: input.ID})
	default:
		return nil, ToggleVisibilityOutput{}, fmt.Errorf("%w: annotation_id or level is required", domain.ErrInvalidInput)
	}

	snap := s.ports.Session.Snapshot()
	out := ToggleVisibilityOutput{Total: len(snap.Annotations)}
	for _, a := range snap.Annotations {
		if s.ports.Session.IsVisible(a.ID) {
			out.Visible++
		}
	}
	return nil, out, nil
}

func (s *Server) handleIsolate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IsolateInput,
) (*mcp.CallToolResult, IsolateOutput, error) {
	session := s.ports.Session
	if strings.TrimSpace(input.AnnotationID) == "" {
		if err := session.ExitIsolation(ctx); err != nil {
			return nil, IsolateOutput{}, err
		}
		return nil, s.isolateOutput(), nil
	}

	level := domain.LevelRoom
	if input.Level != "" {
		l, err := domain.ParseIsolationLevel(input.Level)
		if err != nil {
			return nil, IsolateOutput{}, err
		}
		level = l
	}

	// Frame the region against the page itself; there is no window.
	container := domain.Size{Width: 1, Height: 1}
	if page := session.Snapshot().Page; page != nil {
		container = page.Size()
	}
	ok, err := session.Isolate(ctx, input.AnnotationID, level, container)
	if err != nil {
		return nil, IsolateOutput{}, err
	}
	if !ok {
		return nil, IsolateOutput{}, fmt.Errorf("%w: annotation %s has no %s", domain.ErrNotFound, input.AnnotationID, level)
	}
	return nil, s.isolateOutput(), nil
}

func (s *Server) isolateOutput() IsolateOutput {
	snap := s.ports.Session.Snapshot()
	return IsolateOutput{
		Active: snap.Isolation.Active,
		Level:  string(snap.Isolation.Level),
		Name:   snap.Isolation.IsolatedName,
		Page:   snap.View.Page,
	}
}
