package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for plancanvas resources.
	uriScheme = "plancanvas://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "project",
		Name:        "project",
		Description: "The open project and its hierarchy",
		MIMEType:    "application/json",
	}, s.handleProjectResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "pages/{page}/annotations",
		Name:        "page-annotations",
		Description: "Annotations drawn on a specific page",
		MIMEType:    "application/json",
	}, s.handlePageAnnotationsResource)
}

// handleProjectResource returns the project settings and hierarchy.
func (s *Server) handleProjectResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	snap := s.ports.Session.Snapshot()

	type projectInfo struct {
		ID            string           `json:"id"`
		Name          string           `json:"name"`
		ProjectNumber string           `json:"project_number"`
		DocumentPath  string           `json:"document_path,omitempty"`
		PageCount     int              `json:"page_count"`
		Annotations   int              `json:"annotations"`
		Hierarchy     domain.Hierarchy `json:"hierarchy"`
	}

	info := projectInfo{
		ID:            snap.Project.ID,
		Name:          snap.Project.Name,
		ProjectNumber: snap.Project.ProjectNumber,
		DocumentPath:  snap.Project.DocumentPath,
		PageCount:     snap.PageCount,
		Annotations:   len(snap.Annotations),
		Hierarchy:     s.ports.Session.Hierarchy(),
	}

	return jsonResult(req.Params.URI, info, "project")
}

// handlePageAnnotationsResource returns every annotation on one page,
// hidden ones included.
func (s *Server) handlePageAnnotationsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// plancanvas://pages/{page}/annotations
	page := extractPageNumber(req.Params.URI)
	snap := s.ports.Session.Snapshot()
	if page < 1 || page > snap.PageCount {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	annotations := []AnnotationOutput{}
	for _, a := range snap.Annotations {
		if a.PageNumber != page {
			continue
		}
		annotations = append(annotations, AnnotationOutput{
			Annotation: a,
			Visible:    s.ports.Session.IsVisible(a.ID),
		})
	}

	return jsonResult(req.Params.URI, annotations, "annotations")
}

func jsonResult(uri string, v any, what string) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", what, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPageNumber extracts the page from a URI like
// plancanvas://pages/{page}/annotations. It returns 0 when the URI does not match.
func extractPageNumber(uri string) int {
	const prefix = uriScheme + "pages/"
	const suffix = "/annotations"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSuffix(uri, suffix))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
