package driven

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

// DocumentRenderer exposes the pages of a loaded document.
// Decoding pixels is the renderer's concern; core only needs geometry.
type DocumentRenderer interface {
	// PageCount returns the number of pages in the document.
	PageCount(ctx context.Context) (int, error)

	// Page resolves a 1-based page. It may block while the page loads.
	Page(ctx context.Context, number int) (*domain.Page, error)
}
