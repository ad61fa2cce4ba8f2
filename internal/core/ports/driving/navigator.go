package driving

import (
	"context"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// PageResult is a resolved page and the page number it now shows.
type PageResult struct {
	Page       domain.Page
	PageNumber int
}

// PageNavigator validates and performs page navigation.
// Navigation never wraps around. A nil result with a nil error means the
// request was rejected; errors are reserved for renderer failures.
type PageNavigator interface {
	GoToPage(ctx context.Context, doc driven.DocumentRenderer, pageNum, total int) (*PageResult, error)
	GoToFirstPage(ctx context.Context, doc driven.DocumentRenderer, total int) (*PageResult, error)
	GoToLastPage(ctx context.Context, doc driven.DocumentRenderer, total int) (*PageResult, error)
	GoToNextPage(ctx context.Context, doc driven.DocumentRenderer, current, total int) (*PageResult, error)
	GoToPreviousPage(ctx context.Context, doc driven.DocumentRenderer, current, total int) (*PageResult, error)

	// IsValidPageNumber reports whether n is an integer in [1, total].
	IsValidPageNumber(n float64, total int) bool

	// SanitizePageInput parses numeric or string input and clamps it to
	// [1, total]. Unparseable or negative input yields 1.
	SanitizePageInput(raw any, total int) int
}
