package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driving"
)

// Ensure PageNavigator implements the interface.
var _ driving.PageNavigator = (*PageNavigator)(nil)

// PageNavigator validates and performs page navigation.
type PageNavigator struct{}

// NewPageNavigator creates a new page navigator.
func NewPageNavigator() *PageNavigator {
	return &PageNavigator{}
}

// GoToPage resolves pageNum from doc. Returns nil without error when doc is
// nil or pageNum is outside [1, total].
func (n *PageNavigator) GoToPage(ctx context.Context, doc driven.DocumentRenderer, pageNum, total int) (*driving.PageResult, error) {
	if doc == nil || pageNum < 1 || pageNum > total {
		return nil, nil
	}
	page, err := doc.Page(ctx, pageNum)
	if err != nil {
		return nil, fmt.Errorf("loading page %d: %w", pageNum, err)
	}
	if page == nil {
		return nil, nil
	}
	return &driving.PageResult{Page: *page, PageNumber: pageNum}, nil
}

// GoToFirstPage navigates to page 1.
func (n *PageNavigator) GoToFirstPage(ctx context.Context, doc driven.DocumentRenderer, total int) (*driving.PageResult, error) {
	return n.GoToPage(ctx, doc, 1, total)
}

// GoToLastPage navigates to the last page.
func (n *PageNavigator) GoToLastPage(ctx context.Context, doc driven.DocumentRenderer, total int) (*driving.PageResult, error) {
	return n.GoToPage(ctx, doc, total, total)
}

// GoToNextPage navigates forward one page. Returns nil on the last page.
func (n *PageNavigator) GoToNextPage(ctx context.Context, doc driven.DocumentRenderer, current, total int) (*driving.PageResult, error) {
	if current >= total {
		return nil, nil
	}
	return n.GoToPage(ctx, doc, current+1, total)
}

// GoToPreviousPage navigates back one page. Returns nil on the first page.
func (n *PageNavigator) GoToPreviousPage(ctx context.Context, doc driven.DocumentRenderer, current, total int) (*driving.PageResult, error) {
	if current <= 1 {
		return nil, nil
	}
	return n.GoToPage(ctx, doc, current-1, total)
}

// IsValidPageNumber reports whether p is an integer in [1, total].
func (n *PageNavigator) IsValidPageNumber(p float64, total int) bool {
	if math.IsNaN(p) || math.IsInf(p, 0) || p != math.Trunc(p) {
		return false
	}
	return p >= 1 && p <= float64(total)
}

// SanitizePageInput parses raw and clamps it to [1, total].
// Fractions are truncated. Unparseable, zero or negative input yields 1.
func (n *PageNavigator) SanitizePageInput(raw any, total int) int {
	if total < 1 {
		return 1
	}
	f, ok := parsePageNumber(raw)
	if !ok || math.IsNaN(f) {
		return 1
	}
	f = math.Trunc(f)
	if f < 1 {
		return 1
	}
	if f > float64(total) {
		return total
	}
	return int(f)
}

func parsePageNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
