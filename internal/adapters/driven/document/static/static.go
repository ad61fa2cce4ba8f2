// Package static provides a DocumentRenderer over a fixed set of pages.
// It backs blank sheets when a project has no document yet.
package static

import (
	"context"
	"fmt"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
)

// Ensure Document implements the interface.
var _ driven.DocumentRenderer = (*Document)(nil)

// Sheet sizes at 72 dpi.
var (
	// SizeA3 is an A3 landscape sheet, the common plan size.
	SizeA3 = domain.Size{Width: 1191, Height: 842}

	// SizeLetter is a US letter portrait sheet.
	SizeLetter = domain.Size{Width: 612, Height: 792}
)

// Document serves pages held in memory.
type Document struct {
	pages []domain.Page
}

// New creates a document from pages, renumbering them from 1.
func New(pages ...domain.Page) *Document {
	out := make([]domain.Page, len(pages))
	for i, p := range pages {
		p.Number = i + 1
		if p.Source == "" {
			p.Source = "static"
		}
		out[i] = p
	}
	return &Document{pages: out}
}

// Blank creates a document of count identical blank pages.
func Blank(count int, size domain.Size) *Document {
	pages := make([]domain.Page, count)
	for i := range pages {
		pages[i] = domain.Page{Width: size.Width, Height: size.Height, Source: "blank"}
	}
	return New(pages...)
}

// PageCount returns the number of pages.
func (d *Document) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(d.pages), nil
}

// Page returns the 1-based page.
func (d *Document) Page(ctx context.Context, number int) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if number < 1 || number > len(d.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", number, len(d.pages), domain.ErrPageOutOfRange)
	}
	p := d.pages[number-1]
	return &p, nil
}
