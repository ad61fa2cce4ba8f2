// Package raster provides a DocumentRenderer over scanned plan sheets.
// A document is either a single image file or a directory of images, one
// page per file in filename order.
package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
	"github.com/custodia-labs/plancanvas/internal/core/ports/driven"
	"github.com/custodia-labs/plancanvas/internal/logger"
)

// Ensure Document implements the interface.
var _ driven.DocumentRenderer = (*Document)(nil)

// extensions lists the file types a page can be read from.
var extensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".tif": true, ".tiff": true, ".bmp": true, ".webp": true,
}

// IsSupported reports whether path has an image extension this package reads.
func IsSupported(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Document serves page sizes read from image headers.
// Headers are decoded on first access and cached.
type Document struct {
	mu    sync.Mutex
	files []string
	pages map[int]domain.Page
}

// Open opens an image file or a directory of images.
func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading document directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !IsSupported(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		sort.Strings(files)
		if len(files) == 0 {
			return nil, fmt.Errorf("%w: no images in %s", domain.ErrNoDocument, path)
		}
	} else {
		if !IsSupported(path) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Ext(path))
		}
		files = []string{path}
	}

	logger.Debug("raster: opened %s with %d page(s)", path, len(files))
	return &Document{files: files, pages: make(map[int]domain.Page)}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(d.files), nil
}

// Page returns page number (1-based) sized from its image header.
func (d *Document) Page(ctx context.Context, number int) (*domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if number < 1 || number > len(d.files) {
		return nil, fmt.Errorf("%w: %d of %d", domain.ErrPageOutOfRange, number, len(d.files))
	}

	d.mu.Lock()
	p, ok := d.pages[number]
	d.mu.Unlock()
	if ok {
		return &p, nil
	}

	path := d.files[number-1]
	cfg, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: %s is %dx%d", domain.ErrInvalidDimensions, path, cfg.Width, cfg.Height)
	}

	p = domain.Page{
		Number: number,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Source: path,
	}
	d.mu.Lock()
	d.pages[number] = p
	d.mu.Unlock()
	return &p, nil
}

// Preload reads every page header with at most workers files open at once,
// so a broken sheet is reported when the document is opened rather than
// when its page is first shown.
func (d *Document) Preload(ctx context.Context, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for n := 1; n <= len(d.files); n++ {
		g.Go(func() error {
			_, err := d.Page(ctx, n)
			return err
		})
	}
	return g.Wait()
}

func decodeConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("opening page image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if errors.Is(err, image.ErrFormat) {
		return cfg, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filepath.Base(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("reading page image %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}
