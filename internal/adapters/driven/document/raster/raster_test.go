package raster

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plancanvas/internal/core/domain"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func TestOpen_Directory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "02-elevations.png"), 30, 20)
	writePNG(t, filepath.Join(dir, "01-floor.png"), 40, 10)
	writePNG(t, filepath.Join(dir, ".hidden.png"), 5, 5)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	doc, err := Open(dir)
	require.NoError(t, err)

	ctx := context.Background()
	count, err := doc.PageCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	p1, err := doc.Page(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Number)
	assert.Equal(t, 40.0, p1.Width)
	assert.Equal(t, 10.0, p1.Height)
	assert.Equal(t, filepath.Join(dir, "01-floor.png"), p1.Source)

	p2, err := doc.Page(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Size{Width: 30, Height: 20}, p2.Size())
}

func TestOpen_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, 8, 6)

	doc, err := Open(path)
	require.NoError(t, err)

	count, err := doc.PageCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpen_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	_, err = Open(dir)
	assert.ErrorIs(t, err, domain.ErrNoDocument)

	txt := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0600))
	_, err = Open(txt)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestPage_OutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, 8, 6)
	doc, err := Open(path)
	require.NoError(t, err)

	_, err = doc.Page(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
	_, err = doc.Page(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestPage_CorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0600))
	doc, err := Open(path)
	require.NoError(t, err)

	_, err = doc.Page(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestPage_Cancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.png")
	writePNG(t, path, 8, 6)
	doc, err := Open(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = doc.Page(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.PNG"))
	assert.True(t, IsSupported("scan.tiff"))
	assert.True(t, IsSupported("x.webp"))
	assert.False(t, IsSupported("plan.pdf"))
}

func TestPreload(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png"} {
		writePNG(t, filepath.Join(dir, name), 10+i, 5)
	}
	doc, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, doc.Preload(context.Background(), 2))
	assert.Len(t, doc.pages, 5)
	assert.Equal(t, 14.0, doc.pages[5].Width)
}

func TestPreload_ReportsBrokenSheet(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "01.png"), 10, 5)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02.png"), []byte("truncated"), 0600))
	doc, err := Open(dir)
	require.NoError(t, err)

	err = doc.Preload(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}
