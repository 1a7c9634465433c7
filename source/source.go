// Package source defines the page source collaborator consumed by layout
// reconstruction.
//
// A [PageSource] exposes the pages of one document: page dimensions, the
// full glyph list, any tables it detected (as cell grids) and any image
// regions. How these are computed is up to the implementation; the reader
// package provides one backed by PDF decoding and [Static] provides an
// in-memory one.
package source

import (
	"fmt"
	"math"

	"github.com/tsawler/pagelayout/model"
)

// PageSource supplies the content of one document, one page at a time.
// Implementations own an open handle that must be released with Close.
type PageSource interface {
	// PageCount returns the number of pages in the document
	PageCount() int

	// Page returns the content of a page (1-indexed)
	Page(number int) (PageContent, error)

	// Close releases the underlying handle
	Close() error
}

// PageContent is everything the page source reports for one page
type PageContent struct {
	// Width and Height are the page dimensions in page units
	Width  float64
	Height float64

	// Glyphs is the full glyph list in the source's enumeration order
	Glyphs []model.Glyph

	// Tables are the detected tables, each an ordered grid of cell text
	Tables [][][]string

	// Images are the detected image regions
	Images []model.BBox
}

// Normalize returns a copy of content with malformed entries removed.
// Glyphs with empty text, non-finite coordinates or a negative size are
// dropped, as are images with non-finite boxes. Nothing here is an error:
// a page whose results are unusable simply has no glyphs, tables or images.
func Normalize(content PageContent) PageContent {
	out := PageContent{
		Width:  content.Width,
		Height: content.Height,
	}

	if len(content.Glyphs) > 0 {
		out.Glyphs = make([]model.Glyph, 0, len(content.Glyphs))
		for _, g := range content.Glyphs {
			if g.Text == "" || g.Size < 0 || math.IsNaN(g.Size) || !g.BBox().IsFinite() {
				continue
			}
			out.Glyphs = append(out.Glyphs, g)
		}
	}

	for _, table := range content.Tables {
		if table == nil {
			continue
		}
		out.Tables = append(out.Tables, table)
	}

	for _, img := range content.Images {
		if !img.IsFinite() {
			continue
		}
		out.Images = append(out.Images, img)
	}

	return out
}

// Static is an in-memory PageSource
type Static struct {
	Pages  []PageContent
	closed bool
}

// NewStatic creates a Static source from the given pages
func NewStatic(pages ...PageContent) *Static {
	return &Static{Pages: pages}
}

// PageCount returns the number of pages
func (s *Static) PageCount() int {
	return len(s.Pages)
}

// Page returns a page by number (1-indexed)
func (s *Static) Page(number int) (PageContent, error) {
	if s.closed {
		return PageContent{}, fmt.Errorf("source is closed")
	}
	if number < 1 || number > len(s.Pages) {
		return PageContent{}, fmt.Errorf("page %d out of range [1, %d]", number, len(s.Pages))
	}
	return s.Pages[number-1], nil
}

// Close marks the source closed. It is safe to call Close multiple times.
func (s *Static) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called
func (s *Static) Closed() bool {
	return s.closed
}
