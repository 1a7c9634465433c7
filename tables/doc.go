// Package tables finds ruled tables on a page and reads their cell text.
//
// Tables are recognized from the horizontal and vertical lines drawn on
// the page (rulings), not from text alignment. Rulings that touch each
// other form a cluster; each cluster with at least two horizontal and two
// vertical positions becomes a [Grid].
//
// # Extraction
//
//	extractor := tables.NewExtractor(tables.DefaultConfig())
//	cells := extractor.Extract(rulings, glyphs) // [][][]string
//
// Glyphs are assigned to cells by their center point, so text inside a
// table still appears in the page's text lines as well.
//
// # Configuration
//
//   - MinRows, MinCols - minimum table dimensions (default 1x1)
//   - MinConfidence - confidence threshold (0-1)
//   - AlignmentTolerance - distance at which rulings are merged or touch
//   - MinLineLength - rulings shorter than this are ignored
//
// # Confidence Scoring
//
// Grid confidence (0-1) is based on:
//
//   - Cell count (30%)
//   - Row and column regularity (30%)
//   - Border completeness (20%)
//   - Share of ruling groups used by the grid (20%)
package tables
