// Package model provides the intermediate representation (IR) for recovered
// page structure.
//
// This package defines the data structures that flow through layout
// reconstruction: the raw [Glyph] values supplied by a page source, the
// [Word] values built from them, and the [Element] values that make up the
// structure list of each [Page]. A [Document] is the ordered list of pages
// produced for one input file.
//
// # Document Structure
//
//	doc := model.NewDocument("report.pdf")
//	doc.AddPage(page) // assigns 1-based page numbers
//
// Each [Page] holds its [PageStats] and an ordered structure list. Text lines
// come first, then tables, then images.
//
// # Elements
//
// [Element] is a tagged variant. Exactly one payload is set, selected by
// [Element.Type]:
//
//   - [TextBlock] - a classified line (title, h1, h2, h3, paragraph)
//   - [TableBlock] - an opaque cell grid passed through from the page source
//   - [ImageBlock] - an image region passed through from the page source
//
// # Geometry
//
// [BBox] uses top-down page coordinates (x0, top, x1, bottom), the same
// orientation the page source reports glyphs in. It encodes to JSON as a
// four-element array.
package model
