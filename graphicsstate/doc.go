// Package graphicsstate replays the graphics operators of a PDF content
// stream to find where paths and images land on the page.
//
// The content stream is tokenized elsewhere; callers feed each operator
// and its numeric operands to [GraphicsExtractor.Apply]:
//
//	ge := graphicsstate.NewGraphicsExtractor()
//	ge.Apply("q", nil)
//	ge.Apply("cm", []float64{200, 0, 0, 100, 50, 600})
//	ge.PaintImage()        // Do on an image XObject
//	ge.Apply("Q", nil)
//
// # Graphics State
//
// [GraphicsState] tracks the CTM and line width, with the q/Q save stack.
//
// # Paths
//
// Paths are built with m, l, c, v, y, h and re and recorded when painted.
// Each four-sided axis-aligned subpath becomes an [ExtractedRectangle];
// the sides of other stroked subpaths become [ExtractedLine] values.
// Curves are approximated by their chord.
//
// [GraphicsExtractor.GetGridLines] returns the horizontal and vertical
// segments, including rectangle edges, that table detection works from.
package graphicsstate
