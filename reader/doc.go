// Package reader implements a PDF backed page source.
//
// Text is decoded with github.com/ledongthuc/pdf and converted to glyphs
// in top-down page coordinates relative to the page's MediaBox (inherited
// from the page tree when a page does not declare one; Letter when no
// node does). Glyph text is NFC normalized.
//
// A second pass replays each content stream through the graphicsstate
// package to find where images are painted and which straight lines and
// rectangles are stroked or filled. Those lines become rulings for the
// tables package, which reports ruled tables as grids of cell text.
//
//	r, err := reader.Open("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	content, err := r.Page(1)
//
// Unreadable files and pages fail with [ErrDecode]. Out of range page
// numbers fail with [ErrPageRange]. Problems confined to graphics, such
// as a missing XObject, are kept as warnings and the page text is still
// returned.
package reader
