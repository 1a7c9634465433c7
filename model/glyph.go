package model

// Glyph is one decoded character with its position and font. Glyphs are
// owned by the page source; layout code reads them but never mutates them.
type Glyph struct {
	Text     string
	X0       float64
	Top      float64
	X1       float64
	Bottom   float64
	FontName string
	Size     float64
}

// BBox returns the glyph's bounding box
func (g Glyph) BBox() BBox {
	return BBox{X0: g.X0, Top: g.Top, X1: g.X1, Bottom: g.Bottom}
}

// Word is a run of glyphs on one line separated by gaps no larger than the
// horizontal tolerance.
//
// FontName and Size are taken from the word's first glyph. They are not
// re-derived per glyph, so a word that changes font midway keeps the
// typography of its leading character.
type Word struct {
	Text     string
	BBox     BBox
	FontName string
	Size     float64
}

// PageStats holds the font size statistics of one page
type PageStats struct {
	// BaseFontSize is the smallest positive word size on the page
	BaseFontSize float64

	// MaxFontSize is the largest positive word size on the page
	MaxFontSize float64
}
