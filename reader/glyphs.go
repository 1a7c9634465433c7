package reader

import (
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pagelayout/graphicsstate"
	"github.com/tsawler/pagelayout/model"
)

// convertText turns decoded text runs into glyphs in top-down page
// coordinates. The run's baseline is its bottom edge and its font size
// its height. Text is NFC normalized; runs of only control characters
// are dropped.
func convertText(texts []pdf.Text, box graphicsstate.Rect) []model.Glyph {
	glyphs := make([]model.Glyph, 0, len(texts))

	for _, t := range texts {
		s := norm.NFC.String(t.S)
		if isControl(s) {
			continue
		}

		x0 := t.X - box.Min.X
		bottom := box.Max.Y - t.Y
		glyphs = append(glyphs, model.Glyph{
			Text:     s,
			X0:       x0,
			Top:      bottom - t.FontSize,
			X1:       x0 + t.W,
			Bottom:   bottom,
			FontName: t.Font,
			Size:     t.FontSize,
		})
	}

	return glyphs
}

func isControl(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsControl(r) }) < 0
}

// toTopDown converts a rectangle in PDF space into a page box
func toTopDown(r, box graphicsstate.Rect) model.BBox {
	return model.NewBBox(
		r.Min.X-box.Min.X,
		box.Max.Y-r.Max.Y,
		r.Max.X-box.Min.X,
		box.Max.Y-r.Min.Y,
	)
}
