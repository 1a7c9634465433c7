package tables

import (
	"strings"

	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
)

// CellAt returns the cell containing the point. Points on an interior
// ruling belong to the cell after it; points on the outer border belong
// to the edge cells.
func (g *Grid) CellAt(x, y float64) (row, col int, ok bool) {
	row = locate(g.Rows, y)
	col = locate(g.Cols, x)
	if row < 0 || col < 0 {
		return 0, 0, false
	}
	return row, col, true
}

// locate returns the interval of sorted boundaries containing v, or -1
func locate(bounds []float64, v float64) int {
	n := len(bounds)
	if n < 2 || v < bounds[0] || v > bounds[n-1] {
		return -1
	}
	for i := 1; i < n-1; i++ {
		if v < bounds[i] {
			return i - 1
		}
	}
	return n - 2
}

// CellBBox returns the bounding box of a cell
func (g *Grid) CellBBox(row, col int) model.BBox {
	return model.NewBBox(g.Cols[col], g.Rows[row], g.Cols[col+1], g.Rows[row+1])
}

// Fill assigns glyphs to cells by their center point and returns the cell
// text row by row. Each cell's glyphs are clustered into lines top to
// bottom; lines are joined with newlines and words with spaces. Cells
// without glyphs are empty strings.
func (g *Grid) Fill(glyphs []model.Glyph) [][]string {
	rows, cols := g.RowCount(), g.ColCount()
	if rows == 0 || cols == 0 {
		return nil
	}

	buckets := make([][][]model.Glyph, rows)
	for i := range buckets {
		buckets[i] = make([][]model.Glyph, cols)
	}

	for _, glyph := range glyphs {
		cx := (glyph.X0 + glyph.X1) / 2
		cy := (glyph.Top + glyph.Bottom) / 2
		if r, c, ok := g.CellAt(cx, cy); ok {
			buckets[r][c] = append(buckets[r][c], glyph)
		}
	}

	config := layout.DefaultClusterConfig()
	config.Order = layout.LineOrderTopDown
	clusterer := layout.NewClustererWithConfig(config)

	content := make([][]string, rows)
	for r := range buckets {
		content[r] = make([]string, cols)
		for c, cell := range buckets[r] {
			content[r][c] = cellText(clusterer, cell)
		}
	}

	return content
}

func cellText(clusterer *layout.Clusterer, glyphs []model.Glyph) string {
	lines := clusterer.Cluster(glyphs)
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text()
	}
	return strings.Join(texts, "\n")
}
