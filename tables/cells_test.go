package tables

import (
	"testing"

	"github.com/tsawler/pagelayout/model"
)

func glyphRun(s string, x0, top, size float64) []model.Glyph {
	var glyphs []model.Glyph
	for i, r := range s {
		x := x0 + float64(i)*5
		glyphs = append(glyphs, model.Glyph{
			Text: string(r), X0: x, Top: top, X1: x + 5, Bottom: top + size, FontName: "Helvetica", Size: size,
		})
	}
	return glyphs
}

func TestCellAt(t *testing.T) {
	g := &Grid{Rows: []float64{100, 150, 200}, Cols: []float64{50, 150, 250}}

	tests := []struct {
		x, y     float64
		row, col int
		ok       bool
	}{
		{60, 110, 0, 0, true},
		{200, 110, 0, 1, true},
		{60, 180, 1, 0, true},
		{150, 150, 1, 1, true}, // on interior rulings
		{250, 200, 1, 1, true}, // outer corner
		{50, 100, 0, 0, true},
		{40, 110, 0, 0, false},
		{60, 210, 0, 0, false},
	}

	for _, tt := range tests {
		row, col, ok := g.CellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && (row != tt.row || col != tt.col)) {
			t.Errorf("CellAt(%v, %v) = %d, %d, %v; want %d, %d, %v", tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
		}
	}
}

func TestCellBBox(t *testing.T) {
	g := &Grid{Rows: []float64{100, 150, 200}, Cols: []float64{50, 150, 250}}
	if got := g.CellBBox(1, 0); got != model.NewBBox(50, 150, 150, 200) {
		t.Errorf("Unexpected cell bbox %+v", got)
	}
}

func TestFill(t *testing.T) {
	g := &Grid{Rows: []float64{100, 150, 200}, Cols: []float64{50, 150, 250}}

	var glyphs []model.Glyph
	glyphs = append(glyphs, glyphRun("Name", 60, 110, 10)...)
	glyphs = append(glyphs, glyphRun("Qty", 160, 110, 10)...)
	glyphs = append(glyphs, glyphRun("apple", 60, 160, 10)...)
	// Two lines in one cell, given bottom line first
	glyphs = append(glyphs, glyphRun("dozen", 160, 175, 10)...)
	glyphs = append(glyphs, glyphRun("one", 160, 160, 10)...)
	// Outside the grid
	glyphs = append(glyphs, glyphRun("footer", 60, 300, 10)...)

	content := g.Fill(glyphs)

	want := [][]string{
		{"Name", "Qty"},
		{"apple", "one\ndozen"},
	}
	if len(content) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(content))
	}
	for r := range want {
		for c := range want[r] {
			if content[r][c] != want[r][c] {
				t.Errorf("cell[%d][%d] = %q, want %q", r, c, content[r][c], want[r][c])
			}
		}
	}
}

func TestFill_EmptyCells(t *testing.T) {
	g := &Grid{Rows: []float64{0, 10}, Cols: []float64{0, 10, 20}}
	content := g.Fill(nil)

	if len(content) != 1 || len(content[0]) != 2 {
		t.Fatalf("Expected 1x2 content, got %v", content)
	}
	if content[0][0] != "" || content[0][1] != "" {
		t.Errorf("Expected empty cells, got %q", content[0])
	}
}

func TestFill_DegenerateGrid(t *testing.T) {
	g := &Grid{Rows: []float64{0}, Cols: []float64{0, 10}}
	if content := g.Fill(glyphRun("x", 1, 1, 5)); content != nil {
		t.Errorf("Expected nil for degenerate grid, got %v", content)
	}
}
