package tables

import (
	"testing"
)

// lattice returns the rulings of a fully ruled grid
func lattice(rows, cols []float64) []Ruling {
	var rulings []Ruling
	for _, y := range rows {
		rulings = append(rulings, NewHorizontalRuling(y, cols[0], cols[len(cols)-1]))
	}
	for _, x := range cols {
		rulings = append(rulings, NewVerticalRuling(x, rows[0], rows[len(rows)-1]))
	}
	return rulings
}

func TestNewGridDetector(t *testing.T) {
	gd := NewGridDetector()
	if gd.AlignmentTolerance != 3.0 {
		t.Errorf("Expected AlignmentTolerance 3.0, got %f", gd.AlignmentTolerance)
	}
	if gd.MinAlignedLines != 2 {
		t.Errorf("Expected MinAlignedLines 2, got %d", gd.MinAlignedLines)
	}
	if gd.MinLineLength != 3.0 {
		t.Errorf("Expected MinLineLength 3.0, got %f", gd.MinLineLength)
	}
}

func TestGridDetector_SimpleGrid(t *testing.T) {
	grids := NewGridDetector().Detect(lattice([]float64{100, 150, 200}, []float64{50, 150, 250}))

	if len(grids) != 1 {
		t.Fatalf("Expected 1 grid, got %d", len(grids))
	}
	g := grids[0]
	if g.RowCount() != 2 || g.ColCount() != 2 {
		t.Errorf("Expected 2x2, got %dx%d", g.RowCount(), g.ColCount())
	}
	if g.BBox.X0 != 50 || g.BBox.Top != 100 || g.BBox.X1 != 250 || g.BBox.Bottom != 200 {
		t.Errorf("Unexpected bbox %+v", g.BBox)
	}
	if !g.HasTopBorder || !g.HasBottomBorder || !g.HasLeftBorder || !g.HasRightBorder {
		t.Errorf("Expected complete borders, got %+v", g)
	}
	if g.Confidence <= 0.5 {
		t.Errorf("Expected high confidence for regular grid, got %f", g.Confidence)
	}
}

func TestGridDetector_LargerGrid(t *testing.T) {
	grids := NewGridDetector().Detect(lattice(
		[]float64{0, 100, 200, 300},
		[]float64{0, 100, 200, 300, 400},
	))

	if len(grids) != 1 {
		t.Fatalf("Expected 1 grid, got %d", len(grids))
	}
	if grids[0].RowCount() != 3 || grids[0].ColCount() != 4 {
		t.Errorf("Expected 3x4, got %dx%d", grids[0].RowCount(), grids[0].ColCount())
	}
}

func TestGridDetector_SingleBox(t *testing.T) {
	grids := NewGridDetector().Detect(lattice([]float64{10, 40}, []float64{10, 300}))

	if len(grids) != 1 {
		t.Fatalf("Expected 1 grid, got %d", len(grids))
	}
	if grids[0].RowCount() != 1 || grids[0].ColCount() != 1 {
		t.Errorf("Expected 1x1, got %dx%d", grids[0].RowCount(), grids[0].ColCount())
	}
}

func TestGridDetector_NotEnoughLines(t *testing.T) {
	tests := []struct {
		name    string
		rulings []Ruling
	}{
		{"empty", nil},
		{"horizontals only", []Ruling{NewHorizontalRuling(10, 0, 100), NewHorizontalRuling(50, 0, 100)}},
		{"one vertical", []Ruling{
			NewHorizontalRuling(10, 0, 100),
			NewHorizontalRuling(50, 0, 100),
			NewVerticalRuling(0, 10, 50),
		}},
		{"too short", lattice([]float64{0, 2}, []float64{0, 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if grids := NewGridDetector().Detect(tt.rulings); len(grids) != 0 {
				t.Errorf("Expected no grids, got %d", len(grids))
			}
		})
	}
}

func TestGridDetector_AlignmentMerging(t *testing.T) {
	// Two slightly offset rules at the top merge into one row boundary
	rulings := lattice([]float64{100, 200}, []float64{0, 100})
	rulings = append(rulings, NewHorizontalRuling(101.5, 0, 100))

	grids := NewGridDetector().Detect(rulings)
	if len(grids) != 1 {
		t.Fatalf("Expected 1 grid, got %d", len(grids))
	}
	if grids[0].RowCount() != 1 {
		t.Errorf("Expected merged rows, got %d rows: %v", grids[0].RowCount(), grids[0].Rows)
	}
}

func TestGridDetector_SeparateTables(t *testing.T) {
	lower := lattice([]float64{500, 550, 600}, []float64{50, 300})
	upper := lattice([]float64{100, 150}, []float64{50, 150, 250})

	grids := NewGridDetector().Detect(append(lower, upper...))

	if len(grids) != 2 {
		t.Fatalf("Expected 2 grids, got %d", len(grids))
	}
	// Returned top to bottom regardless of input order
	if grids[0].BBox.Top != 100 || grids[1].BBox.Top != 500 {
		t.Errorf("Expected grids ordered by top, got %v and %v", grids[0].BBox.Top, grids[1].BBox.Top)
	}
	if grids[0].ColCount() != 2 || grids[1].RowCount() != 2 {
		t.Errorf("Unexpected grid shapes %dx%d and %dx%d",
			grids[0].RowCount(), grids[0].ColCount(), grids[1].RowCount(), grids[1].ColCount())
	}
}

func TestGridDetector_SideBySideTables(t *testing.T) {
	right := lattice([]float64{100, 200}, []float64{400, 500})
	left := lattice([]float64{100, 200}, []float64{50, 150})

	grids := NewGridDetector().Detect(append(right, left...))
	if len(grids) != 2 {
		t.Fatalf("Expected 2 grids, got %d", len(grids))
	}
	if grids[0].BBox.X0 != 50 {
		t.Errorf("Expected left table first, got x0=%v", grids[0].BBox.X0)
	}
}

func TestGridDetector_IgnoresPartialRules(t *testing.T) {
	// A short stub inside the grid does not add a column boundary
	rulings := lattice([]float64{0, 100, 200}, []float64{0, 200})
	rulings = append(rulings, NewVerticalRuling(100, 0, 20))

	grids := NewGridDetector().Detect(rulings)
	if len(grids) != 1 {
		t.Fatalf("Expected 1 grid, got %d", len(grids))
	}
	if grids[0].ColCount() != 1 {
		t.Errorf("Expected 1 column, got %d: %v", grids[0].ColCount(), grids[0].Cols)
	}
}

func TestCoefficientOfVariation(t *testing.T) {
	if cv := coefficientOfVariation([]float64{5, 5, 5}); cv != 0 {
		t.Errorf("Expected 0 for equal values, got %f", cv)
	}
	if cv := coefficientOfVariation([]float64{1}); cv != 0 {
		t.Errorf("Expected 0 for single value, got %f", cv)
	}
	if cv := coefficientOfVariation([]float64{0, 0}); cv != 0 {
		t.Errorf("Expected 0 for zero mean, got %f", cv)
	}
	if cv := coefficientOfVariation([]float64{10, 30}); cv != 0.5 {
		t.Errorf("Expected 0.5, got %f", cv)
	}
}

func TestCalculateRegularity(t *testing.T) {
	regular := &Grid{Rows: []float64{0, 10, 20}, Cols: []float64{0, 50, 100}}
	if r := calculateRegularity(regular); r != 1 {
		t.Errorf("Expected regularity 1, got %f", r)
	}

	irregular := &Grid{Rows: []float64{0, 10, 100}, Cols: []float64{0, 50, 100}}
	if r := calculateRegularity(irregular); r >= 1 {
		t.Errorf("Expected regularity below 1, got %f", r)
	}
}
