package graphicsstate

import "fmt"

// GraphicsExtractor replays content stream operators to collect painted
// lines, rectangles and image placements in device space
type GraphicsExtractor struct {
	gs            *GraphicsState
	pathExtractor *PathExtractor
	images        []Rect

	// MinLineLength drops shorter segments from GridLines (default: 1.0)
	MinLineLength float64
}

// NewGraphicsExtractor creates a new graphics extractor
func NewGraphicsExtractor() *GraphicsExtractor {
	gs := NewGraphicsState()
	return &GraphicsExtractor{
		gs:            gs,
		pathExtractor: NewPathExtractor(gs),
		MinLineLength: 1.0,
	}
}

// operandCounts lists the numeric operands each handled operator takes
var operandCounts = map[string]int{
	"q": 0, "Q": 0, "cm": 6, "w": 1,
	"m": 2, "l": 2, "c": 6, "v": 4, "y": 4, "h": 0, "re": 4,
	"S": 0, "s": 0, "f": 0, "F": 0, "f*": 0,
	"B": 0, "B*": 0, "b": 0, "b*": 0, "n": 0,
}

// Handles reports whether Apply understands the operator
func Handles(op string) bool {
	_, ok := operandCounts[op]
	return ok
}

// Apply processes one graphics operator with its numeric operands.
// Unknown operators are ignored. An operator with the wrong number of
// operands is an error and leaves the state unchanged.
func (ge *GraphicsExtractor) Apply(op string, operands []float64) error {
	want, ok := operandCounts[op]
	if !ok {
		return nil
	}
	if len(operands) != want {
		return fmt.Errorf("operator %s: expected %d operands, got %d", op, want, len(operands))
	}

	pe := ge.pathExtractor

	switch op {
	// Graphics state operators
	case "q":
		ge.gs.Save()
	case "Q":
		return ge.gs.Restore()
	case "cm":
		var m Matrix
		copy(m[:], operands)
		ge.gs.Transform(m)
	case "w":
		ge.gs.SetLineWidth(operands[0])

	// Path construction operators
	case "m":
		pe.MoveTo(operands[0], operands[1])
	case "l":
		pe.LineTo(operands[0], operands[1])
	case "c":
		pe.CurveTo(operands[0], operands[1], operands[2], operands[3], operands[4], operands[5])
	case "v":
		if cp, ok := pe.CurrentPoint(); ok {
			pe.CurveTo(cp.X, cp.Y, operands[0], operands[1], operands[2], operands[3])
		}
	case "y":
		pe.CurveTo(operands[0], operands[1], operands[2], operands[3], operands[2], operands[3])
	case "h":
		pe.ClosePath()
	case "re":
		pe.Rectangle(operands[0], operands[1], operands[2], operands[3])

	// Path painting operators
	case "S":
		pe.Paint(true, false)
	case "s":
		pe.ClosePath()
		pe.Paint(true, false)
	case "f", "F", "f*":
		pe.Paint(false, true)
	case "B", "B*":
		pe.Paint(true, true)
	case "b", "b*":
		pe.ClosePath()
		pe.Paint(true, true)
	case "n":
		pe.Discard()
	}

	return nil
}

// PaintImage records an image drawn into the unit square of the current CTM
// (Do operator on an image XObject)
func (ge *GraphicsExtractor) PaintImage() {
	ge.images = append(ge.images, ge.gs.UnitSquare())
}

// BeginForm saves the state and applies a form XObject's matrix
func (ge *GraphicsExtractor) BeginForm(m Matrix) {
	ge.gs.Save()
	ge.gs.Transform(m)
}

// EndForm restores the state saved by BeginForm
func (ge *GraphicsExtractor) EndForm() error {
	return ge.gs.Restore()
}

// Images returns the device-space bounds of every painted image, in
// painting order
func (ge *GraphicsExtractor) Images() []Rect {
	return ge.images
}

// GetLines returns all extracted lines
func (ge *GraphicsExtractor) GetLines() []ExtractedLine {
	return ge.pathExtractor.Lines
}

// GetRectangles returns all extracted rectangles
func (ge *GraphicsExtractor) GetRectangles() []ExtractedRectangle {
	return ge.pathExtractor.Rectangles
}

// GetGraphicsState returns the current graphics state
func (ge *GraphicsExtractor) GetGraphicsState() *GraphicsState {
	return ge.gs
}

// GridLines represents horizontal and vertical lines that could form a table grid
type GridLines struct {
	Horizontals []ExtractedLine
	Verticals   []ExtractedLine
}

// GetGridLines returns the horizontal and vertical segments, including the
// four edges of every rectangle, that are at least MinLineLength long.
// Diagonal segments are dropped.
func (ge *GraphicsExtractor) GetGridLines() GridLines {
	var grid GridLines

	add := func(line ExtractedLine) {
		if line.Length() < ge.MinLineLength {
			return
		}
		switch {
		case line.IsHorizontal:
			grid.Horizontals = append(grid.Horizontals, line)
		case line.IsVertical:
			grid.Verticals = append(grid.Verticals, line)
		}
	}

	for _, line := range ge.pathExtractor.Lines {
		add(line)
	}
	for _, rect := range ge.pathExtractor.Rectangles {
		for _, edge := range rect.Edges() {
			add(edge)
		}
	}

	return grid
}

// Clear resets the extractor for reuse
func (ge *GraphicsExtractor) Clear() {
	ge.gs = NewGraphicsState()
	ge.pathExtractor = NewPathExtractor(ge.gs)
	ge.images = nil
}
