package graphicsstate

import "fmt"

// GraphicsState tracks the parts of the PDF graphics state that affect
// where paths and images land on the page
type GraphicsState struct {
	// Current Transformation Matrix
	CTM Matrix

	// LineWidth is the stroke width in user space
	LineWidth float64

	// Graphics state stack (for q/Q operators)
	stack []savedState
}

type savedState struct {
	ctm       Matrix
	lineWidth float64
}

// NewGraphicsState creates a new graphics state with default values
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM:       Identity(),
		LineWidth: 1.0,
	}
}

// Save pushes the current graphics state onto the stack (q operator)
func (gs *GraphicsState) Save() {
	gs.stack = append(gs.stack, savedState{ctm: gs.CTM, lineWidth: gs.LineWidth})
}

// Restore pops a graphics state from the stack (Q operator)
func (gs *GraphicsState) Restore() error {
	if len(gs.stack) == 0 {
		return fmt.Errorf("graphics state stack underflow")
	}

	saved := gs.stack[len(gs.stack)-1]
	gs.stack = gs.stack[:len(gs.stack)-1]

	gs.CTM = saved.ctm
	gs.LineWidth = saved.lineWidth

	return nil
}

// Depth returns the number of saved states
func (gs *GraphicsState) Depth() int {
	return len(gs.stack)
}

// Transform concatenates m onto the CTM (cm operator)
func (gs *GraphicsState) Transform(m Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetLineWidth sets the line width (w operator)
func (gs *GraphicsState) SetLineWidth(width float64) {
	gs.LineWidth = width
}

// UnitSquare returns the device-space bounds of the unit square under the
// CTM. Images are painted into this square.
func (gs *GraphicsState) UnitSquare() Rect {
	return RectFromPoints(
		gs.CTM.Transform(Point{0, 0}),
		gs.CTM.Transform(Point{1, 0}),
		gs.CTM.Transform(Point{0, 1}),
		gs.CTM.Transform(Point{1, 1}),
	)
}
