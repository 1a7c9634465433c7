package layout

// Alignment is the horizontal placement of a line relative to the page
type Alignment int

const (
	AlignUnknown Alignment = iota
	AlignCenter
	AlignJustified
	AlignIndented
	AlignLeft
)

// String returns a string representation of the alignment
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignJustified:
		return "justified"
	case AlignIndented:
		return "indented"
	case AlignLeft:
		return "left"
	default:
		return "unknown"
	}
}

// DetectAlignment classifies a line by its left edge and center.
// Bands are tested in order and the first match wins:
//
//   - center: 0.4W <= xCenter <= 0.6W
//   - justified: x0 <= 0.05W (starts at the left margin)
//   - indented: x0 >= 0.1W
//   - left: everything else
func DetectAlignment(x0, xCenter, pageWidth float64) Alignment {
	switch {
	case xCenter >= 0.4*pageWidth && xCenter <= 0.6*pageWidth:
		return AlignCenter
	case x0 <= 0.05*pageWidth:
		return AlignJustified
	case x0 >= 0.1*pageWidth:
		return AlignIndented
	default:
		return AlignLeft
	}
}
