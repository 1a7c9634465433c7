package tables

import (
	"fmt"
	"math"
)

// Orientation is the direction of a ruling line
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns a string representation of the orientation
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Ruling is a horizontal or vertical line drawn on the page, in top-down
// page coordinates. For a horizontal ruling Position is its y and
// Start/End its x range; for a vertical ruling Position is its x and
// Start/End its y range.
type Ruling struct {
	Orientation Orientation
	Position    float64
	Start       float64
	End         float64
}

// NewHorizontalRuling creates a horizontal ruling at y spanning x0..x1
func NewHorizontalRuling(y, x0, x1 float64) Ruling {
	return Ruling{Orientation: Horizontal, Position: y, Start: math.Min(x0, x1), End: math.Max(x0, x1)}
}

// NewVerticalRuling creates a vertical ruling at x spanning top..bottom
func NewVerticalRuling(x, top, bottom float64) Ruling {
	return Ruling{Orientation: Vertical, Position: x, Start: math.Min(top, bottom), End: math.Max(top, bottom)}
}

// Length returns the extent of the ruling along its direction
func (r Ruling) Length() float64 {
	return r.End - r.Start
}

// IsFinite returns true if no coordinate is NaN or infinite
func (r Ruling) IsFinite() bool {
	for _, v := range []float64{r.Position, r.Start, r.End} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// String returns a readable description of the ruling
func (r Ruling) String() string {
	return fmt.Sprintf("%s@%.2f[%.2f..%.2f]", r.Orientation, r.Position, r.Start, r.End)
}

// touches reports whether two rulings meet within tolerance. Perpendicular
// rulings touch when they cross; parallel rulings touch when they lie on
// the same position and their ranges overlap.
func (r Ruling) touches(other Ruling, tolerance float64) bool {
	if r.Orientation == other.Orientation {
		return math.Abs(r.Position-other.Position) <= tolerance &&
			r.Start <= other.End+tolerance && other.Start <= r.End+tolerance
	}
	return other.Position >= r.Start-tolerance && other.Position <= r.End+tolerance &&
		r.Position >= other.Start-tolerance && r.Position <= other.End+tolerance
}
