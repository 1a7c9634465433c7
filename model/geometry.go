package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// BBox represents a bounding box in top-down page coordinates.
// Top is smaller than Bottom for boxes with positive height.
type BBox struct {
	X0     float64 // Left
	Top    float64 // Top (distance from the top of the page)
	X1     float64 // Right
	Bottom float64 // Bottom (distance from the top of the page)
}

// NewBBox creates a bounding box from its four edges
func NewBBox(x0, top, x1, bottom float64) BBox {
	return BBox{X0: x0, Top: top, X1: x1, Bottom: bottom}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// CenterX returns the horizontal center
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// Union returns the smallest box containing both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0:     math.Min(b.X0, other.X0),
		Top:    math.Min(b.Top, other.Top),
		X1:     math.Max(b.X1, other.X1),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Top && y <= b.Bottom
}

// IsZero returns true for the degenerate [0,0,0,0] box
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// IsFinite returns true if no coordinate is NaN or infinite
func (b BBox) IsFinite() bool {
	for _, v := range b.Array() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Array returns the box as [x0, top, x1, bottom]
func (b BBox) Array() [4]float64 {
	return [4]float64{b.X0, b.Top, b.X1, b.Bottom}
}

// MarshalJSON encodes the box as [x0, top, x1, bottom]
func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Array())
}

// UnmarshalJSON decodes a [x0, top, x1, bottom] array
func (b *BBox) UnmarshalJSON(data []byte) error {
	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("bbox: %w", err)
	}
	if len(arr) != 4 {
		return fmt.Errorf("bbox: expected 4 values, got %d", len(arr))
	}
	*b = BBox{X0: arr[0], Top: arr[1], X1: arr[2], Bottom: arr[3]}
	return nil
}

// marshal encodes v without escaping <, > and &, so text survives
// verbatim in the output
func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
