package graphicsstate

import "math"

// subpath is a run of connected points in device space. A curve
// contributes only its end point and marks the subpath as curved.
type subpath struct {
	points []Point
	closed bool
	curved bool
}

// ExtractedLine is a painted straight segment in device space
type ExtractedLine struct {
	Start, End Point
	Width      float64

	IsHorizontal bool
	IsVertical   bool
}

// Length returns the Euclidean length of the segment
func (l ExtractedLine) Length() float64 {
	return math.Hypot(l.End.X-l.Start.X, l.End.Y-l.Start.Y)
}

// ExtractedRectangle is a painted axis-aligned rectangle in device space
type ExtractedRectangle struct {
	Rect

	StrokeWidth float64
	IsFilled    bool
	IsStroked   bool
}

// Edges returns the four sides of the rectangle: bottom, top, left, right
func (r ExtractedRectangle) Edges() []ExtractedLine {
	corners := [4]Point{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}}
	side := func(a, b Point, horizontal bool) ExtractedLine {
		return ExtractedLine{Start: a, End: b, Width: r.StrokeWidth, IsHorizontal: horizontal, IsVertical: !horizontal}
	}
	return []ExtractedLine{
		side(corners[0], corners[1], true),
		side(corners[3], corners[2], true),
		side(corners[0], corners[3], false),
		side(corners[1], corners[2], false),
	}
}

// PathExtractor builds the current path and, when it is painted, records
// its axis-aligned rectangles and stroked segments. Points are mapped to
// device space as they are added; the CTM cannot change inside a path.
type PathExtractor struct {
	Lines      []ExtractedLine
	Rectangles []ExtractedRectangle

	// AngleTolerance is the largest deviation (in points) for a segment to
	// count as horizontal or vertical
	AngleTolerance float64

	gs       *GraphicsState
	subpaths []subpath

	// user space positions, needed by the v operator and by h
	current  Point
	start    Point
	hasPoint bool
}

// NewPathExtractor creates a new path extractor bound to a graphics state
func NewPathExtractor(gs *GraphicsState) *PathExtractor {
	return &PathExtractor{
		gs:             gs,
		AngleTolerance: 0.5,
	}
}

func (pe *PathExtractor) device(p Point) Point {
	return pe.gs.CTM.Transform(p)
}

// MoveTo begins a new subpath (m operator)
func (pe *PathExtractor) MoveTo(x, y float64) {
	p := Point{X: x, Y: y}
	pe.subpaths = append(pe.subpaths, subpath{points: []Point{pe.device(p)}})
	pe.current, pe.start, pe.hasPoint = p, p, true
}

// LineTo extends the current subpath (l operator). Without a current
// point it behaves like MoveTo.
func (pe *PathExtractor) LineTo(x, y float64) {
	pe.extend(Point{X: x, Y: y}, false)
}

// CurveTo appends a cubic Bézier curve (c operator), kept as its chord
func (pe *PathExtractor) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !pe.hasPoint {
		pe.MoveTo(x1, y1)
	}
	pe.extend(Point{X: x3, Y: y3}, true)
}

func (pe *PathExtractor) extend(p Point, curve bool) {
	if !pe.hasPoint {
		pe.MoveTo(p.X, p.Y)
		return
	}

	last := &pe.subpaths[len(pe.subpaths)-1]
	if last.closed {
		// Drawing after h starts a new subpath at the closed one's start
		pe.subpaths = append(pe.subpaths, subpath{points: []Point{pe.device(pe.start)}})
		last = &pe.subpaths[len(pe.subpaths)-1]
	}
	last.points = append(last.points, pe.device(p))
	last.curved = last.curved || curve
	pe.current = p
}

// ClosePath closes the current subpath (h operator)
func (pe *PathExtractor) ClosePath() {
	if !pe.hasPoint {
		return
	}
	pe.subpaths[len(pe.subpaths)-1].closed = true
	pe.current = pe.start
}

// Rectangle appends a closed rectangular subpath (re operator)
func (pe *PathExtractor) Rectangle(x, y, width, height float64) {
	pe.MoveTo(x, y)
	pe.LineTo(x+width, y)
	pe.LineTo(x+width, y+height)
	pe.LineTo(x, y+height)
	pe.ClosePath()
}

// CurrentPoint returns the current point in user space
func (pe *PathExtractor) CurrentPoint() (Point, bool) {
	return pe.current, pe.hasPoint
}

// IsEmpty reports whether no path is under construction
func (pe *PathExtractor) IsEmpty() bool {
	return len(pe.subpaths) == 0
}

// Discard ends the current path without painting it (n operator)
func (pe *PathExtractor) Discard() {
	pe.subpaths = pe.subpaths[:0]
	pe.hasPoint = false
}

// Paint finishes the current path. Each subpath that is an axis-aligned
// rectangle is recorded whether filled or stroked; the segments of other
// subpaths only when stroked.
func (pe *PathExtractor) Paint(stroked, filled bool) {
	defer pe.Discard()

	if !stroked && !filled {
		return
	}

	for _, sp := range pe.subpaths {
		if rect, ok := pe.rectangle(sp); ok {
			rect.IsStroked = stroked
			rect.IsFilled = filled
			if stroked {
				rect.StrokeWidth = pe.gs.LineWidth
			}
			pe.Rectangles = append(pe.Rectangles, rect)
			continue
		}
		if stroked {
			pe.segments(sp)
		}
	}
}

// rectangle reports whether sp is four corners joined by horizontal and
// vertical sides
func (pe *PathExtractor) rectangle(sp subpath) (ExtractedRectangle, bool) {
	pts := sp.points
	if sp.curved {
		return ExtractedRectangle{}, false
	}
	if len(pts) == 5 && near(pts[0], pts[4], 0.1) {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return ExtractedRectangle{}, false
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		if math.Abs(a.X-b.X) > pe.AngleTolerance && math.Abs(a.Y-b.Y) > pe.AngleTolerance {
			return ExtractedRectangle{}, false
		}
	}

	return ExtractedRectangle{Rect: RectFromPoints(pts...)}, true
}

// segments records every side of sp, including the closing one
func (pe *PathExtractor) segments(sp subpath) {
	for i := 1; i < len(sp.points); i++ {
		pe.Lines = append(pe.Lines, pe.line(sp.points[i-1], sp.points[i]))
	}
	if n := len(sp.points); sp.closed && n > 1 && !near(sp.points[n-1], sp.points[0], 0.1) {
		pe.Lines = append(pe.Lines, pe.line(sp.points[n-1], sp.points[0]))
	}
}

func (pe *PathExtractor) line(s, e Point) ExtractedLine {
	return ExtractedLine{
		Start:        s,
		End:          e,
		Width:        pe.gs.LineWidth,
		IsHorizontal: math.Abs(e.Y-s.Y) < pe.AngleTolerance,
		IsVertical:   math.Abs(e.X-s.X) < pe.AngleTolerance,
	}
}

// Clear drops all extracted elements and the current path
func (pe *PathExtractor) Clear() {
	pe.Lines = nil
	pe.Rectangles = nil
	pe.Discard()
}

func near(a, b Point, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}
