package tables

import (
	"math"
	"sort"

	"github.com/tsawler/pagelayout/model"
)

// GridDetector detects table grids from ruling lines
type GridDetector struct {
	// Tolerance for considering rulings aligned or touching (in points)
	AlignmentTolerance float64

	// Minimum number of aligned rulings to form a grid axis
	MinAlignedLines int

	// Minimum ruling length to consider (in points)
	MinLineLength float64
}

// NewGridDetector creates a new grid detector with default settings
func NewGridDetector() *GridDetector {
	return &GridDetector{
		AlignmentTolerance: 3.0,
		MinAlignedLines:    2,
		MinLineLength:      3.0,
	}
}

// AlignedLineGroup represents rulings that share a position on one axis
type AlignedLineGroup struct {
	// Position on the alignment axis (y for horizontals, x for verticals)
	Position float64

	// Rulings in this group
	Rulings []Ruling

	// Total coverage (sum of ruling lengths)
	TotalLength float64

	// Span of the rulings along their direction
	MinExtent float64
	MaxExtent float64
}

// Grid is a detected table grid in top-down page coordinates
type Grid struct {
	// Bounding box of the grid
	BBox model.BBox

	// Rows holds the horizontal ruling positions, top to bottom
	Rows []float64

	// Cols holds the vertical ruling positions, left to right
	Cols []float64

	// Confidence score (0-1)
	Confidence float64

	// Whether the grid has complete borders
	HasTopBorder    bool
	HasBottomBorder bool
	HasLeftBorder   bool
	HasRightBorder  bool
}

// RowCount returns the number of cell rows
func (g *Grid) RowCount() int {
	if len(g.Rows) < 2 {
		return 0
	}
	return len(g.Rows) - 1
}

// ColCount returns the number of cell columns
func (g *Grid) ColCount() int {
	if len(g.Cols) < 2 {
		return 0
	}
	return len(g.Cols) - 1
}

// Detect finds every grid formed by the rulings. Rulings are first split
// into connected clusters, so separate tables on one page yield separate
// grids. Grids are returned top to bottom, then left to right.
func (gd *GridDetector) Detect(rulings []Ruling) []*Grid {
	rulings = gd.filterRulings(rulings)
	if len(rulings) == 0 {
		return nil
	}

	var grids []*Grid
	for _, cluster := range gd.connectedClusters(rulings) {
		var horizontals, verticals []Ruling
		for _, r := range cluster {
			if r.Orientation == Horizontal {
				horizontals = append(horizontals, r)
			} else {
				verticals = append(verticals, r)
			}
		}

		if grid := gd.DetectFromLines(horizontals, verticals); grid != nil {
			grids = append(grids, grid)
		}
	}

	sort.SliceStable(grids, func(i, j int) bool {
		if grids[i].BBox.Top != grids[j].BBox.Top {
			return grids[i].BBox.Top < grids[j].BBox.Top
		}
		return grids[i].BBox.X0 < grids[j].BBox.X0
	})

	return grids
}

// DetectFromLines builds a single grid from horizontal and vertical
// rulings, or returns nil if they do not form one
func (gd *GridDetector) DetectFromLines(horizontals, verticals []Ruling) *Grid {
	if len(horizontals) < gd.MinAlignedLines || len(verticals) < gd.MinAlignedLines {
		return nil
	}

	hGroups := gd.groupAlignedLines(horizontals)
	vGroups := gd.groupAlignedLines(verticals)

	if len(hGroups) < gd.MinAlignedLines || len(vGroups) < gd.MinAlignedLines {
		return nil
	}

	return gd.findGrid(hGroups, vGroups)
}

// filterRulings drops short and malformed rulings
func (gd *GridDetector) filterRulings(rulings []Ruling) []Ruling {
	result := make([]Ruling, 0, len(rulings))
	for _, r := range rulings {
		if r.IsFinite() && r.Length() >= gd.MinLineLength {
			result = append(result, r)
		}
	}
	return result
}

// connectedClusters partitions rulings into groups that touch each other,
// directly or through other rulings. Clusters keep the input order of
// their first member.
func (gd *GridDetector) connectedClusters(rulings []Ruling) [][]Ruling {
	parent := make([]int, len(rulings))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := range rulings {
		for j := i + 1; j < len(rulings); j++ {
			if rulings[i].touches(rulings[j], gd.AlignmentTolerance) {
				if ri, rj := find(i), find(j); ri != rj {
					parent[rj] = ri
				}
			}
		}
	}

	index := make(map[int]int)
	var clusters [][]Ruling
	for i, r := range rulings {
		root := find(i)
		idx, ok := index[root]
		if !ok {
			idx = len(clusters)
			index[root] = idx
			clusters = append(clusters, nil)
		}
		clusters[idx] = append(clusters[idx], r)
	}

	return clusters
}

// groupAlignedLines groups rulings that lie on the same position
func (gd *GridDetector) groupAlignedLines(rulings []Ruling) []AlignedLineGroup {
	if len(rulings) == 0 {
		return nil
	}

	sorted := make([]Ruling, len(rulings))
	copy(sorted, rulings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})

	var groups []AlignedLineGroup
	current := AlignedLineGroup{
		Position: sorted[0].Position,
		Rulings:  []Ruling{sorted[0]},
	}

	for _, r := range sorted[1:] {
		if r.Position-current.Position <= gd.AlignmentTolerance {
			current.Rulings = append(current.Rulings, r)
			// Running average of the group position
			n := float64(len(current.Rulings))
			current.Position = (current.Position*(n-1) + r.Position) / n
			continue
		}

		finalizeGroup(&current)
		groups = append(groups, current)
		current = AlignedLineGroup{
			Position: r.Position,
			Rulings:  []Ruling{r},
		}
	}

	finalizeGroup(&current)
	groups = append(groups, current)

	return groups
}

// finalizeGroup calculates final metrics for an aligned line group
func finalizeGroup(group *AlignedLineGroup) {
	group.TotalLength = 0
	group.MinExtent = math.MaxFloat64
	group.MaxExtent = -math.MaxFloat64

	for _, r := range group.Rulings {
		group.TotalLength += r.Length()
		group.MinExtent = math.Min(group.MinExtent, r.Start)
		group.MaxExtent = math.Max(group.MaxExtent, r.End)
	}
}

// findGrid builds a grid from aligned groups of one connected cluster
func (gd *GridDetector) findGrid(hGroups, vGroups []AlignedLineGroup) *Grid {
	// Left/right come from vertical positions, top/bottom from horizontal ones
	gridLeft := minPosition(vGroups)
	gridRight := maxPosition(vGroups)
	gridTop := minPosition(hGroups)
	gridBottom := maxPosition(hGroups)

	if gridRight <= gridLeft || gridBottom <= gridTop {
		return nil
	}

	// Keep only groups spanning a significant part of the grid
	relevantH := filterGroupsByExtent(hGroups, gridLeft, gridRight)
	relevantV := filterGroupsByExtent(vGroups, gridTop, gridBottom)

	if len(relevantH) < gd.MinAlignedLines || len(relevantV) < gd.MinAlignedLines {
		return nil
	}

	grid := &Grid{
		Rows: make([]float64, len(relevantH)),
		Cols: make([]float64, len(relevantV)),
	}
	for i, g := range relevantH {
		grid.Rows[i] = g.Position
	}
	for i, g := range relevantV {
		grid.Cols[i] = g.Position
	}

	grid.BBox = model.NewBBox(grid.Cols[0], grid.Rows[0], grid.Cols[len(grid.Cols)-1], grid.Rows[len(grid.Rows)-1])

	grid.HasTopBorder = math.Abs(grid.Rows[0]-gridTop) < gd.AlignmentTolerance
	grid.HasBottomBorder = math.Abs(grid.Rows[len(grid.Rows)-1]-gridBottom) < gd.AlignmentTolerance
	grid.HasLeftBorder = math.Abs(grid.Cols[0]-gridLeft) < gd.AlignmentTolerance
	grid.HasRightBorder = math.Abs(grid.Cols[len(grid.Cols)-1]-gridRight) < gd.AlignmentTolerance

	if grid.RowCount() == 0 || grid.ColCount() == 0 {
		return nil
	}

	grid.Confidence = gd.calculateConfidence(grid, len(hGroups)+len(vGroups))

	return grid
}

func minPosition(groups []AlignedLineGroup) float64 {
	min := groups[0].Position
	for _, g := range groups[1:] {
		min = math.Min(min, g.Position)
	}
	return min
}

func maxPosition(groups []AlignedLineGroup) float64 {
	max := groups[0].Position
	for _, g := range groups[1:] {
		max = math.Max(max, g.Position)
	}
	return max
}

// filterGroupsByExtent keeps groups covering at least half of the extent
// and overlapping it. Groups are already sorted by position.
func filterGroupsByExtent(groups []AlignedLineGroup, minExtent, maxExtent float64) []AlignedLineGroup {
	var result []AlignedLineGroup
	required := (maxExtent - minExtent) * 0.5

	for _, g := range groups {
		if g.MaxExtent-g.MinExtent < required {
			continue
		}
		if math.Min(g.MaxExtent, maxExtent) > math.Max(g.MinExtent, minExtent) {
			result = append(result, g)
		}
	}

	return result
}

// calculateConfidence scores a grid from its size, regularity, borders and
// how many of the detected groups it uses
func (gd *GridDetector) calculateConfidence(g *Grid, totalGroups int) float64 {
	score := 0.0

	cellCount := g.RowCount() * g.ColCount()
	if cellCount >= 4 {
		score += 0.2
	}
	if cellCount >= 9 {
		score += 0.1
	}

	score += calculateRegularity(g) * 0.3

	borderScore := 0.0
	for _, has := range []bool{g.HasTopBorder, g.HasBottomBorder, g.HasLeftBorder, g.HasRightBorder} {
		if has {
			borderScore += 0.25
		}
	}
	score += borderScore * 0.2

	if totalGroups > 0 {
		used := float64(len(g.Rows) + len(g.Cols))
		score += math.Min(1.0, used/float64(totalGroups)) * 0.2
	}

	return math.Min(1.0, score)
}

// calculateRegularity measures how even the row heights and column widths are
func calculateRegularity(g *Grid) float64 {
	spacing := func(positions []float64) float64 {
		if len(positions) < 3 {
			return 1.0
		}
		gaps := make([]float64, len(positions)-1)
		for i := range gaps {
			gaps[i] = positions[i+1] - positions[i]
		}
		return math.Max(0, 1-coefficientOfVariation(gaps))
	}

	return (spacing(g.Rows) + spacing(g.Cols)) / 2
}

// coefficientOfVariation calculates CV (std dev / mean)
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	m := 0.0
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))

	if m == 0 {
		return 0
	}

	v := 0.0
	for _, val := range values {
		diff := val - m
		v += diff * diff
	}
	v /= float64(len(values))

	return math.Sqrt(v) / m
}
