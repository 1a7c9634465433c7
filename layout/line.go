// Package layout provides layout reconstruction: glyph clustering into lines
// and words, typography and alignment classification, page statistics and
// heading classification.
package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/pagelayout/model"
)

const (
	// DefaultXTolerance is the largest horizontal gap between glyphs of one word
	DefaultXTolerance = 1.5

	// DefaultYTolerance is the vertical quantization step for line grouping
	DefaultYTolerance = 3.0
)

// LineOrder selects the order in which clustered lines are emitted
type LineOrder int

const (
	// LineOrderSource emits lines in the order their first glyph was
	// encountered. This is not necessarily top to bottom.
	LineOrderSource LineOrder = iota

	// LineOrderTopDown emits lines sorted by their quantized vertical position
	LineOrderTopDown
)

// String returns a string representation of the line order
func (o LineOrder) String() string {
	switch o {
	case LineOrderTopDown:
		return "top-down"
	default:
		return "source"
	}
}

// ParseLineOrder converts "source" or "top-down" into a LineOrder
func ParseLineOrder(s string) (LineOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "source":
		return LineOrderSource, true
	case "top-down", "topdown":
		return LineOrderTopDown, true
	default:
		return LineOrderSource, false
	}
}

// Line is a sequence of words sharing a quantized vertical position.
// It is a transient grouping with no identity beyond its page.
type Line struct {
	// Words are the line's words, left to right
	Words []model.Word

	// Key is the quantized top coordinate shared by the line's glyphs
	Key float64
}

// Text returns the words joined by single spaces
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// BBox returns the union of the word boxes
func (l Line) BBox() model.BBox {
	if len(l.Words) == 0 {
		return model.BBox{}
	}
	bbox := l.Words[0].BBox
	for _, w := range l.Words[1:] {
		bbox = bbox.Union(w.BBox)
	}
	return bbox
}

// FontSize returns the dominant (largest) word size
func (l Line) FontSize() float64 {
	size := 0.0
	for i, w := range l.Words {
		if i == 0 || w.Size > size {
			size = w.Size
		}
	}
	return size
}

// CombinedFontName returns every word's font name joined by spaces. It is
// only meant for substring search.
func (l Line) CombinedFontName() string {
	names := make([]string, len(l.Words))
	for i, w := range l.Words {
		names[i] = w.FontName
	}
	return strings.Join(names, " ")
}

// FontNames returns the distinct font names of the line in first-seen order
func (l Line) FontNames() []string {
	seen := make(map[string]bool, len(l.Words))
	names := make([]string, 0, len(l.Words))
	for _, w := range l.Words {
		if seen[w.FontName] {
			continue
		}
		seen[w.FontName] = true
		names = append(names, w.FontName)
	}
	return names
}

// CenterX returns the horizontal center of the line
func (l Line) CenterX() float64 {
	return l.BBox().CenterX()
}

// ClusterConfig holds configuration for glyph clustering
type ClusterConfig struct {
	// XTolerance is the largest gap between a glyph's right edge and the
	// next glyph's left edge that keeps them in the same word (default: 1.5)
	XTolerance float64

	// YTolerance is the step glyph tops are rounded to when forming lines
	// (default: 3.0)
	YTolerance float64

	// Order selects how lines are emitted (default: LineOrderSource)
	Order LineOrder
}

// DefaultClusterConfig returns the default clustering configuration
func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		XTolerance: DefaultXTolerance,
		YTolerance: DefaultYTolerance,
		Order:      LineOrderSource,
	}
}

// Clusterer groups glyphs into lines and words
type Clusterer struct {
	config ClusterConfig
}

// NewClusterer creates a clusterer with default configuration
func NewClusterer() *Clusterer {
	return &Clusterer{
		config: DefaultClusterConfig(),
	}
}

// NewClustererWithConfig creates a clusterer with custom configuration
func NewClustererWithConfig(config ClusterConfig) *Clusterer {
	return &Clusterer{
		config: config,
	}
}

// Config returns the clusterer's configuration
func (c *Clusterer) Config() ClusterConfig {
	return c.config
}

// Cluster groups the glyphs of one page into lines of words.
//
// Glyph tops are rounded to the nearest multiple of YTolerance; glyphs
// sharing a rounded value form one line. Buckets are kept in the order
// their first glyph appears unless Order is LineOrderTopDown. Within a
// line, glyphs are sorted by x0 and split into words wherever the gap
// exceeds XTolerance.
func (c *Clusterer) Cluster(glyphs []model.Glyph) []Line {
	if len(glyphs) == 0 {
		return nil
	}

	buckets, keys := c.bucketLines(glyphs)

	if c.config.Order == LineOrderTopDown {
		sort.SliceStable(keys, func(i, j int) bool {
			return keys[i] < keys[j]
		})
	}

	yTol := c.yTolerance()
	lines := make([]Line, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, Line{
			Words: c.segmentWords(buckets[key]),
			Key:   float64(key) * yTol,
		})
	}

	return lines
}

// bucketLines groups glyphs by quantized top, returning the buckets and
// their keys in first-insertion order
func (c *Clusterer) bucketLines(glyphs []model.Glyph) (map[int64][]model.Glyph, []int64) {
	yTol := c.yTolerance()
	buckets := make(map[int64][]model.Glyph)
	var keys []int64

	for _, g := range glyphs {
		// Ties round half to even
		key := int64(math.RoundToEven(g.Top / yTol))
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], g)
	}

	return buckets, keys
}

// segmentWords splits one line-bucket into words. The bucket is never empty.
func (c *Clusterer) segmentWords(bucket []model.Glyph) []model.Word {
	sorted := make([]model.Glyph, len(bucket))
	copy(sorted, bucket)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].X0 < sorted[j].X0
	})

	var words []model.Word
	current := []model.Glyph{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if curr.X0-prev.X1 <= c.config.XTolerance {
			current = append(current, curr)
			continue
		}
		words = append(words, buildWord(current))
		current = []model.Glyph{curr}
	}
	words = append(words, buildWord(current))

	return words
}

func (c *Clusterer) yTolerance() float64 {
	if c.config.YTolerance <= 0 {
		return DefaultYTolerance
	}
	return c.config.YTolerance
}

// buildWord assembles a word from its glyphs. Typography comes from the
// leading glyph only.
func buildWord(glyphs []model.Glyph) model.Word {
	var sb strings.Builder
	bbox := glyphs[0].BBox()
	for _, g := range glyphs {
		sb.WriteString(g.Text)
		bbox = bbox.Union(g.BBox())
	}

	return model.Word{
		Text:     sb.String(),
		BBox:     bbox,
		FontName: glyphs[0].FontName,
		Size:     glyphs[0].Size,
	}
}
