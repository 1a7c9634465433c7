package layout

import (
	"testing"

	"github.com/tsawler/pagelayout/model"
)

// makeGlyph creates a glyph whose bottom edge is top+size
func makeGlyph(text string, x0, top, width, size float64, fontName string) model.Glyph {
	return model.Glyph{
		Text:     text,
		X0:       x0,
		Top:      top,
		X1:       x0 + width,
		Bottom:   top + size,
		FontName: fontName,
		Size:     size,
	}
}

// makeRun creates one glyph per character of s, each charWidth wide, with no gaps
func makeRun(s string, x0, top, charWidth, size float64, fontName string) []model.Glyph {
	glyphs := make([]model.Glyph, 0, len(s))
	x := x0
	for _, r := range s {
		glyphs = append(glyphs, makeGlyph(string(r), x, top, charWidth, size, fontName))
		x += charWidth
	}
	return glyphs
}

func TestDefaultClusterConfig(t *testing.T) {
	config := DefaultClusterConfig()
	if config.XTolerance != 1.5 {
		t.Errorf("Expected XTolerance=1.5, got %f", config.XTolerance)
	}
	if config.YTolerance != 3.0 {
		t.Errorf("Expected YTolerance=3.0, got %f", config.YTolerance)
	}
	if config.Order != LineOrderSource {
		t.Errorf("Expected Order=source, got %s", config.Order)
	}
}

func TestParseLineOrder(t *testing.T) {
	tests := []struct {
		input string
		want  LineOrder
		ok    bool
	}{
		{"", LineOrderSource, true},
		{"source", LineOrderSource, true},
		{"Top-Down", LineOrderTopDown, true},
		{"topdown", LineOrderTopDown, true},
		{"sideways", LineOrderSource, false},
	}

	for _, tt := range tests {
		got, ok := ParseLineOrder(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLineOrder(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCluster_Empty(t *testing.T) {
	if lines := NewClusterer().Cluster(nil); len(lines) != 0 {
		t.Errorf("Expected no lines, got %d", len(lines))
	}
}

func TestCluster_SingleGlyph(t *testing.T) {
	lines := NewClusterer().Cluster([]model.Glyph{makeGlyph("A", 10, 10, 6, 12, "Helvetica")})

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if len(lines[0].Words) != 1 {
		t.Fatalf("Expected 1 word, got %d", len(lines[0].Words))
	}
	if lines[0].Words[0].Text != "A" {
		t.Errorf("Expected word 'A', got %q", lines[0].Words[0].Text)
	}
}

func TestCluster_WordSegmentation(t *testing.T) {
	glyphs := append(makeRun("Hello", 100, 50, 5, 10, "Times"), makeRun("World", 130, 50, 5, 10, "Times")...)
	lines := NewClusterer().Cluster(glyphs)

	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if got := lines[0].Text(); got != "Hello World" {
		t.Errorf("Expected 'Hello World', got %q", got)
	}
}

func TestCluster_GapAtTolerance(t *testing.T) {
	tests := []struct {
		name  string
		gap   float64
		words int
	}{
		{"touching", 0, 1},
		{"overlapping", -1, 1},
		{"exactly tolerance", 1.5, 1},
		{"just over tolerance", 1.51, 2},
		{"wide gap", 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs := []model.Glyph{
				makeGlyph("a", 10, 10, 5, 10, "F"),
				makeGlyph("b", 15+tt.gap, 10, 5, 10, "F"),
			}
			lines := NewClusterer().Cluster(glyphs)
			if len(lines) != 1 {
				t.Fatalf("Expected 1 line, got %d", len(lines))
			}
			if len(lines[0].Words) != tt.words {
				t.Errorf("Expected %d words, got %d", tt.words, len(lines[0].Words))
			}
		})
	}
}

func TestCluster_SortsByX(t *testing.T) {
	glyphs := []model.Glyph{
		makeGlyph("c", 20, 10, 5, 10, "F"),
		makeGlyph("a", 10, 10, 5, 10, "F"),
		makeGlyph("b", 15, 10, 5, 10, "F"),
	}
	lines := NewClusterer().Cluster(glyphs)

	if len(lines) != 1 || len(lines[0].Words) != 1 {
		t.Fatalf("Expected 1 line with 1 word, got %+v", lines)
	}
	if lines[0].Words[0].Text != "abc" {
		t.Errorf("Expected 'abc', got %q", lines[0].Words[0].Text)
	}
}

func TestCluster_WordAttributes(t *testing.T) {
	glyphs := []model.Glyph{
		// Tops 12, 12.5 and 13 all quantize to the same line key
		{Text: "B", X0: 10, Top: 12, X1: 16, Bottom: 24, FontName: "Arial-Bold", Size: 12},
		{Text: "i", X0: 16, Top: 12.5, X1: 19, Bottom: 26, FontName: "Arial", Size: 9},
		{Text: "g", X0: 19, Top: 13, X1: 25, Bottom: 25, FontName: "Arial", Size: 9},
	}
	lines := NewClusterer().Cluster(glyphs)
	if len(lines) != 1 || len(lines[0].Words) != 1 {
		t.Fatalf("Expected 1 line with 1 word, got %+v", lines)
	}

	word := lines[0].Words[0]
	if word.Text != "Big" {
		t.Errorf("Expected text 'Big', got %q", word.Text)
	}
	if word.BBox != model.NewBBox(10, 12, 25, 26) {
		t.Errorf("Expected bbox [10 12 25 26], got %+v", word.BBox)
	}
	// Typography comes from the leading glyph only
	if word.FontName != "Arial-Bold" || word.Size != 12 {
		t.Errorf("Expected leading glyph typography, got %q %v", word.FontName, word.Size)
	}
}

func TestCluster_LineQuantization(t *testing.T) {
	tests := []struct {
		name  string
		tops  []float64
		lines int
	}{
		{"same top", []float64{100, 100}, 1},
		{"within step", []float64{9.2, 10.4}, 1},
		{"across step", []float64{10.4, 11.6}, 2},
		// 4.5/3 = 1.5 and 7.5/3 = 2.5 both round half to even, giving 2
		{"ties round to even", []float64{4.5, 7.5}, 1},
		{"far apart", []float64{100, 200}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var glyphs []model.Glyph
			for i, top := range tt.tops {
				glyphs = append(glyphs, makeGlyph("x", float64(i)*50, top, 5, 10, "F"))
			}
			lines := NewClusterer().Cluster(glyphs)
			if len(lines) != tt.lines {
				t.Errorf("Expected %d lines, got %d", tt.lines, len(lines))
			}
		})
	}
}

func TestCluster_SourceOrder(t *testing.T) {
	// The lower line's glyphs are encountered first
	glyphs := append(makeRun("second", 50, 300, 5, 10, "F"), makeRun("first", 50, 100, 5, 10, "F")...)

	lines := NewClusterer().Cluster(glyphs)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "second" || lines[1].Text() != "first" {
		t.Errorf("Expected source order [second first], got [%s %s]", lines[0].Text(), lines[1].Text())
	}
}

func TestCluster_TopDownOrder(t *testing.T) {
	glyphs := append(makeRun("second", 50, 300, 5, 10, "F"), makeRun("first", 50, 100, 5, 10, "F")...)

	config := DefaultClusterConfig()
	config.Order = LineOrderTopDown
	lines := NewClustererWithConfig(config).Cluster(glyphs)

	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "first" || lines[1].Text() != "second" {
		t.Errorf("Expected top-down order [first second], got [%s %s]", lines[0].Text(), lines[1].Text())
	}
	if lines[0].Key != 99 || lines[1].Key != 300 {
		t.Errorf("Expected keys 99 and 300, got %v and %v", lines[0].Key, lines[1].Key)
	}
}

func TestCluster_InterleavedGlyphs(t *testing.T) {
	// Glyphs of two lines alternate in the stream
	glyphs := []model.Glyph{
		makeGlyph("a", 10, 100, 5, 10, "F"),
		makeGlyph("x", 10, 200, 5, 10, "F"),
		makeGlyph("b", 15, 100, 5, 10, "F"),
		makeGlyph("y", 15, 200, 5, 10, "F"),
	}
	lines := NewClusterer().Cluster(glyphs)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].Text() != "ab" || lines[1].Text() != "xy" {
		t.Errorf("Expected [ab xy], got [%s %s]", lines[0].Text(), lines[1].Text())
	}
}

func TestCluster_ZeroToleranceFallsBack(t *testing.T) {
	config := ClusterConfig{XTolerance: 1.5, YTolerance: 0}
	lines := NewClustererWithConfig(config).Cluster([]model.Glyph{
		makeGlyph("a", 10, 100, 5, 10, "F"),
		makeGlyph("b", 15, 100.4, 5, 10, "F"),
	})
	if len(lines) != 1 {
		t.Errorf("Expected 1 line with default y tolerance, got %d", len(lines))
	}
}

func TestCluster_Idempotent(t *testing.T) {
	glyphs := append(makeRun("The", 50, 100, 5, 10, "F"), makeRun("quick", 70, 100, 5, 10, "F")...)
	glyphs = append(glyphs, makeRun("brown", 100, 100, 5, 10, "F")...)
	glyphs = append(glyphs, makeRun("fox", 135, 100, 5, 10, "F")...)

	clusterer := NewClusterer()
	lines := clusterer.Cluster(glyphs)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	// Treat each word's box as a single glyph and cluster again
	var wordGlyphs []model.Glyph
	for _, w := range lines[0].Words {
		wordGlyphs = append(wordGlyphs, model.Glyph{
			Text: w.Text, X0: w.BBox.X0, Top: w.BBox.Top, X1: w.BBox.X1, Bottom: w.BBox.Bottom,
			FontName: w.FontName, Size: w.Size,
		})
	}
	again := clusterer.Cluster(wordGlyphs)

	if len(again) != 1 {
		t.Fatalf("Expected 1 line on re-cluster, got %d", len(again))
	}
	if len(again[0].Words) != len(lines[0].Words) {
		t.Errorf("Expected %d words on re-cluster, got %d", len(lines[0].Words), len(again[0].Words))
	}
}

func TestLineDerivedAttributes(t *testing.T) {
	line := Line{
		Words: []model.Word{
			{Text: "Big", BBox: model.NewBBox(10, 10, 40, 30), FontName: "Arial-Bold", Size: 18},
			{Text: "small", BBox: model.NewBBox(45, 14, 80, 26), FontName: "Arial", Size: 10},
			{Text: "again", BBox: model.NewBBox(85, 14, 110, 26), FontName: "Arial-Bold", Size: 10},
		},
	}

	if line.Text() != "Big small again" {
		t.Errorf("Text() = %q", line.Text())
	}
	if line.BBox() != model.NewBBox(10, 10, 110, 30) {
		t.Errorf("BBox() = %+v", line.BBox())
	}
	if line.FontSize() != 18 {
		t.Errorf("FontSize() = %v, want 18", line.FontSize())
	}
	if line.CenterX() != 60 {
		t.Errorf("CenterX() = %v, want 60", line.CenterX())
	}
	if line.CombinedFontName() != "Arial-Bold Arial Arial-Bold" {
		t.Errorf("CombinedFontName() = %q", line.CombinedFontName())
	}
	names := line.FontNames()
	if len(names) != 2 || names[0] != "Arial-Bold" || names[1] != "Arial" {
		t.Errorf("FontNames() = %v, want [Arial-Bold Arial]", names)
	}
}

func TestEmptyLineBBox(t *testing.T) {
	if !(Line{}).BBox().IsZero() {
		t.Error("Expected zero bbox for empty line")
	}
}

func BenchmarkCluster(b *testing.B) {
	var glyphs []model.Glyph
	for row := 0; row < 50; row++ {
		for word := 0; word < 10; word++ {
			glyphs = append(glyphs, makeRun("lorem", float64(word)*40, float64(row)*14, 5, 10, "F")...)
		}
	}
	clusterer := NewClusterer()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		clusterer.Cluster(glyphs)
	}
}
