package layout

import (
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/source"
)

// AnalyzerConfig holds configuration options for the page analyzer
type AnalyzerConfig struct {
	// Cluster configures glyph clustering
	Cluster ClusterConfig

	// DefaultFontSize is used for the page statistics of pages without
	// words (default: 10.0)
	DefaultFontSize float64
}

// DefaultAnalyzerConfig returns the default analyzer configuration
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Cluster:         DefaultClusterConfig(),
		DefaultFontSize: DefaultFontSize,
	}
}

// Analyzer assembles the structure list of a page. It holds no state
// between pages and is safe for concurrent use.
type Analyzer struct {
	config    AnalyzerConfig
	clusterer *Clusterer
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultAnalyzerConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config AnalyzerConfig) *Analyzer {
	return &Analyzer{
		config:    config,
		clusterer: NewClustererWithConfig(config.Cluster),
	}
}

// Config returns the analyzer's configuration
func (a *Analyzer) Config() AnalyzerConfig {
	return a.config
}

// Analyze builds the page structure from the page source's content.
//
// Glyphs are clustered into lines, page statistics are computed, and each
// line becomes one text element in cluster order. One table element per
// reported table and one image element per reported image follow, in the
// order the source listed them. Nothing is reordered, merged or
// deduplicated across the three groups.
//
// Malformed source results are dropped first (see source.Normalize), so a
// glyph with a non-finite coordinate never reaches a line.
//
// The returned page has no number; Document.AddPage assigns it.
func (a *Analyzer) Analyze(content source.PageContent) *model.Page {
	content = source.Normalize(content)
	page := model.NewPage(content.Width, content.Height)

	lines := a.clusterer.Cluster(content.Glyphs)
	page.Stats = ComputePageStats(lines, a.defaultFontSize())

	for _, line := range lines {
		page.AddElement(a.ClassifyLine(line, page.Stats, content.Width, content.Height))
	}

	for _, table := range content.Tables {
		page.AddElement(model.NewTableElement(table))
	}

	for _, img := range content.Images {
		page.AddElement(model.NewImageElement(img))
	}

	return page
}

// ClassifyLine turns one clustered line into a text element
func (a *Analyzer) ClassifyLine(line Line, stats model.PageStats, pageWidth, pageHeight float64) model.Element {
	bbox := line.BBox()
	fontSize := line.FontSize()
	typo := DetectTypography(line.CombinedFontName())
	alignment := DetectAlignment(bbox.X0, bbox.CenterX(), pageWidth)

	level := ClassifyHeading(ScoreInput{
		FontSize:     fontSize,
		BaseFontSize: stats.BaseFontSize,
		MaxFontSize:  stats.MaxFontSize,
		Bold:         typo.Bold,
		Underline:    typo.Underline,
		Weight:       typo.Weight,
		Alignment:    alignment,
		Top:          bbox.Top,
		PageHeight:   pageHeight,
		X0:           bbox.X0,
		X1:           bbox.X1,
		PageWidth:    pageWidth,
	})

	return model.NewTextElement(level.ElementType(), model.TextBlock{
		Text:       line.Text(),
		BBox:       bbox,
		FontSize:   fontSize,
		Bold:       typo.Bold,
		Underline:  typo.Underline,
		FontWeight: typo.Weight.String(),
		FontNames:  line.FontNames(),
		Alignment:  alignment.String(),
	})
}

func (a *Analyzer) defaultFontSize() float64 {
	if a.config.DefaultFontSize <= 0 {
		return DefaultFontSize
	}
	return a.config.DefaultFontSize
}
