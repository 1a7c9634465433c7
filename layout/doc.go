// Package layout reconstructs page structure from positioned glyphs.
//
// This package turns the unordered glyphs of one page into lines and words,
// then labels every line as a title, h1, h2, h3 or paragraph from its font
// size, typography, alignment and position.
//
// # Page Analysis
//
// The [Analyzer] orchestrates all steps for one page:
//
//	analyzer := layout.NewAnalyzer()
//	page := analyzer.Analyze(content) // content is a source.PageContent
//
// Text lines come first in the structure list, followed by the tables and
// images the page source reported.
//
// # Components
//
//   - [Clusterer] - groups glyphs into lines (quantized top) and words (x gap)
//   - [DetectTypography] - bold, underline and weight from font names
//   - [DetectAlignment] - center, justified, indented or left
//   - [ComputePageStats] - base and max font size of the page
//   - [ClassifyHeading] - title override, additive score and thresholds
//
// # Line Order
//
// By default lines are emitted in the order their first glyph was seen,
// which is not necessarily top to bottom. Set [ClusterConfig].Order to
// [LineOrderTopDown] to sort lines by vertical position:
//
//	config := layout.DefaultAnalyzerConfig()
//	config.Cluster.Order = layout.LineOrderTopDown
//	analyzer := layout.NewAnalyzerWithConfig(config)
//
// # Heading Scoring
//
// [ClassifyHeading] is a pure function over a [ScoreInput], so the threshold
// table can be exercised without a page source:
//
//	level := layout.ClassifyHeading(layout.ScoreInput{
//	    FontSize: 18, BaseFontSize: 10, MaxFontSize: 24,
//	    Bold: true, Alignment: layout.AlignLeft,
//	    Top: 79, PageHeight: 792, X0: 50, X1: 300, PageWidth: 612,
//	})
package layout
