package tables

import "github.com/tsawler/pagelayout/model"

// Config holds table extraction configuration
type Config struct {
	// Minimum rows for a valid table
	MinRows int

	// Minimum columns for a valid table
	MinCols int

	// Minimum confidence threshold (0-1)
	MinConfidence float64

	// Tolerance for ruling alignment (points)
	AlignmentTolerance float64

	// Rulings shorter than this are ignored (points)
	MinLineLength float64
}

// DefaultConfig returns default configuration. A single ruled box counts
// as a one-cell table.
func DefaultConfig() Config {
	return Config{
		MinRows:            1,
		MinCols:            1,
		MinConfidence:      0,
		AlignmentTolerance: 3.0,
		MinLineLength:      3.0,
	}
}

// Extractor finds ruled tables on a page and reads their cell text
type Extractor struct {
	config   Config
	detector *GridDetector
}

// NewExtractor creates an extractor with the given configuration
func NewExtractor(config Config) *Extractor {
	detector := NewGridDetector()
	if config.AlignmentTolerance > 0 {
		detector.AlignmentTolerance = config.AlignmentTolerance
	}
	if config.MinLineLength > 0 {
		detector.MinLineLength = config.MinLineLength
	}

	return &Extractor{
		config:   config,
		detector: detector,
	}
}

// Config returns the extractor's configuration
func (e *Extractor) Config() Config {
	return e.config
}

// Grids returns the grids that pass the size and confidence limits
func (e *Extractor) Grids(rulings []Ruling) []*Grid {
	var grids []*Grid
	for _, g := range e.detector.Detect(rulings) {
		if g.RowCount() < e.config.MinRows || g.ColCount() < e.config.MinCols {
			continue
		}
		if g.Confidence < e.config.MinConfidence {
			continue
		}
		grids = append(grids, g)
	}
	return grids
}

// Extract returns the cell text of every table formed by the rulings, in
// grid order
func (e *Extractor) Extract(rulings []Ruling, glyphs []model.Glyph) [][][]string {
	var tables [][][]string
	for _, g := range e.Grids(rulings) {
		tables = append(tables, g.Fill(glyphs))
	}
	return tables
}
