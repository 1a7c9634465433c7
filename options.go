package pagelayout

import (
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/reader"
)

// ExtractOptions holds configuration for document extraction.
type ExtractOptions struct {
	// Page selection (1-indexed, stored as given)
	pages []int

	// Line clustering and statistics
	analyzer layout.AnalyzerConfig

	// PDF decoding, used only when the Extractor opens the file
	reader reader.Options
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:    nil, // nil means all pages
		analyzer: layout.DefaultAnalyzerConfig(),
		reader:   reader.DefaultOptions(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		analyzer: o.analyzer,
		reader:   o.reader,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}
