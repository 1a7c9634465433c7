package pagelayout

import (
	"fmt"
	"os"
	"sort"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/layout"
	"github.com/tsawler/pagelayout/model"
	"github.com/tsawler/pagelayout/reader"
	"github.com/tsawler/pagelayout/source"
	"github.com/tsawler/pagelayout/tables"
)

// Extractor provides a fluent interface for building layout documents.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	source   source.PageSource

	// Lifecycle
	ownsSource bool // true if we opened the source and should close it
	opened     bool // true if the source has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:   e.filename,
		source:     e.source,
		ownsSource: e.ownsSource,
		opened:     e.opened,
		options:    e.options.clone(),
		err:        e.err,
		warnings:   append([]Warning(nil), e.warnings...),
	}
}

// ensureSource opens the PDF if not already open. Files without a .pdf
// extension are accepted when their content starts with a PDF header.
func (e *Extractor) ensureSource() error {
	if e.opened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	if format.Detect(e.filename) != format.PDF {
		if err := sniffFile(e.filename); err != nil {
			return fmt.Errorf("failed to open %s: %w", e.filename, err)
		}
	}

	r, err := reader.OpenWithOptions(e.filename, e.options.reader)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.source = r
	e.ownsSource = true
	e.opened = true
	return nil
}

func sniffFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return format.Sniff(f)
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsSource && e.source != nil {
		err := e.source.Close()
		e.source = nil
		e.ownsSource = false
		e.opened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to analyze (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	doc, _, err := pagelayout.Open("doc.pdf").Pages(1, 3, 5).Document()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to analyze (1-indexed, inclusive).
//
// Example:
//
//	doc, _, err := pagelayout.Open("doc.pdf").PageRange(5, 10).Document()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithAnalyzerConfig replaces the clustering and statistics settings.
func (e *Extractor) WithAnalyzerConfig(config layout.AnalyzerConfig) *Extractor {
	newExt := e.clone()
	newExt.options.analyzer = config
	return newExt
}

// WithReaderOptions replaces the PDF decoding options. It has no effect
// on extractors created with FromSource.
func (e *Extractor) WithReaderOptions(opts reader.Options) *Extractor {
	newExt := e.clone()
	newExt.options.reader = opts
	return newExt
}

// LineOrder selects how clustered lines are ordered on each page.
//
// Example:
//
//	doc, _, err := pagelayout.Open("doc.pdf").LineOrder(layout.LineOrderTopDown).Document()
func (e *Extractor) LineOrder(order layout.LineOrder) *Extractor {
	newExt := e.clone()
	newExt.options.analyzer.Cluster.Order = order
	return newExt
}

// Tolerances sets the word gap and line quantization tolerances.
func (e *Extractor) Tolerances(x, y float64) *Extractor {
	newExt := e.clone()
	if !(x >= 0) || !(y > 0) {
		newExt.err = fmt.Errorf("invalid tolerances x=%v y=%v", x, y)
		return newExt
	}
	newExt.options.analyzer.Cluster.XTolerance = x
	newExt.options.analyzer.Cluster.YTolerance = y
	return newExt
}

// WithoutTables disables ruled table detection.
func (e *Extractor) WithoutTables() *Extractor {
	newExt := e.clone()
	newExt.options.reader.Tables = false
	return newExt
}

// WithoutImages disables image placement tracking.
func (e *Extractor) WithoutImages() *Extractor {
	newExt := e.clone()
	newExt.options.reader.Images = false
	return newExt
}

// WithTableConfig replaces the table extractor settings.
func (e *Extractor) WithTableConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.reader.TableConfig = config
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
// The underlying source stays open.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.source.PageCount(), nil
}

// Document analyzes the selected pages and returns the layout document.
// This is a terminal operation that closes a source the Extractor opened.
//
// A page that cannot be decoded fails the whole document: no partial
// document is returned. Warnings report non-fatal problems such as
// images or tables that could not be read.
//
// Example:
//
//	doc, warnings, err := pagelayout.Open("document.pdf").Document()
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	pageNumbers, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	analyzer := layout.NewAnalyzerWithConfig(e.options.analyzer)
	doc := model.NewDocument(e.filename)

	for _, n := range pageNumbers {
		content, err := e.source.Page(n)
		if err != nil {
			return nil, e.collectWarnings(), fmt.Errorf("page %d: %w", n, err)
		}

		page := analyzer.Analyze(content)
		page.Number = n
		doc.AddPage(page)
	}

	return doc, e.collectWarnings(), nil
}

// Text returns the text of every element of the selected pages, one
// element per line.
func (e *Extractor) Text() (string, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return "", warnings, err
	}
	return doc.ExtractText(), warnings, nil
}

// Headings returns the document outline of the selected pages.
func (e *Extractor) Headings() ([]model.OutlineEntry, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Headings(), warnings, nil
}

// collectWarnings merges warnings from configuration with those the
// source reported
func (e *Extractor) collectWarnings() []Warning {
	warnings := append([]Warning(nil), e.warnings...)
	if ws, ok := e.source.(warningSource); ok {
		warnings = append(warnings, ws.Warnings()...)
	}
	return warnings
}

// resolvePages validates the page selection and returns page numbers in
// ascending order without duplicates. With no selection every page is
// returned.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := e.source.PageCount()

	if len(e.options.pages) == 0 {
		numbers := make([]int, pageCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d): %w", p, pageCount, reader.ErrPageRange)
		}
		if !seen[p] {
			seen[p] = true
			numbers = append(numbers, p)
		}
	}

	sort.Ints(numbers)
	return numbers, nil
}
