package reader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/pagelayout/graphicsstate"
	"github.com/tsawler/pagelayout/source"
	"github.com/tsawler/pagelayout/tables"
)

// Letter size, used when no page in the tree declares a MediaBox
var defaultMediaBox = graphicsstate.Rect{
	Max: graphicsstate.Point{X: 612, Y: 792},
}

const maxParentDepth = 32

// Options controls what the reader extracts besides text
type Options struct {
	// Tables enables ruled table detection
	Tables bool

	// Images enables image placement tracking
	Images bool

	// TableConfig configures the table extractor
	TableConfig tables.Config

	// MaxFormDepth limits nesting of form XObjects
	MaxFormDepth int

	// MaxWarnings caps the warnings kept per page
	MaxWarnings int
}

// DefaultOptions returns options with tables and images enabled
func DefaultOptions() Options {
	return Options{
		Tables:       true,
		Images:       true,
		TableConfig:  tables.DefaultConfig(),
		MaxFormDepth: 8,
		MaxWarnings:  20,
	}
}

// Reader is a PDF backed page source
type Reader struct {
	file     io.Closer
	pdf      *pdf.Reader
	options  Options
	tables   *tables.Extractor
	warnings []Warning
}

var _ source.PageSource = (*Reader)(nil)

// Open opens a PDF file with default options
func Open(filename string) (*Reader, error) {
	return OpenWithOptions(filename, DefaultOptions())
}

// OpenWithOptions opens a PDF file
func OpenWithOptions(filename string, options Options) (r *Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("%w: %s: %v", ErrDecode, filename, rec)
		}
	}()

	f, pr, err := pdf.Open(filename)
	if err != nil {
		if f != nil {
			f.Close()
		}
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to open %s: %w", filename, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, filename, err)
	}

	return newReader(f, pr, options), nil
}

// NewReader reads a PDF from ra. The caller keeps ownership of ra; Close
// on the returned reader does not close it.
func NewReader(ra io.ReaderAt, size int64, options Options) (r *Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("%w: %v", ErrDecode, rec)
		}
	}()

	pr, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return newReader(nil, pr, options), nil
}

func newReader(file *os.File, pr *pdf.Reader, options Options) *Reader {
	r := &Reader{
		pdf:     pr,
		options: options,
		tables:  tables.NewExtractor(options.TableConfig),
	}
	if file != nil {
		r.file = file
	}
	return r
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	if r.pdf == nil {
		return 0
	}
	return r.pdf.NumPage()
}

// Page decodes a page (1-indexed). Text decoding failures are returned as
// ErrDecode; problems with graphics only produce warnings.
func (r *Reader) Page(number int) (content source.PageContent, err error) {
	count := r.PageCount()
	if number < 1 || number > count {
		return source.PageContent{}, fmt.Errorf("%w: page %d of %d", ErrPageRange, number, count)
	}

	defer func() {
		if rec := recover(); rec != nil {
			content, err = source.PageContent{}, fmt.Errorf("%w: page %d: %v", ErrDecode, number, rec)
		}
	}()

	page := r.pdf.Page(number)
	if page.V.IsNull() {
		return source.PageContent{}, fmt.Errorf("%w: page %d has no page object", ErrDecode, number)
	}

	box := mediaBox(page.V)
	content = source.PageContent{
		Width:  box.Width(),
		Height: box.Height(),
		Glyphs: convertText(page.Content().Text, box),
	}

	if r.options.Tables || r.options.Images {
		s := r.scanGraphics(page, number)

		if r.options.Images {
			for _, img := range s.ge.Images() {
				content.Images = append(content.Images, toTopDown(img, box))
			}
		}
		if r.options.Tables {
			content.Tables = r.tables.Extract(convertRulings(s.ge.GetGridLines(), box), content.Glyphs)
		}
	}

	return source.Normalize(content), nil
}

// Warnings returns the non-fatal problems seen so far, in page order of
// the calls to Page
func (r *Reader) Warnings() []Warning {
	return r.warnings
}

// Close releases the underlying file, if the reader opened it
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// mediaBox returns the page's MediaBox, inherited from the page tree when
// the page does not declare one
func mediaBox(page pdf.Value) graphicsstate.Rect {
	node := page
	for i := 0; i < maxParentDepth && !node.IsNull(); i++ {
		if box, ok := rectValue(node.Key("MediaBox")); ok {
			return box
		}
		node = node.Key("Parent")
	}
	return defaultMediaBox
}

// rectValue reads a four number array as a normalized rectangle
func rectValue(v pdf.Value) (graphicsstate.Rect, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return graphicsstate.Rect{}, false
	}

	var coords [4]float64
	for i := range coords {
		f, ok := number(v.Index(i))
		if !ok {
			return graphicsstate.Rect{}, false
		}
		coords[i] = f
	}

	rect := graphicsstate.RectFromPoints(
		graphicsstate.Point{X: coords[0], Y: coords[1]},
		graphicsstate.Point{X: coords[2], Y: coords[3]},
	)
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return graphicsstate.Rect{}, false
	}
	return rect, true
}

func number(v pdf.Value) (float64, bool) {
	switch v.Kind() {
	case pdf.Integer:
		return float64(v.Int64()), true
	case pdf.Real:
		return v.Float64(), true
	}
	return 0, false
}
