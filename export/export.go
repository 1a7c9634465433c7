// Package export writes analyzed documents in the supported output
// formats: JSON (the layout output format), Markdown and HTML.
package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/moby/sys/atomicwriter"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/model"
)

// Encoder writes a document in one output format
type Encoder interface {
	// Encode writes doc to w
	Encode(w io.Writer, doc *model.Document) error

	// Format returns the format the encoder produces
	Format() format.Format
}

// New returns the default encoder for an output format
func New(f format.Format) (Encoder, error) {
	switch f {
	case format.JSON:
		return NewJSONEncoder(), nil
	case format.Markdown:
		return NewMarkdownEncoder(), nil
	case format.HTML:
		return NewHTMLEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %v", f)
	}
}

// ByName returns the encoder for a format name such as "json" or "md"
func ByName(name string) (Encoder, error) {
	f, err := format.Parse(name)
	if err != nil {
		return nil, err
	}
	return New(f)
}

// ToString encodes doc into a string
func ToString(enc Encoder, doc *model.Document) (string, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile encodes doc and atomically replaces filename with the result.
// Nothing is written when encoding fails.
func WriteFile(enc Encoder, doc *model.Document, filename string) error {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, doc); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	if err := atomicwriter.WriteFile(filename, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// OutputName returns the output file name for an input file name: the
// extension, matched case-insensitively when it is .pdf, is replaced by
// the encoder's extension
func OutputName(input string, enc Encoder) string {
	stem := input
	if format.Detect(input) == format.PDF {
		stem = input[:len(input)-len(".pdf")]
	}
	return stem + enc.Format().Extension()
}
