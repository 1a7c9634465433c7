// Package format identifies input and output file formats.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotPDF is returned when content does not start with a PDF header
var ErrNotPDF = errors.New("not a PDF file")

// Format represents a supported file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF is the only supported input format.
	PDF
	// JSON is the default output format, one array of pages per document.
	JSON
	// Markdown renders each document's outline and text.
	Markdown
	// HTML renders each document as a standalone page.
	HTML
)

var pdfMagic = []byte("%PDF-")

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "pdf"
	case JSON:
		return "json"
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// Extension returns the file extension written for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case JSON:
		return ".json"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// IsOutput reports whether documents can be written in the format.
func (f Format) IsOutput() bool {
	return f == JSON || f == Markdown || f == HTML
}

// Detect determines file format from filename extension, ignoring case.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".json":
		return JSON
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm":
		return HTML
	default:
		return Unknown
	}
}

// Parse maps an output format name, as given on the command line or in
// configuration, to a Format.
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	}
	return Unknown, fmt.Errorf("unknown output format %q (want json, markdown or html)", name)
}

// DetectFromMagic checks the leading bytes for a PDF header. Leading
// whitespace is not allowed.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	return Unknown
}

// Sniff reads the first bytes of r and returns ErrNotPDF unless they
// carry a PDF header.
func Sniff(r io.ReaderAt) error {
	magic := make([]byte, len(pdfMagic))
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return err
	}
	if DetectFromMagic(magic[:n]) != PDF {
		return ErrNotPDF
	}
	return nil
}
