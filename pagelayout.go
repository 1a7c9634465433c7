// Package pagelayout reconstructs the layout of PDF pages: glyphs are
// grouped into lines, each line is classified as a title, heading or
// paragraph, and detected tables and images are appended.
//
// Basic usage:
//
//	doc, warnings, err := pagelayout.Open("report.pdf").Document()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pagelayout.FormatWarnings(warnings))
//	}
//
// With options:
//
//	doc, _, err := pagelayout.Open("report.pdf").
//	    Pages(1, 2).
//	    LineOrder(layout.LineOrderTopDown).
//	    Document()
//
// Any source.PageSource can be analyzed with FromSource. The batch
// package processes whole folders.
package pagelayout

import (
	"github.com/tsawler/pagelayout/source"
)

// Open returns an Extractor for a PDF file. The file is opened lazily and
// closed by terminal operations such as Document, or explicitly by Close.
//
// Example:
//
//	doc, warnings, err := pagelayout.Open("document.pdf").Document()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already open page source.
// The caller is responsible for closing the source.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	doc, warnings, err := pagelayout.FromSource(r).Document()
func FromSource(src source.PageSource) *Extractor {
	return &Extractor{
		source:     src,
		ownsSource: false,
		opened:     true,
		options:    defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pagelayout.Must(pagelayout.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustDocument is like Must for calls that also return warnings, which
// are discarded.
//
// Example:
//
//	doc := pagelayout.MustDocument(pagelayout.Open("document.pdf").Document())
func MustDocument[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
