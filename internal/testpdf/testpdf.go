// Package testpdf builds small, valid PDF files for tests. Every page
// shares one Helvetica font (/F1, 500 units per glyph) and one 1x1 gray
// image (/Im1). The page tree declares a Letter MediaBox that pages
// inherit unless they set their own.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Page describes one page of a generated document
type Page struct {
	// Content is the raw content stream
	Content string

	// MediaBox overrides the inherited box when non-empty, e.g. "0 0 300 400"
	MediaBox string
}

// Build returns the bytes of a PDF with the given pages
func Build(pages ...Page) []byte {
	var objects []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding"+
			" /FirstChar 32 /LastChar 126 /Widths ["+strings.TrimSpace(strings.Repeat("500.0 ", 95))+"] >>",
		stream("/Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceGray /BitsPerComponent 8", "\xff"),
	)

	for i, p := range pages {
		box := ""
		if p.MediaBox != "" {
			box = " /MediaBox [" + p.MediaBox + "]"
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R%s /Resources << /Font << /F1 3 0 R >> /XObject << /Im1 4 0 R >> >> /Contents %d 0 R >>", box, 6+2*i),
			stream("", p.Content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Write builds a PDF and writes it to dir/name, returning the path
func Write(dir, name string, pages ...Page) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Text returns a content stream fragment showing s at (x, y) in /F1
func Text(s string, x, y, size float64) string {
	return fmt.Sprintf("BT /F1 %g Tf %g %g Td (%s) Tj ET\n", size, x, y, s)
}

// Box returns a content stream fragment stroking a rectangle
func Box(x, y, w, h float64) string {
	return fmt.Sprintf("%g %g %g %g re S\n", x, y, w, h)
}

// Image returns a content stream fragment painting /Im1 scaled to w x h at (x, y)
func Image(x, y, w, h float64) string {
	return fmt.Sprintf("q %g 0 0 %g %g %g cm /Im1 Do Q\n", w, h, x, y)
}

func stream(dict, data string) string {
	if dict != "" {
		dict += " "
	}
	return fmt.Sprintf("<< %s/Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}
