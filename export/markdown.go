package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/model"
)

// MarkdownEncoder renders headings as # to ####, paragraphs as plain
// text and tables as pipe tables. Images are noted by their position.
type MarkdownEncoder struct {
	// PageBreaks separates pages with a horizontal rule
	PageBreaks bool

	// Images includes a line for each image element
	Images bool
}

// NewMarkdownEncoder returns an encoder with page breaks and image notes
func NewMarkdownEncoder() *MarkdownEncoder {
	return &MarkdownEncoder{PageBreaks: true, Images: true}
}

// Format returns format.Markdown
func (e *MarkdownEncoder) Format() format.Format {
	return format.Markdown
}

var headingPrefix = map[model.ElementType]string{
	model.ElementTypeTitle: "# ",
	model.ElementTypeH1:    "## ",
	model.ElementTypeH2:    "### ",
	model.ElementTypeH3:    "#### ",
}

// Encode writes doc as Markdown
func (e *MarkdownEncoder) Encode(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	bw := bufio.NewWriter(w)

	for i, page := range doc.Pages {
		if i > 0 && e.PageBreaks {
			bw.WriteString("---\n\n")
		}

		for _, elem := range page.Structure {
			switch {
			case elem.Text != nil:
				text := strings.TrimSpace(elem.Text.Text)
				if text == "" {
					continue
				}
				bw.WriteString(headingPrefix[elem.Type])
				bw.WriteString(escapeMarkdown(text))
				bw.WriteString("\n\n")
			case elem.Table != nil:
				if md := elem.Table.ToMarkdown(); md != "" {
					bw.WriteString(md)
					bw.WriteString("\n")
				}
			case elem.Image != nil && e.Images:
				b := elem.Image.BBox
				fmt.Fprintf(bw, "![image](#page-%d \"%.0f,%.0f,%.0f,%.0f\")\n\n", page.Number, b.X0, b.Top, b.X1, b.Bottom)
			}
		}
	}

	return bw.Flush()
}

// escapeMarkdown escapes characters that would start block syntax at the
// beginning of a line
func escapeMarkdown(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '>', '-', '+', '*', '|':
		return `\` + s
	}
	return s
}
