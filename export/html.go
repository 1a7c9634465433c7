package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/model"
)

// HTMLEncoder renders a document as a standalone HTML page. Each page is
// a <section>; titles and headings map to <h1> through <h4>. Element
// boxes are kept in data-bbox attributes.
type HTMLEncoder struct {
	// Title overrides the <title>; by default the first title line or
	// the document source name is used
	Title string

	// Images includes a <figure> placeholder for each image element
	Images bool
}

// NewHTMLEncoder returns an encoder with image placeholders
func NewHTMLEncoder() *HTMLEncoder {
	return &HTMLEncoder{Images: true}
}

// Format returns format.HTML
func (e *HTMLEncoder) Format() format.Format {
	return format.HTML
}

var headingAtom = map[model.ElementType]atom.Atom{
	model.ElementTypeTitle:     atom.H1,
	model.ElementTypeH1:        atom.H2,
	model.ElementTypeH2:        atom.H3,
	model.ElementTypeH3:        atom.H4,
	model.ElementTypeParagraph: atom.P,
}

// Encode writes doc as HTML
func (e *HTMLEncoder) Encode(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}
	return html.Render(w, e.build(doc))
}

func (e *HTMLEncoder) build(doc *model.Document) *html.Node {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlNode := element(atom.Html)
	root.AppendChild(htmlNode)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	title := element(atom.Title)
	title.AppendChild(text(e.title(doc)))
	head.AppendChild(title)
	htmlNode.AppendChild(head)

	body := element(atom.Body)
	htmlNode.AppendChild(body)

	for _, page := range doc.Pages {
		section := element(atom.Section,
			attr("class", "page"),
			attr("id", fmt.Sprintf("page-%d", page.Number)),
			attr("data-page", strconv.Itoa(page.Number)),
		)
		for _, elem := range page.Structure {
			if n := e.renderElement(elem); n != nil {
				section.AppendChild(n)
			}
		}
		body.AppendChild(section)
	}

	return root
}

func (e *HTMLEncoder) renderElement(elem model.Element) *html.Node {
	switch {
	case elem.Text != nil:
		a, ok := headingAtom[elem.Type]
		if !ok {
			a = atom.P
		}
		n := element(a,
			attr("class", elem.Type.String()),
			attr("data-bbox", formatBBox(elem.Text.BBox)),
		)
		if elem.Text.Alignment != "" {
			n.Attr = append(n.Attr, attr("data-align", elem.Text.Alignment))
		}
		n.AppendChild(text(elem.Text.Text))
		return n

	case elem.Table != nil:
		table := element(atom.Table, attr("class", "table"))
		tbody := element(atom.Tbody)
		for _, row := range elem.Table.Content {
			tr := element(atom.Tr)
			for _, cell := range row {
				td := element(atom.Td)
				for i, line := range strings.Split(cell, "\n") {
					if i > 0 {
						td.AppendChild(element(atom.Br))
					}
					td.AppendChild(text(line))
				}
				tr.AppendChild(td)
			}
			tbody.AppendChild(tr)
		}
		table.AppendChild(tbody)
		return table

	case elem.Image != nil && e.Images:
		return element(atom.Figure,
			attr("class", "image"),
			attr("data-bbox", formatBBox(elem.Image.BBox)),
		)
	}

	return nil
}

func (e *HTMLEncoder) title(doc *model.Document) string {
	if e.Title != "" {
		return e.Title
	}
	for _, h := range doc.Headings() {
		if h.Level == model.ElementTypeTitle && strings.TrimSpace(h.Text) != "" {
			return strings.TrimSpace(h.Text)
		}
	}
	if doc.Source != "" {
		return filepath.Base(doc.Source)
	}
	return "Document"
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func formatBBox(b model.BBox) string {
	arr := b.Array()
	parts := make([]string, len(arr))
	for i, v := range arr {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
