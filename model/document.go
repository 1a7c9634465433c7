package model

import "encoding/json"

// Document is the ordered list of pages recovered from one input
type Document struct {
	// Source names the input the document was built from. It is not
	// part of the encoded output.
	Source string
	Pages  []*Page
}

// NewDocument creates a new empty document
func NewDocument(source string) *Document {
	return &Document{
		Source: source,
		Pages:  make([]*Page, 0),
	}
}

// AddPage adds a page to the document. A page without a number is
// numbered by its position (1-indexed); pages selected from a larger
// input keep the number they already carry.
func (d *Document) AddPage(page *Page) {
	if page.Number == 0 {
		page.Number = len(d.Pages) + 1
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns the page with the given number, or nil
func (d *Document) GetPage(number int) *Page {
	for _, page := range d.Pages {
		if page.Number == number {
			return page
		}
	}
	return nil
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// ExtractText returns all text content concatenated
func (d *Document) ExtractText() string {
	var text string
	for _, page := range d.Pages {
		text += page.ExtractText() + "\n"
	}
	return text
}

// ElementCounts returns the number of elements of each type across all pages
func (d *Document) ElementCounts() map[ElementType]int {
	counts := make(map[ElementType]int)
	for _, page := range d.Pages {
		for _, elem := range page.Structure {
			counts[elem.Type]++
		}
	}
	return counts
}

// Headings returns all title and h1-h3 lines as a document outline
func (d *Document) Headings() []OutlineEntry {
	var outline []OutlineEntry
	for _, page := range d.Pages {
		for _, elem := range page.Structure {
			if !elem.Type.IsHeading() || elem.Text == nil {
				continue
			}
			outline = append(outline, OutlineEntry{
				Level:    elem.Type,
				Text:     elem.Text.Text,
				Page:     page.Number,
				BBox:     elem.Text.BBox,
				FontSize: elem.Text.FontSize,
			})
		}
	}
	return outline
}

// OutlineEntry represents a heading in the document outline
type OutlineEntry struct {
	Level    ElementType // title, h1, h2 or h3
	Text     string      // Heading text
	Page     int         // Page number (1-indexed)
	BBox     BBox        // Position on page
	FontSize float64     // Font size of heading
}

type documentJSON struct {
	Pages []*Page `json:"pages"`
}

// MarshalJSON encodes the document as {"pages": [...]}
func (d *Document) MarshalJSON() ([]byte, error) {
	pages := d.Pages
	if pages == nil {
		pages = []*Page{}
	}
	return marshal(documentJSON{Pages: pages})
}

// UnmarshalJSON decodes a {"pages": [...]} document
func (d *Document) UnmarshalJSON(data []byte) error {
	var v documentJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	d.Pages = v.Pages
	return nil
}
