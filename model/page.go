package model

import "encoding/json"

// Page represents the recovered structure of a single page
type Page struct {
	Number    int       // 1-indexed page number
	Width     float64   // Page width in page units
	Height    float64   // Page height in page units
	Stats     PageStats // Font size statistics used for classification
	Structure []Element // Text lines, then tables, then images
}

// NewPage creates a new page with given dimensions
func NewPage(width, height float64) *Page {
	return &Page{
		Width:     width,
		Height:    height,
		Structure: make([]Element, 0),
	}
}

// AddElement appends an element to the structure list
func (p *Page) AddElement(elem Element) {
	p.Structure = append(p.Structure, elem)
}

// ExtractText concatenates the text of all text elements
func (p *Page) ExtractText() string {
	var text string
	for _, elem := range p.Structure {
		if elem.Type.IsText() {
			text += elem.GetText() + "\n"
		}
	}
	return text
}

// ElementsOfType returns the elements with the given type, in order
func (p *Page) ElementsOfType(et ElementType) []Element {
	var elements []Element
	for _, elem := range p.Structure {
		if elem.Type == et {
			elements = append(elements, elem)
		}
	}
	return elements
}

type pageJSON struct {
	PageNumber int       `json:"page_number"`
	Structure  []Element `json:"structure"`
}

// MarshalJSON encodes the page number and structure list
func (p *Page) MarshalJSON() ([]byte, error) {
	structure := p.Structure
	if structure == nil {
		structure = []Element{}
	}
	return marshal(pageJSON{PageNumber: p.Number, Structure: structure})
}

// UnmarshalJSON decodes the page number and structure list
func (p *Page) UnmarshalJSON(data []byte) error {
	var v pageJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.Number = v.PageNumber
	p.Structure = v.Structure
	return nil
}
