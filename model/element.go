package model

import (
	"encoding/json"
	"fmt"
)

// ElementType represents the type of a structure element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeTitle
	ElementTypeH1
	ElementTypeH2
	ElementTypeH3
	ElementTypeParagraph
	ElementTypeTable
	ElementTypeImage
)

// String returns the wire name of the element type
func (et ElementType) String() string {
	switch et {
	case ElementTypeTitle:
		return "title"
	case ElementTypeH1:
		return "h1"
	case ElementTypeH2:
		return "h2"
	case ElementTypeH3:
		return "h3"
	case ElementTypeParagraph:
		return "paragraph"
	case ElementTypeTable:
		return "table"
	case ElementTypeImage:
		return "image"
	default:
		return "unknown"
	}
}

// IsText returns true for the heading levels and paragraph
func (et ElementType) IsText() bool {
	return et >= ElementTypeTitle && et <= ElementTypeParagraph
}

// IsHeading returns true for title and h1-h3
func (et ElementType) IsHeading() bool {
	return et >= ElementTypeTitle && et <= ElementTypeH3
}

// ParseElementType converts a wire name back into an ElementType
func ParseElementType(s string) (ElementType, error) {
	for et := ElementTypeTitle; et <= ElementTypeImage; et++ {
		if et.String() == s {
			return et, nil
		}
	}
	return ElementTypeUnknown, fmt.Errorf("unknown element type %q", s)
}

// TextBlock is the payload of a classified text line
type TextBlock struct {
	Text       string
	BBox       BBox
	FontSize   float64
	Bold       bool
	Underline  bool
	FontWeight string
	FontNames  []string
	Alignment  string
}

// TableBlock is the payload of a table reported by the page source.
// Tables carry no computed geometry, so the element bbox is always zero.
type TableBlock struct {
	Content [][]string
}

// ImageBlock is the payload of an image reported by the page source
type ImageBlock struct {
	BBox BBox
}

// Element is one entry of a page's structure list. Exactly one of Text,
// Table or Image is set, matching Type.
type Element struct {
	Type  ElementType
	Text  *TextBlock
	Table *TableBlock
	Image *ImageBlock
}

// NewTextElement creates a text element with the given heading level
func NewTextElement(level ElementType, block TextBlock) Element {
	return Element{Type: level, Text: &block}
}

// NewTableElement creates a table element from a cell grid
func NewTableElement(content [][]string) Element {
	return Element{Type: ElementTypeTable, Table: &TableBlock{Content: content}}
}

// NewImageElement creates an image element from its bounding box
func NewImageElement(bbox BBox) Element {
	return Element{Type: ElementTypeImage, Image: &ImageBlock{BBox: bbox}}
}

// BBox returns the element's bounding box
func (e Element) BBox() BBox {
	switch {
	case e.Text != nil:
		return e.Text.BBox
	case e.Image != nil:
		return e.Image.BBox
	default:
		return BBox{}
	}
}

// GetText returns the text of a text element, or the tab-separated cells of a table
func (e Element) GetText() string {
	switch {
	case e.Text != nil:
		return e.Text.Text
	case e.Table != nil:
		var text string
		for _, row := range e.Table.Content {
			for j, cell := range row {
				if j > 0 {
					text += "\t"
				}
				text += cell
			}
			text += "\n"
		}
		return text
	default:
		return ""
	}
}

type textElementJSON struct {
	Type       string   `json:"type"`
	Text       string   `json:"text"`
	BBox       BBox     `json:"bbox"`
	FontSize   float64  `json:"font_size"`
	Bold       bool     `json:"bold"`
	Underline  bool     `json:"underline"`
	FontWeight string   `json:"font_weight"`
	FontNames  []string `json:"fontnames"`
	Alignment  string   `json:"alignment"`
}

type tableElementJSON struct {
	Type    string     `json:"type"`
	Content [][]string `json:"content"`
	BBox    BBox       `json:"bbox"`
}

type imageElementJSON struct {
	Type string `json:"type"`
	BBox BBox   `json:"bbox"`
}

// MarshalJSON encodes the element in the layout output format
func (e Element) MarshalJSON() ([]byte, error) {
	switch {
	case e.Type.IsText() && e.Text != nil:
		names := e.Text.FontNames
		if names == nil {
			names = []string{}
		}
		return marshal(textElementJSON{
			Type:       e.Type.String(),
			Text:       e.Text.Text,
			BBox:       e.Text.BBox,
			FontSize:   e.Text.FontSize,
			Bold:       e.Text.Bold,
			Underline:  e.Text.Underline,
			FontWeight: e.Text.FontWeight,
			FontNames:  names,
			Alignment:  e.Text.Alignment,
		})
	case e.Type == ElementTypeTable && e.Table != nil:
		content := e.Table.Content
		if content == nil {
			content = [][]string{}
		}
		return marshal(tableElementJSON{
			Type:    e.Type.String(),
			Content: content,
			BBox:    BBox{},
		})
	case e.Type == ElementTypeImage && e.Image != nil:
		return marshal(imageElementJSON{
			Type: e.Type.String(),
			BBox: e.Image.BBox,
		})
	default:
		return nil, fmt.Errorf("element of type %s has no matching payload", e.Type)
	}
}

// UnmarshalJSON restores an element from the layout output format
func (e *Element) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	et, err := ParseElementType(head.Type)
	if err != nil {
		return err
	}

	switch {
	case et.IsText():
		var v textElementJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*e = NewTextElement(et, TextBlock{
			Text:       v.Text,
			BBox:       v.BBox,
			FontSize:   v.FontSize,
			Bold:       v.Bold,
			Underline:  v.Underline,
			FontWeight: v.FontWeight,
			FontNames:  v.FontNames,
			Alignment:  v.Alignment,
		})
	case et == ElementTypeTable:
		var v tableElementJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*e = NewTableElement(v.Content)
	default:
		var v imageElementJSON
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*e = NewImageElement(v.BBox)
	}
	return nil
}
