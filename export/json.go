package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/pagelayout/format"
	"github.com/tsawler/pagelayout/model"
)

// JSONEncoder writes the layout output format: {"pages": [...]}
type JSONEncoder struct {
	// Indent is the per-level indentation; empty writes compact JSON
	Indent string

	// EscapeHTML escapes <, > and & in strings
	EscapeHTML bool
}

// NewJSONEncoder returns an encoder indenting by two spaces with
// markup left unescaped
func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{Indent: "  "}
}

// Format returns format.JSON
func (e *JSONEncoder) Format() format.Format {
	return format.JSON
}

// Encode writes doc as JSON followed by a newline
func (e *JSONEncoder) Encode(w io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("nil document")
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(e.EscapeHTML)
	if e.Indent != "" {
		encoder.SetIndent("", e.Indent)
	}

	return encoder.Encode(doc)
}
