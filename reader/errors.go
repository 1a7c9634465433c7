package reader

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when the PDF cannot be parsed or a page's
	// content cannot be decoded
	ErrDecode = errors.New("pdf decode failed")

	// ErrPageRange is returned for page numbers outside [1, PageCount]
	ErrPageRange = errors.New("page out of range")
)

// Warning describes a non-fatal problem found while reading a page. The
// page is still returned, possibly without some images or tables.
type Warning struct {
	Page    int
	Message string
}

// String returns the warning as "page N: message"
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}
