package pagelayout

import (
	"strings"

	"github.com/tsawler/pagelayout/reader"
)

// Warning is a non-fatal problem found while reading a document. The
// document was still built, but some images or tables may be missing.
type Warning = reader.Warning

// warningSource is implemented by page sources that collect warnings
type warningSource interface {
	Warnings() []reader.Warning
}

// FormatWarnings joins warnings into one line each
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
