package layout

import "github.com/tsawler/pagelayout/model"

// DefaultFontSize is the base and max size used for pages without words
const DefaultFontSize = 10.0

// ComputePageStats scans every word with a positive size. BaseFontSize is
// the smallest such size and MaxFontSize the largest; both fall back to
// defaultSize when there are none.
func ComputePageStats(lines []Line, defaultSize float64) model.PageStats {
	stats := model.PageStats{
		BaseFontSize: defaultSize,
		MaxFontSize:  defaultSize,
	}

	found := false
	for _, line := range lines {
		for _, w := range line.Words {
			if !(w.Size > 0) {
				continue
			}
			if !found {
				stats.BaseFontSize = w.Size
				stats.MaxFontSize = w.Size
				found = true
				continue
			}
			if w.Size < stats.BaseFontSize {
				stats.BaseFontSize = w.Size
			}
			if w.Size > stats.MaxFontSize {
				stats.MaxFontSize = w.Size
			}
		}
	}

	return stats
}
