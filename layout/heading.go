package layout

import "github.com/tsawler/pagelayout/model"

// HeadingLevel is the semantic label assigned to a line
type HeadingLevel int

const (
	HeadingLevelParagraph HeadingLevel = iota
	HeadingLevelH3
	HeadingLevelH2
	HeadingLevelH1
	HeadingLevelTitle
)

// String returns a string representation of the heading level
func (l HeadingLevel) String() string {
	switch l {
	case HeadingLevelTitle:
		return "title"
	case HeadingLevelH1:
		return "h1"
	case HeadingLevelH2:
		return "h2"
	case HeadingLevelH3:
		return "h3"
	default:
		return "paragraph"
	}
}

// ElementType returns the structure element type for this level
func (l HeadingLevel) ElementType() model.ElementType {
	switch l {
	case HeadingLevelTitle:
		return model.ElementTypeTitle
	case HeadingLevelH1:
		return model.ElementTypeH1
	case HeadingLevelH2:
		return model.ElementTypeH2
	case HeadingLevelH3:
		return model.ElementTypeH3
	default:
		return model.ElementTypeParagraph
	}
}

// Score thresholds
const (
	titleScore = 5
	h1Score    = 4
	h2Score    = 3
	h3Score    = 2
)

// ScoreInput holds everything the heading classifier looks at
type ScoreInput struct {
	// FontSize is the line's dominant font size
	FontSize float64

	// BaseFontSize and MaxFontSize come from the page statistics
	BaseFontSize float64
	MaxFontSize  float64

	// Typography signals for the whole line
	Bold      bool
	Underline bool
	Weight    FontWeight

	// Alignment of the line
	Alignment Alignment

	// Top is the line's top coordinate; PageHeight the page height
	Top        float64
	PageHeight float64

	// X0 and X1 are the line's horizontal extents; PageWidth the page width
	X0        float64
	X1        float64
	PageWidth float64
}

// TitleOverride reports whether a line is a title regardless of its score:
// it uses the page's largest font and is either centered or sits inside a
// 5% margin on every side.
func TitleOverride(in ScoreInput) bool {
	if in.FontSize != in.MaxFontSize {
		return false
	}
	if in.Alignment == AlignCenter {
		return true
	}

	leftPadding := in.X0 >= 0.05*in.PageWidth
	rightPadding := in.X1 <= 0.95*in.PageWidth
	topPadding := in.Top >= 0.05*in.PageHeight
	bottomPadding := in.Top <= 0.95*in.PageHeight

	return leftPadding && rightPadding && topPadding && bottomPadding
}

// Score returns the additive heading score of a line.
//
//	font size >= base+8 / +5 / +3 / +1     4 / 3 / 2 / 1 (highest tier only)
//	bold, or bold/black/heavy weight       1
//	underlined                             1
//	centered, else left in the top 20%     1
//	in the top 15% of the page             1
func Score(in ScoreInput) int {
	score := 0

	switch {
	case in.FontSize >= in.BaseFontSize+8:
		score += 4
	case in.FontSize >= in.BaseFontSize+5:
		score += 3
	case in.FontSize >= in.BaseFontSize+3:
		score += 2
	case in.FontSize >= in.BaseFontSize+1:
		score += 1
	}

	if in.Bold || in.Weight.IsHeavy() {
		score++
	}

	if in.Underline {
		score++
	}

	if in.Alignment == AlignCenter {
		score++
	} else if in.Alignment == AlignLeft && in.Top <= 0.2*in.PageHeight {
		score++
	}

	if in.Top <= 0.15*in.PageHeight {
		score++
	}

	return score
}

// LevelForScore maps a score to a heading level
func LevelForScore(score int) HeadingLevel {
	switch {
	case score >= titleScore:
		return HeadingLevelTitle
	case score == h1Score:
		return HeadingLevelH1
	case score == h2Score:
		return HeadingLevelH2
	case score == h3Score:
		return HeadingLevelH3
	default:
		return HeadingLevelParagraph
	}
}

// ClassifyHeading assigns a heading level to a line. It is a pure function
// of its input: the title override is checked first, then the score is
// thresholded.
func ClassifyHeading(in ScoreInput) HeadingLevel {
	if TitleOverride(in) {
		return HeadingLevelTitle
	}
	return LevelForScore(Score(in))
}
