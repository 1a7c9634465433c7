package layout

import "strings"

// FontWeight is the weight inferred from a font name
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
	WeightBlack
	WeightLight
	// WeightHeavy is never inferred from a font name but counts as a
	// heavy weight when scoring
	WeightHeavy
)

// String returns a string representation of the weight
func (w FontWeight) String() string {
	switch w {
	case WeightBold:
		return "bold"
	case WeightBlack:
		return "black"
	case WeightLight:
		return "light"
	case WeightHeavy:
		return "heavy"
	default:
		return "normal"
	}
}

// IsHeavy returns true for bold, black and heavy weights. DetectTypography
// never yields WeightHeavy; it only appears in ScoreInput values built by
// callers.
func (w FontWeight) IsHeavy() bool {
	return w == WeightBold || w == WeightBlack || w == WeightHeavy
}

// Typography holds the style signals found in a font name
type Typography struct {
	Bold      bool
	Underline bool
	Weight    FontWeight
}

// DetectTypography infers bold, underline and weight from a font name.
// Matching is a case-insensitive substring search. A name containing
// "black" is both Bold and WeightBlack.
//
// Lines are classified as a whole by passing the space-joined font names
// of all their words, so any word can contribute a signal.
func DetectTypography(fontName string) Typography {
	name := strings.ToLower(fontName)

	typo := Typography{
		Bold:      strings.Contains(name, "bold") || strings.Contains(name, "black"),
		Underline: strings.Contains(name, "underline"),
		Weight:    WeightNormal,
	}

	switch {
	case strings.Contains(name, "bold"):
		typo.Weight = WeightBold
	case strings.Contains(name, "black"):
		typo.Weight = WeightBlack
	case strings.Contains(name, "light"):
		typo.Weight = WeightLight
	}

	return typo
}
