package model

import "strings"

// RowCount returns the number of rows
func (t *TableBlock) RowCount() int {
	return len(t.Content)
}

// ColCount returns the width of the widest row
func (t *TableBlock) ColCount() int {
	cols := 0
	for _, row := range t.Content {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// GetCell returns the cell text at the given row and column (0-indexed)
// and false when the position is outside the grid
func (t *TableBlock) GetCell(row, col int) (string, bool) {
	if row < 0 || row >= len(t.Content) {
		return "", false
	}
	if col < 0 || col >= len(t.Content[row]) {
		return "", false
	}
	return t.Content[row][col], true
}

// ToMarkdown converts the table to markdown format. The first row is
// rendered as the header; short rows are padded to the widest row.
func (t *TableBlock) ToMarkdown() string {
	if len(t.Content) == 0 {
		return ""
	}

	cols := t.ColCount()
	var sb strings.Builder

	writeRow := func(row []string) {
		for j := 0; j < cols; j++ {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell, "\n", " "))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(t.Content[0])

	// Separator
	for j := 0; j < cols; j++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for _, row := range t.Content[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *TableBlock) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Content {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
