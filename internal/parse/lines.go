package parse

import (
	"regexp"
	"strings"
)

// Line is one normalized line of listing text, tagged with its position in
// the raw input (1-based, blank lines included) so segmentation stays
// traceable back to the source.
type Line struct {
	Num  int
	Text string
}

// pageFurnitureRe matches pagination artifacts that survive text
// extraction ("Página 3 de 12", "Page 4 of 9", bare page numbers after a
// form feed are handled by the \f split below).
var pageFurnitureRe = regexp.MustCompile(`(?i)^\s*(p[áa]gina|page|hoja)\s+\d+(\s+(de|of)\s+\d+)?\s*$`)

// NormalizeLines cleans a raw text blob into an ordered sequence of
// non-empty lines: line endings unified, page-break markers stripped,
// blank lines dropped. Empty input yields an empty sequence, not an error.
func NormalizeLines(text string) []Line {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\f", "\n")

	var lines []Line
	for i, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if pageFurnitureRe.MatchString(trimmed) {
			continue
		}
		lines = append(lines, Line{Num: i + 1, Text: trimmed})
	}
	return lines
}
