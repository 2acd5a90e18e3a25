package parse

import (
	"regexp"
	"strings"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

// Anchor patterns. A record reliably starts at:
//   - tax-id format: a line carrying an 11-digit CUIT (plain or
//     hyphen-grouped) with a known prefix;
//   - license format: a line beginning with a 1-4 digit license number
//     immediately followed by a category token.
var (
	cuitAnchorRe    = regexp.MustCompile(`\b(?:20|23|24|27|30|33|34)(?:\d{9}|-\d{8}-\d)\b`)
	licenseAnchorRe = regexp.MustCompile(`^\d{1,4}\s+M[\s-]?[123]\b`)
)

// Block is all text from one anchor up to (but excluding) the next: the
// unit handed to a field extractor.
type Block struct {
	Anchor string // the matched anchor token
	Lines  []Line
}

// Text returns the block's lines space-joined into one string.
func (b *Block) Text() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, " ")
}

// Segment groups a normalized line sequence into candidate blocks for the
// given format. Lines before the column-header line (or, in header-less
// fragments, before the first anchor) are page furniture and are dropped.
func Segment(lines []Line, format constants.Format) []Block {
	anchorRe := cuitAnchorRe
	if format == constants.FormatLicense {
		anchorRe = licenseAnchorRe
	}

	var blocks []Block
	var current *Block
	collecting := false

	for _, line := range lines {
		if !collecting {
			if isHeaderLine(line.Text, format) {
				collecting = true
				continue // the header line itself is never record data
			}
			if anchorRe.MatchString(line.Text) {
				collecting = true // fragment with no header: start here
			} else {
				continue
			}
		}

		if m := anchorRe.FindString(line.Text); m != "" {
			if current != nil {
				blocks = append(blocks, *current)
			}
			current = &Block{Anchor: m, Lines: []Line{line}}
			continue
		}
		if current != nil {
			current.Lines = append(current.Lines, line)
		}
		// A non-anchor line right after the header with no open block is
		// stray column furniture; drop it.
	}
	if current != nil {
		blocks = append(blocks, *current)
	}
	return blocks
}

func isHeaderLine(text string, format constants.Format) bool {
	folded := gazetteer.Fold(text)
	if format == constants.FormatLicense {
		return strings.Contains(folded, "CELULAR") ||
			strings.Contains(folded, "CATEGORIA")
	}
	return strings.Contains(folded, "CUIT")
}
