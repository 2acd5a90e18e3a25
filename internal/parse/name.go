package parse

import (
	"regexp"
	"strings"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

// addressKeywords are tokens that reliably begin an address span in the
// listings: street/route/block/lot/floor abbreviations. Folded spelling.
var addressKeywords = map[string]bool{
	"AV":       true,
	"AVDA":     true,
	"AVENIDA":  true,
	"CALLE":    true,
	"PJE":      true,
	"PASAJE":   true,
	"RUTA":     true,
	"BARRIO":   true,
	"B":        true, // "B°" folds to "B"
	"MZA":      true,
	"MANZANA":  true,
	"LOTE":     true,
	"CASA":     true,
	"DPTO":     true,
	"DEPTO":    true,
	"PISO":     true,
	"KM":       true,
	"ESQ":      true,
	"ESQUINA":  false, // locality in the northeast list, never an address start
	"SECTOR":   true,
	"EDIFICIO": true,
}

// phonePrefixTokens precede phone numbers in free text.
var phonePrefixTokens = map[string]bool{
	"TEL":  true,
	"TE":   true,
	"CEL":  true,
	"CELU": true,
	"+54":  true,
	"15":   true,
}

var numericTokenRe = regexp.MustCompile(`^\d+$`)

// trimToken strips the punctuation that rides along with tokens after
// space-joining listing lines.
func trimToken(t string) string {
	return strings.Trim(t, ".,;:()-°")
}

// tokensOf splits text into punctuation-trimmed tokens, dropping the ones
// that were pure punctuation.
func tokensOf(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		if tt := trimToken(t); tt != "" {
			out = append(out, tt)
		}
	}
	return out
}

// isNameStop reports whether a token ends the name accumulator: a
// standalone number, an address keyword, a province name of the
// publisher, or a phone prefix.
func isNameStop(token string, pub constants.Publisher, gaz *gazetteer.Gazetteer) bool {
	t := trimToken(token)
	if t == "" {
		return false
	}
	if numericTokenRe.MatchString(t) {
		return true
	}
	folded := gazetteer.Fold(t)
	if addressKeywords[folded] {
		return true
	}
	if phonePrefixTokens[folded] {
		return true
	}
	if gaz != nil && gaz.StartsProvince(t, pub) {
		return true
	}
	return false
}

// scanName accumulates name words from the front of a token sequence
// until a stop condition fires or the 4-word cap is reached. Returns the
// name and the index of the first token not consumed.
func scanName(tokens []string, pub constants.Publisher, gaz *gazetteer.Gazetteer) (string, int) {
	var words []string
	i := 0
	for ; i < len(tokens) && len(words) < MaxNameWords; i++ {
		t := trimToken(tokens[i])
		if t == "" {
			continue
		}
		if isNameStop(tokens[i], pub, gaz) {
			break
		}
		words = append(words, t)
	}
	return strings.Join(words, " "), i
}
