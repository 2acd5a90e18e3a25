package parse

import (
	"strings"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

// Detection is the outcome of format detection. Confident is false only
// when no signature matched and the engine fell back to the default; the
// caller can surface that as a low-confidence run.
type Detection struct {
	Format    constants.Format
	Confident bool
}

// DetectFormat classifies a raw text blob as one of the two publisher
// layouts. An explicit hint short-circuits detection and is trusted as-is.
// Signatures are matched on the pre-normalization blob so header tokens
// anywhere in the document count. With no signature and no hint the
// tax-id format wins by default.
func DetectFormat(text string, hint constants.Publisher) Detection {
	if f := constants.FormatFor(hint); f != "" {
		return Detection{Format: f, Confident: true}
	}

	folded := gazetteer.Fold(text)

	// The CUIT column header only ever appears in the tax-id layout.
	if strings.Contains(folded, "CUIT") {
		return Detection{Format: constants.FormatTaxID, Confident: true}
	}
	// The license layout is the only one with a category + cellphone
	// header pair.
	if strings.Contains(folded, "CELULAR") &&
		(strings.Contains(folded, "CATEGORIA") || strings.Contains(folded, "CAT.")) {
		return Detection{Format: constants.FormatLicense, Confident: true}
	}

	return Detection{Format: constants.FormatTaxID, Confident: false}
}
