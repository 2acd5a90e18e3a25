package parse

import (
	"log/slog"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

// FieldExtractor turns one candidate block into a record, or nil when the
// block cannot yield a valid name.
type FieldExtractor interface {
	Extract(block Block) *Record
}

// ExtractorFor returns the extraction strategy for a format.
func ExtractorFor(format constants.Format, gaz *gazetteer.Gazetteer, logger *slog.Logger) FieldExtractor {
	if format == constants.FormatLicense {
		return NewLicenseExtractor(gaz, logger)
	}
	return NewTaxIDExtractor(gaz, logger)
}
