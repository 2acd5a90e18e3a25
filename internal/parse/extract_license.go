package parse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

// licenseRules is the ordered extraction table for the license-number
// layout. The leading license+category pair is captured first so the name
// scan never sees it. Phone matching is deliberately restricted to the
// fully-qualified international pattern: the looser area-code forms kept
// capturing fragments of the neighbouring record's data, so they are
// excluded here on purpose.
var licenseRules = []rule{
	{name: "license", field: fieldLicense,
		re: regexp.MustCompile(`^(\d{1,4})\s+(M[\s-]?[123])\b`)},
	{name: "email", field: fieldEmail,
		re: regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{name: "expiry", field: fieldDate,
		re: regexp.MustCompile(`\b\d{1,2}[-/]\p{L}{3,4}[-/]\d{2}\b`)},
	{name: "postal", field: fieldPostal,
		re: regexp.MustCompile(`\bC\.?P\.?:?\s*(\d{4})\b`)},
	{name: "phone-intl", field: fieldPhone, multi: true,
		re: regexp.MustCompile(`\+54[\s.-]*(?:9[\s.-]*)?\(?0?(\d{2,4})\)?[\s.-]*(\d{6,8})\b`)},
}

// LicenseExtractor recovers records from the license-number format, where
// blocks read: MAT CATEGORY NAME ADDRESS [LOCALITY] PROVINCE [CP] PHONE
// EXPIRY.
type LicenseExtractor struct {
	gaz    *gazetteer.Gazetteer
	logger *slog.Logger
}

func NewLicenseExtractor(gaz *gazetteer.Gazetteer, logger *slog.Logger) *LicenseExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LicenseExtractor{gaz: gaz, logger: logger}
}

// Extract parses one candidate block. Returns nil when the block cannot
// yield a valid name.
func (e *LicenseExtractor) Extract(block Block) *Record {
	text := block.Text()
	captures, masked := applyRules(text, licenseRules)

	lic := first(captures, fieldLicense)
	if lic == nil {
		e.logger.Debug("extract.license.no_anchor", "text", text)
		return nil
	}

	rec := &Record{LicenseNumber: lic.groups[1]}
	if cat, ok := constants.CanonicalizeCategory(lic.groups[2]); ok {
		rec.Category = strptr(string(cat))
		rec.CategoryDescription = strptr(constants.Describe(cat))
	}

	if c := first(captures, fieldEmail); c != nil {
		rec.Email = strptr(c.groups[0])
	}
	if c := first(captures, fieldDate); c != nil {
		rec.ValidUntilRaw = strptr(c.groups[0])
		rec.LicenseExpiry = ParseShortDate(c.groups[0])
	}
	if c := first(captures, fieldPostal); c != nil {
		rec.PostalCode = strptr(c.groups[1])
	}

	phones := NewPhoneSet()
	for _, c := range all(captures, fieldPhone) {
		phones.Add(c.groups[1], c.groups[2])
	}
	rec.Phones = phones.List()
	rec.Phone = strptr(phones.Primary())

	// Past the anchor: name, then address, then place names.
	tokens := tokensOf(masked[lic.end:])
	name, nameEnd := scanName(tokens, constants.PublisherB, e.gaz)
	rec.Name = name

	rest := tokens[nameEnd:]
	cut := len(rest)

	if locality, start, _, ok := e.gaz.FindLocality(rest); ok {
		rec.Locality = &locality
		if start < cut {
			cut = start
		}
	}
	if prov, start, ok := e.gaz.FindProvince(rest, constants.PublisherB); ok {
		rec.Province = &prov
		if start < cut {
			cut = start
		}
	} else if rec.Locality != nil {
		// Province written only as part of the locality name.
		if prov, ok := e.gaz.ProvinceForLocality(*rec.Locality); ok {
			rec.Province = &prov
		}
	}

	if addr := strings.Join(rest[:cut], " "); addr != "" {
		rec.Address = &addr
	}

	if !rec.Valid() {
		e.logger.Debug("extract.license.rejected", "name", rec.Name, "license", rec.LicenseNumber)
		return nil
	}
	return rec
}
