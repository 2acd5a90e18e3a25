package parse

import (
	"fmt"
	"hash/fnv"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gasdir-ar/gasdir/constants"
	"github.com/gasdir-ar/gasdir/internal/gazetteer"
)

// taxIDRules is the ordered extraction table for the tax-id (CUIT) layout.
// Precedence matters: the CUIT is captured and masked before any phone
// rule runs, and postal/phone/date spans are blanked before the address
// scan so nothing bleeds across fields.
var taxIDRules = []rule{
	{name: "cuit", field: fieldTaxID,
		re: regexp.MustCompile(`\b((?:20|23|24|27|30|33|34)\d{9}|(?:20|23|24|27|30|33|34)-\d{8}-\d)\b`)},
	{name: "email", field: fieldEmail,
		re: regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)},
	{name: "expiry", field: fieldDate,
		re: regexp.MustCompile(`\b\d{1,2}[-/]\p{L}{3,4}[-/]\d{2}\b`)},
	{name: "category", field: fieldCategory,
		re: regexp.MustCompile(`\bM[\s-]?[123]\b`)},
	{name: "postal", field: fieldPostal,
		re: regexp.MustCompile(`\bC\.?P\.?:?\s*(\d{4})\b`)},
	// Two numbers share one field: "03783 422110/15683421". The second
	// inherits the area code when it has no room for one of its own.
	{name: "phone-pair", field: fieldPhonePair, multi: true,
		re: regexp.MustCompile(`\(?0?(\d{2,4})\)?[\s.-]+(\d{6,8})\s*/\s*(\d{4,10})\b`)},
	{name: "phone", field: fieldPhone, multi: true,
		re: regexp.MustCompile(`\b0?(\d{2,4})\)?[\s.-]+(\d{6,8})\b`)},
}

// streetRe is the weak address fallback when no postal marker exists: a
// street-looking run of words ending in a house number. Phone and email
// spans are already masked when this runs.
var streetRe = regexp.MustCompile(`(?:\p{Lu}[\p{L}.°]*\s+){1,4}\d{1,5}\b`)

// TaxIDExtractor recovers records from the tax-id format, where blocks
// read: LOCALITY NAME CUIT ADDRESS CP PHONES [MAT] CATEGORY EXPIRY.
type TaxIDExtractor struct {
	gaz    *gazetteer.Gazetteer
	logger *slog.Logger
}

func NewTaxIDExtractor(gaz *gazetteer.Gazetteer, logger *slog.Logger) *TaxIDExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaxIDExtractor{gaz: gaz, logger: logger}
}

// Extract parses one candidate block. Returns nil when the block cannot
// yield a valid name.
func (e *TaxIDExtractor) Extract(block Block) *Record {
	text := block.Text()
	captures, masked := applyRules(text, taxIDRules)

	cuit := first(captures, fieldTaxID)
	if cuit == nil {
		// Anchored blocks always carry a CUIT; a miss means the anchor
		// was part of a longer digit run and the block is garbage.
		e.logger.Debug("extract.taxid.no_cuit", "text", text)
		return nil
	}
	taxID := nonDigitRe.ReplaceAllString(cuit.groups[1], "")

	rec := &Record{
		TaxID:         &taxID,
		LicenseNumber: licenseFromTaxID(taxID),
	}

	// Everything before the CUIT is locality + name.
	head := tokensOf(masked[:cuit.start])
	locality, consumed := e.gaz.MatchLocalityPrefix(head)
	if consumed > 0 {
		rec.Locality = &locality
	}
	name, _ := scanName(head[consumed:], constants.PublisherA, e.gaz)
	rec.Name = name

	e.fillCommon(rec, captures, masked, cuit.end)

	// This format has no province column: infer from locality, then from
	// the first phone's area code.
	if rec.Locality != nil {
		if prov, ok := e.gaz.ProvinceForLocality(*rec.Locality); ok {
			rec.Province = &prov
		}
	}
	if rec.Province == nil && rec.Phone != nil {
		if prov, ok := e.gaz.ProvinceForAreaCode(areaOf(*rec.Phone)); ok {
			rec.Province = &prov
		}
	}

	if !rec.Valid() {
		e.logger.Debug("extract.taxid.rejected", "name", rec.Name, "tax_id", taxID)
		return nil
	}
	return rec
}

// fillCommon populates email, expiry, category, postal, phones and
// address from rule captures. Shared with nothing else; split out to keep
// Extract readable.
func (e *TaxIDExtractor) fillCommon(rec *Record, captures []capture, masked string, tailStart int) {
	if c := first(captures, fieldEmail); c != nil {
		rec.Email = strptr(c.groups[0])
	}
	if c := first(captures, fieldDate); c != nil {
		rec.ValidUntilRaw = strptr(c.groups[0])
		rec.LicenseExpiry = ParseShortDate(c.groups[0])
	}
	if c := first(captures, fieldCategory); c != nil {
		if cat, ok := constants.CanonicalizeCategory(c.groups[0]); ok {
			rec.Category = strptr(string(cat))
			rec.CategoryDescription = strptr(constants.Describe(cat))
		}
	}

	phones := NewPhoneSet()
	for _, c := range all(captures, fieldPhonePair) {
		phones.Add(c.groups[1], c.groups[2])
		addSecondNumber(phones, c.groups[1], c.groups[3])
	}
	for _, c := range all(captures, fieldPhone) {
		phones.Add(c.groups[1], c.groups[2])
	}
	rec.Phones = phones.List()
	rec.Phone = strptr(phones.Primary())

	postal := first(captures, fieldPostal)
	if postal != nil {
		rec.PostalCode = strptr(postal.groups[1])
	}

	// Address: text between the anchor and the postal marker; without a
	// marker, fall back to the street heuristic over the masked tail.
	if postal != nil && postal.start > tailStart {
		rec.Address = strptr(collapse(masked[tailStart:postal.start]))
	} else {
		tail := masked[tailStart:]
		if m := streetRe.FindString(tail); m != "" {
			rec.Address = strptr(collapse(m))
		}
	}
}

// addSecondNumber handles the B side of an "A/B" phone pair. With 9+
// digits (and no legacy "15" spelling) it is self-contained: the last 6
// are the subscriber, the rest its own area code. Anything shorter
// inherits the first number's area code.
func addSecondNumber(phones *PhoneSet, inheritedArea, second string) {
	digits := nonDigitRe.ReplaceAllString(second, "")
	if len(digits) >= 9 && !strings.HasPrefix(digits, "15") {
		phones.Add(digits[:len(digits)-6], digits[len(digits)-6:])
		return
	}
	phones.Add(inheritedArea, digits)
}

// licenseFromTaxID synthesizes the stable dedup key for a format that
// carries no explicit license number.
func licenseFromTaxID(taxID string) string {
	h := fnv.New32a()
	h.Write([]byte(taxID))
	return fmt.Sprintf("%08x", h.Sum32())
}

func areaOf(canonical string) string {
	parts := strings.Fields(canonical) // "+54 9 3783 123456"
	if len(parts) < 4 {
		return ""
	}
	return parts[2]
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
