package constants

import "strings"

// Publisher identifies the issuing authority whose PDF layout determines
// the extraction format.
type Publisher string

// Stable values (store these exact strings in DB).
const (
	PublisherA Publisher = "PUBLISHER_A" // northeast distributor, tax-id (CUIT) column layout
	PublisherB Publisher = "PUBLISHER_B" // northwest distributor, license-number/category layout
	Auto       Publisher = "AUTO"        // let the detector decide
)

// Format tags the line-level layout of a listing.
type Format string

const (
	FormatTaxID   Format = "TAXID"   // records anchored on an 11-digit CUIT
	FormatLicense Format = "LICENSE" // records anchored on license number + category token
)

// Profession is the fixed profession literal for this document class.
const Profession = "GASISTA MATRICULADO"

// FormatFor maps a publisher to its listing format. AUTO has no format of
// its own and falls through to the zero value.
func FormatFor(p Publisher) Format {
	switch p {
	case PublisherA:
		return FormatTaxID
	case PublisherB:
		return FormatLicense
	}
	return ""
}

// PublisherFor is the inverse of FormatFor.
func PublisherFor(f Format) Publisher {
	if f == FormatLicense {
		return PublisherB
	}
	return PublisherA
}

// ParsePublisher canonicalizes a CLI/env publisher string.
func ParsePublisher(s string) (Publisher, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PUBLISHER_A", "A":
		return PublisherA, true
	case "PUBLISHER_B", "B":
		return PublisherB, true
	case "AUTO", "":
		return Auto, true
	}
	return Auto, false
}
