// Package parse implements the record extraction engine: it turns the
// plain text recovered from a listing PDF into structured technician
// records. The text has no reliable column delimiters, so everything here
// is precedence-ordered pattern matching.
package parse

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MinNameLength is the shortest full name accepted for a record.
const MinNameLength = 3

// MaxNameWords caps the name accumulator; listing names follow the
// APELLIDO + NOMBRE convention and never exceed four words.
const MaxNameWords = 4

// Record is one technician recovered from a candidate block. It lives for
// a single ingestion run and is discarded after import.
type Record struct {
	Name                string
	Email               *string
	LicenseNumber       string
	Locality            *string
	Province            *string
	Phone               *string
	Phones              []string
	TaxID               *string
	Address             *string
	PostalCode          *string
	Category            *string
	CategoryDescription *string
	ValidUntilRaw       *string
	LicenseExpiry       *time.Time
}

// Valid reports whether the record clears minimum-name validation.
// Invalid records never reach the importer.
func (r *Record) Valid() bool {
	if r == nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(r.Name)) >= MinNameLength
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
