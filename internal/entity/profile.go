package entity

import (
	"time"

	"github.com/gasdir-ar/gasdir/constants"
)

// Profile is one technician row in the directory, keyed by
// (publisher, license number). Rows are created on first sighting and
// updated additively on every subsequent one; this subsystem never
// deletes them.
type Profile struct {
	Publisher           constants.Publisher `json:"publisher"`
	LicenseNumber       string              `json:"license_number"`
	FullName            string              `json:"full_name"`
	Phone               *string             `json:"phone,omitempty"`
	Phones              []string            `json:"phones,omitempty"`
	Email               *string             `json:"email,omitempty"`
	TaxID               *string             `json:"tax_id,omitempty"`
	Profession          string              `json:"profession"`
	Locality            *string             `json:"locality,omitempty"`
	Province            *string             `json:"province,omitempty"`
	Address             *string             `json:"address,omitempty"`
	PostalCode          *string             `json:"postal_code,omitempty"`
	Category            *string             `json:"category,omitempty"`
	CategoryDescription *string             `json:"category_description,omitempty"`
	LicenseExpiry       *time.Time          `json:"license_expiry,omitempty"`
	Source              *string             `json:"source,omitempty"`
	FirstSeenAt         time.Time           `json:"first_seen_at"`
	LastSeenAt          time.Time           `json:"last_seen_at"`
}
