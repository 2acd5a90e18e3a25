package constants

import "strings"

// Category is the license category of a technician. The set is closed:
// listings only ever carry the three matricula grades.
type Category string

const (
	CategoryM1 Category = "M1"
	CategoryM2 Category = "M2"
	CategoryM3 Category = "M3"
)

var allCategories = []Category{CategoryM1, CategoryM2, CategoryM3}

// descriptions maps each category to its human-readable grade. Derived
// data only; never stored independently of the category itself.
var descriptions = map[Category]string{
	CategoryM1: "Instalador de primera categoría",
	CategoryM2: "Instalador de segunda categoría",
	CategoryM3: "Instalador de tercera categoría",
}

// Describe returns the human-readable description for a category, or ""
// for an unknown one.
func Describe(c Category) string {
	return descriptions[c]
}

// AllCategories returns the closed category set as strings.
func AllCategories() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CanonicalizeCategory maps the spellings seen in the listings (M1, M-1,
// M 1) onto the canonical token.
func CanonicalizeCategory(input string) (Category, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return "", false
}
