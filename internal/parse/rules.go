package parse

import "regexp"

// field names a slot a rule captures into.
type field int

const (
	fieldTaxID field = iota
	fieldLicense
	fieldEmail
	fieldDate
	fieldCategory
	fieldPostal
	fieldPhonePair
	fieldPhone
)

// rule is one entry of a format's ordered extraction table. Rules are
// evaluated strictly in table order and every match is masked out of the
// working text before lower-precedence rules run, so a tax id can never be
// re-captured as a phone number and address scanning never sees phone or
// email fragments.
type rule struct {
	name  string
	field field
	re    *regexp.Regexp
	multi bool // collect every match, not just the first
}

// capture is one rule hit: the submatch groups plus the span it occupied
// in the working text.
type capture struct {
	field  field
	groups []string
	start  int
	end    int
}

// applyRules runs an ordered rule table over a block's text. It returns
// the captures (in table order) and the text with every captured span
// blanked, which is what the name/address scans operate on.
func applyRules(text string, rules []rule) ([]capture, string) {
	working := []byte(text)
	var captures []capture

	for _, r := range rules {
		matches := r.re.FindAllSubmatchIndex(working, -1)
		if matches == nil {
			continue
		}
		if !r.multi {
			matches = matches[:1]
		}
		for _, idx := range matches {
			groups := make([]string, len(idx)/2)
			for g := 0; g < len(idx)/2; g++ {
				if idx[2*g] < 0 {
					continue
				}
				groups[g] = string(working[idx[2*g]:idx[2*g+1]])
			}
			captures = append(captures, capture{
				field:  r.field,
				groups: groups,
				start:  idx[0],
				end:    idx[1],
			})
			for i := idx[0]; i < idx[1]; i++ {
				working[i] = ' '
			}
		}
	}
	return captures, string(working)
}

// first returns the first capture for a field, or nil.
func first(captures []capture, f field) *capture {
	for i := range captures {
		if captures[i].field == f {
			return &captures[i]
		}
	}
	return nil
}

// all returns every capture for a field, preserving order.
func all(captures []capture, f field) []capture {
	var out []capture
	for _, c := range captures {
		if c.field == f {
			out = append(out, c)
		}
	}
	return out
}
