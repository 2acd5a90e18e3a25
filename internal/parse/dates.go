package parse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// months maps Spanish 3-letter month abbreviations (plus the alternate
// "set"/"sept" spellings that show up in some listings) to calendar
// months.
var months = map[string]time.Month{
	"ene":  time.January,
	"feb":  time.February,
	"mar":  time.March,
	"abr":  time.April,
	"may":  time.May,
	"jun":  time.June,
	"jul":  time.July,
	"ago":  time.August,
	"sep":  time.September,
	"set":  time.September,
	"sept": time.September,
	"oct":  time.October,
	"nov":  time.November,
	"dic":  time.December,
}

var shortDateRe = regexp.MustCompile(`^(\d{1,2})[-/](\p{L}{3,4})[-/](\d{2})$`)

// centuryPivot: 2-digit years under 50 are 2000s, the rest 1900s.
const centuryPivot = 50

// ParseShortDate converts a day-month-abbreviation-2-digit-year token
// ("31-dic-25") into a calendar date. Returns nil on any non-match; a
// malformed date degrades the record, it never aborts the block.
func ParseShortDate(token string) *time.Time {
	m := shortDateRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return nil
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return nil
	}
	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return nil
	}
	yy, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	year := 1900 + yy
	if yy < centuryPivot {
		year = 2000 + yy
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return nil // day overflowed the month (e.g. 31-feb)
	}
	return &d
}
