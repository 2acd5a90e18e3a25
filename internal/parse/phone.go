package parse

import (
	"regexp"
	"strings"
)

// Argentine mobile canonical form: +54 9 <area> <subscriber>. Area codes
// run 2-4 digits, subscribers 6-8; together they always total 10 digits,
// but listing data is messy enough that only the minimums are enforced.
const (
	minAreaDigits       = 2
	minSubscriberDigits = 6
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizePhone canonicalizes one area-code + subscriber pair. Non-digits
// are stripped from each segment independently, a leading trunk "0" is
// dropped from the area code, and the legacy "15" mobile prefix is dropped
// from the subscriber when it still leaves a full-length number behind.
// Returns the dialable string and the bare digit key used for dedup.
func NormalizePhone(area, subscriber string) (canonical, key string, ok bool) {
	area = nonDigitRe.ReplaceAllString(area, "")
	subscriber = nonDigitRe.ReplaceAllString(subscriber, "")

	area = strings.TrimPrefix(area, "0")
	if strings.HasPrefix(subscriber, "15") && len(subscriber) >= minSubscriberDigits+2 {
		subscriber = subscriber[2:]
	}

	if len(area) < minAreaDigits || len(subscriber) < minSubscriberDigits {
		return "", "", false
	}
	return "+54 9 " + area + " " + subscriber, area + subscriber, true
}

// PhoneSet accumulates normalized phones for one record, deduplicating by
// digit key so the same number formatted two ways is stored once.
type PhoneSet struct {
	seen map[string]struct{}
	list []string
}

func NewPhoneSet() *PhoneSet {
	return &PhoneSet{seen: make(map[string]struct{})}
}

// Add normalizes and appends a number. Duplicates (by digit key) and
// rejects are silently dropped; the return value reports whether the list
// grew.
func (s *PhoneSet) Add(area, subscriber string) bool {
	canonical, key, ok := NormalizePhone(area, subscriber)
	if !ok {
		return false
	}
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	s.list = append(s.list, canonical)
	return true
}

// List returns the accumulated numbers in insertion order.
func (s *PhoneSet) List() []string {
	return s.list
}

// Primary returns the first number, or "" when none were accepted.
func (s *PhoneSet) Primary() string {
	if len(s.list) == 0 {
		return ""
	}
	return s.list[0]
}
