package booking

import (
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validDate reports whether s is a real Gregorian calendar date written
// exactly as YYYY-MM-DD. The textual pattern check rejects alternate
// separators and stray characters; the fixed-layout parse rejects
// out-of-range components; the round-trip comparison rejects anything
// the parser normalized instead of failing on. time.Parse with a fixed
// layout is locale- and timezone-independent.
func validDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(dateLayout) == s
}
