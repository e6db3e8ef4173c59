package degree

import (
	"fmt"
	"time"
)

// TermCode maps a calendar date to the institution's term code: a year offset
// from 1900 followed by a term digit (January–April = 1, May–August = 5,
// September–December = 9). 1999-09 yields "999", 2026-01 yields "1261".
//
// This is the single canonical implementation of the rule; both the sync job
// and anything reasoning about "the current term" go through it.
func TermCode(t time.Time) string {
	var termDigit int
	switch m := int(t.Month()); {
	case m <= 4:
		termDigit = 1
	case m <= 8:
		termDigit = 5
	default:
		termDigit = 9
	}
	return fmt.Sprintf("%d%d", t.Year()-1900, termDigit)
}
