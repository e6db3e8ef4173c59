package degree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTermCode(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"1996-01-15", "961"},
		{"1996-05-01", "965"},
		{"1999-12-31", "999"},
		// Century rollover keeps the 1900 offset, widening to three digits.
		{"2000-01-01", "1001"},
		{"2012-09-06", "1129"},
		{"2026-01-05", "1261"},
		{"2026-04-30", "1261"},
		{"2026-05-01", "1265"},
		{"2026-08-31", "1265"},
		{"2026-09-01", "1269"},
		{"2026-12-31", "1269"},
	}
	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, TermCode(date), "date %s", tt.date)
	}
}
