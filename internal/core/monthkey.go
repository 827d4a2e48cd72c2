package core

import (
	"fmt"
	"strings"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM". Transaction dates start
// with the same prefix, so membership is a prefix match.
type MonthKey string

// MonthKeyOf returns the key for the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())))
}

// Prev returns the key for the preceding month. January wraps to December of
// the previous year instead of producing a month number of zero.
func (k MonthKey) Prev() MonthKey {
	var year, month int
	if _, err := fmt.Sscanf(string(k), "%d-%d", &year, &month); err != nil {
		return k
	}
	month--
	if month < 1 {
		month = 12
		year--
	}
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month))
}

// Window returns n month keys ending at ref, most recent first.
func Window(ref time.Time, n int) []MonthKey {
	if n <= 0 {
		return nil
	}
	keys := make([]MonthKey, 0, n)
	k := MonthKeyOf(ref)
	for i := 0; i < n; i++ {
		keys = append(keys, k)
		k = k.Prev()
	}
	return keys
}

// Contains reports whether the dated entry belongs to this month.
func (k MonthKey) Contains(date string) bool {
	return strings.HasPrefix(date, string(k))
}
