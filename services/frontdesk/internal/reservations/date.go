package reservations

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// ParseDate parses a dd/mm/yyyy date. It reports false when a component is
// missing, non-numeric or zero.
//
// Day and month are not range-checked against each other: out of range
// values roll over the way time.Date normalises them, so 31/02/2024 yields
// 2 March 2024.
func ParseDate(text string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n == 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}

	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// FormatDate renders t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d", t.Day(), int(t.Month()), t.Year())
}

// ParseISODate parses the yyyy-mm-dd value sent by date inputs.
func ParseISODate(text string) (time.Time, bool) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ISODate converts a stored dd/mm/yyyy date into a date input value.
func ISODate(display string) string {
	t, ok := ParseDate(display)
	if !ok {
		return ""
	}
	return t.Format(isoLayout)
}

// DisplayDate accepts either format and returns the dd/mm/yyyy form.
func DisplayDate(text string) (string, bool) {
	if t, ok := ParseISODate(text); ok {
		return FormatDate(t), true
	}
	if t, ok := ParseDate(text); ok {
		return FormatDate(t), true
	}
	return "", false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
