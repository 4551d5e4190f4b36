package reservations

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Criteria is the active filter set. Empty fields are inactive and active
// fields are combined with AND.
type Criteria struct {
	// Text is matched as a case-insensitive substring of the id or the
	// guest name.
	Text string `json:"text"`
	// Status must equal the record status, ignoring case.
	Status string `json:"status"`
	// Date is a yyyy-mm-dd or dd/mm/yyyy day compared with the check-in.
	Date string `json:"date"`
}

func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Text) == "" &&
		strings.TrimSpace(c.Status) == "" &&
		strings.TrimSpace(c.Date) == ""
}

// Query keeps the records passing every active criterion, in their
// original order. records is never modified.
func Query(records []Reservation, c Criteria) []Reservation {
	m := newMatcher(c)
	out := make([]Reservation, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

type matcher struct {
	fold   cases.Caser
	text   string
	status string
	day    time.Time
	dayOn  bool
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.text = m.fold.String(strings.TrimSpace(c.Text))
	m.status = m.fold.String(strings.TrimSpace(c.Status))

	date := strings.TrimSpace(c.Date)
	if date != "" {
		if t, ok := ParseISODate(date); ok {
			m.day, m.dayOn = t, true
		} else if t, ok := ParseDate(date); ok {
			m.day, m.dayOn = t, true
		}
	}
	return m
}

func (m *matcher) match(r Reservation) bool {
	if m.text != "" {
		if !strings.Contains(m.fold.String(r.ID), m.text) &&
			!strings.Contains(m.fold.String(r.GuestName), m.text) {
			return false
		}
	}

	if m.status != "" && m.fold.String(strings.TrimSpace(r.Status)) != m.status {
		return false
	}

	if m.dayOn {
		checkIn, ok := ParseDate(r.CheckIn)
		if !ok || !sameDay(checkIn, m.day) {
			return false
		}
	}

	return true
}
