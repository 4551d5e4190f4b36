package reservations

import "strings"

// Status is the closed set of reservation states.
type Status string

const (
	StatusConfirmed Status = "Confirmada"
	StatusPending   Status = "Pendiente"
	StatusCancelled Status = "Cancelada"
)

// DefaultStatus is applied when the form leaves the status blank.
const DefaultStatus = StatusPending

// Visual classes shared with the table status badges.
const (
	ClassAvailable = "available"
	ClassCleaning  = "cleaning"
	ClassOccupied  = "occupied"
)

var statusClasses = map[Status]string{
	StatusConfirmed: ClassAvailable,
	StatusPending:   ClassCleaning,
	StatusCancelled: ClassOccupied,
}

// Statuses lists the states in form order.
var Statuses = []Status{StatusConfirmed, StatusPending, StatusCancelled}

// ParseStatus matches text case-insensitively against the enumeration.
func ParseStatus(text string) (Status, bool) {
	text = strings.TrimSpace(text)
	for _, s := range Statuses {
		if strings.EqualFold(text, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Class returns the badge class for a status text. Records imported with a
// status outside the enumeration are kept as they are and fall back to
// ClassAvailable.
func Class(status string) string {
	s, ok := ParseStatus(status)
	if !ok {
		return ClassAvailable
	}
	return statusClasses[s]
}

func (s Status) String() string {
	return string(s)
}
