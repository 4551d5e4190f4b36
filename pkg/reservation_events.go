package pkg

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// ReservationsTopic carries every change applied at the front desk.
	ReservationsTopic = "reservations.changes"

	EventReservationCreated = "reservation.created"
	EventReservationUpdated = "reservation.updated"
	EventReservationDeleted = "reservation.deleted"
)

// ReservationEvent is the payload published on ReservationsTopic. Deleted
// events carry the last known state of the reservation.
type ReservationEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	ReservationID string    `json:"reservation_id"`
	GuestName     string    `json:"guest_name"`
	RoomLabel     string    `json:"room_label"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Status        string    `json:"status"`
	Source        string    `json:"source,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewReservationEvent stamps an event with a fresh id and the current time.
func NewReservationEvent(eventType, reservationID string) ReservationEvent {
	return ReservationEvent{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		ReservationID: reservationID,
		OccurredAt:    time.Now().UTC(),
	}
}

// DecodeReservationEvent parses a payload received from ReservationsTopic.
func DecodeReservationEvent(data []byte) (ReservationEvent, error) {
	var ev ReservationEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return ReservationEvent{}, fmt.Errorf("decode reservation event: %w", err)
	}
	if ev.EventType == "" {
		return ReservationEvent{}, fmt.Errorf("decode reservation event: missing event_type")
	}
	return ev, nil
}
