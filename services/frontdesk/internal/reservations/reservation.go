package reservations

import "strings"

// DefaultAvatar is the placeholder image for guests without a picture.
const DefaultAvatar = "img/default-user.png"

// Reservation is one booking shown on the front desk table.
type Reservation struct {
	ID        string `json:"id"`
	GuestName string `json:"guest_name"`
	AvatarRef string `json:"avatar_ref"`
	RoomLabel string `json:"room_label"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
}

// Fields holds everything a form can change. The id is never part of it.
type Fields struct {
	GuestName string `json:"guest_name" validate:"required"`
	AvatarRef string `json:"avatar_ref"`
	RoomLabel string `json:"room_label" validate:"required"`
	CheckIn   string `json:"check_in" validate:"required"`
	CheckOut  string `json:"check_out" validate:"required"`
	Status    string `json:"status"`
}

// New builds a reservation from form fields.
func New(id string, f Fields) Reservation {
	r := Reservation{ID: id}
	r.apply(f)
	return r
}

// Fields returns the editable part of r.
func (r Reservation) Fields() Fields {
	return Fields{
		GuestName: r.GuestName,
		AvatarRef: r.AvatarRef,
		RoomLabel: r.RoomLabel,
		CheckIn:   r.CheckIn,
		CheckOut:  r.CheckOut,
		Status:    r.Status,
	}
}

func (r *Reservation) apply(f Fields) {
	r.GuestName = f.GuestName
	r.AvatarRef = f.AvatarRef
	if strings.TrimSpace(r.AvatarRef) == "" {
		r.AvatarRef = DefaultAvatar
	}
	r.RoomLabel = f.RoomLabel
	r.CheckIn = f.CheckIn
	r.CheckOut = f.CheckOut
	r.Status = f.Status
}

// Normalize trims every field and fills the defaults a form submission
// relies on: blank status becomes DefaultStatus, a known status gets its
// canonical spelling and dates are converted to dd/mm/yyyy.
func (f Fields) Normalize() Fields {
	out := Fields{
		GuestName: strings.TrimSpace(f.GuestName),
		AvatarRef: strings.TrimSpace(f.AvatarRef),
		RoomLabel: strings.TrimSpace(f.RoomLabel),
		CheckIn:   strings.TrimSpace(f.CheckIn),
		CheckOut:  strings.TrimSpace(f.CheckOut),
		Status:    strings.TrimSpace(f.Status),
	}

	if out.AvatarRef == "" {
		out.AvatarRef = DefaultAvatar
	}

	if out.Status == "" {
		out.Status = DefaultStatus.String()
	} else if s, ok := ParseStatus(out.Status); ok {
		out.Status = s.String()
	}

	if d, ok := DisplayDate(out.CheckIn); ok {
		out.CheckIn = d
	}
	if d, ok := DisplayDate(out.CheckOut); ok {
		out.CheckOut = d
	}

	return out
}
