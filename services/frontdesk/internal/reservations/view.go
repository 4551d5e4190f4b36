package reservations

// Row is the display form of a reservation.
type Row struct {
	Position    int    `json:"position"`
	ID          string `json:"id"`
	GuestName   string `json:"guest_name"`
	AvatarRef   string `json:"avatar_ref"`
	RoomLabel   string `json:"room_label"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Status      string `json:"status"`
	StatusClass string `json:"status_class"`
}

// Project maps records to rows, numbering them from 1.
func Project(records []Reservation) []Row {
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		avatar := r.AvatarRef
		if avatar == "" {
			avatar = DefaultAvatar
		}
		rows = append(rows, Row{
			Position:    i + 1,
			ID:          r.ID,
			GuestName:   r.GuestName,
			AvatarRef:   avatar,
			RoomLabel:   r.RoomLabel,
			CheckIn:     r.CheckIn,
			CheckOut:    r.CheckOut,
			Status:      r.Status,
			StatusClass: Class(r.Status),
		})
	}
	return rows
}
