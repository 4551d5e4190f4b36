package reservations

import (
	"context"
	"time"
)

// Dialog presents modal interactions to the user. Implementations block
// until the user answers or ctx is done. Only one dialog is open at a time.
type Dialog interface {
	// ShowForm asks for reservation fields. A cancelled form returns a
	// result with Confirmed unset.
	ShowForm(ctx context.Context, form Form) (FormResult, error)
	// ShowConfirm asks a yes/no question and reports whether the user
	// confirmed.
	ShowConfirm(ctx context.Context, c Confirmation) (bool, error)
	// ShowMessage displays a notice or a read-only detail.
	ShowMessage(ctx context.Context, m Message) error
	// ShowValidationError attaches text to the form that is still open. The
	// next ShowForm call renders it.
	ShowValidationError(ctx context.Context, text string) error
}

// Renderer receives every freshly projected table body.
type Renderer interface {
	RenderRows(ctx context.Context, rows []Row) error
}

// FieldKind tells the dialog which input to draw.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
	FieldDate   FieldKind = "date"
)

type FormField struct {
	Name        string
	Label       string
	Kind        FieldKind
	Placeholder string
	Options     []string
}

// Form describes a reservation form. Values holds the initial values in
// display format.
type Form struct {
	Title       string
	SubmitText  string
	CancelText  string
	Fields      []FormField
	Values      Fields
	Suggestions []string
}

type FormResult struct {
	Confirmed bool
	Values    Fields
}

// Confirmation is a destructive yes/no prompt.
type Confirmation struct {
	Title       string
	Text        string
	ConfirmText string
	CancelText  string
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageDetail  MessageKind = "detail"
)

// Message is a notice. Success notices close themselves after Timeout;
// detail messages carry the reservation to show.
type Message struct {
	Kind        MessageKind
	Title       string
	Detail      *Reservation
	ConfirmText string
	Timeout     time.Duration
}

// Form field names shared by the dialogs and the HTTP layer.
const (
	FieldGuestName = "guest_name"
	FieldRoomLabel = "room_label"
	FieldStatus    = "status"
	FieldCheckIn   = "check_in"
	FieldCheckOut  = "check_out"
)

func reservationFormFields() []FormField {
	options := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		options = append(options, s.String())
	}

	return []FormField{
		{Name: FieldGuestName, Label: "Huésped", Kind: FieldText, Placeholder: "Nombre completo"},
		{Name: FieldRoomLabel, Label: "Habitación", Kind: FieldText, Placeholder: "101 (Doble)"},
		{Name: FieldStatus, Label: "Estado", Kind: FieldSelect, Options: options},
		{Name: FieldCheckIn, Label: "Fecha entrada", Kind: FieldDate},
		{Name: FieldCheckOut, Label: "Fecha salida", Kind: FieldDate},
	}
}
