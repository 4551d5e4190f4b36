package web

import (
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservations"
)

// turnView is what dialog.html and JSON clients receive for a Turn.
type turnView struct {
	SessionID  string             `json:"session_id,omitempty"`
	Prompt     *promptView        `json:"prompt,omitempty"`
	Messages   []messageView      `json:"messages,omitempty"`
	Done       bool               `json:"done"`
	Close      bool               `json:"close"`
	Diagnostic string             `json:"diagnostic,omitempty"`
	Rows       []reservations.Row `json:"rows,omitempty"`
}

type promptView struct {
	Kind        StepKind    `json:"kind"`
	Seq         int         `json:"seq"`
	Title       string      `json:"title"`
	Text        string      `json:"text,omitempty"`
	SubmitText  string      `json:"submit_text"`
	CancelText  string      `json:"cancel_text"`
	Error       string      `json:"error,omitempty"`
	Fields      []fieldView `json:"fields,omitempty"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

type fieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	Placeholder string       `json:"placeholder,omitempty"`
	Value       string       `json:"value"`
	Options     []optionView `json:"options,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

type messageView struct {
	Kind        string                    `json:"kind"`
	Title       string                    `json:"title"`
	Detail      *reservations.Reservation `json:"detail,omitempty"`
	ConfirmText string                    `json:"confirm_text,omitempty"`
	TimeoutMS   int64                     `json:"timeout_ms,omitempty"`
}

func newTurnView(turn Turn) turnView {
	view := turnView{
		SessionID: turn.SessionID,
		Done:      turn.Done,
		Close:     turn.Done,
	}

	for _, m := range turn.Messages {
		view.Messages = append(view.Messages, messageView{
			Kind:        string(m.Kind),
			Title:       m.Title,
			Detail:      m.Detail,
			ConfirmText: m.ConfirmText,
			TimeoutMS:   m.Timeout.Milliseconds(),
		})
	}

	if turn.Prompt != nil {
		view.Prompt = newPromptView(*turn.Prompt)
	}

	return view
}

func newPromptView(step Step) *promptView {
	p := &promptView{Kind: step.Kind, Seq: step.Seq, Error: step.Error}

	switch {
	case step.Form != nil:
		f := step.Form
		p.Title = f.Title
		p.SubmitText = f.SubmitText
		p.CancelText = f.CancelText
		p.Suggestions = f.Suggestions
		for _, field := range f.Fields {
			p.Fields = append(p.Fields, newFieldView(field, f.Values))
		}
	case step.Confirm != nil:
		c := step.Confirm
		p.Title = c.Title
		p.Text = c.Text
		p.SubmitText = c.ConfirmText
		p.CancelText = c.CancelText
	}

	return p
}

func newFieldView(field reservations.FormField, values reservations.Fields) fieldView {
	fv := fieldView{
		Name:        field.Name,
		Label:       field.Label,
		Kind:        string(field.Kind),
		Placeholder: field.Placeholder,
		Value:       fieldValue(field.Name, values),
	}

	if field.Kind == reservations.FieldDate {
		fv.Value = inputDate(fv.Value)
	}

	known := false
	for _, opt := range field.Options {
		known = known || opt == fv.Value
		fv.Options = append(fv.Options, optionView{Value: opt, Selected: opt == fv.Value})
	}
	// Imported records may carry a status outside the list; keep it selectable
	// so saving the form does not rewrite it.
	if field.Kind == reservations.FieldSelect && fv.Value != "" && !known {
		fv.Options = append([]optionView{{Value: fv.Value, Selected: true}}, fv.Options...)
	}

	return fv
}

func fieldValue(name string, f reservations.Fields) string {
	switch name {
	case reservations.FieldGuestName:
		return f.GuestName
	case reservations.FieldRoomLabel:
		return f.RoomLabel
	case reservations.FieldStatus:
		return f.Status
	case reservations.FieldCheckIn:
		return f.CheckIn
	case reservations.FieldCheckOut:
		return f.CheckOut
	default:
		return ""
	}
}

// inputDate converts a stored date to the yyyy-mm-dd a date input expects.
// Values already in that form, or unparsable ones, are passed through.
func inputDate(v string) string {
	if iso := reservations.ISODate(v); iso != "" {
		return iso
	}
	return v
}
