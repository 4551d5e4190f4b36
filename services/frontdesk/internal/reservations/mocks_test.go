package reservations

import (
	"context"
	"errors"
)

// MockDialog answers forms and confirmations from queued replies and
// records everything it was asked to show.
type MockDialog struct {
	FormReplies    []FormResult
	ConfirmReplies []bool

	Forms            []Form
	Confirmations    []Confirmation
	Messages         []Message
	ValidationErrors []string

	ShowFormFunc    func(ctx context.Context, form Form) (FormResult, error)
	ShowConfirmFunc func(ctx context.Context, c Confirmation) (bool, error)
	ShowMessageFunc func(ctx context.Context, m Message) error
}

var errNoReply = errors.New("mock dialog has no reply queued")

func NewMockDialog() *MockDialog {
	return &MockDialog{}
}

func (m *MockDialog) ShowForm(ctx context.Context, form Form) (FormResult, error) {
	m.Forms = append(m.Forms, form)
	if m.ShowFormFunc != nil {
		return m.ShowFormFunc(ctx, form)
	}
	if len(m.FormReplies) == 0 {
		return FormResult{}, errNoReply
	}
	reply := m.FormReplies[0]
	m.FormReplies = m.FormReplies[1:]
	return reply, nil
}

func (m *MockDialog) ShowConfirm(ctx context.Context, c Confirmation) (bool, error) {
	m.Confirmations = append(m.Confirmations, c)
	if m.ShowConfirmFunc != nil {
		return m.ShowConfirmFunc(ctx, c)
	}
	if len(m.ConfirmReplies) == 0 {
		return false, errNoReply
	}
	reply := m.ConfirmReplies[0]
	m.ConfirmReplies = m.ConfirmReplies[1:]
	return reply, nil
}

func (m *MockDialog) ShowMessage(ctx context.Context, msg Message) error {
	m.Messages = append(m.Messages, msg)
	if m.ShowMessageFunc != nil {
		return m.ShowMessageFunc(ctx, msg)
	}
	return nil
}

func (m *MockDialog) ShowValidationError(ctx context.Context, text string) error {
	m.ValidationErrors = append(m.ValidationErrors, text)
	return nil
}

// MockRenderer keeps every table body it receives.
type MockRenderer struct {
	Renders        [][]Row
	RenderRowsFunc func(ctx context.Context, rows []Row) error
}

func (m *MockRenderer) RenderRows(ctx context.Context, rows []Row) error {
	m.Renders = append(m.Renders, rows)
	if m.RenderRowsFunc != nil {
		return m.RenderRowsFunc(ctx, rows)
	}
	return nil
}

func (m *MockRenderer) Last() []Row {
	if len(m.Renders) == 0 {
		return nil
	}
	return m.Renders[len(m.Renders)-1]
}

// MockPublisher is a test mock for events.Publisher
type MockPublisher struct {
	PublishedEvents []PublishedEvent
	PublishFunc     func(ctx context.Context, topic string, data []byte) error
}

type PublishedEvent struct {
	Topic string
	Data  []byte
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, data)
	}
	m.PublishedEvents = append(m.PublishedEvents, PublishedEvent{Topic: topic, Data: data})
	return nil
}

type MockRoomSuggester struct {
	RoomSuggestionsFunc func(ctx context.Context) ([]string, error)
}

func (m *MockRoomSuggester) RoomSuggestions(ctx context.Context) ([]string, error) {
	if m.RoomSuggestionsFunc != nil {
		return m.RoomSuggestionsFunc(ctx)
	}
	return nil, nil
}

// sequenceIntN returns the given values in turn, then repeats the last.
func sequenceIntN(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v % n
	}
}

func sampleReservations() []Reservation {
	return []Reservation{
		{ID: "#100001", GuestName: "Ana López", AvatarRef: DefaultAvatar, RoomLabel: "101 (Doble)", CheckIn: "01/06/2024", CheckOut: "05/06/2024", Status: "Confirmada"},
		{ID: "#100002", GuestName: "Bruno Díaz", AvatarRef: DefaultAvatar, RoomLabel: "102 (Doble)", CheckIn: "02/06/2024", CheckOut: "04/06/2024", Status: "Pendiente"},
		{ID: "#100003", GuestName: "Carla Ana Soto", AvatarRef: "img/carla.png", RoomLabel: "201 (Suite)", CheckIn: "01/06/2024", CheckOut: "03/06/2024", Status: "Cancelada"},
	}
}
