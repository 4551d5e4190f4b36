package reservations

import "time"

// Action is a user request routed through Desk.Dispatch.
type Action interface {
	Kind() string
	action()
}

type CreateRequested struct{}

type DetailRequested struct {
	ID string
}

type EditRequested struct {
	ID string
}

type DeleteRequested struct {
	ID string
}

type FilterChanged struct {
	Criteria Criteria
}

// ExportRequested serialises the displayed rows. Deliver receives the file
// name and the CSV content.
type ExportRequested struct {
	Now     time.Time
	Deliver func(filename, content string) error
}

func (CreateRequested) Kind() string { return "create" }
func (DetailRequested) Kind() string { return "detail" }
func (EditRequested) Kind() string   { return "edit" }
func (DeleteRequested) Kind() string { return "delete" }
func (FilterChanged) Kind() string   { return "filter" }
func (ExportRequested) Kind() string { return "export" }

func (CreateRequested) action() {}
func (DetailRequested) action() {}
func (EditRequested) action()   {}
func (DeleteRequested) action() {}
func (FilterChanged) action()   {}
func (ExportRequested) action() {}
