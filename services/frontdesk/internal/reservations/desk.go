package reservations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/appetiteclub/frontdesk/pkg"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/go-playground/validator/v10"
)

var (
	ErrDialogUnavailable = errors.New("dialog system is not available")
	ErrNotFound          = errors.New("reservation not found")
	ErrUnknownAction     = errors.New("unknown action")
)

const (
	msgRequiredFields = "Completa todos los campos obligatorios."
	msgInvalidDates   = "Las fechas deben tener el formato dd/mm/aaaa."

	eventSource = "frontdesk"
)

// Acknowledgement timers of the success notices.
const (
	CreatedNoticeTimeout = 1500 * time.Millisecond
	UpdatedNoticeTimeout = 1400 * time.Millisecond
	DeletedNoticeTimeout = 1200 * time.Millisecond
)

// RoomSuggester lists room labels offered by the form. Errors are logged
// and the form opens without suggestions.
type RoomSuggester interface {
	RoomSuggestions(ctx context.Context) ([]string, error)
}

type DeskDeps struct {
	Store     *Store
	IDs       *IDGenerator
	Dialog    Dialog
	Renderer  Renderer
	Publisher events.Publisher
	Rooms     RoomSuggester
}

// Desk owns the reservation screen state: the store, the active criteria
// and the rows currently on display. Controllers and filters go through it.
type Desk struct {
	store     *Store
	ids       *IDGenerator
	dialog    Dialog
	renderer  Renderer
	publisher events.Publisher
	rooms     RoomSuggester
	validate  *validator.Validate
	logger    aqm.Logger

	mu        sync.Mutex
	criteria  Criteria
	displayed []Row
}

func NewDesk(deps DeskDeps, logger aqm.Logger) *Desk {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if deps.Store == nil {
		deps.Store = NewStore()
	}
	if deps.IDs == nil {
		deps.IDs = NewIDGenerator(nil)
	}

	return &Desk{
		store:     deps.Store,
		ids:       deps.IDs,
		dialog:    deps.Dialog,
		renderer:  deps.Renderer,
		publisher: deps.Publisher,
		rooms:     deps.Rooms,
		validate:  newFieldsValidator(),
		logger:    logger,
		displayed: []Row{},
	}
}

func newFieldsValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("dmy", validDate); err != nil {
		panic(fmt.Sprintf("register dmy validation: %v", err))
	}
	return v
}

func validDate(fl validator.FieldLevel) bool {
	_, ok := ParseDate(fl.Field().String())
	return ok
}

func (d *Desk) Store() *Store {
	return d.store
}

func (d *Desk) Criteria() Criteria {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.criteria
}

// Displayed returns the rows of the last refresh.
func (d *Desk) Displayed() []Row {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Row, len(d.displayed))
	copy(out, d.displayed)
	return out
}

// Import seeds the store with the rows presented at startup and renders
// them.
func (d *Desk) Import(ctx context.Context, records []Reservation) error {
	n := d.store.Import(records)
	d.logger.Info("reservations imported", "count", n)
	return d.Refresh(ctx)
}

// Dispatch routes an action to its controller.
func (d *Desk) Dispatch(ctx context.Context, a Action) error {
	switch a := a.(type) {
	case CreateRequested:
		return d.Create(ctx)
	case DetailRequested:
		return d.Detail(ctx, a.ID)
	case EditRequested:
		return d.Edit(ctx, a.ID)
	case DeleteRequested:
		return d.Delete(ctx, a.ID)
	case FilterChanged:
		return d.SetCriteria(ctx, a.Criteria)
	case ExportRequested:
		if a.Deliver == nil {
			return errors.New("export has no destination")
		}
		return a.Deliver(d.Export(a.Now))
	case nil:
		return ErrUnknownAction
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind())
	}
}

// SetCriteria replaces the active filters and refreshes the view.
func (d *Desk) SetCriteria(ctx context.Context, c Criteria) error {
	d.mu.Lock()
	d.criteria = c
	d.mu.Unlock()
	return d.Refresh(ctx)
}

// Rows projects the records matching c without changing the active
// criteria or the rows on display.
func (d *Desk) Rows(c Criteria) []Row {
	return Project(d.store.Query(c))
}

// Refresh recomputes the visible rows and hands them to the renderer.
// Rendering happens under the lock; renderers must not call back into the
// desk.
func (d *Desk) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	rows := Project(d.store.Query(d.criteria))
	d.displayed = rows

	if d.renderer == nil {
		return nil
	}
	if err := d.renderer.RenderRows(ctx, rows); err != nil {
		return fmt.Errorf("render rows: %w", err)
	}
	return nil
}

// Export serialises the rows on display, not the whole store.
func (d *Desk) Export(now time.Time) (filename string, content string) {
	return ExportFilename(now), ToCSV(d.Displayed())
}

// Create collects a new reservation and inserts it at the top.
func (d *Desk) Create(ctx context.Context) error {
	if err := d.ensureDialog("create"); err != nil {
		return err
	}

	form := d.newForm(ctx, "Nueva Reserva", "Guardar", Fields{Status: DefaultStatus.String()})
	fields, ok, err := d.collect(ctx, form)
	if err != nil || !ok {
		return err
	}

	id, err := d.ids.Next(d.store.Has)
	if err != nil {
		return err
	}

	r := New(id, fields)
	d.store.InsertFront(r)
	d.logger.Info("reservation created", "id", r.ID, "guest", r.GuestName)

	if err := d.Refresh(ctx); err != nil {
		return err
	}
	d.publish(ctx, pkg.EventReservationCreated, r)

	return d.acknowledge(ctx, "Reserva creada", CreatedNoticeTimeout)
}

// Detail shows a read-only view of one reservation.
func (d *Desk) Detail(ctx context.Context, id string) error {
	if err := d.ensureDialog("detail"); err != nil {
		return err
	}

	r, ok := d.store.FindByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return d.dialog.ShowMessage(ctx, Message{
		Kind:        MessageDetail,
		Title:       "Detalle de la Reserva",
		Detail:      &r,
		ConfirmText: "Cerrar",
	})
}

// Edit collects new values for a reservation and keeps its id.
func (d *Desk) Edit(ctx context.Context, id string) error {
	if err := d.ensureDialog("edit"); err != nil {
		return err
	}

	current, ok := d.store.FindByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	form := d.newForm(ctx, "Editar "+current.ID, "Guardar cambios", current.Fields())
	fields, ok, err := d.collect(ctx, form)
	if err != nil || !ok {
		return err
	}

	if !d.store.Replace(id, fields) {
		d.logger.Info("reservation vanished while editing", "id", id)
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	updated := New(id, fields)
	d.logger.Info("reservation updated", "id", id)

	if err := d.Refresh(ctx); err != nil {
		return err
	}
	d.publish(ctx, pkg.EventReservationUpdated, updated)

	return d.acknowledge(ctx, "Reserva actualizada", UpdatedNoticeTimeout)
}

// Delete removes a reservation after an explicit confirmation.
func (d *Desk) Delete(ctx context.Context, id string) error {
	if err := d.ensureDialog("delete"); err != nil {
		return err
	}

	r, ok := d.store.FindByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	confirmed, err := d.dialog.ShowConfirm(ctx, Confirmation{
		Title:       "Eliminar " + r.ID,
		Text:        fmt.Sprintf("Esta acción no se puede deshacer. ¿Eliminar la reserva de %s?", r.GuestName),
		ConfirmText: "Sí, eliminar",
		CancelText:  "Cancelar",
	})
	if err != nil || !confirmed {
		return err
	}

	if !d.store.Remove(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	d.logger.Info("reservation deleted", "id", id)

	if err := d.Refresh(ctx); err != nil {
		return err
	}
	d.publish(ctx, pkg.EventReservationDeleted, r)

	return d.acknowledge(ctx, "Reserva eliminada", DeletedNoticeTimeout)
}

func (d *Desk) ensureDialog(op string) error {
	if d.dialog != nil {
		return nil
	}
	d.logger.Error("dialog system not loaded, aborting", "operation", op)
	return ErrDialogUnavailable
}

func (d *Desk) newForm(ctx context.Context, title, submit string, values Fields) Form {
	form := Form{
		Title:      title,
		SubmitText: submit,
		CancelText: "Cancelar",
		Fields:     reservationFormFields(),
		Values:     values,
	}

	if d.rooms != nil {
		suggestions, err := d.rooms.RoomSuggestions(ctx)
		if err != nil {
			d.logger.Error("cannot load room suggestions", "error", err)
		} else {
			form.Suggestions = suggestions
		}
	}

	return form
}

// collect keeps the form open until it is cancelled or submitted with
// valid values.
func (d *Desk) collect(ctx context.Context, form Form) (Fields, bool, error) {
	for {
		res, err := d.dialog.ShowForm(ctx, form)
		if err != nil {
			return Fields{}, false, err
		}
		if !res.Confirmed {
			return Fields{}, false, nil
		}

		submitted := res.Values
		if strings.TrimSpace(submitted.AvatarRef) == "" {
			submitted.AvatarRef = form.Values.AvatarRef
		}

		values := submitted.Normalize()
		msg := d.check(values)
		if msg == "" {
			return values, true, nil
		}

		if err := d.dialog.ShowValidationError(ctx, msg); err != nil {
			return Fields{}, false, err
		}
		form.Values = submitted
	}
}

// check returns the inline message for invalid values, or "".
func (d *Desk) check(f Fields) string {
	if err := d.validate.Struct(f); err != nil {
		return msgRequiredFields
	}
	if err := d.validate.Var(f.CheckIn, "dmy"); err != nil {
		return msgInvalidDates
	}
	if err := d.validate.Var(f.CheckOut, "dmy"); err != nil {
		return msgInvalidDates
	}
	return ""
}

func (d *Desk) acknowledge(ctx context.Context, title string, timeout time.Duration) error {
	return d.dialog.ShowMessage(ctx, Message{
		Kind:    MessageSuccess,
		Title:   title,
		Timeout: timeout,
	})
}

func (d *Desk) publish(ctx context.Context, eventType string, r Reservation) {
	if d.publisher == nil {
		return
	}

	event := pkg.NewReservationEvent(eventType, r.ID)
	event.GuestName = r.GuestName
	event.RoomLabel = r.RoomLabel
	event.CheckIn = r.CheckIn
	event.CheckOut = r.CheckOut
	event.Status = r.Status
	event.Source = eventSource

	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("cannot marshal reservation event", "error", err, "reservation_id", r.ID)
		return
	}

	if err := d.publisher.Publish(ctx, pkg.ReservationsTopic, payload); err != nil {
		d.logger.Error("cannot publish reservation event", "error", err, "reservation_id", r.ID)
	}
}
