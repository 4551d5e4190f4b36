package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservations"
	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/rooms"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/telemetry"
	aqmtemplate "github.com/aquamarinepk/aqm/template"
	"github.com/go-chi/chi/v5"
)

const MaxBodyBytes = 1 << 20

const msgDialogMissing = "Falta el sistema de diálogos. Recarga la página o contacta al administrador."

type HandlerDeps struct {
	Desk      *reservations.Desk
	Dialog    *ModalDialog
	Sink      *TableSink
	Rooms     rooms.Client
	Templates *aqmtemplate.Manager
	Metrics   *Metrics
	// Static serves avatars and other files under /static/.
	Static fs.FS
}

// Handler serves the reservations screen.
type Handler struct {
	desk    *reservations.Desk
	dialog  *ModalDialog
	sink    *TableSink
	rooms   rooms.Client
	tmplMgr *aqmtemplate.Manager
	metrics *Metrics
	static  fs.FS
	logger  aqm.Logger
	config  *aqm.Config
	http    *telemetry.HTTP
	now     func() time.Time
}

func NewHandler(deps HandlerDeps, config *aqm.Config, logger aqm.Logger) *Handler {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if deps.Rooms == nil {
		deps.Rooms = rooms.NewNoopClient()
	}
	if deps.Sink == nil {
		deps.Sink = NewTableSink(deps.Metrics)
	}

	return &Handler{
		desk:    deps.Desk,
		dialog:  deps.Dialog,
		sink:    deps.Sink,
		rooms:   deps.Rooms,
		tmplMgr: deps.Templates,
		metrics: deps.Metrics,
		static:  deps.Static,
		logger:  logger,
		config:  config,
		http:    telemetry.NewHTTP(),
		now:     time.Now,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		aqm.RedirectOrHeader(w, r, "/reservations")
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", h.Reservations)
		r.Get("/rows", h.Rows)
		r.Get("/export", h.Export)
		r.Post("/new", h.NewReservation)
		r.Post("/{id}/detail", h.ReservationDetail)
		r.Post("/{id}/edit", h.EditReservation)
		r.Post("/{id}/delete", h.DeleteReservation)
	})

	r.Route("/dialog", func(r chi.Router) {
		r.Get("/", h.CurrentDialog)
		r.Post("/confirm", h.ConfirmDialog)
		r.Post("/cancel", h.CancelDialog)
	})

	r.Route("/room-types", func(r chi.Router) {
		r.Get("/", h.ListRoomTypes)
		r.Post("/", h.CreateRoomType)
		r.Put("/{id}", h.UpdateRoomType)
	})

	if h.static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(h.static))))
	}

	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
}

func (h *Handler) log(r *http.Request) aqm.Logger {
	return h.logger.With("request_id", r.Context().Value("request_id"))
}

// Reservations renders the full page with the filters in the query string.
func (h *Handler) Reservations(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.Reservations")
	defer finish()

	log := h.log(r)
	criteria := criteriaFromQuery(r)

	if wantsJSON(r) {
		aqm.RespondSuccess(w, h.desk.Rows(criteria))
		return
	}

	pageErr := ""
	if err := h.dispatchFilter(r.Context(), criteria); err != nil {
		log.Error("cannot apply filters", "error", err)
		pageErr = "No se pudo actualizar la tabla."
	}

	rows, _ := h.sink.Rows()

	data := map[string]interface{}{
		"Title":    "Gestión de Reservas",
		"Template": "reservations",
		"Rows":     rows,
		"Criteria": criteria,
		"Statuses": reservations.Statuses,
		"Error":    pageErr,
	}

	h.renderTemplate(w, log, "reservations.html", "base.html", data)
}

// Rows re-queries with the current filter inputs and returns the table body.
// JSON reads query the store without touching the filters on screen.
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.Rows")
	defer finish()

	log := h.log(r)

	if wantsJSON(r) {
		aqm.RespondSuccess(w, h.desk.Rows(criteriaFromQuery(r)))
		return
	}

	if err := h.dispatchFilter(r.Context(), criteriaFromQuery(r)); err != nil {
		log.Error("cannot apply filters", "error", err)
		aqm.RespondError(w, http.StatusInternalServerError, "Could not refresh reservations")
		return
	}

	rows, _ := h.sink.Rows()

	h.renderTemplate(w, log, "reservation_rows.html", "reservation_rows.html", map[string]interface{}{
		"Rows": rows,
	})
}

// Export downloads the rows on display as CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.Export")
	defer finish()

	action := reservations.ExportRequested{
		Now: h.now(),
		Deliver: func(filename, content string) error {
			w.Header().Set("Content-Type", reservations.ExportContentType)
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
			w.WriteHeader(http.StatusOK)
			_, err := io.WriteString(w, content)
			return err
		},
	}

	err := h.desk.Dispatch(r.Context(), action)
	h.metrics.observeAction(action.Kind(), outcome(err))
	if err != nil {
		h.log(r).Error("cannot write export", "error", err)
	}
}

func (h *Handler) NewReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.NewReservation")
	defer finish()

	h.startAction(w, r, reservations.CreateRequested{})
}

func (h *Handler) ReservationDetail(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.ReservationDetail")
	defer finish()

	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}
	h.startAction(w, r, reservations.DetailRequested{ID: id})
}

func (h *Handler) EditReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.EditReservation")
	defer finish()

	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}
	h.startAction(w, r, reservations.EditRequested{ID: id})
}

func (h *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.DeleteReservation")
	defer finish()

	id, ok := h.parseIDParam(w, r)
	if !ok {
		return
	}
	h.startAction(w, r, reservations.DeleteRequested{ID: id})
}

// CurrentDialog re-renders the prompt still waiting for an answer.
func (h *Handler) CurrentDialog(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.CurrentDialog")
	defer finish()

	if h.dialog == nil {
		h.respondDiagnostic(w, r)
		return
	}

	step, ok := h.dialog.Current()
	if !ok {
		h.respondTurn(w, r, Turn{Done: true})
		return
	}
	h.respondTurn(w, r, Turn{Prompt: step})
}

func (h *Handler) ConfirmDialog(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.ConfirmDialog")
	defer finish()

	h.answer(w, r, true)
}

func (h *Handler) CancelDialog(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.CancelDialog")
	defer finish()

	h.answer(w, r, false)
}

func (h *Handler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.ListRoomTypes")
	defer finish()

	types, err := h.rooms.ListRoomTypes(r.Context())
	if err != nil {
		h.log(r).Error("cannot list room types", "error", err)
		aqm.RespondError(w, http.StatusBadGateway, "Could not retrieve room types")
		return
	}

	aqm.RespondSuccess(w, types)
}

func (h *Handler) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.CreateRoomType")
	defer finish()

	log := h.log(r)

	data, ok := h.decodeRoomType(w, r, log)
	if !ok {
		return
	}

	if err := h.rooms.CreateRoomType(r.Context(), data); err != nil {
		log.Error("cannot create room type", "error", err)
		aqm.RespondError(w, http.StatusBadGateway, "Could not create room type")
		return
	}

	aqm.Respond(w, http.StatusCreated, data, nil)
}

func (h *Handler) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.http.Start(w, r, "Handler.UpdateRoomType")
	defer finish()

	log := h.log(r)

	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		aqm.RespondError(w, http.StatusBadRequest, "Missing id parameter")
		return
	}

	data, ok := h.decodeRoomType(w, r, log)
	if !ok {
		return
	}

	if err := h.rooms.UpdateRoomType(r.Context(), id, data); err != nil {
		log.Error("cannot update room type", "error", err, "id", id)
		aqm.RespondError(w, http.StatusBadGateway, "Could not update room type")
		return
	}

	aqm.RespondSuccess(w, data)
}

func (h *Handler) dispatchFilter(ctx context.Context, c reservations.Criteria) error {
	action := reservations.FilterChanged{Criteria: c}
	err := h.desk.Dispatch(ctx, action)
	h.metrics.observeAction(action.Kind(), outcome(err))
	return err
}

// startAction opens a dialog session running the controller for action
// and responds with its first turn.
func (h *Handler) startAction(w http.ResponseWriter, r *http.Request, action reservations.Action) {
	log := h.log(r)

	if h.dialog == nil {
		log.Error("dialog system not loaded", "action", action.Kind())
		h.respondDiagnostic(w, r)
		return
	}

	turn, err := h.dialog.Run(r.Context(), func(ctx context.Context) error {
		err := h.desk.Dispatch(ctx, action)
		h.metrics.observeAction(action.Kind(), outcome(err))
		return err
	})
	if err != nil {
		log.Info("cannot open dialog", "action", action.Kind(), "error", err)
		h.respondDialogError(w, r, err)
		return
	}

	h.respondTurn(w, r, turn)
}

func (h *Handler) answer(w http.ResponseWriter, r *http.Request, confirmed bool) {
	log := h.log(r)

	if h.dialog == nil {
		h.respondDiagnostic(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		log.Debug("cannot parse dialog form", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Could not read the submitted form")
		return
	}

	seq, _ := strconv.Atoi(r.FormValue("dialog_seq"))
	answer := Answer{
		Seq:       seq,
		Confirmed: confirmed,
		Values:    fieldsFromForm(r),
	}

	h.metrics.observeAnswer(confirmed)

	turn, err := h.dialog.Respond(r.Context(), answer)
	if err != nil {
		log.Info("cannot deliver dialog answer", "error", err)
		h.respondDialogError(w, r, err)
		return
	}

	h.respondTurn(w, r, turn)
}

func (h *Handler) respondTurn(w http.ResponseWriter, r *http.Request, turn Turn) {
	log := h.log(r)
	view := newTurnView(turn)

	if turn.Done {
		view.Rows, _ = h.sink.Rows()
	}

	status := http.StatusOK
	if turn.Err != nil {
		switch {
		case errors.Is(turn.Err, reservations.ErrDialogUnavailable):
			status = http.StatusServiceUnavailable
			view.Diagnostic = msgDialogMissing
		case errors.Is(turn.Err, reservations.ErrNotFound):
			status = http.StatusNotFound
			view.Diagnostic = "La reserva ya no existe."
		case errors.Is(turn.Err, context.Canceled):
			view.Diagnostic = "El diálogo se cerró."
		default:
			log.Error("reservation action failed", "error", turn.Err)
			status = http.StatusInternalServerError
			view.Diagnostic = "No se pudo completar la operación."
		}
	}

	if wantsJSON(r) {
		if status != http.StatusOK {
			aqm.RespondError(w, status, view.Diagnostic)
			return
		}
		aqm.RespondSuccess(w, view)
		return
	}

	h.renderDialog(w, r, status, view)
}

func (h *Handler) respondDialogError(w http.ResponseWriter, r *http.Request, err error) {
	status, view := h.dialogErrorView(err)

	if wantsJSON(r) {
		aqm.RespondError(w, status, view.Diagnostic)
		return
	}

	h.renderDialog(w, r, status, view)
}

// dialogErrorView keeps the prompt still open on screen next to the
// diagnostic so it can be answered after a reload.
func (h *Handler) dialogErrorView(err error) (int, turnView) {
	status := http.StatusInternalServerError
	view := turnView{Close: true, Diagnostic: "No se pudo abrir el diálogo."}
	switch {
	case errors.Is(err, ErrDialogBusy):
		status = http.StatusConflict
		view.Diagnostic = "Ya hay un diálogo abierto."
	case errors.Is(err, ErrNoDialog), errors.Is(err, ErrStaleAnswer):
		status = http.StatusConflict
		view.Diagnostic = "El diálogo ya no está abierto."
	}

	if h.dialog != nil {
		if step, ok := h.dialog.Current(); ok {
			view.Close = false
			view.Prompt = newPromptView(*step)
		}
	}

	return status, view
}

func (h *Handler) respondDiagnostic(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		aqm.RespondError(w, http.StatusServiceUnavailable, msgDialogMissing)
		return
	}

	h.renderDialog(w, r, http.StatusServiceUnavailable, turnView{Close: true, Diagnostic: msgDialogMissing})
}

// renderDialog renders dialog.html into #dialog. htmx drops error
// responses, so htmx requests get 200 and an explicit target instead.
func (h *Handler) renderDialog(w http.ResponseWriter, r *http.Request, status int, view turnView) {
	status = dialogStatus(w, r, status)
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	h.renderTemplate(w, h.log(r), "dialog.html", "dialog.html", view)
}

func dialogStatus(w http.ResponseWriter, r *http.Request, status int) int {
	if !aqm.IsHTMX(r) {
		return status
	}
	w.Header().Set("HX-Retarget", "#dialog")
	w.Header().Set("HX-Reswap", "innerHTML")
	return http.StatusOK
}

func (h *Handler) renderTemplate(w http.ResponseWriter, log aqm.Logger, templateName, layout string, data interface{}) {
	if h.tmplMgr == nil {
		log.Error("template manager not configured", "template", templateName)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	tmpl, err := h.tmplMgr.Get(templateName)
	if err != nil {
		log.Error("error loading template", "error", err, "template", templateName)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, layout, data); err != nil {
		log.Error("error rendering template", "error", err, "layout", layout)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *Handler) parseIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(id) == "" {
		h.log(r).Debug("invalid id parameter", "id", raw, "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid id parameter")
		return "", false
	}
	return strings.TrimSpace(id), true
}

func (h *Handler) decodeRoomType(w http.ResponseWriter, r *http.Request, log aqm.Logger) (rooms.RoomType, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	var data rooms.RoomType
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		log.Debug("invalid room type payload", "error", err)
		aqm.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return rooms.RoomType{}, false
	}
	return data, true
}

func criteriaFromQuery(r *http.Request) reservations.Criteria {
	q := r.URL.Query()
	return reservations.Criteria{
		Text:   q.Get("q"),
		Status: q.Get("status"),
		Date:   q.Get("date"),
	}
}

func fieldsFromForm(r *http.Request) reservations.Fields {
	return reservations.Fields{
		GuestName: r.FormValue(reservations.FieldGuestName),
		RoomLabel: r.FormValue(reservations.FieldRoomLabel),
		Status:    r.FormValue(reservations.FieldStatus),
		CheckIn:   r.FormValue(reservations.FieldCheckIn),
		CheckOut:  r.FormValue(reservations.FieldCheckOut),
	}
}

func wantsJSON(r *http.Request) bool {
	if aqm.IsHTMX(r) {
		return false
	}
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, reservations.ErrNotFound):
		return "not_found"
	case errors.Is(err, reservations.ErrDialogUnavailable):
		return "no_dialog"
	default:
		return "error"
	}
}
