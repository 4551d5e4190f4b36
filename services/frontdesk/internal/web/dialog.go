package web

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/reservations"
	"github.com/aquamarinepk/aqm"
	"github.com/google/uuid"
)

var (
	ErrDialogBusy  = errors.New("another dialog is already open")
	ErrNoDialog    = errors.New("no dialog is open")
	ErrStaleAnswer = errors.New("answer does not match the open prompt")
)

// DefaultDialogTimeout closes prompts nobody answers.
const DefaultDialogTimeout = 10 * time.Minute

type StepKind string

const (
	StepForm    StepKind = "form"
	StepConfirm StepKind = "confirm"
	StepMessage StepKind = "message"
	StepDone    StepKind = "done"
)

// Step is something the controller wants shown. Form and confirm steps
// wait for an Answer; messages and done do not.
type Step struct {
	Kind    StepKind
	Seq     int
	Form    *reservations.Form
	Error   string
	Confirm *reservations.Confirmation
	Message *reservations.Message
	Err     error
}

// Turn gathers the steps produced between two answers: any messages, then
// either the prompt now waiting or the end of the interaction.
type Turn struct {
	SessionID string
	Prompt    *Step
	Messages  []reservations.Message
	Done      bool
	Err       error
}

// Answer is the user's reply to the open prompt.
type Answer struct {
	Seq       int
	Confirmed bool
	Values    reservations.Fields
}

type session struct {
	id       string
	ctx      context.Context
	cancel   context.CancelFunc
	steps    chan Step
	answers  chan Answer
	done     chan struct{}
	seq      int
	awaiting int
	answered int
	current  *Step
	errText  string
}

// ModalDialog implements reservations.Dialog for the browser. The
// controller runs in its own goroutine and blocks on each prompt; HTTP
// requests answer the prompt and collect what comes next. One session is
// open at a time.
type ModalDialog struct {
	mu      sync.Mutex
	active  *session
	timeout time.Duration
	logger  aqm.Logger
}

func NewModalDialog(timeout time.Duration, logger aqm.Logger) *ModalDialog {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if timeout <= 0 {
		timeout = DefaultDialogTimeout
	}
	return &ModalDialog{timeout: timeout, logger: logger}
}

// Run opens a session and runs fn in a new goroutine with the session
// context. The returned turn is the first thing to show.
func (d *ModalDialog) Run(ctx context.Context, fn func(ctx context.Context) error) (Turn, error) {
	s, err := d.open()
	if err != nil {
		return Turn{}, err
	}

	go func() {
		err := fn(s.ctx)
		d.finish(s, err)
	}()

	return d.next(ctx, s)
}

// Respond delivers an answer to the open prompt and waits for the next turn.
func (d *ModalDialog) Respond(ctx context.Context, a Answer) (Turn, error) {
	d.mu.Lock()
	s := d.active
	if s == nil {
		d.mu.Unlock()
		return Turn{}, ErrNoDialog
	}
	if s.awaiting == 0 || (a.Seq != 0 && a.Seq != s.awaiting) {
		d.mu.Unlock()
		return Turn{}, ErrStaleAnswer
	}
	a.Seq = s.awaiting
	s.awaiting = 0
	s.answered = a.Seq
	d.mu.Unlock()

	select {
	case s.answers <- a:
	case <-s.done:
		return d.next(ctx, s)
	case <-ctx.Done():
		return Turn{}, ctx.Err()
	}

	return d.next(ctx, s)
}

// Current returns the prompt on screen, if any.
func (d *ModalDialog) Current() (*Step, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil || d.active.current == nil {
		return nil, false
	}
	step := *d.active.current
	return &step, true
}

// Close cancels the open session.
func (d *ModalDialog) Close() {
	d.mu.Lock()
	s := d.active
	d.mu.Unlock()
	if s != nil {
		s.cancel()
	}
}

func (d *ModalDialog) ShowForm(ctx context.Context, form reservations.Form) (reservations.FormResult, error) {
	s, err := d.session()
	if err != nil {
		return reservations.FormResult{}, err
	}

	d.mu.Lock()
	step := Step{Kind: StepForm, Form: &form, Error: s.errText}
	s.errText = ""
	d.mu.Unlock()

	a, err := d.ask(ctx, s, step)
	if err != nil {
		return reservations.FormResult{}, err
	}
	return reservations.FormResult{Confirmed: a.Confirmed, Values: a.Values}, nil
}

func (d *ModalDialog) ShowConfirm(ctx context.Context, c reservations.Confirmation) (bool, error) {
	s, err := d.session()
	if err != nil {
		return false, err
	}

	a, err := d.ask(ctx, s, Step{Kind: StepConfirm, Confirm: &c})
	if err != nil {
		return false, err
	}
	return a.Confirmed, nil
}

func (d *ModalDialog) ShowMessage(ctx context.Context, m reservations.Message) error {
	s, err := d.session()
	if err != nil {
		return err
	}
	d.mu.Lock()
	step := Step{Kind: StepMessage, Seq: s.seq, Message: &m}
	d.mu.Unlock()
	return d.emit(ctx, s, step)
}

func (d *ModalDialog) ShowValidationError(ctx context.Context, text string) error {
	s, err := d.session()
	if err != nil {
		return err
	}
	d.mu.Lock()
	s.errText = text
	d.mu.Unlock()
	return nil
}

func (d *ModalDialog) open() (*session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active != nil {
		return nil, ErrDialogBusy
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		id:      uuid.NewString(),
		ctx:     ctx,
		cancel:  cancel,
		steps:   make(chan Step, 8),
		answers: make(chan Answer),
		done:    make(chan struct{}),
	}
	d.active = s
	d.logger.Debug("dialog session opened", "session_id", s.id)
	return s, nil
}

func (d *ModalDialog) session() (*session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return nil, ErrNoDialog
	}
	return d.active, nil
}

// ask shows a prompt and blocks until it is answered. A prompt left
// unanswered for the dialog timeout resolves as cancelled.
func (d *ModalDialog) ask(ctx context.Context, s *session, step Step) (Answer, error) {
	d.mu.Lock()
	s.seq++
	step.Seq = s.seq
	s.awaiting = step.Seq
	s.current = &step
	d.mu.Unlock()

	if err := d.emit(ctx, s, step); err != nil {
		return Answer{}, err
	}

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case a := <-s.answers:
		return a, nil
	case <-timer.C:
		d.logger.Info("dialog timed out, treating as cancelled", "session_id", s.id, "seq", step.Seq)
		d.mu.Lock()
		s.awaiting = 0
		d.mu.Unlock()
		return Answer{Seq: step.Seq}, nil
	case <-ctx.Done():
		return Answer{}, ctx.Err()
	}
}

func (d *ModalDialog) emit(ctx context.Context, s *session, step Step) error {
	select {
	case s.steps <- step:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *ModalDialog) finish(s *session, err error) {
	d.mu.Lock()
	if d.active == s {
		d.active = nil
	}
	s.current = nil
	s.awaiting = 0
	d.mu.Unlock()

	select {
	case s.steps <- Step{Kind: StepDone, Err: err}:
	default:
		d.logger.Error("dialog step buffer full, dropping completion", "session_id", s.id)
	}
	close(s.done)
	s.cancel()
	d.logger.Debug("dialog session closed", "session_id", s.id, "error", err)
}

// next reads steps until a prompt is waiting or the session ends. Steps a
// previous request left unread are skipped once their prompt is answered:
// prompts up to the last answered seq and messages shown before it.
func (d *ModalDialog) next(ctx context.Context, s *session) (Turn, error) {
	turn := Turn{SessionID: s.id}
	for {
		select {
		case step := <-s.steps:
			if d.superseded(s, step) {
				continue
			}
			switch step.Kind {
			case StepMessage:
				turn.Messages = append(turn.Messages, *step.Message)
			case StepDone:
				turn.Done = true
				turn.Err = step.Err
				return turn, nil
			default:
				turn.Prompt = &step
				return turn, nil
			}
		case <-ctx.Done():
			return turn, ctx.Err()
		}
	}
}

func (d *ModalDialog) superseded(s *session, step Step) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch step.Kind {
	case StepForm, StepConfirm:
		return step.Seq <= s.answered
	case StepMessage:
		return step.Seq < s.answered
	default:
		return false
	}
}
