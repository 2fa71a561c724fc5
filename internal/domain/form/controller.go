package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
	"leadform/internal/domain/reference"
)

// State of a form session.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateErrorShown State = "error-shown"
)

// Submitter runs the validate-map-post pipeline.
type Submitter interface {
	Variant() lead.Variant
	Submit(ctx context.Context, d lead.Draft) error
}

// Publisher delivers messages to the display layer.
type Publisher interface {
	Publish(topic string, msg notification.Message) int
}

// View is a point-in-time copy of a session.
type View struct {
	ID          string            `json:"id"`
	Variant     lead.Variant      `json:"variant"`
	State       State             `json:"state"`
	Draft       lead.Draft        `json:"draft"`
	FieldErrors lead.FieldErrors  `json:"field_errors,omitempty"`
	References  []reference.State `json:"references"`
	LastOutcome *lead.Outcome     `json:"last_outcome,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Controller owns one form session: its draft, field errors and submit state.
type Controller struct {
	id        string
	submitter Submitter
	publisher Publisher
	board     *reference.Board
	errorTTL  time.Duration
	now       func() time.Time
	createdAt time.Time

	mu           sync.Mutex
	draft        lead.Draft
	fieldErrors  lead.FieldErrors
	submitting   bool
	closed       bool
	errorUntil   time.Time
	lastOutcome  *lead.Outcome
	lastActivity time.Time
}

func newController(id string, submitter Submitter, publisher Publisher, board *reference.Board, errorTTL time.Duration, now func() time.Time) *Controller {
	t := now()
	return &Controller{
		id:           id,
		submitter:    submitter,
		publisher:    publisher,
		board:        board,
		errorTTL:     errorTTL,
		now:          now,
		createdAt:    t,
		lastActivity: t,
	}
}

func (c *Controller) ID() string {
	return c.id
}

// State reports the current state. error-shown lapses to idle once its time is up.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	switch {
	case c.submitting:
		return StateSubmitting
	case c.now().Before(c.errorUntil):
		return StateErrorShown
	default:
		return StateIdle
	}
}

// SetField edits one draft field. Errors are not recomputed here.
func (c *Controller) SetField(field, value string) error {
	return c.SetFields(map[string]string{field: value})
}

// SetFields applies all edits or none.
func (c *Controller) SetFields(values map[string]string) error {
	variant := c.submitter.Variant()
	for field := range values {
		if !variant.HasField(field) {
			return ErrUnknownField
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrFormClosed
	}
	if c.submitting {
		return ErrFormBusy
	}
	for field, value := range values {
		c.draft.Set(field, value)
	}
	c.lastActivity = c.now()
	return nil
}

func (c *Controller) Draft() lead.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// FieldErrors returns the errors of the last submit attempt.
func (c *Controller) FieldErrors() lead.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.fieldErrors)
}

// Submit sends the draft once. A second call while the first is running gets ErrFormBusy.
// The returned error is the pipeline error; the Outcome is also published under the form id.
func (c *Controller) Submit(ctx context.Context) (lead.Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return lead.Outcome{}, ErrFormClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return lead.Outcome{}, ErrFormBusy
	}
	c.submitting = true
	c.fieldErrors = nil
	draft := c.draft
	c.lastActivity = c.now()
	c.mu.Unlock()

	c.publish(notification.TypeState, StateSubmitting)

	err := c.submitter.Submit(ctx, draft)
	outcome := lead.OutcomeFor(err)

	c.mu.Lock()
	c.submitting = false
	if c.closed {
		c.mu.Unlock()
		return outcome, ErrFormClosed
	}
	if err == nil {
		c.draft = lead.Draft{}
		c.errorUntil = time.Time{}
	} else {
		var ve *lead.ValidationError
		if errors.As(err, &ve) {
			c.fieldErrors = copyErrors(ve.Fields)
		}
		c.errorUntil = c.now().Add(c.errorTTL)
	}
	c.lastOutcome = &outcome
	c.lastActivity = c.now()
	state := c.stateLocked()
	c.mu.Unlock()

	c.publish(notification.TypeOutcome, outcome)
	c.publish(notification.TypeState, state)
	return outcome, err
}

// Snapshot returns a copy of the session including its reference lists.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	v := View{
		ID:          c.id,
		Variant:     c.submitter.Variant(),
		State:       c.stateLocked(),
		Draft:       c.draft,
		FieldErrors: copyErrors(c.fieldErrors),
		CreatedAt:   c.createdAt,
	}
	if c.lastOutcome != nil {
		o := *c.lastOutcome
		v.LastOutcome = &o
	}
	c.mu.Unlock()

	v.References = []reference.State{}
	if c.board != nil {
		v.References = c.board.Snapshot()
	}
	return v
}

// References exposes the reference board mounted for the session.
func (c *Controller) References() *reference.Board {
	return c.board
}

func (c *Controller) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return c.now()
	}
	return c.lastActivity
}

func (c *Controller) close() {
	c.mu.Lock()
	c.closed = true
	c.draft = lead.Draft{}
	c.mu.Unlock()
}

func (c *Controller) publish(kind string, payload interface{}) {
	if c.publisher == nil {
		return
	}
	c.publisher.Publish(c.id, notification.Message{Type: kind, Payload: payload, At: c.now()})
}

func copyErrors(in lead.FieldErrors) lead.FieldErrors {
	if in == nil {
		return nil
	}
	out := make(lead.FieldErrors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
