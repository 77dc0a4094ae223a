// Package entry implements the transaction entry flow: the form state, the
// submit guard against double activation, and the save-and-exit /
// save-and-continue intents.
//
// A Form moves Idle -> Submitting -> Idle (rejected) or Completed. The guard is
// engaged before validation runs, so a second submit that arrives while the
// first is being decided is ignored instead of producing a second draft.
// SubmitAndRecord keeps the guard engaged while the draft is stored and falls
// back to Idle when storing fails.
package entry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bukukas/internal/core"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Intent selects what happens to the flow after a successful submit.
type Intent int

const (
	SaveAndExit Intent = iota
	SaveAndContinue
)

func (i Intent) String() string {
	if i == SaveAndContinue {
		return "continue"
	}
	return "exit"
}

// ParseIntent accepts "exit" and "continue". Empty means exit.
func ParseIntent(s string) (Intent, error) {
	switch s {
	case "", "exit":
		return SaveAndExit, nil
	case "continue":
		return SaveAndContinue, nil
	default:
		return SaveAndExit, ErrUnknownIntent
	}
}

var (
	ErrSubmitInFlight = errors.New("submit already in progress")
	ErrCompleted      = errors.New("entry flow already completed")
	ErrNotEditable    = errors.New("entry form is not editable")
	ErrUnknownIntent  = errors.New("unknown submit intent")
	ErrNotRecorded    = errors.New("entry was not recorded")
	ErrNotDiscardable = errors.New("entry is being saved")
)

// RecordFunc stores a validated draft. It runs while the submit guard is
// engaged.
type RecordFunc func(core.TransactionDraft) error

type validateFunc func(desc, amount string, dir core.Direction, at time.Time) (core.TransactionDraft, error)

// Form holds the raw state of one entry flow.
type Form struct {
	mu          sync.Mutex
	state       State
	discarded   bool
	direction   core.Direction
	occurredAt  time.Time
	description string
	amount      string

	now      func() time.Time
	validate validateFunc
}

// Option configures a Form.
type Option func(*Form)

// WithClock sets the time source used for the initial timestamp.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// New opens an entry flow for direction with the timestamp set to now.
func New(direction core.Direction, opts ...Option) *Form {
	f := &Form{
		state:     StateIdle,
		direction: direction,
		now:       time.Now,
		validate:  core.Validate,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.occurredAt = f.now()
	return f
}

// Fields is a read-only copy of the form state.
type Fields struct {
	State       State
	Direction   core.Direction
	OccurredAt  time.Time
	Description string
	Amount      string
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Fields{
		State:       f.state,
		Direction:   f.direction,
		OccurredAt:  f.occurredAt,
		Description: f.description,
		Amount:      f.amount,
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) SetDescription(s string) error {
	return f.edit(func() { f.description = s })
}

func (f *Form) SetAmount(s string) error {
	return f.edit(func() { f.amount = s })
}

func (f *Form) SetDirection(d core.Direction) error {
	if !d.Valid() {
		return core.ErrInvalidDirection
	}
	return f.edit(func() { f.direction = d })
}

func (f *Form) ToggleDirection() error {
	return f.edit(func() { f.direction = f.direction.Opposite() })
}

func (f *Form) SetOccurredAt(t time.Time) error {
	return f.edit(func() { f.occurredAt = t })
}

// SetDate replaces the calendar date and keeps the time of day.
func (f *Form) SetDate(year int, month time.Month, day int) error {
	return f.edit(func() {
		t := f.occurredAt
		f.occurredAt = time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	})
}

// SetTime replaces hour and minute and keeps the date.
func (f *Form) SetTime(hour, minute int) error {
	return f.edit(func() {
		t := f.occurredAt
		f.occurredAt = time.Date(t.Year(), t.Month(), t.Day(), hour, minute, t.Second(), t.Nanosecond(), t.Location())
	})
}

func (f *Form) edit(apply func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateIdle || f.discarded {
		return ErrNotEditable
	}
	apply()
	return nil
}

// Submit validates the form and, on success, completes the flow.
//
// On a validation error the form returns to Idle and the *core.ValidationError
// is returned. While another submit is being decided ErrSubmitInFlight is
// returned; after completion ErrCompleted is returned.
func (f *Form) Submit(intent Intent) (Result, error) {
	return f.submit(intent, nil)
}

// SubmitValues sets description and amount and submits in one step, so a
// losing concurrent caller cannot overwrite the winner's input.
func (f *Form) SubmitValues(description, amount string, intent Intent) (Result, error) {
	return f.submit(intent, func() {
		f.description = description
		f.amount = amount
	})
}

// SubmitAndRecord is SubmitValues with record run before the flow completes.
// A second submit during record gets ErrSubmitInFlight. When record fails the
// form goes back to Idle with its input kept, and the error wraps
// ErrNotRecorded.
func (f *Form) SubmitAndRecord(description, amount string, intent Intent, record RecordFunc) (Result, error) {
	return f.submitWith(intent, func() {
		f.description = description
		f.amount = amount
	}, record)
}

func (f *Form) submit(intent Intent, apply func()) (Result, error) {
	return f.submitWith(intent, apply, nil)
}

func (f *Form) submitWith(intent Intent, apply func(), record RecordFunc) (Result, error) {
	f.mu.Lock()
	switch {
	case f.discarded:
		f.mu.Unlock()
		return Result{}, ErrCompleted
	case f.state == StateSubmitting:
		f.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	case f.state == StateCompleted:
		f.mu.Unlock()
		return Result{}, ErrCompleted
	}
	if apply != nil {
		apply()
	}
	f.state = StateSubmitting
	desc, amount, dir, at := f.description, f.amount, f.direction, f.occurredAt
	validate, now := f.validate, f.now
	f.mu.Unlock()

	draft, err := validate(desc, amount, dir, at)
	if err == nil && record != nil {
		if rerr := record(draft); rerr != nil {
			err = fmt.Errorf("%w: %w", ErrNotRecorded, rerr)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateIdle
		return Result{}, err
	}
	f.state = StateCompleted
	return Result{Draft: draft, Intent: intent, now: now}, nil
}

// Release reopens a completed form whose draft could not be stored by the
// caller. Fields are kept so the user can retry.
func (f *Form) Release() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateCompleted || f.discarded {
		return ErrNotEditable
	}
	f.state = StateIdle
	return nil
}

// Discard closes the flow for good unless a submit is being decided, in
// which case ErrNotDiscardable is returned and nothing changes. Later
// submits get ErrCompleted.
func (f *Form) Discard() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return ErrNotDiscardable
	}
	f.discarded = true
	return nil
}
