// Package form implements a reusable form-state controller: current values,
// per-field error messages and a submitting flag for any record type whose
// fields can be set by name.
//
// Two validation passes exist. Change re-validates only the edited field;
// Submit re-validates everything and replaces the whole error map before
// deciding whether to run the submit action.
package form

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/diradmin/internal/logging"
)

var (
	// ErrInvalid is returned by Submit when validation failed and the
	// action was not run. Field messages are available from Errors.
	ErrInvalid = errors.New("form has validation errors")

	// ErrBusy is returned by Submit while a previous action is still running.
	ErrBusy = errors.New("form is already submitting")
)

// Record is a value type whose fields can be replaced by name.
type Record[T any] interface {
	WithField(name, value string) (T, error)
}

// Validator returns the messages for every failing field of values.
type Validator[T any, E ~map[string]string] func(values T) E

// SubmitFunc is the action run with valid values.
type SubmitFunc[T any] func(ctx context.Context, values T) error

// Form holds the state of a single form instance. It is safe for concurrent
// use, and at most one submit action runs at a time.
type Form[T Record[T], E ~map[string]string] struct {
	mu         sync.Mutex
	values     T
	errors     E
	submitting bool

	validate Validator[T, E]
	submit   SubmitFunc[T]
	log      logging.Logger
}

// Option configures a Form.
type Option func(*options)

type options struct {
	log logging.Logger
}

// WithLogger sets the logger used to report failed submit actions.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

// New creates a form whose values start at defaults with no errors.
func New[T Record[T], E ~map[string]string](defaults T, validate Validator[T, E], submit SubmitFunc[T], opts ...Option) *Form[T, E] {
	o := options{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Form[T, E]{
		values:   defaults,
		errors:   E{},
		validate: validate,
		submit:   submit,
		log:      o.log,
	}
}

// Values returns the current values.
func (f *Form[T, E]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current error map.
func (f *Form[T, E]) Errors() E {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.errors)
}

// Err returns the message for one field, or "".
func (f *Form[T, E]) Err(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[name]
}

// Submitting reports whether an action is in flight.
func (f *Form[T, E]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Change sets one field and re-validates only that field against the
// updated value set. It returns the field's message ("" when valid).
// Errors of other fields are left as they were.
func (f *Form[T, E]) Change(name, value string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := f.values.WithField(name, value)
	if err != nil {
		return "", err
	}
	f.values = next

	msg := f.validate(next)[name]
	if msg == "" {
		delete(f.errors, name)
	} else {
		f.errors[name] = msg
	}
	return msg, nil
}

// Submit validates all fields and, when none fail, runs the submit action
// with the current values. A failing action is logged and its error
// returned; it never becomes a field error. The submitting flag is cleared
// once the action returns, whatever the outcome.
func (f *Form[T, E]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}

	errs := f.validate(f.values)
	if len(errs) > 0 {
		f.errors = maps.Clone(errs)
		f.mu.Unlock()
		return ErrInvalid
	}
	f.errors = E{}

	f.submitting = true
	values := f.values
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := f.submit(ctx, values); err != nil {
		f.log.Error(ctx, "submission failed", "error", err)
		return err
	}
	return nil
}
