package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-orderform/pkg/gateway"
	"github.com/goliatone/go-orderform/pkg/model"
	"github.com/goliatone/go-orderform/pkg/schema"
	"github.com/goliatone/go-orderform/pkg/validation"
)

var (
	// ErrUnknownTopping is returned when a topping id is not in the catalog.
	ErrUnknownTopping = errors.New("state: unknown topping")
	// ErrNotSubmittable is returned when a submission is attempted while the
	// form is not eligible.
	ErrNotSubmittable = errors.New("state: form is not submittable")
)

// Submitter sends form values to the order endpoint.
type Submitter interface {
	Submit(ctx context.Context, values model.FormValues) (gateway.Result, error)
}

// Snapshot is a consistent copy of the store taken under its lock.
type Snapshot struct {
	Values      model.FormValues  `json:"values"`
	Errors      model.FieldErrors `json:"errors"`
	Submittable bool              `json:"submittable"`
	Feedback    model.Feedback    `json:"feedback"`
}

// Option configures a Store.
type Option func(*Store)

// WithSchema sets the schema the store validates against.
func WithSchema(s *schema.Schema) Option {
	return func(st *Store) {
		if s != nil {
			st.schema = s
		}
	}
}

// WithFallbackMessage overrides the failure banner used when a submission
// error carries no server message.
func WithFallbackMessage(message string) Option {
	return func(st *Store) {
		if message != "" {
			st.fallback = message
		}
	}
}

// Store holds the values, per-field errors, derived submit eligibility and
// server feedback of one order form.
type Store struct {
	mu sync.RWMutex

	schema    *schema.Schema
	validator *validation.Validator
	fallback  string

	values      model.FormValues
	errors      model.FieldErrors
	submittable bool
	feedback    model.Feedback
}

// New returns a store holding the schema's initial values.
func New(options ...Option) *Store {
	st := &Store{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(st)
	}
	if st.schema == nil {
		st.schema = schema.Default()
	}
	if st.fallback == "" {
		st.fallback = st.schema.FallbackMessage()
	}
	st.validator = validation.New(st.schema)
	st.values = st.schema.InitialValues()
	st.errors = st.schema.InitialErrors()
	st.recompute()
	return st
}

// Schema returns the schema backing the store.
func (s *Store) Schema() *schema.Schema {
	return s.schema
}

// SetFullName updates the name, its error entry and submit eligibility.
func (s *Store) SetFullName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values.FullName = name
	s.errors[model.FieldFullName] = validation.Message(s.validator.ValidateField(model.FieldFullName, name))
	s.changed()
}

// SetSize updates the size, its error entry and submit eligibility.
func (s *Store) SetSize(size model.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values.Size = size
	s.errors[model.FieldSize] = validation.Message(s.validator.ValidateField(model.FieldSize, size))
	s.changed()
}

// ToggleTopping sets the selection of the topping identified by id. Name
// and size errors are left untouched.
func (s *Store) ToggleTopping(id string, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.values.Toppings {
		if s.values.Toppings[i].ID != id {
			continue
		}
		s.values.Toppings[i].Selected = selected
		key := model.ToppingKey(id)
		s.errors[key] = validation.Message(s.validator.ValidateField(key, selected))
		s.changed()
		return nil
	}
	return fmt.Errorf("%w %q", ErrUnknownTopping, id)
}

// Load replaces every value at once, as when a whole form is posted, and
// validates every field.
func (s *Store) Load(values model.FormValues) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = s.schema.Normalize(values)
	s.errors = s.validator.FieldErrors(s.values)
	s.changed()
}

// Hydrate replaces every value at once, as when restoring a form in
// progress, and records errors only for the name and size once they hold
// input. Untouched fields stay silent.
func (s *Store) Hydrate(values model.FormValues) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = s.schema.Normalize(values)
	s.errors = s.schema.InitialErrors()
	if s.values.FullName != "" {
		s.errors[model.FieldFullName] = validation.Message(s.validator.ValidateField(model.FieldFullName, s.values.FullName))
	}
	if s.values.Size != model.SizeNone {
		s.errors[model.FieldSize] = validation.Message(s.validator.ValidateField(model.FieldSize, s.values.Size))
	}
	s.changed()
}

// Reset restores the initial values and clears every field error. Feedback
// is kept so a success banner survives the reset that follows it.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// IsSubmittable reports whether the current name and size are valid.
func (s *Store) IsSubmittable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submittable
}

// Values returns a copy of the current values.
func (s *Store) Values() model.FormValues {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Clone()
}

// Errors returns a copy of the current field errors.
func (s *Store) Errors() model.FieldErrors {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors.Clone()
}

// Feedback returns the current server feedback.
func (s *Store) Feedback() model.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedback
}

// Snapshot copies the whole state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Values:      s.values.Clone(),
		Errors:      s.errors.Clone(),
		Submittable: s.submittable,
		Feedback:    s.feedback,
	}
}

// BeginSubmission clears feedback and returns the values to submit. It
// fails with ErrNotSubmittable while the form is not eligible.
func (s *Store) BeginSubmission() (model.FormValues, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.submittable {
		return model.FormValues{}, ErrNotSubmittable
	}
	s.feedback = model.Feedback{}
	return s.values.Clone(), nil
}

// ApplyResult records the outcome of a submission. Success sets the success
// banner and resets the form; failure sets the failure banner and keeps the
// values.
func (s *Store) ApplyResult(result gateway.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.feedback = model.Feedback{Failure: gateway.FailureMessage(err, s.fallback)}
		return
	}
	s.feedback = model.Feedback{Success: result.Message}
	s.reset()
}

// Submit runs a full round-trip through submitter. The lock is not held
// while the request is in flight, so the form stays interactive. The
// returned error is the submitter's error, or ErrNotSubmittable.
func (s *Store) Submit(ctx context.Context, submitter Submitter) error {
	if submitter == nil {
		return errors.New("state: submitter is required")
	}
	values, err := s.BeginSubmission()
	if err != nil {
		return err
	}
	result, err := submitter.Submit(ctx, values)
	s.ApplyResult(result, err)
	return err
}

func (s *Store) reset() {
	s.values = s.schema.InitialValues()
	s.errors = s.schema.InitialErrors()
	s.recompute()
}

func (s *Store) changed() {
	s.feedback = model.Feedback{}
	s.recompute()
}

func (s *Store) recompute() {
	s.submittable = s.validator.Submittable(s.values)
}
