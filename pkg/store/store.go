// Package store owns the form documents: a process-wide mapping of form ID
// to document plus a single active form/step pointer, with create, load,
// duplicate, template and field/step mutation operations.
//
// Mutations are total: stale or unknown identifiers never panic or error,
// the operation reports false and leaves state untouched. Structural
// invariants (a form keeps at least one step, an option list never shrinks
// below one entry) are enforced here rather than left to callers.
//
// The store is built for a single synchronous actor. Operations complete,
// including the durable snapshot write, before the next intent runs; there
// is no internal locking.
package store

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Store holds every form document and the active form/step pointer.
type Store struct {
	forms            map[string]*formdoc.Form
	currentFormID    string
	currentStepIndex int

	newID  func() string
	now    func() time.Time
	kv     storage.KV
	logger *zap.Logger
}

// Option customises the store configuration.
type Option func(*Store)

// WithIDGenerator overrides the identifier generator. The generator must
// produce globally unique strings.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithKV injects the durable snapshot adapter. Without one the store is
// memory-only.
func WithKV(kv storage.KV) Option {
	return func(s *Store) {
		s.kv = kv
	}
}

// WithLogger injects the logger used for persistence warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs an empty store.
func New(options ...Option) *Store {
	s := &Store{
		forms:  make(map[string]*formdoc.Form),
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Len reports how many forms the store holds.
func (s *Store) Len() int {
	return len(s.forms)
}

// Form returns a deep copy of the identified form.
func (s *Store) Form(formID string) (formdoc.Form, bool) {
	form, ok := s.forms[formID]
	if !ok {
		return formdoc.Form{}, false
	}
	return form.Clone(), true
}

// Forms returns deep copies of every form, oldest first.
func (s *Store) Forms() []formdoc.Form {
	out := make([]formdoc.Form, 0, len(s.forms))
	for _, form := range s.forms {
		out = append(out, form.Clone())
	}
	sortForms(out)
	return out
}

// ActiveFormID reports the active form pointer, empty when nothing is
// active.
func (s *Store) ActiveFormID() string {
	return s.currentFormID
}

// ActiveForm returns a deep copy of the active form.
func (s *Store) ActiveForm() (formdoc.Form, bool) {
	if s.currentFormID == "" {
		return formdoc.Form{}, false
	}
	return s.Form(s.currentFormID)
}

// ActiveStepIndex reports the active step index within the active form.
func (s *Store) ActiveStepIndex() int {
	return s.currentStepIndex
}

// ActiveStep returns a deep copy of the active step of the active form.
func (s *Store) ActiveStep() (formdoc.Step, bool) {
	step := s.activeStep()
	if step == nil {
		return formdoc.Step{}, false
	}
	return step.Clone(), true
}

func (s *Store) activeForm() *formdoc.Form {
	if s.currentFormID == "" {
		return nil
	}
	return s.forms[s.currentFormID]
}

func (s *Store) activeStep() *formdoc.Step {
	form := s.activeForm()
	if form == nil {
		return nil
	}
	if s.currentStepIndex < 0 || s.currentStepIndex >= len(form.Steps) {
		return nil
	}
	return &form.Steps[s.currentStepIndex]
}

// commit stamps the form's updatedAt and writes the durable snapshot.
func (s *Store) commit(form *formdoc.Form) {
	form.UpdatedAt = s.now()
	s.persist()
}

func sortForms(forms []formdoc.Form) {
	sort.Slice(forms, func(i, j int) bool {
		if forms[i].CreatedAt.Equal(forms[j].CreatedAt) {
			return forms[i].ID < forms[j].ID
		}
		return forms[i].CreatedAt.Before(forms[j].CreatedAt)
	})
}
