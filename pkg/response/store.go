// Package response owns submitted form responses: an ordered list of
// immutable records per form, persisted as a full mapping alongside the
// forms themselves.
package response

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Record is one submitted fill of a form. Records never change once
// created; they are only deleted.
type Record struct {
	ID        string                   `json:"id"`
	FormID    string                   `json:"formId"`
	Timestamp time.Time                `json:"timestamp"`
	Data      map[string]formdoc.Value `json:"data"`
}

// Store maps form IDs to their submitted responses, in submission order.
type Store struct {
	responses map[string][]Record

	newID  func() string
	now    func() time.Time
	kv     storage.KV
	logger *zap.Logger
}

// Option customises the response store.
type Option func(*Store)

// WithIDGenerator overrides the identifier generator.
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

// WithKV injects the durable snapshot adapter.
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

// New constructs an empty response store.
func New(options ...Option) *Store {
	s := &Store{
		responses: make(map[string][]Record),
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load replaces the in-memory mapping with the persisted snapshot.
func (s *Store) Load(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	data, ok, err := s.kv.Get(ctx, storage.KeyResponses)
	if err != nil {
		return fmt.Errorf("response: load: %w", err)
	}
	if !ok {
		return nil
	}
	var responses map[string][]Record
	if err := json.Unmarshal(data, &responses); err != nil {
		return fmt.Errorf("response: decode: %w", err)
	}
	if responses == nil {
		responses = make(map[string][]Record)
	}
	s.responses = responses
	return nil
}

// Submit appends a new record for the form and returns its id. The data
// mapping is copied; callers keep ownership of theirs.
func (s *Store) Submit(formID string, data map[string]formdoc.Value) string {
	record := Record{
		ID:        s.newID(),
		FormID:    formID,
		Timestamp: s.now(),
		Data:      make(map[string]formdoc.Value, len(data)),
	}
	for fieldID, value := range data {
		record.Data[fieldID] = value
	}
	s.responses[formID] = append(s.responses[formID], record)
	s.persist()
	return record.ID
}

// ByForm returns the responses for a form in submission order.
func (s *Store) ByForm(formID string) []Record {
	return append([]Record(nil), s.responses[formID]...)
}

// Count reports the number of responses recorded for a form.
func (s *Store) Count(formID string) int {
	return len(s.responses[formID])
}

// Delete removes a single response.
func (s *Store) Delete(formID, responseID string) bool {
	records, ok := s.responses[formID]
	if !ok {
		return false
	}
	for i, record := range records {
		if record.ID == responseID {
			remaining := append(records[:i], records[i+1:]...)
			if len(remaining) == 0 {
				// No empty slice left behind: a form with zero responses
				// looks the same whether it was never filled or fully pruned.
				delete(s.responses, formID)
			} else {
				s.responses[formID] = remaining
			}
			s.persist()
			return true
		}
	}
	return false
}

// Clear removes every response recorded for a form.
func (s *Store) Clear(formID string) bool {
	if _, ok := s.responses[formID]; !ok {
		return false
	}
	delete(s.responses, formID)
	s.persist()
	return true
}

// Orphaned lists form ids that still hold responses but no longer pass the
// given existence check. Deleting a form does not cascade into its
// responses, so the responses page uses this to surface leftovers.
func (s *Store) Orphaned(formExists func(formID string) bool) []string {
	var out []string
	for formID, records := range s.responses {
		if len(records) == 0 {
			continue
		}
		if !formExists(formID) {
			out = append(out, formID)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Store) persist() {
	if s.kv == nil {
		return
	}
	data, err := json.Marshal(s.responses)
	if err != nil {
		s.logger.Warn("encoding responses snapshot failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(context.Background(), storage.KeyResponses, data); err != nil {
		s.logger.Warn("persisting responses snapshot failed", zap.Error(err))
	}
}
