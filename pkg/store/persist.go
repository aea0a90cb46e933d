package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Snapshot is a self-contained copy of the store state. Snapshots are opaque
// values for the undo history: structural copies, not diffs.
type Snapshot struct {
	Forms            map[string]formdoc.Form
	CurrentFormID    string
	CurrentStepIndex int
}

// Snapshot captures the current state as a deep copy.
func (s *Store) Snapshot() Snapshot {
	forms := make(map[string]formdoc.Form, len(s.forms))
	for id, form := range s.forms {
		forms[id] = form.Clone()
	}
	return Snapshot{
		Forms:            forms,
		CurrentFormID:    s.currentFormID,
		CurrentStepIndex: s.currentStepIndex,
	}
}

// Restore replaces the store state with a snapshot and persists the result.
func (s *Store) Restore(snapshot Snapshot) {
	forms := make(map[string]*formdoc.Form, len(snapshot.Forms))
	for id, form := range snapshot.Forms {
		owned := form.Clone()
		forms[id] = &owned
	}
	s.forms = forms
	s.currentFormID = snapshot.CurrentFormID
	s.currentStepIndex = snapshot.CurrentStepIndex
	if s.activeForm() == nil {
		s.currentFormID = ""
		s.currentStepIndex = 0
	}
	s.persist()
}

// Load replaces the in-memory form mapping with the persisted snapshot.
// Called once at startup; a missing key leaves the store empty.
func (s *Store) Load(ctx context.Context) error {
	if s.kv == nil {
		return nil
	}
	data, ok, err := s.kv.Get(ctx, storage.KeyForms)
	if err != nil {
		return fmt.Errorf("store: load forms: %w", err)
	}
	if !ok {
		return nil
	}
	var forms map[string]*formdoc.Form
	if err := json.Unmarshal(data, &forms); err != nil {
		return fmt.Errorf("store: decode forms: %w", err)
	}
	if forms == nil {
		forms = make(map[string]*formdoc.Form)
	}
	s.forms = forms
	return nil
}

// persist writes the full form mapping. Failures are logged and swallowed:
// the in-memory mutation stands and the editor keeps working.
func (s *Store) persist() {
	if s.kv == nil {
		return
	}
	data, err := json.Marshal(s.forms)
	if err != nil {
		s.logger.Warn("encoding forms snapshot failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(context.Background(), storage.KeyForms, data); err != nil {
		s.logger.Warn("persisting forms snapshot failed", zap.Error(err))
	}
}
