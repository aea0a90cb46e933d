package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/formdoc/templates"
	"github.com/goliatone/go-formbuilder/pkg/storage"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// testClock hands out strictly increasing timestamps so updatedAt bumps are
// observable.
type testClock struct {
	current time.Time
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func sequentialIDs() func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
}

func newTestStore(kv storage.KV) *store.Store {
	return store.New(
		store.WithIDGenerator(sequentialIDs()),
		store.WithClock(newTestClock().Now),
		store.WithKV(kv),
	)
}

func TestCreateActivatesBlankForm(t *testing.T) {
	s := newTestStore(nil)

	formID := s.Create()
	if formID == "" {
		t.Fatal("expected a form id")
	}
	if s.ActiveFormID() != formID {
		t.Fatalf("expected active form %s, got %s", formID, s.ActiveFormID())
	}
	if s.ActiveStepIndex() != 0 {
		t.Fatalf("expected step index 0, got %d", s.ActiveStepIndex())
	}

	form, ok := s.Form(formID)
	if !ok {
		t.Fatal("form should be registered")
	}
	if form.Title != "Untitled Form" || len(form.Steps) != 1 {
		t.Fatalf("unexpected blank form: %+v", form)
	}
	if !form.CreatedAt.Equal(form.UpdatedAt) {
		t.Fatal("createdAt and updatedAt should match at birth")
	}
}

func TestLoadFormIgnoresUnknownID(t *testing.T) {
	s := newTestStore(nil)
	first := s.Create()

	if s.LoadForm("missing") {
		t.Fatal("unknown id should not load")
	}
	if s.ActiveFormID() != first {
		t.Fatal("active pointer should be untouched after failed load")
	}
}

func TestUpdateTitleBumpsUpdatedAt(t *testing.T) {
	s := newTestStore(nil)
	formID := s.Create()
	before, _ := s.Form(formID)

	if !s.UpdateTitle("Feedback") {
		t.Fatal("expected title update to apply")
	}
	after, _ := s.Form(formID)
	if after.Title != "Feedback" {
		t.Fatalf("expected new title, got %q", after.Title)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatal("updatedAt should advance on mutation")
	}

	if !s.UpdateDescription("Quarterly survey") {
		t.Fatal("expected description update to apply")
	}
	after, _ = s.Form(formID)
	if after.Description != "Quarterly survey" {
		t.Fatalf("expected description, got %q", after.Description)
	}
}

func TestUpdateTitleWithoutActiveForm(t *testing.T) {
	s := newTestStore(nil)
	if s.UpdateTitle("x") {
		t.Fatal("no active form: update must be a no-op")
	}
}

func TestDeleteClearsActivePointer(t *testing.T) {
	s := newTestStore(nil)
	formID := s.Create()
	s.SetCurrentStep(0)

	if !s.Delete(formID) {
		t.Fatal("expected delete to apply")
	}
	if s.ActiveFormID() != "" || s.ActiveStepIndex() != 0 {
		t.Fatal("deleting the active form should reset the pointers")
	}
	if s.Delete(formID) {
		t.Fatal("second delete should be a no-op")
	}
}

func TestDeleteInactiveFormKeepsPointer(t *testing.T) {
	s := newTestStore(nil)
	first := s.Create()
	second := s.Create()

	if !s.Delete(first) {
		t.Fatal("expected delete to apply")
	}
	if s.ActiveFormID() != second {
		t.Fatal("deleting another form should leave the active pointer alone")
	}
}

func TestDuplicateCopiesWithoutActivating(t *testing.T) {
	s := newTestStore(nil)
	originalID, _ := s.LoadTemplate(templates.KindContact)

	copyID, ok := s.Duplicate(originalID)
	if !ok {
		t.Fatal("expected duplicate to apply")
	}
	if s.ActiveFormID() != originalID {
		t.Fatal("duplicate must not steal the active pointer")
	}

	original, _ := s.Form(originalID)
	dupe, _ := s.Form(copyID)
	if dupe.Title != original.Title+" (Copy)" {
		t.Fatalf("unexpected copy title %q", dupe.Title)
	}
	if !dupe.CreatedAt.After(original.CreatedAt) {
		t.Fatal("copy should carry fresh timestamps")
	}

	// structural equality apart from id, title, timestamps
	dupe.ID = original.ID
	dupe.Title = original.Title
	dupe.CreatedAt = original.CreatedAt
	dupe.UpdatedAt = original.UpdatedAt
	if diff := cmp.Diff(original, dupe); diff != "" {
		t.Fatalf("copy structure differs (-want +got):\n%s", diff)
	}

	// deep copy: mutating the duplicate leaves the original alone
	s.LoadForm(copyID)
	s.UpdateStepTitle(0, "Renamed")
	original, _ = s.Form(originalID)
	if original.Steps[0].Title == "Renamed" {
		t.Fatal("duplicate shares state with the original")
	}
}

func TestDuplicateUnknownForm(t *testing.T) {
	s := newTestStore(nil)
	if _, ok := s.Duplicate("missing"); ok {
		t.Fatal("duplicating an unknown form should be a no-op")
	}
}

func TestLoadTemplateActivates(t *testing.T) {
	s := newTestStore(nil)
	formID, ok := s.LoadTemplate(templates.KindSurvey)
	if !ok {
		t.Fatal("expected survey template to load")
	}
	if s.ActiveFormID() != formID || s.ActiveStepIndex() != 0 {
		t.Fatal("template load should activate the new form")
	}
	form, _ := s.Form(formID)
	if len(form.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(form.Steps))
	}

	if _, ok := s.LoadTemplate(templates.Kind("bogus")); ok {
		t.Fatal("unknown template kind should report false")
	}
}

func TestSetCurrentStepIgnoresOutOfRange(t *testing.T) {
	s := newTestStore(nil)
	s.LoadTemplate(templates.KindSurvey)

	if !s.SetCurrentStep(1) {
		t.Fatal("index 1 should be valid for the survey template")
	}
	if s.SetCurrentStep(2) || s.SetCurrentStep(-1) {
		t.Fatal("out-of-range step requests must be ignored")
	}
	if s.ActiveStepIndex() != 1 {
		t.Fatalf("step index should stay at 1, got %d", s.ActiveStepIndex())
	}
}

func TestPersistedSnapshotRoundTrips(t *testing.T) {
	kv := storage.NewMemory()
	first := newTestStore(kv)
	formID, _ := first.LoadTemplate(templates.KindContact)
	first.Create()

	second := store.New(store.WithKV(kv))
	if err := second.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if second.Len() != 2 {
		t.Fatalf("expected 2 persisted forms, got %d", second.Len())
	}

	want, _ := first.Form(formID)
	got, ok := second.Form(formID)
	if !ok {
		t.Fatal("persisted form missing after reload")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("persisted form differs (-want +got):\n%s", diff)
	}
}

// failingKV simulates a storage layer that rejects writes, the quota-style
// fault persistence must shrug off.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (failingKV) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func (failingKV) Delete(context.Context, string) error {
	return errors.New("quota exceeded")
}

func TestPersistenceFailureKeepsMemoryState(t *testing.T) {
	s := store.New(store.WithKV(failingKV{}), store.WithIDGenerator(sequentialIDs()))

	formID := s.Create()
	if _, ok := s.Form(formID); !ok {
		t.Fatal("in-memory state should survive a failed persist")
	}
	if !s.UpdateTitle("Still here") {
		t.Fatal("mutations should keep applying after persist failures")
	}
	form, _ := s.Form(formID)
	if form.Title != "Still here" {
		t.Fatalf("unexpected title %q", form.Title)
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := newTestStore(nil)
	formID, _ := s.LoadTemplate(templates.KindContact)
	before := s.Snapshot()

	s.UpdateTitle("Changed")
	s.AddStep()

	s.Restore(before)
	form, ok := s.Form(formID)
	if !ok {
		t.Fatal("restored form missing")
	}
	if form.Title != "Contact Us Form" || len(form.Steps) != 1 {
		t.Fatalf("restore did not roll back: %+v", form)
	}
	if s.ActiveFormID() != formID {
		t.Fatal("restore should bring back the active pointer")
	}
}

func TestRestoreClampsDanglingPointer(t *testing.T) {
	s := newTestStore(nil)
	snapshot := store.Snapshot{
		Forms:            map[string]formdoc.Form{},
		CurrentFormID:    "gone",
		CurrentStepIndex: 3,
	}
	s.Restore(snapshot)
	if s.ActiveFormID() != "" || s.ActiveStepIndex() != 0 {
		t.Fatal("restore with a dangling pointer should clear the selection")
	}
}

func TestFormsSortedByCreation(t *testing.T) {
	s := newTestStore(nil)
	first := s.Create()
	second := s.Create()
	third := s.Create()

	forms := s.Forms()
	if len(forms) != 3 {
		t.Fatalf("expected 3 forms, got %d", len(forms))
	}
	order := []string{forms[0].ID, forms[1].ID, forms[2].ID}
	want := []string{first, second, third}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}
