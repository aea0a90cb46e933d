package store

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// AddStep appends an empty step to the active form and returns its id.
func (s *Store) AddStep() (string, bool) {
	form := s.activeForm()
	if form == nil {
		return "", false
	}
	step := formdoc.Step{
		ID:     s.newID(),
		Title:  fmt.Sprintf("Step %d", len(form.Steps)+1),
		Fields: []formdoc.Field{},
	}
	form.Steps = append(form.Steps, step)
	s.commit(form)
	return step.ID, true
}

// UpdateStepTitle replaces the title of the step at index within the active
// form. Out-of-range indices are a no-op.
func (s *Store) UpdateStepTitle(index int, title string) bool {
	form := s.activeForm()
	if form == nil || index < 0 || index >= len(form.Steps) {
		return false
	}
	form.Steps[index].Title = formdoc.SanitizeText(title)
	s.commit(form)
	return true
}

// RemoveStep deletes the step at index. A form keeps at least one step, so
// removing the last remaining step is rejected. The active step index is
// clamped when it would fall past the new end.
func (s *Store) RemoveStep(index int) bool {
	form := s.activeForm()
	if form == nil || len(form.Steps) <= 1 {
		return false
	}
	if index < 0 || index >= len(form.Steps) {
		return false
	}
	form.Steps = append(form.Steps[:index], form.Steps[index+1:]...)
	if s.currentStepIndex >= len(form.Steps) {
		s.currentStepIndex = len(form.Steps) - 1
	}
	s.commit(form)
	return true
}
