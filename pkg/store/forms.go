package store

import (
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/formdoc/templates"
)

// Create registers a fresh blank form, activates it and returns its id.
func (s *Store) Create() string {
	form := templates.Blank(s.newID, s.now())
	s.forms[form.ID] = &form
	s.currentFormID = form.ID
	s.currentStepIndex = 0
	s.persist()
	return form.ID
}

// LoadForm points the store at an existing form. Unknown ids are ignored;
// callers own existence checks and redirects.
func (s *Store) LoadForm(formID string) bool {
	if _, ok := s.forms[formID]; !ok {
		return false
	}
	s.currentFormID = formID
	s.currentStepIndex = 0
	return true
}

// UpdateTitle replaces the active form's title.
func (s *Store) UpdateTitle(title string) bool {
	form := s.activeForm()
	if form == nil {
		return false
	}
	form.Title = formdoc.SanitizeText(title)
	s.commit(form)
	return true
}

// UpdateDescription replaces the active form's description.
func (s *Store) UpdateDescription(description string) bool {
	form := s.activeForm()
	if form == nil {
		return false
	}
	form.Description = formdoc.SanitizeText(description)
	s.commit(form)
	return true
}

// Delete removes a form. When the active form is deleted the active pointer
// clears and the step index resets. Responses recorded against the form are
// left in place.
func (s *Store) Delete(formID string) bool {
	if _, ok := s.forms[formID]; !ok {
		return false
	}
	delete(s.forms, formID)
	if s.currentFormID == formID {
		s.currentFormID = ""
		s.currentStepIndex = 0
	}
	s.persist()
	return true
}

// Duplicate deep-copies a form under a new id with " (Copy)" appended to the
// title and fresh timestamps. The copy is registered but not activated;
// duplication is a background operation and activation stays a separate
// intent.
func (s *Store) Duplicate(formID string) (string, bool) {
	source, ok := s.forms[formID]
	if !ok {
		return "", false
	}
	now := s.now()
	dupe := source.Clone()
	dupe.ID = s.newID()
	dupe.Title = source.Title + " (Copy)"
	dupe.CreatedAt = now
	dupe.UpdatedAt = now
	s.forms[dupe.ID] = &dupe
	s.persist()
	return dupe.ID, true
}

// LoadTemplate synthesizes a built-in template, registers it and activates
// it. Unknown kinds report false.
func (s *Store) LoadTemplate(kind templates.Kind) (string, bool) {
	form, ok := templates.Builtin(kind, s.newID, s.now())
	if !ok {
		return "", false
	}
	return s.Install(form), true
}

// InstallTemplate instantiates a parsed template with the store's id
// generator and clock, then registers and activates the result.
func (s *Store) InstallTemplate(template templates.Template) string {
	return s.Install(template.Instantiate(s.newID, s.now()))
}

// Install registers an externally built document (a YAML template instance,
// an OpenAPI import) and activates it.
func (s *Store) Install(form formdoc.Form) string {
	owned := form.Clone()
	s.forms[owned.ID] = &owned
	s.currentFormID = owned.ID
	s.currentStepIndex = 0
	s.persist()
	return owned.ID
}

// SetCurrentStep moves the active step pointer. Out-of-range requests are
// ignored so the pointer always stays valid.
func (s *Store) SetCurrentStep(index int) bool {
	form := s.activeForm()
	if form == nil {
		return false
	}
	if index < 0 || index >= len(form.Steps) {
		return false
	}
	s.currentStepIndex = index
	return true
}
