package store

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// FieldPatch carries a partial field update. Nil members leave the current
// value alone. A field's type is immutable; changing kinds means removing
// and re-adding the field.
type FieldPatch struct {
	Label       *string
	Placeholder *string
	HelpText    *string
	Required    *bool
	Validation  *formdoc.Validation
}

// AddField appends a field of the given type to the active step and returns
// its id.
func (s *Store) AddField(fieldType formdoc.FieldType) (string, bool) {
	step := s.activeStep()
	if step == nil || !fieldType.Valid() {
		return "", false
	}
	field := s.newField(fieldType)
	step.Fields = append(step.Fields, field)
	s.commit(s.activeForm())
	return field.ID, true
}

// InsertField places a field of the given type at index within the active
// step, appending when the index is past the end.
func (s *Store) InsertField(fieldType formdoc.FieldType, index int) (string, bool) {
	step := s.activeStep()
	if step == nil || !fieldType.Valid() || index < 0 {
		return "", false
	}
	field := s.newField(fieldType)
	if index >= len(step.Fields) {
		step.Fields = append(step.Fields, field)
	} else {
		step.Fields = append(step.Fields, formdoc.Field{})
		copy(step.Fields[index+1:], step.Fields[index:])
		step.Fields[index] = field
	}
	s.commit(s.activeForm())
	return field.ID, true
}

// UpdateField merges a partial update into the identified field of the
// active step. Unknown ids are a no-op.
func (s *Store) UpdateField(fieldID string, patch FieldPatch) bool {
	field := s.findField(fieldID)
	if field == nil {
		return false
	}
	if patch.Label != nil {
		field.Label = formdoc.SanitizeText(*patch.Label)
	}
	if patch.Placeholder != nil {
		field.Placeholder = formdoc.SanitizeText(*patch.Placeholder)
	}
	if patch.HelpText != nil {
		field.HelpText = formdoc.SanitizeText(*patch.HelpText)
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Validation != nil {
		field.Validation = patch.Validation.Clone()
	}
	s.commit(s.activeForm())
	return true
}

// RemoveField deletes the identified field from the active step.
func (s *Store) RemoveField(fieldID string) bool {
	step := s.activeStep()
	if step == nil {
		return false
	}
	for i, field := range step.Fields {
		if field.ID == fieldID {
			step.Fields = append(step.Fields[:i], step.Fields[i+1:]...)
			s.commit(s.activeForm())
			return true
		}
	}
	return false
}

// ReorderFields moves the field at source to destination within the active
// step. Equal or out-of-range indices are a no-op.
func (s *Store) ReorderFields(source, destination int) bool {
	step := s.activeStep()
	if step == nil || source == destination {
		return false
	}
	n := len(step.Fields)
	if source < 0 || source >= n || destination < 0 || destination >= n {
		return false
	}
	moved := step.Fields[source]
	step.Fields = append(step.Fields[:source], step.Fields[source+1:]...)
	step.Fields = append(step.Fields, formdoc.Field{})
	copy(step.Fields[destination+1:], step.Fields[destination:])
	step.Fields[destination] = moved
	s.commit(s.activeForm())
	return true
}

// AddFieldOption appends a default-valued option to a dropdown or checkbox
// field and returns the option id. Fields of other types are left alone.
func (s *Store) AddFieldOption(fieldID string) (string, bool) {
	field := s.findField(fieldID)
	if field == nil || !field.Type.HasOptions() {
		return "", false
	}
	option := formdoc.Option{
		ID:    s.newID(),
		Value: fmt.Sprintf("Option %d", len(field.Options)+1),
	}
	field.Options = append(field.Options, option)
	s.commit(s.activeForm())
	return option.ID, true
}

// UpdateFieldOption replaces the value of the identified option.
func (s *Store) UpdateFieldOption(fieldID, optionID, value string) bool {
	field := s.findField(fieldID)
	if field == nil {
		return false
	}
	for i := range field.Options {
		if field.Options[i].ID == optionID {
			field.Options[i].Value = formdoc.SanitizeText(value)
			s.commit(s.activeForm())
			return true
		}
	}
	return false
}

// RemoveFieldOption deletes the identified option. A field's option list
// never shrinks below one entry; removing the last option is rejected.
func (s *Store) RemoveFieldOption(fieldID, optionID string) bool {
	field := s.findField(fieldID)
	if field == nil || len(field.Options) <= 1 {
		return false
	}
	for i := range field.Options {
		if field.Options[i].ID == optionID {
			field.Options = append(field.Options[:i], field.Options[i+1:]...)
			s.commit(s.activeForm())
			return true
		}
	}
	return false
}

func (s *Store) newField(fieldType formdoc.FieldType) formdoc.Field {
	field := formdoc.Field{
		ID:    s.newID(),
		Type:  fieldType,
		Label: fmt.Sprintf("New %s field", fieldType),
	}
	if fieldType.HasOptions() {
		field.Options = []formdoc.Option{{ID: s.newID(), Value: "Option 1"}}
	}
	return field
}

func (s *Store) findField(fieldID string) *formdoc.Field {
	step := s.activeStep()
	if step == nil {
		return nil
	}
	for i := range step.Fields {
		if step.Fields[i].ID == fieldID {
			return &step.Fields[i]
		}
	}
	return nil
}
