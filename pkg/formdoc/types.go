package formdoc

import "time"

// FieldType is the closed set of field kinds a form can contain. The type of
// a field is fixed at creation; changing kinds means removing the field and
// adding a new one.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeURL      FieldType = "url"
	FieldTypeNumber   FieldType = "number"
)

// Valid reports whether t is a member of the supported set.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeDropdown, FieldTypeCheckbox,
		FieldTypeDate, FieldTypeEmail, FieldTypeTel, FieldTypeURL, FieldTypeNumber:
		return true
	}
	return false
}

// HasOptions reports whether fields of this type carry an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeDropdown || t == FieldTypeCheckbox
}

// Option is a single selectable choice on a dropdown or checkbox field.
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// TextValidation constrains string-valued input. A zero bound means
// unbounded; an empty pattern means no format check.
type TextValidation struct {
	MinLength int    `json:"minLength,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// NumberValidation constrains numeric input. Nil bounds are unbounded, which
// keeps "absent" distinct from "zero".
type NumberValidation struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Validation holds the rules attached to a field. At most one variant is
// populated, selected by the field's type: Text for text-like fields, Number
// for number fields.
type Validation struct {
	Text   *TextValidation   `json:"text,omitempty"`
	Number *NumberValidation `json:"number,omitempty"`
}

// Field models a single input inside a step. IDs are stable across reorders.
type Field struct {
	ID          string      `json:"id"`
	Type        FieldType   `json:"type"`
	Label       string      `json:"label"`
	Placeholder string      `json:"placeholder,omitempty"`
	HelpText    string      `json:"helpText,omitempty"`
	Required    bool        `json:"required"`
	Options     []Option    `json:"options,omitempty"`
	Validation  *Validation `json:"validation,omitempty"`
}

// Option returns the option with the given id, if present.
func (f Field) Option(optionID string) (Option, bool) {
	for _, opt := range f.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return Option{}, false
}

// Step is one page of a multi-step form. Field order is display and fill
// order.
type Step struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Field returns the field with the given id, if present.
func (s Step) Field(fieldID string) (Field, bool) {
	for _, field := range s.Fields {
		if field.ID == fieldID {
			return field, true
		}
	}
	return Field{}, false
}

// Form is the root document: an ordered sequence of steps plus metadata.
// A form always contains at least one step.
type Form struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Steps       []Step    `json:"steps"`
}

// FieldCount reports the number of fields across all steps.
func (f Form) FieldCount() int {
	total := 0
	for _, step := range f.Steps {
		total += len(step.Fields)
	}
	return total
}
