package templates

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// Template is a parsed, validated template file. Instantiate stamps it into
// a form document with fresh identifiers, so one Template can seed many
// forms.
type Template struct {
	doc templateDoc
}

type templateDoc struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Steps       []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	Title  string     `yaml:"title"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Type        string   `yaml:"type"`
	Label       string   `yaml:"label"`
	Placeholder string   `yaml:"placeholder"`
	Help        string   `yaml:"help"`
	Required    bool     `yaml:"required"`
	Options     []string `yaml:"options"`
	MinLength   int      `yaml:"minLength"`
	MaxLength   int      `yaml:"maxLength"`
	Pattern     string   `yaml:"pattern"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
}

var errNoSteps = errors.New("templates: template requires at least one step")

// LoadFile reads and parses a YAML template from disk.
func LoadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("templates: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML template payload and validates its structure.
func Parse(data []byte) (Template, error) {
	var doc templateDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Template{}, fmt.Errorf("templates: parse: %w", err)
	}
	if len(doc.Steps) == 0 {
		return Template{}, errNoSteps
	}
	for si, step := range doc.Steps {
		for fi, field := range step.Fields {
			kind := formdoc.FieldType(field.Type)
			if !kind.Valid() {
				return Template{}, fmt.Errorf("templates: step %d field %d: unknown type %q", si+1, fi+1, field.Type)
			}
			if !kind.HasOptions() && len(field.Options) > 0 {
				return Template{}, fmt.Errorf("templates: step %d field %d: type %q does not take options", si+1, fi+1, field.Type)
			}
		}
	}
	return Template{doc: doc}, nil
}

// Title reports the template's form title.
func (t Template) Title() string {
	return t.doc.Title
}

// Instantiate builds a form document from the template, assigning fresh
// identifiers throughout. Option-bearing fields with no declared options get
// the single default option, keeping the minimum-one invariant from birth.
func (t Template) Instantiate(newID func() string, now time.Time) formdoc.Form {
	form := formdoc.Form{
		ID:          newID(),
		Title:       formdoc.SanitizeText(t.doc.Title),
		Description: formdoc.SanitizeText(t.doc.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if form.Title == "" {
		form.Title = "Untitled Form"
	}

	for i, step := range t.doc.Steps {
		title := formdoc.SanitizeText(step.Title)
		if title == "" {
			title = fmt.Sprintf("Step %d", i+1)
		}
		built := formdoc.Step{ID: newID(), Title: title, Fields: []formdoc.Field{}}
		for _, field := range step.Fields {
			built.Fields = append(built.Fields, instantiateField(field, newID))
		}
		form.Steps = append(form.Steps, built)
	}
	return form
}

func instantiateField(doc fieldDoc, newID func() string) formdoc.Field {
	kind := formdoc.FieldType(doc.Type)
	field := formdoc.Field{
		ID:          newID(),
		Type:        kind,
		Label:       formdoc.SanitizeText(doc.Label),
		Placeholder: formdoc.SanitizeText(doc.Placeholder),
		HelpText:    formdoc.SanitizeText(doc.Help),
		Required:    doc.Required,
	}

	if kind.HasOptions() {
		options := doc.Options
		if len(options) == 0 {
			options = []string{"Option 1"}
		}
		for _, value := range options {
			field.Options = append(field.Options, formdoc.Option{
				ID:    newID(),
				Value: formdoc.SanitizeText(value),
			})
		}
	}

	if kind == formdoc.FieldTypeNumber {
		if doc.Min != nil || doc.Max != nil {
			field.Validation = &formdoc.Validation{
				Number: &formdoc.NumberValidation{Min: doc.Min, Max: doc.Max},
			}
		}
		return field
	}

	if doc.MinLength > 0 || doc.MaxLength > 0 || doc.Pattern != "" {
		field.Validation = &formdoc.Validation{
			Text: &formdoc.TextValidation{
				MinLength: doc.MinLength,
				MaxLength: doc.MaxLength,
				Pattern:   doc.Pattern,
			},
		}
	}
	return field
}
