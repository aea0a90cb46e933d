// Package fill walks a form document step by step in the terminal,
// prompting for every field and validating answers before they are
// accepted.
package fill

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/validate"
)

// Runner prompts through a form using a PromptDriver.
type Runner struct {
	driver PromptDriver
}

// NewRunner constructs a runner. A nil driver falls back to the
// interactive survey driver.
func NewRunner(driver PromptDriver) *Runner {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Runner{driver: driver}
}

// Run walks every step of the form in order. Each answer is validated
// before the flow moves on; invalid answers re-prompt with the validation
// message. The returned mapping holds field id to answer, with empty
// optional answers left out.
func (r *Runner) Run(ctx context.Context, form formdoc.Form) (map[string]formdoc.Value, error) {
	if err := r.driver.Info(ctx, form.Title); err != nil {
		return nil, err
	}
	if form.Description != "" {
		if err := r.driver.Info(ctx, form.Description); err != nil {
			return nil, err
		}
	}

	answers := make(map[string]formdoc.Value)
	for i, step := range form.Steps {
		if len(form.Steps) > 1 {
			header := fmt.Sprintf("Step %d of %d: %s", i+1, len(form.Steps), step.Title)
			if err := r.driver.Info(ctx, header); err != nil {
				return nil, err
			}
		}
		for _, field := range step.Fields {
			value, err := r.askUntilValid(ctx, field)
			if err != nil {
				return nil, err
			}
			if value.IsEmpty() {
				continue
			}
			answers[field.ID] = value
		}
	}
	return answers, nil
}

func (r *Runner) askUntilValid(ctx context.Context, field formdoc.Field) (formdoc.Value, error) {
	for {
		value, err := r.ask(ctx, field)
		if err != nil {
			return formdoc.Value{}, err
		}
		message := validate.Field(field, value)
		if message == "" {
			return value, nil
		}
		if err := r.driver.Info(ctx, message); err != nil {
			return formdoc.Value{}, err
		}
	}
}

func (r *Runner) ask(ctx context.Context, field formdoc.Field) (formdoc.Value, error) {
	message := promptMessage(field)

	switch field.Type {
	case formdoc.FieldTypeTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Help:    field.HelpText,
		})
		if err != nil {
			return formdoc.Value{}, err
		}
		return formdoc.TextValue(text), nil

	case formdoc.FieldTypeDropdown:
		options := optionValues(field.Options)
		if !field.Required {
			options = append(options, skipChoice)
		}
		index, err := r.driver.Select(ctx, SelectConfig{
			Message: message,
			Options: options,
			Help:    field.HelpText,
		})
		if err != nil {
			return formdoc.Value{}, err
		}
		if index < 0 || index >= len(field.Options) {
			return formdoc.TextValue(""), nil
		}
		return formdoc.TextValue(field.Options[index].Value), nil

	case formdoc.FieldTypeCheckbox:
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message: message,
			Options: optionValues(field.Options),
			Help:    field.HelpText,
		})
		if err != nil {
			return formdoc.Value{}, err
		}
		var picked []string
		for _, index := range indices {
			if index >= 0 && index < len(field.Options) {
				picked = append(picked, field.Options[index].Value)
			}
		}
		if len(picked) == 0 {
			return formdoc.Value{}, nil
		}
		return formdoc.ListValue(picked...), nil

	default:
		text, err := r.driver.Input(ctx, InputConfig{
			Message:     message,
			Help:        field.HelpText,
			Placeholder: field.Placeholder,
		})
		if err != nil {
			return formdoc.Value{}, err
		}
		return formdoc.TextValue(text), nil
	}
}

const skipChoice = "(skip)"

func promptMessage(field formdoc.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func optionValues(options []formdoc.Option) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.Value
	}
	return out
}
