// Package templates synthesizes complete form documents: the blank document
// used for new forms, the built-in contact and survey templates, and
// user-supplied YAML template files.
package templates

import (
	"time"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// Kind names a built-in template.
type Kind string

const (
	KindContact Kind = "contact"
	KindSurvey  Kind = "survey"
)

// EmailPattern is the address format shared by the built-in templates.
const EmailPattern = `^[\w-\.]+@([\w-]+\.)+[\w-]{2,4}$`

// Kinds lists the built-in template kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindContact, KindSurvey}
}

// Blank returns the document every new form starts from: a default title and
// a single empty step.
func Blank(newID func() string, now time.Time) formdoc.Form {
	return formdoc.Form{
		ID:        newID(),
		Title:     "Untitled Form",
		CreatedAt: now,
		UpdatedAt: now,
		Steps: []formdoc.Step{
			{ID: newID(), Title: "Step 1", Fields: []formdoc.Field{}},
		},
	}
}

// Builtin returns a fully populated document for the given kind. The second
// return is false when the kind is unknown.
func Builtin(kind Kind, newID func() string, now time.Time) (formdoc.Form, bool) {
	switch kind {
	case KindContact:
		return contactForm(newID, now), true
	case KindSurvey:
		return surveyForm(newID, now), true
	}
	return formdoc.Form{}, false
}

func contactForm(newID func() string, now time.Time) formdoc.Form {
	form := Blank(newID, now)
	form.Title = "Contact Us Form"
	form.Description = "A simple contact form template"
	form.Steps[0].Fields = []formdoc.Field{
		{
			ID:          newID(),
			Type:        formdoc.FieldTypeText,
			Label:       "Full Name",
			Placeholder: "Enter your full name",
			HelpText:    "Please enter your first and last name",
			Required:    true,
			Validation: &formdoc.Validation{
				Text: &formdoc.TextValidation{MinLength: 2, MaxLength: 100},
			},
		},
		{
			ID:          newID(),
			Type:        formdoc.FieldTypeText,
			Label:       "Email Address",
			Placeholder: "Enter your email address",
			HelpText:    "We'll never share your email with anyone else",
			Required:    true,
			Validation: &formdoc.Validation{
				Text: &formdoc.TextValidation{MinLength: 5, MaxLength: 100, Pattern: EmailPattern},
			},
		},
		{
			ID:          newID(),
			Type:        formdoc.FieldTypeTextarea,
			Label:       "Message",
			Placeholder: "Enter your message",
			HelpText:    "How can we help you?",
			Required:    true,
			Validation: &formdoc.Validation{
				Text: &formdoc.TextValidation{MinLength: 10, MaxLength: 500},
			},
		},
	}
	return form
}

func surveyForm(newID func() string, now time.Time) formdoc.Form {
	form := Blank(newID, now)
	form.Title = "Customer Feedback Survey"
	form.Description = "Gather customer feedback about your products or services"
	form.Steps[0].Title = "Basic Information"
	form.Steps[0].Fields = []formdoc.Field{
		{
			ID:          newID(),
			Type:        formdoc.FieldTypeText,
			Label:       "Name",
			Placeholder: "Enter your name",
			Validation: &formdoc.Validation{
				Text: &formdoc.TextValidation{MaxLength: 100},
			},
		},
		{
			ID:          newID(),
			Type:        formdoc.FieldTypeText,
			Label:       "Email",
			Placeholder: "Enter your email",
			Required:    true,
			Validation: &formdoc.Validation{
				Text: &formdoc.TextValidation{MinLength: 5, MaxLength: 100, Pattern: EmailPattern},
			},
		},
	}
	form.Steps = append(form.Steps, formdoc.Step{
		ID:    newID(),
		Title: "Product Feedback",
		Fields: []formdoc.Field{
			{
				ID:          newID(),
				Type:        formdoc.FieldTypeDropdown,
				Label:       "How would you rate our product?",
				Placeholder: "Select an option",
				Required:    true,
				Options: []formdoc.Option{
					{ID: newID(), Value: "Excellent"},
					{ID: newID(), Value: "Good"},
					{ID: newID(), Value: "Average"},
					{ID: newID(), Value: "Poor"},
					{ID: newID(), Value: "Very Poor"},
				},
			},
			{
				ID:          newID(),
				Type:        formdoc.FieldTypeTextarea,
				Label:       "What do you like most about our product?",
				Placeholder: "Enter your answer",
				Validation: &formdoc.Validation{
					Text: &formdoc.TextValidation{MaxLength: 500},
				},
			},
			{
				ID:          newID(),
				Type:        formdoc.FieldTypeTextarea,
				Label:       "How can we improve our product?",
				Placeholder: "Enter your answer",
				Validation: &formdoc.Validation{
					Text: &formdoc.TextValidation{MaxLength: 500},
				},
			},
		},
	})
	return form
}
