package templates_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/formdoc/templates"
)

func sequentialIDs() func() string {
	next := 0
	return func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
}

func TestBlankForm(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	form := templates.Blank(sequentialIDs(), now)

	if form.Title != "Untitled Form" {
		t.Fatalf("expected default title, got %q", form.Title)
	}
	if len(form.Steps) != 1 {
		t.Fatalf("expected one step, got %d", len(form.Steps))
	}
	if form.Steps[0].Title != "Step 1" {
		t.Fatalf("expected Step 1, got %q", form.Steps[0].Title)
	}
	if len(form.Steps[0].Fields) != 0 {
		t.Fatalf("expected empty field list, got %d fields", len(form.Steps[0].Fields))
	}
	if !form.CreatedAt.Equal(now) || !form.UpdatedAt.Equal(now) {
		t.Fatal("expected both timestamps set to now")
	}
}

func TestContactTemplate(t *testing.T) {
	form, ok := templates.Builtin(templates.KindContact, sequentialIDs(), time.Now())
	if !ok {
		t.Fatal("contact template should exist")
	}

	if len(form.Steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(form.Steps))
	}
	fields := form.Steps[0].Fields
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}

	email := fields[1]
	if email.Label != "Email Address" || !email.Required {
		t.Fatalf("unexpected email field: %+v", email)
	}
	pattern := regexp.MustCompile(email.Validation.Text.Pattern)
	if !pattern.MatchString("user@example.com") {
		t.Fatal("email pattern should match user@example.com")
	}
	if pattern.MatchString("not-an-email") {
		t.Fatal("email pattern should reject not-an-email")
	}

	message := fields[2]
	if message.Type != formdoc.FieldTypeTextarea {
		t.Fatalf("expected textarea message field, got %s", message.Type)
	}
	if message.Validation.Text.MinLength != 10 || message.Validation.Text.MaxLength != 500 {
		t.Fatalf("unexpected message bounds: %+v", message.Validation.Text)
	}
}

func TestSurveyTemplate(t *testing.T) {
	form, ok := templates.Builtin(templates.KindSurvey, sequentialIDs(), time.Now())
	if !ok {
		t.Fatal("survey template should exist")
	}

	if len(form.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(form.Steps))
	}
	if form.Steps[0].Title != "Basic Information" || form.Steps[1].Title != "Product Feedback" {
		t.Fatalf("unexpected step titles: %q, %q", form.Steps[0].Title, form.Steps[1].Title)
	}

	rating := form.Steps[1].Fields[0]
	if rating.Type != formdoc.FieldTypeDropdown || !rating.Required {
		t.Fatalf("unexpected rating field: %+v", rating)
	}
	want := []string{"Excellent", "Good", "Average", "Poor", "Very Poor"}
	if len(rating.Options) != len(want) {
		t.Fatalf("expected %d options, got %d", len(want), len(rating.Options))
	}
	for i, opt := range rating.Options {
		if opt.Value != want[i] {
			t.Fatalf("option %d: expected %q, got %q", i, want[i], opt.Value)
		}
	}
}

func TestBuiltinUnknownKind(t *testing.T) {
	if _, ok := templates.Builtin(templates.Kind("wizard"), sequentialIDs(), time.Now()); ok {
		t.Fatal("unknown kind should not resolve")
	}
}

func TestTemplateIDsAreUnique(t *testing.T) {
	form, _ := templates.Builtin(templates.KindSurvey, sequentialIDs(), time.Now())

	seen := map[string]bool{form.ID: true}
	for _, step := range form.Steps {
		if seen[step.ID] {
			t.Fatalf("duplicate id %s", step.ID)
		}
		seen[step.ID] = true
		for _, field := range step.Fields {
			if seen[field.ID] {
				t.Fatalf("duplicate id %s", field.ID)
			}
			seen[field.ID] = true
			for _, opt := range field.Options {
				if seen[opt.ID] {
					t.Fatalf("duplicate id %s", opt.ID)
				}
				seen[opt.ID] = true
			}
		}
	}
}
