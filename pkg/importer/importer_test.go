package importer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/importer"
)

const registrationDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Accounts", "version": "1.0.0"},
  "paths": {
    "/register": {
      "post": {
        "operationId": "registerUser",
        "summary": "Create an account",
        "description": "Self-service signup.",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["email", "fullName"],
                "properties": {
                  "fullName": {
                    "type": "string",
                    "minLength": 2,
                    "maxLength": 80
                  },
                  "email": {
                    "type": "string",
                    "format": "email",
                    "description": "Used for the confirmation mail."
                  },
                  "website": {"type": "string", "format": "uri"},
                  "birthday": {"type": "string", "format": "date"},
                  "bio": {"type": "string", "format": "textarea"},
                  "age": {
                    "type": "integer",
                    "minimum": 13,
                    "maximum": 120
                  },
                  "plan": {
                    "type": "string",
                    "enum": ["Free", "Pro", "Enterprise"]
                  },
                  "interests": {
                    "type": "array",
                    "items": {"type": "string", "enum": ["News", "Product updates"]}
                  },
                  "newsletter": {"type": "boolean"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    },
    "/ping": {
      "get": {
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`

func newTestImporter() *importer.Importer {
	var n int
	return importer.New(
		importer.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		importer.WithClock(func() time.Time {
			return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		}),
	)
}

func TestOperationsListsIDs(t *testing.T) {
	imp := newTestImporter()

	ids, err := imp.Operations(context.Background(), []byte(registrationDoc))
	if err != nil {
		t.Fatalf("Operations: %v", err)
	}
	want := []string{"get:/ping", "registerUser"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}
}

func TestImportBuildsForm(t *testing.T) {
	imp := newTestImporter()

	form, err := imp.Import(context.Background(), []byte(registrationDoc), "registerUser")
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	if form.Title != "Create an account" {
		t.Fatalf("title = %q, want summary", form.Title)
	}
	if form.Description != "Self-service signup." {
		t.Fatalf("description = %q", form.Description)
	}
	if len(form.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(form.Steps))
	}

	step := form.Steps[0]
	byLabel := make(map[string]formdoc.Field, len(step.Fields))
	for _, field := range step.Fields {
		byLabel[field.Label] = field
	}

	email, ok := byLabel["Email"]
	if !ok {
		t.Fatalf("email field missing, labels: %v", labels(step.Fields))
	}
	if email.Type != formdoc.FieldTypeEmail {
		t.Fatalf("email type = %q", email.Type)
	}
	if !email.Required {
		t.Fatal("email should be required")
	}
	if email.HelpText != "Used for the confirmation mail." {
		t.Fatalf("email help = %q", email.HelpText)
	}

	name := byLabel["Full Name"]
	if name.Type != formdoc.FieldTypeText {
		t.Fatalf("fullName type = %q", name.Type)
	}
	if name.Validation == nil || name.Validation.Text == nil {
		t.Fatal("fullName should carry text validation")
	}
	if name.Validation.Text.MinLength != 2 || name.Validation.Text.MaxLength != 80 {
		t.Fatalf("fullName lengths = %d/%d, want 2/80",
			name.Validation.Text.MinLength, name.Validation.Text.MaxLength)
	}

	if got := byLabel["Website"].Type; got != formdoc.FieldTypeURL {
		t.Fatalf("website type = %q", got)
	}
	if got := byLabel["Birthday"].Type; got != formdoc.FieldTypeDate {
		t.Fatalf("birthday type = %q", got)
	}
	if got := byLabel["Bio"].Type; got != formdoc.FieldTypeTextarea {
		t.Fatalf("bio type = %q", got)
	}

	age := byLabel["Age"]
	if age.Type != formdoc.FieldTypeNumber {
		t.Fatalf("age type = %q", age.Type)
	}
	if age.Validation == nil || age.Validation.Number == nil {
		t.Fatal("age should carry number validation")
	}
	if *age.Validation.Number.Min != 13 || *age.Validation.Number.Max != 120 {
		t.Fatalf("age bounds = %v/%v, want 13/120",
			*age.Validation.Number.Min, *age.Validation.Number.Max)
	}

	plan := byLabel["Plan"]
	if plan.Type != formdoc.FieldTypeDropdown {
		t.Fatalf("plan type = %q", plan.Type)
	}
	if got := optionValues(plan.Options); !cmp.Equal(got, []string{"Free", "Pro", "Enterprise"}) {
		t.Fatalf("plan options = %v", got)
	}

	interests := byLabel["Interests"]
	if interests.Type != formdoc.FieldTypeCheckbox {
		t.Fatalf("interests type = %q", interests.Type)
	}
	if got := optionValues(interests.Options); !cmp.Equal(got, []string{"News", "Product updates"}) {
		t.Fatalf("interests options = %v", got)
	}

	newsletter := byLabel["Newsletter"]
	if newsletter.Type != formdoc.FieldTypeDropdown {
		t.Fatalf("newsletter type = %q", newsletter.Type)
	}
	if got := optionValues(newsletter.Options); !cmp.Equal(got, []string{"Yes", "No"}) {
		t.Fatalf("newsletter options = %v", got)
	}
}

func TestImportUnknownOperation(t *testing.T) {
	imp := newTestImporter()

	_, err := imp.Import(context.Background(), []byte(registrationDoc), "deleteUser")
	if !errors.Is(err, importer.ErrOperationNotFound) {
		t.Fatalf("err = %v, want ErrOperationNotFound", err)
	}
}

func TestImportOperationWithoutBody(t *testing.T) {
	imp := newTestImporter()

	_, err := imp.Import(context.Background(), []byte(registrationDoc), "get:/ping")
	if err == nil {
		t.Fatal("operation without a request body should fail")
	}
}

func TestImportEmptyDocument(t *testing.T) {
	imp := newTestImporter()

	if _, err := imp.Operations(context.Background(), nil); err == nil {
		t.Fatal("empty payload should fail")
	}
	if _, err := imp.Operations(context.Background(), []byte("not json or yaml: [")); err == nil {
		t.Fatal("malformed payload should fail")
	}
}

func labels(fields []formdoc.Field) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.Label
	}
	return out
}

func optionValues(options []formdoc.Option) []string {
	out := make([]string, len(options))
	for i, option := range options {
		out[i] = option.Value
	}
	return out
}
