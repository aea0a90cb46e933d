// Package importer builds form documents from OpenAPI operations. The JSON
// request body of an operation becomes a single-step form, with schema
// types and formats mapped onto the builder's field palette.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// ErrOperationNotFound reports that the requested operation id does not
// exist in the document.
var ErrOperationNotFound = errors.New("importer: operation not found")

// Importer converts OpenAPI documents into form documents.
type Importer struct {
	newID func() string
	now   func() time.Time
}

// Option customises the importer.
type Option func(*Importer)

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(i *Importer) {
		if newID != nil {
			i.newID = newID
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.now = now
		}
	}
}

// New constructs an importer.
func New(options ...Option) *Importer {
	i := &Importer{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Operations lists the importable operation ids of a document, sorted.
// Operations without an explicit operationId are keyed method:path.
func (i *Importer) Operations(ctx context.Context, data []byte) ([]string, error) {
	spec, err := loadDocument(ctx, data)
	if err != nil {
		return nil, err
	}
	ops := collectOperations(spec)
	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Import builds a form from the JSON request body of one operation.
func (i *Importer) Import(ctx context.Context, data []byte, operationID string) (formdoc.Form, error) {
	spec, err := loadDocument(ctx, data)
	if err != nil {
		return formdoc.Form{}, err
	}
	ops := collectOperations(spec)
	op, ok := ops[operationID]
	if !ok {
		return formdoc.Form{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(op.operation)
	if schema == nil {
		return formdoc.Form{}, fmt.Errorf("importer: operation %s has no usable request body schema", operationID)
	}

	now := i.now()
	form := formdoc.Form{
		ID:          i.newID(),
		Title:       formTitle(op),
		Description: op.operation.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Steps: []formdoc.Step{{
			ID:     i.newID(),
			Title:  "Step 1",
			Fields: i.buildFields(schema),
		}},
	}
	return form, nil
}

func loadDocument(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, errors.New("importer: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("importer: load document: %w", err)
	}
	return spec, nil
}

type namedOperation struct {
	method    string
	path      string
	operation *openapi3.Operation
}

func collectOperations(spec *openapi3.T) map[string]namedOperation {
	out := make(map[string]namedOperation)
	if spec.Paths == nil {
		return out
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collect(out, "GET", path, item.Get)
		collect(out, "PUT", path, item.Put)
		collect(out, "POST", path, item.Post)
		collect(out, "DELETE", path, item.Delete)
		collect(out, "PATCH", path, item.Patch)
	}
	return out
}

func collect(target map[string]namedOperation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	target[id] = namedOperation{method: method, path: path, operation: operation}
}

func formTitle(op namedOperation) string {
	if summary := strings.TrimSpace(op.operation.Summary); summary != "" {
		return summary
	}
	if op.operation.OperationID != "" {
		return op.operation.OperationID
	}
	return strings.ToLower(op.method) + " " + op.path
}

// requestSchema picks the object schema of the operation's request body,
// preferring JSON over form encodings.
func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func (i *Importer) buildFields(schema *openapi3.Schema) []formdoc.Field {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]formdoc.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := i.buildField(name, ref.Value, required[name])
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func (i *Importer) buildField(name string, schema *openapi3.Schema, required bool) (formdoc.Field, bool) {
	field := formdoc.Field{
		ID:       i.newID(),
		Label:    fieldLabel(name, schema),
		HelpText: schema.Description,
		Required: required,
	}

	switch schemaType(schema.Type) {
	case "string":
		if len(schema.Enum) > 0 {
			field.Type = formdoc.FieldTypeDropdown
			field.Options = i.enumOptions(schema.Enum)
			if len(field.Options) == 0 {
				return formdoc.Field{}, false
			}
			return field, true
		}
		field.Type = stringFieldType(schema.Format)
		if validation := textValidation(schema); validation != nil {
			field.Validation = &formdoc.Validation{Text: validation}
		}
		return field, true

	case "number", "integer":
		field.Type = formdoc.FieldTypeNumber
		if schema.Min != nil || schema.Max != nil {
			number := &formdoc.NumberValidation{}
			if schema.Min != nil {
				value := *schema.Min
				number.Min = &value
			}
			if schema.Max != nil {
				value := *schema.Max
				number.Max = &value
			}
			field.Validation = &formdoc.Validation{Number: number}
		}
		return field, true

	case "boolean":
		field.Type = formdoc.FieldTypeDropdown
		field.Options = []formdoc.Option{
			{ID: i.newID(), Value: "Yes"},
			{ID: i.newID(), Value: "No"},
		}
		return field, true

	case "array":
		if schema.Items == nil || schema.Items.Value == nil {
			return formdoc.Field{}, false
		}
		items := schema.Items.Value
		if len(items.Enum) == 0 {
			return formdoc.Field{}, false
		}
		field.Type = formdoc.FieldTypeCheckbox
		field.Options = i.enumOptions(items.Enum)
		if len(field.Options) == 0 {
			return formdoc.Field{}, false
		}
		return field, true
	}

	return formdoc.Field{}, false
}

func (i *Importer) enumOptions(enum []any) []formdoc.Option {
	options := make([]formdoc.Option, 0, len(enum))
	for _, entry := range enum {
		text, ok := entry.(string)
		if !ok || text == "" {
			continue
		}
		options = append(options, formdoc.Option{ID: i.newID(), Value: text})
	}
	return options
}

func stringFieldType(format string) formdoc.FieldType {
	switch format {
	case "email":
		return formdoc.FieldTypeEmail
	case "date", "date-time":
		return formdoc.FieldTypeDate
	case "uri", "url":
		return formdoc.FieldTypeURL
	case "tel", "phone":
		return formdoc.FieldTypeTel
	case "textarea":
		return formdoc.FieldTypeTextarea
	default:
		return formdoc.FieldTypeText
	}
}

func textValidation(schema *openapi3.Schema) *formdoc.TextValidation {
	validation := &formdoc.TextValidation{Pattern: schema.Pattern}
	if schema.MinLength != 0 {
		validation.MinLength = int(schema.MinLength)
	}
	if schema.MaxLength != nil {
		validation.MaxLength = int(*schema.MaxLength)
	}
	if validation.MinLength == 0 && validation.MaxLength == 0 && validation.Pattern == "" {
		return nil
	}
	return validation
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// fieldLabel prefers the schema title and falls back to a humanised
// property name: snake_case and camelCase both become spaced words.
func fieldLabel(name string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	return humanise(name)
}

func humanise(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			b.WriteByte(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteByte(' ')
			b.WriteRune(r)
		case i == 0 && r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
