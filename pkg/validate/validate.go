// Package validate checks submitted values against a field's declared rules.
// It is pure and store-free so the fill and preview flows share one
// implementation.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// Messages surfaced to the person filling the form. These are displayable
// strings, never errors: validation failure is expected input, not a fault.
const (
	MsgRequired      = "This field is required"
	MsgInvalidFormat = "Please enter a valid format"
)

// Field checks a single value. It returns the display message for the first
// failed rule, or the empty string when the value is acceptable.
//
// Required runs first: an empty string or empty list on a required field
// fails regardless of other rules. An empty value on an optional field is
// valid no matter what rules the field carries. Text rules apply to
// single-string values, number rules to number fields.
func Field(field formdoc.Field, value formdoc.Value) string {
	if field.Required && value.IsEmpty() {
		return MsgRequired
	}
	// Rules only judge answers that exist. Leaving an optional field blank
	// is always acceptable.
	if value.IsEmpty() || field.Validation == nil {
		return ""
	}

	if text := field.Validation.Text; text != nil && !value.IsList() {
		if msg := checkText(text, value.Text()); msg != "" {
			return msg
		}
	}

	if number := field.Validation.Number; number != nil && field.Type == formdoc.FieldTypeNumber {
		if msg := checkNumber(number, value.Text()); msg != "" {
			return msg
		}
	}

	return ""
}

// Step validates every field in the step independently and returns the
// failures keyed by field id. There is no short-circuit across fields; a
// step is valid when the result is empty.
func Step(step formdoc.Step, values map[string]formdoc.Value) map[string]string {
	failures := make(map[string]string)
	for _, field := range step.Fields {
		if msg := Field(field, values[field.ID]); msg != "" {
			failures[field.ID] = msg
		}
	}
	return failures
}

func checkText(rules *formdoc.TextValidation, value string) string {
	length := utf8.RuneCountInString(value)
	if rules.MinLength > 0 && length < rules.MinLength {
		return fmt.Sprintf("Minimum length is %d characters", rules.MinLength)
	}
	if rules.MaxLength > 0 && length > rules.MaxLength {
		return fmt.Sprintf("Maximum length is %d characters", rules.MaxLength)
	}
	if rules.Pattern != "" {
		if re := compile(rules.Pattern); re != nil && !re.MatchString(value) {
			return MsgInvalidFormat
		}
	}
	return ""
}

func checkNumber(rules *formdoc.NumberValidation, value string) string {
	if value == "" {
		return ""
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		// non-numeric input is out of scope for bound checks
		return ""
	}
	if rules.Min != nil && number < *rules.Min {
		return fmt.Sprintf("Minimum value is %v", formatBound(*rules.Min))
	}
	if rules.Max != nil && number > *rules.Max {
		return fmt.Sprintf("Maximum value is %v", formatBound(*rules.Max))
	}
	return ""
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'f', -1, 64)
}

var (
	patternMu    sync.Mutex
	patternCache = make(map[string]*regexp.Regexp)
)

// compile returns the cached regexp for pattern, or nil when the pattern
// does not compile. Broken patterns disable the rule instead of faulting
// the editor.
func compile(pattern string) *regexp.Regexp {
	patternMu.Lock()
	defer patternMu.Unlock()
	if re, ok := patternCache[pattern]; ok {
		return re
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		patternCache[pattern] = nil
		return nil
	}
	patternCache[pattern] = re
	return re
}
