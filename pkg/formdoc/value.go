package formdoc

import (
	"encoding/json"
	"strings"
)

// Value is a submitted answer: a single string for most field types, or a
// list of strings for multi-select checkbox fields. The zero Value is an
// empty single string.
type Value struct {
	text  string
	items []string
	multi bool
}

// TextValue wraps a single string answer.
func TextValue(text string) Value {
	return Value{text: text}
}

// ListValue wraps a multi-select answer. The slice is copied.
func ListValue(items ...string) Value {
	return Value{items: append([]string(nil), items...), multi: true}
}

// IsList reports whether the value carries a list of strings.
func (v Value) IsList() bool {
	return v.multi
}

// Text returns the single-string form of the value. For list values it
// returns the empty string.
func (v Value) Text() string {
	if v.multi {
		return ""
	}
	return v.text
}

// List returns a copy of the list form of the value, nil for single values.
func (v Value) List() []string {
	if !v.multi {
		return nil
	}
	return append([]string(nil), v.items...)
}

// Equal reports whether two values hold the same answer.
func (v Value) Equal(other Value) bool {
	if v.multi != other.multi {
		return false
	}
	if !v.multi {
		return v.text == other.text
	}
	if len(v.items) != len(other.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the value counts as "not answered": an empty
// string, or an empty list.
func (v Value) IsEmpty() bool {
	if v.multi {
		return len(v.items) == 0
	}
	return v.text == ""
}

// Flatten renders the value as display text, joining list entries with a
// comma and space. Export collaborators rely on this shape.
func (v Value) Flatten() string {
	if v.multi {
		return strings.Join(v.items, ", ")
	}
	return v.text
}

// MarshalJSON encodes single values as a JSON string and list values as a
// JSON array of strings, matching the persisted response shape.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.multi {
		items := v.items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.text)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*v = Value{items: items, multi: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*v = Value{text: text}
	return nil
}
