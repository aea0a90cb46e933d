package formdoc

// Clone returns a deep copy of the form. Mutating the copy never affects the
// original; the store and the undo history both depend on this.
func (f Form) Clone() Form {
	out := f
	out.Steps = make([]Step, len(f.Steps))
	for i, step := range f.Steps {
		out.Steps[i] = step.Clone()
	}
	return out
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	out.Fields = make([]Field, len(s.Fields))
	for i, field := range s.Fields {
		out.Fields[i] = field.Clone()
	}
	return out
}

// Clone returns a deep copy of the field, including its options and
// validation rules.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]Option(nil), f.Options...)
	}
	if f.Validation != nil {
		out.Validation = f.Validation.Clone()
	}
	return out
}

// Clone returns a deep copy of the validation record.
func (v *Validation) Clone() *Validation {
	if v == nil {
		return nil
	}
	out := &Validation{}
	if v.Text != nil {
		text := *v.Text
		out.Text = &text
	}
	if v.Number != nil {
		number := NumberValidation{}
		if v.Number.Min != nil {
			min := *v.Number.Min
			number.Min = &min
		}
		if v.Number.Max != nil {
			max := *v.Number.Max
			number.Max = &max
		}
		out.Number = &number
	}
	return out
}
