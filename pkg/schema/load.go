// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Load validates and coerces a single record.
func (s *Schema) Load(input Record, opts ...LoadOption) (Record, error) {
	o := s.options(opts)

	var vs []Violation
	out := s.loadRecord(0, input, &o, &vs)
	if len(vs) > 0 {
		return nil, &ValidationError{Schema: s.name, Violations: vs}
	}

	return out, nil
}

// LoadMany validates and coerces a batch. The output keeps input order.
func (s *Schema) LoadMany(input []Record, opts ...LoadOption) ([]Record, error) {
	items := make([]any, len(input))
	for i, r := range input {
		items[i] = r
	}

	o := s.options(opts)
	return s.loadBatch(items, &o)
}

// Decode loads input of unknown shape, as produced by decoding JSON or YAML
// into an interface value. With Many it expects a sequence of records and
// returns []Record, otherwise a Record.
func (s *Schema) Decode(input any, opts ...LoadOption) (any, error) {
	o := s.options(opts)

	if !o.many {
		rec, ok := asRecord(input)
		if !ok {
			return nil, s.inputError()
		}

		var vs []Violation
		out := s.loadRecord(0, rec, &o, &vs)
		if len(vs) > 0 {
			return nil, &ValidationError{Schema: s.name, Violations: vs}
		}
		return out, nil
	}

	items, ok := asList(input)
	if !ok {
		return nil, s.inputError()
	}

	out, err := s.loadBatch(items, &o)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Validate runs the same checks as Decode and discards the output.
func (s *Schema) Validate(input any, opts ...LoadOption) error {
	_, err := s.Decode(input, opts...)
	return err
}

// LoadInto loads input and decodes the result into out, which must be a
// pointer to a struct or map. Struct fields are matched by their `schema` tag.
func (s *Schema) LoadInto(input Record, out any, opts ...LoadOption) error {
	rec, err := s.Load(input, opts...)
	if err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "schema",
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeTarget, err)
	}
	if err := dec.Decode(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeTarget, err)
	}

	return nil
}

func (s *Schema) loadBatch(items []any, o *loadOptions) ([]Record, error) {
	out := make([]Record, len(items))
	var vs []Violation

	for i, item := range items {
		rec, ok := asRecord(item)
		if !ok {
			vs = append(vs, Violation{Index: i, Field: SchemaKey, Code: CodeInvalidInput, Message: MsgInvalidInput})
			continue
		}
		out[i] = s.loadRecord(i, rec, o, &vs)
	}

	if len(vs) > 0 {
		return nil, &ValidationError{Schema: s.name, Many: true, Violations: vs}
	}

	return out, nil
}

func (s *Schema) loadRecord(idx int, in Record, o *loadOptions, vs *[]Violation) Record {
	out := make(Record, len(s.fields))
	add := func(field string, code Code, msg string) {
		*vs = append(*vs, Violation{Index: idx, Field: field, Code: code, Message: msg})
	}

	for _, f := range s.fields {
		raw, present := in[f.Name]
		if !present {
			if f.Required && !o.exempt(f.Name) {
				add(f.Name, CodeMissingRequired, MsgMissingRequired)
			}
			continue
		}

		if raw == nil {
			if f.AllowNil {
				out[f.Name] = nil
			} else {
				add(f.Name, CodeNull, MsgNull)
			}
			continue
		}

		v, flt := rules[f.Kind].coerce(f, raw)
		if flt != nil {
			add(f.Name, flt.code, flt.msg)
			continue
		}
		out[f.Name] = v
	}

	if o.unknown == UnknownIgnore {
		return out
	}

	for _, k := range s.unknownKeys(in) {
		switch o.unknown {
		case UnknownRaise:
			add(k, CodeUnknownField, MsgUnknownField)
		case UnknownInclude:
			out[k] = in[k]
		}
	}

	return out
}

func (s *Schema) unknownKeys(in Record) []string {
	var keys []string
	for k := range in {
		if _, ok := s.index[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (s *Schema) inputError() *ValidationError {
	return &ValidationError{
		Schema:     s.name,
		Violations: []Violation{{Field: SchemaKey, Code: CodeInvalidInput, Message: MsgInvalidInput}},
	}
}

func asRecord(v any) (Record, bool) {
	switch r := v.(type) {
	case map[string]any:
		return r, true
	case map[string]string:
		out := make(Record, len(r))
		for k, val := range r {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []Record:
		items := make([]any, len(l))
		for i, r := range l {
			items[i] = r
		}
		return items, true
	default:
		return nil, false
	}
}
