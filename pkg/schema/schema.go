// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Bl4cky99/schemer/internal/errx"
)

// Record maps field names to values. Loads read raw records and return
// coerced ones.
type Record = map[string]any

// Schema is an ordered set of uniquely named fields. It is immutable after
// Define and safe for concurrent use.
type Schema struct {
	name     string
	fields   []Field
	index    map[string]int
	defaults []LoadOption
}

// Define builds a Schema. All definition problems are reported together;
// duplicate names match ErrDuplicateField.
func Define(name string, fields ...Field) (*Schema, error) {
	e := errx.New()
	index := make(map[string]int, len(fields))

	for i, f := range fields {
		sc := e.Scope(fmt.Sprintf("fields[%d]", i))

		switch {
		case f.Name == "":
			sc.Wrapf(ErrEmptyFieldName, "name must not be empty")
		default:
			if first, dup := index[f.Name]; dup {
				sc.Wrapf(ErrDuplicateField, "%q already declared by fields[%d]", f.Name, first)
			} else {
				index[f.Name] = i
			}
		}

		_, known := rules[f.Kind]
		sc.If(!known, ErrUnknownKind, "%q has kind %d", f.Name, int(f.Kind))
		sc.If(len(f.Schemes) > 0 && f.Kind != URL, ErrFieldOption, "%q: schemes only apply to url fields", f.Name)
		for j, s := range f.Schemes {
			sc.If(strings.TrimSpace(s) == "" || strings.Contains(s, ":"), ErrFieldOption, "%q: schemes[%d] %q invalid", f.Name, j, s)
		}
	}

	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrSchemaDefinition, name, err)
	}

	s := &Schema{name: name, fields: make([]Field, len(fields)), index: index}
	for i, f := range fields {
		s.fields[i] = f.clone()
	}

	return s, nil
}

func MustDefine(name string, fields ...Field) *Schema {
	s, err := Define(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Name() string {
	return s.name
}

// Fields returns a copy of the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.clone()
	}
	return out
}

func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i].clone(), true
}

// WithDefaults returns a copy of s whose loads apply opts before the
// options given per call.
func (s *Schema) WithDefaults(opts ...LoadOption) *Schema {
	cp := *s
	cp.defaults = append(slices.Clip(s.defaults), opts...)
	return &cp
}

func (s *Schema) options(opts []LoadOption) loadOptions {
	var o loadOptions
	for _, fn := range s.defaults {
		if fn != nil {
			fn(&o)
		}
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
