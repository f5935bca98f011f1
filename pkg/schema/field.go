// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import "slices"

// Field describes one attribute of a record.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// AllowNil passes an explicit nil through instead of reporting it.
	AllowNil bool
	// Schemes restricts URL fields. Empty means DefaultSchemes.
	Schemes []string
}

type FieldOption func(*Field)

func Required() FieldOption {
	return func(f *Field) { f.Required = true }
}

func Nullable() FieldOption {
	return func(f *Field) { f.AllowNil = true }
}

func Schemes(schemes ...string) FieldOption {
	return func(f *Field) { f.Schemes = append(f.Schemes, schemes...) }
}

func StringField(name string, opts ...FieldOption) Field {
	return newField(name, String, opts)
}

func IntegerField(name string, opts ...FieldOption) Field {
	return newField(name, Integer, opts)
}

func EmailField(name string, opts ...FieldOption) Field {
	return newField(name, Email, opts)
}

func URLField(name string, opts ...FieldOption) Field {
	return newField(name, URL, opts)
}

func newField(name string, kind Kind, opts []FieldOption) Field {
	f := Field{Name: name, Kind: kind}
	for _, o := range opts {
		if o != nil {
			o(&f)
		}
	}
	return f
}

func (f Field) schemes() []string {
	if len(f.Schemes) == 0 {
		return DefaultSchemes
	}
	return f.Schemes
}

func (f Field) clone() Field {
	f.Schemes = slices.Clone(f.Schemes)
	return f
}
