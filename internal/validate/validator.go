// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// DefinitionSchema is the JSON Schema every definition file must satisfy.
//
//go:embed definitions.schema.json
var DefinitionSchema []byte

const definitionsURL = "definitions.schema.json"

type JSONSchemaValidator struct {
	schema *jsonschema.Schema
}

type JSONSchemaValidatorOptions struct {
	AssertFormat  bool
	AssertContent bool
	DefaultDraft  *jsonschema.Draft
}

// CompileSchema compiles an in-memory schema document registered under url.
// doc must consist of JSON values (maps, slices, strings, numbers, bools).
func CompileSchema(url string, doc any, opt JSONSchemaValidatorOptions) (*JSONSchemaValidator, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	inst, err := normalize(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaResource, url, err)
	}

	c := jsonschema.NewCompiler()
	if opt.DefaultDraft != nil {
		c.DefaultDraft(opt.DefaultDraft)
	}
	if opt.AssertFormat {
		c.AssertFormat()
	}
	if opt.AssertContent {
		c.AssertContent()
	}

	if err := c.AddResource(url, inst); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaResource, url, err)
	}

	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaCompile, url, err)
	}

	return &JSONSchemaValidator{schema: sch}, nil
}

// CompileBytes is CompileSchema for a raw JSON document.
func CompileBytes(url string, raw []byte, opt JSONSchemaValidatorOptions) (*JSONSchemaValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaResource, url, err)
	}
	return CompileSchema(url, doc, opt)
}

var definitions = sync.OnceValues(func() (*JSONSchemaValidator, error) {
	return CompileBytes(definitionsURL, DefinitionSchema, JSONSchemaValidatorOptions{
		DefaultDraft: jsonschema.Draft2020,
	})
})

// Definitions returns the compiled definition file schema.
func Definitions() (*JSONSchemaValidator, error) {
	return definitions()
}

func (v *JSONSchemaValidator) Validate(body []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalJSON, err)
	}
	if err := v.schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	return nil
}

// ValidateValue validates an already decoded value, e.g. a YAML document.
func (v *JSONSchemaValidator) ValidateValue(value any) error {
	inst, err := normalize(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalJSON, err)
	}
	if err := v.schema.Validate(inst); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}
	return nil
}

// normalize round-trips value through JSON so numbers become json.Number
// as the validator expects.
func normalize(value any) (any, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}
