// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import "errors"

var (
	ErrSchemaDefinition = errors.New("invalid schema definition")
	ErrDuplicateField   = errors.New("duplicate field")
	ErrEmptyFieldName   = errors.New("empty field name")
	ErrUnknownKind      = errors.New("unknown field kind")
	ErrFieldOption      = errors.New("invalid field option")
	ErrUnknownPolicy    = errors.New("unknown policy")
	ErrValidation       = errors.New("validation failed")
	ErrDecodeTarget     = errors.New("decode into target")
)
