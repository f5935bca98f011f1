// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package validate

import "errors"

var (
	ErrEmptyURL         = errors.New("empty schema url")
	ErrSchemaResource   = errors.New("schema resource")
	ErrSchemaCompile    = errors.New("schema compile")
	ErrUnmarshalJSON    = errors.New("unmarshal instance")
	ErrSchemaValidation = errors.New("schema validation")
)
