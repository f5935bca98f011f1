// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Code classifies a single violation.
type Code string

const (
	CodeMissingRequired Code = "missing_required"
	CodeInvalidType     Code = "invalid_type"
	CodeInvalidEmail    Code = "invalid_email_format"
	CodeInvalidURL      Code = "invalid_url_format"
	CodeNull            Code = "null"
	CodeUnknownField    Code = "unknown_field"
	CodeInvalidInput    Code = "invalid_input"
)

// Messages are part of the public contract and do not change between releases.
const (
	MsgMissingRequired = "Missing data for required field."
	MsgInvalidString   = "Not a valid string."
	MsgInvalidInteger  = "Not a valid integer."
	MsgInvalidEmail    = "Not a valid email address."
	MsgInvalidURL      = "Not a valid URL."
	MsgNull            = "Field may not be null."
	MsgUnknownField    = "Unknown field."
	MsgInvalidInput    = "Invalid input type."
)

// SchemaKey holds violations that belong to a record as a whole.
const SchemaKey = "_schema"

// Violation is one failed check. Index is the record position in a batch
// load and 0 for single loads.
type Violation struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Messages maps a field name to its error messages.
type Messages map[string][]string

// BatchMessages maps a record index to the messages of that record.
type BatchMessages map[int]Messages

// ValidationError is returned by every failed load. It carries all
// violations found across all fields and records.
type ValidationError struct {
	Schema     string
	Many       bool
	Violations []Violation
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s: %d violation(s)", ErrValidation, e.Schema, len(e.Violations))
	for i, v := range e.Violations {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		if e.Many {
			fmt.Fprintf(&b, "[%d].", v.Index)
		}
		fmt.Fprintf(&b, "%s: %s", v.Field, v.Message)
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Messages merges violations by field name, ignoring record indexes.
func (e *ValidationError) Messages() Messages {
	m := make(Messages)
	for _, v := range e.Violations {
		m[v.Field] = append(m[v.Field], v.Message)
	}
	return m
}

func (e *ValidationError) BatchMessages() BatchMessages {
	m := make(BatchMessages)
	for _, v := range e.Violations {
		if m[v.Index] == nil {
			m[v.Index] = make(Messages)
		}
		m[v.Index][v.Field] = append(m[v.Index][v.Field], v.Message)
	}
	return m
}

// Codes returns the violation codes recorded for one field of one record.
func (e *ValidationError) Codes(index int, field string) []Code {
	var out []Code
	for _, v := range e.Violations {
		if v.Index == index && v.Field == field {
			out = append(out, v.Code)
		}
	}
	return out
}

// Report returns BatchMessages for batch loads and Messages otherwise.
func (e *ValidationError) Report() any {
	if e.Many {
		return e.BatchMessages()
	}
	return e.Messages()
}

func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Report())
}
