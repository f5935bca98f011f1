// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import (
	"fmt"
	"strings"
)

// UnknownPolicy decides what happens to input keys no field declares.
type UnknownPolicy int

const (
	UnknownIgnore UnknownPolicy = iota
	UnknownRaise
	UnknownInclude
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownIgnore:
		return "ignore"
	case UnknownRaise:
		return "raise"
	case UnknownInclude:
		return "include"
	default:
		return fmt.Sprintf("UnknownPolicy(%d)", int(p))
	}
}

func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore", "exclude":
		return UnknownIgnore, nil
	case "raise":
		return UnknownRaise, nil
	case "include":
		return UnknownInclude, nil
	default:
		return 0, fmt.Errorf("%w: %q (use ignore|raise|include)", ErrUnknownPolicy, s)
	}
}

type loadOptions struct {
	many       bool
	partialAll bool
	partial    map[string]struct{}
	unknown    UnknownPolicy
}

// LoadOption configures a single load call. Options never change the Schema.
type LoadOption func(*loadOptions)

// Many treats the input of Decode and Validate as a sequence of records.
func Many() LoadOption {
	return func(o *loadOptions) { o.many = true }
}

// Partial exempts the named fields from the required check.
func Partial(fields ...string) LoadOption {
	return func(o *loadOptions) {
		if o.partial == nil {
			o.partial = make(map[string]struct{}, len(fields))
		}
		for _, f := range fields {
			o.partial[f] = struct{}{}
		}
	}
}

// PartialAll exempts every field from the required check.
func PartialAll() LoadOption {
	return func(o *loadOptions) { o.partialAll = true }
}

func Unknown(p UnknownPolicy) LoadOption {
	return func(o *loadOptions) { o.unknown = p }
}

func (o *loadOptions) exempt(field string) bool {
	if o.partialAll {
		return true
	}
	_, ok := o.partial[field]
	return ok
}
