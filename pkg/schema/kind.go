// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind selects the coercion and validation rule applied to a field.
type Kind int

const (
	String Kind = iota + 1
	Integer
	Email
	URL
)

type fault struct {
	code Code
	msg  string
}

type rule struct {
	name     string
	jsonType string
	format   string
	coerce   func(f Field, v any) (any, *fault)
}

var rules = map[Kind]rule{
	String:  {name: "string", jsonType: "string", coerce: coerceString},
	Integer: {name: "integer", jsonType: "integer", coerce: coerceInteger},
	Email:   {name: "email", jsonType: "string", format: "email", coerce: coerceEmail},
	URL:     {name: "url", jsonType: "string", format: "uri", coerce: coerceURL},
}

func (k Kind) String() string {
	if r, ok := rules[k]; ok {
		return r.name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind maps a kind name as written in definition files to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string", "str":
		return String, nil
	case "integer", "int":
		return Integer, nil
	case "email":
		return Email, nil
	case "url":
		return URL, nil
	default:
		return 0, fmt.Errorf("%w: %q (use string|integer|email|url)", ErrUnknownKind, s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := rules[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

var (
	faultString  = &fault{code: CodeInvalidType, msg: MsgInvalidString}
	faultInteger = &fault{code: CodeInvalidType, msg: MsgInvalidInteger}
	faultEmail   = &fault{code: CodeInvalidEmail, msg: MsgInvalidEmail}
	faultURL     = &fault{code: CodeInvalidURL, msg: MsgInvalidURL}
)

// coerceString accepts valid UTF-8 text only. Other scalars, including
// json.Number, are not stringified.
func coerceString(_ Field, v any) (any, *fault) {
	switch s := v.(type) {
	case json.Number:
		return nil, faultString
	case string:
		if !utf8.ValidString(s) {
			return nil, faultString
		}
		return s, nil
	case []byte:
		if !utf8.Valid(s) {
			return nil, faultString
		}
		return string(s), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String && utf8.ValidString(rv.String()) {
		return rv.String(), nil
	}
	return nil, faultString
}

func coerceInteger(_ Field, v any) (any, *fault) {
	switch n := v.(type) {
	case bool:
		return nil, faultInteger
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return nil, faultInteger
		}
		return int(n), nil
	case uint:
		return fromUint(uint64(n))
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return fromUint(uint64(n))
	case uint64:
		return fromUint(n)
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, faultInteger
		}
		return fromFloat(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, faultInteger
		}
		return i, nil
	default:
		return nil, faultInteger
	}
}

func fromUint(n uint64) (any, *fault) {
	if n > math.MaxInt {
		return nil, faultInteger
	}
	return int(n), nil
}

func fromFloat(f float64) (any, *fault) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, faultInteger
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, faultInteger
	}
	return int(f), nil
}

func coerceEmail(f Field, v any) (any, *fault) {
	s, flt := coerceString(f, v)
	if flt != nil {
		return nil, flt
	}
	if !isEmail(s.(string)) {
		return nil, faultEmail
	}
	return s, nil
}

func coerceURL(f Field, v any) (any, *fault) {
	s, flt := coerceString(f, v)
	if flt != nil {
		return nil, flt
	}
	if !isURL(s.(string), f.schemes()) {
		return nil, faultURL
	}
	return s, nil
}
