// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var tags = newTagValidator()

// newTagValidator reports paths using the yaml names users write.
func newTagValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func checkTags(c *Config) []error {
	err := tags.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{fmt.Errorf("%w: %v", ErrSchemaConfig, err)}
	}

	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Config.")
		sentinel := ErrSchemaConfig
		if strings.HasPrefix(path, "server.") {
			sentinel = ErrServerConfig
		}
		out = append(out, fmt.Errorf("%w: %s %s", sentinel, path, describe(fe)))
	}

	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
