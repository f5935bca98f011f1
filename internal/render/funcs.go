// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package render

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"text/template"
)

func Funcs() template.FuncMap {
	return template.FuncMap{
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return string(b), nil
		},
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"keys": keys,
	}
}

// keys returns the sorted keys of a string-keyed map and nil for anything else.
func keys(v any) []string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil
	}

	out := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		out = append(out, k.String())
	}
	sort.Strings(out)
	return out
}
