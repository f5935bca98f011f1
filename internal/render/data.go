// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package render

import (
	"errors"

	"github.com/Bl4cky99/schemer/pkg/schema"
)

// Data is what templates see for one load.
type Data struct {
	Schema     string
	OK         bool
	Many       bool
	Output     any
	Errors     []Entry
	Report     any
	NowRFC3339 string
}

// Entry holds the messages of one field of one record, in report order.
type Entry struct {
	Index    int
	Field    string
	Messages []string
}

// BuildData describes the outcome of a load. err is expected to be nil or
// a *schema.ValidationError; other errors are reported under the
// record-level key.
func BuildData(name string, many bool, out any, err error, now string) Data {
	d := Data{Schema: name, Many: many, NowRFC3339: now}
	if err == nil {
		d.OK = true
		d.Output = out
		return d
	}

	var ve *schema.ValidationError
	if !errors.As(err, &ve) {
		d.Errors = []Entry{{Field: schema.SchemaKey, Messages: []string{err.Error()}}}
		d.Report = map[string][]string{schema.SchemaKey: {err.Error()}}
		return d
	}

	d.Many = ve.Many
	d.Report = ve.Report()

	type key struct {
		idx   int
		field string
	}
	pos := make(map[key]int)
	for _, v := range ve.Violations {
		k := key{v.Index, v.Field}
		i, ok := pos[k]
		if !ok {
			i = len(d.Errors)
			pos[k] = i
			d.Errors = append(d.Errors, Entry{Index: v.Index, Field: v.Field})
		}
		d.Errors[i].Messages = append(d.Errors[i].Messages, v.Message)
	}

	return d
}
