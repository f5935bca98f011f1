// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

// Package schema validates and coerces loosely typed records against a
// declared, field-typed schema.
//
// A Schema is built once with Define and reused for any number of loads:
//
//	vets := schema.MustDefine("VetSchema",
//	    schema.StringField("name", schema.Required()),
//	    schema.EmailField("email"),
//	    schema.URLField("website"),
//	    schema.IntegerField("years_practice"),
//	)
//
//	out, err := vets.LoadMany(records)
//	var verr *schema.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.BatchMessages()) // map[0:map[email:[Not a valid email address.]]]
//	}
//
// Every field of every record is checked before a load returns, so a failed
// load reports all violations at once and never returns partial output.
// Schemas hold no mutable state and may be shared between goroutines.
package schema
