// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package httpx

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Bl4cky99/schemer/pkg/schema"
)

// loadOptionsFrom reads many, partial and unknown from the query. many is
// nil when the caller did not say, so the body shape decides.
func loadOptionsFrom(q url.Values) (many *bool, opts []schema.LoadOption, err error) {
	if raw := q.Get("many"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: many=%q", ErrBadOption, raw)
		}
		many = &b
	}

	if q.Has("partial") {
		raw := strings.TrimSpace(q.Get("partial"))
		switch raw {
		case "*", "true":
			opts = append(opts, schema.PartialAll())
		case "", "false":
		default:
			var fields []string
			for _, f := range strings.Split(raw, ",") {
				if f = strings.TrimSpace(f); f != "" {
					fields = append(fields, f)
				}
			}
			opts = append(opts, schema.Partial(fields...))
		}
	}

	if raw := q.Get("unknown"); raw != "" {
		p, err := schema.ParseUnknownPolicy(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrBadOption, err)
		}
		opts = append(opts, schema.Unknown(p))
	}

	return many, opts, nil
}
