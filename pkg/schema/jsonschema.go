// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package schema

// JSONSchemaDraft is the dialect produced by JSONSchema.
const JSONSchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// JSONSchema describes the shape of a successfully loaded record as a JSON
// Schema document built from plain maps and slices.
func (s *Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.fields))
	required := make([]any, 0, len(s.fields))

	for _, f := range s.fields {
		r := rules[f.Kind]

		p := map[string]any{"type": r.jsonType}
		if f.AllowNil {
			p["type"] = []any{r.jsonType, "null"}
		}
		if r.format != "" {
			p["format"] = r.format
		}
		if f.Kind == URL {
			p["x-schemes"] = toAny(f.schemes())
		}

		props[f.Name] = p
		if f.Required {
			required = append(required, f.Name)
		}
	}

	doc := map[string]any{
		"$schema":    JSONSchemaDraft,
		"title":      s.name,
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	if s.options(nil).unknown == UnknownRaise {
		doc["additionalProperties"] = false
	}

	return doc
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
