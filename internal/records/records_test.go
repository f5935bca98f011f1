// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package records

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bl4cky99/schemer/pkg/schema"
)

func TestRead(t *testing.T) {
	t.Run("json batch keeps numbers", func(t *testing.T) {
		in, err := Read(filepath.Join("testdata", "vets.json"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if !in.Batch || in.Format != FormatJSON {
			t.Fatalf("expected json batch, got %+v", in)
		}
		items := in.Value.([]any)
		age := items[1].(map[string]any)["age"]
		if n, ok := age.(json.Number); !ok || n.String() != "12345678901234567890" {
			t.Fatalf("expected json.Number, got %T %v", age, age)
		}
	})

	t.Run("yaml single record", func(t *testing.T) {
		in, err := Read(filepath.Join("testdata", "vet.yaml"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if in.Batch {
			t.Fatalf("single mapping reported as batch")
		}
		rec := in.Value.(map[string]any)
		if rec["name"] != "Dr. Wags" || rec["years_practice"] != 10 {
			t.Fatalf("unexpected record: %v", rec)
		}
	})

	t.Run("csv rows omit empty cells", func(t *testing.T) {
		in, err := Read(filepath.Join("testdata", "vets.csv"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		rows := in.Value.([]any)
		if !in.Batch || len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %+v", in)
		}
		first := rows[0].(map[string]any)
		if first["age"] != "80" || first["email"] != "mick@stones.com" {
			t.Fatalf("unexpected first row: %v", first)
		}
		second := rows[1].(map[string]any)
		if _, ok := second["email"]; ok || len(second) != 1 {
			t.Fatalf("empty cells should be omitted: %v", second)
		}
	})

	t.Run("csv header only", func(t *testing.T) {
		in, err := Read(filepath.Join("testdata", "empty.csv"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if rows := in.Value.([]any); len(rows) != 0 || !in.Batch {
			t.Fatalf("expected empty batch, got %+v", in)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		old := Stdin
		Stdin = strings.NewReader(`{"name":"Ronnie"}`)
		t.Cleanup(func() { Stdin = old })

		in, err := Read("-")
		if err != nil {
			t.Fatalf("read stdin: %v", err)
		}
		if in.Batch || in.Value.(map[string]any)["name"] != "Ronnie" {
			t.Fatalf("unexpected stdin input: %+v", in)
		}
	})
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrEmptyPath},
		{"unknown extension", "records.txt", ErrUnsupportedExt},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Read(tc.path); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := Read(filepath.Join("testdata", "missing.json")); err == nil || !strings.Contains(err.Error(), "read") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		f    Format
	}{
		{"json syntax", `{"name":`, FormatJSON},
		{"json trailing", `{"a":1} {"b":2}`, FormatJSON},
		{"yaml syntax", "a: [1,\n", FormatYAML},
		{"csv quotes", "name\n\"open\n", FormatCSV},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tc.src), tc.f); !errors.Is(err, ErrDecode) {
				t.Fatalf("expected decode error, got %v", err)
			}
		})
	}

	if _, err := Decode(strings.NewReader("x"), Format("xml")); !errors.Is(err, ErrUnsupportedExt) {
		t.Fatalf("expected unsupported format, got %v", err)
	}
}

func TestDecodeEmptyYAML(t *testing.T) {
	in, err := Decode(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if in.Value != nil || in.Batch {
		t.Fatalf("expected nil value, got %+v", in)
	}
}

func TestDecodedNumbersAreNotStrings(t *testing.T) {
	in, err := Decode(strings.NewReader(`{"name": 42, "age": 42}`), FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	sc := schema.MustDefine("Vet", schema.StringField("name"), schema.IntegerField("age"))
	_, err = sc.Decode(in.Value)

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := verr.Codes(0, "name"); len(got) != 1 || got[0] != schema.CodeInvalidType {
		t.Fatalf("expected invalid_type for name, got %v", got)
	}
	if got := verr.Codes(0, "age"); len(got) != 0 {
		t.Fatalf("age should coerce, got %v", got)
	}
}
