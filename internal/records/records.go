// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

// Package records reads loader input from files in JSON, YAML or CSV form.
package records

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// Stdin is read when the path is "-".
var Stdin io.Reader = os.Stdin

// Input is decoded record input. Batch reports whether Value is a sequence.
type Input struct {
	Value  any
	Batch  bool
	Format Format
}

func FormatFor(path string) (Format, error) {
	if path == "-" {
		return FormatJSON, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (use .json, .yaml, .yml or .csv)", ErrUnsupportedExt, ext)
	}
}

// Read decodes the file at path. "-" reads JSON from Stdin.
func Read(path string) (Input, error) {
	if path == "" {
		return Input{}, ErrEmptyPath
	}

	f, err := FormatFor(path)
	if err != nil {
		return Input{}, err
	}

	var b []byte
	if path == "-" {
		b, err = io.ReadAll(Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return Input{}, fmt.Errorf("read %q: %w", path, err)
	}

	return Decode(bytes.NewReader(b), f)
}

func Decode(r io.Reader, f Format) (Input, error) {
	switch f {
	case FormatJSON:
		v, err := decodeJSON(r)
		if err != nil {
			return Input{}, err
		}
		return Input{Value: v, Batch: isList(v), Format: f}, nil
	case FormatYAML:
		var v any
		if err := yaml.NewDecoder(r).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
			return Input{}, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
		}
		return Input{Value: v, Batch: isList(v), Format: f}, nil
	case FormatCSV:
		rows, err := ReadCSV(r)
		if err != nil {
			return Input{}, err
		}
		return Input{Value: rows, Batch: true, Format: f}, nil
	default:
		return Input{}, fmt.Errorf("%w: format %q", ErrUnsupportedExt, f)
	}
}

// decodeJSON keeps numbers as json.Number so large integers survive.
func decodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: json: %w", ErrDecode, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: json: trailing data after value", ErrDecode)
	}
	return v, nil
}

// ReadCSV reads one record per row keyed by the header row. Empty cells
// are left out so the field counts as missing.
func ReadCSV(r io.Reader) ([]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv header: %w", ErrDecode, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := []any{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %w", ErrDecode, err)
		}

		row := make(map[string]any, len(header))
		for i, name := range header {
			if name == "" || i >= len(rec) || rec[i] == "" {
				continue
			}
			row[name] = rec[i]
		}
		rows = append(rows, row)
	}
}

func isList(v any) bool {
	_, ok := v.([]any)
	return ok
}
