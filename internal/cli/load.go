// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Bl4cky99/schemer/internal/render"
	"github.com/Bl4cky99/schemer/pkg/schema"
)

func cmdLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: schemer load -c <file> -s <schema> [flags] <input>

Input is a .json, .yaml, .yml or .csv file, or - for JSON on stdin.

Flags:
	-c, --config string		Path to definition file (yaml|yml|json) (required)
	-s, --schema string		Schema name (required)
	    --many[=bool]		Treat the input as a list of records (--many=false forces a single record;
				                default: decided by the input shape)
	    --partial string		Comma separated fields exempt from the required check
	    --partial-all		Exempt every field from the required check
	    --unknown string		Unknown key policy: ignore|raise|include
	-f, --format string		Output format: json|text (default "json")
	-t, --template string		Template file for text output
`)
	}
	cfgPath := fs.String("config", "", "")
	fs.StringVar(cfgPath, "c", *cfgPath, "path to definition file")

	name := fs.String("schema", "", "")
	fs.StringVar(name, "s", *name, "schema name")

	var many *bool
	fs.BoolFunc("many", "", func(v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		many = &b
		return nil
	})
	partial := fs.String("partial", "", "")
	partialAll := fs.Bool("partial-all", false, "")
	unknown := fs.String("unknown", "", "")

	format := fs.String("format", "json", "")
	fs.StringVar(format, "f", *format, "output format")

	tplPath := fs.String("template", "", "")
	fs.StringVar(tplPath, "t", *tplPath, "template file")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v", err.Error())
		return 2
	}

	if *cfgPath == "" || *name == "" || fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if *format != "json" && *format != "text" {
		fmt.Fprintf(os.Stderr, "unknown format %q (use json|text)\n", *format)
		return 2
	}

	var opts []schema.LoadOption
	if *unknown != "" {
		p, err := schema.ParseUnknownPolicy(*unknown)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 2
		}
		opts = append(opts, schema.Unknown(p))
	}
	if *partialAll {
		opts = append(opts, schema.PartialAll())
	} else if fields := splitList(*partial); len(fields) > 0 {
		opts = append(opts, schema.Partial(fields...))
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid definitions: %v\n", err)
		return 1
	}
	schemas, err := cfg.BuildSchemas()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid definitions: %v\n", err)
		return 1
	}
	sc, ok := schemas[*name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown schema %q\n", *name)
		return 2
	}

	in, err := readInput(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return 1
	}

	batch := in.Batch
	if many != nil {
		batch = *many
	}
	if batch {
		opts = append(opts, schema.Many())
	}

	out, loadErr := sc.Decode(in.Value, opts...)
	var ve *schema.ValidationError
	if loadErr != nil && !errors.As(loadErr, &ve) {
		fmt.Fprintf(os.Stderr, "load: %v\n", loadErr)
		return 1
	}

	r := render.New()
	var body []byte
	switch {
	case *tplPath != "":
		body, err = r.RenderFile(*tplPath, render.BuildData(*name, batch, out, loadErr, now()))
	case *format == "text":
		body, err = r.RenderString(render.DefaultTemplate, render.BuildData(*name, batch, out, loadErr, now()))
	case loadErr != nil:
		body, err = r.JSON(map[string]any{"errors": ve})
	default:
		body, err = r.JSON(out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}

	_, _ = os.Stdout.Write(body)
	if loadErr != nil {
		return 1
	}
	return 0
}

func cmdExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: schemer export -c <file> [-s <schema>]

Flags:
	-c, --config string		Path to definition file (yaml|yml|json) (required)
	-s, --schema string		Export only this schema
`)
	}
	cfgPath := fs.String("config", "", "")
	fs.StringVar(cfgPath, "c", *cfgPath, "path to definition file")

	name := fs.String("schema", "", "")
	fs.StringVar(name, "s", *name, "schema name")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "%v", err.Error())
		return 2
	}

	if *cfgPath == "" {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid definitions: %v\n", err)
		return 1
	}
	schemas, err := cfg.BuildSchemas()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid definitions: %v\n", err)
		return 1
	}

	var doc any
	if *name != "" {
		sc, ok := schemas[*name]
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown schema %q\n", *name)
			return 2
		}
		doc = sc.JSONSchema()
	} else {
		all := make(map[string]any, len(schemas))
		for n, sc := range schemas {
			all[n] = sc.JSONSchema()
		}
		doc = all
	}

	body, err := render.New().JSON(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		return 1
	}
	_, _ = os.Stdout.Write(body)
	return 0
}

var now = func() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
