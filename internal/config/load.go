// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bl4cky99/schemer/internal/errx"
	"github.com/Bl4cky99/schemer/internal/validate"
	"github.com/Bl4cky99/schemer/pkg/schema"
	"gopkg.in/yaml.v3"
)

const defaultMaxBodyBytes = 1 << 20

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("empty config path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	var cfg Config
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yml", ".yaml":
		var doc any
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("%w: yaml decode %q: %v", ErrDecode, path, err)
		}
		if err := checkDocument(doc); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrDocument, path, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: yaml decode %q: %v", ErrDecode, path, err)
		}
	case ".json":
		if err := checkJSONDocument(b); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrDocument, path, err)
		}

		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: json decode %q: %v", ErrDecode, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .yml or .json)", ErrUnsupportedExt, ext)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return &cfg, nil
}

func checkDocument(doc any) error {
	v, err := validate.Definitions()
	if err != nil {
		return err
	}
	return v.ValidateValue(doc)
}

func checkJSONDocument(b []byte) error {
	v, err := validate.Definitions()
	if err != nil {
		return err
	}
	return v.Validate(b)
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	if c.Server.BasePath == "" {
		c.Server.BasePath = "/"
	}

	if c.Server.DefaultHeaders == nil {
		c.Server.DefaultHeaders = map[string]string{}
	}

	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = defaultMaxBodyBytes
	}

	if c.Auth.Type == "" {
		c.Auth.Type = "none"
	}

	if c.Unknown == "" {
		c.Unknown = schema.UnknownIgnore.String()
	}
}

func (c *Config) Validate() error {
	e := errx.New()

	tagErrs := checkTags(c)
	for _, err := range tagErrs {
		e.Add(err)
	}

	switch c.Auth.Type {
	case "none":
	case "token":
		if c.Auth.Token == nil {
			e.Wrap(ErrAuthConfig, "auth.type=token but token config missing")
		} else {
			e.If(strings.TrimSpace(c.Auth.Token.Header) == "", ErrAuthConfig, "auth.token.header must not be empty")
			e.If(len(c.Auth.Token.Tokens) == 0, ErrAuthConfig, "auth.token.tokens must not be empty")
		}
	case "basic":
		if c.Auth.Basic == nil {
			e.Wrap(ErrAuthConfig, "auth.type=basic but basic config missing")
		} else {
			e.If(len(c.Auth.Basic.Users) == 0, ErrAuthConfig, "auth.basic.users must not be empty")
			for i, u := range c.Auth.Basic.Users {
				e.If(u.Username == "" || u.Password == "", ErrAuthConfig, "auth.basic.users[%d] requires username and password", i)
			}
		}
	default:
		e.Wrapf(ErrAuthConfig, "auth.type %q invalid (use none|token|basic)", c.Auth.Type)
	}

	e.If(!strings.HasPrefix(c.Server.BasePath, "/"), ErrServerConfig, "server.basePath must start with '/'")

	if _, err := schema.ParseUnknownPolicy(c.Unknown); err != nil {
		e.Add(fmt.Errorf("%w: unknown: %w", ErrSchemaConfig, err))
	}

	// Schemas are only built from structurally sound definitions so a
	// missing name is not reported twice.
	if len(tagErrs) == 0 {
		if _, err := c.BuildSchemas(); err != nil {
			e.Add(err)
		}
	}

	return e.Err()
}

// BuildSchemas turns every definition into a schema.Schema keyed by name.
// The definition's unknown policy, or the file-wide one, becomes the
// schema's default.
func (c *Config) BuildSchemas() (map[string]*schema.Schema, error) {
	e := errx.New()
	out := make(map[string]*schema.Schema, len(c.Schemas))

	for i, def := range c.Schemas {
		sc := e.Scope(fmt.Sprintf("schemas[%d]", i))
		if _, dup := out[def.Name]; dup {
			sc.Wrapf(ErrSchemaConfig, "duplicate schema name %q", def.Name)
			continue
		}

		s, err := def.Build(c.Unknown)
		if err != nil {
			sc.Add(fmt.Errorf("%w: %w", ErrSchemaConfig, err))
			continue
		}
		out[def.Name] = s
	}

	if err := e.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (d SchemaDef) Build(defaultUnknown string) (*schema.Schema, error) {
	e := errx.New()
	fields := make([]schema.Field, 0, len(d.Fields))

	for j, fd := range d.Fields {
		kind, err := schema.ParseKind(fd.Type)
		if err != nil {
			e.Scope(fmt.Sprintf("fields[%d]", j)).Add(err)
			continue
		}
		fields = append(fields, schema.Field{
			Name:     fd.Name,
			Kind:     kind,
			Required: fd.Required,
			AllowNil: fd.Nullable,
			Schemes:  fd.Schemes,
		})
	}

	policyName := d.Unknown
	if policyName == "" {
		policyName = defaultUnknown
	}
	policy, err := schema.ParseUnknownPolicy(policyName)
	e.Add(err)

	if err := e.Err(); err != nil {
		return nil, err
	}

	s, err := schema.Define(d.Name, fields...)
	if err != nil {
		return nil, err
	}

	return s.WithDefaults(schema.Unknown(policy)), nil
}
