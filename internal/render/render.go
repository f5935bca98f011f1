// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Jason Giese (Bl4cky99)

package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"text/template"
	"time"
)

// DefaultTemplate prints a summary line on success and one line per field
// with errors otherwise.
const DefaultTemplate = `{{if .OK}}{{.Schema}}: ok{{if .Many}} ({{len .Output}} records){{end}}
{{else}}{{.Schema}}: {{len .Errors}} field(s) invalid
{{range .Errors}}{{if $.Many}}[{{.Index}}] {{end}}{{.Field}}: {{join .Messages "; "}}
{{end}}{{end}}`

type Renderer struct {
	mu   sync.RWMutex
	tpls map[string]cachedTpl
}

type cachedTpl struct {
	tpl   *template.Template
	mtime time.Time
}

func New() *Renderer {
	return &Renderer{tpls: make(map[string]cachedTpl)}
}

// JSON renders v as indented JSON followed by a newline.
func (r *Renderer) JSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (r *Renderer) RenderString(tplSrc string, data any) ([]byte, error) {
	tpl, err := parse("inline", tplSrc)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RenderFile renders the template at path. Parsed templates are cached and
// re-parsed once the file's modification time moves forward.
func (r *Renderer) RenderFile(path string, data any) ([]byte, error) {
	abs, _ := filepath.Abs(path)
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	ct, ok := r.tpls[abs]
	r.mu.RUnlock()

	if !ok || ct.mtime.Before(info.ModTime()) {
		src, err := os.ReadFile(abs)
		if err != nil {
			return nil, err
		}

		tpl, err := parse(filepath.Base(abs), string(src))
		if err != nil {
			return nil, err
		}

		ct = cachedTpl{tpl: tpl, mtime: info.ModTime()}

		r.mu.Lock()
		r.tpls[abs] = ct
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := ct.tpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func parse(name, src string) (*template.Template, error) {
	return template.New(name).Funcs(Funcs()).Option("missingkey=zero").Parse(src)
}
