// Package template provides the templating engine for wrapgen.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed *.tpl
var templates embed.FS

// Renderer is the interface for rendering templates.
type Renderer interface {
	Render(templateName string, data any) ([]byte, error)
}

// Manager is a template manager that holds and renders templates.
type Manager struct {
	tmpl *template.Template
}

// NewManager creates a new template manager and parses the embedded templates.
func NewManager() *Manager {
	tmpl := template.Must(template.ParseFS(templates, "*.tpl"))
	return &Manager{tmpl: tmpl}
}

// Override parses the *.tpl files found in paths on top of the embedded
// templates. A path is either a directory or a single file; missing paths are
// ignored. A {{define}} block replaces the built-in block of the same name.
func (m *Manager) Override(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	tmpl, err := m.tmpl.Clone()
	if err != nil {
		return fmt.Errorf("template clone failed: %w", err)
	}
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		files := []string{path}
		if fi.IsDir() {
			if files, err = filepath.Glob(filepath.Join(path, "*.tpl")); err != nil {
				return fmt.Errorf("glob pattern error: %w", err)
			}
		}
		for _, f := range files {
			if _, err := tmpl.ParseFiles(f); err != nil {
				return fmt.Errorf("parse %s failed: %w", f, err)
			}
		}
	}
	m.tmpl = tmpl
	return nil
}

// Has reports whether a template with the given name is defined.
func (m *Manager) Has(templateName string) bool {
	return m.tmpl.Lookup(templateName) != nil
}

// Execute writes the named template to w.
func (m *Manager) Execute(w io.Writer, templateName string, data any) error {
	if err := m.tmpl.ExecuteTemplate(w, templateName, data); err != nil {
		return fmt.Errorf("render %s: %w", templateName, err)
	}
	return nil
}

// Render executes the named template with the given data.
func (m *Manager) Render(templateName string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Execute(&buf, templateName, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
