// Package templates renders HTML views from an fs.FS.
package templates

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"
)

var (
	// ErrTemplateNotFound is returned when no file backs the requested view.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrRenderFailed wraps parse and execution failures.
	ErrRenderFailed = errors.New("template render failed")
)

// extension is appended to view names to find their file.
const extension = ".html"

// Renderer parses templates on first use and caches the parsed result.
type Renderer struct {
	fs fs.FS

	cache map[string]*template.Template
	mu    sync.RWMutex
}

// New creates a renderer over the views at the root of fsys.
func New(fsys fs.FS) *Renderer {
	return &Renderer{
		fs:    fsys,
		cache: make(map[string]*template.Template),
	}
}

// Render executes the template called name (without extension) into w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}
	return nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.cache[name]; ok {
		return tmpl, nil
	}

	file := path.Clean(name + extension)
	content, err := fs.ReadFile(r.fs, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}

	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrRenderFailed, name, err)
	}

	r.cache[name] = tmpl
	return tmpl, nil
}
