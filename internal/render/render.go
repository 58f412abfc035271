// Package render executes named text templates over the structured data of
// the documentation tree.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/expr-lang/expr/vm"

	"github.com/itsmostafa/godoxy/internal/logging"
)

// ErrTemplateNotFound is returned when rendering a name that was never added.
var ErrTemplateNotFound = errors.New("render: template not found")

// Renderer holds a set of named templates sharing one function map. Templates
// may include each other with {{template "name" .}} or the render function.
type Renderer struct {
	outputDir string
	log       logging.Logger
	root      *template.Template
	programs  map[string]*vm.Program
	now       func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report written files.
func WithLogger(l logging.Logger) Option {
	return func(r *Renderer) {
		r.log = l
	}
}

// WithClock overrides the time source of the date function.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// New returns a Renderer writing files below outputDir.
func New(outputDir string, opts ...Option) *Renderer {
	r := &Renderer{
		outputDir: outputDir,
		log:       logging.Nop(),
		programs:  make(map[string]*vm.Program),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.root = template.New("").Funcs(r.funcs())
	return r
}

// AddTemplate parses src and registers it under name, replacing any template
// of the same name.
func (r *Renderer) AddTemplate(name, src string) error {
	if _, err := r.root.New(name).Parse(src); err != nil {
		return fmt.Errorf("failed to parse template '%s': %w", name, err)
	}
	return nil
}

// Has reports whether a template named name was added.
func (r *Renderer) Has(name string) bool {
	return r.root.Lookup(name) != nil
}

// Render executes the template name over data and returns the output.
func (r *Renderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderFile executes the template name over data and writes the output to
// path, relative to the output directory. Missing parent directories are
// created.
func (r *Renderer) RenderFile(name, path string, data any) error {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		return err
	}

	absPath := filepath.Join(r.outputDir, path)
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", absPath, err)
	}
	r.log.Debug("rendering", "template", name, "path", absPath)
	if err := os.WriteFile(absPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to open file for writing %s: %w", absPath, err)
	}
	return nil
}

func (r *Renderer) execute(buf *bytes.Buffer, name string, data any) error {
	tmpl := r.root.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("failed to render template '%s': %w", name, err)
	}
	return nil
}
