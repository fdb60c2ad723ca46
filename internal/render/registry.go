// Package render owns the server-side HTML rendering: a registry of
// compiled templates parsed from a directory, and a file-system watcher
// that recompiles the registry when template files change.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pagesmith/pagesmith/internal/logger"
)

// templateExt is the extension a file must carry to be picked up by the
// registry. The extension is stripped from the template name.
const templateExt = ".html"

// Registry holds the compiled template set and serves lookups for the
// display route.
//
// Templates are named by their path relative to the registry directory
// with the extension stripped, so "templates/blog/post.html" is
// addressed as "blog/post".
//
// The registry is the only cross-request mutable state in the server:
// Render takes a read lock while the watcher swaps in a freshly parsed
// set under the write lock, so renders never observe a half-built set.
type Registry struct {
	mu        sync.RWMutex
	templates *template.Template

	dir    string
	logger *logger.Logger
}

// NewRegistry parses every template under dir (recursively) and returns
// a ready registry. Parsing errors of the initial set are fatal; later
// reloads keep the previous set on error.
func NewRegistry(dir string, logger *logger.Logger) (*Registry, error) {
	registry := &Registry{
		dir:    dir,
		logger: logger,
	}

	templates, err := parseDir(dir)
	if err != nil {
		return nil, err
	}
	registry.templates = templates

	logger.Info().Str("dir", dir).Msg("template registry compiled")
	return registry, nil
}

// Render executes the named template with the given data.
// Returns ErrTemplateNotFound if no template carries that name.
func (r *Registry) Render(w io.Writer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl := r.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w %q: %w", ErrRenderingTemplate, name, err)
	}

	return nil
}

// Has reports whether a template with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates.Lookup(name) != nil
}

// Reload re-parses the template directory and swaps the compiled set in
// atomically. When parsing fails the previous set stays active, so a
// syntax error in one template never takes the site down.
func (r *Registry) Reload() error {
	templates, err := parseDir(r.dir)
	if err != nil {
		r.logger.Err(err).Str("dir", r.dir).Msg("template reload failed, keeping previous set")
		return err
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	r.logger.Info().Str("dir", r.dir).Msg("template registry reloaded")
	return nil
}

// parseDir walks dir recursively and compiles every *.html file into
// one template set, named by extension-stripped relative path.
func parseDir(dir string) (*template.Template, error) {
	root := template.New("")

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), templateExt) {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), templateExt)

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if _, err := root.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing template %q: %w", name, err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompilingTemplates, err)
	}

	return root, nil
}
