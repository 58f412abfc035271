// Package generate writes one documentation page per compound of a finalized
// tree, plus per-category index pages.
package generate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/itsmostafa/godoxy/internal/config"
	"github.com/itsmostafa/godoxy/internal/doxygen"
	"github.com/itsmostafa/godoxy/internal/logging"
	"github.com/itsmostafa/godoxy/internal/render"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Index describes one category index page.
type Index struct {
	Name   string // file name without extension, e.g. "index_classes"
	Title  string
	Folder func(cfg *config.Config) string
	Kinds  []doxygen.Kind
	// Nested lists entries under their closest listed ancestor instead of
	// flat by name.
	Nested bool
}

// Indexes are the index pages written by Generate.
var Indexes = []Index{
	{
		Name:   "index_classes",
		Title:  "Classes",
		Folder: func(c *config.Config) string { return c.Folders.Classes },
		Kinds: []doxygen.Kind{doxygen.KindNamespace, doxygen.KindClass, doxygen.KindStruct,
			doxygen.KindUnion, doxygen.KindInterface},
		Nested: true,
	},
	{
		Name:   "index_namespaces",
		Title:  "Namespaces",
		Folder: func(c *config.Config) string { return c.Folders.Namespaces },
		Kinds:  []doxygen.Kind{doxygen.KindNamespace},
		Nested: true,
	},
	{
		Name:   "index_groups",
		Title:  "Modules",
		Folder: func(c *config.Config) string { return c.Folders.Groups },
		Kinds:  []doxygen.Kind{doxygen.KindGroup},
		Nested: true,
	},
	{
		Name:   "index_files",
		Title:  "Files",
		Folder: func(c *config.Config) string { return c.Folders.Files },
		Kinds:  []doxygen.Kind{doxygen.KindDir, doxygen.KindFile},
		Nested: true,
	},
	{
		Name:   "index_pages",
		Title:  "Pages",
		Folder: func(c *config.Config) string { return c.Folders.Pages },
		Kinds:  []doxygen.Kind{doxygen.KindPage},
	},
	{
		Name:   "index_examples",
		Title:  "Examples",
		Folder: func(c *config.Config) string { return c.Folders.Examples },
		Kinds:  []doxygen.Kind{doxygen.KindExample},
	},
}

// Result counts what Generate wrote.
type Result struct {
	Pages   int
	Indexes int
	Skipped int // structured Nodes without a matching template
}

// Generator renders pages for a finalized tree.
type Generator struct {
	cfg      *config.Config
	renderer *render.Renderer
	log      logging.Logger
}

// New returns a Generator writing into cfg.OutputDir. The built-in templates
// are loaded first; *.tmpl files of cfg.TemplatesDir replace them by name.
func New(cfg *config.Config, log logging.Logger) (*Generator, error) {
	if log == nil {
		log = logging.Nop()
	}
	g := &Generator{
		cfg:      cfg,
		renderer: render.New(cfg.OutputDir, render.WithLogger(log)),
		log:      log,
	}
	if err := g.loadTemplates(defaultTemplates, "templates"); err != nil {
		return nil, err
	}
	if cfg.TemplatesDir != "" {
		if err := g.loadTemplates(os.DirFS(cfg.TemplatesDir), "."); err != nil {
			return nil, fmt.Errorf("failed to load templates from %s: %w", cfg.TemplatesDir, err)
		}
	}
	return g, nil
}

// Renderer returns the renderer holding the loaded templates.
func (g *Generator) Renderer() *render.Renderer {
	return g.renderer
}

func (g *Generator) loadTemplates(fsys fs.FS, dir string) error {
	names, err := fs.Glob(fsys, path.Join(dir, "*.tmpl"))
	if err != nil {
		return err
	}
	for _, name := range names {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		tmplName := strings.TrimSuffix(path.Base(name), ".tmpl")
		if err := g.renderer.AddTemplate(tmplName, string(src)); err != nil {
			return err
		}
		g.log.Debug("loaded template", "name", tmplName, "source", name)
	}
	return nil
}

// TemplateFor returns the template name used for pages of kind k.
func TemplateFor(k doxygen.Kind) string {
	if k.IsClassLike() {
		return "class"
	}
	if k == doxygen.KindExample {
		return "page"
	}
	return string(k)
}

// PagePath returns the output path of the page for n, relative to the output
// directory.
func PagePath(cfg *config.Config, n *doxygen.Node) string {
	return cfg.PagePath(string(n.Kind), n.Refid)
}

// Generate writes the pages of every structured Node below root and the
// category index pages.
func (g *Generator) Generate(ctx context.Context, root *doxygen.Node) (Result, error) {
	var res Result
	for _, n := range root.AllNodes() {
		if n.IsRoot() || !n.Kind.IsStructured() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		name := TemplateFor(n.Kind)
		if !g.renderer.Has(name) {
			res.Skipped++
			g.log.Debug("no template for kind", "kind", n.Kind, "refid", n.Refid)
			continue
		}
		if err := g.renderer.RenderFile(name, PagePath(g.cfg, n), n.Data()); err != nil {
			return res, err
		}
		res.Pages++
	}

	for _, idx := range Indexes {
		entries := IndexEntries(root, idx)
		if len(entries) == 0 {
			continue
		}
		file := g.cfg.FileName(idx.Name)
		if g.cfg.IndexInFolders {
			dir := g.cfg.IndexDir(idx.Folder(g.cfg))
			file = filepath.Join(dir, file)
			relativize(entries, dir, g.cfg.BaseURL)
		}
		data := map[string]any{
			"title":   idx.Title,
			"name":    idx.Name,
			"entries": entries,
		}
		if err := g.renderer.RenderFile("index", file, data); err != nil {
			return res, err
		}
		res.Indexes++
	}
	return res, nil
}

// IndexEntries lists the Nodes of the index's kinds as summaries carrying a
// "depth" key. Nested indexes list each entry under its closest listed
// ancestor; siblings are sorted by name in both layouts.
func IndexEntries(root *doxygen.Node, idx Index) []any {
	accept := make(map[doxygen.Kind]bool, len(idx.Kinds))
	for _, k := range idx.Kinds {
		accept[k] = true
	}

	var entries []any
	add := func(n *doxygen.Node, depth int) {
		s := n.Summary()
		s["depth"] = depth
		entries = append(entries, s)
	}

	if !idx.Nested {
		var nodes []*doxygen.Node
		root.Walk(func(n *doxygen.Node) {
			if accept[n.Kind] {
				nodes = append(nodes, n)
			}
		})
		sortByName(nodes)
		for _, n := range nodes {
			add(n, 0)
		}
		return entries
	}

	var walk func(n *doxygen.Node, depth int)
	walk = func(n *doxygen.Node, depth int) {
		children := append([]*doxygen.Node(nil), n.Children...)
		sortByName(children)
		for _, child := range children {
			if accept[child.Kind] {
				add(child, depth)
				walk(child, depth+1)
				continue
			}
			walk(child, depth)
		}
	}
	walk(root, 0)
	return entries
}

func sortByName(nodes []*doxygen.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
}

// relativize rewrites the "url" of entries so they resolve from a page
// written inside dir. Links under a non-empty BaseURL are left alone.
func relativize(entries []any, dir, baseURL string) {
	if baseURL != "" || dir == "" || dir == "." {
		return
	}
	up := strings.Repeat("../", len(strings.Split(filepath.ToSlash(dir), "/")))
	for _, e := range entries {
		s, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if url, ok := s["url"].(string); ok && url != "" {
			s["url"] = up + url
		}
	}
}
