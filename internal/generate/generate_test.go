package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsmostafa/godoxy/internal/config"
	"github.com/itsmostafa/godoxy/internal/doxygen"
	"github.com/itsmostafa/godoxy/internal/printer"
)

func loadSample(t *testing.T, cfg *config.Config) *doxygen.Doxygen {
	t.Helper()
	d := doxygen.New(filepath.Join("testdata", "xml"))
	require.NoError(t, d.Load(context.Background()))
	require.NoError(t, d.Finalize(cfg, printer.NewMarkdown()))
	return d
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestGenerate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	d := loadSample(t, cfg)

	g, err := New(cfg, nil)
	require.NoError(t, err)
	res, err := g.Generate(context.Background(), d.Root())
	require.NoError(t, err)

	assert.Equal(t, 6, res.Pages)
	assert.Equal(t, 4, res.Indexes)
	assert.Equal(t, 0, res.Skipped)

	for _, path := range []string{
		"Classes/classengine_1_1Engine.md",
		"Classes/structengine_1_1Options.md",
		"Namespaces/namespaceengine.md",
		"Modules/group__core.md",
		"Files/dir_src.md",
		"Files/engine_8h.md",
		"index_classes.md",
		"index_namespaces.md",
		"index_groups.md",
		"index_files.md",
	} {
		assert.FileExists(t, filepath.Join(cfg.OutputDir, path))
	}
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "index_pages.md"))

	class := readFile(t, filepath.Join(cfg.OutputDir, "Classes", "classengine_1_1Engine.md"))
	assert.Contains(t, class, "# Class engine::Engine")
	assert.Contains(t, class, "**Parent**: [engine](Namespaces/namespaceengine.md)")
	assert.Contains(t, class, "The main engine.")
	assert.Contains(t, class, "Inherits from std::enable_shared_from_this< Engine >")
	assert.Contains(t, class, "## Functions")
	assert.Contains(t, class, "virtual bool engine::Engine::start(const Options &options)")
	assert.Contains(t, class, "**Returns**: true on success.")
	assert.Contains(t, class, "[Options](Classes/structengine_1_1Options.md)")
	assert.Contains(t, class, "* `Idle`: Not running.")
	assert.Contains(t, class, "Owns the [core](Modules/group__core.md) services.")

	group := readFile(t, filepath.Join(cfg.OutputDir, "Modules", "group__core.md"))
	assert.Contains(t, group, "title: Core Services")
	assert.Contains(t, group, "[engine::Engine](Classes/classengine_1_1Engine.md)")

	index := readFile(t, filepath.Join(cfg.OutputDir, "index_classes.md"))
	assert.Contains(t, index, "* **namespace** [engine](Namespaces/namespaceengine.md)")
	assert.Contains(t, index, "  * **class** [engine::Engine](Classes/classengine_1_1Engine.md)")
}

func TestGenerateTemplateOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.TemplatesDir = t.TempDir()
	cfg.IndexInFolders = true
	cfg.FileExt = "txt"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.TemplatesDir, "class.tmpl"), []byte(`custom {{.name}}`), 0644))
	d := loadSample(t, cfg)

	g, err := New(cfg, nil)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), d.Root())
	require.NoError(t, err)

	assert.Equal(t, "custom engine::Engine", readFile(t, filepath.Join(cfg.OutputDir, "Classes", "classengine_1_1Engine.txt")))
	index := readFile(t, filepath.Join(cfg.OutputDir, "Modules", "index_groups.txt"))
	assert.Contains(t, index, "](../Modules/group__core.md)")
}

func TestGenerateLowercaseLinks(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.LinkLowercase = true
	cfg.IndexInFolders = true
	d := loadSample(t, cfg)

	g, err := New(cfg, nil)
	require.NoError(t, err)
	res, err := g.Generate(context.Background(), d.Root())
	require.NoError(t, err)
	assert.Equal(t, 6, res.Pages)

	for _, n := range d.Root().AllNodes() {
		if n.IsRoot() || !n.Kind.IsStructured() {
			continue
		}
		assert.FileExists(t, filepath.Join(cfg.OutputDir, filepath.FromSlash(n.Details.URL)), n.Refid)
	}

	dir := filepath.Join(cfg.OutputDir, "modules")
	index := readFile(t, filepath.Join(dir, "index_groups.md"))
	assert.Contains(t, index, "](../modules/group__core.md)")
	assert.FileExists(t, filepath.Join(dir, "..", "modules", "group__core.md"))
}

func TestNewInvalidTemplate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.TemplatesDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.TemplatesDir, "class.tmpl"), []byte(`{{end}}`), 0644))

	_, err := New(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template 'class'")
}

func TestIndexEntries(t *testing.T) {
	cfg := config.DefaultConfig()
	d := loadSample(t, cfg)

	entries := IndexEntries(d.Root(), Indexes[0])
	var names []string
	var depths []int
	for _, e := range entries {
		m := e.(map[string]any)
		names = append(names, m["name"].(string))
		depths = append(depths, m["depth"].(int))
	}
	assert.Equal(t, []string{"engine", "engine::Engine", "engine::Options"}, names)
	assert.Equal(t, []int{0, 1, 1}, depths)
}

func TestTemplateFor(t *testing.T) {
	assert.Equal(t, "class", TemplateFor(doxygen.KindStruct))
	assert.Equal(t, "namespace", TemplateFor(doxygen.KindNamespace))
	assert.Equal(t, "page", TemplateFor(doxygen.KindExample))
	assert.Equal(t, "dir", TemplateFor(doxygen.KindDir))
}
