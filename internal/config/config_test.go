package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "md", cfg.FileExt)
	assert.Equal(t, ".md", cfg.LinkSuffix)
	assert.Equal(t, "Classes", cfg.Folders.Classes)
	assert.Equal(t, "Modules", cfg.Folders.Groups)
	assert.NoError(t, cfg.Validate())
}

func TestLink(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		kind     string
		refid    string
		expected string
	}{
		{"class", nil, "class", "classFoo", "Classes/classFoo.md"},
		{"struct shares class folder", nil, "struct", "structBar", "Classes/structBar.md"},
		{"dir shares file folder", nil, "dir", "dir_abc", "Files/dir_abc.md"},
		{"unknown kind has no folder", nil, "function", "x_1a", "x_1a.md"},
		{"base url and suffix", func(c *Config) {
			c.BaseURL = "/api/"
			c.LinkSuffix = "/"
		}, "group", "group__io", "/api/Modules/group__io/"},
		{"lowercase", func(c *Config) { c.LinkLowercase = true }, "namespace", "namespaceNS", "namespaces/namespacens.md"},
		{"lowercase keeps base url", func(c *Config) {
			c.BaseURL = "https://Example.com/API/"
			c.LinkLowercase = true
		}, "class", "classFoo", "https://Example.com/API/classes/classfoo.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			assert.Equal(t, tt.expected, cfg.Link(tt.kind, tt.refid))
		})
	}
}

func TestPagePath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("Classes", "classFoo.md"), cfg.PagePath("class", "classFoo"))
	assert.Equal(t, "x_1a.md", cfg.PagePath("function", "x_1a"))

	cfg.LinkLowercase = true
	cfg.FileExt = "mdx"
	assert.Equal(t, filepath.Join("modules", "group__io.mdx"), cfg.PagePath("group", "group__IO"))
	assert.Equal(t, "modules", cfg.IndexDir(cfg.Folders.Groups))
}

func TestLoad(t *testing.T) {
	t.Run("yaml overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "godoxy.yaml")
		content := "baseUrl: /docs/\nlinkSuffix: /\nfolders:\n  classes: types\nlogLevel: debug\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/docs/", cfg.BaseURL)
		assert.Equal(t, "/", cfg.LinkSuffix)
		assert.Equal(t, "types", cfg.Folders.Classes)
		assert.Equal(t, "Namespaces", cfg.Folders.Namespaces)
		assert.Equal(t, "md", cfg.FileExt)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("json is accepted", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "godoxy.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fileExt": "mdx", "linkLowercase": true}`), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "mdx", cfg.FileExt)
		assert.True(t, cfg.LinkLowercase)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fileExt: .md\n"), 0644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
