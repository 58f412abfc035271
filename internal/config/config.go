// Package config holds the settings shared by loading, finalization and
// output generation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// EnvConfig names the environment variable consulted for a config file path
// when no --config flag is given.
const EnvConfig = "GODOXY_CONFIG"

// Folders maps compound categories to output sub-directories.
type Folders struct {
	Classes    string `yaml:"classes" json:"classes"`
	Namespaces string `yaml:"namespaces" json:"namespaces"`
	Groups     string `yaml:"groups" json:"groups"`
	Files      string `yaml:"files" json:"files"`
	Pages      string `yaml:"pages" json:"pages"`
	Examples   string `yaml:"examples" json:"examples"`
}

// Config holds configuration options for loading and rendering.
type Config struct {
	// InputDir is the Doxygen XML output directory containing index.xml
	InputDir string `yaml:"inputDir" json:"inputDir"`

	// OutputDir is where generated pages are written
	OutputDir string `yaml:"outputDir" json:"outputDir"`

	// TemplatesDir optionally overrides the built-in templates (*.tmpl)
	TemplatesDir string `yaml:"templatesDir" json:"templatesDir"`

	// BaseURL is prepended to every generated link
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`

	// LinkSuffix is appended to every generated link (e.g. ".md" or "/")
	LinkSuffix string `yaml:"linkSuffix" json:"linkSuffix"`

	// LinkLowercase lowercases generated links
	LinkLowercase bool `yaml:"linkLowercase" json:"linkLowercase"`

	// FileExt is the extension of generated files, without the dot
	FileExt string `yaml:"fileExt" json:"fileExt"`

	// IndexInFolders writes per-kind index pages inside their folder. With an
	// empty BaseURL their entry links are made relative to that folder.
	IndexInFolders bool `yaml:"indexInFolders" json:"indexInFolders"`

	// Folders holds the output sub-directory per compound category
	Folders Folders `yaml:"folders" json:"folders"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel" json:"logLevel"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "",
		LinkSuffix: ".md",
		FileExt:    "md",
		Folders: Folders{
			Classes:    "Classes",
			Namespaces: "Namespaces",
			Groups:     "Modules",
			Files:      "Files",
			Pages:      "Pages",
			Examples:   "Examples",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML or JSON config file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.FileExt == "" {
		return fmt.Errorf("fileExt must not be empty")
	}
	if strings.HasPrefix(c.FileExt, ".") {
		return fmt.Errorf("fileExt %q must not start with a dot", c.FileExt)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown logLevel: %q (valid options: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// Folder returns the output sub-directory for a compound kind.
func (c *Config) Folder(kind string) string {
	switch kind {
	case "class", "struct", "union", "interface":
		return c.Folders.Classes
	case "namespace":
		return c.Folders.Namespaces
	case "group":
		return c.Folders.Groups
	case "file", "dir":
		return c.Folders.Files
	case "page":
		return c.Folders.Pages
	case "example":
		return c.Folders.Examples
	}
	return ""
}

// Link builds the URL of the page generated for a compound.
func (c *Config) Link(kind, refid string) string {
	return c.BaseURL + c.path(kind, refid) + c.LinkSuffix
}

// PagePath returns the output path, relative to OutputDir, of the page
// generated for a compound. It names the same file as Link when BaseURL is
// empty and LinkSuffix is "." + FileExt.
func (c *Config) PagePath(kind, refid string) string {
	return filepath.FromSlash(c.path(kind, refid)) + "." + c.FileExt
}

// path is the slash separated folder and page name of a compound, without
// BaseURL or extension.
func (c *Config) path(kind, name string) string {
	p := name
	if folder := c.Folder(kind); folder != "" {
		p = folder + "/" + name
	}
	if c.LinkLowercase {
		p = strings.ToLower(p)
	}
	return p
}

// IndexDir returns the directory, relative to OutputDir, holding the index
// page of a folder when IndexInFolders is set.
func (c *Config) IndexDir(folder string) string {
	if c.LinkLowercase {
		folder = strings.ToLower(folder)
	}
	return filepath.FromSlash(folder)
}

// FileName returns the file name, without folder, for a generated page.
func (c *Config) FileName(name string) string {
	if c.LinkLowercase {
		name = strings.ToLower(name)
	}
	return name + "." + c.FileExt
}
