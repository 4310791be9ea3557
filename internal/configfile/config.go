// Package configfile loads optional user extensions to the built-in
// profile, category, and package tables.
//
// The tables are expected to grow independently of the resolver, so a
// config file may add new identifiers or override built-in ones. Two
// formats are supported: YAML (the default) and JSONC (JSON with
// comments, selected by a .json/.jsonc extension). Both decode into the
// same structure and are merged over the built-ins without mutating them.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/devimage/internal/catalog"
	"github.com/mmr-tortoise/devimage/internal/model"
)

// Config is the decoded form of a devimage config file.
//
// Example (YAML):
//
//	categories:
//	  rust: [rustc, cargo]
//	profiles:
//	  embedded: [build, rust]
//	packages:
//	  alpine:
//	    rustc: rust
//	    cargo: cargo
//	  debian:
//	    rustc: rustc
//	    cargo: cargo
type Config struct {
	// Categories maps category identifiers to ordered tool lists.
	// An entry with a built-in identifier replaces that category.
	Categories map[string][]string `yaml:"categories" json:"categories"`

	// Profiles maps profile identifiers to ordered category lists.
	// An entry with a built-in identifier replaces that profile.
	Profiles map[string][]string `yaml:"profiles" json:"profiles"`

	// Packages maps image family names (alpine, debian) to
	// tool → package-name tables layered over the built-in catalog.
	Packages map[string]map[string]string `yaml:"packages" json:"packages"`
}

// Load reads and decodes a config file. Files ending in .json or .jsonc
// are decoded as JSONC (comments and trailing commas allowed); anything
// else is decoded as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// jsonc.ToJSON strips comments and trailing commas, producing
		// bytes the standard JSON decoder accepts.
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// Apply layers the config over the given registry and catalog, returning
// merged copies. Family names that are not a known image family are
// reported as warnings and skipped, mirroring the resolver's
// warn-and-skip policy. The inputs are never mutated.
func (c *Config) Apply(reg *catalog.Registry, cat *catalog.Catalog) (*catalog.Registry, *catalog.Catalog, []string) {
	var warnings []string

	categories := make(map[model.Category][]model.Tool, len(c.Categories))
	for id, tools := range c.Categories {
		typed := make([]model.Tool, 0, len(tools))
		for _, t := range tools {
			typed = append(typed, model.Tool(t))
		}
		categories[model.Category(id)] = typed
	}

	profiles := make(map[model.Profile][]model.Category, len(c.Profiles))
	for id, cats := range c.Profiles {
		typed := make([]model.Category, 0, len(cats))
		for _, cc := range cats {
			typed = append(typed, model.Category(cc))
		}
		profiles[model.Profile(id)] = typed
	}

	packages := make(map[model.ImageFamily]map[model.Tool]string, len(c.Packages))
	for familyName, table := range c.Packages {
		family, err := model.ParseImageFamily(familyName)
		if err != nil {
			warnings = append(warnings,
				fmt.Sprintf("unknown image family %q in config file, skipping its packages", familyName))
			continue
		}
		typed := make(map[model.Tool]string, len(table))
		for tool, pkg := range table {
			typed[model.Tool(tool)] = pkg
		}
		packages[family] = typed
	}

	return reg.Merge(categories, profiles), cat.WithPackages(packages), warnings
}
