// Package catalog holds the read-only object and experiment tables: shape
// and material definitions keyed by id, and declarative scene presets. A
// built-in catalog ships with the binary; additional entries can be merged
// in from YAML files.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Catalog struct {
	definitions map[string]Definition
	presets     map[string]Preset
}

func New() *Catalog {
	return &Catalog{
		definitions: make(map[string]Definition),
		presets:     make(map[string]Preset),
	}
}

// AddDefinition validates and registers a definition, replacing any
// previous entry with the same id.
func (c *Catalog) AddDefinition(d Definition) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.definitions[d.ID] = d
	return nil
}

func (c *Catalog) AddPreset(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.presets[p.ID] = p
	return nil
}

func (c *Catalog) ResolveDefinition(id string) (Definition, error) {
	d, ok := c.definitions[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownDefinition, id)
	}
	return d, nil
}

func (c *Catalog) ResolvePreset(id string) (Preset, error) {
	p, ok := c.presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownPreset, id)
	}
	return p, nil
}

func (c *Catalog) ListDefinitions() []string {
	ids := make([]string, 0, len(c.definitions))
	for id := range c.definitions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) ListPresets() []string {
	ids := make([]string, 0, len(c.presets))
	for id := range c.presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// file is the YAML document shape accepted by LoadFile.
type file struct {
	Definitions []Definition `yaml:"definitions"`
	Presets     []Preset     `yaml:"presets"`
}

// LoadFile merges definitions and presets from a YAML catalog file.
// Invalid entries reject the whole file so a partial merge is never
// observable.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse catalog %s: %w", path, err)
	}
	for _, d := range f.Definitions {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	for _, d := range f.Definitions {
		c.definitions[d.ID] = d
	}
	for _, p := range f.Presets {
		c.presets[p.ID] = p
	}
	return nil
}
