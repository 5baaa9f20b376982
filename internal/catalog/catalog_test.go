package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestShapeSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  ShapeSpec
		valid bool
	}{
		{"rectangle", ShapeSpec{Kind: "rectangle", Width: 10, Height: 10}, true},
		{"rectangle missing height", ShapeSpec{Kind: "rectangle", Width: 10}, false},
		{"circle", ShapeSpec{Kind: "circle", Radius: 5}, true},
		{"circle missing radius", ShapeSpec{Kind: "circle"}, false},
		{"circle negative radius", ShapeSpec{Kind: "circle", Radius: -2}, false},
		{"polygon", ShapeSpec{Kind: "polygon", Vertices: []Point{{0, 0}, {1, 0}, {0, 1}}}, true},
		{"polygon two vertices", ShapeSpec{Kind: "polygon", Vertices: []Point{{0, 0}, {1, 0}}}, false},
		{"unknown tag", ShapeSpec{Kind: "blob", Radius: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidDefinition) {
					t.Errorf("expected ErrInvalidDefinition, got %v", err)
				}
			}
		})
	}
}

func TestDefinitionValidateRejectsUnknownEmitter(t *testing.T) {
	d := Definition{
		ID:      "weird",
		Shape:   ShapeSpec{Kind: "circle", Radius: 5},
		Emitter: &EmitterSpec{Type: "tractor_beam", Strength: 1},
	}
	if err := d.Validate(); !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("expected ErrInvalidDefinition, got %v", err)
	}
}

func TestBuiltinCatalogIsComplete(t *testing.T) {
	c := Builtin()

	if len(c.ListDefinitions()) == 0 || len(c.ListPresets()) == 0 {
		t.Fatal("builtin catalog is empty")
	}

	// every preset placement and constraint index must resolve
	for _, id := range c.ListPresets() {
		p, err := c.ResolvePreset(id)
		if err != nil {
			t.Fatalf("preset %s: %v", id, err)
		}
		for i, pl := range p.Placements {
			if _, err := c.ResolveDefinition(pl.Definition); err != nil {
				t.Errorf("preset %s placement %d: %v", id, i, err)
			}
		}
		for i, cs := range p.Constraints {
			if cs.A < 0 || cs.A >= len(p.Placements) {
				t.Errorf("preset %s constraint %d: index a out of range", id, i)
			}
			if cs.B != nil && (*cs.B < 0 || *cs.B >= len(p.Placements)) {
				t.Errorf("preset %s constraint %d: index b out of range", id, i)
			}
		}
	}
}

func TestElasticCollisionPresetIsLossless(t *testing.T) {
	c := Builtin()
	p, err := c.ResolvePreset("elastic-collision")
	if err != nil {
		t.Fatal(err)
	}
	if p.Settings == nil || p.Settings.Gravity == nil || *p.Settings.Gravity != 0 {
		t.Error("elastic-collision must run without gravity")
	}
	for _, pl := range p.Placements {
		d, err := c.ResolveDefinition(pl.Definition)
		if err != nil {
			t.Fatal(err)
		}
		if d.Material.Friction != 0 || d.Material.AirDrag != 0 {
			t.Errorf("%s: friction/air drag would leak energy from the momentum demo", d.ID)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	c := Builtin()

	if _, err := c.ResolveDefinition("no-such-thing"); !errors.Is(err, ErrUnknownDefinition) {
		t.Errorf("expected ErrUnknownDefinition, got %v", err)
	}
	if _, err := c.ResolvePreset("no-such-preset"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadFileMergesAndValidates(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte(`
definitions:
  - id: pebble
    label: Pebble
    shape:
      kind: circle
      radius: 4
    material:
      density: 0.01
      friction: 0.5
presets:
  - id: pebble-drop
    label: Pebble Drop
    placements:
      - definition: pebble
        position: {x: 100, y: 50}
`), 0644)

	c := Builtin()
	if err := c.LoadFile(good); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := c.ResolveDefinition("pebble"); err != nil {
		t.Errorf("merged definition missing: %v", err)
	}
	if _, err := c.ResolvePreset("pebble-drop"); err != nil {
		t.Errorf("merged preset missing: %v", err)
	}
}

func TestLoadFileRejectsInvalidWithoutPartialMerge(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte(`
definitions:
  - id: ok-ball
    shape: {kind: circle, radius: 4}
    material: {density: 0.01}
  - id: broken
    shape: {kind: circle}
    material: {density: 0.01}
`), 0644)

	c := Builtin()
	if err := c.LoadFile(bad); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := c.ResolveDefinition("ok-ball"); err == nil {
		t.Error("partial merge observed: valid sibling of invalid entry was added")
	}
}

func TestShapeBuild(t *testing.T) {
	shape, err := ShapeSpec{Kind: "rectangle", Width: 10, Height: 20}.Build()
	if err != nil {
		t.Fatal(err)
	}
	if shape.Width != 10 || shape.Height != 20 {
		t.Errorf("unexpected shape: %+v", shape)
	}

	if _, err := (ShapeSpec{Kind: "circle"}).Build(); err == nil {
		t.Error("expected build of invalid spec to fail")
	}
}
