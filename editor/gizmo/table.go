package gizmo

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

//go:embed translate.yaml
var defaultTableYAML []byte

type ShapeKind string

const (
	ShapeSegment ShapeKind = "segment"
	ShapeCone    ShapeKind = "cone"
	ShapeQuad    ShapeKind = "quad"
)

// Shape is the parametric description of a gizmo primitive in its local
// space. Segments and cones run along +Y, quads lie in the XZ plane.
type Shape struct {
	Kind       ShapeKind `yaml:"kind"`
	HalfLength float32   `yaml:"half_length,omitempty"`
	Length     float32   `yaml:"length,omitempty"`
	Radius     float32   `yaml:"radius,omitempty"`
	HalfSize   float32   `yaml:"half_size,omitempty"`
}

// Color is linear RGBA in [0,1].
type Color [4]float32

type TintParams struct {
	Highlight     float64 `yaml:"highlight"`      // blend factor toward white
	Active        Color   `yaml:"active"`         // color of the dragged handle
	InactiveGray  float64 `yaml:"inactive_gray"`  // lightness of the grayed handles
	InactiveAlpha float32 `yaml:"inactive_alpha"` // alpha of the grayed handles
}

// Table is the full handle configuration of a translate gizmo.
type Table struct {
	Tint      TintParams       `yaml:"tint"`
	Meshes    map[string]Shape `yaml:"meshes"`
	Materials map[string]Color `yaml:"materials"`
	Axes      []AxisConfig     `yaml:"axes"`
}

// DefaultTable returns the built-in handle table. It panics if the embedded
// document is broken, which can only happen at build time.
func DefaultTable() *Table {
	t, err := LoadTable(bytes.NewReader(defaultTableYAML))
	if err != nil {
		panic(fmt.Sprintf("gizmo: embedded table: %v", err))
	}
	return t
}

func LoadTable(r io.Reader) (*Table, error) {
	var t Table
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode handle table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open handle table: %w", err)
	}
	defer f.Close()

	t, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Axis looks up the config of one handle.
func (t *Table) Axis(name AxisName) (AxisConfig, bool) {
	for _, a := range t.Axes {
		if a.Name == name {
			return a, true
		}
	}
	return AxisConfig{}, false
}

func (t *Table) Shape(mesh string) (Shape, error) {
	s, ok := t.Meshes[mesh]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %q", ErrUnknownMesh, mesh)
	}
	return s, nil
}

func (t *Table) Material(name string) (Color, error) {
	c, ok := t.Materials[name]
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return c, nil
}

// Validate reports every problem in the table at once.
func (t *Table) Validate() error {
	var errs error

	for name, s := range t.Meshes {
		errs = multierr.Append(errs, s.validate(name))
	}

	seen := make(map[AxisName]bool)
	for i, a := range t.Axes {
		if !a.Name.Valid() {
			errs = multierr.Append(errs, fmt.Errorf("axes[%d]: %w: %q", i, ErrUnknownAxis, a.Name))
			continue
		}
		if seen[a.Name] {
			errs = multierr.Append(errs, fmt.Errorf("axis %s: duplicate entry", a.Name))
		}
		seen[a.Name] = true

		if len(a.Meshes) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("axis %s: no meshes", a.Name))
		}
		if len(a.Rotations) != len(a.Meshes) || len(a.Translations) != len(a.Meshes) {
			errs = multierr.Append(errs, fmt.Errorf("axis %s: %d meshes but %d rotations and %d translations",
				a.Name, len(a.Meshes), len(a.Rotations), len(a.Translations)))
		}
		if len(a.HelperMeshes) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("axis %s: no helper mesh to pick with", a.Name))
		}
		for _, m := range append(append([]string{}, a.Meshes...), a.HelperMeshes...) {
			if _, ok := t.Meshes[m]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("axis %s: %w: %q", a.Name, ErrUnknownMesh, m))
			}
		}
		if _, ok := t.Materials[a.Material]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("axis %s: %w: %q", a.Name, ErrUnknownMaterial, a.Material))
		}
	}
	return errs
}

func (s Shape) validate(name string) error {
	switch s.Kind {
	case ShapeSegment:
		if s.HalfLength <= 0 {
			return fmt.Errorf("mesh %s: segment needs a positive half_length", name)
		}
	case ShapeCone:
		if s.Length <= 0 || s.Radius <= 0 {
			return fmt.Errorf("mesh %s: cone needs a positive length and radius", name)
		}
	case ShapeQuad:
		if s.HalfSize <= 0 {
			return fmt.Errorf("mesh %s: quad needs a positive half_size", name)
		}
	default:
		return fmt.Errorf("mesh %s: unknown kind %q", name, s.Kind)
	}
	return nil
}
