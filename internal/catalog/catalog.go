// Package catalog holds the named shapes, composites and bamboo glyphs a
// game can spawn. Definitions are YAML; a default set is embedded.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/samuraislice/slicer/internal/svgpath"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	ErrUnknownKind      = errors.New("unknown shape kind")
	ErrUnknownComposite = errors.New("unknown composite")
	ErrUnknownGlyph     = errors.New("unknown glyph")
)

// Vec is a 2D offset or size.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Catalog is the parsed form of a catalog file.
type Catalog struct {
	Shapes     map[string]ShapeDef     `yaml:"shapes"`
	Composites map[string]CompositeDef `yaml:"composites"`
	Glyphs     GlyphSet                `yaml:"glyphs"`
}

// ShapeDef is one spawnable shape.
type ShapeDef struct {
	Path   string `yaml:"path"`
	Tag    string `yaml:"tag,omitempty"`
	Fill   string `yaml:"fill,omitempty"`
	Stroke string `yaml:"stroke,omitempty"`
	Size   Vec    `yaml:"size"`
	// GravityScale defaults to 1 when absent.
	GravityScale *float64 `yaml:"gravityScale,omitempty"`
	Tolerance    float64  `yaml:"tolerance,omitempty"`
	Decoration   bool     `yaml:"decoration,omitempty"`
}

func (d ShapeDef) Gravity() float64 {
	if d.GravityScale == nil {
		return 1
	}
	return *d.GravityScale
}

// CompositeDef groups shapes that are spawned together, each at an offset
// from the spawn point.
type CompositeDef struct {
	Scale float64 `yaml:"scale,omitempty"`
	// GravityScale overrides the parts' own scale so they move as one.
	GravityScale *float64  `yaml:"gravityScale,omitempty"`
	Parts        []PartDef `yaml:"parts"`
}

type PartDef struct {
	Shape  string `yaml:"shape"`
	Offset Vec    `yaml:"offset"`
}

// GlyphSet builds letters out of rotated copies of one stroke shape.
type GlyphSet struct {
	Stroke  string               `yaml:"stroke"`
	Spacing float64              `yaml:"spacing"`
	Letters map[string]LetterDef `yaml:"letters"`
}

type LetterDef struct {
	Advance float64     `yaml:"advance"`
	Strokes []StrokeDef `yaml:"strokes"`
}

// StrokeDef places one stroke: rotate about the letter origin by each
// angle in turn, then translate.
type StrokeDef struct {
	Rotate    []float64 `yaml:"rotate,omitempty"`
	Translate Vec       `yaml:"translate"`
}

// Load parses and validates catalog YAML.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Load(data)
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func (c *Catalog) validate() error {
	for name, def := range c.Shapes {
		if _, err := svgpath.ParseStrict(def.Path); err != nil {
			return fmt.Errorf("shape %q: %w", name, err)
		}
	}
	for name, comp := range c.Composites {
		if len(comp.Parts) == 0 {
			return fmt.Errorf("composite %q has no parts", name)
		}
		for _, part := range comp.Parts {
			if _, ok := c.Shapes[part.Shape]; !ok {
				return fmt.Errorf("composite %q: %w: %s", name, ErrUnknownKind, part.Shape)
			}
		}
	}
	if len(c.Glyphs.Letters) > 0 {
		if _, ok := c.Shapes[c.Glyphs.Stroke]; !ok {
			return fmt.Errorf("glyphs: %w: %s", ErrUnknownKind, c.Glyphs.Stroke)
		}
	}
	return nil
}

func (c *Catalog) Shape(kind string) (ShapeDef, error) {
	def, ok := c.Shapes[kind]
	if !ok {
		return ShapeDef{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return def, nil
}

func (c *Catalog) Composite(name string) (CompositeDef, error) {
	def, ok := c.Composites[name]
	if !ok {
		return CompositeDef{}, fmt.Errorf("%w: %s", ErrUnknownComposite, name)
	}
	if def.Scale == 0 {
		def.Scale = 1
	}
	return def, nil
}

// Glyph looks a letter up case-insensitively.
func (c *Catalog) Glyph(r rune) (LetterDef, error) {
	def, ok := c.Glyphs.Letters[string(unicode.ToUpper(r))]
	if !ok {
		return LetterDef{}, fmt.Errorf("%w: %q", ErrUnknownGlyph, r)
	}
	return def, nil
}

// Kinds lists shape names in sorted order.
func (c *Catalog) Kinds() []string {
	return sortedKeys(c.Shapes)
}

func (c *Catalog) CompositeNames() []string {
	return sortedKeys(c.Composites)
}

// Letters returns the glyph alphabet as a sorted string.
func (c *Catalog) Letters() string {
	return strings.Join(sortedKeys(c.Glyphs.Letters), "")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
