// Package mapspec loads and validates the YAML map document: an ordered
// list of layer definitions plus an optional extent override. The document
// is the whole configuration surface of a render; nothing else decides
// what gets drawn.
package mapspec

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/mapstack/geoviz-cli/internal/layer"
	"github.com/mapstack/geoviz-cli/internal/style"
)

// Source kinds.
const (
	KindCSV       = "csv"
	KindShapefile = "shapefile"
	KindXLSX      = "xlsx"
	KindSQLite    = "sqlite"
)

// Attribute types.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeString = "string"
)

// Document is the parsed map document. Layer order is draw order.
type Document struct {
	Layers []LayerDef `yaml:"layers"`
	Extent *ExtentDef `yaml:"extent"`
}

// ExtentDef overrides the computed map extents, either with explicit
// bounds or by adopting a named layer's extents.
type ExtentDef struct {
	MinLng   float64 `yaml:"min_lng"`
	MinLat   float64 `yaml:"min_lat"`
	MaxLng   float64 `yaml:"max_lng"`
	MaxLat   float64 `yaml:"max_lat"`
	UseLayer string  `yaml:"use_layer"`
}

// BBox returns the explicit bounds, or nil when UseLayer is set.
func (e *ExtentDef) BBox() *layer.BBox {
	if e == nil || e.UseLayer != "" {
		return nil
	}
	return &layer.BBox{MinLng: e.MinLng, MinLat: e.MinLat, MaxLng: e.MaxLng, MaxLat: e.MaxLat}
}

// StyleDef is a declarative style, used for per-layer default styles.
type StyleDef struct {
	Color string  `yaml:"color"`
	Size  float64 `yaml:"size"`
}

// Style converts the definition to a resolved style.
func (s *StyleDef) Style() *style.Style {
	if s == nil {
		return nil
	}
	return &style.Style{Color: s.Color, Size: s.Size}
}

// LayerDef declares one layer: where its records come from, which columns
// carry coordinates and the conditioning attribute, and how values map to
// styles.
type LayerDef struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	Path string `yaml:"path"`

	// Source-specific settings.
	Delimiter string `yaml:"delimiter"` // csv
	Sheet     string `yaml:"sheet"`     // xlsx
	Query     string `yaml:"query"`     // sqlite

	// Point layers.
	LonColumn string `yaml:"lon_column"`
	LatColumn string `yaml:"lat_column"`
	Marker    string `yaml:"marker"`

	// Conditional styling.
	Attribute     string          `yaml:"attribute"`
	AttributeType string          `yaml:"attribute_type"`
	Rules         []style.RuleDef `yaml:"rules"`
	DefaultStyle  *StyleDef       `yaml:"default_style"`
	OnError       string          `yaml:"on_error"` // abort (default) | collect

	// Shape layers.
	BorderColor     string  `yaml:"border_color"`
	FillColor       string  `yaml:"fill_color"`
	BorderThickness float64 `yaml:"border_thickness"`
}

// IsShape reports whether the layer carries geometries rather than
// lon/lat point columns.
func (d *LayerDef) IsShape() bool { return d.Kind == KindShapefile }

// ErrorPolicy maps the declared on_error value to the builder policy.
func (d *LayerDef) ErrorPolicy() layer.ErrorPolicy {
	if d.OnError == "collect" {
		return layer.CollectErrors
	}
	return layer.AbortOnError
}

// Load reads and validates the map document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "mapspec: open %s", path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, eris.Wrapf(err, "mapspec: parse %s", path)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document for configuration errors.
func (doc *Document) Validate() error {
	if len(doc.Layers) == 0 {
		return eris.New("mapspec: document declares no layers")
	}

	seen := make(map[string]bool, len(doc.Layers))
	for i := range doc.Layers {
		def := &doc.Layers[i]
		if err := def.validate(i); err != nil {
			return err
		}
		name := strings.ToLower(def.Name)
		if seen[name] {
			return eris.Errorf("mapspec: duplicate layer name %q", def.Name)
		}
		seen[name] = true
	}

	if doc.Extent != nil && doc.Extent.UseLayer != "" {
		if !seen[strings.ToLower(doc.Extent.UseLayer)] {
			return eris.Errorf("mapspec: extent use_layer %q names no declared layer", doc.Extent.UseLayer)
		}
	}
	return nil
}

func (def *LayerDef) validate(i int) error {
	if def.Name == "" {
		return eris.Errorf("mapspec: layer %d has no name", i)
	}
	if def.Path == "" {
		return eris.Errorf("mapspec: layer %q has no path", def.Name)
	}

	switch def.Kind {
	case KindCSV, KindXLSX:
	case KindSQLite:
		if def.Query == "" {
			return eris.Errorf("mapspec: layer %q: sqlite layers require a query", def.Name)
		}
	case KindShapefile:
		if def.LonColumn != "" || def.LatColumn != "" {
			return eris.Errorf("mapspec: layer %q: shapefile layers take coordinates from geometry, not columns", def.Name)
		}
	default:
		return eris.Errorf("mapspec: layer %q has unknown kind %q", def.Name, def.Kind)
	}

	if !def.IsShape() {
		if def.LonColumn == "" || def.LatColumn == "" {
			return eris.Errorf("mapspec: layer %q requires lon_column and lat_column", def.Name)
		}
		if def.Attribute == "" {
			return eris.Errorf("mapspec: layer %q requires an attribute column", def.Name)
		}
	}

	if def.Attribute != "" && len(def.Rules) == 0 && def.DefaultStyle == nil {
		return eris.Errorf("mapspec: layer %q declares attribute %q but no rules or default style", def.Name, def.Attribute)
	}

	switch def.AttributeType {
	case "", TypeInt, TypeFloat, TypeString:
	default:
		return eris.Errorf("mapspec: layer %q has unknown attribute_type %q", def.Name, def.AttributeType)
	}

	switch def.OnError {
	case "", "abort", "collect":
	default:
		return eris.Errorf("mapspec: layer %q has unknown on_error %q (want abort or collect)", def.Name, def.OnError)
	}

	return nil
}
