package layer

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/mapstack/geoviz-cli/internal/coerce"
	"github.com/mapstack/geoviz-cli/internal/source"
	"github.com/mapstack/geoviz-cli/internal/style"
)

// ErrorPolicy decides what a per-record error does to the build. The zero
// value aborts; skipping is never implicit.
type ErrorPolicy int

const (
	// AbortOnError fails the whole build at the first per-record error.
	AbortOnError ErrorPolicy = iota
	// CollectErrors skips failing records and returns their errors
	// alongside the built layer.
	CollectErrors
)

// PointSpec describes how to build a point layer from tabular records.
type PointSpec[T any] struct {
	Name      string
	LonColumn string
	LatColumn string
	Attribute string
	Marker    string
	Coerce    coerce.Func[T]
	Rules     style.RuleSet[T]
	Default   *style.Style // fallback when no rule matches; nil means NoMatchError
	OnError   ErrorPolicy
}

// BuildPoints runs one pass over src, resolving a style per record.
// Configuration errors (missing columns, malformed rules) are returned
// before any record is read. Per-record errors follow spec.OnError: the
// fatal error return in abort mode, the error slice in collect mode.
// Output order equals input order for all successfully processed records.
func BuildPoints[T any](src source.Source, spec PointSpec[T]) (*PointLayer, []error, error) {
	if err := checkColumns(src.Header(), spec.LonColumn, spec.LatColumn, spec.Attribute); err != nil {
		return nil, nil, err
	}
	if err := spec.Rules.Validate(); err != nil {
		return nil, nil, err
	}
	if spec.Coerce == nil {
		return nil, nil, eris.Errorf("layer %s: no coercion declared for attribute %q", spec.Name, spec.Attribute)
	}

	l := &PointLayer{
		ID:     uuid.NewString(),
		Name:   spec.Name,
		Marker: spec.Marker,
	}
	var recErrs []error

	for src.Next() {
		rec := src.Record()

		lon, lat, err := pointCoords(rec, spec.LonColumn, spec.LatColumn)
		if err == nil {
			var st style.Style
			st, err = resolveStyle(rec, spec.Attribute, spec.Coerce, spec.Rules, spec.Default)
			if err == nil {
				l.Points = append(l.Points, StyledPoint{Lon: lon, Lat: lat, Style: st})
				l.Bounds = l.Bounds.Extend(lon, lat)
				continue
			}
		}

		if spec.OnError == AbortOnError {
			return nil, nil, eris.Wrapf(err, "layer %s", spec.Name)
		}
		recErrs = append(recErrs, err)
	}
	if err := src.Err(); err != nil {
		return nil, nil, eris.Wrapf(err, "layer %s", spec.Name)
	}

	if len(recErrs) > 0 {
		zap.L().Warn("point layer built with skipped records",
			zap.String("layer", spec.Name),
			zap.Int("points", len(l.Points)),
			zap.Int("skipped", len(recErrs)),
		)
	}

	return l, recErrs, nil
}

// ShapeSpec describes how to build a shape layer from shapefile records.
// With no Attribute, every shape gets the layer-level fill/border styling.
// With an Attribute, fill color is resolved through the rule set and the
// border settings stay layer-level.
type ShapeSpec[T any] struct {
	Name        string
	FillColor   string
	BorderColor string
	BorderWidth float64
	Attribute   string
	Coerce      coerce.Func[T]
	Rules       style.RuleSet[T]
	Default     *style.Style
	OnError     ErrorPolicy
}

// BuildShapes runs one pass over src building a shape layer. Records
// without a usable geometry are skipped and counted; they are data noise,
// not errors.
func BuildShapes[T any](src source.Source, spec ShapeSpec[T]) (*ShapeLayer, []error, error) {
	conditional := spec.Attribute != ""
	if conditional {
		if err := checkColumns(src.Header(), spec.Attribute); err != nil {
			return nil, nil, err
		}
		if err := spec.Rules.Validate(); err != nil {
			return nil, nil, err
		}
		if spec.Coerce == nil {
			return nil, nil, eris.Errorf("layer %s: no coercion declared for attribute %q", spec.Name, spec.Attribute)
		}
	}
	if spec.BorderWidth == 0 {
		spec.BorderWidth = 1
	}

	l := &ShapeLayer{
		ID:   uuid.NewString(),
		Name: spec.Name,
	}
	var recErrs []error
	var skippedGeom int

	for src.Next() {
		rec := src.Record()

		g := rec.Geometry()
		if g == nil {
			skippedGeom++
			continue
		}

		st := ShapeStyle{
			FillColor:   spec.FillColor,
			BorderColor: spec.BorderColor,
			BorderWidth: spec.BorderWidth,
		}
		if conditional {
			resolved, err := resolveStyle(rec, spec.Attribute, spec.Coerce, spec.Rules, spec.Default)
			if err != nil {
				if spec.OnError == AbortOnError {
					return nil, nil, eris.Wrapf(err, "layer %s", spec.Name)
				}
				recErrs = append(recErrs, err)
				continue
			}
			st.FillColor = resolved.Color
		}

		l.Shapes = append(l.Shapes, StyledShape{Geometry: g, Style: st})
		l.Bounds = extendByGeom(l.Bounds, g)
	}
	if err := src.Err(); err != nil {
		return nil, nil, eris.Wrapf(err, "layer %s", spec.Name)
	}

	if skippedGeom > 0 {
		zap.L().Debug("shape layer skipped records without geometry",
			zap.String("layer", spec.Name),
			zap.Int("skipped", skippedGeom),
		)
	}

	return l, recErrs, nil
}

// checkColumns verifies declared columns against the source header before
// any record is read.
func checkColumns(header []string, columns ...string) error {
	for _, col := range columns {
		if col == "" {
			continue
		}
		if !source.HasField(header, col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

func pointCoords(rec source.Record, lonCol, latCol string) (float64, float64, error) {
	lon, err := floatField(rec, lonCol)
	if err != nil {
		return 0, 0, err
	}
	lat, err := floatField(rec, latCol)
	if err != nil {
		return 0, 0, err
	}
	return lon, lat, nil
}

func floatField(rec source.Record, col string) (float64, error) {
	raw, ok := rec.Field(col)
	if !ok {
		return 0, &CoercionError{Row: rec.Row(), Column: col, Raw: "", Err: eris.New("field missing from record")}
	}
	v, err := coerce.Float(raw)
	if err != nil {
		return 0, &CoercionError{Row: rec.Row(), Column: col, Raw: raw, Err: err}
	}
	return v, nil
}

func resolveStyle[T any](rec source.Record, col string, coerceFn coerce.Func[T], rules style.RuleSet[T], def *style.Style) (style.Style, error) {
	raw, ok := rec.Field(col)
	if !ok {
		return style.Style{}, &CoercionError{Row: rec.Row(), Column: col, Raw: "", Err: eris.New("field missing from record")}
	}

	value, err := coerceFn(raw)
	if err != nil {
		return style.Style{}, &CoercionError{Row: rec.Row(), Column: col, Raw: raw, Err: err}
	}

	st, matched := rules.Resolve(value)
	if !matched {
		if def != nil {
			return *def, nil
		}
		return style.Style{}, &NoMatchError{Row: rec.Row(), Column: col, Value: value}
	}
	return st, nil
}

func extendByGeom(b *BBox, g geom.T) *BBox {
	bounds := g.Bounds()
	if bounds == nil {
		return b
	}
	return b.Extend(bounds.Min(0), bounds.Min(1)).Extend(bounds.Max(0), bounds.Max(1))
}
