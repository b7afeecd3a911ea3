package viz

import (
	"cmp"
	"context"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/mapstack/geoviz-cli/internal/coerce"
	"github.com/mapstack/geoviz-cli/internal/layer"
	"github.com/mapstack/geoviz-cli/internal/mapspec"
	"github.com/mapstack/geoviz-cli/internal/source"
	"github.com/mapstack/geoviz-cli/internal/style"
)

func newGroup(ctx context.Context, limit int) (*errgroup.Group, context.Context) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	return g, gCtx
}

// buildLayer opens the declared source and runs the matching builder.
func buildLayer(ctx context.Context, def mapspec.LayerDef) (layer.Layer, Report, error) {
	src, err := openSource(ctx, def)
	if err != nil {
		return nil, Report{}, err
	}
	defer func() { _ = src.Close() }()

	report := Report{Layer: def.Name}

	if def.IsShape() {
		l, recErrs, err := buildShapes(src, def)
		if err != nil {
			return nil, Report{}, err
		}
		report.RecordErrors = recErrs
		return l, report, nil
	}

	l, recErrs, err := buildPoints(src, def)
	if err != nil {
		return nil, Report{}, err
	}
	report.RecordErrors = recErrs
	return l, report, nil
}

func openSource(ctx context.Context, def mapspec.LayerDef) (source.Source, error) {
	switch def.Kind {
	case mapspec.KindCSV:
		f, err := os.Open(def.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "viz: open layer %s", def.Name)
		}
		opts := source.CSVOptions{TrimSpace: true}
		if def.Delimiter != "" {
			opts.Delimiter = rune(def.Delimiter[0])
		}
		src, err := source.NewCSV(f, opts)
		if err != nil {
			f.Close()
			return nil, eris.Wrapf(err, "viz: layer %s", def.Name)
		}
		return src, nil

	case mapspec.KindShapefile:
		src, err := source.NewShapefile(def.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "viz: layer %s", def.Name)
		}
		return src, nil

	case mapspec.KindXLSX:
		src, err := source.NewXLSX(def.Path, source.XLSXOptions{SheetName: def.Sheet})
		if err != nil {
			return nil, eris.Wrapf(err, "viz: layer %s", def.Name)
		}
		return src, nil

	case mapspec.KindSQLite:
		src, err := source.NewSQLite(ctx, def.Path, def.Query)
		if err != nil {
			return nil, eris.Wrapf(err, "viz: layer %s", def.Name)
		}
		return src, nil

	default:
		return nil, eris.Errorf("viz: layer %s has unknown kind %q", def.Name, def.Kind)
	}
}

// buildPoints dispatches on the declared attribute type. The type decides
// which coercion runs and how rule operands compare.
func buildPoints(src source.Source, def mapspec.LayerDef) (*layer.PointLayer, []error, error) {
	switch def.AttributeType {
	case mapspec.TypeInt:
		return buildPointsTyped(src, def, coerce.Int)
	case mapspec.TypeFloat:
		return buildPointsTyped(src, def, coerce.Float)
	default:
		return buildPointsTyped(src, def, coerce.String)
	}
}

func buildPointsTyped[T cmp.Ordered](src source.Source, def mapspec.LayerDef, coerceFn coerce.Func[T]) (*layer.PointLayer, []error, error) {
	rules, err := style.Compile(def.Rules, coerceFn)
	if err != nil {
		return nil, nil, err
	}

	return layer.BuildPoints(src, layer.PointSpec[T]{
		Name:      def.Name,
		LonColumn: def.LonColumn,
		LatColumn: def.LatColumn,
		Attribute: def.Attribute,
		Marker:    def.Marker,
		Coerce:    coerceFn,
		Rules:     rules,
		Default:   def.DefaultStyle.Style(),
		OnError:   def.ErrorPolicy(),
	})
}

func buildShapes(src source.Source, def mapspec.LayerDef) (*layer.ShapeLayer, []error, error) {
	switch def.AttributeType {
	case mapspec.TypeInt:
		return buildShapesTyped(src, def, coerce.Int)
	case mapspec.TypeFloat:
		return buildShapesTyped(src, def, coerce.Float)
	default:
		return buildShapesTyped(src, def, coerce.String)
	}
}

func buildShapesTyped[T cmp.Ordered](src source.Source, def mapspec.LayerDef, coerceFn coerce.Func[T]) (*layer.ShapeLayer, []error, error) {
	rules, err := style.Compile(def.Rules, coerceFn)
	if err != nil {
		return nil, nil, err
	}

	return layer.BuildShapes(src, layer.ShapeSpec[T]{
		Name:        def.Name,
		FillColor:   def.FillColor,
		BorderColor: def.BorderColor,
		BorderWidth: def.BorderThickness,
		Attribute:   def.Attribute,
		Coerce:      coerceFn,
		Rules:       rules,
		Default:     def.DefaultStyle.Style(),
		OnError:     def.ErrorPolicy(),
	})
}
