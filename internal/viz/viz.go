// Package viz assembles an ordered collection of styled layers and drives
// a renderer over them. Insertion order is draw order: the first layer
// added renders at the bottom.
package viz

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mapstack/geoviz-cli/internal/layer"
	"github.com/mapstack/geoviz-cli/internal/mapspec"
	"github.com/mapstack/geoviz-cli/internal/render"
)

// Report carries the per-record errors a layer collected during its build.
type Report struct {
	Layer        string
	RecordErrors []error
}

// Visualizer is one rendering session.
type Visualizer struct {
	layers   []layer.Layer
	reports  []Report
	override *layer.BBox
	useLayer string
}

// New returns an empty session.
func New() *Visualizer {
	return &Visualizer{}
}

// AddLayer builds the declared layer and appends it.
func (v *Visualizer) AddLayer(ctx context.Context, def mapspec.LayerDef) error {
	l, report, err := buildLayer(ctx, def)
	if err != nil {
		return err
	}
	v.append(l, report)
	return nil
}

// AddCSV appends a point layer read from a CSV file.
func (v *Visualizer) AddCSV(ctx context.Context, def mapspec.LayerDef) error {
	def.Kind = mapspec.KindCSV
	return v.AddLayer(ctx, def)
}

// AddShapefile appends a shape layer read from a shapefile.
func (v *Visualizer) AddShapefile(ctx context.Context, def mapspec.LayerDef) error {
	def.Kind = mapspec.KindShapefile
	return v.AddLayer(ctx, def)
}

// AddXLSX appends a point layer read from an XLSX worksheet.
func (v *Visualizer) AddXLSX(ctx context.Context, def mapspec.LayerDef) error {
	def.Kind = mapspec.KindXLSX
	return v.AddLayer(ctx, def)
}

// AddSQLite appends a point layer read from a SQLite query.
func (v *Visualizer) AddSQLite(ctx context.Context, def mapspec.LayerDef) error {
	def.Kind = mapspec.KindSQLite
	return v.AddLayer(ctx, def)
}

// AddAll builds the declared layers, up to concurrency at a time. Records
// within a layer are independent and layers are independent of each other,
// so the builds can run in parallel; the append happens in declared order
// regardless of completion order.
func (v *Visualizer) AddAll(ctx context.Context, defs []mapspec.LayerDef, concurrency int) error {
	if concurrency <= 0 {
		concurrency = 1
	}

	built := make([]layer.Layer, len(defs))
	reports := make([]Report, len(defs))

	g, gCtx := newGroup(ctx, concurrency)
	for i, def := range defs {
		g.Go(func() error {
			l, report, err := buildLayer(gCtx, def)
			if err != nil {
				return err
			}
			built[i] = l
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range built {
		v.append(built[i], reports[i])
	}
	return nil
}

func (v *Visualizer) append(l layer.Layer, report Report) {
	v.layers = append(v.layers, l)
	v.reports = append(v.reports, report)

	zap.L().Info("layer added",
		zap.String("layer", l.LayerName()),
		zap.String("id", l.LayerID()),
		zap.Int("features", l.FeatureCount()),
		zap.Int("record_errors", len(report.RecordErrors)),
	)
}

// Layers returns the session's layers in draw order.
func (v *Visualizer) Layers() []layer.Layer { return v.layers }

// Reports returns one build report per layer, in draw order.
func (v *Visualizer) Reports() []Report { return v.reports }

// SetExtents overrides the computed extents.
func (v *Visualizer) SetExtents(b layer.BBox) {
	v.override = &b
	v.useLayer = ""
}

// UseExtents adopts the extents of the named layer. The layer must
// already be added.
func (v *Visualizer) UseExtents(name string) error {
	if v.findLayer(name) == nil {
		return eris.Errorf("viz: no layer named %q", name)
	}
	v.useLayer = name
	v.override = nil
	return nil
}

// ApplyExtent applies a map document's extent override, if any.
func (v *Visualizer) ApplyExtent(e *mapspec.ExtentDef) error {
	if e == nil {
		return nil
	}
	if e.UseLayer != "" {
		return v.UseExtents(e.UseLayer)
	}
	v.SetExtents(*e.BBox())
	return nil
}

// Extents returns the extents the map will render with: the explicit
// override, a chosen layer's bounds, or the union of all layer bounds.
func (v *Visualizer) Extents() *layer.BBox {
	if v.override != nil {
		return v.override
	}
	if v.useLayer != "" {
		if l := v.findLayer(v.useLayer); l != nil {
			return l.Extents()
		}
	}

	var combined *layer.BBox
	for _, l := range v.layers {
		combined = combined.Union(l.Extents())
	}
	return combined
}

func (v *Visualizer) findLayer(name string) layer.Layer {
	for _, l := range v.layers {
		if strings.EqualFold(l.LayerName(), name) {
			return l
		}
	}
	return nil
}

// Render walks the layers in insertion order, assigning z-order 1..n, and
// drives the renderer.
func (v *Visualizer) Render(ctx context.Context, r render.Renderer) error {
	if err := r.BeginMap(v.Extents()); err != nil {
		return eris.Wrap(err, "viz: begin map")
	}

	for i, l := range v.layers {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "viz: render cancelled")
		}

		z := i + 1
		zap.L().Debug("rendering layer", zap.String("layer", l.LayerName()), zap.Int("z", z))

		var err error
		switch typed := l.(type) {
		case *layer.PointLayer:
			err = r.DrawPoints(typed, z)
		case *layer.ShapeLayer:
			err = r.DrawShapes(typed, z)
		default:
			err = eris.Errorf("viz: unsupported layer type %T", l)
		}
		if err != nil {
			return eris.Wrapf(err, "viz: render layer %s", l.LayerName())
		}
	}

	if err := r.Finish(); err != nil {
		return eris.Wrap(err, "viz: finish render")
	}
	return nil
}
