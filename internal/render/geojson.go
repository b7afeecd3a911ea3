package render

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/mapstack/geoviz-cli/internal/layer"
)

// GeoJSONRenderer renders layers into one GeoJSON FeatureCollection with
// simplestyle properties (marker-color, marker-size, stroke, fill), so the
// output displays on any standard web map.
type GeoJSONRenderer struct {
	w        io.Writer
	features []*geojson.Feature
	extents  *layer.BBox
}

// NewGeoJSON returns a renderer writing the collection to w on Finish.
func NewGeoJSON(w io.Writer) *GeoJSONRenderer {
	return &GeoJSONRenderer{w: w}
}

func (r *GeoJSONRenderer) BeginMap(extents *layer.BBox) error {
	r.extents = extents
	return nil
}

func (r *GeoJSONRenderer) DrawPoints(l *layer.PointLayer, z int) error {
	for i, p := range l.Points {
		r.features = append(r.features, &geojson.Feature{
			ID:       fmt.Sprintf("%s/%d", l.ID, i),
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}).SetSRID(4326),
			Properties: map[string]interface{}{
				"layer":         l.Name,
				"zorder":        z,
				"marker-symbol": l.Marker,
				"marker-color":  p.Style.Color,
				"marker-size":   markerSize(p.Style.Size),
			},
		})
	}
	return nil
}

func (r *GeoJSONRenderer) DrawShapes(l *layer.ShapeLayer, z int) error {
	for i, s := range l.Shapes {
		r.features = append(r.features, &geojson.Feature{
			ID:       fmt.Sprintf("%s/%d", l.ID, i),
			Geometry: s.Geometry,
			Properties: map[string]interface{}{
				"layer":        l.Name,
				"zorder":       z,
				"stroke":       s.Style.BorderColor,
				"stroke-width": s.Style.BorderWidth,
				"fill":         s.Style.FillColor,
			},
		})
	}
	return nil
}

// Finish marshals the accumulated features and writes them out.
func (r *GeoJSONRenderer) Finish() error {
	fc := &geojson.FeatureCollection{Features: r.features}
	data, err := fc.MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "render: marshal feature collection")
	}
	if _, err := r.w.Write(data); err != nil {
		return eris.Wrap(err, "render: write output")
	}
	return nil
}

// Extents returns the combined extents handed to BeginMap.
func (r *GeoJSONRenderer) Extents() *layer.BBox { return r.extents }

// markerSize buckets a numeric point size into the simplestyle small,
// medium and large marker sizes.
func markerSize(size float64) string {
	switch {
	case size <= 0.34:
		return "small"
	case size <= 0.67:
		return "medium"
	default:
		return "large"
	}
}
