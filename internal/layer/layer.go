// Package layer turns record sources into styled render layers: one pass
// over the input, one styled feature per record, input order preserved.
package layer

import (
	"github.com/twpayne/go-geom"

	"github.com/mapstack/geoviz-cli/internal/style"
)

// BBox is a geographic bounding box.
type BBox struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// Extend grows b to include the point, returning b. A nil receiver starts
// a new box at the point.
func (b *BBox) Extend(lng, lat float64) *BBox {
	if b == nil {
		return &BBox{MinLng: lng, MinLat: lat, MaxLng: lng, MaxLat: lat}
	}
	if lng < b.MinLng {
		b.MinLng = lng
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lng > b.MaxLng {
		b.MaxLng = lng
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
	return b
}

// Union merges two boxes, tolerating nil on either side.
func (b *BBox) Union(other *BBox) *BBox {
	if other == nil {
		return b
	}
	return b.Extend(other.MinLng, other.MinLat).Extend(other.MaxLng, other.MaxLat)
}

// Layer is one set of styled geospatial features sharing a single
// coordinate and style pipeline.
type Layer interface {
	LayerID() string
	LayerName() string
	Extents() *BBox
	FeatureCount() int
}

// StyledPoint is one record of a point layer: a coordinate plus the style
// its attribute value resolved to.
type StyledPoint struct {
	Lon, Lat float64
	Style    style.Style
}

// PointLayer is an ordered sequence of styled points ready for a renderer.
type PointLayer struct {
	ID     string
	Name   string
	Marker string
	Points []StyledPoint
	Bounds *BBox
}

func (l *PointLayer) LayerID() string   { return l.ID }
func (l *PointLayer) LayerName() string { return l.Name }
func (l *PointLayer) Extents() *BBox    { return l.Bounds }
func (l *PointLayer) FeatureCount() int { return len(l.Points) }

// ShapeStyle holds the visual attributes of one shape.
type ShapeStyle struct {
	FillColor   string
	BorderColor string
	BorderWidth float64
}

// StyledShape is one record of a shape layer.
type StyledShape struct {
	Geometry geom.T
	Style    ShapeStyle
}

// ShapeLayer is an ordered sequence of styled shapes ready for a renderer.
type ShapeLayer struct {
	ID     string
	Name   string
	Shapes []StyledShape
	Bounds *BBox
}

func (l *ShapeLayer) LayerID() string   { return l.ID }
func (l *ShapeLayer) LayerName() string { return l.Name }
func (l *ShapeLayer) Extents() *BBox    { return l.Bounds }
func (l *ShapeLayer) FeatureCount() int { return len(l.Shapes) }
