package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/mapstack/geoviz-cli/internal/layer"
	"github.com/mapstack/geoviz-cli/internal/style"
)

func TestGeoJSONRenderer(t *testing.T) {
	points := &layer.PointLayer{
		ID:     "pts",
		Name:   "storms",
		Marker: "circle",
		Points: []layer.StyledPoint{
			{Lon: -97.5, Lat: 35.4, Style: style.Style{Color: "#ff0000", Size: 0.5}},
			{Lon: -98.1, Lat: 36.0, Style: style.Style{Color: "#000000", Size: 0.25}},
		},
	}
	shapes := &layer.ShapeLayer{
		ID:   "shp",
		Name: "counties",
		Shapes: []layer.StyledShape{
			{
				Geometry: geom.NewPolygonFlat(geom.XY, []float64{-98, 35, -97, 35, -97, 36, -98, 36, -98, 35}, []int{10}),
				Style:    layer.ShapeStyle{FillColor: "#eeeeee", BorderColor: "#333333", BorderWidth: 1},
			},
		},
	}

	var buf bytes.Buffer
	r := NewGeoJSON(&buf)

	require.NoError(t, r.BeginMap(&layer.BBox{MinLng: -98.1, MinLat: 35, MaxLng: -97, MaxLat: 36}))
	require.NoError(t, r.DrawShapes(shapes, 1))
	require.NoError(t, r.DrawPoints(points, 2))
	require.NoError(t, r.Finish())

	var out struct {
		Type     string `json:"type"`
		Features []struct {
			Type       string         `json:"type"`
			ID         string         `json:"id"`
			Properties map[string]any `json:"properties"`
			Geometry   struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "FeatureCollection", out.Type)
	require.Len(t, out.Features, 3)

	// Shapes drawn first (z=1), then points on top (z=2).
	assert.Equal(t, "Polygon", out.Features[0].Geometry.Type)
	assert.Equal(t, "#eeeeee", out.Features[0].Properties["fill"])
	assert.Equal(t, "#333333", out.Features[0].Properties["stroke"])
	assert.Equal(t, float64(1), out.Features[0].Properties["zorder"])

	assert.Equal(t, "Point", out.Features[1].Geometry.Type)
	assert.Equal(t, "#ff0000", out.Features[1].Properties["marker-color"])
	assert.Equal(t, "medium", out.Features[1].Properties["marker-size"])
	assert.Equal(t, "circle", out.Features[1].Properties["marker-symbol"])
	assert.Equal(t, "storms", out.Features[1].Properties["layer"])

	assert.Equal(t, "small", out.Features[2].Properties["marker-size"])
	assert.Equal(t, "pts/1", out.Features[2].ID)
}

func TestGeoJSONRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	r := NewGeoJSON(&buf)

	require.NoError(t, r.BeginMap(nil))
	require.NoError(t, r.Finish())

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "FeatureCollection", out["type"])
}

func TestMarkerSize(t *testing.T) {
	assert.Equal(t, "small", markerSize(0.25))
	assert.Equal(t, "medium", markerSize(0.5))
	assert.Equal(t, "large", markerSize(1))
}
