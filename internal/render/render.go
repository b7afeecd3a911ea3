// Package render defines the renderer collaborator that consumes built
// layers. The core never draws anything itself; it hands each layer, in
// z-order, to an injected Renderer.
package render

import "github.com/mapstack/geoviz-cli/internal/layer"

// Renderer consumes styled layers in draw order. BeginMap is called once
// with the combined extents, then one Draw call per layer with ascending
// z (later layers draw on top), then Finish.
type Renderer interface {
	BeginMap(extents *layer.BBox) error
	DrawPoints(l *layer.PointLayer, z int) error
	DrawShapes(l *layer.ShapeLayer, z int) error
	Finish() error
}
