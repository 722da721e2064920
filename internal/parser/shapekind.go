package parser

import (
	"fmt"
	"strings"
)

// ShapeKind identifies how an object record's payload is laid out and how its
// outline is rebuilt. The values are the shape codes stored in the file.
type ShapeKind int8

const (
	ShapePolygon   ShapeKind = 0
	ShapeEllipse   ShapeKind = 1
	ShapeCircle    ShapeKind = 2
	ShapePolyline  ShapeKind = 3
	ShapeLine      ShapeKind = 4
	ShapeRectangle ShapeKind = 5
	ShapeSquare    ShapeKind = 6
	ShapeText      ShapeKind = 7

	// shapePolygonAlt is an alternate polygon code written by some versions
	// of the authoring tool. It decodes as ShapePolygon.
	shapePolygonAlt int8 = 8
)

var shapeKindNames = map[ShapeKind]string{
	ShapePolygon:   "Polygon",
	ShapeEllipse:   "Ellipse",
	ShapeCircle:    "Circle",
	ShapePolyline:  "Polyline",
	ShapeLine:      "Line",
	ShapeRectangle: "Rectangle",
	ShapeSquare:    "Square",
	ShapeText:      "Text",
}

// String returns the shape name
func (k ShapeKind) String() string {
	if name, ok := shapeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ShapeKind(%d)", int8(k))
}

// Closed reports whether the reconstructed outline of this kind is a ring.
// Text anchors count as closed: they stand in for a degenerate rectangle.
func (k ShapeKind) Closed() bool {
	switch k {
	case ShapeLine, ShapePolyline:
		return false
	}
	return true
}

// shapeKindFromCode maps a stored shape code onto its kind
func shapeKindFromCode(code int8) (ShapeKind, bool) {
	if code == shapePolygonAlt {
		return ShapePolygon, true
	}
	k := ShapeKind(code)
	if _, ok := shapeKindNames[k]; !ok {
		return 0, false
	}
	return k, true
}

// ParseShapeKind accepts a shape name, case-insensitively
func ParseShapeKind(name string) (ShapeKind, error) {
	for k, n := range shapeKindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", name)
}

// Layer names the authoring tool writes. A 64-byte name field matching none
// of these means the cursor is misaligned.
const (
	LayerROI        = "ROI"
	LayerLabel      = "Label"
	LayerAnnotation = "Annotation"
)

// DefaultLayerNames is the recognised layer-name vocabulary
var DefaultLayerNames = []string{LayerROI, LayerLabel, LayerAnnotation}
