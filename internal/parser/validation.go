package parser

import (
	"fmt"
	"math"
)

// ErrInvalidGeometry indicates a decoded outline that downstream consumers
// cannot use as is
type ErrInvalidGeometry struct {
	Kind   ShapeKind
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	return fmt.Sprintf("invalid %v geometry: %s", e.Kind, e.Reason)
}

// ValidateObject checks that no coordinate is NaN and that parametric closed
// outlines end on their first vertex. Infinite coordinates pass: placeholder
// records use huge negative values that overflow float32. Polygons are exempt
// from the closure check since the file omits their closing vertex.
func ValidateObject(o *Object) error {
	if o == nil {
		return &ErrInvalidGeometry{Reason: "object is nil"}
	}

	for i, v := range o.Vertices {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) {
			return &ErrInvalidGeometry{
				Kind:   o.Kind,
				Reason: fmt.Sprintf("vertex %d is NaN: (%g, %g)", i, v.X, v.Y),
			}
		}
	}

	switch o.Kind {
	case ShapeCircle, ShapeEllipse, ShapeRectangle, ShapeSquare:
		n := len(o.Vertices)
		if n == 0 || o.Vertices[0] != o.Vertices[n-1] {
			return &ErrInvalidGeometry{Kind: o.Kind, Reason: "outline is not closed"}
		}
	}

	return nil
}
