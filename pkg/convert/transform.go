package convert

import (
	"math"

	"github.com/diapath/vtoq/pkg/qupath"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Transform maps file units to image pixels: each axis is scaled, then
// offset. A negative scale flips the axis.
type Transform struct {
	Scale  vec.Vec2
	Offset vec.Vec2
}

// Identity returns the transform leaving coordinates unchanged
func Identity() Transform {
	return Transform{Scale: vec.Vec2{X: 1, Y: 1}}
}

// Matrix returns the transform as an affine matrix
func (t Transform) Matrix() matrix.Matrix {
	return matrix.Scale(t.Scale.X, t.Scale.Y).Translate(t.Offset.X, t.Offset.Y)
}

// Apply maps p and truncates both coordinates toward zero, snapping them to
// the pixel grid.
func (t Transform) Apply(p vec.Vec2) qupath.Point {
	return apply(t.Matrix(), p)
}

// ApplyAll maps every vertex
func (t Transform) ApplyAll(pts []vec.Vec2) []qupath.Point {
	m := t.Matrix()
	out := make([]qupath.Point, len(pts))
	for i, p := range pts {
		out[i] = apply(m, p)
	}
	return out
}

func apply(m matrix.Matrix, p vec.Vec2) qupath.Point {
	x, y := m.Apply(p.X, p.Y)
	return qupath.Point{math.Trunc(x), math.Trunc(y)}
}
