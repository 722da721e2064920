package parser

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Parametric outlines are sampled at this many steps around the full turn.
// The sample at angle 0 is repeated at the end so the ring closes.
const outlineSteps = 100

// unitCircle holds the outlineSteps+1 samples of the unit circle shared by
// circles and ellipses.
var unitCircle = func() []vec.Vec2 {
	pts := make([]vec.Vec2, 0, outlineSteps+1)
	for i := 0; i < outlineSteps; i++ {
		a := float64(i) * (1.0 / outlineSteps) * 2 * math.Pi
		pts = append(pts, vec.Vec2{X: math.Cos(a), Y: math.Sin(a)})
	}
	return append(pts, vec.Vec2{X: math.Cos(0), Y: math.Sin(0)})
}()

func transformAll(m matrix.Matrix, pts []vec.Vec2) []vec.Vec2 {
	out := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		out[i].X, out[i].Y = m.Apply(p.X, p.Y)
	}
	return out
}

// readPointList reads a counted list of float32 pairs. A count of zero or
// less yields no vertices.
func readPointList(r *reader) ([]vec.Vec2, error) {
	n, err := r.int32()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []vec.Vec2{}, nil
	}
	if int64(n)*8 > int64(r.remaining()) {
		return nil, &ErrTruncated{Offset: r.pos, Need: int(n) * 8, Have: r.remaining()}
	}
	pts := make([]vec.Vec2, n)
	for i := range pts {
		x, err := r.float32()
		if err != nil {
			return nil, err
		}
		y, err := r.float32()
		if err != nil {
			return nil, err
		}
		pts[i] = vec.Vec2{X: float64(x), Y: float64(y)}
	}
	return pts, nil
}

// readParams skips the leading 32-bit field every parametric shape carries
// and returns the n doubles that follow it.
func readParams(r *reader, n int) ([]float64, error) {
	if _, err := r.int32(); err != nil {
		return nil, err
	}
	return r.float64s(n)
}

func readLine(r *reader) ([]vec.Vec2, error) {
	v, err := r.float64s(4)
	if err != nil {
		return nil, err
	}
	return []vec.Vec2{{X: v[0], Y: v[1]}, {X: v[2], Y: v[3]}}, nil
}

func readCircle(r *reader) ([]vec.Vec2, error) {
	v, err := readParams(r, 3)
	if err != nil {
		return nil, err
	}
	cx, cy, radius := v[0], v[1], v[2]
	return transformAll(matrix.Scale(radius, radius).Translate(cx, cy), unitCircle), nil
}

// readEllipse reads centre, major and minor axis lengths and a rotation in
// radians, then rotates the axis-aligned outline about the centre.
func readEllipse(r *reader) ([]vec.Vec2, error) {
	v, err := readParams(r, 5)
	if err != nil {
		return nil, err
	}
	cx, cy, major, minor, angle := v[0], v[1], v[2], v[3], v[4]
	m := matrix.Scale(major, minor).Rotate(angle).Translate(cx, cy)
	return transformAll(m, unitCircle), nil
}

// readRectangle reads origin, half extents and rotation. The rotated
// footprint is shifted back by the half extents.
func readRectangle(r *reader) ([]vec.Vec2, error) {
	v, err := readParams(r, 5)
	if err != nil {
		return nil, err
	}
	ox, oy, w, h, angle := v[0], v[1], v[2], v[3], v[4]
	corners := []vec.Vec2{{X: 0, Y: 0}, {X: 2 * w, Y: 0}, {X: 2 * w, Y: 2 * h}, {X: 0, Y: 2 * h}, {X: 0, Y: 0}}
	return transformAll(matrix.Rotate(angle).Translate(ox-w, oy-h), corners), nil
}

// readSquare reads origin, side and rotation. The file stores squares
// anchored at the origin, and the angle scales x by its cosine and y by its
// sine independently rather than rotating the outline.
func readSquare(r *reader) ([]vec.Vec2, error) {
	v, err := readParams(r, 4)
	if err != nil {
		return nil, err
	}
	ox, oy, s := v[0], v[1], v[2]
	corners := []vec.Vec2{{X: 0, Y: 0}, {X: s, Y: 0}, {X: s, Y: s}, {X: 0, Y: s}, {X: 0, Y: 0}}
	return transformAll(matrix.Scale(math.Cos(v[3]), math.Sin(v[3])).Translate(ox, oy), corners), nil
}

func readText(r *reader) ([]vec.Vec2, error) {
	v, err := readParams(r, 2)
	if err != nil {
		return nil, err
	}
	return []vec.Vec2{{X: v[0], Y: v[1]}}, nil
}

// readShape dispatches on kind to rebuild the object's outline
func readShape(r *reader, kind ShapeKind) ([]vec.Vec2, error) {
	switch kind {
	case ShapePolygon, ShapePolyline:
		return readPointList(r)
	case ShapeEllipse:
		return readEllipse(r)
	case ShapeCircle:
		return readCircle(r)
	case ShapeLine:
		return readLine(r)
	case ShapeRectangle:
		return readRectangle(r)
	case ShapeSquare:
		return readSquare(r)
	case ShapeText:
		return readText(r)
	}
	return nil, &ErrUnknownShape{Code: int8(kind), Offset: r.pos}
}
