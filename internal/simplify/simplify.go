// Package simplify thins polygon outlines by dropping vertices that sit on
// very short edges or on nearly straight runs.
package simplify

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// MinVertices is the smallest outline Polygon will return
const MinVertices = 3

// Polygon repeatedly removes vertices from the cyclic outline pts until a
// pass removes nothing. Each pass visits every other vertex (0, 2, 4, ...)
// up to n-3 and marks vertex i when both adjacent edges are shorter than
// distance, or when the turn angle between the edges is below angleDeg.
// Marked vertices are removed together at the end of the pass. A pass that
// would leave fewer than MinVertices vertices is not applied.
//
// With both thresholds zero or negative the input is returned unchanged.
// The result never aliases pts.
func Polygon(pts []vec.Vec2, angleDeg, distance float64) []vec.Vec2 {
	out := append([]vec.Vec2(nil), pts...)
	if angleDeg <= 0 && distance <= 0 {
		return out
	}
	angleTh := angleDeg * math.Pi / 180

	for {
		marked := pass(out, angleTh, distance)
		if len(marked) == 0 || len(out)-len(marked) < MinVertices {
			return out
		}
		out = remove(out, marked)
	}
}

// pass returns the indices to drop, in increasing order
func pass(pts []vec.Vec2, angleTh, distance float64) []int {
	n := len(pts)
	var marked []int
	for i := 0; i < n-2; i += 2 {
		prev := pts[(i-1+n)%n]
		v01 := prev.Sub(pts[i])
		v12 := pts[i].Sub(pts[i+1])
		d01 := v01.Length()
		d12 := v12.Length()

		if d01 < distance && d12 < distance {
			marked = append(marked, i)
			continue
		}

		cos := 0.0
		if d01*d12 != 0 {
			cos = v01.Dot(v12) / (d01 * d12)
		}
		if math.Acos(clamp(cos, 0, 1)) < angleTh {
			marked = append(marked, i)
		}
	}
	return marked
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func remove(pts []vec.Vec2, marked []int) []vec.Vec2 {
	out := make([]vec.Vec2, 0, len(pts)-len(marked))
	next := 0
	for i, p := range pts {
		if next < len(marked) && marked[next] == i {
			next++
			continue
		}
		out = append(out, p)
	}
	return out
}
