package simplify

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/vec"
)

func square8() []vec.Vec2 {
	// Midpoints sit at even indices, corners at odd ones
	return []vec.Vec2{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
		{X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0},
	}
}

func circle(n int, r float64) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		// a little deterministic wobble so some vertices survive
		rr := r + 0.3*math.Sin(7*a)
		pts[i] = vec.Vec2{X: rr * math.Cos(a), Y: rr * math.Sin(a)}
	}
	return pts
}

// TestPolygonDisabled tests that non-positive thresholds are the identity
func TestPolygonDisabled(t *testing.T) {
	in := square8()
	for _, th := range [][2]float64{{0, 0}, {-1, 0}, {0, -5}} {
		out := Polygon(in, th[0], th[1])
		if diff := cmp.Diff(in, out); diff != "" {
			t.Errorf("thresholds %v changed the outline (-in +out):\n%s", th, diff)
		}
	}
}

// TestPolygonCollinear tests removal of straight-run vertices on even indices
func TestPolygonCollinear(t *testing.T) {
	got := Polygon(square8(), 5, 0.01)
	want := []vec.Vec2{{X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("simplified outline mismatch (-want +got):\n%s", diff)
	}
}

// TestPolygonShortEdges tests removal of vertices between two short edges
func TestPolygonShortEdges(t *testing.T) {
	in := []vec.Vec2{
		{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 0.002, Y: 0}, {X: 0.003, Y: 0},
		{X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}
	got := Polygon(in, 0, 0.01)
	if len(got) != 6 {
		t.Fatalf("Expected 6 vertices, got %d: %v", len(got), got)
	}
	for _, p := range got {
		if p == (vec.Vec2{X: 0.002, Y: 0}) {
			t.Errorf("Expected (0.002, 0) removed, got %v", got)
		}
	}
}

// TestPolygonMinimum tests that simplification never goes below 3 vertices
func TestPolygonMinimum(t *testing.T) {
	tests := []struct {
		name string
		in   []vec.Vec2
	}{
		{"tiny triangle", []vec.Vec2{{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 0, Y: 0.001}}},
		{"tiny square", []vec.Vec2{{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 0.001, Y: 0.001}, {X: 0, Y: 0.001}}},
		{"small circle", circle(50, 0.001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Polygon(tt.in, 5, 1)
			if len(got) < MinVertices {
				t.Errorf("Expected at least %d vertices, got %d", MinVertices, len(got))
			}
		})
	}
}

// TestPolygonFixedPoint tests that a second run removes nothing
func TestPolygonFixedPoint(t *testing.T) {
	for _, in := range [][]vec.Vec2{square8(), circle(101, 100), circle(400, 5)} {
		once := Polygon(in, 5, 0.5)
		twice := Polygon(once, 5, 0.5)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("second pass changed the outline (-once +twice):\n%s", diff)
		}
		if len(once) > len(in) {
			t.Errorf("Expected no growth, got %d from %d", len(once), len(in))
		}
	}
}

// TestPolygonNoAlias tests that the input is left untouched
func TestPolygonNoAlias(t *testing.T) {
	in := square8()
	out := Polygon(in, 0, 0)
	out[0] = vec.Vec2{X: 99, Y: 99}
	if in[0] == out[0] {
		t.Errorf("Expected result not to alias input")
	}
}
