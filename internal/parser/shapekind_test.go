package parser

import "testing"

// TestShapeKindNames tests shape kind enumeration
func TestShapeKindNames(t *testing.T) {
	tests := []struct {
		kind     ShapeKind
		expected string
		closed   bool
	}{
		{ShapePolygon, "Polygon", true},
		{ShapeEllipse, "Ellipse", true},
		{ShapeCircle, "Circle", true},
		{ShapePolyline, "Polyline", false},
		{ShapeLine, "Line", false},
		{ShapeRectangle, "Rectangle", true},
		{ShapeSquare, "Square", true},
		{ShapeText, "Text", true},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if tt.kind.String() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, tt.kind.String())
			}
			if tt.kind.Closed() != tt.closed {
				t.Errorf("Expected Closed()=%v, got %v", tt.closed, tt.kind.Closed())
			}
			parsed, err := ParseShapeKind(tt.expected)
			if err != nil || parsed != tt.kind {
				t.Errorf("Expected ParseShapeKind(%q)=%v, got %v (%v)", tt.expected, tt.kind, parsed, err)
			}
		})
	}
}

// TestShapeCodes tests mapping of stored codes onto kinds
func TestShapeCodes(t *testing.T) {
	if k, ok := shapeKindFromCode(8); !ok || k != ShapePolygon {
		t.Errorf("Expected code 8 to decode as Polygon, got %v %v", k, ok)
	}
	for _, code := range []int8{9, 100, -1} {
		if _, ok := shapeKindFromCode(code); ok {
			t.Errorf("Expected code %d to be unknown", code)
		}
	}
	if _, err := ParseShapeKind("hexagon"); err == nil {
		t.Errorf("Expected error for unknown shape name")
	}
	if k, _ := ParseShapeKind("circle"); k != ShapeCircle {
		t.Errorf("Expected case-insensitive match, got %v", k)
	}
	if s := ShapeKind(42).String(); s != "ShapeKind(42)" {
		t.Errorf("Expected ShapeKind(42), got %s", s)
	}
}
