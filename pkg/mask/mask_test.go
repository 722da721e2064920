package mask

import (
	"bytes"
	"image"
	"testing"

	"github.com/diapath/vtoq/pkg/mld"
	"golang.org/x/image/tiff"
	"seehuhn.de/go/geom/vec"
)

func rect(typ int, x0, y0, x1, y1 float64) mld.Object {
	return mld.Object{
		Kind: mld.ShapePolygon,
		Type: typ,
		Vertices: []vec.Vec2{
			{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
		},
	}
}

func TestRender(t *testing.T) {
	objects := []mld.Object{
		rect(3, 2, 2, 6, 6),
		rect(4, 4, 4, 8, 8),
		{Kind: mld.ShapeCircle, Type: 16, Vertices: rect(0, 0, 0, 10, 10).Vertices},
	}
	opts := Options{
		Kind:   mld.ShapePolygon,
		Width:  10,
		Height: 10,
		Extent: Extent{Left: 0, Right: 10, Bottom: 10, Top: 0},
	}

	img, err := Render(objects, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0},
		{2, 2, 3},
		{3, 4, 3},
		{5, 5, 7},
		{7, 7, 4},
		{6, 2, 0},
		{9, 9, 0},
	}
	for _, tt := range tests {
		if got := img.GrayAt(tt.x, tt.y).Y; got != tt.want {
			t.Errorf("pixel (%d,%d): expected %d, got %d", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestRenderFlippedExtent(t *testing.T) {
	opts := Options{
		Kind:   mld.ShapePolygon,
		Width:  10,
		Height: 10,
		Extent: Extent{Left: 0, Right: 10, Bottom: 0, Top: 10},
	}

	img, err := Render([]mld.Object{rect(1, 0, 0, 2, 2)}, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.GrayAt(0, 9).Y != 1 || img.GrayAt(1, 8).Y != 1 {
		t.Errorf("Expected bottom-left corner set")
	}
	if img.GrayAt(0, 0).Y != 0 || img.GrayAt(0, 7).Y != 0 {
		t.Errorf("Expected top rows clear")
	}
}

func TestRenderSkipsUnusable(t *testing.T) {
	objects := []mld.Object{
		{Kind: mld.ShapePolygon, Type: 1, Vertices: []vec.Vec2{{X: 1, Y: 1}, {X: 5, Y: 5}}},
		{Kind: mld.ShapePolygon, Type: 2},
	}
	opts := Options{Kind: mld.ShapePolygon, Width: 4, Height: 4, Extent: Extent{Right: 4, Bottom: 4}}

	img, err := Render(objects, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatalf("Expected blank mask, got %v", img.Pix)
		}
	}
}

func TestRenderInvalidOptions(t *testing.T) {
	bad := []Options{
		{Width: 0, Height: 5, Extent: Extent{Right: 1, Bottom: 1}},
		{Width: 5, Height: 5, Extent: Extent{Left: 1, Right: 1, Bottom: 1}},
		{Width: 5, Height: 5, Extent: Extent{Right: 1, Bottom: 2, Top: 2}},
	}
	for i, opts := range bad {
		if _, err := Render(nil, opts); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestEncodeTIFF(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.Pix[4] = 9

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatTIFF); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := tiff.Decode(&buf)
	if err != nil {
		t.Fatalf("tiff.Decode failed: %v", err)
	}
	gray, ok := decoded.(*image.Gray)
	if !ok {
		t.Fatalf("Expected *image.Gray, got %T", decoded)
	}
	if gray.GrayAt(1, 1).Y != 9 {
		t.Errorf("Expected 9 at (1,1), got %d", gray.GrayAt(1, 1).Y)
	}

	if err := Encode(&buf, img, Format("jpeg")); err == nil {
		t.Errorf("Expected error for unsupported format")
	}
}
