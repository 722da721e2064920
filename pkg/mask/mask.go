// Package mask rasterises layer objects into 8-bit label images.
package mask

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/diapath/vtoq/internal/logging"
	"github.com/diapath/vtoq/pkg/mld"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"
)

// Extent is the area of the file's coordinate space the image covers.
// Left maps to the first column and Right past the last; Top maps to the
// first row and Bottom past the last, so Bottom < Top flips the y axis.
type Extent struct {
	Left, Right float64
	Bottom, Top float64
}

// Options configures Render
type Options struct {
	// Kind selects the objects drawn
	Kind mld.ShapeKind

	Width, Height int
	Extent        Extent
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid mask size %dx%d", o.Width, o.Height)
	}
	if o.Extent.Right == o.Extent.Left || o.Extent.Bottom == o.Extent.Top {
		return fmt.Errorf("empty extent %+v", o.Extent)
	}
	return nil
}

// pixel maps a file coordinate to image space
func (o Options) pixel(p vec.Vec2) (float32, float32) {
	e := o.Extent
	x := (p.X - e.Left) / (e.Right - e.Left) * float64(o.Width)
	y := (p.Y - e.Top) / (e.Bottom - e.Top) * float64(o.Height)
	return float32(x), float32(y)
}

// Render draws every object of the selected kind and ORs its type tag into
// the pixels it covers. A pixel counts as covered when at least half of it
// lies inside the outline.
func Render(objects []mld.Object, opts Options) (*image.Gray, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := logging.Logger()

	bounds := image.Rect(0, 0, opts.Width, opts.Height)
	out := image.NewGray(bounds)
	coverage := image.NewAlpha(bounds)
	raster := vector.NewRasterizer(opts.Width, opts.Height)

	for i := range objects {
		o := &objects[i]
		if o.Kind != opts.Kind {
			continue
		}
		if len(o.Vertices) < 3 || !finite(o.Vertices) {
			log.Debug("object not drawn", "offset", o.Offset, "vertices", len(o.Vertices))
			continue
		}

		raster.Reset(opts.Width, opts.Height)
		x, y := opts.pixel(o.Vertices[0])
		raster.MoveTo(x, y)
		for _, v := range o.Vertices[1:] {
			x, y = opts.pixel(v)
			raster.LineTo(x, y)
		}
		raster.ClosePath()

		clear(coverage.Pix)
		raster.Draw(coverage, bounds, image.Opaque, image.Point{})

		label := uint8(o.Type)
		for j, a := range coverage.Pix {
			if a >= 0x80 {
				out.Pix[j] |= label
			}
		}
	}

	return out, nil
}

func finite(pts []vec.Vec2) bool {
	for _, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}

// Format is an output image encoding
type Format string

const (
	FormatTIFF Format = "tiff"
	FormatPNG  Format = "png"
)

// Encode writes img in the given format. TIFF output is Deflate-compressed.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported mask format %q", format)
	}
}
