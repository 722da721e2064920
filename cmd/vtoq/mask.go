package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/mask"
	"github.com/diapath/vtoq/pkg/mld"
)

func cmdMask(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("mask", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)

	var inPath, outPath, kindName, format string
	var opts mask.Options
	fs.StringVar(&inPath, "in", "", "Layer-data file or s3:// URL")
	fs.StringVar(&outPath, "out", "", "Output mask image")
	fs.StringVar(&kindName, "kind", mld.ShapePolygon.String(), "Shape kind to draw")
	fs.StringVar(&format, "format", string(mask.FormatTIFF), "Output format: tiff or png")
	fs.IntVar(&opts.Width, "width", 0, "Mask width in pixels")
	fs.IntVar(&opts.Height, "height", 0, "Mask height in pixels")
	fs.Float64Var(&opts.Extent.Left, "left", 0, "File x coordinate of the left edge")
	fs.Float64Var(&opts.Extent.Right, "right", 0, "File x coordinate of the right edge")
	fs.Float64Var(&opts.Extent.Bottom, "bottom", 0, "File y coordinate of the bottom edge")
	fs.Float64Var(&opts.Extent.Top, "top", 0, "File y coordinate of the top edge")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inPath == "" || outPath == "" {
		fmt.Fprintln(errOut, "usage: vtoq mask --in <file.mld> --out <mask.tif> --width n --height n --left f --right f --bottom f --top f")
		return 2
	}
	common.setupLogging(errOut)

	kind, err := mld.ParseShapeKind(kindName)
	if err != nil {
		fmt.Fprintf(errOut, "--kind: %v\n", err)
		return 2
	}
	opts.Kind = kind

	in, err := fileaccess.ParseLocation(inPath)
	if err != nil {
		fmt.Fprintf(errOut, "--in: %v\n", err)
		return 2
	}
	dest, err := fileaccess.ParseLocation(outPath)
	if err != nil {
		fmt.Fprintf(errOut, "--out: %v\n", err)
		return 2
	}

	store := &storage{region: common.region}
	data, err := store.read(in)
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	c, err := mld.Decode(data, common.parseOptions())
	if err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		return 1
	}
	layer := c.Layer(common.layer)
	if layer == nil {
		fmt.Fprintf(errOut, "no layer named %s (have %v)\n", common.layer, c.LayerNames())
		return 1
	}

	img, err := mask.Render(layer.Objects(), opts)
	if err != nil {
		fmt.Fprintf(errOut, "mask: %v\n", err)
		return 2
	}
	var buf bytes.Buffer
	if err := mask.Encode(&buf, img, mask.Format(format)); err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 2
	}
	if err := store.write(dest, buf.Bytes()); err != nil {
		fmt.Fprintf(errOut, "write: %v\n", err)
		return 1
	}

	fmt.Fprintf(out, "%s: %dx%d mask from %d objects\n", dest, opts.Width, opts.Height, layer.ObjectCount())
	return 0
}
