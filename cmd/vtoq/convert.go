package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/convert"
	"seehuhn.de/go/geom/vec"
)

// assemblyFlags configure how objects become features
type assemblyFlags struct {
	classes  string
	angle    float64
	distance float64
	holes    string
	merge    bool
}

func (a *assemblyFlags) register(fs *flag.FlagSet) {
	defaults := convert.DefaultOptions()
	fs.StringVar(&a.classes, "classes", "", "Class map JSON file")
	fs.Float64Var(&a.angle, "angle", defaults.AngleThreshold, "Simplification angle threshold in degrees")
	fs.Float64Var(&a.distance, "distance", defaults.DistanceThreshold, "Simplification distance threshold (0 disables)")
	fs.StringVar(&a.holes, "holes", defaults.HoleMode.String(), "Hole export: features or rings")
	fs.BoolVar(&a.merge, "merge", false, "Append to an existing output document instead of replacing it")
}

func (a *assemblyFlags) options(layer string) (convert.Options, error) {
	opts := convert.DefaultOptions()
	opts.Layer = layer
	opts.AngleThreshold = a.angle
	opts.DistanceThreshold = a.distance
	switch a.holes {
	case convert.HolesAsFeatures.String():
		opts.HoleMode = convert.HolesAsFeatures
	case convert.HolesAsRings.String():
		opts.HoleMode = convert.HolesAsRings
	default:
		return opts, fmt.Errorf("invalid --holes %q (want features or rings)", a.holes)
	}
	return opts, nil
}

func cmdConvert(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	var assembly assemblyFlags
	common.register(fs)
	assembly.register(fs)

	var inPath, outPath string
	var scaleX, scaleY, offsetX, offsetY float64
	fs.StringVar(&inPath, "in", "", "Layer-data file or s3:// URL")
	fs.StringVar(&outPath, "out", "", "Output GeoJSON (default: <in>.geojson)")
	fs.Float64Var(&scaleX, "scale-x", 1, "X scale from file units to pixels")
	fs.Float64Var(&scaleY, "scale-y", 1, "Y scale from file units to pixels")
	fs.Float64Var(&offsetX, "offset-x", 0, "X offset in pixels")
	fs.Float64Var(&offsetY, "offset-y", 0, "Y offset in pixels")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if inPath == "" {
		fmt.Fprintln(errOut, "usage: vtoq convert --in <file.mld> [--out <file.geojson>] ...")
		return 2
	}
	common.setupLogging(errOut)

	opts, err := assembly.options(common.layer)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	in, err := fileaccess.ParseLocation(inPath)
	if err != nil {
		fmt.Fprintf(errOut, "--in: %v\n", err)
		return 2
	}
	output := in.WithSuffix(".geojson")
	if outPath != "" {
		if output, err = fileaccess.ParseLocation(outPath); err != nil {
			fmt.Fprintf(errOut, "--out: %v\n", err)
			return 2
		}
	}

	store := &storage{region: common.region}
	classes, err := store.loadClasses(assembly.classes)
	if err != nil {
		fmt.Fprintf(errOut, "classes: %v\n", err)
		return 1
	}
	c, err := store.converter(classes, in, output)
	if err != nil {
		fmt.Fprintf(errOut, "storage: %v\n", err)
		return 1
	}
	c.ParseOptions = common.parseOptions()
	c.Options = opts

	result, err := c.Run(convert.Job{
		Input:  in,
		Output: output,
		Transform: convert.Transform{
			Scale:  vec.Vec2{X: scaleX, Y: scaleY},
			Offset: vec.Vec2{X: offsetX, Y: offsetY},
		},
		Overwrite: !assembly.merge,
	})
	if err != nil {
		fmt.Fprintf(errOut, "convert: %v\n", err)
		return 1
	}

	printResult(out, result)
	return 0
}

func printResult(w io.Writer, r *convert.Result) {
	fmt.Fprintf(w, "%s -> %s: %d features from %d objects", r.Job.Input, r.Job.Output, r.Report.Features, r.Report.Objects)
	if !r.LayerFound {
		fmt.Fprint(w, " (layer not found)")
	}
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(w, ", %d warnings", n)
	}
	fmt.Fprintln(w)
}

// exitCode maps an error count to the process status
func exitCode(errs []error) int {
	if len(errs) > 0 {
		return 1
	}
	return 0
}
