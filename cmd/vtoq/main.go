// Command vtoq converts layer-data annotation containers into QuPath GeoJSON
// documents.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/convert"
	"github.com/diapath/vtoq/pkg/mld"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "convert":
		return cmdConvert(args[1:], out, errOut)
	case "batch":
		return cmdBatch(args[1:], out, errOut)
	case "dump":
		return cmdDump(args[1:], out, errOut)
	case "mask":
		return cmdMask(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "vtoq: layer-data to QuPath annotation converter")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  vtoq convert --in <file.mld> [--out <file.geojson>] [--classes <classes.json>] [--scale-x f --scale-y f --offset-x f --offset-y f] [--merge]")
	fmt.Fprintln(w, "  vtoq batch --jobs <jobs.tsv> [--classes <classes.json>] [--workers n] [--merge] [--stop-on-error]")
	fmt.Fprintln(w, "  vtoq dump [--objects] <file.mld>")
	fmt.Fprintln(w, "  vtoq mask --in <file.mld> --out <mask.tif> --width n --height n --left f --right f --bottom f --top f [--kind polygon]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - inputs and outputs may be local paths or s3://bucket/key URLs")
	fmt.Fprintln(w, "  - the class map is JSON: {\"1\": [\"Tumor\", \"c80000\"]}")
	fmt.Fprintln(w, "  - jobs.tsv has a header line with LayerData, ScaleX, ScaleY, OffsetX, OffsetY and optionally Output")
	fmt.Fprintln(w, "  - -v logs debug output to stderr")
}

// commonFlags are shared by every subcommand
type commonFlags struct {
	verbose   bool
	region    string
	layer     string
	maxResync int
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	fs.BoolVar(&c.verbose, "v", false, "Log debug output")
	fs.StringVar(&c.region, "region", region, "AWS region for s3:// locations")
	fs.StringVar(&c.layer, "layer", mld.LayerROI, "Layer to export")
	fs.IntVar(&c.maxResync, "max-resync", 0, "Bound on the layer header search in bytes (0: rest of file)")
}

// setupLogging installs a text logger on errOut. Warnings are always shown.
func (c *commonFlags) setupLogging(errOut io.Writer) {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	mld.SetLogger(slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level})))
}

func (c *commonFlags) parseOptions() mld.ParseOptions {
	opts := mld.DefaultParseOptions()
	opts.MaxResyncBytes = c.maxResync
	return opts
}

// storage returns the file access for loc, opening an S3 session on first
// use.
type storage struct {
	region string
	local  fileaccess.FSAccess
	s3     *fileaccess.S3Access
}

func (s *storage) forLocation(loc fileaccess.Location) (fileaccess.FileAccess, error) {
	if !loc.S3 {
		return &s.local, nil
	}
	return s.remote()
}

func (s *storage) remote() (fileaccess.FileAccess, error) {
	if s.s3 == nil {
		s3Access, err := fileaccess.NewS3Access(s.region)
		if err != nil {
			return nil, err
		}
		s.s3 = &s3Access
	}
	return *s.s3, nil
}

// converter builds a Converter for the given locations
func (s *storage) converter(classes convert.ClassMap, locs ...fileaccess.Location) (*convert.Converter, error) {
	c := convert.NewConverter(classes)
	c.Local = &s.local
	for _, loc := range locs {
		if loc.S3 {
			remote, err := s.remote()
			if err != nil {
				return nil, err
			}
			c.S3 = remote
			break
		}
	}
	return c, nil
}

func (s *storage) read(loc fileaccess.Location) ([]byte, error) {
	fa, err := s.forLocation(loc)
	if err != nil {
		return nil, err
	}
	return fa.ReadObject(loc.Bucket, loc.Path)
}

func (s *storage) write(loc fileaccess.Location, data []byte) error {
	fa, err := s.forLocation(loc)
	if err != nil {
		return err
	}
	return fa.WriteObject(loc.Bucket, loc.Path, data)
}

func (s *storage) loadClasses(path string) (convert.ClassMap, error) {
	if path == "" {
		return convert.ClassMap{}, nil
	}
	loc, err := fileaccess.ParseLocation(path)
	if err != nil {
		return nil, err
	}
	fa, err := s.forLocation(loc)
	if err != nil {
		return nil, err
	}
	return convert.LoadClassMap(fa, loc.Bucket, loc.Path)
}
