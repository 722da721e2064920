package main

import (
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/mld"
)

func cmdDump(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	var objects bool
	common.register(fs)
	fs.BoolVar(&objects, "objects", false, "List every object")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: vtoq dump [--objects] <file.mld>")
		return 2
	}
	common.setupLogging(errOut)

	loc, err := fileaccess.ParseLocation(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	store := &storage{region: common.region}
	data, err := store.read(loc)
	if err != nil {
		fmt.Fprintf(errOut, "read: %v\n", err)
		return 1
	}
	c, err := mld.Decode(data, common.parseOptions())
	if err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		return 1
	}

	dumpContainer(out, c, objects)
	return 0
}

func dumpContainer(w io.Writer, c *mld.Container, objects bool) {
	magic := c.Magic()
	fmt.Fprintf(w, "=== Container ===\n")
	fmt.Fprintf(w, "Magic: %q\n", magic[:])
	fmt.Fprintf(w, "Version: %d\n", c.Version())
	fmt.Fprintf(w, "Layers: %d declared, %d decoded\n", c.DeclaredLayers(), len(c.Layers()))
	if tag := c.FormatTag(); tag != "" {
		fmt.Fprintf(w, "Format tag: %s\n", tag)
	}

	for i, l := range c.Layers() {
		fmt.Fprintf(w, "\n=== Layer %d: %s ===\n", i, l.Name())
		fmt.Fprintf(w, "Offset: %d\n", l.Offset())
		fmt.Fprintf(w, "Image coordinates: %v\n", l.ImageCoords())
		fmt.Fprintf(w, "Objects: %d declared, %d decoded\n", l.DeclaredObjects(), l.ObjectCount())

		counts := l.CountByKind()
		kinds := make([]mld.ShapeKind, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		for _, k := range kinds {
			fmt.Fprintf(w, "  %-10s: %d\n", k, counts[k])
		}

		if objects {
			for j, o := range l.Objects() {
				fmt.Fprintf(w, "  [%d] %s type=%d vertices=%d", j, o.Kind, o.Type, len(o.Vertices))
				if o.Label != "" {
					fmt.Fprintf(w, " label=%q", o.Label)
				}
				if o.Note != "" {
					fmt.Fprintf(w, " note=%q", o.Note)
				}
				fmt.Fprintln(w)
			}
		}
	}

	if sections := c.Sections(); len(sections) > 0 {
		fmt.Fprintf(w, "\n=== Sections ===\n")
		for _, s := range sections {
			if s.Name == mld.SectionLayerImage {
				fmt.Fprintf(w, "%s %q: %d bytes\n", s.Name, s.ImageName, len(s.Data))
				continue
			}
			fmt.Fprintf(w, "%s: %d bytes\n", s.Name, len(s.Data))
		}
	}

	if warnings := c.Warnings(); len(warnings) > 0 {
		fmt.Fprintf(w, "\n=== Warnings ===\n")
		for _, warn := range warnings {
			fmt.Fprintln(w, warn.String())
		}
	}
}
