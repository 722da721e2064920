package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"runtime"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/convert"
)

func cmdBatch(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	var assembly assemblyFlags
	common.register(fs)
	assembly.register(fs)

	var jobsPath string
	var workers int
	var stopOnError, progress bool
	fs.StringVar(&jobsPath, "jobs", "", "Tab-separated job list")
	fs.IntVar(&workers, "workers", runtime.NumCPU(), "Concurrent conversions (1 runs serially)")
	fs.BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failed job")
	fs.BoolVar(&progress, "progress", false, "Print progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if jobsPath == "" {
		fmt.Fprintln(errOut, "usage: vtoq batch --jobs <jobs.tsv> [--classes <classes.json>] ...")
		return 2
	}
	common.setupLogging(errOut)

	opts, err := assembly.options(common.layer)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	store := &storage{region: common.region}
	jobsLoc, err := fileaccess.ParseLocation(jobsPath)
	if err != nil {
		fmt.Fprintf(errOut, "--jobs: %v\n", err)
		return 2
	}
	data, err := store.read(jobsLoc)
	if err != nil {
		fmt.Fprintf(errOut, "read job list: %v\n", err)
		return 1
	}
	jobs, err := readJobs(bytes.NewReader(data), !assembly.merge)
	if err != nil {
		fmt.Fprintf(errOut, "job list: %v\n", err)
		return 1
	}

	classes, err := store.loadClasses(assembly.classes)
	if err != nil {
		fmt.Fprintf(errOut, "classes: %v\n", err)
		return 1
	}
	var locs []fileaccess.Location
	for _, j := range jobs {
		locs = append(locs, j.Input, j.Output)
	}
	c, err := store.converter(classes, locs...)
	if err != nil {
		fmt.Fprintf(errOut, "storage: %v\n", err)
		return 1
	}
	c.ParseOptions = common.parseOptions()
	c.Options = opts

	batch := convert.BatchOptions{
		Parallel:   workers > 1,
		Workers:    workers,
		SkipErrors: !stopOnError,
		ErrorLog:   errOut,
	}
	if progress {
		batch.Progress = func(done, total int) {
			fmt.Fprintf(errOut, "\rConverting: %d/%d", done, total)
			if done == total {
				fmt.Fprintln(errOut)
			}
		}
	}

	results, errs := c.RunAll(jobs, batch)
	for _, r := range results {
		printResult(out, r)
	}
	fmt.Fprintf(out, "%d of %d jobs converted\n", len(results), len(jobs))
	return exitCode(errs)
}
