package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/convert"
	"seehuhn.de/go/geom/vec"
)

// Job list columns
const (
	colLayerData = "LayerData"
	colOutput    = "Output"
	colScaleX    = "ScaleX"
	colScaleY    = "ScaleY"
	colOffsetX   = "OffsetX"
	colOffsetY   = "OffsetY"
)

// readJobs parses a tab-separated job list whose first line names the
// columns. Rows without an Output column value write <LayerData>.geojson.
// Lines starting with # are ignored.
func readJobs(r io.Reader, overwrite bool) ([]convert.Job, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1
	tsv.LazyQuotes = true

	header, err := tsv.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty job list")
	}
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colLayerData, colScaleX, colScaleY, colOffsetX, colOffsetY} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("job list has no %s column", required)
		}
	}

	var jobs []convert.Job
	outputs := make(map[string]int)
	for {
		record, err := tsv.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := tsv.FieldPos(0)

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		number := func(name string) (float64, error) {
			v, err := strconv.ParseFloat(field(name), 64)
			if err != nil {
				return 0, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			return v, nil
		}

		if field(colLayerData) == "" {
			return nil, fmt.Errorf("line %d: empty %s", line, colLayerData)
		}
		in, err := fileaccess.ParseLocation(field(colLayerData))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out := in.WithSuffix(".geojson")
		if p := field(colOutput); p != "" {
			if out, err = fileaccess.ParseLocation(p); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		// jobs run concurrently, so two rows must not share an output
		if prev, ok := outputs[out.String()]; ok {
			return nil, fmt.Errorf("line %d: output %s already written by line %d", line, out, prev)
		}
		outputs[out.String()] = line

		var values [4]float64
		for i, name := range []string{colScaleX, colScaleY, colOffsetX, colOffsetY} {
			if values[i], err = number(name); err != nil {
				return nil, err
			}
		}

		jobs = append(jobs, convert.Job{
			Input:  in,
			Output: out,
			Transform: convert.Transform{
				Scale:  vec.Vec2{X: values[0], Y: values[1]},
				Offset: vec.Vec2{X: values[2], Y: values[3]},
			},
			Overwrite: overwrite,
		})
	}
	return jobs, nil
}
