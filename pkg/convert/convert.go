// Package convert turns decoded layer-data objects into QuPath annotation
// documents.
package convert

import (
	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/internal/logging"
	"github.com/diapath/vtoq/pkg/mld"
	"github.com/diapath/vtoq/pkg/qupath"
	"github.com/pkg/errors"
)

// Job is one file conversion
type Job struct {
	Input     fileaccess.Location
	Output    fileaccess.Location
	Transform Transform

	// Overwrite discards an existing output document. When false, the new
	// features are appended to it.
	Overwrite bool
}

// Result describes a finished Job
type Result struct {
	Job    Job
	Report Report

	// Warnings are the decoder's recovered conditions for the input
	Warnings []mld.Warning

	// LayerFound is false when the input has no layer named Options.Layer
	LayerFound bool
}

// Converter runs jobs. It holds no per-job state, so one Converter may run
// jobs on disjoint files concurrently.
type Converter struct {
	// Local serves plain paths
	Local fileaccess.FileAccess
	// S3 serves s3:// locations; nil rejects them
	S3 fileaccess.FileAccess

	Parser       mld.Parser
	ParseOptions mld.ParseOptions
	Classes      ClassMap
	Options      Options
}

// NewConverter returns a converter for local files with default options
func NewConverter(classes ClassMap) *Converter {
	return &Converter{
		Local:        &fileaccess.FSAccess{},
		Parser:       mld.NewParser(),
		ParseOptions: mld.DefaultParseOptions(),
		Classes:      classes,
		Options:      DefaultOptions(),
	}
}

func (c *Converter) access(loc fileaccess.Location) (fileaccess.FileAccess, error) {
	if !loc.S3 {
		return c.Local, nil
	}
	if c.S3 == nil {
		return nil, errors.Errorf("no S3 access configured for %v", loc)
	}
	return c.S3, nil
}

// Run decodes the job's input, assembles its objects into the output
// document and writes the document back.
func (c *Converter) Run(job Job) (*Result, error) {
	log := logging.Logger()

	in, err := c.access(job.Input)
	if err != nil {
		return nil, err
	}
	out, err := c.access(job.Output)
	if err != nil {
		return nil, err
	}

	data, err := in.ReadObject(job.Input.Bucket, job.Input.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %v", job.Input)
	}
	container, err := c.Parser.Decode(data, c.ParseOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %v", job.Input)
	}

	doc := qupath.NewDocument()
	if !job.Overwrite {
		// a missing document starts empty; a corrupt one is not replaced
		if err := out.ReadJSON(job.Output.Bucket, job.Output.Path, doc, true); err != nil {
			return nil, errors.Wrapf(err, "failed to load existing %v", job.Output)
		}
		if doc.Len() > 0 {
			log.Debug("merging into existing document", "output", job.Output.String(), "features", doc.Len())
		}
	}

	result := &Result{Job: job, Warnings: container.Warnings()}

	layer := container.Layer(c.Options.Layer)
	if layer == nil {
		log.Warn("layer not found; writing document without new features",
			"input", job.Input.String(), "layer", c.Options.Layer, "layers", container.LayerNames())
	} else {
		result.LayerFound = true
		result.Report = Assemble(layer.Objects(), doc, job.Transform, c.Classes, c.Options)
	}

	if err := out.WriteJSON(job.Output.Bucket, job.Output.Path, doc); err != nil {
		return nil, errors.Wrapf(err, "failed to write %v", job.Output)
	}

	log.Info("converted", "input", job.Input.String(), "output", job.Output.String(),
		"objects", result.Report.Objects, "features", result.Report.Features, "warnings", len(result.Warnings))
	return result, nil
}
