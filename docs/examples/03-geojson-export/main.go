package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/diapath/vtoq/pkg/convert"
	"github.com/diapath/vtoq/pkg/mld"
	"github.com/diapath/vtoq/pkg/qupath"
	"seehuhn.de/go/geom/vec"
)

func main() {
	c, err := mld.NewParser().Parse("LayerData.mld")
	if err != nil {
		log.Fatal(err)
	}
	roi := c.Layer(mld.LayerROI)
	if roi == nil {
		log.Fatal("no ROI layer")
	}

	// Type tags chosen in the authoring tool
	classes := convert.ClassMap{
		1: qupath.NewClassification("Tumor", 0xc80000),
		2: qupath.NewClassification("Stroma", 0x00c800),
	}

	// Millimetres to pixels at 0.25 µm/px, y axis pointing down
	t := convert.Transform{
		Scale:  vec.Vec2{X: 4000, Y: -4000},
		Offset: vec.Vec2{X: 50000, Y: 30000},
	}

	opts := convert.DefaultOptions()
	opts.HoleMode = convert.HolesAsRings

	doc := qupath.NewDocument()
	report := convert.Assemble(roi.Objects(), doc, t, classes, opts)
	fmt.Printf("%d features from %d objects (%d holes, %d skipped)\n",
		report.Features, report.Objects, report.Holes,
		report.SkippedKind+report.SkippedDegenerate+report.SkippedPlaceholder)

	data, err := json.Marshal(doc)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("annotations.geojson", data, 0o644); err != nil {
		log.Fatal(err)
	}
}
