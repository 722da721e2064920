package main

import (
	"fmt"
	"log"

	"github.com/diapath/vtoq/pkg/mld"
)

func main() {
	// Create parser
	parser := mld.NewParser()

	// Parse layer-data file
	c, err := parser.Parse("LayerData.mld")
	if err != nil {
		log.Fatal(err)
	}

	// Print container info
	fmt.Printf("Version: %d\n", c.Version())
	fmt.Printf("Layers: %v\n", c.LayerNames())

	for _, layer := range c.Layers() {
		fmt.Printf("%s: %d objects\n", layer.Name(), layer.ObjectCount())
	}

	// Get ROI bounds
	if roi := c.Layer(mld.LayerROI); roi != nil {
		bounds := roi.Bounds()
		fmt.Printf("ROI bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
			bounds.MinX, bounds.MinY,
			bounds.MaxX, bounds.MaxY)
	}
}
