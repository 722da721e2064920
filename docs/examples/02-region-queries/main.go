package main

import (
	"fmt"
	"log"

	"github.com/diapath/vtoq/pkg/mld"
)

func main() {
	// Parse layer-data file
	parser := mld.NewParser()
	c, err := parser.Parse("LayerData.mld")
	if err != nil {
		log.Fatal(err)
	}

	roi := c.Layer(mld.LayerROI)
	if roi == nil {
		log.Fatal("no ROI layer")
	}

	// Region of interest in file units
	region := mld.Bounds{
		MinX: 10.0, MaxX: 12.5,
		MinY: -4.0, MaxY: -2.0,
	}

	// Query R-tree index for objects in the region (O(log n))
	objects := roi.ObjectsInBounds(region)

	fmt.Printf("Objects in region: %d\n", len(objects))

	for _, o := range objects {
		fmt.Printf("  %s: type %d, %d vertices\n", o.Kind, o.Type, len(o.Vertices))
	}
}
