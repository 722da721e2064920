package convert

import (
	"math"

	"github.com/diapath/vtoq/internal/logging"
	"github.com/diapath/vtoq/internal/simplify"
	"github.com/diapath/vtoq/pkg/mld"
	"github.com/diapath/vtoq/pkg/qupath"
)

// placeholderX marks background records: an object whose first raw x
// coordinate is below it fills an unused slot and is never exported.
const placeholderX = -1e38

// HoleName is the name given to features exported from hole objects
const HoleName = "Hole"

// IgnoreClass classifies holes exported as features
var IgnoreClass = qupath.NewClassification("Ignore", 0xb4b4b4)

// exported lists the shape kinds that become features
var exported = map[mld.ShapeKind]bool{
	mld.ShapePolygon:   true,
	mld.ShapeEllipse:   true,
	mld.ShapeCircle:    true,
	mld.ShapeRectangle: true,
	mld.ShapeSquare:    true,
}

// Report counts what Assemble did with each object
type Report struct {
	Objects  int // objects seen
	Features int // features added to the document
	Holes    int // hole objects exported, as features or rings

	// Unclassified counts features whose type tag had no class map entry
	Unclassified int

	SkippedKind        int // lines, polylines and text
	SkippedDegenerate  int // fewer than 3 vertices after simplification
	SkippedPlaceholder int // background placeholders
	SkippedNonFinite   int // an infinite or NaN coordinate after transform
}

// Assemble appends a feature for every exportable object to doc.
//
// Each outline is simplified when opts.DistanceThreshold is positive, mapped
// through t and truncated to whole pixels. Objects left with fewer than 3
// vertices and placeholder records are skipped. Type tag 0 marks a hole,
// exported according to opts.HoleMode; any other tag is looked up in
// classes, and a tag without an entry yields an unclassified feature.
func Assemble(objects []mld.Object, doc *qupath.Document, t Transform, classes ClassMap, opts Options) Report {
	log := logging.Logger()

	var report Report
	var parent *qupath.Feature

	for i := range objects {
		o := &objects[i]
		report.Objects++

		if !exported[o.Kind] {
			report.SkippedKind++
			continue
		}

		pts := o.Vertices
		if opts.DistanceThreshold > 0 {
			pts = simplify.Polygon(pts, opts.AngleThreshold, opts.DistanceThreshold)
		}
		ring := t.ApplyAll(pts)

		if len(ring) < simplify.MinVertices {
			log.Debug("object skipped", "offset", o.Offset, "kind", o.Kind, "vertices", len(ring))
			report.SkippedDegenerate++
			continue
		}
		if o.Vertices[0].X < placeholderX {
			report.SkippedPlaceholder++
			continue
		}
		if !finite(ring) {
			log.Warn("object with non-finite coordinates skipped", "offset", o.Offset, "kind", o.Kind)
			report.SkippedNonFinite++
			continue
		}

		if o.Type == 0 {
			report.Holes++
			if opts.HoleMode == HolesAsRings && parent != nil {
				parent.AddRing(ring)
				continue
			}
			if opts.HoleMode == HolesAsRings {
				log.Warn("hole before any annotation; exported as its own feature", "offset", o.Offset)
			}
			class := IgnoreClass
			f := qupath.NewFeature(HoleName, &class)
			f.AddRing(ring)
			doc.Add(f)
			report.Features++
			continue
		}

		class := classes.Lookup(o.Type)
		if class == nil {
			log.Debug("no classification for type", "type", o.Type, "offset", o.Offset)
			report.Unclassified++
		}
		f := qupath.NewFeature("", class)
		f.AddRing(ring)
		doc.Add(f)
		report.Features++
		parent = f
	}

	return report
}

func finite(ring []qupath.Point) bool {
	for _, p := range ring {
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}
