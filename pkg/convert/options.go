package convert

import "github.com/diapath/vtoq/pkg/mld"

// HoleMode selects how objects with type tag 0 are exported
type HoleMode int

const (
	// HolesAsFeatures exports every hole as its own feature named "Hole"
	// with the Ignore classification.
	HolesAsFeatures HoleMode = iota

	// HolesAsRings adds each hole as an inner ring of the most recent
	// non-hole feature. A hole met before any such feature is exported as
	// with HolesAsFeatures.
	HolesAsRings
)

func (m HoleMode) String() string {
	switch m {
	case HolesAsFeatures:
		return "features"
	case HolesAsRings:
		return "rings"
	default:
		return "unknown"
	}
}

// Options configures assembly
type Options struct {
	// Layer is the name of the layer whose objects are exported.
	// Default: ROI
	Layer string

	// AngleThreshold is the turn angle in degrees below which a vertex is
	// dropped when simplifying.
	// Default: 5
	AngleThreshold float64

	// DistanceThreshold is the edge length, in file units, below which a
	// vertex is dropped. Zero or less disables simplification entirely.
	// Default: 0.01
	DistanceThreshold float64

	// HoleMode selects how holes are exported.
	// Default: HolesAsFeatures
	HoleMode HoleMode
}

// DefaultOptions returns assembly options with defaults
func DefaultOptions() Options {
	return Options{
		Layer:             mld.LayerROI,
		AngleThreshold:    5,
		DistanceThreshold: 0.01,
		HoleMode:          HolesAsFeatures,
	}
}
