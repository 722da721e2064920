// Package qupath models the GeoJSON annotation documents QuPath imports: a
// FeatureCollection of locked polygon annotations, optionally classified.
package qupath

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	featureCollectionType = "FeatureCollection"
	featureType           = "Feature"
	polygonType           = "Polygon"
	annotationObjectType  = "annotation"
)

// Point is an [x, y] coordinate pair
type Point [2]float64

// Ring is a closed sequence of points; the first point is repeated last
type Ring []Point

// Classification is a named annotation class with a display colour
type Classification struct {
	Name string `json:"name"`
	// ColorRGB is the colour packed as QuPath stores it: an opaque ARGB
	// value held in a signed 32-bit integer.
	ColorRGB int32 `json:"colorRGB"`
}

// NewClassification builds a classification from a 0xRRGGBB colour
func NewClassification(name string, rgb uint32) Classification {
	c := Classification{Name: name}
	c.SetColor(rgb)
	return c
}

// Color returns the 0xRRGGBB colour
func (c Classification) Color() uint32 {
	return uint32(c.ColorRGB) & 0xffffff
}

// SetColor stores a 0xRRGGBB colour with full opacity
func (c *Classification) SetColor(rgb uint32) {
	c.ColorRGB = int32(int64(rgb&0xffffff) - 0x1000000)
}

// Geometry is a GeoJSON polygon: an outer ring followed by hole rings
type Geometry struct {
	Type        string `json:"type"`
	Coordinates []Ring `json:"coordinates"`
}

// Properties holds the QuPath-specific feature attributes
type Properties struct {
	ObjectType     string          `json:"object_type"`
	IsLocked       bool            `json:"isLocked"`
	Name           string          `json:"name,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
}

// Feature is one annotation
type Feature struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// NewFeature creates an empty locked annotation with a fresh identifier.
// A nil class leaves the feature unclassified.
func NewFeature(name string, class *Classification) *Feature {
	f := &Feature{
		Type: featureType,
		ID:   uuid.NewString(),
		Geometry: Geometry{
			Type:        polygonType,
			Coordinates: []Ring{},
		},
		Properties: Properties{
			ObjectType: annotationObjectType,
			IsLocked:   true,
			Name:       name,
		},
	}
	if class != nil {
		c := *class
		f.Properties.Classification = &c
	}
	return f
}

// AddRing appends a ring, closing it when its ends differ. The first ring
// is the outer boundary, later ones are holes.
func (f *Feature) AddRing(pts []Point) {
	ring := append(Ring(nil), pts...)
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	f.Geometry.Coordinates = append(f.Geometry.Coordinates, ring)
}

// RingCount returns the number of rings in the feature
func (f *Feature) RingCount() int {
	return len(f.Geometry.Coordinates)
}

// Document is a FeatureCollection. Features loaded from an existing document
// are written back exactly as read, so geometry types and properties this
// package does not model survive a merge.
type Document struct {
	entries []entry
}

type entry struct {
	feature *Feature
	raw     json.RawMessage
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{}
}

// Add appends a feature
func (d *Document) Add(f *Feature) {
	d.entries = append(d.entries, entry{feature: f})
}

// Len returns the number of features, loaded and added
func (d *Document) Len() int {
	return len(d.entries)
}

// Features returns the features added since the document was created or
// loaded, in order
func (d *Document) Features() []*Feature {
	var out []*Feature
	for _, e := range d.entries {
		if e.feature != nil {
			out = append(out, e.feature)
		}
	}
	return out
}

type documentJSON struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// MarshalJSON writes the document as a FeatureCollection
func (d *Document) MarshalJSON() ([]byte, error) {
	doc := documentJSON{Type: featureCollectionType, Features: make([]json.RawMessage, 0, len(d.entries))}
	for i, e := range d.entries {
		if e.raw != nil {
			doc.Features = append(doc.Features, e.raw)
			continue
		}
		b, err := json.Marshal(e.feature)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		doc.Features = append(doc.Features, b)
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reads a FeatureCollection, keeping each feature verbatim
func (d *Document) UnmarshalJSON(data []byte) error {
	var doc documentJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Type != featureCollectionType {
		return fmt.Errorf("expected %s, got type %q", featureCollectionType, doc.Type)
	}
	d.entries = d.entries[:0]
	for _, raw := range doc.Features {
		raw = bytes.TrimSpace(raw)
		d.entries = append(d.entries, entry{raw: append(json.RawMessage(nil), raw...)})
	}
	return nil
}
