// Package mld provides a public API for decoding layer-data (.mld) annotation
// containers written by image analysis software.
package mld

import (
	"github.com/diapath/vtoq/internal/parser"
)

// Parser decodes layer-data containers.
//
// Create a parser with NewParser and use Parse, ParseWithOptions or Decode.
type Parser interface {
	// Parse reads a container file with default options.
	//
	// Only a file too short to hold the container header is an error.
	// Everything else the decoder recovers from is listed in Warnings.
	Parse(filename string) (*Container, error)

	// ParseWithOptions reads a container file with custom options.
	ParseWithOptions(filename string, opts ParseOptions) (*Container, error)

	// Decode decodes a container already held in memory.
	Decode(data []byte, opts ParseOptions) (*Container, error)
}

// NewParser creates a new layer-data parser with default settings.
//
// Example:
//
//	parser := mld.NewParser()
//	c, err := parser.Parse("slide.mld")
//	roi := c.Layer("ROI")
func NewParser() Parser {
	return &parserWrapper{
		internal: parser.NewParser(),
	}
}

// parserWrapper wraps the internal parser and converts types
type parserWrapper struct {
	internal parser.Parser
}

func (p *parserWrapper) Parse(filename string) (*Container, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *parserWrapper) ParseWithOptions(filename string, opts ParseOptions) (*Container, error) {
	internal, err := p.internal.ParseWithOptions(filename, opts.internal())
	if err != nil {
		return nil, err
	}
	return convertContainer(internal), nil
}

func (p *parserWrapper) Decode(data []byte, opts ParseOptions) (*Container, error) {
	internal, err := p.internal.Decode(data, opts.internal())
	if err != nil {
		return nil, err
	}
	return convertContainer(internal), nil
}

// Decode decodes an in-memory container with the given options
func Decode(data []byte, opts ParseOptions) (*Container, error) {
	return NewParser().Decode(data, opts)
}

// Object is one decoded annotation: its shape kind, classification tag,
// reconstructed outline in file units, label and note.
type Object = parser.Object

// ShapeKind identifies the geometry of an Object
type ShapeKind = parser.ShapeKind

const (
	ShapePolygon   = parser.ShapePolygon
	ShapeEllipse   = parser.ShapeEllipse
	ShapeCircle    = parser.ShapeCircle
	ShapePolyline  = parser.ShapePolyline
	ShapeLine      = parser.ShapeLine
	ShapeRectangle = parser.ShapeRectangle
	ShapeSquare    = parser.ShapeSquare
	ShapeText      = parser.ShapeText
)

// ParseShapeKind returns the kind named name, ignoring case
func ParseShapeKind(name string) (ShapeKind, error) {
	return parser.ParseShapeKind(name)
}

// Layer names understood by default
const (
	LayerROI        = parser.LayerROI
	LayerLabel      = parser.LayerLabel
	LayerAnnotation = parser.LayerAnnotation
)

// Warning reports a condition the decoder recovered from
type Warning = parser.Warning

// WarningKind classifies a Warning
type WarningKind = parser.WarningKind

const (
	WarnLayerResync      = parser.WarnLayerResync
	WarnLayerNotFound    = parser.WarnLayerNotFound
	WarnLayerName        = parser.WarnLayerName
	WarnBufferSize       = parser.WarnBufferSize
	WarnObjectsTruncated = parser.WarnObjectsTruncated
	WarnInvalidGeometry  = parser.WarnInvalidGeometry
	WarnSectionCorrupt   = parser.WarnSectionCorrupt
	WarnUnknownSection   = parser.WarnUnknownSection
)

// Section is a trailing payload following the layers
type Section = parser.Section

const (
	SectionLayerImage   = parser.SectionLayerImage
	SectionLayerConfigs = parser.SectionLayerConfigs
	SectionLayerAtlas   = parser.SectionLayerAtlas
)

// Container is a decoded layer-data file.
//
// Access header fields via Magic, Version and DeclaredLayers. Access layers
// via Layers or Layer(name), and the trailing sections via Sections,
// Section(name) and Images.
type Container struct {
	magic          [4]byte
	version        int32
	declaredLayers int32

	layers    []*Layer
	sections  []Section
	formatTag string
	warnings  []Warning
}

// Magic returns the 4-byte tag opening the file
func (c *Container) Magic() [4]byte { return c.magic }

// Version returns the format version from the header
func (c *Container) Version() int32 { return c.version }

// DeclaredLayers returns the layer count from the header, which may exceed
// the number of layers actually decoded.
func (c *Container) DeclaredLayers() int32 { return c.declaredLayers }

// Layers returns the decoded layers in file order
func (c *Container) Layers() []*Layer { return c.layers }

// Layer returns the layer with the given name, or nil. When several layers
// share a name the last one wins.
func (c *Container) Layer(name string) *Layer {
	for i := len(c.layers) - 1; i >= 0; i-- {
		if c.layers[i].name == name {
			return c.layers[i]
		}
	}
	return nil
}

// LayerNames returns the decoded layer names in file order
func (c *Container) LayerNames() []string {
	names := make([]string, len(c.layers))
	for i, l := range c.layers {
		names[i] = l.name
	}
	return names
}

// Sections returns the trailing sections in file order
func (c *Container) Sections() []Section { return c.sections }

// Section returns the last trailing section with the given name, or nil
func (c *Container) Section(name string) *Section {
	for i := len(c.sections) - 1; i >= 0; i-- {
		if c.sections[i].Name == name {
			return &c.sections[i]
		}
	}
	return nil
}

// FormatTag returns the LDFF marker closing the file, or ""
func (c *Container) FormatTag() string { return c.formatTag }

// Warnings lists every recovered condition in the order it was met
func (c *Container) Warnings() []Warning { return c.warnings }

// Layer is a named group of objects.
//
// Objects are indexed spatially when the layer is built, so ObjectsInBounds
// does not scan the whole layer.
type Layer struct {
	name            string
	rawName         []byte
	imageCoords     bool
	declaredObjects int32
	offset          int
	objects         []Object

	spatialIndex *spatialIndex
	bounds       Bounds
}

// Name returns the layer name
func (l *Layer) Name() string { return l.name }

// RawName returns the name field with its NUL padding removed
func (l *Layer) RawName() []byte { return l.rawName }

// ImageCoords reports whether coordinates are in image pixels already
func (l *Layer) ImageCoords() bool { return l.imageCoords }

// DeclaredObjects returns the object count from the layer header
func (l *Layer) DeclaredObjects() int32 { return l.declaredObjects }

// Offset returns the file position of the layer header
func (l *Layer) Offset() int { return l.offset }

// Objects returns the decoded objects in file order
func (l *Layer) Objects() []Object { return l.objects }

// ObjectCount returns the number of decoded objects
func (l *Layer) ObjectCount() int { return len(l.objects) }

// ObjectsOfKind returns the objects whose kind is one of kinds, in file order
func (l *Layer) ObjectsOfKind(kinds ...ShapeKind) []Object {
	var result []Object
	for _, o := range l.objects {
		for _, k := range kinds {
			if o.Kind == k {
				result = append(result, o)
				break
			}
		}
	}
	return result
}

// CountByKind returns how many objects of each kind the layer holds
func (l *Layer) CountByKind() map[ShapeKind]int {
	counts := make(map[ShapeKind]int)
	for _, o := range l.objects {
		counts[o.Kind]++
	}
	return counts
}

// Bounds returns the union of the finite object bounds in the layer
func (l *Layer) Bounds() Bounds { return l.bounds }

func convertContainer(internal *parser.Container) *Container {
	c := &Container{
		magic:          internal.Magic,
		version:        internal.Version,
		declaredLayers: internal.LayerCount,
		sections:       internal.Sections,
		formatTag:      internal.FormatTag,
		warnings:       internal.Warnings,
	}

	c.layers = make([]*Layer, len(internal.Layers))
	for i, il := range internal.Layers {
		l := &Layer{
			name:            il.Name,
			rawName:         il.RawName,
			imageCoords:     il.ImageCoords,
			declaredObjects: il.DeclaredObjects,
			offset:          il.Offset,
			objects:         il.Objects,
		}
		l.buildSpatialIndex()
		c.layers[i] = l
	}

	return c
}
