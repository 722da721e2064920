package parser

// Container is a decoded layer-data file
type Container struct {
	Magic      [4]byte
	Version    int32
	LayerCount int32 // as declared in the header

	Layers   []Layer
	Sections []Section

	// FormatTag is the LDFF version marker closing the file, if present
	FormatTag string

	// Warnings lists every condition the decoder recovered from, in order
	Warnings []Warning
}

// Layer is a named group of objects
type Layer struct {
	Name string
	// RawName is the name field with trailing NUL padding removed
	RawName []byte
	// ImageCoords is set when object coordinates are already in image pixels
	ImageCoords bool
	// DeclaredObjects is the object count from the layer header
	DeclaredObjects int32
	// Offset is the position of the layer header in the file
	Offset  int
	Objects []Object
}

// SectionKind distinguishes binary from text trailing sections
type SectionKind int

const (
	SectionBlob SectionKind = iota
	SectionText
)

// Trailing section names, as stored after stripping the marker brackets
const (
	SectionLayerImage   = "LayerImage"
	SectionLayerConfigs = "LayerConfigs"
	SectionLayerAtlas   = "LayerAtlas"
)

// Section is a named payload following the layers
type Section struct {
	Name string
	Kind SectionKind
	// ImageName is the per-image name of a LayerImage section
	ImageName string
	Data      []byte
	Offset    int
}

// Text returns the payload of a text section decoded as Windows-1252
func (s *Section) Text() string {
	return decodeText(s.Data)
}

// Layer returns the layer with the given name. When several layers share a
// name the last one wins, matching how readers of this format index layers.
func (c *Container) Layer(name string) *Layer {
	for i := len(c.Layers) - 1; i >= 0; i-- {
		if c.Layers[i].Name == name {
			return &c.Layers[i]
		}
	}
	return nil
}

// LayerNames returns the decoded layer names in file order
func (c *Container) LayerNames() []string {
	names := make([]string, len(c.Layers))
	for i := range c.Layers {
		names[i] = c.Layers[i].Name
	}
	return names
}

// Section returns the last trailing section with the given name
func (c *Container) Section(name string) *Section {
	for i := len(c.Sections) - 1; i >= 0; i-- {
		if c.Sections[i].Name == name {
			return &c.Sections[i]
		}
	}
	return nil
}
