package parser

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/diapath/vtoq/internal/logging"
)

// headerSize covers the magic tag, format version and layer count
const headerSize = 4 + 4 + 4

// Parser decodes layer-data containers.
//
// A container holds a fixed header, a declared number of layers each carrying
// a stream of shape records, and optional trailing sections. Decoding is
// tolerant: apart from a file too short for the header, every problem is
// recorded as a Warning on the returned Container and decoding continues
// with whatever could be recovered.
type Parser interface {
	// Parse reads and decodes a file with default options
	Parse(filename string) (*Container, error)

	// ParseWithOptions reads and decodes a file
	ParseWithOptions(filename string, opts ParseOptions) (*Container, error)

	// Decode decodes an in-memory container
	Decode(data []byte, opts ParseOptions) (*Container, error)
}

// ParseOptions configures decoding
type ParseOptions struct {
	// LayerNames is the vocabulary a layer header's name must match. An
	// empty list accepts any name and disables resynchronisation.
	// Default: ROI, Label, Annotation
	LayerNames []string

	// MaxResyncBytes bounds how far the layer header scan advances past the
	// expected position. Zero or less bounds it by the remaining data.
	MaxResyncBytes int

	// ValidateGeometry reports objects failing ValidateObject as warnings.
	// Invalid objects are kept either way.
	// Default: true
	ValidateGeometry bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		LayerNames:       append([]string(nil), DefaultLayerNames...),
		MaxResyncBytes:   0,
		ValidateGeometry: true,
	}
}

type defaultParser struct{}

// NewParser creates a new layer-data parser
func NewParser() Parser {
	return &defaultParser{}
}

func (p *defaultParser) Parse(filename string) (*Container, error) {
	return p.ParseWithOptions(filename, DefaultParseOptions())
}

func (p *defaultParser) ParseWithOptions(filename string, opts ParseOptions) (*Container, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	c, err := p.Decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

func (p *defaultParser) Decode(data []byte, opts ParseOptions) (*Container, error) {
	return Decode(data, opts)
}

// decoder carries the cursor and the container under construction
type decoder struct {
	r    *reader
	opts ParseOptions
	c    *Container
}

// Decode decodes data as a layer-data container
func Decode(data []byte, opts ParseOptions) (*Container, error) {
	if len(data) < headerSize {
		return nil, &ErrHeaderTooShort{Size: len(data)}
	}

	d := &decoder{r: newReader(data), opts: opts, c: &Container{}}
	copy(d.c.Magic[:], data[0:4])
	d.c.Version = int32(binary.LittleEndian.Uint32(data[4:8]))
	d.c.LayerCount = int32(binary.LittleEndian.Uint32(data[8:12]))
	d.r.seek(headerSize)

	log := logging.Logger()
	log.Debug("container header", "version", d.c.Version, "layers", d.c.LayerCount, "size", len(data))

	if !d.readLayers() {
		return d.c, nil
	}
	d.readSections()
	return d.c, nil
}

// readLayers decodes the declared layers. It returns false when the cursor
// can no longer be trusted to reach the trailing sections.
func (d *decoder) readLayers() bool {
	log := logging.Logger()
	for i := 0; i < int(d.c.LayerCount); i++ {
		expected := d.r.pos
		hdr, err := d.scanLayerHeader(i)
		if err != nil {
			d.warn(WarnLayerNotFound, i, expected, err, "stopping after %d of %d layers", len(d.c.Layers), d.c.LayerCount)
			return false
		}
		if hdr.offset != expected {
			d.warn(WarnLayerResync, i, expected, nil, "layer header found %d bytes further on", hdr.offset-expected)
		}

		layer := Layer{
			Name:            d.layerName(i, hdr),
			RawName:         append([]byte(nil), hdr.name...),
			ImageCoords:     hdr.imageCoords,
			DeclaredObjects: hdr.count,
			Offset:          hdr.offset,
		}
		more := d.readObjects(i, &layer)
		d.c.Layers = append(d.c.Layers, layer)
		log.Debug("layer decoded", "layer", i, "name", layer.Name, "declared", layer.DeclaredObjects, "objects", len(layer.Objects))
		if !more {
			return false
		}
	}
	return true
}
