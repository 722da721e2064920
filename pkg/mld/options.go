package mld

import "github.com/diapath/vtoq/internal/parser"

// ParseOptions configures decoding behavior.
type ParseOptions struct {
	// LayerNames is the vocabulary a layer header's name must match. When a
	// header does not match, the decoder advances one byte at a time until
	// it finds one that does. An empty list accepts any name.
	LayerNames []string

	// MaxResyncBytes bounds that search. Zero or less means the rest of
	// the file.
	MaxResyncBytes int

	// ValidateGeometry adds a warning for every object with an unusable
	// outline. The objects are kept.
	ValidateGeometry bool
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	internal := parser.DefaultParseOptions()
	return ParseOptions{
		LayerNames:       internal.LayerNames,
		MaxResyncBytes:   internal.MaxResyncBytes,
		ValidateGeometry: internal.ValidateGeometry,
	}
}

func (o ParseOptions) internal() parser.ParseOptions {
	return parser.ParseOptions{
		LayerNames:       o.LayerNames,
		MaxResyncBytes:   o.MaxResyncBytes,
		ValidateGeometry: o.ValidateGeometry,
	}
}
