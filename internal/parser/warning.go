package parser

import (
	"fmt"

	"github.com/diapath/vtoq/internal/logging"
)

// WarningKind classifies a recoverable decode condition
type WarningKind int

const (
	// WarnLayerResync: the layer header was found only after skipping bytes
	WarnLayerResync WarningKind = iota + 1
	// WarnLayerNotFound: no layer header within the scan bound; decoding stopped
	WarnLayerNotFound
	// WarnLayerName: the layer name was not valid UTF-8 and was replaced
	WarnLayerName
	// WarnBufferSize: the object buffer length was missing or negative
	WarnBufferSize
	// WarnObjectsTruncated: object decoding stopped before the declared count
	WarnObjectsTruncated
	// WarnInvalidGeometry: a decoded object failed validation; it is kept
	WarnInvalidGeometry
	// WarnSectionCorrupt: a trailing section could not be read; the scan stopped
	WarnSectionCorrupt
	// WarnUnknownSection: an unrecognised trailing marker stopped the scan
	WarnUnknownSection
)

var warningKindNames = map[WarningKind]string{
	WarnLayerResync:      "layer-resync",
	WarnLayerNotFound:    "layer-not-found",
	WarnLayerName:        "layer-name",
	WarnBufferSize:       "buffer-size",
	WarnObjectsTruncated: "objects-truncated",
	WarnInvalidGeometry:  "invalid-geometry",
	WarnSectionCorrupt:   "section-corrupt",
	WarnUnknownSection:   "unknown-section",
}

func (k WarningKind) String() string {
	if s, ok := warningKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning reports a condition the decoder recovered from
type Warning struct {
	Kind WarningKind
	// Layer is the index of the layer being decoded, or -1 for the container
	// header and trailing sections.
	Layer   int
	Offset  int
	Message string
	// Err is the underlying decode error, if any
	Err error
}

func (w Warning) String() string {
	loc := "container"
	if w.Layer >= 0 {
		loc = fmt.Sprintf("layer %d", w.Layer)
	}
	if w.Err != nil {
		return fmt.Sprintf("%s @%d: %s: %s: %v", loc, w.Offset, w.Kind, w.Message, w.Err)
	}
	return fmt.Sprintf("%s @%d: %s: %s", loc, w.Offset, w.Kind, w.Message)
}

// warn records a warning on the container and logs it
func (d *decoder) warn(kind WarningKind, layer, offset int, err error, format string, args ...any) {
	w := Warning{
		Kind:    kind,
		Layer:   layer,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
	d.c.Warnings = append(d.c.Warnings, w)

	attrs := []any{"kind", kind.String(), "offset", offset}
	if layer >= 0 {
		attrs = append(attrs, "layer", layer)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	logging.Logger().Warn(w.Message, attrs...)
}
