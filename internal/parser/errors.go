package parser

import (
	"fmt"
)

// ErrHeaderTooShort indicates the file cannot hold the fixed container header.
// It is the only condition that aborts a decode.
type ErrHeaderTooShort struct {
	Size int
}

func (e *ErrHeaderTooShort) Error() string {
	return fmt.Sprintf("container header needs %d bytes, file has %d", headerSize, e.Size)
}

// ErrTruncated indicates a record ran past the end of the data
type ErrTruncated struct {
	Offset int
	Need   int
	Have   int
}

func (e *ErrTruncated) Error() string {
	return fmt.Sprintf("truncated record at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

// ErrUnknownShape indicates an object header carrying a shape code outside the known set
type ErrUnknownShape struct {
	Code   int8
	Offset int
}

func (e *ErrUnknownShape) Error() string {
	return fmt.Sprintf("unknown shape code %d at offset %d", e.Code, e.Offset)
}

// ErrLayerHeaderNotFound indicates the resync scan gave up before finding a
// recognised layer name.
type ErrLayerHeaderNotFound struct {
	Index   int
	Offset  int
	Scanned int
}

func (e *ErrLayerHeaderNotFound) Error() string {
	return fmt.Sprintf("layer %d: no header found in %d bytes from offset %d", e.Index, e.Scanned, e.Offset)
}
