package parser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

const (
	layerNameSize   = 64
	layerHeaderSize = layerNameSize + 1 + 4
)

type layerHeader struct {
	name        []byte
	imageCoords bool
	count       int32
	offset      int
}

// scanLayerHeader looks for a layer header at the cursor, advancing one byte
// at a time while the name field does not hold a recognised layer name. The
// scan gives up after MaxResyncBytes skipped bytes or when fewer than a
// header's worth of bytes remain.
func (d *decoder) scanLayerHeader(index int) (layerHeader, error) {
	data := d.r.data
	start := d.r.pos

	limit := d.opts.MaxResyncBytes
	if limit <= 0 {
		limit = len(data) - start
	}

	skip := 0
	for ; skip <= limit; skip++ {
		pos := start + skip
		if pos+layerHeaderSize > len(data) {
			break
		}
		name := bytes.TrimRight(data[pos:pos+layerNameSize], "\x00")
		if !d.isLayerName(name) {
			continue
		}
		d.r.seek(pos + layerHeaderSize)
		return layerHeader{
			name:        name,
			imageCoords: data[pos+layerNameSize] != 0,
			count:       int32(binary.LittleEndian.Uint32(data[pos+layerNameSize+1:])),
			offset:      pos,
		}, nil
	}

	return layerHeader{}, &ErrLayerHeaderNotFound{Index: index, Offset: start, Scanned: skip}
}

func (d *decoder) isLayerName(name []byte) bool {
	if len(d.opts.LayerNames) == 0 {
		return true
	}
	for _, n := range d.opts.LayerNames {
		if string(name) == n {
			return true
		}
	}
	return false
}

// layerName decodes the raw name, substituting a placeholder when the bytes
// are not valid UTF-8.
func (d *decoder) layerName(index int, hdr layerHeader) string {
	if utf8.Valid(hdr.name) {
		return string(hdr.name)
	}
	placeholder := fmt.Sprintf("L%d", index)
	d.warn(WarnLayerName, index, hdr.offset, nil, "layer name %q is not valid UTF-8, using %s", hdr.name, placeholder)
	return placeholder
}

// readObjects decodes the object stream of a layer. It returns false when
// the data ends inside the stream and no further layers can follow.
func (d *decoder) readObjects(index int, layer *Layer) bool {
	if layer.DeclaredObjects <= 0 {
		return true
	}

	r := d.r
	sizeOffset := r.pos
	size, err := r.int32()
	if err != nil {
		d.warn(WarnBufferSize, index, sizeOffset, err, "object buffer length missing")
		return false
	}
	start := r.pos
	if size < 0 {
		d.warn(WarnBufferSize, index, sizeOffset, nil, "negative object buffer length %d", size)
		return true
	}
	end := start + int(size)

	for i := int32(0); i < layer.DeclaredObjects; i++ {
		offset := r.pos
		obj, err := readObject(r)
		if err != nil {
			d.warn(WarnObjectsTruncated, index, offset, err,
				"decoded %d of %d objects", len(layer.Objects), layer.DeclaredObjects)
			break
		}
		if d.opts.ValidateGeometry {
			if verr := ValidateObject(obj); verr != nil {
				d.warn(WarnInvalidGeometry, index, offset, verr, "object %d", i)
			}
		}
		layer.Objects = append(layer.Objects, *obj)

		if r.pos >= end {
			if i+1 < layer.DeclaredObjects {
				d.warn(WarnObjectsTruncated, index, r.pos, nil,
					"object buffer exhausted after %d of %d objects", i+1, layer.DeclaredObjects)
			}
			break
		}
	}

	// The next layer starts at the declared boundary whatever was consumed
	r.seek(end)
	return true
}
