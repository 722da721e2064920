// Package mldtest builds layer-data containers in memory for tests.
package mldtest

import (
	"bytes"
	"encoding/binary"
)

// Builder appends little-endian container pieces to a buffer
type Builder struct {
	buf bytes.Buffer
}

// New starts a container with the given magic, version and layer count
func New(version, layers int32) *Builder {
	b := &Builder{}
	b.buf.WriteString("MLD\x00")
	b.put(version)
	b.put(layers)
	return b
}

func (b *Builder) put(v any) {
	if err := binary.Write(&b.buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}

// Bytes returns the container built so far
func (b *Builder) Bytes() []byte {
	return append([]byte(nil), b.buf.Bytes()...)
}

// Len returns the number of bytes written so far
func (b *Builder) Len() int { return b.buf.Len() }

// Raw appends arbitrary bytes
func (b *Builder) Raw(p []byte) *Builder {
	b.buf.Write(p)
	return b
}

// LayerHeader appends a layer header with a NUL-padded 64-byte name
func (b *Builder) LayerHeader(name string, imageCoords bool, count int32) *Builder {
	var field [64]byte
	copy(field[:], name)
	b.buf.Write(field[:])
	b.put(imageCoords)
	b.put(count)
	return b
}

// Layer appends a layer header followed by its object buffer, declaring the
// exact buffer length.
func (b *Builder) Layer(name string, records ...[]byte) *Builder {
	return b.LayerSized(name, 0, records...)
}

// LayerSized is Layer with the declared buffer length off by delta bytes
func (b *Builder) LayerSized(name string, delta int32, records ...[]byte) *Builder {
	b.LayerHeader(name, false, int32(len(records)))
	if len(records) == 0 {
		return b
	}
	size := 0
	for _, r := range records {
		size += len(r)
	}
	b.put(int32(size) + delta)
	for _, r := range records {
		b.buf.Write(r)
	}
	return b
}

// Marker appends a NUL-terminated section marker or name
func (b *Builder) Marker(s string) *Builder {
	b.buf.WriteString(s)
	b.buf.WriteByte(0)
	return b
}

// Image appends a [LayerImage] section
func (b *Builder) Image(name string, payload []byte) *Builder {
	b.Marker("[LayerImage]").Marker(name)
	b.put(int32(len(payload)))
	b.buf.Write(payload)
	return b
}

// TextSection appends a [name] section carrying text
func (b *Builder) TextSection(name, text string) *Builder {
	b.Marker("[" + name + "]")
	b.put(int64(len(text)))
	b.buf.WriteString(text)
	return b
}

// Record builds one object record from a shape code, a type tag and a payload
type Record struct {
	buf bytes.Buffer
}

func newRecord(shape, typ int8) *Record {
	r := &Record{}
	r.put(shape)
	r.put(typ)
	return r
}

func (r *Record) put(v any) {
	if err := binary.Write(&r.buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}

// Texts appends the label and note fields and returns the finished record
func (r *Record) Texts(label, note string) []byte {
	r.buf.WriteString(label)
	r.buf.WriteByte(0)
	r.buf.WriteString(note)
	r.buf.WriteByte(0)
	return r.buf.Bytes()
}

// Payload returns the record without text fields, for truncation tests
func (r *Record) Payload() []byte {
	return r.buf.Bytes()
}

// Points starts a polygon-style record (shape 0, 3 or 8) with float32 pairs
func Points(shape, typ int8, xy ...float32) *Record {
	r := newRecord(shape, typ)
	r.put(int32(len(xy) / 2))
	r.put(xy)
	return r
}

// Polygon returns a complete polygon record with empty texts
func Polygon(typ int8, xy ...float32) []byte {
	return Points(0, typ, xy...).Texts("", "")
}

// Params starts a parametric record: a discarded int32 then doubles
func Params(shape, typ int8, values ...float64) *Record {
	r := newRecord(shape, typ)
	r.put(int32(0))
	r.put(values)
	return r
}

// Circle returns a complete circle record
func Circle(typ int8, cx, cy, radius float64) []byte {
	return Params(2, typ, cx, cy, radius).Texts("", "")
}

// Line returns a complete line record (no discarded field)
func Line(typ int8, x0, y0, x1, y1 float64) []byte {
	r := newRecord(4, typ)
	r.put([]float64{x0, y0, x1, y1})
	return r.Texts("", "")
}

// Header returns just a shape/type header, for unknown-code tests
func Header(shape, typ int8) *Record {
	return newRecord(shape, typ)
}

// Int32 appends a raw 32-bit value to the record
func (r *Record) Int32(v int32) *Record {
	r.put(v)
	return r
}

// Int32 appends a raw 32-bit value to the container
func (b *Builder) Int32(v int32) *Builder {
	b.put(v)
	return b
}

// Int64 appends a raw 64-bit value to the container
func (b *Builder) Int64(v int64) *Builder {
	b.put(v)
	return b
}
