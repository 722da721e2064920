package parser

import (
	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/geom/vec"
)

// Object is one decoded annotation record
type Object struct {
	// Kind is the decoded shape kind
	Kind ShapeKind
	// Code is the shape code as stored, which differs from Kind for alias codes
	Code int8
	// Type is the author-chosen classification tag. 0 marks a hole.
	Type int
	// Vertices holds the outline in file units. Polygons are stored without
	// a closing vertex; parametric closed shapes repeat their first vertex.
	Vertices []vec.Vec2
	// Label and Note are the two free-text fields following the payload
	Label string
	Note  string
	// Offset is the position of the record header in the file
	Offset int
}

// Closed reports whether the object describes an area rather than a path
func (o *Object) Closed() bool {
	return o.Kind.Closed()
}

// Ring returns the outline with the first vertex repeated at the end when
// the object is closed and the outline is not closed already.
func (o *Object) Ring() []vec.Vec2 {
	ring := append([]vec.Vec2(nil), o.Vertices...)
	if !o.Closed() || len(ring) == 0 {
		return ring
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// decodeText decodes label, note and marker bytes as Windows-1252, which
// maps every byte. ASCII input is returned as is.
func decodeText(b []byte) string {
	for _, c := range b {
		if c >= 0x80 {
			s, err := charmap.Windows1252.NewDecoder().Bytes(b)
			if err != nil {
				return string(b)
			}
			return string(s)
		}
	}
	return string(b)
}

// readTextField reads a NUL-terminated text field. A missing terminator
// means the record is cut short.
func readTextField(r *reader) (string, error) {
	start := r.pos
	b, ok := r.cstring()
	if !ok {
		return "", &ErrTruncated{Offset: start, Need: len(b) + 1, Have: len(b)}
	}
	return decodeText(b), nil
}

// readObject decodes the record at the cursor: a signed shape code and type
// tag, the shape payload, then label and note. On error the cursor position
// is unspecified; callers reposition it.
func readObject(r *reader) (*Object, error) {
	offset := r.pos
	code, err := r.int8()
	if err != nil {
		return nil, err
	}
	typ, err := r.int8()
	if err != nil {
		return nil, err
	}

	kind, ok := shapeKindFromCode(code)
	if !ok {
		return nil, &ErrUnknownShape{Code: code, Offset: offset}
	}

	vertices, err := readShape(r, kind)
	if err != nil {
		return nil, err
	}

	label, err := readTextField(r)
	if err != nil {
		return nil, err
	}
	note, err := readTextField(r)
	if err != nil {
		return nil, err
	}

	return &Object{
		Kind:     kind,
		Code:     code,
		Type:     int(typ),
		Vertices: vertices,
		Label:    label,
		Note:     note,
		Offset:   offset,
	}, nil
}
