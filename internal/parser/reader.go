package parser

import (
	"bytes"
	"encoding/binary"
	"math"
)

// reader is a little-endian cursor over an in-memory container.
// Seeking past the end is allowed; the next read reports truncation.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) len() int { return len(r.data) }

func (r *reader) remaining() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

func (r *reader) seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	r.pos = pos
}

// next returns the following n bytes and advances, or ErrTruncated without
// moving the cursor.
func (r *reader) next(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, &ErrTruncated{Offset: r.pos, Need: n, Have: r.remaining()}
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) int8() (int8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *reader) bool() (bool, error) {
	b, err := r.next(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *reader) int32() (int32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (r *reader) int64() (int64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *reader) float32() (float32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// float64s reads n consecutive doubles
func (r *reader) float64s(n int) ([]float64, error) {
	b, err := r.next(8 * n)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return out, nil
}

// cstring reads up to and including the next NUL. The returned slice
// excludes the terminator. ok is false when the data ends before a NUL; the
// cursor is then left at the end.
func (r *reader) cstring() (s []byte, ok bool) {
	if r.remaining() == 0 {
		return nil, false
	}
	rest := r.data[r.pos:]
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		r.pos = len(r.data)
		return rest, false
	}
	r.pos += i + 1
	return rest[:i], true
}
