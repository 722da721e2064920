package parser

import (
	"math"
	"strings"
)

const formatTagPrefix = "LDFF"

// readSections reads the NUL-terminated markers that follow the last layer
// and the payloads they introduce. An empty marker, a format tag or the end
// of the data ends the scan cleanly. Anything unreadable ends it with a
// warning.
func (d *decoder) readSections() {
	r := d.r
	for {
		offset := r.pos
		raw, ok := r.cstring()
		if !ok {
			if len(raw) > 0 {
				d.warn(WarnSectionCorrupt, -1, offset, nil, "unterminated section marker")
			}
			return
		}

		marker := decodeText(raw)
		switch {
		case marker == "":
			return
		case strings.HasPrefix(marker, formatTagPrefix):
			d.c.FormatTag = marker
			return
		case marker == "["+SectionLayerImage+"]":
			if !d.readImageSection(offset) {
				return
			}
		case marker == "["+SectionLayerConfigs+"]", marker == "["+SectionLayerAtlas+"]":
			if !d.readTextSection(marker[1:len(marker)-1], offset) {
				return
			}
		default:
			d.warn(WarnUnknownSection, -1, offset, nil, "unrecognised section marker %q", marker)
			return
		}
	}
}

// readImageSection reads an image name, a 32-bit length and the image bytes
func (d *decoder) readImageSection(offset int) bool {
	r := d.r
	name, ok := r.cstring()
	if !ok || len(name) == 0 {
		d.warn(WarnSectionCorrupt, -1, offset, nil, "layer image has no name")
		return false
	}
	n, err := r.int32()
	if err != nil || n <= 0 {
		d.warn(WarnSectionCorrupt, -1, offset, err, "layer image %q has a corrupted size", name)
		return false
	}
	payload, err := r.next(int(n))
	if err != nil {
		d.warn(WarnSectionCorrupt, -1, offset, err, "layer image %q has a corrupted payload", name)
		return false
	}
	d.c.Sections = append(d.c.Sections, Section{
		Name:      SectionLayerImage,
		Kind:      SectionBlob,
		ImageName: decodeText(name),
		Data:      append([]byte(nil), payload...),
		Offset:    offset,
	})
	return true
}

// readTextSection reads a 64-bit length and that many bytes of text. A
// length of zero or less gives an empty section.
func (d *decoder) readTextSection(name string, offset int) bool {
	r := d.r
	n, err := r.int64()
	if err != nil {
		d.warn(WarnSectionCorrupt, -1, offset, err, "section %s has no length", name)
		return false
	}
	var payload []byte
	if n > 0 {
		if n > int64(r.remaining()) {
			d.warn(WarnSectionCorrupt, -1, offset,
				&ErrTruncated{Offset: r.pos, Need: int(min(n, int64(math.MaxInt))), Have: r.remaining()},
				"section %s is cut short", name)
			return false
		}
		b, _ := r.next(int(n))
		payload = append([]byte(nil), b...)
	}
	d.c.Sections = append(d.c.Sections, Section{
		Name:   name,
		Kind:   SectionText,
		Data:   payload,
		Offset: offset,
	})
	return true
}
