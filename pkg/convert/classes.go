package convert

import (
	"encoding/json"
	"strconv"

	"github.com/diapath/vtoq/internal/fileaccess"
	"github.com/diapath/vtoq/pkg/qupath"
	"github.com/pkg/errors"
)

// ClassMap maps object type tags to classifications. It is read-only while
// conversions run and may be shared between them.
type ClassMap map[int]qupath.Classification

// Lookup returns the classification for a type tag, or nil when the tag has
// none.
func (m ClassMap) Lookup(typ int) *qupath.Classification {
	c, ok := m[typ]
	if !ok {
		return nil
	}
	return &c
}

// ParseClassMap reads a class map from JSON of the form
//
//	{"1": ["Tumor", "c80000"], "2": ["Stroma", "00ff00"]}
//
// where each key is a type tag and each colour is 6 hex digits.
func ParseClassMap(data []byte) (ClassMap, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse class map")
	}
	return classMapFromRaw(raw)
}

// LoadClassMap reads a class map file
func LoadClassMap(fs fileaccess.FileAccess, bucket string, path string) (ClassMap, error) {
	var raw map[string][]string
	if err := fs.ReadJSON(bucket, path, &raw, false); err != nil {
		return nil, errors.Wrapf(err, "failed to load class map %v", path)
	}
	return classMapFromRaw(raw)
}

func classMapFromRaw(raw map[string][]string) (ClassMap, error) {
	classes := make(ClassMap, len(raw))
	for key, value := range raw {
		typ, err := strconv.Atoi(key)
		if err != nil {
			return nil, errors.Wrapf(err, "class map key %q is not an integer", key)
		}
		if len(value) != 2 {
			return nil, errors.Errorf("class map entry %q: expected [name, colour], got %d values", key, len(value))
		}
		rgb, err := strconv.ParseUint(value[1], 16, 32)
		if err != nil || rgb > 0xffffff {
			return nil, errors.Errorf("class map entry %q: invalid colour %q", key, value[1])
		}
		classes[typ] = qupath.NewClassification(value[0], uint32(rgb))
	}
	return classes, nil
}
