package mld

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Images returns the LayerImage payloads keyed by image name. A later
// section with the same name replaces an earlier one.
func (c *Container) Images() map[string][]byte {
	images := make(map[string][]byte)
	for _, s := range c.sections {
		if s.Name == SectionLayerImage {
			images[s.ImageName] = s.Data
		}
	}
	return images
}

// Image decodes the LayerImage payload stored under name. PNG, BMP and TIFF
// payloads are understood; it also returns the format name.
func (c *Container) Image(name string) (image.Image, string, error) {
	data, ok := c.Images()[name]
	if !ok {
		return nil, "", fmt.Errorf("no layer image named %q", name)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("layer image %q: %w", name, err)
	}
	return img, format, nil
}
