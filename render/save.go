package render

import (
	"fmt"
	"image"
	"io"

	"github.com/anthonynsimon/bild/imgio"
)

// Save writes img to path as a PNG file.
func Save(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	return imgio.PNGEncoder()(w, img)
}
