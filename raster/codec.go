package raster

import (
	"image"
	"image/png"
	"io"

	// Source formats beyond PNG
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered image format from rd and returns it as a
// Raster.
func Decode(rd io.Reader) (*Raster, error) {
	m, _, err := image.Decode(rd)
	if err != nil {
		return nil, err
	}
	return FromImage(m), nil
}

// Encode writes r to w as a PNG image using the given compression level.
func Encode(w io.Writer, r *Raster, level png.CompressionLevel) error {
	e := png.Encoder{CompressionLevel: level}
	return e.Encode(w, r.Image())
}
