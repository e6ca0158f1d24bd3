/*
Package raster implements a simple 8-bit RGBA raster used when packing single
channel textures into multi-channel maps.

Pixels are stored non-premultiplied, four bytes per pixel in R, G, B, A order
and addressed as (y*width + x)*Channels + channel. Every accessor is bounds
checked.
*/
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Channel identifies one of the four channels of a pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
	Alpha
)

// Channels is the number of channels stored per pixel
const Channels = 4

var channelNames = [Channels]string{"R", "G", "B", "A"}

func (c Channel) String() string {
	if c < 0 || c >= Channels {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// Valid reports whether c is one of Red, Green, Blue or Alpha.
func (c Channel) Valid() bool {
	return c >= 0 && c < Channels
}

var errSizeMismatch = errors.New("raster: size mismatch")

// Raster is an owned block of RGBA pixels.
type Raster struct {
	width, height int
	pix           []uint8
}

// New returns a zeroed raster of the given size. It panics if either
// dimension is negative.
func New(width, height int) *Raster {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: invalid size %dx%d", width, height))
	}
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*Channels),
	}
}

// Width returns the width in pixels
func (r *Raster) Width() int {
	return r.width
}

// Height returns the height in pixels
func (r *Raster) Height() int {
	return r.height
}

// SameSize reports whether r and o have identical dimensions.
func (r *Raster) SameSize(o *Raster) bool {
	return r.width == o.width && r.height == o.height
}

func (r *Raster) offset(x, y int, c Channel) int {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		panic(fmt.Sprintf("raster: pixel (%d, %d) out of bounds %dx%d", x, y, r.width, r.height))
	}
	if !c.Valid() {
		panic(fmt.Sprintf("raster: invalid channel %d", int(c)))
	}
	return (y*r.width+x)*Channels + int(c)
}

// At returns the value of channel c of the pixel at (x, y).
func (r *Raster) At(x, y int, c Channel) uint8 {
	return r.pix[r.offset(x, y, c)]
}

// Set sets channel c of the pixel at (x, y) to v.
func (r *Raster) Set(x, y int, c Channel, v uint8) {
	r.pix[r.offset(x, y, c)] = v
}

// Fill sets channel c of every pixel to v.
func (r *Raster) Fill(c Channel, v uint8) {
	if !c.Valid() {
		panic(fmt.Sprintf("raster: invalid channel %d", int(c)))
	}
	for i := int(c); i < len(r.pix); i += Channels {
		r.pix[i] = v
	}
}

// CopyChannel copies channel sc of every pixel in src into channel dc of the
// corresponding pixel in r. Both rasters must be the same size.
func (r *Raster) CopyChannel(dc Channel, src *Raster, sc Channel) error {
	if !r.SameSize(src) {
		return fmt.Errorf("%w: %dx%d vs. %dx%d", errSizeMismatch, r.width, r.height, src.width, src.height)
	}
	if !dc.Valid() || !sc.Valid() {
		return fmt.Errorf("raster: invalid channel copy %d to %d", int(sc), int(dc))
	}
	for i := 0; i < len(r.pix); i += Channels {
		r.pix[i+int(dc)] = src.pix[i+int(sc)]
	}
	return nil
}

// Image returns an image.NRGBA sharing the pixels of r.
func (r *Raster) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.pix,
		Stride: r.width * Channels,
		Rect:   image.Rect(0, 0, r.width, r.height),
	}
}

// FromImage copies m into a new raster, converting every pixel to
// non-premultiplied 8-bit RGBA. Grey images expand to R=G=B with an opaque
// alpha.
func FromImage(m image.Image) *Raster {
	b := m.Bounds()
	r := New(b.Dx(), b.Dy())

	// Straight copy preserves color under zero alpha
	if n, ok := m.(*image.NRGBA); ok {
		for y := 0; y < r.height; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(r.pix[y*r.width*Channels:(y+1)*r.width*Channels], n.Pix[i:i+r.width*Channels])
		}
		return r
	}

	// 16-bit non-premultiplied, keep the high byte of each channel
	if n, ok := m.(*image.NRGBA64); ok {
		for y := 0; y < r.height; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			row := r.pix[y*r.width*Channels : (y+1)*r.width*Channels]
			for j := range row {
				row[j] = n.Pix[i+j*2]
			}
		}
		return r
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			i := ((y-b.Min.Y)*r.width + (x - b.Min.X)) * Channels
			r.pix[i+0] = c.R
			r.pix[i+1] = c.G
			r.pix[i+2] = c.B
			r.pix[i+3] = c.A
		}
	}
	return r
}
